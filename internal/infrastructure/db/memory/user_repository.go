// Package memory provides the default, non-persistent user repository: a
// mutex-guarded map living inside the process. It is injected like any other
// driver so tests and deployments can swap it freely.
package memory

import (
	"context"
	"sync"

	"github.com/beka-birhanu/distributed-systems/internal/core/domain"
)

// UserRepository keeps one record per user id. Records are stored and
// returned by value, so a reader can never observe a torn record and callers
// cannot mutate shared state through a returned pointer.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

func (r *UserRepository) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	if user.ID == "" {
		return nil, domain.ErrMissingID
	}

	r.mu.Lock()
	r.users[user.ID] = *user
	r.mu.Unlock()

	saved := *user
	return &saved, nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	u, ok := r.users[id]
	r.mu.RUnlock()

	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) DeleteByID(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

func (r *UserRepository) ListAll(_ context.Context) ([]*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		u := u
		out = append(out, &u)
	}
	return out, nil
}

// Ping satisfies the readiness probe; the in-process store is always ready.
func (r *UserRepository) Ping(context.Context) error {
	return nil
}
