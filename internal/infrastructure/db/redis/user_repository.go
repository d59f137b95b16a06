package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/beka-birhanu/distributed-systems/internal/core/domain"
)

const (
	userKeyPrefix     = "user:"
	usernameKeyPrefix = "username:"
)

// UserRepository persists user records as Redis hashes. A username:<name>
// key written with SetNX acts as an insert-if-absent index, so username
// uniqueness holds even across concurrent processes.
type UserRepository struct {
	client *redis.Client
}

func NewUserRepository(client *redis.Client) *UserRepository {
	return &UserRepository{client: client}
}

func (r *UserRepository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.ID == "" {
		return nil, domain.ErrMissingID
	}

	// Reserve the username atomically before writing the record.
	reserved, err := r.client.SetNX(ctx, usernameKeyPrefix+user.Username, user.ID, 0).Result()
	if err != nil {
		return nil, fmt.Errorf("reserve username: %w", err)
	}
	if !reserved {
		owner, err := r.client.Get(ctx, usernameKeyPrefix+user.Username).Result()
		if err != nil {
			return nil, fmt.Errorf("resolve username owner: %w", err)
		}
		if owner != user.ID {
			return nil, domain.ErrUsernameTaken
		}
	}

	fields := map[string]any{
		"id":            user.ID,
		"username":      user.Username,
		"password_hash": user.PasswordHash,
		"created_at":    user.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if err := r.client.HSet(ctx, userKeyPrefix+user.ID, fields).Err(); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}

	saved := *user
	return &saved, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	fields, err := r.client.HGetAll(ctx, userKeyPrefix+id).Result()
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	if len(fields) == 0 {
		return nil, domain.ErrUserNotFound
	}
	return userFromFields(fields)
}

func (r *UserRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	username, err := r.client.HGet(ctx, userKeyPrefix+id, "username").Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("find user: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, userKeyPrefix+id)
	pipe.Del(ctx, usernameKeyPrefix+username)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return true, nil
}

func (r *UserRepository) ListAll(ctx context.Context) ([]*domain.User, error) {
	var out []*domain.User

	iter := r.client.Scan(ctx, 0, userKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		fields, err := r.client.HGetAll(ctx, iter.Val()).Result()
		if err != nil {
			return nil, fmt.Errorf("read user: %w", err)
		}
		if len(fields) == 0 {
			continue
		}
		user, err := userFromFields(fields)
		if err != nil {
			return nil, err
		}
		out = append(out, user)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan users: %w", err)
	}
	return out, nil
}

// Ping verifies connectivity for the readiness probe.
func (r *UserRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func userFromFields(fields map[string]string) (*domain.User, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, fields["created_at"])
	if err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	return &domain.User{
		ID:           fields["id"],
		Username:     fields["username"],
		PasswordHash: fields["password_hash"],
		CreatedAt:    createdAt,
	}, nil
}
