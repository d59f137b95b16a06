package ports

import (
	"context"

	"github.com/beka-birhanu/distributed-systems/internal/core/domain"
)

// UserRepository is the persistence contract for user records. Records are
// keyed by identifier; Save upserts by id and fails with domain.ErrMissingID
// when the id is empty. The contract deliberately carries no username index:
// callers needing username lookup scan ListAll.
//
// Implementations must be safe for concurrent use.
type UserRepository interface {
	Save(ctx context.Context, user *domain.User) (*domain.User, error)

	// GetByID returns domain.ErrUserNotFound when no record exists.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// DeleteByID reports whether a record existed.
	DeleteByID(ctx context.Context, id string) (bool, error)

	// ListAll returns a snapshot of every record; ordering is not meaningful.
	ListAll(ctx context.Context) ([]*domain.User, error)
}
