package ports

import (
	"context"

	"github.com/beka-birhanu/distributed-systems/internal/core/domain"
)

// LoginResult bundles the authenticated user with the freshly issued pair of
// tokens. Tokens are stateless; nothing is recorded on login.
type LoginResult struct {
	User         *domain.User
	AccessToken  string
	RefreshToken string
}

// AccountService orchestrates signup, login and lookup.
type AccountService interface {
	Signup(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}
