package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/beka-birhanu/distributed-systems/internal/core/domain"
	"github.com/beka-birhanu/distributed-systems/internal/core/ports"
)

// AccountService implements signup, login and lookup on top of the user
// repository, password hasher and token issuer.
type AccountService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	logger zerolog.Logger

	// signupMu serializes the uniqueness scan with the insert that follows
	// it, so two concurrent signups cannot both pass the check.
	signupMu sync.Mutex
}

func NewAccountService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, logger zerolog.Logger) *AccountService {
	return &AccountService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// Signup validates the credentials, enforces username uniqueness and
// persists a new user with a freshly generated identifier. The plaintext
// password exists only for the validation and hashing calls.
func (s *AccountService) Signup(ctx context.Context, username, password string) (*domain.User, error) {
	if err := domain.ValidateUsername(username); err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}

	// Hash outside the critical section; bcrypt dominates the cost.
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	s.signupMu.Lock()
	defer s.signupMu.Unlock()

	existing, err := s.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("user_id", created.ID).
		Str("username", created.Username).
		Msg("user registered")

	return created, nil
}

// Login authenticates a username/password pair and issues one access and one
// refresh token. An unknown username and a wrong password fail identically
// with domain.ErrInvalidCredentials to prevent username enumeration.
func (s *AccountService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	user, err := s.findByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	accessToken, err := s.tokens.Issue(user, domain.TokenKindAccess)
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}
	refreshToken, err := s.tokens.Issue(user, domain.TokenKindRefresh)
	if err != nil {
		return nil, fmt.Errorf("issue refresh token: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")

	return &ports.LoginResult{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// GetUserByID looks a user up by identifier. Absence surfaces as
// domain.ErrUserNotFound; the caller maps it to a not-found response.
func (s *AccountService) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// findByUsername scans the repository snapshot; the repository contract has
// no username index. Returns nil without error when no user matches.
func (s *AccountService) findByUsername(ctx context.Context, username string) (*domain.User, error) {
	users, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}
