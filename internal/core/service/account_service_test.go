package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/beka-birhanu/distributed-systems/internal/core/domain"
)

const strongPassword = "vX9$kL2#pQ7w"

type stubUserRepo struct {
	users map[string]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	if user.ID == "" {
		return nil, domain.ErrMissingID
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) DeleteByID(_ context.Context, id string) (bool, error) {
	if _, ok := r.users[id]; !ok {
		return false, nil
	}
	delete(r.users, id)
	return true, nil
}

func (r *stubUserRepo) ListAll(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func newTestService(repo *stubUserRepo) (*AccountService, *TokenService) {
	tokens := NewTokenService("test-secret", time.Hour, 7*24*time.Hour)
	hasher := &BcryptHasher{cost: bcrypt.MinCost}
	return NewAccountService(repo, hasher, tokens, zerolog.Nop()), tokens
}

func TestAccountService_Signup_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(repo)

	user, err := svc.Signup(context.Background(), "alice01", strongPassword)
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if user.PasswordHash == strongPassword {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(strongPassword)); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.CreatedAt.IsZero() {
		t.Fatalf("expected creation timestamp")
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected 1 user in store, got %d", len(repo.users))
	}
}

func TestAccountService_Signup_UsernameValidation(t *testing.T) {
	tests := []struct {
		username string
		want     error
	}{
		{"ab", domain.ErrUsernameTooShort},
		{strings.Repeat("x", 21), domain.ErrUsernameTooLong},
		{"bad name!", domain.ErrUsernameInvalidFormat},
	}

	for _, tt := range tests {
		repo := newStubUserRepo()
		svc, _ := newTestService(repo)

		if _, err := svc.Signup(context.Background(), tt.username, strongPassword); err != tt.want {
			t.Fatalf("Signup(%q): expected %v, got %v", tt.username, tt.want, err)
		}
		if len(repo.users) != 0 {
			t.Fatalf("Signup(%q): store mutated on validation failure", tt.username)
		}
	}
}

func TestAccountService_Signup_WeakPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(repo)

	if _, err := svc.Signup(context.Background(), "alice01", "password123"); err != domain.ErrWeakPassword {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
	if len(repo.users) != 0 {
		t.Fatalf("store mutated on weak password")
	}
}

func TestAccountService_Signup_DuplicateUsername(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(repo)

	if _, err := svc.Signup(context.Background(), "alice01", strongPassword); err != nil {
		t.Fatalf("first signup failed: %v", err)
	}
	if _, err := svc.Signup(context.Background(), "alice01", strongPassword); err != domain.ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected exactly 1 user, got %d", len(repo.users))
	}
}

func TestAccountService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc, tokens := newTestService(repo)

	created, err := svc.Signup(context.Background(), "carol", strongPassword)
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	result, err := svc.Login(context.Background(), "carol", strongPassword)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", result)
	}
	if result.User.ID != created.ID {
		t.Fatalf("unexpected user: %+v", result.User)
	}

	access, err := tokens.Verify(result.AccessToken)
	if err != nil {
		t.Fatalf("access token invalid: %v", err)
	}
	if access.UserID != created.ID || access.Username != "carol" || access.Kind != domain.TokenKindAccess {
		t.Fatalf("unexpected access claims: %+v", access)
	}

	refresh, err := tokens.Verify(result.RefreshToken)
	if err != nil {
		t.Fatalf("refresh token invalid: %v", err)
	}
	if refresh.Kind != domain.TokenKindRefresh {
		t.Fatalf("expected refresh kind, got %s", refresh.Kind)
	}
}

func TestAccountService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(repo)

	_, _ = svc.Signup(context.Background(), "dave", strongPassword)
	if _, err := svc.Login(context.Background(), "dave", "wrong-password"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAccountService_Login_UnknownUser(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(repo)

	// Absent user fails exactly like a wrong password.
	if _, err := svc.Login(context.Background(), "ghost", strongPassword); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAccountService_GetUserByID(t *testing.T) {
	repo := newStubUserRepo()
	svc, _ := newTestService(repo)

	created, err := svc.Signup(context.Background(), "erin", strongPassword)
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}

	got, err := svc.GetUserByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if got.Username != "erin" {
		t.Fatalf("unexpected user: %+v", got)
	}

	if _, err := svc.GetUserByID(context.Background(), "no-such-id"); err != domain.ErrUserNotFound {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
