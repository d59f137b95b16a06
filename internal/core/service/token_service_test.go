package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/beka-birhanu/distributed-systems/internal/core/domain"
)

var tokenTestUser = &domain.User{
	ID:       "9f2c1c3e-1111-2222-3333-444455556666",
	Username: "alice01",
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, 7*24*time.Hour)

	token, err := svc.Issue(tokenTestUser, domain.TokenKindAccess)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("expected three dot-separated segments, got %q", token)
	}

	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.UserID != tokenTestUser.ID {
		t.Fatalf("unexpected subject: %s", claims.UserID)
	}
	if claims.Username != tokenTestUser.Username {
		t.Fatalf("unexpected username: %s", claims.Username)
	}
	if claims.Kind != domain.TokenKindAccess {
		t.Fatalf("unexpected kind: %s", claims.Kind)
	}
	if claims.ExpiresAt.Before(claims.IssuedAt) {
		t.Fatalf("expiry precedes issuance: %v < %v", claims.ExpiresAt, claims.IssuedAt)
	}
}

func TestTokenService_RefreshKind(t *testing.T) {
	svc := NewTokenService("secret", time.Minute, time.Hour)

	token, err := svc.Issue(tokenTestUser, domain.TokenKindRefresh)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	claims, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.Kind != domain.TokenKindRefresh {
		t.Fatalf("expected refresh kind, got %s", claims.Kind)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt); got != time.Hour {
		t.Fatalf("expected refresh TTL of 1h, got %v", got)
	}
}

func TestTokenService_Expired(t *testing.T) {
	svc := &TokenService{secret: []byte("secret"), accessTTL: -time.Minute, refreshTTL: -time.Minute}

	token, err := svc.Issue(tokenTestUser, domain.TokenKindAccess)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := svc.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour, time.Hour)
	verifier := NewTokenService("secret-b", time.Hour, time.Hour)

	token, err := issuer.Issue(tokenTestUser, domain.TokenKindAccess)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := verifier.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for forged token, got %v", err)
	}
}

func TestTokenService_Malformed(t *testing.T) {
	svc := NewTokenService("secret", time.Hour, time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Verify(token); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("Verify(%q): expected ErrInvalidToken, got %v", token, err)
		}
	}
}

func TestNewTokenService_TTLDefaults(t *testing.T) {
	svc := NewTokenService("secret", 0, 0)
	if svc.accessTTL != defaultAccessTTL {
		t.Fatalf("expected default access TTL, got %v", svc.accessTTL)
	}
	if svc.refreshTTL != defaultRefreshTTL {
		t.Fatalf("expected default refresh TTL, got %v", svc.refreshTTL)
	}
}
