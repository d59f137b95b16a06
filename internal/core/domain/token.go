package domain

import (
	"errors"
	"time"
)

// TokenKind discriminates access tokens from refresh tokens. It is carried
// inside the signed claims so a verifier can reject a refresh token presented
// where an access token is expected.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// ErrInvalidToken covers malformed encoding, signature mismatch and expiry
// alike. Verifiers wrap the underlying cause so it stays available for
// logging, but callers cannot tell the cases apart.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenClaims is the verified claim set extracted from a signed token.
type TokenClaims struct {
	UserID    string
	Username  string
	Kind      TokenKind
	IssuedAt  time.Time
	ExpiresAt time.Time
}
