package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/beka-birhanu/distributed-systems/internal/core/domain"
)

const (
	defaultAccessTTL  = time.Hour
	defaultRefreshTTL = 7 * 24 * time.Hour
)

// tokenClaims is the wire shape of the signed claim set: the registered
// sub/iat/exp fields plus the username and the access/refresh discriminator.
type tokenClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Kind     string `json:"kind"`
}

// TokenService signs and verifies HS256 tokens with a shared symmetric
// secret. It holds no per-token state; a compromised secret invalidates
// every past and future token.
type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration) *TokenService {
	if accessTTL <= 0 {
		accessTTL = defaultAccessTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = defaultRefreshTTL
	}
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (s *TokenService) Issue(user *domain.User, kind domain.TokenKind) (string, error) {
	ttl := s.accessTTL
	if kind == domain.TokenKindRefresh {
		ttl = s.refreshTTL
	}

	now := time.Now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Username: user.Username,
		Kind:     string(kind),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses and validates a token string. Malformed encoding, signature
// mismatch and expiry all collapse into domain.ErrInvalidToken; the cause is
// wrapped in the message for logging but not distinguishable by type.
func (s *TokenService) Verify(token string) (*domain.TokenClaims, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	out := &domain.TokenClaims{
		UserID:   claims.Subject,
		Username: claims.Username,
		Kind:     domain.TokenKind(claims.Kind),
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
