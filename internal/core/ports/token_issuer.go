package ports

import "github.com/beka-birhanu/distributed-systems/internal/core/domain"

// TokenIssuer signs and verifies self-describing expiring tokens. The issuer
// holds no per-token state: validity is a pure function of the configured
// secret and the claims embedded in the token itself.
type TokenIssuer interface {
	Issue(user *domain.User, kind domain.TokenKind) (string, error)

	// Verify fails with domain.ErrInvalidToken for malformed, forged and
	// expired tokens alike.
	Verify(token string) (*domain.TokenClaims, error)
}
