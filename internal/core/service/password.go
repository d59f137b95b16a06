package service

import (
	"golang.org/x/crypto/bcrypt"
)

// minBcryptCost is the safety floor: configuration may raise the cost but
// never lower it below 10 rounds equivalent.
const minBcryptCost = bcrypt.DefaultCost

// BcryptHasher implements ports.PasswordHasher on top of bcrypt. The output
// encodes salt and cost, and CompareHashAndPassword is constant-time.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < minBcryptCost {
		cost = minBcryptCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *BcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
