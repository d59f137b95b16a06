package domain

import (
	"errors"
	"regexp"
	"time"

	"github.com/nbutton23/zxcvbn-go"
)

const (
	MinUsernameLength = 3
	MaxUsernameLength = 20

	// MinPasswordScore is the lowest zxcvbn score (0-4) accepted at signup.
	MinPasswordScore = 3
)

// usernamePattern restricts usernames to ASCII letters, digits and underscore.
var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

var (
	ErrUsernameTooShort      = errors.New("username is too short")
	ErrUsernameTooLong       = errors.New("username is too long")
	ErrUsernameInvalidFormat = errors.New("username is invalid format")
	ErrUsernameTaken         = errors.New("username already exists")
	ErrWeakPassword          = errors.New("password is too weak")
	ErrInvalidCredentials    = errors.New("invalid username or password")
	ErrUserNotFound          = errors.New("user not found")

	// ErrMissingID means a user reached the repository without an identifier.
	// This is a programming error, not a user-facing condition.
	ErrMissingID = errors.New("user must have an ID")
)

// User models a registered account. PasswordHash never crosses the API
// boundary; the json tag enforces that at the serialization layer too.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ValidateUsername checks length and character-set rules. The three
// violations map to distinct errors so callers can surface specific messages.
func ValidateUsername(username string) error {
	if len(username) < MinUsernameLength {
		return ErrUsernameTooShort
	}
	if len(username) > MaxUsernameLength {
		return ErrUsernameTooLong
	}
	if !usernamePattern.MatchString(username) {
		return ErrUsernameInvalidFormat
	}
	return nil
}

// ValidatePassword scores the plaintext with the zxcvbn guessability
// estimator and rejects anything below MinPasswordScore. The plaintext is
// never retained or logged.
func ValidatePassword(password string) error {
	if zxcvbn.PasswordStrength(password, nil).Score < MinPasswordScore {
		return ErrWeakPassword
	}
	return nil
}
