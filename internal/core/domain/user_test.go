package domain

import (
	"strings"
	"testing"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		want     error
	}{
		{"minimum length", "abc", nil},
		{"maximum length", strings.Repeat("a", 20), nil},
		{"letters digits underscore", "alice_01", nil},
		{"too short", "ab", ErrUsernameTooShort},
		{"empty", "", ErrUsernameTooShort},
		{"too long", strings.Repeat("a", 21), ErrUsernameTooLong},
		{"space", "alice smith", ErrUsernameInvalidFormat},
		{"punctuation", "alice!", ErrUsernameInvalidFormat},
		{"dash", "alice-01", ErrUsernameInvalidFormat},
		{"non-ascii", "alicé01", ErrUsernameInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateUsername(tt.username); got != tt.want {
				t.Fatalf("ValidateUsername(%q) = %v, want %v", tt.username, got, tt.want)
			}
		})
	}
}

func TestValidatePassword_Weak(t *testing.T) {
	for _, pw := range []string{"password", "qwerty", "abc123", "password123", ""} {
		if err := ValidatePassword(pw); err != ErrWeakPassword {
			t.Fatalf("ValidatePassword(%q) = %v, want ErrWeakPassword", pw, err)
		}
	}
}

func TestValidatePassword_Strong(t *testing.T) {
	for _, pw := range []string{"vX9$kL2#pQ7w", "Tr0ub4dor&3xyz", "correct horse battery staple"} {
		if err := ValidatePassword(pw); err != nil {
			t.Fatalf("ValidatePassword(%q) = %v, want nil", pw, err)
		}
	}
}
