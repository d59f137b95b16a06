package ports

// PasswordHasher derives and checks one-way salted password hashes. The hash
// output embeds salt and cost, so Verify needs only the stored hash.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)

	// Verify runs in time independent of where a mismatch occurs.
	Verify(plaintext, hash string) bool
}
