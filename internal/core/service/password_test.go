package service

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	hasher := &BcryptHasher{cost: bcrypt.MinCost}

	hash, err := hasher.Hash("s3cret-value")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	if hash == "s3cret-value" {
		t.Fatalf("hash equals plaintext")
	}

	if !hasher.Verify("s3cret-value", hash) {
		t.Fatalf("Verify rejected the correct password")
	}
	if hasher.Verify("wrong-value", hash) {
		t.Fatalf("Verify accepted a wrong password")
	}
}

func TestBcryptHasher_SaltedOutput(t *testing.T) {
	hasher := &BcryptHasher{cost: bcrypt.MinCost}

	h1, _ := hasher.Hash("same-password")
	h2, _ := hasher.Hash("same-password")
	if h1 == h2 {
		t.Fatalf("two hashes of the same password are identical; salt missing")
	}
}

func TestNewBcryptHasher_CostFloor(t *testing.T) {
	hasher := NewBcryptHasher(4)

	hash, err := hasher.Hash("pw")
	if err != nil {
		t.Fatalf("Hash returned error: %v", err)
	}
	cost, err := bcrypt.Cost([]byte(hash))
	if err != nil {
		t.Fatalf("Cost returned error: %v", err)
	}
	if cost < minBcryptCost {
		t.Fatalf("cost %d below floor %d", cost, minBcryptCost)
	}
}
