// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., Argon2id), keeping the domain pure.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password. Every call uses a
	// fresh random salt, so two hashes of the same password never match.
	Hash(password string) (string, error)

	// Check compares a plaintext password with an encoded hash to see if they match.
	Check(password, hash string) bool
}
