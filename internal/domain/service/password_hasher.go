// Package service defines capability interfaces for stateless domain logic
// whose implementations live in infra.
package service

// PasswordHasher hashes and verifies user credentials. The concrete
// algorithm (bcrypt) stays out of the domain layer.
type PasswordHasher interface {
	// Hash produces a salted hash of the plaintext password.
	Hash(password string) (string, error)

	// Check reports whether the plaintext password matches the stored hash.
	Check(password, hash string) bool
}
