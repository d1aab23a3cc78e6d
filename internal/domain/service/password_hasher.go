package service

// PasswordHasher abstracts slow, salted password hashing so use cases never
// touch a concrete algorithm (or compare plaintext).
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(password string) (string, error)

	// Check compares a plaintext password with a stored hash.
	Check(password, hash string) bool

	// ValidatePasswordStrength rejects passwords below the configured
	// minimum requirements.
	ValidatePasswordStrength(password string) error
}
