package service

// OTPHasher defines the interface for hashing one-time passwords at rest.
// Issued codes are never stored in the clear, mirroring password handling.
type OTPHasher interface {
	// Hash generates a salted hash from a plaintext code.
	Hash(code string) (string, error)

	// Check compares a plaintext code with a hash to see if they match.
	Check(code, hash string) bool
}
