package security

import "golang.org/x/crypto/bcrypt"

// Work factor for bcrypt. Each +1 doubles hashing time, so this is the knob
// trading login latency against offline brute-force resistance.
const HashCost = 10

// HashPassword hashes a plain text password with bcrypt. The per-hash random
// salt is embedded in the output.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), HashCost)

	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckPassword compares a bcrypt hash with a plaintext password. bcrypt's
// own comparison is used rather than byte equality so timing does not leak
// where a mismatch occurred.
func CheckPassword(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}

// Bcrypt satisfies the flows' hasher contract with the package functions.
type Bcrypt struct{}

func (Bcrypt) Hash(plain string) (string, error) {
	return HashPassword(plain)
}

func (Bcrypt) Compare(hash, plain string) error {
	return CheckPassword(hash, plain)
}
