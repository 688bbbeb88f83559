// Package password provides bcrypt password hashing.
package password

import "golang.org/x/crypto/bcrypt"

// Hash hashes a plaintext password with bcrypt at the default cost.
func Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Compare checks a plaintext password against a bcrypt hash.
// Returns nil on match.
func Compare(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
