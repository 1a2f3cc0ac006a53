package helpers

import "golang.org/x/crypto/bcrypt"

// bcryptCost is pinned so digests stay comparable across deployments.
const bcryptCost = 10

// HashPassword hashes the plain text password using bcrypt. The salt is
// generated and embedded in the digest by the library.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword compares a bcrypt hash with a plain password.
// A mismatch is a false, not an error.
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
