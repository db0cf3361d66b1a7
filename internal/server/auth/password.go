package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a plaintext password with the given bcrypt cost.
func HashPassword(password string, cost int) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), cost)
}

// ComparePassword verifies a password against its hash.
func ComparePassword(hashed []byte, plain string) error {
	return bcrypt.CompareHashAndPassword(hashed, []byte(plain))
}
