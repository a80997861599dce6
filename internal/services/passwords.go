package services

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// passwordCost matches the cost of hashes created by earlier releases
const passwordCost = 12

// HashPassword returns the bcrypt hash of password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash
func CheckPassword(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// unusablePasswordHash hashes 32 random bytes that are never returned to
// anyone, so OAuth accounts carry a per-account secret nobody knows.
func unusablePasswordHash() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate placeholder password: %w", err)
	}
	// bcrypt only reads the first 72 bytes
	return HashPassword(base64.RawStdEncoding.EncodeToString(buf))
}
