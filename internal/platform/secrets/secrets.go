// Package secrets covers the lifecycle of shared secrets such as the admin
// token: random generation, bcrypt hashing for storage, and verification.
// Callers hold only the hash; the cleartext exists at generation time and in
// the request that presents it.
package secrets

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	dErrors "github.com/Kamduis/name-combo/pkg/domain-errors"
)

const secretBytes = 32

// Generate returns a fresh URL-safe random secret.
func Generate() (string, error) {
	buf := make([]byte, secretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating secret: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Hash derives the bcrypt hash that is stored in place of the secret.
func Hash(secret string) (string, error) {
	if secret == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "secret cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", dErrors.New(dErrors.CodeInvalidInput, "secret is too long")
		}
		return "", fmt.Errorf("hashing secret: %w", err)
	}
	return string(hashed), nil
}

// Verify checks a presented secret against a stored hash. A mismatch returns
// a coded invalid-input error; anything else is an infrastructure failure.
func Verify(secret, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return dErrors.New(dErrors.CodeInvalidInput, "invalid secret")
		}
		return fmt.Errorf("verifying secret: %w", err)
	}
	return nil
}
