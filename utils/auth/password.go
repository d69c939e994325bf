package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")
	ErrPasswordMismatch = errors.New("password does not match")
)

// Every credential in the system (student, admin, superadmin bootstrap)
// goes through these two functions; nothing persists or compares plaintext.
const (
	hashCost          = 12
	MinPasswordLength = 8
)

// HashPassword returns the bcrypt hash of a plaintext password. Length is
// enforced here so no caller can persist a weak credential.
func HashPassword(password string) (string, error) {
	if len(password) < MinPasswordLength {
		return "", ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a stored hash. A
// mismatch surfaces as ErrPasswordMismatch; anything else is a bcrypt
// failure worth propagating.
func VerifyPassword(hashedPassword, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrPasswordMismatch
	}
	return err
}
