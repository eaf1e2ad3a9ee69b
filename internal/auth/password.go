package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"unicode"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	apperrors "growmate/internal/errors"
)

const (
	bcryptCost        = 10
	minPasswordLength = 8
)

var emailValidator = validator.New()

// ValidateEmail checks the address format.
func ValidateEmail(email string) error {
	if err := emailValidator.Var(email, "required,email"); err != nil {
		return apperrors.ErrInvalidEmail
	}
	return nil
}

// ValidatePassword enforces the complexity rule: at least 8 characters with
// an uppercase letter, a lowercase letter and a special character.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return apperrors.ErrWeakPassword
	}
	var upper, lower, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r) || unicode.IsSpace(r):
		default:
			special = true
		}
	}
	if !upper || !lower || !special {
		return apperrors.ErrWeakPassword
	}
	return nil
}

// PasswordValidation is registered on the request validator as the "password" tag.
func PasswordValidation(fl validator.FieldLevel) bool {
	return ValidatePassword(fl.Field().String()) == nil
}

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// CheckPassword reports whether password matches hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateOpaqueToken returns a random hex token for reset and confirmation links.
func GenerateOpaqueToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
