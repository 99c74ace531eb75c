package auth

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"github.com/yunanyuansyah/listPembelian/domain"
)

// bcryptCost matches the work factor the password migration used; stored
// hashes are self-describing, so a future cost bump only affects new hashes.
const bcryptCost = 12

// PasswordServiceImpl implements domain.PasswordService
type PasswordServiceImpl struct {
	cost int
}

// NewPasswordService creates a new password service
func NewPasswordService() domain.PasswordService {
	return &PasswordServiceImpl{cost: bcryptCost}
}

// Hash implements domain.PasswordService
func (p *PasswordServiceImpl) Hash(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrHashingFailure, err)
	}
	return string(hashedBytes), nil
}

// Verify implements domain.PasswordService. A structurally valid mismatch is
// (false, nil); a malformed stored hash is an infrastructure failure.
func (p *PasswordServiceImpl) Verify(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %v", domain.ErrHashingFailure, err)
}

// Strength rule messages, surfaced verbatim to clients. The check order is
// an observable contract: length, uppercase, lowercase, digit, special.
const (
	msgTooShort  = "Password must be at least 8 characters long"
	msgNoUpper   = "Password must contain at least one uppercase letter"
	msgNoLower   = "Password must contain at least one lowercase letter"
	msgNoDigit   = "Password must contain at least one number"
	msgNoSpecial = "Password must contain at least one special character"
)

// CheckStrength implements domain.PasswordService
func (p *PasswordServiceImpl) CheckStrength(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("%w: %s", domain.ErrWeakPassword, msgTooShort)
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(`!@#$%^&*()_+-=[]{};':"\|,.<>/?`, r):
			hasSpecial = true
		}
	}

	switch {
	case !hasUpper:
		return fmt.Errorf("%w: %s", domain.ErrWeakPassword, msgNoUpper)
	case !hasLower:
		return fmt.Errorf("%w: %s", domain.ErrWeakPassword, msgNoLower)
	case !hasDigit:
		return fmt.Errorf("%w: %s", domain.ErrWeakPassword, msgNoDigit)
	case !hasSpecial:
		return fmt.Errorf("%w: %s", domain.ErrWeakPassword, msgNoSpecial)
	}
	return nil
}
