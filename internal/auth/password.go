// Package auth provides password hashing for the credential store.
//
// bcrypt output is self-contained: the salt and cost are embedded in the hash
// string, so the stored column is all that's needed for verification, and
// CompareHashAndPassword is constant-time against the password bytes.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/ebostrom/personal-site/internal/apperror"
)

// DefaultCost is the bcrypt work factor used in production. Roughly 250ms of
// hashing per login attempt on current hardware.
const DefaultCost = 12

// PasswordService hashes and verifies passwords. The cost is injected so
// tests can use bcrypt.MinCost and stay fast.
type PasswordService struct {
	cost int
}

// NewPasswordService creates a PasswordService with the given bcrypt cost.
// A cost below bcrypt.MinCost is raised to DefaultCost.
func NewPasswordService(cost int) *PasswordService {
	if cost < bcrypt.MinCost {
		cost = DefaultCost
	}
	return &PasswordService{cost: cost}
}

// Hash hashes a plaintext password. Passwords over 72 bytes are rejected
// rather than silently truncated (a bcrypt limitation).
func (p *PasswordService) Hash(plaintext string) (string, error) {
	if len(plaintext) > 72 {
		return "", fmt.Errorf("auth: password must be 72 bytes or fewer")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}

	return string(hashed), nil
}

// Verify checks a plaintext password against a stored hash. A mismatch
// returns apperror.ErrInvalidCredentials; anything else is an internal error.
func (p *PasswordService) Verify(hash, plaintext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return apperror.InvalidCredentials()
		}
		return fmt.Errorf("auth: comparing password hash: %w", err)
	}
	return nil
}
