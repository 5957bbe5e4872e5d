// Package auth provides password hashing, session tokens and the
// middleware that gates authenticated routes.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// defaultCost is the bcrypt work factor used when the configured cost
// is zero. Tune it so a hash takes roughly 200-300ms on production
// hardware.
const defaultCost = 12

// PasswordService provides bcrypt hashing and verification.
//
// The cost is injected so tests can run at bcrypt's minimum cost
// instead of paying ~250ms per hash.
type PasswordService struct {
	cost int
}

// NewPasswordService creates a PasswordService with the given bcrypt
// cost. Cost 0 selects the default; out-of-range values are clamped by
// the bcrypt library at hash time.
func NewPasswordService(cost int) *PasswordService {
	if cost == 0 {
		cost = defaultCost
	}
	return &PasswordService{cost: cost}
}

// NewPasswordServiceForTest creates a PasswordService with bcrypt's
// minimum cost. Not for production use.
func NewPasswordServiceForTest() *PasswordService {
	return &PasswordService{cost: bcrypt.MinCost}
}

// Hash hashes the plaintext password with bcrypt. The output is
// self-contained (version, cost and salt are embedded) and is what gets
// stored in the users table.
//
// Plaintexts longer than 72 bytes are rejected explicitly because
// bcrypt would silently truncate them.
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

// Verify checks a plaintext password against a stored bcrypt digest.
// Returns nil on a match. The comparison is constant-time inside
// bcrypt, so response timing does not leak how close a guess was.
func (p *PasswordService) Verify(digest, plaintext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return fmt.Errorf("auth: invalid password")
		}
		return fmt.Errorf("auth: comparing password digest: %w", err)
	}
	return nil
}
