// Package password provides one-way password hashing built on bcrypt.
//
// Each hash embeds its own random salt and cost factor, so nothing beyond the
// hash string itself needs to be stored. Verification never returns an error:
// a stored hash that is corrupt or unparseable simply fails verification.
package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrFailedToHashPassword = errors.New("failed to hash password")

// Hasher hashes and verifies passwords. The zero value is not usable; use New.
type Hasher struct {
	cost int
}

// New returns a Hasher with the given bcrypt cost. Costs outside the valid
// bcrypt range fall back to the default cost.
func New(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return Hasher{cost: cost}
}

// Hash derives a salted bcrypt hash from the plaintext password.
func (h Hasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", errors.Join(ErrFailedToHashPassword, err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches the stored hash. Malformed hashes
// are treated as a mismatch, never as a fatal error, so a corrupted stored
// value cannot take down a login path.
func (h Hasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
