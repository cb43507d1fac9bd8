// Package password hashes and verifies user passwords with bcrypt.
package password

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/vncsmyrnk/assessment/internal/core/ports"
)

// DefaultCost is the bcrypt work factor used for stored credentials.
const DefaultCost = 12

// MaxPasswordBytes is the longest input bcrypt reads; later bytes are ignored.
const MaxPasswordBytes = 72

type BcryptHasher struct {
	cost int
}

// NewHasher returns a hasher using cost, or DefaultCost when cost is outside
// the range bcrypt accepts.
func NewHasher(cost int) ports.PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash salts every call, so equal inputs produce different outputs.
// Passwords longer than MaxPasswordBytes are hashed on their prefix.
func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(truncate(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports false for a mismatch and for a malformed hash alike.
func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), truncate(password)) == nil
}

func truncate(password string) []byte {
	b := []byte(password)
	if len(b) > MaxPasswordBytes {
		return b[:MaxPasswordBytes]
	}
	return b
}
