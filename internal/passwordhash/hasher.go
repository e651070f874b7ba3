// Package passwordhash hashes and verifies user secrets with bcrypt.
// Only the digest ever reaches the authoritative store; the schema
// keeps the digest field out of both cache tiers, so neither the
// cleartext nor the hash is ever cached.
package passwordhash

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is bcrypt's own input ceiling; anything longer is
// silently truncated by the underlying algorithm, so reject it instead.
const maxPasswordBytes = 72

// Hasher hashes and verifies passwords with bcrypt at a configurable
// cost factor (wired from Config.PasswordHashRounds).
type Hasher struct {
	cost int
}

// New creates a Hasher at the given bcrypt cost. Costs outside
// bcrypt.MinCost..bcrypt.MaxCost fall back to bcrypt.DefaultCost.
func New(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt digest of plain, suitable for storing in the
// authoritative store's storeName field.
func (h *Hasher) Hash(plain string) (string, error) {
	if len(plain) == 0 {
		return "", fmt.Errorf("passwordhash: password must not be empty")
	}
	if len(plain) > maxPasswordBytes {
		return "", fmt.Errorf("passwordhash: password exceeds %d bytes", maxPasswordBytes)
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("passwordhash: hash: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plain matches the stored bcrypt digest hash.
func (h *Hasher) Verify(plain, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
