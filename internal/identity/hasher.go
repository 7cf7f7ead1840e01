// Package identity derives coarse, privacy-preserving client tokens.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
)

// TokenLength is the number of hex characters kept from the digest.
const TokenLength = 4

// Hasher turns a client IP into a short salted token. Collisions are
// expected; the token only supports rough uniqueness estimates.
type Hasher struct {
	secret string
}

// NewHasher creates a hasher salted with secret.
func NewHasher(secret string) *Hasher {
	return &Hasher{secret: secret}
}

// Hash returns the token for ip, or nil when ip is empty.
func (h *Hasher) Hash(ip string) *string {
	if ip == "" {
		return nil
	}
	sum := sha256.Sum256([]byte(ip + h.secret))
	token := hex.EncodeToString(sum[len(sum)-TokenLength/2:])
	return &token
}
