package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

const tokenBytes = 32

// MintToken returns a new high-entropy opaque session token. The raw token
// goes to the client; only HashToken of it is ever persisted.
func MintToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("mint session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// HashToken derives the storage key for a session token. SHA-256 is enough
// here: the token itself is 256 bits of randomness, so there is nothing for a
// slow hash to protect against.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
