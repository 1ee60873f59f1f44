package doctree

import (
	"crypto/sha256"
	"encoding/hex"
)

// ContentHashHex computes SHA-256 of content and returns the lowercase hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
