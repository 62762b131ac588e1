package util

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID returns a short URL-safe hex ID for annotations and other
// locally-created records.
func NewID() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
