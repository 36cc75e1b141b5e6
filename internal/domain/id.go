package domain

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

// idRE matches exactly 24 lowercase/uppercase hex characters.
var idRE = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// NewID returns a fresh 24-character hex identifier (12 random bytes).
// All persisted entities use this identifier shape.
func NewID() string {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand failure means the OS entropy source is broken.
		panic(err)
	}
	return hex.EncodeToString(b[:])
}

// ValidID reports whether s has the canonical identifier shape
// (exactly 24 hex characters).
func ValidID(s string) bool { return idRE.MatchString(s) }
