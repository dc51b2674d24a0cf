package user

import (
	"crypto/rand"
	"encoding/hex"
)

const idLength = 24

// NewID returns a fresh 24-character hex identifier token. The store keys
// users by these tokens; they are assigned once at insert and never change.
func NewID() string {
	buf := make([]byte, idLength/2)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(buf)
}

// IsValidID reports whether s is a syntactically valid identifier token:
// exactly 24 hex characters, case-insensitive.
func IsValidID(s string) bool {
	if len(s) != idLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
