package objectid

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"time"
)

const (
	// Len is the length of an identifier in characters.
	Len = 24

	// timePrefixLen is the number of leading hex characters encoding the
	// creation time (big-endian unix seconds).
	timePrefixLen = 8
)

// New returns a new identifier: 8 hex characters of unix creation time
// followed by 16 random hex characters.
func New() string {
	var ts [4]byte

	binary.BigEndian.PutUint32(ts[:], uint32(time.Now().Unix())) //nolint:gosec // wraps in 2106

	var random [8]byte
	if _, err := rand.Read(random[:]); err != nil {
		panic("objectid: error reading random bytes: " + err.Error())
	}

	out := make([]byte, Len)
	hex.Encode(out[:timePrefixLen], ts[:])
	hex.Encode(out[timePrefixLen:], random[:])

	return string(out)
}

// Valid reports whether id is a well-formed identifier: exactly 24 lowercase
// hex characters. Malformed identifiers must be rejected before they reach
// the permission engine or a storage lookup.
func Valid(id string) bool {
	if len(id) != Len {
		return false
	}

	for i := 0; i < len(id); i++ {
		c := id[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}

	return true
}
