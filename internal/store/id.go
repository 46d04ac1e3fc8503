package store

import "crypto/rand"

// idAlphabet matches the alphanumeric alphabet used for profile ids.
const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// idLength is the number of characters in a profile id.
const idLength = 6

// NewID returns a random 6-character alphanumeric profile id.
// Ids are identifiers, not secrets, but crypto/rand avoids seeding concerns.
func NewID() string {
	buf := make([]byte, idLength)
	// rand.Read never fails on supported platforms (Go 1.24+ crashes
	// the program instead of returning an error).
	_, _ = rand.Read(buf)
	out := make([]byte, idLength)
	for i, b := range buf {
		out[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return string(out)
}
