package store

import (
	"strings"
	"testing"
)

func TestNewIDShape(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := NewID()
		if len(id) != idLength {
			t.Fatalf("len(NewID()) = %d, want %d", len(id), idLength)
		}
		for _, c := range id {
			if !strings.ContainsRune(idAlphabet, c) {
				t.Fatalf("NewID() = %q contains %q outside alphabet", id, c)
			}
		}
	}
}

func TestNewIDVaries(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		seen[NewID()] = true
	}
	// With 62^6 possibilities, 50 draws colliding down to a handful
	// would mean the generator is broken.
	if len(seen) < 45 {
		t.Errorf("only %d distinct ids in 50 draws", len(seen))
	}
}
