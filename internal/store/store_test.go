package store

import (
	"regexp"
	"testing"
)

func TestNewID(t *testing.T) {
	pattern := regexp.MustCompile(`^playlist-[A-Za-z0-9_-]{16}$`)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id, err := newID("playlist")
		if err != nil {
			t.Fatalf("newID: %v", err)
		}
		if !pattern.MatchString(id) {
			t.Fatalf("id %q does not match %v", id, pattern)
		}
		if seen[id] {
			t.Fatalf("id %q generated twice", id)
		}
		seen[id] = true
	}
}

func TestNewIDPrefix(t *testing.T) {
	id, err := newID("playlist_song")
	if err != nil {
		t.Fatalf("newID: %v", err)
	}
	if want := regexp.MustCompile(`^playlist_song-.{16}$`); !want.MatchString(id) {
		t.Fatalf("id %q does not carry the playlist_song prefix", id)
	}
}
