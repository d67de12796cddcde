package playlists

import (
	"context"
	"errors"
	"testing"

	"songcrate/internal/store"
)

// fakeStore records which checks ran so tests can assert ordering.
type fakeStore struct {
	ownerErr  error
	accessErr error
	calls     []string
}

func (f *fakeStore) Create(ctx context.Context, name, ownerID string) (string, error) {
	f.calls = append(f.calls, "create")
	return "playlist-new", nil
}

func (f *fakeStore) ListForUser(ctx context.Context, userID string) ([]store.PlaylistView, error) {
	f.calls = append(f.calls, "list")
	return []store.PlaylistView{}, nil
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (store.PlaylistView, error) {
	f.calls = append(f.calls, "get")
	return store.PlaylistView{ID: id}, nil
}

func (f *fakeStore) DeleteByID(ctx context.Context, id string) error {
	f.calls = append(f.calls, "delete")
	return nil
}

func (f *fakeStore) VerifyOwner(ctx context.Context, playlistID, userID string) error {
	f.calls = append(f.calls, "verifyOwner")
	return f.ownerErr
}

func (f *fakeStore) VerifyAccess(ctx context.Context, playlistID, userID string) error {
	f.calls = append(f.calls, "verifyAccess")
	return f.accessErr
}

func (f *fakeStore) VerifySongAccess(ctx context.Context, playlistID, userID string) error {
	f.calls = append(f.calls, "verifySongAccess")
	return f.accessErr
}

type fakeSongStore struct {
	calls []string
}

func (f *fakeSongStore) Add(ctx context.Context, playlistID, songID string) error {
	f.calls = append(f.calls, "add")
	return nil
}

func (f *fakeSongStore) ListByPlaylist(ctx context.Context, playlistID string) ([]store.PlaylistSong, error) {
	f.calls = append(f.calls, "list")
	return []store.PlaylistSong{{ID: "song-1"}}, nil
}

func (f *fakeSongStore) Remove(ctx context.Context, playlistID, songID string) error {
	f.calls = append(f.calls, "remove")
	return nil
}

func TestDeleteRequiresOwnership(t *testing.T) {
	playlists := &fakeStore{ownerErr: store.ErrForbidden}
	svc := New(playlists, &fakeSongStore{})

	err := svc.Delete(context.Background(), "user-collab", "playlist-a")
	if !errors.Is(err, store.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	for _, call := range playlists.calls {
		if call == "delete" {
			t.Fatalf("delete ran despite failed ownership check")
		}
	}
}

func TestDeleteRunsAfterOwnershipCheck(t *testing.T) {
	playlists := &fakeStore{}
	svc := New(playlists, &fakeSongStore{})

	if err := svc.Delete(context.Background(), "user-abc", "playlist-a"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	want := []string{"verifyOwner", "delete"}
	if len(playlists.calls) != 2 || playlists.calls[0] != want[0] || playlists.calls[1] != want[1] {
		t.Fatalf("expected calls %v, got %v", want, playlists.calls)
	}
}

func TestSongMutationsGatedByAccess(t *testing.T) {
	playlists := &fakeStore{accessErr: store.ErrForbidden}
	songs := &fakeSongStore{}
	svc := New(playlists, songs)

	ctx := context.Background()
	if err := svc.AddSong(ctx, "user-x", "playlist-a", "song-1"); !errors.Is(err, store.ErrForbidden) {
		t.Fatalf("expected ErrForbidden from AddSong, got %v", err)
	}
	if _, err := svc.ListSongs(ctx, "user-x", "playlist-a"); !errors.Is(err, store.ErrForbidden) {
		t.Fatalf("expected ErrForbidden from ListSongs, got %v", err)
	}
	if err := svc.RemoveSong(ctx, "user-x", "playlist-a", "song-1"); !errors.Is(err, store.ErrForbidden) {
		t.Fatalf("expected ErrForbidden from RemoveSong, got %v", err)
	}
	if len(songs.calls) != 0 {
		t.Fatalf("song store reached despite failed access checks: %v", songs.calls)
	}
}

func TestSongReadGatedBySameCheckAsMutations(t *testing.T) {
	playlists := &fakeStore{}
	songs := &fakeSongStore{}
	svc := New(playlists, songs)

	if _, err := svc.ListSongs(context.Background(), "user-abc", "playlist-a"); err != nil {
		t.Fatalf("ListSongs error: %v", err)
	}
	if playlists.calls[0] != "verifySongAccess" {
		t.Fatalf("expected verifySongAccess first, got %v", playlists.calls)
	}
}

func TestGetUsesAccessPolicy(t *testing.T) {
	playlists := &fakeStore{accessErr: store.ErrPlaylistNotFound}
	svc := New(playlists, &fakeSongStore{})

	_, err := svc.Get(context.Background(), "user-abc", "playlist-missing")
	if !errors.Is(err, store.ErrPlaylistNotFound) {
		t.Fatalf("expected ErrPlaylistNotFound, got %v", err)
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	playlists := &fakeStore{}
	svc := New(playlists, &fakeSongStore{})

	if _, err := svc.List(ctx, "user-abc"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(playlists.calls) != 0 {
		t.Fatalf("store reached with a cancelled context")
	}
}
