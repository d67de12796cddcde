package songs

import (
	"context"
	"errors"
	"testing"

	"songcrate/internal/store"
)

type fakeStore struct {
	createID string
	song     store.Song
	list     []store.Song
	err      error

	gotFilter store.SongFilter
}

func (f *fakeStore) Create(ctx context.Context, song store.Song) (string, error) {
	return f.createID, f.err
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (store.Song, error) {
	return f.song, f.err
}

func (f *fakeStore) List(ctx context.Context, filter store.SongFilter) ([]store.Song, error) {
	f.gotFilter = filter
	return f.list, f.err
}

func TestCreateSong(t *testing.T) {
	svc := New(&fakeStore{createID: "song-abc"})

	id, err := svc.Create(context.Background(), store.Song{Title: "Life in Technicolor", Performer: "Coldplay"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if id != "song-abc" {
		t.Errorf("id = %q, want %q", id, "song-abc")
	}
}

func TestGetSongMissing(t *testing.T) {
	svc := New(&fakeStore{err: store.ErrSongNotFound})

	if _, err := svc.Get(context.Background(), "song-nope"); !errors.Is(err, store.ErrSongNotFound) {
		t.Fatalf("err = %v, want %v", err, store.ErrSongNotFound)
	}
}

func TestListPassesFilter(t *testing.T) {
	fs := &fakeStore{list: []store.Song{{ID: "song-1"}}}
	svc := New(fs)

	filter := store.SongFilter{Title: "life", Performer: "coldplay"}
	songs, err := svc.List(context.Background(), filter)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(songs) != 1 {
		t.Fatalf("len(songs) = %d, want 1", len(songs))
	}
	if fs.gotFilter != filter {
		t.Errorf("filter = %+v, want %+v", fs.gotFilter, filter)
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := New(&fakeStore{createID: "song-abc"})
	if _, err := svc.Create(ctx, store.Song{Title: "x", Performer: "y"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
