// Package playlists coordinates playlist workflows: every operation
// resolves authorization first, then performs the requested read or
// mutation.
package playlists

import (
	"context"

	"songcrate/internal/store"
)

// Store captures the playlist persistence and authorization operations
// required by the service.
type Store interface {
	Create(ctx context.Context, name, ownerID string) (string, error)
	ListForUser(ctx context.Context, userID string) ([]store.PlaylistView, error)
	GetByID(ctx context.Context, id string) (store.PlaylistView, error)
	DeleteByID(ctx context.Context, id string) error
	VerifyOwner(ctx context.Context, playlistID, userID string) error
	VerifyAccess(ctx context.Context, playlistID, userID string) error
	VerifySongAccess(ctx context.Context, playlistID, userID string) error
}

// SongStore captures the playlist/song association operations.
type SongStore interface {
	Add(ctx context.Context, playlistID, songID string) error
	ListByPlaylist(ctx context.Context, playlistID string) ([]store.PlaylistSong, error)
	Remove(ctx context.Context, playlistID, songID string) error
}

// Service exposes playlist workflows.
type Service interface {
	Create(ctx context.Context, userID, name string) (string, error)
	List(ctx context.Context, userID string) ([]store.PlaylistView, error)
	Get(ctx context.Context, userID, id string) (store.PlaylistView, error)
	Delete(ctx context.Context, userID, id string) error
	AddSong(ctx context.Context, userID, playlistID, songID string) error
	ListSongs(ctx context.Context, userID, playlistID string) ([]store.PlaylistSong, error)
	RemoveSong(ctx context.Context, userID, playlistID, songID string) error
}

// New wires a Service backed by the provided stores.
func New(playlists Store, songs SongStore) Service {
	return &playlistService{playlists: playlists, songs: songs}
}

type playlistService struct {
	playlists Store
	songs     SongStore
}

func (s *playlistService) Create(ctx context.Context, userID, name string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.playlists.Create(ctx, name, userID)
}

func (s *playlistService) List(ctx context.Context, userID string) ([]store.PlaylistView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.playlists.ListForUser(ctx, userID)
}

func (s *playlistService) Get(ctx context.Context, userID, id string) (store.PlaylistView, error) {
	if err := ctx.Err(); err != nil {
		return store.PlaylistView{}, err
	}
	if err := s.playlists.VerifyAccess(ctx, id, userID); err != nil {
		return store.PlaylistView{}, err
	}
	return s.playlists.GetByID(ctx, id)
}

// Delete is owner-only; collaborators cannot remove a playlist.
func (s *playlistService) Delete(ctx context.Context, userID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.playlists.VerifyOwner(ctx, id, userID); err != nil {
		return err
	}
	return s.playlists.DeleteByID(ctx, id)
}

func (s *playlistService) AddSong(ctx context.Context, userID, playlistID, songID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.playlists.VerifySongAccess(ctx, playlistID, userID); err != nil {
		return err
	}
	return s.songs.Add(ctx, playlistID, songID)
}

func (s *playlistService) ListSongs(ctx context.Context, userID, playlistID string) ([]store.PlaylistSong, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.playlists.VerifySongAccess(ctx, playlistID, userID); err != nil {
		return nil, err
	}
	return s.songs.ListByPlaylist(ctx, playlistID)
}

func (s *playlistService) RemoveSong(ctx context.Context, userID, playlistID, songID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.playlists.VerifySongAccess(ctx, playlistID, userID); err != nil {
		return err
	}
	return s.songs.Remove(ctx, playlistID, songID)
}
