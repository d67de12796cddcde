// Package httpapi wires HTTP handlers to the underlying services. It is
// thin glue: request decoding, the bearer-token check, and mapping error
// kinds to status codes.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"songcrate/internal/app/users"
	"songcrate/internal/store"
)

// PlaylistService coordinates playlist-related operations.
type PlaylistService interface {
	Create(ctx context.Context, userID, name string) (string, error)
	List(ctx context.Context, userID string) ([]store.PlaylistView, error)
	Get(ctx context.Context, userID, id string) (store.PlaylistView, error)
	Delete(ctx context.Context, userID, id string) error
	AddSong(ctx context.Context, userID, playlistID, songID string) error
	ListSongs(ctx context.Context, userID, playlistID string) ([]store.PlaylistSong, error)
	RemoveSong(ctx context.Context, userID, playlistID, songID string) error
}

// SongService coordinates song catalogue operations.
type SongService interface {
	Create(ctx context.Context, song store.Song) (string, error)
	Get(ctx context.Context, id string) (store.Song, error)
	List(ctx context.Context, filter store.SongFilter) ([]store.Song, error)
}

// UserService exposes account workflows.
type UserService interface {
	Signup(ctx context.Context, username, password, fullname string) (string, error)
	Get(ctx context.Context, id string) (store.User, error)
	Login(ctx context.Context, username, password string) (users.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
}

// CollaborationService exposes collaboration workflows.
type CollaborationService interface {
	Add(ctx context.Context, ownerID, playlistID, userID string) (string, error)
	Delete(ctx context.Context, ownerID, playlistID, userID string) error
}

// TokenParser validates access tokens from the Authorization header.
type TokenParser interface {
	ParseAccess(token string) (string, error)
}

var errNoToken = errors.New("authorization required")

// Server wires HTTP handlers to the underlying services.
type Server struct {
	users          UserService
	songs          SongService
	playlists      PlaylistService
	collaborations CollaborationService
	tokens         TokenParser
}

// New configures a Server with the given services.
func New(
	users UserService,
	songs SongService,
	playlists PlaylistService,
	collaborations CollaborationService,
	tokens TokenParser,
) *Server {
	return &Server{
		users:          users,
		songs:          songs,
		playlists:      playlists,
		collaborations: collaborations,
		tokens:         tokens,
	}
}

// Routes exposes the HTTP handlers.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("POST /users", s.handleSignup)
	mux.HandleFunc("GET /users/{id}", s.handleGetUser)

	mux.HandleFunc("POST /authentications", s.handleLogin)
	mux.HandleFunc("PUT /authentications", s.handleRefresh)
	mux.HandleFunc("DELETE /authentications", s.handleLogout)

	mux.HandleFunc("POST /songs", s.handleCreateSong)
	mux.HandleFunc("GET /songs", s.handleListSongs)
	mux.HandleFunc("GET /songs/{id}", s.handleGetSong)

	mux.HandleFunc("POST /playlists", s.handleCreatePlaylist)
	mux.HandleFunc("GET /playlists", s.handleListPlaylists)
	mux.HandleFunc("GET /playlists/{id}", s.handleGetPlaylist)
	mux.HandleFunc("DELETE /playlists/{id}", s.handleDeletePlaylist)

	mux.HandleFunc("POST /playlists/{id}/songs", s.handleAddPlaylistSong)
	mux.HandleFunc("GET /playlists/{id}/songs", s.handleListPlaylistSongs)
	mux.HandleFunc("DELETE /playlists/{id}/songs/{songId}", s.handleRemovePlaylistSong)

	mux.HandleFunc("POST /collaborations", s.handleAddCollaboration)
	mux.HandleFunc("DELETE /collaborations", s.handleDeleteCollaboration)

	return mux
}

// authenticate resolves the calling user from the bearer token.
func (s *Server) authenticate(r *http.Request) (string, error) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		return "", errNoToken
	}
	return s.tokens.ParseAccess(token)
}
