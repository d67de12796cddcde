package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"songcrate/internal/app/users"
	"songcrate/internal/store"
)

type stubPlaylists struct {
	createID  string
	createErr error
	list      []store.PlaylistView
	listErr   error
	get       store.PlaylistView
	getErr    error
	deleteErr error
	addErr    error
	songs     []store.PlaylistSong
	songsErr  error
	removeErr error
}

func (s *stubPlaylists) Create(ctx context.Context, userID, name string) (string, error) {
	return s.createID, s.createErr
}

func (s *stubPlaylists) List(ctx context.Context, userID string) ([]store.PlaylistView, error) {
	return s.list, s.listErr
}

func (s *stubPlaylists) Get(ctx context.Context, userID, id string) (store.PlaylistView, error) {
	return s.get, s.getErr
}

func (s *stubPlaylists) Delete(ctx context.Context, userID, id string) error {
	return s.deleteErr
}

func (s *stubPlaylists) AddSong(ctx context.Context, userID, playlistID, songID string) error {
	return s.addErr
}

func (s *stubPlaylists) ListSongs(ctx context.Context, userID, playlistID string) ([]store.PlaylistSong, error) {
	return s.songs, s.songsErr
}

func (s *stubPlaylists) RemoveSong(ctx context.Context, userID, playlistID, songID string) error {
	return s.removeErr
}

type stubSongs struct {
	createID string
	song     store.Song
	list     []store.Song
	err      error
}

func (s *stubSongs) Create(ctx context.Context, song store.Song) (string, error) {
	return s.createID, s.err
}

func (s *stubSongs) Get(ctx context.Context, id string) (store.Song, error) {
	return s.song, s.err
}

func (s *stubSongs) List(ctx context.Context, filter store.SongFilter) ([]store.Song, error) {
	return s.list, s.err
}

type stubUsers struct {
	signupID string
	user     store.User
	pair     users.TokenPair
	access   string
	err      error
}

func (s *stubUsers) Signup(ctx context.Context, username, password, fullname string) (string, error) {
	return s.signupID, s.err
}

func (s *stubUsers) Get(ctx context.Context, id string) (store.User, error) {
	return s.user, s.err
}

func (s *stubUsers) Login(ctx context.Context, username, password string) (users.TokenPair, error) {
	return s.pair, s.err
}

func (s *stubUsers) Refresh(ctx context.Context, refreshToken string) (string, error) {
	return s.access, s.err
}

func (s *stubUsers) Logout(ctx context.Context, refreshToken string) error {
	return s.err
}

type stubCollaborations struct {
	addID string
	err   error
}

func (s *stubCollaborations) Add(ctx context.Context, ownerID, playlistID, userID string) (string, error) {
	return s.addID, s.err
}

func (s *stubCollaborations) Delete(ctx context.Context, ownerID, playlistID, userID string) error {
	return s.err
}

type stubTokens struct {
	userID string
	err    error
}

func (s *stubTokens) ParseAccess(token string) (string, error) {
	return s.userID, s.err
}

func newTestServer(t *testing.T, playlists *stubPlaylists) http.Handler {
	t.Helper()
	if playlists == nil {
		playlists = &stubPlaylists{}
	}
	srv := New(&stubUsers{}, &stubSongs{}, playlists, &stubCollaborations{}, &stubTokens{userID: "user-abc"})
	return srv.Routes()
}

func doRequest(t *testing.T, h http.Handler, method, target, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if authed {
		r.Header.Set("Authorization", "Bearer token")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func TestPlaylistsRequireToken(t *testing.T) {
	h := newTestServer(t, nil)

	for _, tc := range []struct {
		method, target string
	}{
		{http.MethodPost, "/playlists"},
		{http.MethodGet, "/playlists"},
		{http.MethodGet, "/playlists/playlist-1"},
		{http.MethodDelete, "/playlists/playlist-1"},
		{http.MethodPost, "/playlists/playlist-1/songs"},
		{http.MethodGet, "/playlists/playlist-1/songs"},
		{http.MethodDelete, "/playlists/playlist-1/songs/song-1"},
	} {
		w := doRequest(t, h, tc.method, tc.target, "", false)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want %d", tc.method, tc.target, w.Code, http.StatusUnauthorized)
		}
	}
}

func TestCreatePlaylist(t *testing.T) {
	h := newTestServer(t, &stubPlaylists{createID: "playlist-xyz"})

	w := doRequest(t, h, http.MethodPost, "/playlists", `{"name":"Road Trip"}`, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}

	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["playlistId"] != "playlist-xyz" {
		t.Errorf("playlistId = %q, want %q", resp["playlistId"], "playlist-xyz")
	}
}

func TestCreatePlaylistEmptyName(t *testing.T) {
	h := newTestServer(t, &stubPlaylists{createID: "playlist-xyz"})

	w := doRequest(t, h, http.MethodPost, "/playlists", `{"name":""}`, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestListPlaylistsEmpty(t *testing.T) {
	h := newTestServer(t, &stubPlaylists{list: []store.PlaylistView{}})

	w := doRequest(t, h, http.MethodGet, "/playlists", "", true)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if body := strings.TrimSpace(w.Body.String()); body != `{"playlists":[]}` {
		t.Errorf("body = %s, want empty playlists array", body)
	}
}

func TestGetPlaylistForbidden(t *testing.T) {
	h := newTestServer(t, &stubPlaylists{
		getErr: fmt.Errorf("verify playlist owner: %w", store.ErrForbidden),
	})

	w := doRequest(t, h, http.MethodGet, "/playlists/playlist-1", "", true)
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusForbidden)
	}
}

func TestGetPlaylistMissing(t *testing.T) {
	h := newTestServer(t, &stubPlaylists{getErr: store.ErrPlaylistNotFound})

	w := doRequest(t, h, http.MethodGet, "/playlists/playlist-1", "", true)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestDeletePlaylist(t *testing.T) {
	h := newTestServer(t, &stubPlaylists{})

	w := doRequest(t, h, http.MethodDelete, "/playlists/playlist-1", "", true)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
}

func TestAddPlaylistSongMissingSong(t *testing.T) {
	h := newTestServer(t, &stubPlaylists{addErr: store.ErrSongNotFound})

	w := doRequest(t, h, http.MethodPost, "/playlists/playlist-1/songs", `{"songId":"song-nope"}`, true)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestAddPlaylistSong(t *testing.T) {
	h := newTestServer(t, &stubPlaylists{})

	w := doRequest(t, h, http.MethodPost, "/playlists/playlist-1/songs", `{"songId":"song-1"}`, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusCreated)
	}
}

func TestListPlaylistSongsEmptyIsNotFound(t *testing.T) {
	h := newTestServer(t, &stubPlaylists{songsErr: store.ErrPlaylistSongNotFound})

	w := doRequest(t, h, http.MethodGet, "/playlists/playlist-1/songs", "", true)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestUnknownErrorIsOpaque(t *testing.T) {
	h := newTestServer(t, &stubPlaylists{listErr: errors.New("pq: connection reset")})

	w := doRequest(t, h, http.MethodGet, "/playlists", "", true)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if strings.Contains(w.Body.String(), "connection reset") {
		t.Errorf("response leaked the underlying error: %s", w.Body.String())
	}
}

func TestRefreshRejectsInvalidToken(t *testing.T) {
	srv := New(
		&stubUsers{err: store.ErrRefreshTokenInvalid},
		&stubSongs{}, &stubPlaylists{}, &stubCollaborations{}, &stubTokens{},
	)
	h := srv.Routes()

	w := doRequest(t, h, http.MethodPut, "/authentications", `{"refreshToken":"bogus"}`, false)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
