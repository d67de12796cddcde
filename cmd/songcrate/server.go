package main

import (
	"database/sql"
	"net/http"
	"strings"

	"songcrate/internal/app/collaborations"
	"songcrate/internal/app/playlists"
	"songcrate/internal/app/songs"
	"songcrate/internal/app/users"
	"songcrate/internal/auth"
	"songcrate/internal/httpapi"
	"songcrate/internal/logging"
	"songcrate/internal/store"
)

func newHTTPHandler(cfg Config, db *sql.DB, logger *logging.Logger) http.Handler {
	// Stores
	songStore := store.NewSongs(db)
	userStore := store.NewUsers(db)
	collabStore := store.NewCollaborations(db)
	playlistStore := store.NewPlaylists(db, collabStore)
	playlistSongStore := store.NewPlaylistSongs(db, songStore)
	tokenStore := store.NewAuthentications(db)

	tokens := auth.NewTokenManager(cfg.AccessTokenKey, cfg.RefreshTokenKey, cfg.AccessTokenAge)

	// Services
	userSvc := users.New(userStore, tokenStore, tokens)
	songSvc := songs.New(songStore)
	playlistSvc := playlists.New(playlistStore, playlistSongStore)
	collabSvc := collaborations.New(collabStore, playlistStore, userStore)

	api := httpapi.New(userSvc, songSvc, playlistSvc, collabSvc, tokens).Routes()

	return logging.RequestLogging(logger)(withCORS(cfg.AllowedOrigins, api))
}

func withCORS(allowedOrigins []string, next http.Handler) http.Handler {
	originAllowed := func(origin string) bool {
		if len(allowedOrigins) == 0 || origin == "" {
			return false
		}
		for _, o := range allowedOrigins {
			if strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if originAllowed(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "3600")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
