package httpapi

import (
	"encoding/json"
	"net/http"

	"songcrate/internal/store"
)

func (s *Server) handleCreateSong(w http.ResponseWriter, r *http.Request) {
	if _, err := s.authenticate(r); err != nil {
		writeError(w, err)
		return
	}

	var song store.Song
	if err := json.NewDecoder(r.Body).Decode(&song); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if song.Title == "" || song.Performer == "" {
		badRequest(w, "title and performer are required")
		return
	}

	id, err := s.songs.Create(r.Context(), song)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"songId": id})
}

func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	filter := store.SongFilter{
		Title:     r.URL.Query().Get("title"),
		Performer: r.URL.Query().Get("performer"),
	}

	songs, err := s.songs.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Songs []store.Song `json:"songs"`
	}{Songs: songs})
}

func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	song, err := s.songs.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, song)
}
