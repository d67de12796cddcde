package httpapi

import (
	"encoding/json"
	"net/http"
)

type collaborationRequest struct {
	PlaylistID string `json:"playlistId"`
	UserID     string `json:"userId"`
}

func (s *Server) handleAddCollaboration(w http.ResponseWriter, r *http.Request) {
	ownerID, err := s.authenticate(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req collaborationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.PlaylistID == "" || req.UserID == "" {
		badRequest(w, "playlistId and userId are required")
		return
	}

	id, err := s.collaborations.Add(r.Context(), ownerID, req.PlaylistID, req.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"collaborationId": id})
}

func (s *Server) handleDeleteCollaboration(w http.ResponseWriter, r *http.Request) {
	ownerID, err := s.authenticate(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req collaborationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.PlaylistID == "" || req.UserID == "" {
		badRequest(w, "playlistId and userId are required")
		return
	}

	if err := s.collaborations.Delete(r.Context(), ownerID, req.PlaylistID, req.UserID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
