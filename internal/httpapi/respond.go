package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"songcrate/internal/auth"
	"songcrate/internal/store"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error kind to a status code. Kinds are preserved
// through the call chain, so sentinel checks here are enough.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errNoToken), errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, store.ErrInvalidCredentials):
		httpError(w, err, http.StatusUnauthorized)
	case errors.Is(err, store.ErrForbidden), errors.Is(err, store.ErrNotCollaborator):
		httpError(w, err, http.StatusForbidden)
	case store.IsNotFound(err):
		httpError(w, err, http.StatusNotFound)
	case errors.Is(err, store.ErrInvariant), errors.Is(err, store.ErrUserExists),
		errors.Is(err, store.ErrCollaborationExists), errors.Is(err, store.ErrRefreshTokenInvalid):
		httpError(w, err, http.StatusBadRequest)
	default:
		httpError(w, errors.New("internal server error"), http.StatusInternalServerError)
	}
}

func httpError(w http.ResponseWriter, err error, status int) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}
