package store

import (
	"crypto/rand"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrPlaylistNotFound signals the referenced playlist does not exist.
	ErrPlaylistNotFound = errors.New("playlist not found")
	// ErrSongNotFound signals the referenced song does not exist.
	ErrSongNotFound = errors.New("song not found")
	// ErrPlaylistSongNotFound signals the playlist holds no matching song.
	ErrPlaylistSongNotFound = errors.New("song not found in playlist")
	// ErrUserNotFound signals the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrCollaborationNotFound signals no collaboration row matched.
	ErrCollaborationNotFound = errors.New("collaboration not found")

	// ErrForbidden indicates the user is not the playlist owner.
	ErrForbidden = errors.New("not allowed to access this playlist")
	// ErrNotCollaborator indicates the user is not a registered collaborator.
	ErrNotCollaborator = errors.New("user is not a collaborator on this playlist")

	// ErrInvariant indicates a write reported zero affected rows where one
	// was expected. The precondition was already validated, so this is a
	// storage failure, not a user error.
	ErrInvariant = errors.New("write affected no rows")

	// ErrUserExists signals the username is already taken.
	ErrUserExists = errors.New("user already exists")
	// ErrCollaborationExists signals the user already collaborates on the playlist.
	ErrCollaborationExists = errors.New("user already collaborates on this playlist")
	// ErrInvalidCredentials indicates a login failure.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrRefreshTokenInvalid indicates the refresh token is not registered.
	ErrRefreshTokenInvalid = errors.New("refresh token is not registered")
)

// IsNotFound reports whether err carries any of the not-found kinds.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrPlaylistNotFound) ||
		errors.Is(err, ErrSongNotFound) ||
		errors.Is(err, ErrPlaylistSongNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrCollaborationNotFound)
}

const (
	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	idLength   = 16
)

// newID generates an opaque identifier with a type-indicating prefix,
// e.g. "playlist-V1StGXR8_Z5jdHi6". Consumers never parse the suffix.
func newID(prefix string) (string, error) {
	b := make([]byte, idLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i, c := range b {
		b[i] = idAlphabet[int(c)&63]
	}
	return prefix + "-" + string(b), nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

// violatedForeignKey returns the constraint name of a foreign key violation,
// or "" when err is not one.
func violatedForeignKey(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return pgErr.ConstraintName
	}
	return ""
}
