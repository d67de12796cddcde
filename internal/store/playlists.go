package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PlaylistView is a playlist joined with the owning user's display name.
// It is derived at the storage boundary and never persisted.
type PlaylistView struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// CollaborationVerifier confirms that a user is a registered collaborator
// on a playlist. Any failure is treated as "not authorized"; the reason is
// never surfaced through the playlist boundary.
type CollaborationVerifier interface {
	VerifyCollaborator(ctx context.Context, playlistID, userID string) error
}

// Playlists owns playlist rows and the two-tier access policy over them.
type Playlists struct {
	db      *sql.DB
	collabs CollaborationVerifier
}

// NewPlaylists wires a Playlists store over the shared database handle.
func NewPlaylists(db *sql.DB, collabs CollaborationVerifier) *Playlists {
	return &Playlists{db: db, collabs: collabs}
}

// Create persists a playlist and returns its generated id.
func (p *Playlists) Create(ctx context.Context, name, ownerID string) (string, error) {
	id, err := newID("playlist")
	if err != nil {
		return "", fmt.Errorf("generate playlist id: %w", err)
	}

	var inserted string
	err = p.db.QueryRowContext(ctx, `
		INSERT INTO playlists (id, name, owner)
		VALUES ($1, $2, $3)
		RETURNING id
	`, id, name, ownerID).Scan(&inserted)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("insert playlist: %w", ErrInvariant)
	}
	if err != nil {
		return "", fmt.Errorf("insert playlist: %w", err)
	}
	return inserted, nil
}

// ListForUser returns every playlist the user owns or collaborates on,
// deduplicated by playlist id. A user with no playlists gets an empty
// slice, not an error.
func (p *Playlists) ListForUser(ctx context.Context, userID string) ([]PlaylistView, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT DISTINCT p.id, p.name, u.username
		FROM playlists p
		JOIN users u ON u.id = p.owner
		LEFT JOIN collaborations c ON c.playlist_id = p.id AND c.user_id = $1
		WHERE p.owner = $1 OR c.user_id IS NOT NULL
		ORDER BY p.name ASC, p.id ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list playlists: %w", err)
	}
	defer rows.Close()

	playlists := make([]PlaylistView, 0)
	for rows.Next() {
		var pl PlaylistView
		if err := rows.Scan(&pl.ID, &pl.Name, &pl.Username); err != nil {
			return nil, fmt.Errorf("scan playlist: %w", err)
		}
		playlists = append(playlists, pl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlists: %w", err)
	}
	return playlists, nil
}

// GetByID returns a single playlist annotated with its owner's username.
func (p *Playlists) GetByID(ctx context.Context, id string) (PlaylistView, error) {
	var pl PlaylistView
	err := p.db.QueryRowContext(ctx, `
		SELECT p.id, p.name, u.username
		FROM playlists p
		JOIN users u ON u.id = p.owner
		WHERE p.id = $1
	`, id).Scan(&pl.ID, &pl.Name, &pl.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return PlaylistView{}, ErrPlaylistNotFound
	}
	if err != nil {
		return PlaylistView{}, fmt.Errorf("get playlist: %w", err)
	}
	return pl, nil
}

// DeleteByID removes a playlist. Its song associations are removed by the
// cascade rule at the schema boundary.
func (p *Playlists) DeleteByID(ctx context.Context, id string) error {
	res, err := p.db.ExecContext(ctx, `
		DELETE FROM playlists
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("delete playlist: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrPlaylistNotFound
	}
	return nil
}

// VerifyOwner succeeds only when userID is the playlist's owner.
func (p *Playlists) VerifyOwner(ctx context.Context, playlistID, userID string) error {
	var owner string
	err := p.db.QueryRowContext(ctx, `
		SELECT owner
		FROM playlists
		WHERE id = $1
	`, playlistID).Scan(&owner)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrPlaylistNotFound
	}
	if err != nil {
		return fmt.Errorf("lookup playlist owner: %w", err)
	}
	if owner != userID {
		return ErrForbidden
	}
	return nil
}

// VerifyAccess grants access to the owner or a registered collaborator.
// The ownership check runs first; only an ErrForbidden outcome falls back
// to the collaboration check. When both reject, the ownership rejection is
// the one reported; collaboration failures never cross this boundary.
func (p *Playlists) VerifyAccess(ctx context.Context, playlistID, userID string) error {
	ownerErr := p.VerifyOwner(ctx, playlistID, userID)
	if ownerErr == nil {
		return nil
	}
	if !errors.Is(ownerErr, ErrForbidden) {
		return ownerErr
	}
	if err := p.collabs.VerifyCollaborator(ctx, playlistID, userID); err != nil {
		return ownerErr
	}
	return nil
}

// VerifySongAccess is the check callers run before song-level operations.
// It applies the same owner-or-collaborator policy as VerifyAccess.
func (p *Playlists) VerifySongAccess(ctx context.Context, playlistID, userID string) error {
	return p.VerifyAccess(ctx, playlistID, userID)
}
