package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Collaborations owns the playlist/collaborator relation and implements
// CollaborationVerifier for the playlist access policy.
type Collaborations struct {
	db *sql.DB
}

// NewCollaborations wires a Collaborations store over the shared database handle.
func NewCollaborations(db *sql.DB) *Collaborations {
	return &Collaborations{db: db}
}

// Add registers userID as a collaborator on a playlist.
func (c *Collaborations) Add(ctx context.Context, playlistID, userID string) (string, error) {
	id, err := newID("collab")
	if err != nil {
		return "", fmt.Errorf("generate collaboration id: %w", err)
	}

	var inserted string
	err = c.db.QueryRowContext(ctx, `
		INSERT INTO collaborations (id, playlist_id, user_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`, id, playlistID, userID).Scan(&inserted)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("insert collaboration: %w", ErrInvariant)
	}
	if isUniqueViolation(err) {
		return "", ErrCollaborationExists
	}
	switch violatedForeignKey(err) {
	case "collaborations_playlist_id_fkey":
		return "", ErrPlaylistNotFound
	case "collaborations_user_id_fkey":
		return "", ErrUserNotFound
	}
	if err != nil {
		return "", fmt.Errorf("insert collaboration: %w", err)
	}
	return inserted, nil
}

// Delete revokes a user's collaboration on a playlist.
func (c *Collaborations) Delete(ctx context.Context, playlistID, userID string) error {
	res, err := c.db.ExecContext(ctx, `
		DELETE FROM collaborations
		WHERE playlist_id = $1 AND user_id = $2
	`, playlistID, userID)
	if err != nil {
		return fmt.Errorf("delete collaboration: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrCollaborationNotFound
	}
	return nil
}

// VerifyCollaborator confirms userID is registered on the playlist.
func (c *Collaborations) VerifyCollaborator(ctx context.Context, playlistID, userID string) error {
	var id string
	err := c.db.QueryRowContext(ctx, `
		SELECT id
		FROM collaborations
		WHERE playlist_id = $1 AND user_id = $2
	`, playlistID, userID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotCollaborator
	}
	if err != nil {
		return fmt.Errorf("check collaboration: %w", err)
	}
	return nil
}
