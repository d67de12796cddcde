package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Authentications persists issued refresh tokens so they can be revoked.
type Authentications struct {
	db *sql.DB
}

// NewAuthentications wires an Authentications store over the shared database handle.
func NewAuthentications(db *sql.DB) *Authentications {
	return &Authentications{db: db}
}

// AddToken registers a freshly issued refresh token.
func (a *Authentications) AddToken(ctx context.Context, token string) error {
	if _, err := a.db.ExecContext(ctx, `
		INSERT INTO authentications (token)
		VALUES ($1)
	`, token); err != nil {
		return fmt.Errorf("insert refresh token: %w", err)
	}
	return nil
}

// VerifyToken confirms the refresh token was issued and not revoked.
func (a *Authentications) VerifyToken(ctx context.Context, token string) error {
	var found string
	err := a.db.QueryRowContext(ctx, `
		SELECT token
		FROM authentications
		WHERE token = $1
	`, token).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRefreshTokenInvalid
	}
	if err != nil {
		return fmt.Errorf("lookup refresh token: %w", err)
	}
	return nil
}

// DeleteToken revokes a refresh token.
func (a *Authentications) DeleteToken(ctx context.Context, token string) error {
	res, err := a.db.ExecContext(ctx, `
		DELETE FROM authentications
		WHERE token = $1
	`, token)
	if err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrRefreshTokenInvalid
	}
	return nil
}
