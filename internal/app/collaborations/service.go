// Package collaborations manages who may collaborate on a playlist.
// Granting and revoking are owner-only operations.
package collaborations

import (
	"context"
)

// Store captures the collaboration persistence operations.
type Store interface {
	Add(ctx context.Context, playlistID, userID string) (string, error)
	Delete(ctx context.Context, playlistID, userID string) error
}

// PlaylistAuthorizer resolves playlist ownership.
type PlaylistAuthorizer interface {
	VerifyOwner(ctx context.Context, playlistID, userID string) error
}

// UserChecker confirms the target user exists before a grant.
type UserChecker interface {
	MustExist(ctx context.Context, userID string) error
}

// Service exposes collaboration workflows.
type Service interface {
	Add(ctx context.Context, ownerID, playlistID, userID string) (string, error)
	Delete(ctx context.Context, ownerID, playlistID, userID string) error
}

type service struct {
	collabs   Store
	playlists PlaylistAuthorizer
	users     UserChecker
}

// New wires a Service backed by the provided stores.
func New(collabs Store, playlists PlaylistAuthorizer, users UserChecker) Service {
	return &service{collabs: collabs, playlists: playlists, users: users}
}

func (s *service) Add(ctx context.Context, ownerID, playlistID, userID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := s.playlists.VerifyOwner(ctx, playlistID, ownerID); err != nil {
		return "", err
	}
	if err := s.users.MustExist(ctx, userID); err != nil {
		return "", err
	}
	return s.collabs.Add(ctx, playlistID, userID)
}

func (s *service) Delete(ctx context.Context, ownerID, playlistID, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.playlists.VerifyOwner(ctx, playlistID, ownerID); err != nil {
		return err
	}
	return s.collabs.Delete(ctx, playlistID, userID)
}
