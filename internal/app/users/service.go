// Package users covers account signup and the login/refresh/logout cycle.
package users

import (
	"context"

	"songcrate/internal/store"
)

// Store captures the account persistence operations.
type Store interface {
	Create(ctx context.Context, username, password, fullname string) (string, error)
	GetByID(ctx context.Context, id string) (store.User, error)
	VerifyCredentials(ctx context.Context, username, password string) (string, error)
}

// TokenStore persists issued refresh tokens.
type TokenStore interface {
	AddToken(ctx context.Context, token string) error
	VerifyToken(ctx context.Context, token string) error
	DeleteToken(ctx context.Context, token string) error
}

// TokenManager signs and validates the token pair.
type TokenManager interface {
	NewAccessToken(userID string) (string, error)
	NewRefreshToken(userID string) (string, error)
	ParseRefresh(token string) (string, error)
}

// TokenPair is what a successful login returns.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Service exposes account workflows.
type Service interface {
	Signup(ctx context.Context, username, password, fullname string) (string, error)
	Get(ctx context.Context, id string) (store.User, error)
	Login(ctx context.Context, username, password string) (TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
}

type service struct {
	store  Store
	tokens TokenStore
	signer TokenManager
}

// New wires a Service backed by the provided stores and token manager.
func New(store Store, tokens TokenStore, signer TokenManager) Service {
	return &service{store: store, tokens: tokens, signer: signer}
}

func (s *service) Signup(ctx context.Context, username, password, fullname string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.store.Create(ctx, username, password, fullname)
}

func (s *service) Get(ctx context.Context, id string) (store.User, error) {
	if err := ctx.Err(); err != nil {
		return store.User{}, err
	}
	return s.store.GetByID(ctx, id)
}

// Login validates credentials, issues a token pair, and registers the
// refresh token so it can be revoked later.
func (s *service) Login(ctx context.Context, username, password string) (TokenPair, error) {
	if err := ctx.Err(); err != nil {
		return TokenPair{}, err
	}

	userID, err := s.store.VerifyCredentials(ctx, username, password)
	if err != nil {
		return TokenPair{}, err
	}

	access, err := s.signer.NewAccessToken(userID)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.signer.NewRefreshToken(userID)
	if err != nil {
		return TokenPair{}, err
	}

	if err := s.tokens.AddToken(ctx, refresh); err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a registered refresh token for a new access token.
func (s *service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := s.tokens.VerifyToken(ctx, refreshToken); err != nil {
		return "", err
	}
	userID, err := s.signer.ParseRefresh(refreshToken)
	if err != nil {
		return "", err
	}
	return s.signer.NewAccessToken(userID)
}

// Logout revokes a refresh token.
func (s *service) Logout(ctx context.Context, refreshToken string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.tokens.VerifyToken(ctx, refreshToken); err != nil {
		return err
	}
	return s.tokens.DeleteToken(ctx, refreshToken)
}
