// Package songs exposes the song catalogue workflows.
package songs

import (
	"context"

	"songcrate/internal/store"
)

// Store captures the song persistence operations required by the service.
type Store interface {
	Create(ctx context.Context, song store.Song) (string, error)
	GetByID(ctx context.Context, id string) (store.Song, error)
	List(ctx context.Context, filter store.SongFilter) ([]store.Song, error)
}

// Service coordinates song catalogue operations.
type Service interface {
	Create(ctx context.Context, song store.Song) (string, error)
	Get(ctx context.Context, id string) (store.Song, error)
	List(ctx context.Context, filter store.SongFilter) ([]store.Song, error)
}

type service struct {
	store Store
}

// New wires a Service backed by the provided Store.
func New(store Store) Service {
	return &service{store: store}
}

func (s *service) Create(ctx context.Context, song store.Song) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.store.Create(ctx, song)
}

func (s *service) Get(ctx context.Context, id string) (store.Song, error) {
	if err := ctx.Err(); err != nil {
		return store.Song{}, err
	}
	return s.store.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter store.SongFilter) ([]store.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.List(ctx, filter)
}
