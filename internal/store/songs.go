package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Song represents a track in the catalogue.
type Song struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Year      int    `json:"year"`
	Performer string `json:"performer"`
	Genre     string `json:"genre,omitempty"`
	Duration  int    `json:"duration,omitempty"`
}

// SongFilter defines criteria for filtering songs.
type SongFilter struct {
	Title     string
	Performer string
}

// Songs owns the song catalogue and doubles as the existence checker
// consumed by PlaylistSongs.
type Songs struct {
	db *sql.DB
}

// NewSongs wires a Songs store over the shared database handle.
func NewSongs(db *sql.DB) *Songs {
	return &Songs{db: db}
}

// Create persists a song and returns its generated id.
func (s *Songs) Create(ctx context.Context, song Song) (string, error) {
	id, err := newID("song")
	if err != nil {
		return "", fmt.Errorf("generate song id: %w", err)
	}

	var inserted string
	err = s.db.QueryRowContext(ctx, `
		INSERT INTO songs (id, title, year, performer, genre, duration)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, id, song.Title, song.Year, song.Performer, nullIfEmpty(song.Genre), song.Duration).Scan(&inserted)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("insert song: %w", ErrInvariant)
	}
	if err != nil {
		return "", fmt.Errorf("insert song: %w", err)
	}
	return inserted, nil
}

// GetByID returns a single song.
func (s *Songs) GetByID(ctx context.Context, id string) (Song, error) {
	var song Song
	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, year, performer, COALESCE(genre, ''), COALESCE(duration, 0)
		FROM songs
		WHERE id = $1
	`, id).Scan(&song.ID, &song.Title, &song.Year, &song.Performer, &song.Genre, &song.Duration)
	if errors.Is(err, sql.ErrNoRows) {
		return Song{}, ErrSongNotFound
	}
	if err != nil {
		return Song{}, fmt.Errorf("get song: %w", err)
	}
	return song, nil
}

// List returns songs matching the filter.
func (s *Songs) List(ctx context.Context, filter SongFilter) ([]Song, error) {
	query := `
		SELECT id, title, year, performer, COALESCE(genre, ''), COALESCE(duration, 0)
		FROM songs
		WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Title != "" {
		query += fmt.Sprintf(" AND title ILIKE $%d", argIdx)
		args = append(args, "%"+filter.Title+"%")
		argIdx++
	}
	if filter.Performer != "" {
		query += fmt.Sprintf(" AND performer ILIKE $%d", argIdx)
		args = append(args, "%"+filter.Performer+"%")
		argIdx++
	}

	query += " ORDER BY title ASC, id ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list songs: %w", err)
	}
	defer rows.Close()

	songs := make([]Song, 0)
	for rows.Next() {
		var song Song
		if err := rows.Scan(&song.ID, &song.Title, &song.Year, &song.Performer, &song.Genre, &song.Duration); err != nil {
			return nil, fmt.Errorf("scan song: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate songs: %w", err)
	}
	return songs, nil
}

// MustExist confirms a song id references a stored row.
func (s *Songs) MustExist(ctx context.Context, id string) error {
	var found string
	err := s.db.QueryRowContext(ctx, `
		SELECT id
		FROM songs
		WHERE id = $1
	`, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrSongNotFound
	}
	if err != nil {
		return fmt.Errorf("check song: %w", err)
	}
	return nil
}

func nullIfEmpty(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}
