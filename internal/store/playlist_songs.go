package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PlaylistSong is a song as it appears inside a playlist.
type PlaylistSong struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Performer string `json:"performer"`
}

// SongChecker confirms a song exists before it is referenced. Failure means
// the song is unknown and the caller must not write.
type SongChecker interface {
	MustExist(ctx context.Context, songID string) error
}

// PlaylistSongs owns the playlist/song join rows. (playlist_id, song_id)
// carries no unique constraint: duplicate adds create distinct rows and a
// single logical membership; callers dedupe upstream if they need to.
type PlaylistSongs struct {
	db    *sql.DB
	songs SongChecker
}

// NewPlaylistSongs wires a PlaylistSongs store over the shared database handle.
func NewPlaylistSongs(db *sql.DB, songs SongChecker) *PlaylistSongs {
	return &PlaylistSongs{db: db, songs: songs}
}

// Add links a song to a playlist. The existence check runs before the
// insert as a precondition. The two statements are not one transaction;
// the foreign key on song_id covers the window between them, so a song
// deleted in between still surfaces as not found.
func (p *PlaylistSongs) Add(ctx context.Context, playlistID, songID string) error {
	if err := p.songs.MustExist(ctx, songID); err != nil {
		return err
	}

	id, err := newID("playlist_song")
	if err != nil {
		return fmt.Errorf("generate playlist song id: %w", err)
	}

	var inserted string
	err = p.db.QueryRowContext(ctx, `
		INSERT INTO playlist_songs (id, playlist_id, song_id)
		VALUES ($1, $2, $3)
		RETURNING id
	`, id, playlistID, songID).Scan(&inserted)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("insert playlist song: %w", ErrInvariant)
	}
	switch violatedForeignKey(err) {
	case "playlist_songs_song_id_fkey":
		return ErrSongNotFound
	case "playlist_songs_playlist_id_fkey":
		return ErrPlaylistNotFound
	}
	if err != nil {
		return fmt.Errorf("insert playlist song: %w", err)
	}
	return nil
}

// ListByPlaylist returns the songs linked to a playlist. An empty result
// set is reported as not found; an existing-but-empty playlist does not
// produce an empty list here.
func (p *PlaylistSongs) ListByPlaylist(ctx context.Context, playlistID string) ([]PlaylistSong, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT s.id, s.title, s.performer
		FROM songs s
		JOIN playlist_songs ps ON ps.song_id = s.id
		WHERE ps.playlist_id = $1
		ORDER BY s.title ASC, s.id ASC
	`, playlistID)
	if err != nil {
		return nil, fmt.Errorf("list playlist songs: %w", err)
	}
	defer rows.Close()

	var songs []PlaylistSong
	for rows.Next() {
		var song PlaylistSong
		if err := rows.Scan(&song.ID, &song.Title, &song.Performer); err != nil {
			return nil, fmt.Errorf("scan playlist song: %w", err)
		}
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate playlist songs: %w", err)
	}
	if len(songs) == 0 {
		return nil, ErrPlaylistSongNotFound
	}
	return songs, nil
}

// Remove deletes the association between a playlist and a song.
func (p *PlaylistSongs) Remove(ctx context.Context, playlistID, songID string) error {
	res, err := p.db.ExecContext(ctx, `
		DELETE FROM playlist_songs
		WHERE playlist_id = $1 AND song_id = $2
	`, playlistID, songID)
	if err != nil {
		return fmt.Errorf("delete playlist song: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrPlaylistSongNotFound
	}
	return nil
}
