package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pgale/chime/internal/core"
	"github.com/pgale/chime/internal/errors"
)

// CreatePlaylist inserts an empty playlist owned by the given user.
func (s *Store) CreatePlaylist(ctx context.Context, userID, name, description string) (*core.Playlist, error) {
	now := time.Now()
	p := &core.Playlist{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		CreatedBy:   userID,
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO playlists (id, user_id, name, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, userID, name, description, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert playlist: %w", err)
	}
	return p, nil
}

// ListPlaylists returns all playlists owned by the user, with tracks.
func (s *Store) ListPlaylists(ctx context.Context, userID string) ([]core.Playlist, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, description, thumbnail FROM playlists
		 WHERE user_id = ? ORDER BY created_at`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	defer rows.Close()

	var playlists []core.Playlist
	for rows.Next() {
		var p core.Playlist
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Thumbnail); err != nil {
			return nil, err
		}
		p.CreatedBy = userID
		playlists = append(playlists, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range playlists {
		tracks, err := s.playlistTracks(ctx, playlists[i].ID)
		if err != nil {
			return nil, err
		}
		playlists[i].Tracks = tracks
	}
	return playlists, nil
}

// GetPlaylist returns a single playlist with its tracks.
func (s *Store) GetPlaylist(ctx context.Context, playlistID string) (*core.Playlist, error) {
	var p core.Playlist
	err := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, name, description, thumbnail FROM playlists WHERE id = ?`,
		playlistID,
	).Scan(&p.ID, &p.CreatedBy, &p.Name, &p.Description, &p.Thumbnail)
	if err == sql.ErrNoRows {
		return nil, errors.ErrPlaylistNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load playlist: %w", err)
	}

	p.Tracks, err = s.playlistTracks(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// DeletePlaylist removes a playlist and its tracks.
func (s *Store) DeletePlaylist(ctx context.Context, playlistID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM playlists WHERE id = ?`, playlistID)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.ErrPlaylistNotFound
	}
	_, err = s.db.ExecContext(ctx, `DELETE FROM playlist_tracks WHERE playlist_id = ?`, playlistID)
	return err
}

// AddTrackToPlaylist appends a track. Tracks already present (by id) are
// ignored. The playlist thumbnail picks up the first track's artwork.
func (s *Store) AddTrackToPlaylist(ctx context.Context, playlistID string, t core.Track) error {
	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM playlist_tracks WHERE playlist_id = ? AND track_id = ?`,
		playlistID, t.ID,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return nil
	}

	var count int
	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM playlist_tracks WHERE playlist_id = ?`, playlistID,
	).Scan(&count); err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO playlist_tracks (playlist_id, position, track_id, title, artist, thumbnail, duration_seconds, video_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		playlistID, count, t.ID, t.Title, t.Artist, t.Thumbnail, int(t.Duration.Seconds()), t.VideoID,
	)
	if err != nil {
		return fmt.Errorf("failed to add track: %w", err)
	}

	if count == 0 {
		_, err = s.db.ExecContext(ctx,
			`UPDATE playlists SET thumbnail = ?, updated_at = ? WHERE id = ?`,
			t.Thumbnail, time.Now(), playlistID,
		)
	}
	return err
}

// RemoveTrackFromPlaylist removes a track and recomputes positions and the
// playlist thumbnail.
func (s *Store) RemoveTrackFromPlaylist(ctx context.Context, playlistID, trackID string) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM playlist_tracks WHERE playlist_id = ? AND track_id = ?`,
		playlistID, trackID,
	); err != nil {
		return fmt.Errorf("failed to remove track: %w", err)
	}

	tracks, err := s.playlistTracks(ctx, playlistID)
	if err != nil {
		return err
	}

	// Compact positions after removal.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM playlist_tracks WHERE playlist_id = ?`, playlistID,
	); err != nil {
		return err
	}
	for i, t := range tracks {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO playlist_tracks (playlist_id, position, track_id, title, artist, thumbnail, duration_seconds, video_id)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			playlistID, i, t.ID, t.Title, t.Artist, t.Thumbnail, int(t.Duration.Seconds()), t.VideoID,
		); err != nil {
			return err
		}
	}

	thumbnail := ""
	if len(tracks) > 0 {
		thumbnail = tracks[0].Thumbnail
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE playlists SET thumbnail = ?, updated_at = ? WHERE id = ?`,
		thumbnail, time.Now(), playlistID,
	); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) playlistTracks(ctx context.Context, playlistID string) ([]core.Track, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT track_id, title, artist, thumbnail, duration_seconds, video_id
		 FROM playlist_tracks WHERE playlist_id = ? ORDER BY position`,
		playlistID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load tracks: %w", err)
	}
	defer rows.Close()

	return scanTracks(rows)
}

func scanTracks(rows *sql.Rows) ([]core.Track, error) {
	var tracks []core.Track
	for rows.Next() {
		var t core.Track
		var seconds int
		if err := rows.Scan(&t.ID, &t.Title, &t.Artist, &t.Thumbnail, &seconds, &t.VideoID); err != nil {
			return nil, err
		}
		t.Duration = time.Duration(seconds) * time.Second
		tracks = append(tracks, t)
	}
	return tracks, rows.Err()
}
