package store

import (
	"context"
	"fmt"
	"time"

	"github.com/pgale/chime/internal/core"
)

// ToggleLike flips liked membership for a track and reports the new state.
func (s *Store) ToggleLike(ctx context.Context, userID string, t core.Track) (bool, error) {
	liked, err := s.IsLiked(ctx, userID, t.ID)
	if err != nil {
		return false, err
	}

	if liked {
		_, err := s.db.ExecContext(ctx,
			`DELETE FROM liked_songs WHERE user_id = ? AND track_id = ?`,
			userID, t.ID,
		)
		if err != nil {
			return false, fmt.Errorf("failed to unlike: %w", err)
		}
		return false, nil
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO liked_songs (user_id, track_id, title, artist, thumbnail, duration_seconds, video_id, liked_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		userID, t.ID, t.Title, t.Artist, t.Thumbnail, int(t.Duration.Seconds()), t.VideoID, time.Now(),
	)
	if err != nil {
		return false, fmt.Errorf("failed to like: %w", err)
	}
	return true, nil
}

// IsLiked reports whether the user has liked the track.
func (s *Store) IsLiked(ctx context.Context, userID, trackID string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM liked_songs WHERE user_id = ? AND track_id = ?`,
		userID, trackID,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// LikedSongs returns the user's liked tracks, most recently liked first.
func (s *Store) LikedSongs(ctx context.Context, userID string) ([]core.Track, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT track_id, title, artist, thumbnail, duration_seconds, video_id
		 FROM liked_songs WHERE user_id = ? ORDER BY liked_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list liked songs: %w", err)
	}
	defer rows.Close()

	return scanTracks(rows)
}
