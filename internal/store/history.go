package store

import (
	"context"
	"fmt"
	"time"

	"github.com/pgale/chime/internal/core"
)

// historyLimit caps the persisted recently-played entries per user.
const historyLimit = 20

// AddRecentlyPlayed upserts a play record. Re-playing a track refreshes
// its timestamp; entries beyond the cap are evicted oldest-first.
func (s *Store) AddRecentlyPlayed(ctx context.Context, userID string, t core.Track) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO recently_played (user_id, track_id, title, artist, thumbnail, duration_seconds, video_id, played_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (user_id, track_id) DO UPDATE SET played_at = excluded.played_at`,
		userID, t.ID, t.Title, t.Artist, t.Thumbnail, int(t.Duration.Seconds()), t.VideoID, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to record play: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`DELETE FROM recently_played WHERE user_id = ? AND track_id NOT IN (
		   SELECT track_id FROM recently_played WHERE user_id = ?
		   ORDER BY played_at DESC LIMIT ?
		 )`,
		userID, userID, historyLimit,
	)
	return err
}

// RecentlyPlayed returns the user's play history, most recent first.
func (s *Store) RecentlyPlayed(ctx context.Context, userID string) ([]core.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT track_id, title, artist, thumbnail, duration_seconds, video_id, played_at
		 FROM recently_played WHERE user_id = ? ORDER BY played_at DESC LIMIT ?`,
		userID, historyLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}
	defer rows.Close()

	var entries []core.HistoryEntry
	for rows.Next() {
		var e core.HistoryEntry
		var seconds int
		if err := rows.Scan(&e.Track.ID, &e.Track.Title, &e.Track.Artist, &e.Track.Thumbnail, &seconds, &e.Track.VideoID, &e.PlayedAt); err != nil {
			return nil, err
		}
		e.Track.Duration = time.Duration(seconds) * time.Second
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
