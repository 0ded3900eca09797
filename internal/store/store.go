// Package store persists playlists, liked songs, play history and user
// accounts in a local SQLite database.
package store

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	avatar        TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS playlists (
	id          TEXT PRIMARY KEY,
	user_id     TEXT NOT NULL,
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	thumbnail   TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMP NOT NULL,
	updated_at  TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS playlist_tracks (
	playlist_id      TEXT NOT NULL,
	position         INTEGER NOT NULL,
	track_id         TEXT NOT NULL,
	title            TEXT NOT NULL,
	artist           TEXT NOT NULL,
	thumbnail        TEXT NOT NULL DEFAULT '',
	duration_seconds INTEGER NOT NULL DEFAULT 0,
	video_id         TEXT NOT NULL,
	PRIMARY KEY (playlist_id, position)
);

CREATE TABLE IF NOT EXISTS liked_songs (
	user_id          TEXT NOT NULL,
	track_id         TEXT NOT NULL,
	title            TEXT NOT NULL,
	artist           TEXT NOT NULL,
	thumbnail        TEXT NOT NULL DEFAULT '',
	duration_seconds INTEGER NOT NULL DEFAULT 0,
	video_id         TEXT NOT NULL,
	liked_at         TIMESTAMP NOT NULL,
	PRIMARY KEY (user_id, track_id)
);

CREATE TABLE IF NOT EXISTS recently_played (
	user_id          TEXT NOT NULL,
	track_id         TEXT NOT NULL,
	title            TEXT NOT NULL,
	artist           TEXT NOT NULL,
	thumbnail        TEXT NOT NULL DEFAULT '',
	duration_seconds INTEGER NOT NULL DEFAULT 0,
	video_id         TEXT NOT NULL,
	played_at        TIMESTAMP NOT NULL,
	PRIMARY KEY (user_id, track_id)
);
`

// Open opens (creating if necessary) the database at the given path.
// Use ":memory:" for an ephemeral database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}
