package core

import "time"

// Track represents a playable music video. Tracks are immutable once
// constructed; they are created by the metadata layer and passed by value.
type Track struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Artist    string        `json:"artist"`
	Thumbnail string        `json:"thumbnail"`
	Duration  time.Duration `json:"duration"`
	VideoID   string        `json:"video_id"`
}

// SearchResult is a lightweight track reference returned by search,
// before full details (duration) have been resolved.
type SearchResult struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Thumbnail string `json:"thumbnail"`
	Channel   string `json:"channel"`
	VideoID   string `json:"video_id"`
}

// User represents an authenticated account.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar,omitempty"`
}

// Playlist is a named, ordered collection of tracks owned by a user.
type Playlist struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Tracks      []Track `json:"tracks"`
	Thumbnail   string  `json:"thumbnail,omitempty"`
	CreatedBy   string  `json:"created_by"`
}

// HistoryEntry represents a recently played track.
type HistoryEntry struct {
	Track    Track     `json:"track"`
	PlayedAt time.Time `json:"played_at"`
}
