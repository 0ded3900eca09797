package core

import (
	"context"
	"time"
)

// PlayerEventType identifies a normalized player event.
type PlayerEventType int

const (
	// PlayerReady fires once the embedded player can accept commands.
	PlayerReady PlayerEventType = iota
	// PlayerEnded fires when the current media finishes.
	PlayerEnded
	// PlayerStateChanged fires on play/pause transitions.
	PlayerStateChanged
)

// PlayerEvent is the normalized event vocabulary emitted by a Player.
// MediaID identifies the media that was loaded when the event originated,
// so consumers can discard events from superseded loads.
type PlayerEvent struct {
	Type    PlayerEventType
	Playing bool
	MediaID string
}

// Player defines the control surface of the embedded playback widget.
// All commands are asynchronous: they may be deferred until the player
// reports ready and never block or fail because of readiness.
type Player interface {
	// Initialize creates the underlying player instance. Called once per
	// session; failure is non-fatal to the application.
	Initialize(ctx context.Context) error

	// Load cues the media with the given external identifier. Each call
	// supersedes any pending load.
	Load(ctx context.Context, mediaID string) error

	Play(ctx context.Context) error
	Pause(ctx context.Context) error

	// Seek jumps to an absolute position.
	Seek(ctx context.Context, pos time.Duration) error

	// SetVolume accepts a fraction in [0, 1].
	SetVolume(ctx context.Context, volume float64) error

	// Position reads the current playback offset. The value may be stale
	// by up to one polling interval.
	Position(ctx context.Context) (time.Duration, error)

	// Events returns the normalized event stream.
	Events() <-chan PlayerEvent

	// Suspend pauses playback without releasing the player, for
	// navigation or visibility teardown where playback may resume.
	Suspend(ctx context.Context) error

	// Close pauses playback and releases the player.
	Close() error
}
