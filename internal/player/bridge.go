package player

import "context"

// StateCode is the native state vocabulary of the embedded player widget.
// These codes never leave this package; the Adapter translates them into
// the normalized core.PlayerEvent contract.
type StateCode int

const (
	StateUnstarted StateCode = -1
	StateEnded     StateCode = 0
	StatePlaying   StateCode = 1
	StatePaused    StateCode = 2
	StateBuffering StateCode = 3
	StateCued      StateCode = 5
)

// BridgeEvent is a raw event from the embedded player.
type BridgeEvent struct {
	// Ready reports that the player instance became controllable.
	Ready bool
	// Code carries the native state code when Ready is false.
	Code StateCode
}

// Bridge is the native control surface of the embedded player widget.
// Commands are fire-and-forget: the widget acknowledges through its event
// stream, not through return values. Implementations must be safe to call
// from multiple goroutines.
type Bridge interface {
	// Start creates the player instance. Readiness is signaled
	// asynchronously through the event stream.
	Start(ctx context.Context) error

	// LoadVideo cues the media with the given platform identifier.
	LoadVideo(id string) error

	Play() error
	Pause() error

	// SeekTo jumps to an absolute offset in seconds.
	SeekTo(seconds float64) error

	// SetVolume accepts the widget's native 0-100 scale.
	SetVolume(percent int) error

	// CurrentTime reads the playback offset in seconds.
	CurrentTime() (float64, error)

	// Events returns the raw event stream.
	Events() <-chan BridgeEvent

	// Stop releases the player instance.
	Stop() error
}
