package player

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pgale/chime/internal/core"
	"github.com/pgale/chime/internal/errors"
)

// phase tracks the adapter's readiness state machine.
type phase int

const (
	phaseUninitialized phase = iota
	phaseInitializing
	phaseReady
	phaseClosed
)

// command is a deferred widget operation queued until the player is ready.
type command struct {
	name string
	run  func() error
}

// Adapter wraps a Bridge and exposes the normalized core.Player contract.
// Commands issued before the widget signals ready are queued and drained on
// the transition to ready, so no command is silently lost. Exactly one
// widget instance exists per session.
type Adapter struct {
	mu      sync.Mutex
	log     *log.Logger
	bridge  Bridge
	phase   phase
	pending []command
	mediaID string
	playing bool

	events chan core.PlayerEvent
	done   chan struct{}
}

// NewAdapter creates an adapter over the given bridge.
func NewAdapter(bridge Bridge, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.Default()
	}
	return &Adapter{
		log:    logger.With("component", "player"),
		bridge: bridge,
		events: make(chan core.PlayerEvent, 16),
		done:   make(chan struct{}),
	}
}

// Initialize starts the widget. It is a no-op after the first call.
// Failure to start is non-fatal: the adapter stays uninitialized, commands
// are dropped with a log line, and playback simply never begins.
func (a *Adapter) Initialize(ctx context.Context) error {
	a.mu.Lock()
	if a.phase != phaseUninitialized {
		a.mu.Unlock()
		return nil
	}
	a.phase = phaseInitializing
	a.mu.Unlock()

	if err := a.bridge.Start(ctx); err != nil {
		a.mu.Lock()
		a.phase = phaseUninitialized
		a.mu.Unlock()
		a.log.Warn("embedded player failed to start", "err", err)
		return err
	}

	go a.pump()
	return nil
}

// pump translates raw bridge events into the normalized event stream.
func (a *Adapter) pump() {
	for {
		select {
		case <-a.done:
			return
		case ev, ok := <-a.bridge.Events():
			if !ok {
				return
			}
			a.handleBridgeEvent(ev)
		}
	}
}

func (a *Adapter) handleBridgeEvent(ev BridgeEvent) {
	a.mu.Lock()

	if ev.Ready {
		if a.phase == phaseInitializing {
			a.phase = phaseReady
			queued := a.pending
			a.pending = nil
			a.mu.Unlock()

			for _, c := range queued {
				if err := c.run(); err != nil {
					a.log.Warn("deferred command failed", "command", c.name, "err", err)
				}
			}
			a.emit(core.PlayerEvent{Type: core.PlayerReady})
			return
		}
		a.mu.Unlock()
		return
	}

	mediaID := a.mediaID
	switch ev.Code {
	case StateEnded:
		a.playing = false
		a.mu.Unlock()
		a.emit(core.PlayerEvent{Type: core.PlayerEnded, MediaID: mediaID})
	case StatePlaying:
		a.playing = true
		a.mu.Unlock()
		a.emit(core.PlayerEvent{Type: core.PlayerStateChanged, Playing: true, MediaID: mediaID})
	case StatePaused:
		a.playing = false
		a.mu.Unlock()
		a.emit(core.PlayerEvent{Type: core.PlayerStateChanged, Playing: false, MediaID: mediaID})
	default:
		// Buffering, cued and unstarted stay internal to the widget.
		a.mu.Unlock()
	}
}

// emit delivers an event without blocking the pump.
func (a *Adapter) emit(ev core.PlayerEvent) {
	select {
	case a.events <- ev:
	default:
		a.log.Debug("event channel full, dropping", "type", ev.Type)
	}
}

// submit runs the command immediately when ready, otherwise queues it.
// Commands against an uninitialized or closed adapter are dropped.
func (a *Adapter) submit(name string, run func() error) error {
	a.mu.Lock()
	switch a.phase {
	case phaseReady:
		a.mu.Unlock()
		return run()
	case phaseInitializing:
		a.pending = append(a.pending, command{name: name, run: run})
		a.mu.Unlock()
		return nil
	default:
		a.mu.Unlock()
		a.log.Debug("dropping command, player unavailable", "command", name)
		return nil
	}
}

// Load cues the given media identifier. A new load supersedes any queued
// load that has not reached the widget yet.
func (a *Adapter) Load(ctx context.Context, mediaID string) error {
	a.mu.Lock()
	a.mediaID = mediaID
	if a.phase == phaseInitializing {
		kept := a.pending[:0]
		for _, c := range a.pending {
			if c.name != "load" {
				kept = append(kept, c)
			}
		}
		a.pending = kept
	}
	a.mu.Unlock()

	return a.submit("load", func() error {
		return a.bridge.LoadVideo(mediaID)
	})
}

// Play starts or resumes playback.
func (a *Adapter) Play(ctx context.Context) error {
	return a.submit("play", a.bridge.Play)
}

// Pause pauses playback.
func (a *Adapter) Pause(ctx context.Context) error {
	return a.submit("pause", a.bridge.Pause)
}

// Seek jumps to an absolute position.
func (a *Adapter) Seek(ctx context.Context, pos time.Duration) error {
	if pos < 0 {
		pos = 0
	}
	return a.submit("seek", func() error {
		return a.bridge.SeekTo(pos.Seconds())
	})
}

// SetVolume converts a [0, 1] fraction to the widget's 0-100 scale.
func (a *Adapter) SetVolume(ctx context.Context, volume float64) error {
	percent := int(core.ClampVolume(volume) * 100)
	return a.submit("volume", func() error {
		return a.bridge.SetVolume(percent)
	})
}

// Position reads the current playback offset. Before the widget is ready
// it returns ErrPlayerNotReady; callers poll again on the next tick.
func (a *Adapter) Position(ctx context.Context) (time.Duration, error) {
	a.mu.Lock()
	ready := a.phase == phaseReady
	a.mu.Unlock()
	if !ready {
		return 0, errors.ErrPlayerNotReady
	}

	seconds, err := a.bridge.CurrentTime()
	if err != nil {
		return 0, err
	}
	return time.Duration(seconds * float64(time.Second)), nil
}

// Events returns the normalized event stream.
func (a *Adapter) Events() <-chan core.PlayerEvent {
	return a.events
}

// Suspend pauses playback but keeps the widget alive so a later visibility
// or navigation change can resume without re-buffering.
func (a *Adapter) Suspend(ctx context.Context) error {
	return a.Pause(ctx)
}

// Close pauses playback before releasing the widget. Pausing first avoids
// audio artifacts from destroying the instance mid-transition.
func (a *Adapter) Close() error {
	a.mu.Lock()
	if a.phase == phaseClosed {
		a.mu.Unlock()
		return nil
	}
	wasReady := a.phase == phaseReady
	a.phase = phaseClosed
	a.pending = nil
	a.mu.Unlock()

	if wasReady {
		if err := a.bridge.Pause(); err != nil {
			a.log.Debug("pause on close failed", "err", err)
		}
	}
	close(a.done)
	return a.bridge.Stop()
}

// Ensure Adapter implements core.Player
var _ core.Player = (*Adapter)(nil)
