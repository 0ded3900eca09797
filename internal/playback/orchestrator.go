package playback

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pgale/chime/internal/core"
	"github.com/pgale/chime/internal/errors"
)

// seekBarrierWindow is how long polled positions behind an optimistic seek
// target are discarded, covering the widget's seek acknowledgement latency.
const seekBarrierWindow = 2 * time.Second

// Library is the persistence collaborator the engine pushes side effects to.
type Library interface {
	AddRecentlyPlayed(ctx context.Context, userID string, t core.Track) error
	ToggleLike(ctx context.Context, userID string, t core.Track) (liked bool, err error)
	IsLiked(ctx context.Context, userID, trackID string) (bool, error)
}

// Auth exposes the current session to the engine.
type Auth interface {
	Authenticated() bool
	CurrentUser() *core.User
}

// Orchestrator is the canonical playback state machine. It owns the queue
// and PlaybackState, commands the player, and reconciles the player's
// asynchronous events with intended state. Adapter events are hints, not
// ground truth: duration always comes from track metadata, and events
// tagged with a superseded media id are discarded.
type Orchestrator struct {
	mu      sync.Mutex
	log     *log.Logger
	player  core.Player
	library Library
	auth    Auth

	state   core.PlaybackState
	queue   core.Queue
	history *History

	// Mute bookkeeping is independent of the widget's own volume memory:
	// unmute restores the exact pre-mute volume, including zero.
	preMuteVolume float64
	muted         bool

	hidden bool

	// loadGen increments on every track change. Poll samples and player
	// events carrying an older generation or media id are stale and ignored.
	loadGen     uint64
	seekBarrier time.Duration
	seekAt      time.Time

	// Repeat and shuffle are rendered controls with no bound behavior.
	repeat  bool
	shuffle bool

	poller        *Poller
	onLoginPrompt func()
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLibrary attaches the persistence collaborator.
func WithLibrary(l Library) Option {
	return func(o *Orchestrator) { o.library = l }
}

// WithAuth attaches the auth collaborator.
func WithAuth(a Auth) Option {
	return func(o *Orchestrator) { o.auth = a }
}

// WithLoginPrompt registers the callback invoked when an unauthenticated
// user attempts a gated action.
func WithLoginPrompt(fn func()) Option {
	return func(o *Orchestrator) { o.onLoginPrompt = fn }
}

// New creates an orchestrator driving the given player.
func New(player core.Player, pollInterval time.Duration, logger *log.Logger, opts ...Option) *Orchestrator {
	if logger == nil {
		logger = log.Default()
	}
	o := &Orchestrator{
		log:     logger.With("component", "playback"),
		player:  player,
		history: &History{},
		state:   core.PlaybackState{Volume: 0.7},
	}
	o.preMuteVolume = o.state.Volume
	for _, opt := range opts {
		opt(o)
	}
	o.poller = NewPoller(player, pollInterval, o.applyPolledPosition, logger)
	return o
}

// Run consumes player events until the context is cancelled. It is the
// only consumer of the normalized event stream.
func (o *Orchestrator) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-o.player.Events():
			if !ok {
				return
			}
			o.HandleEvent(ctx, ev)
		}
	}
}

// HandleEvent reconciles a normalized player event with intended state.
func (o *Orchestrator) HandleEvent(ctx context.Context, ev core.PlayerEvent) {
	switch ev.Type {
	case core.PlayerReady:
		o.mu.Lock()
		volume := o.state.Volume
		playing := o.state.IsPlaying && o.state.HasTrack()
		o.mu.Unlock()

		if err := o.player.SetVolume(ctx, volume); err != nil {
			o.log.Debug("volume sync on ready failed", "err", err)
		}
		if playing {
			if err := o.player.Play(ctx); err != nil {
				o.log.Debug("play sync on ready failed", "err", err)
			}
		}

	case core.PlayerEnded:
		if o.isStale(ev.MediaID) {
			o.log.Debug("discarding stale ended event", "media", ev.MediaID)
			return
		}
		// Always advance on end, regardless of the repeat/shuffle toggles.
		o.PlayNext(ctx)

	case core.PlayerStateChanged:
		if o.isStale(ev.MediaID) {
			return
		}
		o.mu.Lock()
		if o.state.HasTrack() && o.state.IsPlaying != ev.Playing {
			o.state.IsPlaying = ev.Playing
			if ev.Playing {
				gen := o.loadGen
				o.mu.Unlock()
				o.poller.Start(gen)
				return
			}
			o.mu.Unlock()
			o.poller.Stop()
			return
		}
		o.mu.Unlock()
	}
}

// isStale reports whether an event's media id no longer matches the
// current track. Events without a media id are trusted.
func (o *Orchestrator) isStale(mediaID string) bool {
	if mediaID == "" {
		return false
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return !o.state.HasTrack() || o.state.Track.VideoID != mediaID
}

// SetCurrentTrack loads a track and begins playing it. Progress resets to
// zero and the authoritative duration comes from the track metadata.
func (o *Orchestrator) SetCurrentTrack(ctx context.Context, t core.Track) {
	o.mu.Lock()
	o.loadGen++
	gen := o.loadGen
	track := t
	o.state.Track = &track
	o.state.IsPlaying = true
	o.state.Progress = 0
	o.state.Duration = t.Duration
	o.seekBarrier = 0
	o.seekAt = time.Time{}
	o.mu.Unlock()

	if err := o.player.Load(ctx, t.VideoID); err != nil {
		o.log.Warn("load failed", "video", t.VideoID, "err", err)
	}
	if err := o.player.Play(ctx); err != nil {
		o.log.Debug("play after load failed", "err", err)
	}

	o.recordPlay(ctx, t)
	o.poller.Start(gen)
}

// recordPlay appends to the recently-played history and persists it for
// authenticated users. Persistence failures are non-fatal.
func (o *Orchestrator) recordPlay(ctx context.Context, t core.Track) {
	o.history.Add(t)

	if o.library == nil || o.auth == nil || !o.auth.Authenticated() {
		return
	}
	user := o.auth.CurrentUser()
	if user == nil {
		return
	}
	if err := o.library.AddRecentlyPlayed(ctx, user.ID, t); err != nil {
		o.log.Warn("failed to persist recently played", "track", t.ID, "err", err)
	}
}

// TogglePlay flips the play/pause intent and synchronizes the player.
// With no current track it is a no-op.
func (o *Orchestrator) TogglePlay(ctx context.Context) {
	o.mu.Lock()
	if !o.state.HasTrack() {
		o.mu.Unlock()
		return
	}
	o.state.IsPlaying = !o.state.IsPlaying
	playing := o.state.IsPlaying
	gen := o.loadGen
	o.mu.Unlock()

	if playing {
		if err := o.player.Play(ctx); err != nil {
			o.log.Debug("play failed", "err", err)
		}
		o.poller.Start(gen)
		return
	}
	if err := o.player.Pause(ctx); err != nil {
		o.log.Debug("pause failed", "err", err)
	}
	o.poller.Stop()
}

// PlayNext advances to the queue entry after the current track. At the end
// of the queue playback stops rather than wrapping around.
func (o *Orchestrator) PlayNext(ctx context.Context) {
	o.mu.Lock()
	if o.queue.IsEmpty() {
		o.mu.Unlock()
		return
	}

	var next *core.Track
	if !o.state.HasTrack() {
		tracks := o.queue.Tracks()
		next = &tracks[0]
	} else {
		idx := o.queue.IndexOf(o.state.Track.ID)
		if idx < 0 {
			// Current track is not in the queue: navigation is undefined.
			o.mu.Unlock()
			return
		}
		next = o.queue.NextAfter(o.state.Track.ID)
	}
	o.mu.Unlock()

	if next == nil {
		o.stop(ctx)
		return
	}
	o.SetCurrentTrack(ctx, *next)
}

// PlayPrevious moves to the queue entry before the current track.
func (o *Orchestrator) PlayPrevious(ctx context.Context) {
	o.mu.Lock()
	if o.queue.IsEmpty() || !o.state.HasTrack() {
		o.mu.Unlock()
		return
	}
	prev := o.queue.PreviousBefore(o.state.Track.ID)
	o.mu.Unlock()

	if prev == nil {
		return
	}
	o.SetCurrentTrack(ctx, *prev)
}

// stop transitions to the idle state: no track, nothing playing.
func (o *Orchestrator) stop(ctx context.Context) {
	o.mu.Lock()
	o.loadGen++
	o.state.Track = nil
	o.state.IsPlaying = false
	o.state.Progress = 0
	o.state.Duration = 0
	o.mu.Unlock()

	o.poller.Stop()
	if err := o.player.Pause(ctx); err != nil {
		o.log.Debug("pause on stop failed", "err", err)
	}
}

// AddToQueue appends a track to the queue.
func (o *Orchestrator) AddToQueue(t core.Track) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.queue.Append(t)
}

// RemoveFromQueue removes all queue entries with the given track id.
func (o *Orchestrator) RemoveFromQueue(trackID string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.queue.RemoveByID(trackID)
}

// ClearQueue empties the queue.
func (o *Orchestrator) ClearQueue() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.queue.Clear()
}

// QueueTracks returns a copy of the queued tracks.
func (o *Orchestrator) QueueTracks() []core.Track {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.queue.Tracks()
}

// SetVolume clamps and applies a volume fraction. An explicit volume
// change clears the muted flag.
func (o *Orchestrator) SetVolume(ctx context.Context, v float64) {
	v = core.ClampVolume(v)

	o.mu.Lock()
	o.state.Volume = v
	if v > 0 {
		o.muted = false
	}
	o.mu.Unlock()

	if err := o.player.SetVolume(ctx, v); err != nil {
		o.log.Debug("set volume failed", "err", err)
	}
}

// ToggleMute swaps between zero and the remembered pre-mute volume. The
// pre-mute value is restored exactly, even when it was zero.
func (o *Orchestrator) ToggleMute(ctx context.Context) {
	o.mu.Lock()
	var target float64
	if o.muted {
		o.muted = false
		target = o.preMuteVolume
	} else {
		o.muted = true
		o.preMuteVolume = o.state.Volume
		target = 0
	}
	o.state.Volume = target
	o.mu.Unlock()

	if err := o.player.SetVolume(ctx, target); err != nil {
		o.log.Debug("set volume failed", "err", err)
	}
}

// Muted reports whether the engine is muted.
func (o *Orchestrator) Muted() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.muted
}

// Seek clamps the requested position to [0, duration], updates progress
// optimistically, and forwards the seek to the player. The optimistic
// update hides the widget's acknowledgement latency from the UI.
func (o *Orchestrator) Seek(ctx context.Context, pos time.Duration) {
	o.mu.Lock()
	if !o.state.HasTrack() {
		o.mu.Unlock()
		return
	}
	if pos < 0 {
		pos = 0
	}
	if pos > o.state.Duration {
		pos = o.state.Duration
	}
	o.state.Progress = pos
	o.seekBarrier = pos
	o.seekAt = time.Now()
	o.mu.Unlock()

	if err := o.player.Seek(ctx, pos); err != nil {
		o.log.Debug("seek failed", "err", err)
	}
}

// applyPolledPosition feeds a sampled position into the state. Samples
// from a superseded load generation are discarded, as are samples behind
// a just-issued seek target that the widget has not acknowledged yet.
func (o *Orchestrator) applyPolledPosition(gen uint64, pos time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if gen != o.loadGen || !o.state.HasTrack() {
		return
	}
	if !o.seekAt.IsZero() && time.Since(o.seekAt) < seekBarrierWindow && pos < o.seekBarrier {
		return
	}
	o.state.Progress = pos
}

// ToggleLike flips liked membership for a track. Unauthenticated attempts
// trigger the login prompt and abort without mutating any state.
func (o *Orchestrator) ToggleLike(ctx context.Context, t core.Track) (bool, error) {
	if o.auth == nil || !o.auth.Authenticated() {
		if o.onLoginPrompt != nil {
			o.onLoginPrompt()
		}
		return false, errors.ErrLoginRequired
	}
	if o.library == nil {
		return false, errors.ErrNotAuthenticated
	}
	user := o.auth.CurrentUser()
	if user == nil {
		return false, errors.ErrNotAuthenticated
	}
	return o.library.ToggleLike(ctx, user.ID, t)
}

// IsLiked reports liked membership for the current user.
func (o *Orchestrator) IsLiked(ctx context.Context, trackID string) bool {
	if o.auth == nil || o.library == nil || !o.auth.Authenticated() {
		return false
	}
	user := o.auth.CurrentUser()
	if user == nil {
		return false
	}
	liked, err := o.library.IsLiked(ctx, user.ID, trackID)
	if err != nil {
		o.log.Debug("liked lookup failed", "err", err)
		return false
	}
	return liked
}

// SetVisibility reacts to the host reporting hidden/visible transitions.
// Playback continues in the background: going hidden while the intent is
// playing forces a play command; returning visible reconciles the player
// to the intended state.
func (o *Orchestrator) SetVisibility(ctx context.Context, hidden bool) {
	o.mu.Lock()
	o.hidden = hidden
	hasTrack := o.state.HasTrack()
	playing := o.state.IsPlaying
	o.mu.Unlock()

	if !hasTrack {
		return
	}

	if hidden {
		if playing {
			if err := o.player.Play(ctx); err != nil {
				o.log.Debug("background play failed", "err", err)
			}
		}
		return
	}

	if playing {
		if err := o.player.Play(ctx); err != nil {
			o.log.Debug("foreground play failed", "err", err)
		}
	} else {
		if err := o.player.Pause(ctx); err != nil {
			o.log.Debug("foreground pause failed", "err", err)
		}
	}
}

// SetRepeat toggles the repeat control. The flag is presentational only;
// end-of-track advancement does not consult it.
func (o *Orchestrator) SetRepeat(on bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.repeat = on
}

// SetShuffle toggles the shuffle control. Presentational only.
func (o *Orchestrator) SetShuffle(on bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.shuffle = on
}

// Repeat reports the repeat control state.
func (o *Orchestrator) Repeat() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.repeat
}

// Shuffle reports the shuffle control state.
func (o *Orchestrator) Shuffle() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.shuffle
}

// State returns a copy of the current playback state.
func (o *Orchestrator) State() core.PlaybackState {
	o.mu.Lock()
	defer o.mu.Unlock()

	s := o.state
	if o.state.Track != nil {
		track := *o.state.Track
		s.Track = &track
	}
	return s
}

// History returns the recently played entries, most recent first.
func (o *Orchestrator) History() []core.HistoryEntry {
	return o.history.Entries()
}

// Close stops the poller and suspends playback. The player itself is owned
// by the composition root and released separately.
func (o *Orchestrator) Close(ctx context.Context) {
	o.poller.Stop()
	if err := o.player.Suspend(ctx); err != nil {
		o.log.Debug("suspend on close failed", "err", err)
	}
}
