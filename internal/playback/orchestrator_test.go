package playback

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/pgale/chime/internal/core"
	chimeerrors "github.com/pgale/chime/internal/errors"
)

type fakePlayer struct {
	mu      sync.Mutex
	events  chan core.PlayerEvent
	loads   []string
	plays   int
	pauses  int
	volumes []float64
	seeks   []time.Duration
	pos     time.Duration
}

func newFakePlayer() *fakePlayer {
	return &fakePlayer{events: make(chan core.PlayerEvent, 16)}
}

func (f *fakePlayer) Initialize(ctx context.Context) error { return nil }

func (f *fakePlayer) Load(ctx context.Context, mediaID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads = append(f.loads, mediaID)
	return nil
}

func (f *fakePlayer) Play(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plays++
	return nil
}

func (f *fakePlayer) Pause(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pauses++
	return nil
}

func (f *fakePlayer) Seek(ctx context.Context, pos time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seeks = append(f.seeks, pos)
	return nil
}

func (f *fakePlayer) SetVolume(ctx context.Context, volume float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.volumes = append(f.volumes, volume)
	return nil
}

func (f *fakePlayer) Position(ctx context.Context) (time.Duration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pos, nil
}

func (f *fakePlayer) Events() <-chan core.PlayerEvent { return f.events }
func (f *fakePlayer) Suspend(ctx context.Context) error {
	return f.Pause(ctx)
}
func (f *fakePlayer) Close() error { return nil }

func (f *fakePlayer) playCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.plays
}

func (f *fakePlayer) lastVolume() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.volumes) == 0 {
		return -1
	}
	return f.volumes[len(f.volumes)-1]
}

func (f *fakePlayer) lastLoad() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.loads) == 0 {
		return ""
	}
	return f.loads[len(f.loads)-1]
}

type fakeLibrary struct {
	mu     sync.Mutex
	recent []string
	liked  map[string]bool
}

func newFakeLibrary() *fakeLibrary {
	return &fakeLibrary{liked: make(map[string]bool)}
}

func (l *fakeLibrary) AddRecentlyPlayed(ctx context.Context, userID string, t core.Track) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.recent = append(l.recent, t.ID)
	return nil
}

func (l *fakeLibrary) ToggleLike(ctx context.Context, userID string, t core.Track) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.liked[t.ID] = !l.liked[t.ID]
	return l.liked[t.ID], nil
}

func (l *fakeLibrary) IsLiked(ctx context.Context, userID, trackID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.liked[trackID], nil
}

type fakeAuth struct {
	user *core.User
}

func (a *fakeAuth) Authenticated() bool     { return a.user != nil }
func (a *fakeAuth) CurrentUser() *core.User { return a.user }

func testTrack(id string) core.Track {
	return core.Track{
		ID:       id,
		Title:    "Track " + id,
		Artist:   "Artist",
		VideoID:  "video-" + id,
		Duration: 3 * time.Minute,
	}
}

// newTestEngine uses an interval long enough that the poller never fires
// during a test run.
func newTestEngine(fp *fakePlayer, opts ...Option) *Orchestrator {
	return New(fp, time.Hour, nil, opts...)
}

func TestSetCurrentTrackResetsStateFromMetadata(t *testing.T) {
	fp := newFakePlayer()
	o := newTestEngine(fp)
	ctx := context.Background()

	o.Seek(ctx, time.Minute) // no-op without a track

	o.SetCurrentTrack(ctx, testTrack("a"))

	state := o.State()
	if !state.HasTrack() || state.Track.ID != "a" {
		t.Fatalf("Track = %v, want a", state.Track)
	}
	if !state.IsPlaying {
		t.Error("IsPlaying = false, want true")
	}
	if state.Progress != 0 {
		t.Errorf("Progress = %v, want 0", state.Progress)
	}
	if state.Duration != 3*time.Minute {
		t.Errorf("Duration = %v, want 3m (from metadata)", state.Duration)
	}
	if fp.lastLoad() != "video-a" {
		t.Errorf("loaded %q, want video-a", fp.lastLoad())
	}
	if fp.playCount() == 0 {
		t.Error("play should be issued after load")
	}
}

func TestSetCurrentTrackRecordsHistory(t *testing.T) {
	fp := newFakePlayer()
	o := newTestEngine(fp)
	ctx := context.Background()

	o.SetCurrentTrack(ctx, testTrack("a"))
	o.SetCurrentTrack(ctx, testTrack("b"))

	history := o.History()
	if len(history) != 2 {
		t.Fatalf("history length = %d, want 2", len(history))
	}
	if history[0].Track.ID != "b" {
		t.Errorf("most recent = %q, want b", history[0].Track.ID)
	}
}

func TestSetCurrentTrackPersistsForAuthenticatedUser(t *testing.T) {
	fp := newFakePlayer()
	lib := newFakeLibrary()
	o := newTestEngine(fp,
		WithLibrary(lib),
		WithAuth(&fakeAuth{user: &core.User{ID: "u1"}}),
	)

	o.SetCurrentTrack(context.Background(), testTrack("a"))

	lib.mu.Lock()
	defer lib.mu.Unlock()
	if len(lib.recent) != 1 || lib.recent[0] != "a" {
		t.Errorf("recent = %v, want [a]", lib.recent)
	}
}

func TestTogglePlayWithoutTrackIsNoop(t *testing.T) {
	fp := newFakePlayer()
	o := newTestEngine(fp)

	o.TogglePlay(context.Background())

	if o.State().IsPlaying {
		t.Error("IsPlaying should stay false with no track")
	}
	if fp.playCount() != 0 {
		t.Error("no player command should be issued")
	}
}

func TestTogglePlayFlipsIntent(t *testing.T) {
	fp := newFakePlayer()
	o := newTestEngine(fp)
	ctx := context.Background()

	o.SetCurrentTrack(ctx, testTrack("a"))

	o.TogglePlay(ctx)
	if o.State().IsPlaying {
		t.Error("IsPlaying = true after pause toggle, want false")
	}

	o.TogglePlay(ctx)
	if !o.State().IsPlaying {
		t.Error("IsPlaying = false after play toggle, want true")
	}
}

func TestPlayNextOnEmptyQueueIsNoop(t *testing.T) {
	fp := newFakePlayer()
	o := newTestEngine(fp)

	o.PlayNext(context.Background())

	if o.State().HasTrack() {
		t.Error("no track should be set from an empty queue")
	}
}

func TestPlayNextWithoutCurrentStartsFirstEntry(t *testing.T) {
	fp := newFakePlayer()
	o := newTestEngine(fp)
	ctx := context.Background()

	o.AddToQueue(testTrack("a"))
	o.AddToQueue(testTrack("b"))

	o.PlayNext(ctx)

	state := o.State()
	if !state.HasTrack() || state.Track.ID != "a" {
		t.Errorf("Track = %v, want a", state.Track)
	}
}

func TestPlayNextWalksQueueInOrder(t *testing.T) {
	fp := newFakePlayer()
	o := newTestEngine(fp)
	ctx := context.Background()

	o.AddToQueue(testTrack("a"))
	o.AddToQueue(testTrack("b"))
	o.AddToQueue(testTrack("c"))
	o.SetCurrentTrack(ctx, testTrack("a"))

	o.PlayNext(ctx)
	if got := o.State().Track.ID; got != "b" {
		t.Errorf("after first next: %q, want b", got)
	}

	o.PlayNext(ctx)
	if got := o.State().Track.ID; got != "c" {
		t.Errorf("after second next: %q, want c", got)
	}
}

func TestPlayNextAtEndOfQueueStopsPlayback(t *testing.T) {
	fp := newFakePlayer()
	o := newTestEngine(fp)
	ctx := context.Background()

	o.AddToQueue(testTrack("a"))
	o.SetCurrentTrack(ctx, testTrack("a"))

	o.PlayNext(ctx)

	state := o.State()
	if state.HasTrack() {
		t.Error("Track should be nil after advancing past the last entry")
	}
	if state.IsPlaying {
		t.Error("IsPlaying should be false after stopping")
	}
	if state.Progress != 0 || state.Duration != 0 {
		t.Error("progress and duration should reset on stop")
	}
}

func TestPlayNextWithCurrentNotInQueueIsNoop(t *testing.T) {
	fp := newFakePlayer()
	o := newTestEngine(fp)
	ctx := context.Background()

	o.AddToQueue(testTrack("a"))
	o.SetCurrentTrack(ctx, testTrack("x"))

	o.PlayNext(ctx)

	if got := o.State().Track.ID; got != "x" {
		t.Errorf("Track = %q, want x unchanged", got)
	}
}

func TestPlayPrevious(t *testing.T) {
	fp := newFakePlayer()
	o := newTestEngine(fp)
	ctx := context.Background()

	o.AddToQueue(testTrack("a"))
	o.AddToQueue(testTrack("b"))
	o.SetCurrentTrack(ctx, testTrack("b"))

	o.PlayPrevious(ctx)
	if got := o.State().Track.ID; got != "a" {
		t.Errorf("Track = %q, want a", got)
	}

	// At the first entry previous is a no-op.
	o.PlayPrevious(ctx)
	if got := o.State().Track.ID; got != "a" {
		t.Errorf("Track = %q, want a unchanged", got)
	}
}

func TestEndedEventAdvancesRegardlessOfRepeat(t *testing.T) {
	fp := newFakePlayer()
	o := newTestEngine(fp)
	ctx := context.Background()

	o.AddToQueue(testTrack("a"))
	o.AddToQueue(testTrack("b"))
	o.SetCurrentTrack(ctx, testTrack("a"))
	o.SetRepeat(true)

	o.HandleEvent(ctx, core.PlayerEvent{Type: core.PlayerEnded, MediaID: "video-a"})

	if got := o.State().Track.ID; got != "b" {
		t.Errorf("Track = %q, want b (repeat must not block advancement)", got)
	}
}

func TestEndedAtLastEntryGoesIdle(t *testing.T) {
	fp := newFakePlayer()
	o := newTestEngine(fp)
	ctx := context.Background()

	o.AddToQueue(testTrack("a"))
	o.SetCurrentTrack(ctx, testTrack("a"))

	o.HandleEvent(ctx, core.PlayerEvent{Type: core.PlayerEnded, MediaID: "video-a"})

	if o.State().HasTrack() {
		t.Error("Track should be nil after the last entry finishes")
	}
	if o.State().IsPlaying {
		t.Error("IsPlaying should be false after the last entry finishes")
	}
}

func TestStaleEndedEventIsDiscarded(t *testing.T) {
	fp := newFakePlayer()
	o := newTestEngine(fp)
	ctx := context.Background()

	o.AddToQueue(testTrack("a"))
	o.AddToQueue(testTrack("b"))
	o.SetCurrentTrack(ctx, testTrack("b"))

	// Ended event from the previously loaded media must not advance.
	o.HandleEvent(ctx, core.PlayerEvent{Type: core.PlayerEnded, MediaID: "video-a"})

	if got := o.State().Track.ID; got != "b" {
		t.Errorf("Track = %q, want b unchanged", got)
	}
}

func TestReadyEventSyncsVolumeAndIntent(t *testing.T) {
	fp := newFakePlayer()
	o := newTestEngine(fp)
	ctx := context.Background()

	o.SetVolume(ctx, 0.4)
	o.SetCurrentTrack(ctx, testTrack("a"))
	before := fp.playCount()

	o.HandleEvent(ctx, core.PlayerEvent{Type: core.PlayerReady})

	if fp.lastVolume() != 0.4 {
		t.Errorf("volume = %v, want 0.4 synced on ready", fp.lastVolume())
	}
	if fp.playCount() != before+1 {
		t.Error("play intent should be re-issued on ready")
	}
}

func TestSetVolumeClamps(t *testing.T) {
	fp := newFakePlayer()
	o := newTestEngine(fp)
	ctx := context.Background()

	o.SetVolume(ctx, 1.7)
	if got := o.State().Volume; got != 1 {
		t.Errorf("Volume = %v, want 1", got)
	}

	o.SetVolume(ctx, -0.3)
	if got := o.State().Volume; got != 0 {
		t.Errorf("Volume = %v, want 0", got)
	}
}

func TestToggleMuteRestoresExactVolume(t *testing.T) {
	fp := newFakePlayer()
	o := newTestEngine(fp)
	ctx := context.Background()

	o.SetVolume(ctx, 0.37)

	o.ToggleMute(ctx)
	if got := o.State().Volume; got != 0 {
		t.Errorf("Volume = %v while muted, want 0", got)
	}
	if !o.Muted() {
		t.Error("Muted = false, want true")
	}

	o.ToggleMute(ctx)
	if got := o.State().Volume; got != 0.37 {
		t.Errorf("Volume = %v after unmute, want 0.37 exactly", got)
	}
}

func TestToggleMuteAtZeroVolumeRestoresZero(t *testing.T) {
	fp := newFakePlayer()
	o := newTestEngine(fp)
	ctx := context.Background()

	o.SetVolume(ctx, 0)

	o.ToggleMute(ctx)
	o.ToggleMute(ctx)

	if got := o.State().Volume; got != 0 {
		t.Errorf("Volume = %v, want 0 restored", got)
	}
	if o.Muted() {
		t.Error("Muted = true after unmute, want false")
	}
}

func TestExplicitVolumeChangeClearsMute(t *testing.T) {
	fp := newFakePlayer()
	o := newTestEngine(fp)
	ctx := context.Background()

	o.SetVolume(ctx, 0.5)
	o.ToggleMute(ctx)
	o.SetVolume(ctx, 0.8)

	if o.Muted() {
		t.Error("setting a positive volume should clear the muted flag")
	}
	if got := o.State().Volume; got != 0.8 {
		t.Errorf("Volume = %v, want 0.8", got)
	}
}

func TestSeekClampsAndUpdatesOptimistically(t *testing.T) {
	fp := newFakePlayer()
	o := newTestEngine(fp)
	ctx := context.Background()

	o.SetCurrentTrack(ctx, testTrack("a"))

	o.Seek(ctx, 10*time.Minute)
	if got := o.State().Progress; got != 3*time.Minute {
		t.Errorf("Progress = %v, want clamped to 3m", got)
	}

	o.Seek(ctx, -time.Minute)
	if got := o.State().Progress; got != 0 {
		t.Errorf("Progress = %v, want clamped to 0", got)
	}

	o.Seek(ctx, time.Minute)
	if got := o.State().Progress; got != time.Minute {
		t.Errorf("Progress = %v, want 1m before any poll lands", got)
	}
}

func TestPolledPositionFromStaleGenerationIsDiscarded(t *testing.T) {
	fp := newFakePlayer()
	o := newTestEngine(fp)
	ctx := context.Background()

	o.SetCurrentTrack(ctx, testTrack("a"))
	o.mu.Lock()
	gen := o.loadGen
	o.mu.Unlock()

	o.applyPolledPosition(gen-1, 42*time.Second)
	if got := o.State().Progress; got != 0 {
		t.Errorf("Progress = %v, stale sample must be discarded", got)
	}

	o.applyPolledPosition(gen, 42*time.Second)
	if got := o.State().Progress; got != 42*time.Second {
		t.Errorf("Progress = %v, want 42s from current generation", got)
	}
}

func TestPolledPositionBehindSeekBarrierIsDiscarded(t *testing.T) {
	fp := newFakePlayer()
	o := newTestEngine(fp)
	ctx := context.Background()

	o.SetCurrentTrack(ctx, testTrack("a"))
	o.mu.Lock()
	gen := o.loadGen
	o.mu.Unlock()

	o.Seek(ctx, 2*time.Minute)

	// A sample taken before the widget acknowledged the seek.
	o.applyPolledPosition(gen, 5*time.Second)
	if got := o.State().Progress; got != 2*time.Minute {
		t.Errorf("Progress = %v, want 2m held through the barrier", got)
	}

	// A sample at or past the target is accepted.
	o.applyPolledPosition(gen, 2*time.Minute+time.Second)
	if got := o.State().Progress; got != 2*time.Minute+time.Second {
		t.Errorf("Progress = %v, want 2m1s", got)
	}
}

func TestToggleLikeUnauthenticatedPromptsAndAborts(t *testing.T) {
	fp := newFakePlayer()
	prompted := false
	lib := newFakeLibrary()
	o := newTestEngine(fp,
		WithLibrary(lib),
		WithAuth(&fakeAuth{}),
		WithLoginPrompt(func() { prompted = true }),
	)

	_, err := o.ToggleLike(context.Background(), testTrack("a"))

	if !errors.Is(err, chimeerrors.ErrLoginRequired) {
		t.Errorf("err = %v, want ErrLoginRequired", err)
	}
	if !prompted {
		t.Error("login prompt should be invoked")
	}
	lib.mu.Lock()
	defer lib.mu.Unlock()
	if len(lib.liked) != 0 {
		t.Error("no like state should be mutated")
	}
}

func TestToggleLikeAuthenticated(t *testing.T) {
	fp := newFakePlayer()
	lib := newFakeLibrary()
	o := newTestEngine(fp,
		WithLibrary(lib),
		WithAuth(&fakeAuth{user: &core.User{ID: "u1"}}),
	)
	ctx := context.Background()

	liked, err := o.ToggleLike(ctx, testTrack("a"))
	if err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if !liked {
		t.Error("first toggle should like the track")
	}

	liked, err = o.ToggleLike(ctx, testTrack("a"))
	if err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if liked {
		t.Error("second toggle should unlike the track")
	}
}

func TestHiddenWhilePlayingForcesPlay(t *testing.T) {
	fp := newFakePlayer()
	o := newTestEngine(fp)
	ctx := context.Background()

	o.SetCurrentTrack(ctx, testTrack("a"))
	before := fp.playCount()

	o.SetVisibility(ctx, true)

	if fp.playCount() != before+1 {
		t.Error("going hidden while playing should force a play command")
	}
}

func TestVisibleReconcilesToPausedIntent(t *testing.T) {
	fp := newFakePlayer()
	o := newTestEngine(fp)
	ctx := context.Background()

	o.SetCurrentTrack(ctx, testTrack("a"))
	o.TogglePlay(ctx) // paused intent
	fp.mu.Lock()
	before := fp.pauses
	fp.mu.Unlock()

	o.SetVisibility(ctx, false)

	fp.mu.Lock()
	defer fp.mu.Unlock()
	if fp.pauses != before+1 {
		t.Error("returning visible with a paused intent should re-issue pause")
	}
}

func TestRemoveFromQueue(t *testing.T) {
	fp := newFakePlayer()
	o := newTestEngine(fp)

	o.AddToQueue(testTrack("a"))
	o.AddToQueue(testTrack("b"))
	o.RemoveFromQueue("a")

	tracks := o.QueueTracks()
	if len(tracks) != 1 || tracks[0].ID != "b" {
		t.Errorf("queue = %v, want [b]", tracks)
	}
}
