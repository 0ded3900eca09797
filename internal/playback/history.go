package playback

import (
	"sync"
	"time"

	"github.com/pgale/chime/internal/core"
)

// HistoryLimit caps the number of recently played entries retained.
const HistoryLimit = 20

// History is the in-memory recently-played list: most-recent-first,
// de-duplicated by track id. Re-playing a track moves it to the front.
type History struct {
	mu      sync.Mutex
	entries []core.HistoryEntry
}

// Add records a track at the front of the history.
func (h *History) Add(t core.Track) {
	h.mu.Lock()
	defer h.mu.Unlock()

	kept := make([]core.HistoryEntry, 0, len(h.entries)+1)
	kept = append(kept, core.HistoryEntry{Track: t, PlayedAt: time.Now()})
	for _, e := range h.entries {
		if e.Track.ID != t.ID {
			kept = append(kept, e)
		}
	}
	if len(kept) > HistoryLimit {
		kept = kept[:HistoryLimit]
	}
	h.entries = kept
}

// Entries returns a copy of the history, most recent first.
func (h *History) Entries() []core.HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]core.HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of retained entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
