package playback

import (
	"fmt"
	"testing"
)

func TestHistoryAddMostRecentFirst(t *testing.T) {
	h := &History{}
	h.Add(testTrack("a"))
	h.Add(testTrack("b"))

	entries := h.Entries()
	if len(entries) != 2 {
		t.Fatalf("length = %d, want 2", len(entries))
	}
	if entries[0].Track.ID != "b" {
		t.Errorf("first = %q, want b", entries[0].Track.ID)
	}
}

func TestHistoryDedupesMovingToFront(t *testing.T) {
	h := &History{}
	h.Add(testTrack("a"))
	h.Add(testTrack("b"))
	h.Add(testTrack("a"))

	entries := h.Entries()
	if len(entries) != 2 {
		t.Fatalf("length = %d, want 2 (replayed track deduped)", len(entries))
	}
	if entries[0].Track.ID != "a" || entries[1].Track.ID != "b" {
		t.Errorf("order = [%s %s], want [a b]", entries[0].Track.ID, entries[1].Track.ID)
	}
}

func TestHistoryCapped(t *testing.T) {
	h := &History{}
	for i := 0; i < HistoryLimit+5; i++ {
		h.Add(testTrack(fmt.Sprintf("t%d", i)))
	}

	entries := h.Entries()
	if len(entries) != HistoryLimit {
		t.Fatalf("length = %d, want %d", len(entries), HistoryLimit)
	}
	if entries[0].Track.ID != fmt.Sprintf("t%d", HistoryLimit+4) {
		t.Errorf("first = %q, want the most recent track", entries[0].Track.ID)
	}
}
