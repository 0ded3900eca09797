package core

import "testing"

func track(id string) Track {
	return Track{ID: id, Title: "Track " + id, Artist: "Artist", VideoID: "v" + id}
}

func TestQueueAppendAndLen(t *testing.T) {
	q := &Queue{}
	if !q.IsEmpty() {
		t.Error("new queue should be empty")
	}

	q.Append(track("a"))
	q.Append(track("b"))

	if q.Len() != 2 {
		t.Errorf("Len = %d, want 2", q.Len())
	}
	if q.IsEmpty() {
		t.Error("queue with tracks should not be empty")
	}
}

func TestQueueAllowsDuplicates(t *testing.T) {
	q := &Queue{}
	q.Append(track("a"))
	q.Append(track("b"))
	q.Append(track("a"))

	if q.Len() != 3 {
		t.Errorf("Len = %d, want 3", q.Len())
	}
}

func TestQueueRemoveByID(t *testing.T) {
	q := &Queue{}
	q.Append(track("a"))
	q.Append(track("b"))
	q.Append(track("a"))

	q.RemoveByID("a")

	if q.Len() != 1 {
		t.Errorf("Len = %d, want 1", q.Len())
	}
	if q.IndexOf("a") != -1 {
		t.Error("all entries for the id should be removed")
	}
	if q.IndexOf("b") != 0 {
		t.Errorf("IndexOf(b) = %d, want 0", q.IndexOf("b"))
	}
}

func TestQueueNextAfter(t *testing.T) {
	q := &Queue{}
	q.Append(track("a"))
	q.Append(track("b"))
	q.Append(track("c"))

	next := q.NextAfter("a")
	if next == nil || next.ID != "b" {
		t.Errorf("NextAfter(a) = %v, want b", next)
	}

	if q.NextAfter("c") != nil {
		t.Error("NextAfter(last) should be nil")
	}
	if q.NextAfter("missing") != nil {
		t.Error("NextAfter(missing) should be nil")
	}
}

func TestQueuePreviousBefore(t *testing.T) {
	q := &Queue{}
	q.Append(track("a"))
	q.Append(track("b"))
	q.Append(track("c"))

	prev := q.PreviousBefore("c")
	if prev == nil || prev.ID != "b" {
		t.Errorf("PreviousBefore(c) = %v, want b", prev)
	}

	if q.PreviousBefore("a") != nil {
		t.Error("PreviousBefore(first) should be nil")
	}
	if q.PreviousBefore("missing") != nil {
		t.Error("PreviousBefore(missing) should be nil")
	}
}

func TestQueueNavigationUsesFirstOccurrence(t *testing.T) {
	q := &Queue{}
	q.Append(track("a"))
	q.Append(track("b"))
	q.Append(track("a"))
	q.Append(track("c"))

	next := q.NextAfter("a")
	if next == nil || next.ID != "b" {
		t.Errorf("NextAfter(a) = %v, want b (first occurrence)", next)
	}
}

func TestQueueTracksReturnsCopy(t *testing.T) {
	q := &Queue{}
	q.Append(track("a"))

	tracks := q.Tracks()
	tracks[0].ID = "mutated"

	if q.IndexOf("a") != 0 {
		t.Error("mutating the returned slice should not affect the queue")
	}
}

func TestQueueClear(t *testing.T) {
	q := &Queue{}
	q.Append(track("a"))
	q.Clear()

	if !q.IsEmpty() {
		t.Error("queue should be empty after Clear")
	}
}
