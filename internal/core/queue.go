package core

// Queue is an ordered playback queue. Insertion order is significant and
// the same track may appear at multiple positions. Next/previous navigation
// is relative to the first position matching a track id.
type Queue struct {
	tracks []Track
}

// Append adds a track to the end of the queue.
func (q *Queue) Append(t Track) {
	q.tracks = append(q.tracks, t)
}

// RemoveByID removes every entry whose track id matches.
func (q *Queue) RemoveByID(trackID string) {
	kept := q.tracks[:0]
	for _, t := range q.tracks {
		if t.ID != trackID {
			kept = append(kept, t)
		}
	}
	q.tracks = kept
}

// Clear empties the queue.
func (q *Queue) Clear() {
	q.tracks = nil
}

// Tracks returns a copy of the queued tracks.
func (q *Queue) Tracks() []Track {
	if q == nil || len(q.tracks) == 0 {
		return nil
	}
	out := make([]Track, len(q.tracks))
	copy(out, q.tracks)
	return out
}

// IndexOf returns the first position of the given track id, or -1.
func (q *Queue) IndexOf(trackID string) int {
	for i, t := range q.tracks {
		if t.ID == trackID {
			return i
		}
	}
	return -1
}

// NextAfter returns the entry following the first position of the given
// track id. It returns nil when the id is absent or already last.
func (q *Queue) NextAfter(trackID string) *Track {
	i := q.IndexOf(trackID)
	if i < 0 || i+1 >= len(q.tracks) {
		return nil
	}
	t := q.tracks[i+1]
	return &t
}

// PreviousBefore returns the entry preceding the first position of the
// given track id. It returns nil when the id is absent or already first.
func (q *Queue) PreviousBefore(trackID string) *Track {
	i := q.IndexOf(trackID)
	if i <= 0 {
		return nil
	}
	t := q.tracks[i-1]
	return &t
}

// Len returns the total number of tracks in the queue.
func (q *Queue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.tracks)
}

// IsEmpty returns true if the queue has no tracks.
func (q *Queue) IsEmpty() bool {
	return q.Len() == 0
}
