package core

import "time"

// PlaybackState is the single source of truth for playback. Duration is
// authoritative from track metadata, never from the embedded player, which
// may report zero or stale values before buffering completes.
type PlaybackState struct {
	Track     *Track        `json:"track"`
	IsPlaying bool          `json:"is_playing"`
	Volume    float64       `json:"volume"`
	Progress  time.Duration `json:"progress"`
	Duration  time.Duration `json:"duration"`
}

// HasTrack returns true if there is an active track.
func (s PlaybackState) HasTrack() bool {
	return s.Track != nil
}

// ProgressPercent returns playback progress as a percentage (0-100).
func (s PlaybackState) ProgressPercent() float64 {
	if s.Duration == 0 {
		return 0
	}
	return float64(s.Progress) / float64(s.Duration) * 100
}

// ClampVolume restricts a volume fraction to [0, 1].
func ClampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
