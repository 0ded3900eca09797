package core

import (
	"testing"
	"time"
)

func TestHasTrack(t *testing.T) {
	var s PlaybackState
	if s.HasTrack() {
		t.Error("empty state should not have a track")
	}

	s.Track = &Track{ID: "a"}
	if !s.HasTrack() {
		t.Error("state with a track should report it")
	}
}

func TestProgressPercent(t *testing.T) {
	s := PlaybackState{
		Progress: 30 * time.Second,
		Duration: 120 * time.Second,
	}
	if got := s.ProgressPercent(); got != 25 {
		t.Errorf("ProgressPercent = %v, want 25", got)
	}

	s.Duration = 0
	if got := s.ProgressPercent(); got != 0 {
		t.Errorf("ProgressPercent with zero duration = %v, want 0", got)
	}
}

func TestClampVolume(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.7, 0.7},
		{1, 1},
		{1.5, 1},
	}

	for _, tt := range tests {
		if got := ClampVolume(tt.in); got != tt.want {
			t.Errorf("ClampVolume(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
