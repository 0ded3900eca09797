package store

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/pgale/chime/internal/core"
	"github.com/pgale/chime/internal/errors"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testTrack(id string) core.Track {
	return core.Track{
		ID:        id,
		Title:     "Track " + id,
		Artist:    "Artist",
		Thumbnail: "http://img/" + id + ".jpg",
		Duration:  3 * time.Minute,
		VideoID:   "video-" + id,
	}
}

func TestCreateAndAuthenticateUser(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	user, err := s.CreateUser(ctx, "Pat", "pat@example.com", "secret")
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.ID == "" {
		t.Error("user should get a generated id")
	}

	got, err := s.AuthenticateUser(ctx, "pat@example.com", "secret")
	if err != nil {
		t.Fatalf("AuthenticateUser: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("ID = %q, want %q", got.ID, user.ID)
	}

	if _, err := s.AuthenticateUser(ctx, "pat@example.com", "wrong"); !stderrors.Is(err, errors.ErrInvalidLogin) {
		t.Errorf("err = %v, want ErrInvalidLogin", err)
	}
	if _, err := s.AuthenticateUser(ctx, "nobody@example.com", "secret"); !stderrors.Is(err, errors.ErrInvalidLogin) {
		t.Errorf("err = %v, want ErrInvalidLogin", err)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateUser(ctx, "Pat", "pat@example.com", "secret"); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if _, err := s.CreateUser(ctx, "Other", "pat@example.com", "other"); !stderrors.Is(err, errors.ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestToggleLike(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	liked, err := s.ToggleLike(ctx, "u1", testTrack("a"))
	if err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if !liked {
		t.Error("first toggle should like")
	}

	isLiked, err := s.IsLiked(ctx, "u1", "a")
	if err != nil {
		t.Fatalf("IsLiked: %v", err)
	}
	if !isLiked {
		t.Error("IsLiked = false, want true")
	}

	liked, err = s.ToggleLike(ctx, "u1", testTrack("a"))
	if err != nil {
		t.Fatalf("ToggleLike: %v", err)
	}
	if liked {
		t.Error("second toggle should unlike")
	}

	isLiked, _ = s.IsLiked(ctx, "u1", "a")
	if isLiked {
		t.Error("IsLiked = true after unlike")
	}
}

func TestLikedSongsScopedToUser(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	s.ToggleLike(ctx, "u1", testTrack("a"))
	s.ToggleLike(ctx, "u2", testTrack("b"))

	tracks, err := s.LikedSongs(ctx, "u1")
	if err != nil {
		t.Fatalf("LikedSongs: %v", err)
	}
	if len(tracks) != 1 || tracks[0].ID != "a" {
		t.Errorf("tracks = %v, want only u1's like", tracks)
	}
	if tracks[0].Duration != 3*time.Minute {
		t.Errorf("Duration = %v, want 3m round-tripped", tracks[0].Duration)
	}
}

func TestRecentlyPlayedDedupes(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	s.AddRecentlyPlayed(ctx, "u1", testTrack("a"))
	s.AddRecentlyPlayed(ctx, "u1", testTrack("b"))
	s.AddRecentlyPlayed(ctx, "u1", testTrack("a"))

	entries, err := s.RecentlyPlayed(ctx, "u1")
	if err != nil {
		t.Fatalf("RecentlyPlayed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2 (replay deduped)", len(entries))
	}
}

func TestRecentlyPlayedTrimmed(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < historyLimit+5; i++ {
		track := testTrack(string(rune('a' + i)))
		if err := s.AddRecentlyPlayed(ctx, "u1", track); err != nil {
			t.Fatalf("AddRecentlyPlayed: %v", err)
		}
	}

	entries, err := s.RecentlyPlayed(ctx, "u1")
	if err != nil {
		t.Fatalf("RecentlyPlayed: %v", err)
	}
	if len(entries) > historyLimit {
		t.Errorf("entries = %d, want at most %d", len(entries), historyLimit)
	}
}

func TestPlaylistLifecycle(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p, err := s.CreatePlaylist(ctx, "u1", "Road Trip", "for driving")
	if err != nil {
		t.Fatalf("CreatePlaylist: %v", err)
	}

	if err := s.AddTrackToPlaylist(ctx, p.ID, testTrack("a")); err != nil {
		t.Fatalf("AddTrackToPlaylist: %v", err)
	}
	if err := s.AddTrackToPlaylist(ctx, p.ID, testTrack("b")); err != nil {
		t.Fatalf("AddTrackToPlaylist: %v", err)
	}
	// Adding the same track again is a silent no-op.
	if err := s.AddTrackToPlaylist(ctx, p.ID, testTrack("a")); err != nil {
		t.Fatalf("AddTrackToPlaylist duplicate: %v", err)
	}

	got, err := s.GetPlaylist(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetPlaylist: %v", err)
	}
	if len(got.Tracks) != 2 {
		t.Fatalf("tracks = %d, want 2", len(got.Tracks))
	}
	if got.Tracks[0].ID != "a" || got.Tracks[1].ID != "b" {
		t.Errorf("order = [%s %s], want [a b]", got.Tracks[0].ID, got.Tracks[1].ID)
	}
	if got.Thumbnail != testTrack("a").Thumbnail {
		t.Errorf("Thumbnail = %q, want the first track's artwork", got.Thumbnail)
	}
}

func TestRemoveTrackCompactsAndUpdatesThumbnail(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p, err := s.CreatePlaylist(ctx, "u1", "Mix", "")
	if err != nil {
		t.Fatalf("CreatePlaylist: %v", err)
	}
	s.AddTrackToPlaylist(ctx, p.ID, testTrack("a"))
	s.AddTrackToPlaylist(ctx, p.ID, testTrack("b"))
	s.AddTrackToPlaylist(ctx, p.ID, testTrack("c"))

	if err := s.RemoveTrackFromPlaylist(ctx, p.ID, "a"); err != nil {
		t.Fatalf("RemoveTrackFromPlaylist: %v", err)
	}

	got, err := s.GetPlaylist(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetPlaylist: %v", err)
	}
	if len(got.Tracks) != 2 {
		t.Fatalf("tracks = %d, want 2", len(got.Tracks))
	}
	if got.Tracks[0].ID != "b" || got.Tracks[1].ID != "c" {
		t.Errorf("order = [%s %s], want [b c]", got.Tracks[0].ID, got.Tracks[1].ID)
	}
	if got.Thumbnail != testTrack("b").Thumbnail {
		t.Errorf("Thumbnail = %q, want the new first track's artwork", got.Thumbnail)
	}
}

func TestDeletePlaylist(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	p, err := s.CreatePlaylist(ctx, "u1", "Gone", "")
	if err != nil {
		t.Fatalf("CreatePlaylist: %v", err)
	}

	if err := s.DeletePlaylist(ctx, p.ID); err != nil {
		t.Fatalf("DeletePlaylist: %v", err)
	}
	if _, err := s.GetPlaylist(ctx, p.ID); !stderrors.Is(err, errors.ErrPlaylistNotFound) {
		t.Errorf("err = %v, want ErrPlaylistNotFound", err)
	}
	if err := s.DeletePlaylist(ctx, p.ID); !stderrors.Is(err, errors.ErrPlaylistNotFound) {
		t.Errorf("second delete err = %v, want ErrPlaylistNotFound", err)
	}
}
