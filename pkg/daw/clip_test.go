package daw

import (
	"math"
	"testing"
)

func newClipSession(t *testing.T) (*Session, string, string) {
	t.Helper()
	s := New()
	s.CreateProject("Demo")
	track := s.AddTrack(TrackAudio, "A", "")
	clip := s.AddClip(track, Clip{
		Name:      "take",
		AudioURL:  "take.mp3",
		StartTime: 4,
		Duration:  8,
		Offset:    1,
		Volume:    1,
	})
	if clip == "" {
		t.Fatal("AddClip() returned empty id")
	}
	return s, track, clip
}

func TestAddClipSanitizes(t *testing.T) {
	s := New()
	s.CreateProject("Demo")
	track := s.AddTrack(TrackAudio, "A", "")

	id := s.AddClip(track, Clip{
		StartTime: -5,
		Duration:  0.01,
		Offset:    -1,
		Volume:    3,
		FadeIn:    10,
		FadeOut:   10,
	})
	c := s.ClipByID(id)
	if c.StartTime != 0 {
		t.Errorf("start = %v, want 0", c.StartTime)
	}
	if c.Duration != MinClipDuration {
		t.Errorf("duration = %v, want %v", c.Duration, MinClipDuration)
	}
	if c.Offset != 0 {
		t.Errorf("offset = %v, want 0", c.Offset)
	}
	if c.Volume != 1 {
		t.Errorf("volume = %v, want 1", c.Volume)
	}
	if c.FadeIn != MinClipDuration/2 || c.FadeOut != MinClipDuration/2 {
		t.Errorf("fades = %v %v, want both %v", c.FadeIn, c.FadeOut, MinClipDuration/2)
	}
}

func TestAddClipToUnknownTrack(t *testing.T) {
	s := New()
	s.CreateProject("Demo")
	if id := s.AddClip("missing", Clip{Duration: 1}); id != "" {
		t.Errorf("AddClip to unknown track = %q, want empty", id)
	}
}

func TestSplitClip(t *testing.T) {
	s, track, clip := newClipSession(t)

	right := s.SplitClip(clip, 7)
	if right == "" {
		t.Fatal("SplitClip() returned empty id")
	}
	left := s.ClipByID(clip)
	rc := s.ClipByID(right)
	if left.StartTime != 4 || left.Duration != 3 {
		t.Errorf("left = start %v duration %v, want 4 and 3", left.StartTime, left.Duration)
	}
	if rc.StartTime != 7 || rc.Duration != 5 {
		t.Errorf("right = start %v duration %v, want 7 and 5", rc.StartTime, rc.Duration)
	}
	// The right half keeps reading the source where the left one stops.
	if rc.Offset != 4 {
		t.Errorf("right offset = %v, want 4", rc.Offset)
	}
	if rc.AudioURL != left.AudioURL {
		t.Errorf("right audio url = %q, want %q", rc.AudioURL, left.AudioURL)
	}
	tr := s.TrackByID(track)
	if len(tr.Clips) != 2 || tr.Clips[0].ID != clip || tr.Clips[1].ID != right {
		t.Error("halves are not adjacent in the track")
	}
}

func TestSplitClipRejectsBoundaries(t *testing.T) {
	tests := []struct {
		name string
		at   float64
	}{
		{"before start", 2},
		{"at start", 4},
		{"at end", 12},
		{"after end", 20},
		{"sliver left", 4.05},
		{"sliver right", 11.95},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _, clip := newClipSession(t)
			if got := s.SplitClip(clip, tt.at); got != "" {
				t.Errorf("SplitClip(%v) = %q, want empty", tt.at, got)
			}
			c := s.ClipByID(clip)
			if c.StartTime != 4 || c.Duration != 8 {
				t.Errorf("clip changed by rejected split: %+v", c)
			}
		})
	}
}

func TestUpdateClipMerges(t *testing.T) {
	s, _, clip := newClipSession(t)

	vol := 0.5
	s.UpdateClip(clip, ClipUpdate{Volume: &vol})
	c := s.ClipByID(clip)
	if c.Volume != 0.5 {
		t.Errorf("volume = %v, want 0.5", c.Volume)
	}
	if c.Name != "take" || c.StartTime != 4 {
		t.Error("untouched fields changed")
	}

	d := 0.01
	s.UpdateClip(clip, ClipUpdate{Duration: &d})
	if got := s.ClipByID(clip).Duration; got != MinClipDuration {
		t.Errorf("duration = %v, want %v", got, MinClipDuration)
	}
}

func TestDuplicateClip(t *testing.T) {
	s, track, clip := newClipSession(t)

	dup := s.DuplicateClip(clip)
	if dup == "" {
		t.Fatal("DuplicateClip() returned empty id")
	}
	c := s.ClipByID(dup)
	if c.StartTime != 12 {
		t.Errorf("duplicate start = %v, want 12", c.StartTime)
	}
	if c.Duration != 8 || c.Offset != 1 {
		t.Errorf("duplicate = duration %v offset %v, want 8 and 1", c.Duration, c.Offset)
	}
	if got := s.TrackByClipID(dup); got != track {
		t.Errorf("duplicate track = %q, want %q", got, track)
	}
}

func TestMoveClip(t *testing.T) {
	s, track, clip := newClipSession(t)
	other := s.AddTrack(TrackAudio, "B", "")

	s.MoveClip(clip, other, 2)
	if got := s.TrackByClipID(clip); got != other {
		t.Errorf("clip track = %q, want %q", got, other)
	}
	if got := s.ClipByID(clip).StartTime; got != 2 {
		t.Errorf("start = %v, want 2", got)
	}
	if tr := s.TrackByID(track); len(tr.Clips) != 0 {
		t.Error("clip left behind on the source track")
	}

	s.MoveClip(clip, other, -3)
	if got := s.ClipByID(clip).StartTime; got != 0 {
		t.Errorf("start = %v after negative move, want 0", got)
	}
}

func TestClipEndTime(t *testing.T) {
	c := &Clip{StartTime: 1.5, Duration: 2.25}
	if got := c.EndTime(); math.Abs(got-3.75) > 1e-9 {
		t.Errorf("EndTime() = %v, want 3.75", got)
	}
}
