package daw

import (
	"math"
	"testing"
)

func TestTransport(t *testing.T) {
	s := New()
	s.CreateProject("Demo")
	s.SetDuration(60)

	s.Play()
	if !s.IsPlaying() {
		t.Fatal("not playing after Play()")
	}
	s.SeekTo(10)
	s.Pause()
	if s.IsPlaying() {
		t.Fatal("still playing after Pause()")
	}
	if got := s.CurrentTime(); got != 10 {
		t.Errorf("current time = %v after pause, want 10", got)
	}
	s.Play()
	s.Stop()
	if s.IsPlaying() || s.CurrentTime() != 0 {
		t.Errorf("Stop() left playing=%v time=%v, want stopped at 0", s.IsPlaying(), s.CurrentTime())
	}
	s.TogglePlayPause()
	if !s.IsPlaying() {
		t.Error("not playing after toggle")
	}
}

func TestSeekClamps(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{30, 30},
		{-5, 0},
		{120, 60},
	}
	s := New()
	s.CreateProject("Demo")
	s.SetDuration(60)
	for _, tt := range tests {
		s.SeekTo(tt.in)
		if got := s.CurrentTime(); got != tt.want {
			t.Errorf("SeekTo(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetDurationReclampsPlayhead(t *testing.T) {
	s := New()
	s.CreateProject("Demo")
	s.SetDuration(60)
	s.SeekTo(50)
	s.SetDuration(40)
	if got := s.CurrentTime(); got != 40 {
		t.Errorf("current time = %v after shrink, want 40", got)
	}
}

func TestLoop(t *testing.T) {
	s := New()
	s.CreateProject("Demo")

	// Toggling without bounds is a no-op.
	s.ToggleLoop()
	if s.Timeline().Looping {
		t.Error("looping without bounds")
	}

	s.SetLoop(8, 4)
	tl := s.Timeline()
	if tl.LoopStart != 4 || tl.LoopEnd != 8 {
		t.Errorf("loop = [%v, %v], want reversed bounds normalized to [4, 8]", tl.LoopStart, tl.LoopEnd)
	}
	if !tl.Looping || !tl.HasLoop {
		t.Error("loop not enabled after SetLoop")
	}

	s.ToggleLoop()
	if s.Timeline().Looping {
		t.Error("still looping after toggle off")
	}

	s.ClearLoop()
	tl = s.Timeline()
	if tl.HasLoop || tl.LoopStart != 0 || tl.LoopEnd != 0 {
		t.Errorf("loop = %+v after clear", tl)
	}
}

func TestZoomClamps(t *testing.T) {
	s := New()
	s.CreateProject("Demo")

	s.SetZoom(1000)
	if got := s.Timeline().Zoom; got != ZoomMax {
		t.Errorf("zoom = %v, want %v", got, ZoomMax)
	}
	for i := 0; i < 100; i++ {
		s.ZoomOut()
	}
	if got := s.Timeline().Zoom; got != ZoomMin {
		t.Errorf("zoom = %v after zooming out, want %v", got, ZoomMin)
	}
	s.ZoomIn()
	if got := s.Timeline().Zoom; math.Abs(got-ZoomMin*ZoomStep) > 1e-9 {
		t.Errorf("zoom = %v, want %v", got, ZoomMin*ZoomStep)
	}
}

func TestScrollNeverNegative(t *testing.T) {
	s := New()
	s.CreateProject("Demo")
	s.SetScroll(-10)
	if got := s.Timeline().ScrollLeft; got != 0 {
		t.Errorf("scroll = %v, want 0", got)
	}
	s.SetScroll(42)
	if got := s.Timeline().ScrollLeft; got != 42 {
		t.Errorf("scroll = %v, want 42", got)
	}
}

func TestSnapToGrid(t *testing.T) {
	s := New()
	s.CreateProject("Demo")
	s.UpdateBPM(120) // one beat = 0.5s

	tests := []struct {
		in, want float64
	}{
		{0.6, 0.5},
		{0.76, 1.0},
		{0.24, 0.0},
		{2.5, 2.5},
	}
	for _, tt := range tests {
		if got := s.SnapToGrid(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("SnapToGrid(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	// Snapping off returns the input unchanged.
	s.ToggleSnapToGrid()
	if got := s.SnapToGrid(0.6); got != 0.6 {
		t.Errorf("SnapToGrid(0.6) = %v with snapping off, want 0.6", got)
	}
}

func TestSetGridSizeFloor(t *testing.T) {
	s := New()
	s.CreateProject("Demo")
	s.SetGridSize(0.1)
	if got := s.Timeline().GridSize; got != 0.25 {
		t.Errorf("grid size = %v, want 0.25", got)
	}
	s.SetGridSize(2)
	if got := s.Timeline().GridSize; got != 2 {
		t.Errorf("grid size = %v, want 2", got)
	}
}
