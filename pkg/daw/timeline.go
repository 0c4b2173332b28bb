package daw

import "math"

// Play starts playback at the current position.
func (s *Session) Play() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = true
}

// Pause stops playback, keeping the current position.
func (s *Session) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = false
}

// Stop stops playback and rewinds to the start.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = false
	s.timeline.CurrentTime = 0
}

// TogglePlayPause flips between playing and paused.
func (s *Session) TogglePlayPause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playing = !s.playing
}

// IsPlaying reports whether the transport is running.
func (s *Session) IsPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// SeekTo moves the playhead, clamped to [0, duration].
func (s *Session) SeekTo(time float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeline.CurrentTime = clamp(time, 0, s.timeline.Duration)
}

// CurrentTime returns the playhead position.
func (s *Session) CurrentTime() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeline.CurrentTime
}

// SetDuration records the total duration, derived externally from loaded
// audio. The playhead is re-clamped against the new duration.
func (s *Session) SetDuration(d float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if d < 0 {
		d = 0
	}
	s.timeline.Duration = d
	s.timeline.CurrentTime = clamp(s.timeline.CurrentTime, 0, d)
}

// Duration returns the known total duration.
func (s *Session) Duration() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeline.Duration
}

// SetLoop sets the loop bounds and enables looping.
func (s *Session) SetLoop(start, end float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if end < start {
		start, end = end, start
	}
	s.timeline.LoopStart = start
	s.timeline.LoopEnd = end
	s.timeline.HasLoop = true
	s.timeline.Looping = true
}

// ToggleLoop flips looping without touching the bounds. Meaningless until
// bounds have been set.
func (s *Session) ToggleLoop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.timeline.HasLoop {
		return
	}
	s.timeline.Looping = !s.timeline.Looping
}

// ClearLoop drops the loop bounds and disables looping.
func (s *Session) ClearLoop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeline.LoopStart = 0
	s.timeline.LoopEnd = 0
	s.timeline.HasLoop = false
	s.timeline.Looping = false
}

// SetZoom sets the horizontal zoom in pixels per second, clamped to the
// supported range.
func (s *Session) SetZoom(zoom float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeline.Zoom = clamp(zoom, ZoomMin, ZoomMax)
}

// ZoomIn increases the zoom by one step.
func (s *Session) ZoomIn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeline.Zoom = clamp(s.timeline.Zoom*ZoomStep, ZoomMin, ZoomMax)
}

// ZoomOut decreases the zoom by one step.
func (s *Session) ZoomOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeline.Zoom = clamp(s.timeline.Zoom/ZoomStep, ZoomMin, ZoomMax)
}

// SetScroll sets the horizontal scroll position, never negative.
func (s *Session) SetScroll(scrollLeft float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if scrollLeft < 0 {
		scrollLeft = 0
	}
	s.timeline.ScrollLeft = scrollLeft
}

// ToggleSnapToGrid flips grid snapping.
func (s *Session) ToggleSnapToGrid() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.timeline.SnapToGrid = !s.timeline.SnapToGrid
}

// SetGridSize sets the grid step in beats, at least a sixteenth note.
func (s *Session) SetGridSize(size float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if size < 0.25 {
		size = 0.25
	}
	s.timeline.GridSize = size
}

// SnapToGrid rounds a time to the nearest grid line when snapping is on,
// otherwise returns it unchanged. The grid step follows the project tempo;
// without a project it falls back to 120 BPM.
func (s *Session) SnapToGrid(time float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.timeline.SnapToGrid {
		return time
	}
	bpm := 120.0
	if s.project != nil && s.project.BPM > 0 {
		bpm = s.project.BPM
	}
	step := 60 / bpm * s.timeline.GridSize
	return math.Round(time/step) * step
}

// Timeline returns a copy of the timeline view state.
func (s *Session) Timeline() Timeline {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeline
}
