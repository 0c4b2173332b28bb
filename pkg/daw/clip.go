package daw

import "log"

// ClipUpdate carries a partial clip edit. Nil fields are left untouched.
// Trim gestures set StartTime, Duration and Offset together so the clip's
// absolute end stays anchored; the update only enforces the hard bounds.
type ClipUpdate struct {
	Name      *string
	AudioURL  *string
	StartTime *float64
	Duration  *float64
	Offset    *float64
	Volume    *float64
	FadeIn    *float64
	FadeOut   *float64
}

// AddClip appends a clip to the given track and returns the generated id.
// The id on the passed clip is ignored.
func (s *Session) AddClip(trackID string, clip Clip) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.trackByID(trackID)
	if t == nil {
		return ""
	}
	clip.ID = NewID()
	sanitizeClip(&clip)
	c := clip
	t.Clips = append(t.Clips, &c)
	s.touch()
	return c.ID
}

// RemoveClip deletes a clip wherever it lives and drops it from the
// selection. Unknown ids are a no-op.
func (s *Session) RemoveClip(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeClip(id)
}

func (s *Session) removeClip(id string) {
	if s.project == nil {
		return
	}
	for _, t := range s.project.Tracks {
		for i, c := range t.Clips {
			if c.ID == id {
				t.Clips = append(t.Clips[:i], t.Clips[i+1:]...)
				delete(s.selection.ClipIDs, id)
				s.touch()
				return
			}
		}
	}
}

// UpdateClip merges the non-nil fields of u into the clip, keeping the
// duration above MinClipDuration and start time and offset non-negative.
func (s *Session) UpdateClip(id string, u ClipUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, c := s.clipByID(id)
	if c == nil {
		return
	}
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.AudioURL != nil {
		c.AudioURL = *u.AudioURL
	}
	if u.StartTime != nil {
		c.StartTime = *u.StartTime
	}
	if u.Duration != nil {
		c.Duration = *u.Duration
	}
	if u.Offset != nil {
		c.Offset = *u.Offset
	}
	if u.Volume != nil {
		c.Volume = *u.Volume
	}
	if u.FadeIn != nil {
		c.FadeIn = *u.FadeIn
	}
	if u.FadeOut != nil {
		c.FadeOut = *u.FadeOut
	}
	sanitizeClip(c)
	s.touch()
}

// SplitClip replaces a clip with two halves at the given absolute time. The
// split point must fall strictly inside the clip; splitting exactly at a
// boundary is rejected. Returns the id of the right half, or "".
func (s *Session) SplitClip(id string, at float64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, c := s.clipByID(id)
	if c == nil {
		return ""
	}
	if at <= c.StartTime || at >= c.EndTime() {
		log.Printf("daw: split time %.3f outside clip %s bounds\n", at, id)
		return ""
	}
	leftDur := at - c.StartTime
	rightDur := c.Duration - leftDur
	if leftDur < MinClipDuration || rightDur < MinClipDuration {
		return ""
	}
	right := *c
	right.ID = NewID()
	right.StartTime = at
	right.Duration = rightDur
	right.Offset = c.Offset + leftDur
	c.Duration = leftDur
	sanitizeClip(c)
	sanitizeClip(&right)
	for i, cc := range t.Clips {
		if cc.ID == id {
			t.Clips = append(t.Clips[:i+1], append([]*Clip{&right}, t.Clips[i+1:]...)...)
			break
		}
	}
	s.touch()
	return right.ID
}

// DuplicateClip clones a clip with a new id, placed immediately after the
// original. Returns the new clip id.
func (s *Session) DuplicateClip(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, c := s.clipByID(id)
	if c == nil {
		return ""
	}
	dup := *c
	dup.ID = NewID()
	dup.StartTime = c.EndTime()
	t.Clips = append(t.Clips, &dup)
	s.touch()
	return dup.ID
}

// MoveClip reassigns a clip to another track at a new start time. Moving
// within the same track only changes the start time.
func (s *Session) MoveClip(id, trackID string, startTime float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	src, c := s.clipByID(id)
	dst := s.trackByID(trackID)
	if c == nil || dst == nil {
		return
	}
	if startTime < 0 {
		startTime = 0
	}
	c.StartTime = startTime
	if src != dst {
		for i, cc := range src.Clips {
			if cc.ID == id {
				src.Clips = append(src.Clips[:i], src.Clips[i+1:]...)
				break
			}
		}
		dst.Clips = append(dst.Clips, c)
	}
	s.touch()
}

// sanitizeClip enforces the clip bounds: non-negative start and offset, a
// minimum duration, volume in [0,1] and fades no longer than half the clip.
func sanitizeClip(c *Clip) {
	if c.StartTime < 0 {
		c.StartTime = 0
	}
	if c.Offset < 0 {
		c.Offset = 0
	}
	if c.Duration < MinClipDuration {
		c.Duration = MinClipDuration
	}
	c.Volume = clamp(c.Volume, 0, 1)
	half := c.Duration / 2
	c.FadeIn = clamp(c.FadeIn, 0, half)
	c.FadeOut = clamp(c.FadeOut, 0, half)
}
