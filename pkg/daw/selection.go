package daw

import "sort"

// SelectClip selects a single clip, or adds it to the selection when
// additive is true. Re-selecting an already selected clip is idempotent.
func (s *Session) SelectClip(id string, additive bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !additive {
		s.selection.ClipIDs = map[string]struct{}{}
	}
	s.selection.ClipIDs[id] = struct{}{}
}

// SelectTrack selects a single track, or adds it when additive is true.
func (s *Session) SelectTrack(id string, additive bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !additive {
		s.selection.TrackIDs = map[string]struct{}{}
	}
	s.selection.TrackIDs[id] = struct{}{}
}

// SelectRegion selects a time span.
func (s *Session) SelectRegion(start, end float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Region = &TimeRange{Start: start, End: end}
}

// ClearSelection drops all selected clips, tracks and the region.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection = newSelection()
}

// SelectAll selects every clip in the project.
func (s *Session) SelectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.project == nil {
		return
	}
	s.selection.ClipIDs = map[string]struct{}{}
	for _, t := range s.project.Tracks {
		for _, c := range t.Clips {
			s.selection.ClipIDs[c.ID] = struct{}{}
		}
	}
}

// SelectedClipIDs returns the selected clip ids in stable order.
func (s *Session) SelectedClipIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]string, 0, len(s.selection.ClipIDs))
	for id := range s.selection.ClipIDs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// SelectedClips returns deep copies of the selected clips in track order.
func (s *Session) SelectedClips() []*Clip {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selectedClips()
}

func (s *Session) selectedClips() []*Clip {
	if s.project == nil {
		return nil
	}
	var out []*Clip
	for _, t := range s.project.Tracks {
		for _, c := range t.Clips {
			if _, ok := s.selection.ClipIDs[c.ID]; ok {
				cc := *c
				out = append(out, &cc)
			}
		}
	}
	return out
}

// CutSelected moves the selected clips to the clipboard and removes them
// from their tracks.
func (s *Session) CutSelected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clips := s.selectedClips()
	if len(clips) == 0 {
		return
	}
	s.clipboard = Clipboard{Clips: clips, CutMode: true}
	for _, c := range clips {
		s.removeClip(c.ID)
	}
}

// CopySelected copies the selected clips to the clipboard.
func (s *Session) CopySelected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clips := s.selectedClips()
	if len(clips) == 0 {
		return
	}
	s.clipboard = Clipboard{Clips: clips}
}

// Paste places the clipboard clips on the target track starting at the
// given time, preserving their relative offsets. A cut clipboard is
// consumed; a copied one can be pasted again.
func (s *Session) Paste(trackID string, at float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.trackByID(trackID)
	if t == nil || len(s.clipboard.Clips) == 0 {
		return
	}
	base := s.clipboard.Clips[0].StartTime
	for _, c := range s.clipboard.Clips {
		cc := *c
		cc.ID = NewID()
		cc.StartTime = at + (c.StartTime - base)
		sanitizeClip(&cc)
		t.Clips = append(t.Clips, &cc)
	}
	if s.clipboard.CutMode {
		s.clipboard = Clipboard{}
	}
	s.touch()
}

// DeleteSelected removes every selected clip and clears the selection.
func (s *Session) DeleteSelected() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.selectedClips() {
		s.removeClip(c.ID)
	}
	s.selection = newSelection()
}

// ClipByID returns a copy of a clip, or nil.
func (s *Session) ClipByID(id string) *Clip {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, c := s.clipByID(id); c != nil {
		cc := *c
		return &cc
	}
	return nil
}

// TrackByClipID returns the id of the track owning the clip, or "".
func (s *Session) TrackByClipID(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, _ := s.clipByID(id); t != nil {
		return t.ID
	}
	return ""
}
