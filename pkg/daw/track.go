package daw

import (
	"fmt"
	"log"
)

// TrackUpdate carries a partial track edit. Nil fields are left untouched.
type TrackUpdate struct {
	Name     *string
	Volume   *float64
	Pan      *float64
	Muted    *bool
	Solo     *bool
	Height   *int
	Color    *string
	StemType *string
}

// AddTrack appends a new audio track after the existing tracks and returns
// its id. The master track is created with the project, never here.
func (s *Session) AddTrack(typ, name, stemType string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.project == nil || typ == TrackMaster {
		return ""
	}
	if name == "" {
		name = fmt.Sprintf("Audio %d", len(s.project.Tracks))
		if stemType != "" {
			name = fmt.Sprintf("%s %d", stemType, len(s.project.Tracks))
		}
	}
	t := NewTrack(typ, name, stemType)
	s.project.Tracks = append(s.project.Tracks, t)
	s.touch()
	return t.ID
}

// RemoveTrack deletes a track and its clips. Removing the master track is a
// no-op.
func (s *Session) RemoveTrack(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.project == nil {
		return
	}
	for i, t := range s.project.Tracks {
		if t.ID != id {
			continue
		}
		if t.Type == TrackMaster {
			log.Println("daw: ignoring attempt to remove master track")
			return
		}
		s.project.Tracks = append(s.project.Tracks[:i], s.project.Tracks[i+1:]...)
		delete(s.selection.TrackIDs, id)
		for _, c := range t.Clips {
			delete(s.selection.ClipIDs, c.ID)
		}
		s.touch()
		return
	}
}

// UpdateTrack merges the non-nil fields of u into the track. Volume is
// clamped to [0,1] and pan to [-1,1].
func (s *Session) UpdateTrack(id string, u TrackUpdate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.trackByID(id)
	if t == nil {
		return
	}
	if u.Name != nil {
		t.Name = *u.Name
	}
	if u.Volume != nil {
		t.Volume = clamp(*u.Volume, 0, 1)
	}
	if u.Pan != nil {
		t.Pan = clamp(*u.Pan, -1, 1)
	}
	if u.Muted != nil {
		t.Muted = *u.Muted
	}
	if u.Solo != nil {
		t.Solo = *u.Solo
	}
	if u.Height != nil {
		t.Height = *u.Height
	}
	if u.Color != nil {
		t.Color = *u.Color
	}
	if u.StemType != nil {
		t.StemType = *u.StemType
	}
	s.touch()
}

// DuplicateTrack clones a track, with fresh ids for the track and every
// clip, and inserts the copy immediately after the source. Returns the new
// track id.
func (s *Session) DuplicateTrack(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.project == nil {
		return ""
	}
	for i, t := range s.project.Tracks {
		if t.ID != id {
			continue
		}
		dup := t.Clone()
		dup.ID = NewID()
		dup.Type = TrackAudio
		dup.Name = t.Name + " (Copy)"
		for _, c := range dup.Clips {
			c.ID = NewID()
		}
		tracks := s.project.Tracks
		tracks = append(tracks[:i+1], append([]*Track{dup}, tracks[i+1:]...)...)
		s.project.Tracks = tracks
		s.touch()
		return dup.ID
	}
	return ""
}

// ClearTracks removes every track except the master.
func (s *Session) ClearTracks() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.project == nil || len(s.project.Tracks) == 0 {
		return
	}
	s.project.Tracks = s.project.Tracks[:1]
	s.selection = newSelection()
	s.touch()
}

// SetTrackVolume sets a track's volume, clamped to [0,1].
func (s *Session) SetTrackVolume(id string, volume float64) {
	v := clamp(volume, 0, 1)
	s.UpdateTrack(id, TrackUpdate{Volume: &v})
}

// SetTrackPan sets a track's stereo position, clamped to [-1,1].
func (s *Session) SetTrackPan(id string, pan float64) {
	p := clamp(pan, -1, 1)
	s.UpdateTrack(id, TrackUpdate{Pan: &p})
}

// ToggleTrackMute flips a track's mute flag.
func (s *Session) ToggleTrackMute(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t := s.trackByID(id); t != nil {
		t.Muted = !t.Muted
		s.touch()
	}
}

// ToggleTrackSolo flips a track's solo flag.
func (s *Session) ToggleTrackSolo(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t := s.trackByID(id); t != nil {
		t.Solo = !t.Solo
		s.touch()
	}
}

// Tracks returns deep copies of the tracks in order, master first. Empty
// when no project is loaded.
func (s *Session) Tracks() []*Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.project == nil {
		return nil
	}
	out := make([]*Track, len(s.project.Tracks))
	for i, t := range s.project.Tracks {
		out[i] = t.Clone()
	}
	return out
}

// TrackByID returns a deep copy of the track, or nil.
func (s *Session) TrackByID(id string) *Track {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t := s.trackByID(id); t != nil {
		return t.Clone()
	}
	return nil
}
