package daw

import "log"

// CreateProject replaces any loaded project with a fresh one seeded with a
// master track, 120 BPM and a 4/4 time signature. Selection, clipboard and
// history are reset.
func (s *Session) CreateProject(name string) *Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := NewProject(name)
	log.Printf("daw: creating project %q (%s)\n", name, p.ID)
	s.project = p
	s.resetEphemeral()
	return p.Clone()
}

// LoadProject replaces the session state wholesale with an externally
// supplied project. The master-track invariant is repaired defensively: a
// project without a master track gets one prepended, and a master track not
// in first position is moved there.
func (s *Session) LoadProject(p *Project) {
	if p == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := p.Clone()
	normalizeMaster(cp)
	log.Printf("daw: loading project %q (%s)\n", cp.Name, cp.ID)
	s.project = cp
	s.resetEphemeral()
}

// resetEphemeral clears selection, clipboard, timeline and history.
// Callers hold the lock.
func (s *Session) resetEphemeral() {
	s.selection = newSelection()
	s.clipboard = Clipboard{}
	s.timeline = defaultTimeline()
	s.playing = false
	s.history = nil
	s.historyIndex = -1
}

func normalizeMaster(p *Project) {
	for i, t := range p.Tracks {
		if t.Type != TrackMaster {
			continue
		}
		if i != 0 {
			p.Tracks = append(p.Tracks[:i], p.Tracks[i+1:]...)
			p.Tracks = append([]*Track{t}, p.Tracks...)
		}
		return
	}
	p.Tracks = append([]*Track{NewTrack(TrackMaster, "Master", "")}, p.Tracks...)
}

// UpdateProjectName renames the loaded project.
func (s *Session) UpdateProjectName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.project == nil {
		return
	}
	s.project.Name = name
	s.touch()
}

// UpdateBPM sets the project tempo. Non-positive values are ignored.
func (s *Session) UpdateBPM(bpm float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.project == nil || bpm <= 0 {
		return
	}
	s.project.BPM = bpm
	s.touch()
}

// UpdateTimeSignature sets beats per bar and the beat unit.
func (s *Session) UpdateTimeSignature(beatsPerBar, beatUnit int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.project == nil || beatsPerBar < 1 || beatUnit < 1 {
		return
	}
	s.project.TimeSignature = [2]int{beatsPerBar, beatUnit}
	s.touch()
}

// UpdateMasterVolume sets the project master volume, clamped to [0,1].
func (s *Session) UpdateMasterVolume(volume float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.project == nil {
		return
	}
	s.project.MasterVolume = clamp(volume, 0, 1)
	s.touch()
}

// AddMarker appends a named point to the timeline and returns its id.
func (s *Session) AddMarker(time float64, label string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.project == nil {
		return ""
	}
	m := &Marker{ID: NewID(), Time: time, Label: label}
	s.project.Markers = append(s.project.Markers, m)
	s.touch()
	return m.ID
}

// UpdateMarker moves or relabels a marker.
func (s *Session) UpdateMarker(id string, time float64, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.project == nil {
		return
	}
	for _, m := range s.project.Markers {
		if m.ID == id {
			m.Time = time
			m.Label = label
			s.touch()
			return
		}
	}
}

// RemoveMarker deletes a marker by id.
func (s *Session) RemoveMarker(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.project == nil {
		return
	}
	for i, m := range s.project.Markers {
		if m.ID == id {
			s.project.Markers = append(s.project.Markers[:i], s.project.Markers[i+1:]...)
			s.touch()
			return
		}
	}
}

// AddRegion appends a named span to the timeline and returns its id.
func (s *Session) AddRegion(start, end float64, label string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.project == nil {
		return ""
	}
	r := &Region{ID: NewID(), StartTime: start, EndTime: end, Label: label}
	s.project.Regions = append(s.project.Regions, r)
	s.touch()
	return r.ID
}

// UpdateRegion moves or relabels a region.
func (s *Session) UpdateRegion(id string, start, end float64, label string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.project == nil {
		return
	}
	for _, r := range s.project.Regions {
		if r.ID == id {
			r.StartTime = start
			r.EndTime = end
			r.Label = label
			s.touch()
			return
		}
	}
}

// RemoveRegion deletes a region by id.
func (s *Session) RemoveRegion(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.project == nil {
		return
	}
	for i, r := range s.project.Regions {
		if r.ID == id {
			s.project.Regions = append(s.project.Regions[:i], s.project.Regions[i+1:]...)
			s.touch()
			return
		}
	}
}
