// Package daw implements the editing session of a multi-track timeline:
// one project with its tracks, clips, markers and regions, plus the
// ephemeral selection, clipboard, timeline view and undo history. All
// methods are synchronous state transitions; operations on a missing
// project or a missing entity are silent no-ops so callers never need to
// guard routine edits.
package daw

import (
	"sync"
	"time"
)

// Session is the state container behind a single editing session. There is
// one project loaded at a time; loading a new project replaces it wholesale.
// A Session is safe for concurrent use.
type Session struct {
	mu        sync.Mutex
	project   *Project
	selection Selection
	clipboard Clipboard
	timeline  Timeline
	playing   bool

	history      []*Project
	historyIndex int
}

// New creates an empty session with no project loaded.
func New() *Session {
	return &Session{
		selection:    newSelection(),
		timeline:     defaultTimeline(),
		historyIndex: -1,
	}
}

// Project returns a deep copy of the loaded project, or nil when no project
// is loaded. The copy is safe to hand to persistence.
func (s *Session) Project() *Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.project.Clone()
}

// HasProject reports whether a project is loaded.
func (s *Session) HasProject() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.project != nil
}

// touch stamps the project as modified. Callers hold the lock.
func (s *Session) touch() {
	if s.project != nil {
		s.project.UpdatedAt = time.Now().UTC()
	}
}

func (s *Session) trackByID(id string) *Track {
	if s.project == nil {
		return nil
	}
	for _, t := range s.project.Tracks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (s *Session) clipByID(id string) (*Track, *Clip) {
	if s.project == nil {
		return nil, nil
	}
	for _, t := range s.project.Tracks {
		for _, c := range t.Clips {
			if c.ID == id {
				return t, c
			}
		}
	}
	return nil, nil
}

func clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
