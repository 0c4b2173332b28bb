package daw

// The history is caller-driven: the UI pushes one snapshot per completed
// gesture, so a drag of many rapid updates coalesces into a single entry.

// PushHistory appends a deep snapshot of the current project, discarding
// any redo entries beyond the current index. No-op without a project.
func (s *Session) PushHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.project == nil {
		return
	}
	s.history = append(s.history[:s.historyIndex+1], s.project.Clone())
	s.historyIndex++
}

// Undo restores the previous snapshot. No-op at the bottom of the stack.
func (s *Session) Undo() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.historyIndex <= 0 {
		return
	}
	s.historyIndex--
	s.project = s.history[s.historyIndex].Clone()
}

// Redo restores the next snapshot. No-op at the top of the stack.
func (s *Session) Redo() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.historyIndex >= len(s.history)-1 {
		return
	}
	s.historyIndex++
	s.project = s.history[s.historyIndex].Clone()
}

// ClearHistory empties the stack.
func (s *Session) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	s.historyIndex = -1
}

// HistoryLen returns the number of snapshots on the stack.
func (s *Session) HistoryLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.history)
}

// HistoryIndex returns the index of the active snapshot, -1 when empty.
func (s *Session) HistoryIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.historyIndex
}

// CanUndo reports whether Undo would change state.
func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.historyIndex > 0
}

// CanRedo reports whether Redo would change state.
func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.historyIndex < len(s.history)-1
}
