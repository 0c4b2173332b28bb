package daw

import "testing"

func TestUndoRedo(t *testing.T) {
	s := New()
	s.CreateProject("Demo")
	s.PushHistory()

	s.UpdateProjectName("Renamed")
	s.PushHistory()
	s.UpdateBPM(90)
	s.PushHistory()

	if !s.CanUndo() {
		t.Fatal("CanUndo() = false")
	}
	s.Undo()
	p := s.Project()
	if p.BPM != 120 || p.Name != "Renamed" {
		t.Errorf("after undo: bpm %v name %q, want 120 and Renamed", p.BPM, p.Name)
	}
	s.Undo()
	if got := s.Project().Name; got != "Demo" {
		t.Errorf("after second undo: name %q, want Demo", got)
	}

	// Bottom of the stack.
	if s.CanUndo() {
		t.Error("CanUndo() = true at the bottom")
	}
	s.Undo()
	if got := s.Project().Name; got != "Demo" {
		t.Errorf("undo at bottom changed state: %q", got)
	}

	s.Redo()
	s.Redo()
	p = s.Project()
	if p.BPM != 90 || p.Name != "Renamed" {
		t.Errorf("after redos: bpm %v name %q, want 90 and Renamed", p.BPM, p.Name)
	}
	if s.CanRedo() {
		t.Error("CanRedo() = true at the top")
	}
}

func TestPushHistoryPrunesRedo(t *testing.T) {
	s := New()
	s.CreateProject("Demo")
	s.PushHistory()
	s.UpdateBPM(90)
	s.PushHistory()
	s.UpdateBPM(100)
	s.PushHistory()

	s.Undo()
	s.Undo()
	if !s.CanRedo() {
		t.Fatal("CanRedo() = false after undos")
	}

	// A new edit from the middle of the stack drops the redo branch.
	s.UpdateBPM(150)
	s.PushHistory()
	if s.CanRedo() {
		t.Error("redo branch survived a new push")
	}
	if got := s.HistoryLen(); got != 2 {
		t.Errorf("history len = %d, want 2", got)
	}
	s.Redo()
	if got := s.Project().BPM; got != 150 {
		t.Errorf("bpm = %v after no-op redo, want 150", got)
	}
}

func TestHistorySnapshotsAreIsolated(t *testing.T) {
	s := New()
	s.CreateProject("Demo")
	track := s.AddTrack(TrackAudio, "A", "")
	clip := s.AddClip(track, Clip{Duration: 4, Volume: 1})
	s.PushHistory()

	// Mutations after the push must not leak into the snapshot.
	vol := 0.2
	s.UpdateClip(clip, ClipUpdate{Volume: &vol})
	s.RemoveTrack(track)
	s.PushHistory()

	s.Undo()
	tr := s.TrackByID(track)
	if tr == nil {
		t.Fatal("track missing after undo")
	}
	if len(tr.Clips) != 1 || tr.Clips[0].Volume != 1 {
		t.Errorf("restored clip = %+v, want volume 1", tr.Clips[0])
	}
}

func TestClearHistory(t *testing.T) {
	s := New()
	s.CreateProject("Demo")
	s.PushHistory()
	s.PushHistory()

	s.ClearHistory()
	if s.HistoryLen() != 0 || s.HistoryIndex() != -1 {
		t.Errorf("history = len %d index %d after clear, want 0 and -1", s.HistoryLen(), s.HistoryIndex())
	}
	if s.CanUndo() || s.CanRedo() {
		t.Error("undo/redo available after clear")
	}
}
