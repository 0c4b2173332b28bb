package daw

import "testing"

func newSelectionSession(t *testing.T) (*Session, string, []string) {
	t.Helper()
	s := New()
	s.CreateProject("Demo")
	track := s.AddTrack(TrackAudio, "A", "")
	ids := []string{
		s.AddClip(track, Clip{StartTime: 0, Duration: 2, Volume: 1}),
		s.AddClip(track, Clip{StartTime: 4, Duration: 2, Volume: 1}),
		s.AddClip(track, Clip{StartTime: 10, Duration: 2, Volume: 1}),
	}
	return s, track, ids
}

func TestSelectClip(t *testing.T) {
	s, _, ids := newSelectionSession(t)

	s.SelectClip(ids[0], false)
	s.SelectClip(ids[1], true)
	if got := s.SelectedClipIDs(); len(got) != 2 {
		t.Fatalf("selected = %d, want 2", len(got))
	}
	// Non-additive select replaces the set.
	s.SelectClip(ids[2], false)
	got := s.SelectedClipIDs()
	if len(got) != 1 || got[0] != ids[2] {
		t.Errorf("selected = %v, want only %q", got, ids[2])
	}
	// Idempotent re-select.
	s.SelectClip(ids[2], true)
	if got := s.SelectedClipIDs(); len(got) != 1 {
		t.Errorf("selected = %d after re-select, want 1", len(got))
	}
}

func TestSelectAllAndClear(t *testing.T) {
	s, _, ids := newSelectionSession(t)

	s.SelectAll()
	if got := s.SelectedClipIDs(); len(got) != len(ids) {
		t.Errorf("selected = %d, want %d", len(got), len(ids))
	}
	s.ClearSelection()
	if got := s.SelectedClipIDs(); len(got) != 0 {
		t.Errorf("selected = %d after clear, want 0", len(got))
	}
}

func TestCopyPaste(t *testing.T) {
	s, track, ids := newSelectionSession(t)

	s.SelectClip(ids[0], false)
	s.SelectClip(ids[1], true)
	s.CopySelected()
	s.Paste(track, 20)

	tr := s.TrackByID(track)
	if len(tr.Clips) != 5 {
		t.Fatalf("clips = %d after paste, want 5", len(tr.Clips))
	}
	// Relative spacing is preserved: sources at 0 and 4 paste at 20 and 24.
	p1, p2 := tr.Clips[3], tr.Clips[4]
	if p1.StartTime != 20 || p2.StartTime != 24 {
		t.Errorf("pasted at %v and %v, want 20 and 24", p1.StartTime, p2.StartTime)
	}

	// A copied clipboard can be pasted again.
	s.Paste(track, 30)
	if got := len(s.TrackByID(track).Clips); got != 7 {
		t.Errorf("clips = %d after second paste, want 7", got)
	}
}

func TestCutPaste(t *testing.T) {
	s, track, ids := newSelectionSession(t)
	other := s.AddTrack(TrackAudio, "B", "")

	s.SelectClip(ids[1], false)
	s.CutSelected()
	if got := len(s.TrackByID(track).Clips); got != 2 {
		t.Fatalf("clips = %d after cut, want 2", got)
	}

	s.Paste(other, 0)
	if got := len(s.TrackByID(other).Clips); got != 1 {
		t.Fatalf("clips = %d on target, want 1", got)
	}
	// A cut clipboard is consumed by the paste.
	s.Paste(other, 10)
	if got := len(s.TrackByID(other).Clips); got != 1 {
		t.Errorf("clips = %d after second paste of cut clipboard, want 1", got)
	}
}

func TestDeleteSelected(t *testing.T) {
	s, track, ids := newSelectionSession(t)

	s.SelectClip(ids[0], false)
	s.SelectClip(ids[2], true)
	s.DeleteSelected()

	tr := s.TrackByID(track)
	if len(tr.Clips) != 1 || tr.Clips[0].ID != ids[1] {
		t.Errorf("clips after delete = %d, want only the middle one", len(tr.Clips))
	}
	if got := s.SelectedClipIDs(); len(got) != 0 {
		t.Errorf("selection = %v after delete, want empty", got)
	}
}

func TestRemoveClipDropsSelection(t *testing.T) {
	s, _, ids := newSelectionSession(t)
	s.SelectClip(ids[0], false)
	s.RemoveClip(ids[0])
	if got := s.SelectedClipIDs(); len(got) != 0 {
		t.Errorf("selection = %v after clip removal, want empty", got)
	}
}

func TestSelectRegion(t *testing.T) {
	s, _, _ := newSelectionSession(t)
	s.SelectRegion(2, 6)
	s.ClearSelection()
	// Region selection is ephemeral state only, nothing to assert beyond no
	// panic and an empty clip selection.
	if got := s.SelectedClipIDs(); len(got) != 0 {
		t.Errorf("selection = %v, want empty", got)
	}
}
