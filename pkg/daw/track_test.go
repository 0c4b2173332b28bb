package daw

import "testing"

func TestAddTrack(t *testing.T) {
	s := New()
	s.CreateProject("Demo")

	id := s.AddTrack(TrackAudio, "", "")
	if id == "" {
		t.Fatal("AddTrack() returned empty id")
	}
	tr := s.TrackByID(id)
	if tr == nil {
		t.Fatal("track not found after add")
	}
	if tr.Name != "Audio 1" {
		t.Errorf("name = %q, want %q", tr.Name, "Audio 1")
	}
	if tr.Volume != 1 || tr.Pan != 0 {
		t.Errorf("defaults = volume %v pan %v, want 1 and 0", tr.Volume, tr.Pan)
	}

	id2 := s.AddTrack(TrackAudio, "", "drums")
	if tr2 := s.TrackByID(id2); tr2.Name != "drums 2" {
		t.Errorf("stem track name = %q, want %q", tr2.Name, "drums 2")
	}

	if got := s.AddTrack(TrackMaster, "Another", ""); got != "" {
		t.Errorf("AddTrack(master) = %q, want empty", got)
	}
}

func TestRemoveTrackKeepsMaster(t *testing.T) {
	s := New()
	s.CreateProject("Demo")
	master := s.Tracks()[0].ID
	id := s.AddTrack(TrackAudio, "A", "")

	s.RemoveTrack(master)
	if got := s.Tracks(); len(got) != 2 || got[0].Type != TrackMaster {
		t.Fatal("master track was removed")
	}

	s.RemoveTrack(id)
	if got := s.Tracks(); len(got) != 1 {
		t.Errorf("tracks = %d after remove, want 1", len(got))
	}
}

func TestUpdateTrackClamps(t *testing.T) {
	s := New()
	s.CreateProject("Demo")
	id := s.AddTrack(TrackAudio, "A", "")

	s.SetTrackVolume(id, 1.5)
	if got := s.TrackByID(id).Volume; got != 1 {
		t.Errorf("volume = %v, want 1", got)
	}
	s.SetTrackVolume(id, -0.5)
	if got := s.TrackByID(id).Volume; got != 0 {
		t.Errorf("volume = %v, want 0", got)
	}
	s.SetTrackPan(id, -2)
	if got := s.TrackByID(id).Pan; got != -1 {
		t.Errorf("pan = %v, want -1", got)
	}
	s.SetTrackPan(id, 2)
	if got := s.TrackByID(id).Pan; got != 1 {
		t.Errorf("pan = %v, want 1", got)
	}
}

func TestToggleMuteSolo(t *testing.T) {
	s := New()
	s.CreateProject("Demo")
	id := s.AddTrack(TrackAudio, "A", "")

	s.ToggleTrackMute(id)
	if !s.TrackByID(id).Muted {
		t.Error("track not muted after toggle")
	}
	s.ToggleTrackMute(id)
	if s.TrackByID(id).Muted {
		t.Error("track still muted after second toggle")
	}
	s.ToggleTrackSolo(id)
	if !s.TrackByID(id).Solo {
		t.Error("track not soloed after toggle")
	}
}

func TestDuplicateTrack(t *testing.T) {
	s := New()
	s.CreateProject("Demo")
	a := s.AddTrack(TrackAudio, "A", "vocals")
	b := s.AddTrack(TrackAudio, "B", "")
	clip := s.AddClip(a, Clip{Duration: 2, Volume: 1})

	dup := s.DuplicateTrack(a)
	if dup == "" {
		t.Fatal("DuplicateTrack() returned empty id")
	}
	tracks := s.Tracks()
	if len(tracks) != 4 {
		t.Fatalf("tracks = %d, want 4", len(tracks))
	}
	// The copy sits right after the source, before track B.
	if tracks[1].ID != a || tracks[2].ID != dup || tracks[3].ID != b {
		t.Errorf("track order = %q %q %q, want source, copy, b", tracks[1].ID, tracks[2].ID, tracks[3].ID)
	}
	dt := tracks[2]
	if dt.Name != "A (Copy)" {
		t.Errorf("name = %q, want %q", dt.Name, "A (Copy)")
	}
	if dt.StemType != "vocals" {
		t.Errorf("stem type = %q, want vocals", dt.StemType)
	}
	if len(dt.Clips) != 1 {
		t.Fatalf("clips = %d, want 1", len(dt.Clips))
	}
	if dt.Clips[0].ID == clip {
		t.Error("duplicated clip kept the source id")
	}
}

func TestClearTracks(t *testing.T) {
	s := New()
	s.CreateProject("Demo")
	s.AddTrack(TrackAudio, "A", "")
	s.AddTrack(TrackAudio, "B", "")

	s.ClearTracks()
	tracks := s.Tracks()
	if len(tracks) != 1 || tracks[0].Type != TrackMaster {
		t.Errorf("tracks after clear = %d, want only master", len(tracks))
	}
}

func TestTracksReturnsCopies(t *testing.T) {
	s := New()
	s.CreateProject("Demo")
	id := s.AddTrack(TrackAudio, "A", "")

	got := s.TrackByID(id)
	got.Name = "mutated"
	if s.TrackByID(id).Name != "A" {
		t.Error("mutating a returned track leaked into session state")
	}
}
