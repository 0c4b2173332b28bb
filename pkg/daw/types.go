package daw

import "time"

// Track types.
const (
	TrackAudio  = "audio"
	TrackMaster = "master"
)

// MinClipDuration is the shortest a clip can become after trims or splits.
const MinClipDuration = 0.1

// Project is the root document of a session. Tracks[0] is always the master
// track and it cannot be removed.
type Project struct {
	ID            string    `json:"id" yaml:"id"`
	Name          string    `json:"name" yaml:"name"`
	BPM           float64   `json:"bpm" yaml:"bpm"`
	MasterVolume  float64   `json:"master_volume" yaml:"master_volume"`
	TimeSignature [2]int    `json:"time_signature" yaml:"time_signature"`
	Tracks        []*Track  `json:"tracks" yaml:"tracks"`
	Markers       []*Marker `json:"markers" yaml:"markers"`
	Regions       []*Region `json:"regions" yaml:"regions"`
	CreatedAt     time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" yaml:"updated_at"`
}

type Track struct {
	ID       string  `json:"id" yaml:"id"`
	Type     string  `json:"type" yaml:"type"`
	Name     string  `json:"name" yaml:"name"`
	Volume   float64 `json:"volume" yaml:"volume"`
	Pan      float64 `json:"pan" yaml:"pan"`
	Muted    bool    `json:"muted" yaml:"muted"`
	Solo     bool    `json:"solo" yaml:"solo"`
	Height   int     `json:"height" yaml:"height"`
	Color    string  `json:"color" yaml:"color"`
	StemType string  `json:"stem_type,omitempty" yaml:"stem_type,omitempty"`
	Clips    []*Clip `json:"clips" yaml:"clips"`
}

// Clip is a placed segment of audio on a track. Times are in seconds.
// Offset is the read position into the source audio.
type Clip struct {
	ID        string  `json:"id" yaml:"id"`
	Name      string  `json:"name" yaml:"name"`
	AudioURL  string  `json:"audio_url" yaml:"audio_url"`
	StartTime float64 `json:"start_time" yaml:"start_time"`
	Duration  float64 `json:"duration" yaml:"duration"`
	Offset    float64 `json:"offset" yaml:"offset"`
	Volume    float64 `json:"volume" yaml:"volume"`
	FadeIn    float64 `json:"fade_in" yaml:"fade_in"`
	FadeOut   float64 `json:"fade_out" yaml:"fade_out"`
}

// EndTime returns the absolute end of the clip on the timeline.
func (c *Clip) EndTime() float64 {
	return c.StartTime + c.Duration
}

// Marker is a named point on the timeline.
type Marker struct {
	ID    string  `json:"id" yaml:"id"`
	Time  float64 `json:"time" yaml:"time"`
	Label string  `json:"label" yaml:"label"`
}

// Region is a named span on the timeline.
type Region struct {
	ID        string  `json:"id" yaml:"id"`
	StartTime float64 `json:"start_time" yaml:"start_time"`
	EndTime   float64 `json:"end_time" yaml:"end_time"`
	Label     string  `json:"label" yaml:"label"`
}

// TimeRange is a selected span, not persisted.
type TimeRange struct {
	Start float64
	End   float64
}

// Selection holds the ephemeral selection state. Reset on project load.
type Selection struct {
	ClipIDs  map[string]struct{}
	TrackIDs map[string]struct{}
	Region   *TimeRange
}

func newSelection() Selection {
	return Selection{
		ClipIDs:  map[string]struct{}{},
		TrackIDs: map[string]struct{}{},
	}
}

// Clipboard holds cut or copied clips. Reset on project load.
type Clipboard struct {
	Clips   []*Clip
	CutMode bool
}

// Timeline view and playback state, per session, never persisted.
type Timeline struct {
	CurrentTime float64
	Duration    float64
	Zoom        float64 // pixels per second
	ScrollLeft  float64
	LoopStart   float64
	LoopEnd     float64
	HasLoop     bool
	Looping     bool
	SnapToGrid  bool
	GridSize    float64 // in beats
}

const (
	ZoomMin  = 10.0
	ZoomMax  = 500.0
	ZoomStep = 1.2
)

func defaultTimeline() Timeline {
	return Timeline{
		Zoom:       60,
		SnapToGrid: true,
		GridSize:   1,
	}
}

// Clone returns a deep copy of the project. Used for history snapshots and
// persistence handoff.
func (p *Project) Clone() *Project {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Tracks = make([]*Track, len(p.Tracks))
	for i, t := range p.Tracks {
		cp.Tracks[i] = t.Clone()
	}
	cp.Markers = make([]*Marker, len(p.Markers))
	for i, m := range p.Markers {
		mc := *m
		cp.Markers[i] = &mc
	}
	cp.Regions = make([]*Region, len(p.Regions))
	for i, r := range p.Regions {
		rc := *r
		cp.Regions[i] = &rc
	}
	return &cp
}

// Clone returns a deep copy of the track, keeping the same ids.
func (t *Track) Clone() *Track {
	ct := *t
	ct.Clips = make([]*Clip, len(t.Clips))
	for i, c := range t.Clips {
		cc := *c
		ct.Clips[i] = &cc
	}
	return &ct
}
