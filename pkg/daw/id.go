package daw

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// NewID mints a new entity identifier.
func NewID() string {
	return ulid.Make().String()
}

// NewProject builds an empty project seeded with its master track.
func NewProject(name string) *Project {
	now := time.Now().UTC()
	return &Project{
		ID:            NewID(),
		Name:          name,
		BPM:           120,
		MasterVolume:  1,
		TimeSignature: [2]int{4, 4},
		Tracks:        []*Track{NewTrack(TrackMaster, "Master", "")},
		Markers:       []*Marker{},
		Regions:       []*Region{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// NewTrack builds a track with default mix settings.
func NewTrack(typ, name, stemType string) *Track {
	return &Track{
		ID:       NewID(),
		Type:     typ,
		Name:     name,
		Volume:   1,
		Height:   80,
		StemType: stemType,
		Clips:    []*Clip{},
	}
}
