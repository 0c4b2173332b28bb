package render

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stemdaw/stemdaw/pkg/filestore"
	"github.com/stemdaw/stemdaw/pkg/mixer"
	"github.com/stemdaw/stemdaw/pkg/sound"
	"github.com/stemdaw/stemdaw/pkg/storage"
)

type Config struct {
	Debug  bool
	DBType string
	DBConn string
	FSType string
	FSConn string

	TrackID string
	Output  string
	Timeout time.Duration
}

// Run renders the registered stems of a track into a single WAV mixdown,
// writes it to the file store and records it.
func Run(ctx context.Context, cfg *Config) error {
	log.Println("render: started")
	defer log.Println("render: ended")

	if cfg.TrackID == "" {
		return errors.New("render: track id is required")
	}

	store, err := storage.New(cfg.DBType, cfg.DBConn, cfg.Debug)
	if err != nil {
		return fmt.Errorf("render: couldn't create orm store: %w", err)
	}
	if err := store.Start(ctx); err != nil {
		return fmt.Errorf("render: couldn't start orm store: %w", err)
	}

	fs, err := filestore.New(cfg.FSType, cfg.FSConn, cfg.Debug)
	if err != nil {
		return fmt.Errorf("render: couldn't create file storage: %w", err)
	}

	rows, err := store.ListStems(ctx, cfg.TrackID)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("render: no stems registered for track %s", cfg.TrackID)
	}
	stems := make([]mixer.Stem, len(rows))
	for i, r := range rows {
		stems[i] = mixer.Stem{
			ID:             r.ID,
			StemType:       r.StemType,
			AudioURL:       r.AudioURL,
			SeparationMode: r.SeparationMode,
			TrackID:        r.TrackID,
		}
	}

	opts := []mixer.Option{}
	if cfg.Timeout > 0 {
		opts = append(opts, mixer.WithLoadTimeout(cfg.Timeout))
	}
	m := mixer.New(sound.DecodePCM, opts...)
	if err := m.LoadStems(ctx, stems); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	for _, id := range m.StemIDs() {
		st, _ := m.Status(id)
		if st.Failed {
			log.Printf("render: skipping stem %s (%s): %v\n", id, st.Stem.StemType, st.Err)
			continue
		}
		// Render at unity gain so the mixdown matches the source levels.
		m.SetStemVolume(id, 1)
	}
	m.SetMasterVolume(1)

	samples := mix(m)
	id := ulid.Make().String()

	output := cfg.Output
	if output == "" {
		output = filepath.Join(os.TempDir(), filestore.WAV(id))
	}
	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("render: couldn't create output file: %w", err)
	}
	defer f.Close()
	if err := sound.WriteWAV(f, samples, m.SampleRate()); err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if err := fs.SetWAV(ctx, output, id); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if err := store.SetMixdown(ctx, &storage.Mixdown{
		ID:       id,
		TrackID:  cfg.TrackID,
		Format:   "wav",
		Duration: m.Duration(),
		Location: filestore.WAV(id),
	}); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	log.Printf("render: mixdown %s (%.1fs) written to %s\n", id, m.Duration(), output)
	return nil
}

// mix pulls the whole transport through the mixer's frame reader.
func mix(m *mixer.Mixer) []int16 {
	m.SeekTo(0)
	m.Play()
	var samples []int16
	frame := make([]int16, 4096)
	for {
		n := m.ReadFrame(frame)
		if n == 0 {
			return samples
		}
		samples = append(samples, frame[:n]...)
	}
}
