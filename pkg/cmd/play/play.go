package play

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/stemdaw/stemdaw/pkg/mixer"
	"github.com/stemdaw/stemdaw/pkg/sound"
	"github.com/stemdaw/stemdaw/pkg/storage"
)

type Config struct {
	Debug  bool
	DBType string
	DBConn string

	TrackID string
	Solo    string
	Volume  float64
	Timeout time.Duration
}

// Run plays the registered stems of a track through the audio device,
// mixed in sync on a single clock. Blocks until playback ends or the
// context is cancelled.
func Run(ctx context.Context, cfg *Config) error {
	log.Println("play: started")
	defer log.Println("play: ended")

	if cfg.TrackID == "" {
		return errors.New("play: track id is required")
	}

	store, err := storage.New(cfg.DBType, cfg.DBConn, cfg.Debug)
	if err != nil {
		return fmt.Errorf("play: couldn't create orm store: %w", err)
	}
	if err := store.Start(ctx); err != nil {
		return fmt.Errorf("play: couldn't start orm store: %w", err)
	}

	rows, err := store.ListStems(ctx, cfg.TrackID)
	if err != nil {
		return fmt.Errorf("play: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("play: no stems registered for track %s", cfg.TrackID)
	}
	stems := make([]mixer.Stem, len(rows))
	soloID := ""
	for i, r := range rows {
		stems[i] = mixer.Stem{
			ID:             r.ID,
			StemType:       r.StemType,
			AudioURL:       r.AudioURL,
			SeparationMode: r.SeparationMode,
			TrackID:        r.TrackID,
		}
		if cfg.Solo != "" && r.StemType == cfg.Solo {
			soloID = r.ID
		}
	}
	if cfg.Solo != "" && soloID == "" {
		return fmt.Errorf("play: no stem of type %q for track %s", cfg.Solo, cfg.TrackID)
	}

	opts := []mixer.Option{}
	if cfg.Timeout > 0 {
		opts = append(opts, mixer.WithLoadTimeout(cfg.Timeout))
	}
	m := mixer.New(sound.DecodePCM, opts...)
	if err := m.LoadStems(ctx, stems); err != nil {
		return fmt.Errorf("play: %w", err)
	}
	if cfg.Volume > 0 {
		m.SetMasterVolume(cfg.Volume)
	}
	m.SetSolo(soloID)

	player, err := mixer.NewPlayer(m)
	if err != nil {
		return fmt.Errorf("play: %w", err)
	}
	defer func() {
		if err := player.Close(); err != nil {
			log.Printf("play: couldn't close player: %v\n", err)
		}
	}()

	m.Play()
	log.Printf("play: %d stems, %.1fs\n", len(stems), m.Duration())

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			m.Pause()
			return ctx.Err()
		case <-ticker.C:
			if !m.IsPlaying() {
				return nil
			}
		}
	}
}
