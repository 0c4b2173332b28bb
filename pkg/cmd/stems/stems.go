package stems

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/oklog/ulid/v2"
	"github.com/stemdaw/stemdaw/pkg/storage"
)

type Config struct {
	Debug  bool
	DBType string
	DBConn string

	TrackID string
	Input   string
}

type stem struct {
	StemType       string `json:"stem_type" csv:"stem_type"`
	AudioURL       string `json:"audio_url" csv:"audio_url"`
	SeparationMode string `json:"separation_mode" csv:"separation_mode"`
	TrackID        string `json:"track_id" csv:"track_id"`
}

// Import registers stems produced by an external separation job, read from
// a JSON or CSV file.
func Import(ctx context.Context, cfg *Config) error {
	var count int
	log.Println("stems: import started")
	defer func() {
		log.Printf("stems: import ended (%d)\n", count)
	}()

	b, err := os.ReadFile(cfg.Input)
	if err != nil {
		return fmt.Errorf("stems: couldn't read input file: %w", err)
	}

	ext := filepath.Ext(cfg.Input)
	var items []*stem
	switch ext {
	case ".json":
		if err := json.Unmarshal(b, &items); err != nil {
			return fmt.Errorf("stems: couldn't unmarshal items: %w", err)
		}
	case ".csv":
		if err := gocsv.UnmarshalBytes(b, &items); err != nil {
			return fmt.Errorf("stems: couldn't unmarshal items: %w", err)
		}
	default:
		return fmt.Errorf("stems: unsupported input format: %s", ext)
	}

	store, err := storage.New(cfg.DBType, cfg.DBConn, cfg.Debug)
	if err != nil {
		return fmt.Errorf("stems: couldn't create orm store: %w", err)
	}
	if err := store.Start(ctx); err != nil {
		return fmt.Errorf("stems: couldn't start orm store: %w", err)
	}

	for _, it := range items {
		trackID := it.TrackID
		if trackID == "" {
			trackID = cfg.TrackID
		}
		if trackID == "" {
			return fmt.Errorf("stems: track id not set for %s", it.StemType)
		}
		if it.AudioURL == "" {
			return fmt.Errorf("stems: audio url not set for %s", it.StemType)
		}
		if err := store.SetStem(ctx, &storage.Stem{
			ID:             ulid.Make().String(),
			TrackID:        trackID,
			StemType:       it.StemType,
			AudioURL:       it.AudioURL,
			SeparationMode: it.SeparationMode,
		}); err != nil {
			return fmt.Errorf("stems: %w", err)
		}
		count++
	}
	return nil
}

// List prints the registered stems, optionally filtered by track.
func List(ctx context.Context, cfg *Config) error {
	store, err := storage.New(cfg.DBType, cfg.DBConn, cfg.Debug)
	if err != nil {
		return fmt.Errorf("stems: couldn't create orm store: %w", err)
	}
	if err := store.Start(ctx); err != nil {
		return fmt.Errorf("stems: couldn't start orm store: %w", err)
	}
	vs, err := store.ListStems(ctx, cfg.TrackID)
	if err != nil {
		return fmt.Errorf("stems: %w", err)
	}
	for _, v := range vs {
		fmt.Printf("%s\t%s\t%s\t%s\n", v.ID, v.TrackID, v.StemType, v.AudioURL)
	}
	return nil
}
