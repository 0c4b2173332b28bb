package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/stemdaw/stemdaw/pkg/daw"
	"github.com/stemdaw/stemdaw/pkg/storage"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Debug  bool
	DBType string
	DBConn string

	ID     string
	Output string
}

// clipRow is one line of the clip-sheet CSV: every clip of the project
// with its placement, flattened for spreadsheet use.
type clipRow struct {
	Track     string  `csv:"track"`
	Clip      string  `csv:"clip"`
	Name      string  `csv:"name"`
	StartTime float64 `csv:"start_time"`
	Duration  float64 `csv:"duration"`
	Offset    float64 `csv:"offset"`
	Volume    float64 `csv:"volume"`
	AudioURL  string  `csv:"audio_url"`
}

// Run exports a persisted project to a YAML project file or a clip-sheet
// CSV, chosen by the output extension.
func Run(ctx context.Context, cfg *Config) error {
	if cfg.ID == "" {
		return fmt.Errorf("export: id is required")
	}
	if cfg.Output == "" {
		return fmt.Errorf("export: output is required")
	}

	store, err := storage.New(cfg.DBType, cfg.DBConn, cfg.Debug)
	if err != nil {
		return fmt.Errorf("export: couldn't create orm store: %w", err)
	}
	if err := store.Start(ctx); err != nil {
		return fmt.Errorf("export: couldn't start orm store: %w", err)
	}

	row, err := store.GetProject(ctx, cfg.ID)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	var p daw.Project
	if err := json.Unmarshal([]byte(row.Document), &p); err != nil {
		return fmt.Errorf("export: couldn't unmarshal document: %w", err)
	}

	var b []byte
	ext := filepath.Ext(cfg.Output)
	switch ext {
	case ".yaml", ".yml":
		b, err = yaml.Marshal(&p)
		if err != nil {
			return fmt.Errorf("export: couldn't marshal project: %w", err)
		}
	case ".csv":
		var rows []*clipRow
		for _, t := range p.Tracks {
			for _, c := range t.Clips {
				rows = append(rows, &clipRow{
					Track:     t.Name,
					Clip:      c.ID,
					Name:      c.Name,
					StartTime: c.StartTime,
					Duration:  c.Duration,
					Offset:    c.Offset,
					Volume:    c.Volume,
					AudioURL:  c.AudioURL,
				})
			}
		}
		b, err = gocsv.MarshalBytes(&rows)
		if err != nil {
			return fmt.Errorf("export: couldn't marshal clip sheet: %w", err)
		}
	default:
		return fmt.Errorf("export: unsupported output format: %s", ext)
	}

	if err := os.WriteFile(cfg.Output, b, 0644); err != nil {
		return fmt.Errorf("export: couldn't write output: %w", err)
	}
	log.Printf("export: wrote %s\n", cfg.Output)
	return nil
}
