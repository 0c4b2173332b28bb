package stemdaw

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/stemdaw/stemdaw/pkg/mixer"
	"github.com/stemdaw/stemdaw/pkg/sound"
)

type Config struct {
	Volume  float64
	Solo    string
	Timeout time.Duration
	Debug   bool
}

// Mix downmixes the given stem audio files into a single wav file.
// Inputs can be local mp3 files or http urls. The stem type is taken
// from the file name, so "drums.mp3" becomes the "drums" stem.
func Mix(ctx context.Context, cfg *Config, inputs []string, output string) error {
	if len(inputs) == 0 {
		return fmt.Errorf("no input stems given")
	}
	stems := make([]mixer.Stem, 0, len(inputs))
	for _, in := range inputs {
		name := strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
		stems = append(stems, mixer.Stem{
			ID:       name,
			StemType: name,
			AudioURL: in,
		})
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	m := mixer.New(sound.DecodePCM, mixer.WithLoadTimeout(timeout))
	if err := m.LoadStems(ctx, stems); err != nil {
		return fmt.Errorf("couldn't load stems: %w", err)
	}
	for _, id := range m.StemIDs() {
		status, _ := m.Status(id)
		if status.Failed {
			log.Printf("stem %s failed to load, skipping\n", id)
			continue
		}
		m.SetStemVolume(id, 1.0)
	}
	if cfg.Solo != "" {
		var found bool
		for _, id := range m.StemIDs() {
			if id == cfg.Solo {
				m.SetSolo(id)
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("no stem named %q", cfg.Solo)
		}
	}
	if cfg.Volume > 0 {
		m.SetMasterVolume(cfg.Volume)
	}

	samples := make([]int16, 0, int(m.Duration())*m.SampleRate()*2)
	buf := make([]int16, 4096)
	m.Play()
	for m.IsPlaying() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		n := m.ReadFrame(buf)
		if n == 0 {
			break
		}
		samples = append(samples, buf[:n]...)
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("couldn't create output file: %w", err)
	}
	defer f.Close()
	if err := sound.WriteWAV(f, samples, m.SampleRate()); err != nil {
		return fmt.Errorf("couldn't write wav: %w", err)
	}
	log.Printf("mixed %d stems into %s (%.1fs)\n", len(stems), output, m.Duration())
	return nil
}
