package analyze

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/stemdaw/stemdaw/pkg/sound"
)

type Config struct {
	Debug  bool
	Input  string
	Output string
}

// Run decodes a stem and writes its waveform and RMS level plots next to
// the output folder, plus a duration summary to stdout.
func Run(ctx context.Context, cfg *Config) error {
	if cfg.Input == "" {
		return fmt.Errorf("analyze: input is required")
	}
	a, err := sound.NewAnalyzer(ctx, cfg.Input)
	if err != nil {
		return err
	}
	fmt.Printf("duration: %s, sample rate: %d\n", a.Duration(), a.SampleRate())

	name := filepath.Base(cfg.Input)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	out := filepath.Join(cfg.Output, name)

	wave, err := a.PlotWave(name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out+"-wave.jpg", wave, 0644); err != nil {
		return fmt.Errorf("analyze: couldn't write waveform plot: %w", err)
	}
	rms, err := a.PlotRMS(name)
	if err != nil {
		return err
	}
	if err := os.WriteFile(out+"-rms.jpg", rms, 0644); err != nil {
		return fmt.Errorf("analyze: couldn't write rms plot: %w", err)
	}
	return nil
}
