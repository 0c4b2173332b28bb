package sound

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"strings"
	"time"

	mp3 "github.com/hajimehoshi/go-mp3"
)

// DecodePCM fetches an MP3 from an http(s) URL or a local path and decodes
// it to interleaved stereo 16-bit PCM.
func DecodePCM(ctx context.Context, u string) ([]int16, int, error) {
	b, err := fetch(ctx, u)
	if err != nil {
		return nil, 0, err
	}
	decoder, err := mp3.NewDecoder(bytes.NewReader(b))
	if err != nil {
		return nil, 0, fmt.Errorf("sound: couldn't decode mp3: %w", err)
	}
	raw, err := io.ReadAll(decoder)
	if err != nil {
		return nil, 0, fmt.Errorf("sound: couldn't read samples: %w", err)
	}
	samples := make([]int16, len(raw)/2)
	for i := range samples {
		samples[i] = int16(raw[i*2]) | int16(raw[i*2+1])<<8
	}
	return samples, decoder.SampleRate(), nil
}

func fetch(ctx context.Context, u string) ([]byte, error) {
	if strings.HasPrefix(u, "http") {
		client := &http.Client{
			Timeout: 2 * time.Minute,
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, fmt.Errorf("sound: couldn't create request: %w", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("sound: couldn't download audio: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("sound: unexpected status %s for %s", resp.Status, u)
		}
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("sound: couldn't read audio: %w", err)
		}
		return b, nil
	}
	b, err := os.ReadFile(u)
	if err != nil {
		return nil, fmt.Errorf("sound: couldn't open file: %w", err)
	}
	return b, nil
}

// Analyzer holds decoded audio as normalized float64 samples for waveform
// and level analysis.
type Analyzer struct {
	stereo   [2][]float64
	mono     []float64
	rate     int
	duration time.Duration
}

// NewAnalyzer decodes an MP3 from a URL or local path.
func NewAnalyzer(ctx context.Context, u string) (*Analyzer, error) {
	samples, rate, err := DecodePCM(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("sound: couldn't create decoder: %w", err)
	}
	return NewAnalyzerPCM(samples, rate), nil
}

// NewAnalyzerPCM builds an analyzer from interleaved stereo 16-bit PCM.
func NewAnalyzerPCM(samples []int16, rate int) *Analyzer {
	var stereo [2][]float64
	for i, sample := range samples {
		stereo[i%2] = append(stereo[i%2], float64(sample)/32768.0)
	}
	var mono []float64
	for i, left := range stereo[0] {
		right := left
		if i < len(stereo[1]) {
			right = stereo[1][i]
		}
		mono = append(mono, (left+right)/2.0)
	}
	duration := time.Duration(float64(len(mono)) / float64(rate) * float64(time.Second))
	return &Analyzer{
		stereo:   stereo,
		mono:     mono,
		rate:     rate,
		duration: duration,
	}
}

func (a *Analyzer) Duration() time.Duration {
	return a.duration
}

func (a *Analyzer) SampleRate() int {
	return a.rate
}

// Resample reduces the mono signal to min/max pairs per window, the shape
// used for waveform rendering.
func (a *Analyzer) Resample(windowSize time.Duration) []float64 {
	samples := a.mono
	windowLength := int(float64(a.rate) * windowSize.Seconds())

	var resampled []float64
	for i := 0; i < len(samples); i += windowLength {
		end := i + windowLength
		if end > len(samples) {
			end = len(samples)
		}
		window := samples[i:end]
		var min, max float64
		for _, v := range window {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		resampled = append(resampled, min)
		resampled = append(resampled, max)
	}
	return resampled
}

// RMS returns the root mean square level per window.
func (a *Analyzer) RMS(windowSize time.Duration) []float64 {
	samples := a.mono
	windowLength := int(float64(a.rate) * windowSize.Seconds())

	var rms []float64
	for i := 0; i < len(samples); i += windowLength {
		end := i + windowLength
		if end > len(samples) {
			end = len(samples)
		}
		rms = append(rms, calculateRMS(samples[i:end]))
	}
	return rms
}

func calculateRMS(samples []float64) float64 {
	var squareSum float64
	for _, sample := range samples {
		squareSum += sample * sample
	}
	meanSquare := squareSum / float64(len(samples))
	return math.Sqrt(meanSquare)
}
