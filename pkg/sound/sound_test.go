package sound

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
	"time"
)

func TestWriteWAV(t *testing.T) {
	samples := []int16{0, 100, -100, 32767}
	var buf bytes.Buffer
	if err := WriteWAV(&buf, samples, 44100); err != nil {
		t.Fatalf("WriteWAV() error = %v", err)
	}
	b := buf.Bytes()
	if len(b) != 44+len(samples)*2 {
		t.Fatalf("wav size = %d, want %d", len(b), 44+len(samples)*2)
	}
	if string(b[0:4]) != "RIFF" || string(b[8:12]) != "WAVE" {
		t.Error("missing RIFF/WAVE magic")
	}
	if got := binary.LittleEndian.Uint16(b[22:24]); got != 2 {
		t.Errorf("channels = %d, want 2", got)
	}
	if got := binary.LittleEndian.Uint32(b[24:28]); got != 44100 {
		t.Errorf("sample rate = %d, want 44100", got)
	}
	if got := binary.LittleEndian.Uint16(b[34:36]); got != 16 {
		t.Errorf("bits per sample = %d, want 16", got)
	}
	if got := binary.LittleEndian.Uint32(b[40:44]); got != uint32(len(samples)*2) {
		t.Errorf("data size = %d, want %d", got, len(samples)*2)
	}
	// Samples are little endian in file order.
	if got := int16(binary.LittleEndian.Uint16(b[46:48])); got != 100 {
		t.Errorf("second sample = %d, want 100", got)
	}
	if got := int16(binary.LittleEndian.Uint16(b[48:50])); got != -100 {
		t.Errorf("third sample = %d, want -100", got)
	}
}

func TestAnalyzerDuration(t *testing.T) {
	// One second of stereo silence at 100 Hz.
	a := NewAnalyzerPCM(make([]int16, 200), 100)
	if got := a.Duration(); got != time.Second {
		t.Errorf("Duration() = %v, want 1s", got)
	}
	if got := a.SampleRate(); got != 100 {
		t.Errorf("SampleRate() = %d, want 100", got)
	}
}

func TestAnalyzerRMS(t *testing.T) {
	// Stereo full-scale square wave: RMS of the mono signal is 1.
	samples := make([]int16, 200)
	for i := range samples {
		if (i/2)%2 == 0 {
			samples[i] = 32767
		} else {
			samples[i] = -32768
		}
	}
	a := NewAnalyzerPCM(samples, 100)
	rms := a.RMS(time.Second)
	if len(rms) != 1 {
		t.Fatalf("windows = %d, want 1", len(rms))
	}
	if math.Abs(rms[0]-1) > 0.01 {
		t.Errorf("rms = %v, want about 1", rms[0])
	}
}

func TestAnalyzerResample(t *testing.T) {
	samples := make([]int16, 400)
	for i := range samples {
		samples[i] = int16((i % 100) * 300)
	}
	a := NewAnalyzerPCM(samples, 100)
	pairs := a.Resample(time.Second)
	// Two seconds of audio and one window per second, min/max per window.
	if len(pairs) != 4 {
		t.Fatalf("values = %d, want 4", len(pairs))
	}
	for i := 0; i < len(pairs); i += 2 {
		if pairs[i] > pairs[i+1] {
			t.Errorf("window %d: min %v > max %v", i/2, pairs[i], pairs[i+1])
		}
	}
}
