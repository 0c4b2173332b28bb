package mixer

import (
	"fmt"

	"github.com/ebitengine/oto/v3"
)

// Player drives a Mixer through the system audio device. The oto player
// pulls mixed frames through an io.Reader, so the device clock is the only
// clock: transport state changes on the mixer are picked up on the next
// pulled frame.
type Player struct {
	otoCtx *oto.Context
	player *oto.Player
	mixer  *Mixer
}

// NewPlayer opens the audio device at the mixer's sample rate. The mixer
// must have stems loaded first.
func NewPlayer(m *Mixer) (*Player, error) {
	rate := m.SampleRate()
	if rate == 0 {
		return nil, fmt.Errorf("mixer: no stems loaded")
	}
	op := &oto.NewContextOptions{
		SampleRate:   rate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	}
	otoCtx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("mixer: couldn't open audio device: %w", err)
	}
	<-ready
	p := &Player{
		otoCtx: otoCtx,
		mixer:  m,
	}
	p.player = otoCtx.NewPlayer(&mixerReader{mixer: m})
	p.player.Play()
	return p, nil
}

// Close stops the stream and releases the device player.
func (p *Player) Close() error {
	p.mixer.Pause()
	return p.player.Close()
}

// mixerReader adapts the mixer's frame pull to oto's byte stream. While the
// transport is paused it emits silence to keep the stream alive.
type mixerReader struct {
	mixer *Mixer
	frame []int16
}

func (r *mixerReader) Read(buf []byte) (int, error) {
	n := len(buf) / 2
	if n == 0 {
		return 0, nil
	}
	if cap(r.frame) < n {
		r.frame = make([]int16, n)
	}
	frame := r.frame[:n]
	got := r.mixer.ReadFrame(frame)
	for i := 0; i < got; i++ {
		buf[i*2] = byte(frame[i])
		buf[i*2+1] = byte(frame[i] >> 8)
	}
	for i := got * 2; i < n*2; i++ {
		buf[i] = 0
	}
	return n * 2, nil
}
