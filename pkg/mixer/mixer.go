// Package mixer implements synchronized playback of a set of stems, the
// isolated components of one track produced by an external separation job.
// Every stem is mixed into a single sample stream driven by one cursor, so
// stems stay phase-aligned by construction: there are no independently
// started sources that could drift.
package mixer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

const channels = 2

// Stem is one separated component of a track, supplied by the separation
// pipeline. The mixer treats it as read-only.
type Stem struct {
	ID             string `json:"id"`
	StemType       string `json:"stem_type"`
	AudioURL       string `json:"audio_url"`
	SeparationMode string `json:"separation_mode"`
	TrackID        string `json:"track_id"`
}

// Decoder turns a stem URL into interleaved stereo PCM. Satisfied by
// sound.DecodePCM.
type Decoder func(ctx context.Context, url string) (samples []int16, sampleRate int, err error)

type stemState struct {
	stem     Stem
	samples  []int16
	rateHint int
	active   bool
	volume   float64
	muted    bool
	failed   bool
	err      error
}

// Mixer owns the decoded stems of one mixer session and their transient mix
// state. A new LoadStems call supersedes the previous set and releases its
// buffers.
type Mixer struct {
	mu          sync.Mutex
	decode      Decoder
	loadTimeout time.Duration

	stems      map[string]*stemState
	order      []string
	solo       string
	master     float64
	playing    bool
	cursor     int // interleaved sample offset into the stem buffers
	sampleRate int
	total      int // length of the longest stem, in interleaved samples
}

// Option configures a Mixer.
type Option func(*Mixer)

// WithLoadTimeout bounds how long a single stem may take to fetch and
// decode before it is marked unavailable. Default 30s.
func WithLoadTimeout(d time.Duration) Option {
	return func(m *Mixer) { m.loadTimeout = d }
}

// New creates a mixer that uses decode to turn stem URLs into PCM.
func New(decode Decoder, opts ...Option) *Mixer {
	m := &Mixer{
		decode:      decode,
		loadTimeout: 30 * time.Second,
		stems:       map[string]*stemState{},
		master:      1,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// LoadStems prepares a set of stems for synchronized playback, replacing
// any previously loaded set. Stems are decoded concurrently; one that fails
// to fetch or decode is marked unavailable and excluded without blocking
// the others. An error is returned only when no stem could be loaded.
func (m *Mixer) LoadStems(ctx context.Context, stems []Stem) error {
	states := make([]*stemState, len(stems))
	var wg sync.WaitGroup
	for i, stem := range stems {
		st := &stemState{
			stem:   stem,
			active: true,
			volume: DefaultStemVolume,
		}
		states[i] = st
		wg.Add(1)
		go func() {
			defer wg.Done()
			loadCtx, cancel := context.WithTimeout(ctx, m.loadTimeout)
			defer cancel()
			samples, rate, err := m.decode(loadCtx, st.stem.AudioURL)
			if err != nil {
				log.Printf("mixer: couldn't load stem %s (%s): %v\n", st.stem.ID, st.stem.StemType, err)
				st.failed = true
				st.err = err
				return
			}
			st.samples = samples
			st.rateHint = rate
		}()
	}
	wg.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Release the previous session.
	m.stems = map[string]*stemState{}
	m.order = m.order[:0]
	m.solo = ""
	m.playing = false
	m.cursor = 0
	m.total = 0
	m.sampleRate = 0

	for _, st := range states {
		if !st.failed {
			if m.sampleRate == 0 {
				m.sampleRate = st.rateHint
			} else if st.rateHint != m.sampleRate {
				st.failed = true
				st.err = fmt.Errorf("mixer: stem %s sample rate %d differs from %d", st.stem.ID, st.rateHint, m.sampleRate)
				st.samples = nil
				log.Println(st.err)
			}
		}
		if len(st.samples) > m.total {
			m.total = len(st.samples)
		}
		m.stems[st.stem.ID] = st
		m.order = append(m.order, st.stem.ID)
	}
	if len(stems) > 0 && m.sampleRate == 0 {
		return errors.New("mixer: no stem could be loaded")
	}
	return nil
}

// ToggleStem includes or excludes a stem from the active mix without
// touching its volume or mute settings.
func (m *Mixer) ToggleStem(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.stems[id]; ok {
		st.active = !st.active
	}
}

// SetStemVolume sets a stem's volume, clamped to [0,1].
func (m *Mixer) SetStemVolume(id string, volume float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.stems[id]; ok {
		st.volume = clamp01(volume)
	}
}

// ToggleStemMute flips a stem's mute flag.
func (m *Mixer) ToggleStemMute(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.stems[id]; ok {
		st.muted = !st.muted
	}
}

// SetSolo solos one stem, or clears the solo with an empty id. While a solo
// is set only that stem is audible; the other stems' own mute flags are
// untouched and apply again once the solo is cleared.
func (m *Mixer) SetSolo(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id != "" {
		if _, ok := m.stems[id]; !ok {
			return
		}
	}
	m.solo = id
}

// SetMasterVolume sets the global multiplier applied on top of per-stem
// volumes, clamped to [0,1].
func (m *Mixer) SetMasterVolume(volume float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.master = clamp01(volume)
}

// ResetAll restores every stem to active, default volume and unmuted,
// clears the solo and rewinds to the start. Failed stems stay unavailable.
func (m *Mixer) ResetAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, st := range m.stems {
		st.active = true
		st.volume = DefaultStemVolume
		st.muted = false
	}
	m.solo = ""
	m.playing = false
	m.cursor = 0
}

// Play starts the transport at the current position.
func (m *Mixer) Play() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.total == 0 {
		return
	}
	if m.cursor >= m.total {
		m.cursor = 0
	}
	m.playing = true
}

// Pause stops the transport, keeping the current position.
func (m *Mixer) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playing = false
}

// IsPlaying reports whether the transport is running.
func (m *Mixer) IsPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

// SeekTo moves the shared cursor, clamped to [0, duration]. Every stem
// follows the cursor, so a seek can never leave stems at different
// positions.
func (m *Mixer) SeekTo(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sampleRate == 0 {
		return
	}
	frames := int(seconds * float64(m.sampleRate))
	cursor := frames * channels
	if cursor < 0 {
		cursor = 0
	}
	if cursor > m.total {
		cursor = m.total
	}
	m.cursor = cursor - cursor%channels
}

// CurrentTime returns the transport position in seconds.
func (m *Mixer) CurrentTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sampleRate == 0 {
		return 0
	}
	return float64(m.cursor/channels) / float64(m.sampleRate)
}

// Duration returns the duration of the longest loaded stem in seconds.
func (m *Mixer) Duration() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sampleRate == 0 {
		return 0
	}
	return float64(m.total/channels) / float64(m.sampleRate)
}

// SampleRate returns the sample rate of the loaded stems, 0 before loading.
func (m *Mixer) SampleRate() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sampleRate
}

// StemIDs returns the loaded stem ids in load order, including failed ones.
func (m *Mixer) StemIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// StemStatus reports a stem's transient mix state.
type StemStatus struct {
	Stem   Stem
	Active bool
	Volume float64
	Muted  bool
	Failed bool
	Err    error
}

// Status returns the state of one stem. The second result is false for
// unknown ids.
func (m *Mixer) Status(id string) (StemStatus, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.stems[id]
	if !ok {
		return StemStatus{}, false
	}
	return StemStatus{
		Stem:   st.stem,
		Active: st.active,
		Volume: st.volume,
		Muted:  st.muted,
		Failed: st.failed,
		Err:    st.err,
	}, true
}

// Solo returns the id of the soloed stem, or "".
func (m *Mixer) Solo() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.solo
}

// MasterVolume returns the global multiplier.
func (m *Mixer) MasterVolume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.master
}

// ReadFrame mixes the next len(dst) samples of the active stems into dst at
// the shared cursor and advances it. It returns the number of samples
// written, which is less than len(dst) only at the end of the material;
// playback stops there. When paused it returns 0 without advancing.
func (m *Mixer) ReadFrame(dst []int16) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.playing || m.cursor >= m.total {
		if m.cursor >= m.total {
			m.playing = false
		}
		return 0
	}
	n := len(dst)
	if rem := m.total - m.cursor; n > rem {
		n = rem
	}
	mix := make([]float64, n)
	for _, id := range m.order {
		st := m.stems[id]
		mixInto(mix, st.samples, m.cursor, m.gain(st))
	}
	clipToInt16(dst[:n], mix)
	m.cursor += n
	if m.cursor >= m.total {
		m.playing = false
	}
	return n
}
