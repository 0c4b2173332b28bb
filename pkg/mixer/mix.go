package mixer

// DefaultStemVolume is the per-stem volume applied on load and reset.
const DefaultStemVolume = 0.7

// gain resolves the effective gain of one stem in the current mix. A failed
// or deactivated stem is always silent. While a solo is set only the soloed
// stem is audible and its own mute flag is overridden; without a solo the
// per-stem mute applies.
func (m *Mixer) gain(st *stemState) float64 {
	if st.failed || !st.active {
		return 0
	}
	if m.solo != "" {
		if m.solo != st.stem.ID {
			return 0
		}
		return m.master * st.volume
	}
	if st.muted {
		return 0
	}
	return m.master * st.volume
}

// mixInto accumulates one stem into the float mix buffer starting at the
// given sample offset. Missing samples past the stem's end are silence.
func mixInto(mix []float64, samples []int16, offset int, gain float64) {
	if gain == 0 {
		return
	}
	for i := range mix {
		j := offset + i
		if j >= len(samples) {
			return
		}
		mix[i] += float64(samples[j]) * gain
	}
}

// clipToInt16 writes the accumulated mix into dst, clipping to the int16
// range.
func clipToInt16(dst []int16, mix []float64) {
	for i, v := range mix {
		if v > 32767 {
			v = 32767
		} else if v < -32768 {
			v = -32768
		}
		dst[i] = int16(v)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
