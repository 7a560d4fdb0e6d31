package spectrum

import "math"

// SampleRate is the rate the band mapping assumes. The player layer conforms
// every source to this rate before samples reach the pipeline.
const SampleRate = 44100

const (
	// freqBase and freqExponent define the exponential band layout:
	// band i of n covers 20·10^(i/n·2.7) Hz up to the next band's start,
	// spanning 20 Hz to roughly 10 kHz. Bass bands are narrow, treble wide.
	freqBase     = 20.0
	freqExponent = 2.7

	// amplification scales mean amplitudes into a usable bar range.
	amplification = 2.5
)

// bandRange returns the half-open sample index range [lo, hi) feeding band i
// of n for a block of sampleCount samples. hi always exceeds lo, so very
// short blocks degrade to single-sample bands instead of failing.
func bandRange(i, n, sampleCount int, rate float64) (lo, hi int) {
	fLo := freqBase * math.Pow(10, float64(i)/float64(n)*freqExponent)
	fHi := freqBase * math.Pow(10, float64(i+1)/float64(n)*freqExponent)

	lo = clampIndex(int(fLo/rate*float64(sampleCount)), sampleCount)
	hi = clampIndex(int(fHi/rate*float64(sampleCount)), sampleCount)
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

// mapBands fills energies with the mean absolute amplitude of each band's
// sample range, scaled by the amplification constant. Non-finite input
// collapses to zero energy rather than propagating.
func mapBands(samples []float64, energies []float64, rate float64) {
	n := len(energies)
	for i := range energies {
		lo, hi := bandRange(i, n, len(samples), rate)

		sum := 0.0
		count := 0
		for j := lo; j < hi && j < len(samples); j++ {
			sum += math.Abs(samples[j])
			count++
		}
		if count == 0 {
			energies[i] = 0
			continue
		}

		e := sum / float64(count) * amplification
		if !isFinite(e) {
			e = 0
		}
		energies[i] = e
	}
}

func clampIndex(idx, sampleCount int) int {
	if idx < 0 {
		return 0
	}
	if idx > sampleCount-1 {
		return sampleCount - 1
	}
	return idx
}

func clamp01(v float64) float64 {
	if !isFinite(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
