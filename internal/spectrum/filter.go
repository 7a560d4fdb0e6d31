package spectrum

// blend folds one block of raw band energies into the persistent smoothed
// state. The configured smoothing knob is inverted on purpose: a low value
// means a high blend coefficient and therefore a fast visual reaction.
func blend(smoothed, raw []float64, smoothing float64) {
	reaction := 1 - smoothing
	for i := range smoothed {
		v := smoothed[i]*(1-reaction) + raw[i]*reaction
		if !isFinite(v) || v < 0 {
			v = 0
		}
		smoothed[i] = v
	}
}

// decayBands applies the silent-tick falloff: each band shrinks by the decay
// rate with no raw contribution at all.
func decayBands(smoothed []float64, rate float64) {
	for i := range smoothed {
		v := smoothed[i] * rate
		if !isFinite(v) || v < 0 {
			v = 0
		}
		smoothed[i] = v
	}
}

// maxBand returns the largest band value, ignoring non-finite entries.
func maxBand(bands []float64) float64 {
	m := 0.0
	for _, v := range bands {
		if isFinite(v) && v > m {
			m = v
		}
	}
	return m
}
