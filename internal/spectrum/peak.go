package spectrum

const (
	// peakDecayRate shrinks the running maximum a little every render tick,
	// so the bars regain sensitivity after a loud passage.
	peakDecayRate = 0.98

	// peakFloor keeps the normalization divisor away from zero; quiet
	// signals fill the bar range instead of vanishing, and silence never
	// divides by near-zero.
	peakFloor = 0.1
)

// peakTracker maintains the decaying running maximum used to normalize band
// heights. The effect is a slow auto-gain across the whole spectrum.
type peakTracker struct {
	value float64
}

func newPeakTracker() peakTracker {
	return peakTracker{value: peakFloor}
}

// observe raises the ceiling to the loudest band energy in the block.
func (p *peakTracker) observe(energies []float64) {
	for _, e := range energies {
		if isFinite(e) && e > p.value {
			p.value = e
		}
	}
}

// tick applies one decay step, clamped to the floor.
func (p *peakTracker) tick() {
	p.value *= peakDecayRate
	if !isFinite(p.value) || p.value < peakFloor {
		p.value = peakFloor
	}
}

// normalize maps a smoothed energy into [0, 1] against the current peak.
func (p *peakTracker) normalize(v float64) float64 {
	if !isFinite(v) || v <= 0 {
		return 0
	}
	n := v / p.value
	if n > 1 {
		return 1
	}
	return n
}
