package spectrum

import (
	"math"
	"testing"
)

func TestPeakFloor(t *testing.T) {
	p := newPeakTracker()
	p.observe([]float64{5})

	for i := 0; i < 1000; i++ {
		p.tick()
	}

	if p.value != peakFloor {
		t.Fatalf("peak after long decay = %v, want floor %v", p.value, peakFloor)
	}
}

func TestPeakObserve(t *testing.T) {
	p := newPeakTracker()

	p.observe([]float64{0.3, 2.4, 1.1})
	if p.value != 2.4 {
		t.Fatalf("peak = %v, want 2.4", p.value)
	}

	// A quieter block never lowers the ceiling.
	p.observe([]float64{0.2})
	if p.value != 2.4 {
		t.Fatalf("peak after quiet block = %v, want 2.4", p.value)
	}

	p.observe([]float64{math.Inf(1), math.NaN()})
	if !isFinite(p.value) {
		t.Fatalf("peak = %v after malformed input, want finite", p.value)
	}
}

func TestPeakNormalize(t *testing.T) {
	p := newPeakTracker()
	p.observe([]float64{2})

	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{1, 0.5},
		{2, 1},
		{5, 1}, // clamped
		{-1, 0},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := p.normalize(tt.in); got != tt.want {
			t.Fatalf("normalize(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPeakDecayStep(t *testing.T) {
	p := newPeakTracker()
	p.observe([]float64{1})

	p.tick()

	if math.Abs(p.value-peakDecayRate) > 1e-12 {
		t.Fatalf("peak after one tick = %v, want %v", p.value, peakDecayRate)
	}
}
