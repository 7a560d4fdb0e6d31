package spectrum

import (
	"math"
	"testing"
)

func TestBandRangeOrdering(t *testing.T) {
	const n = 32
	const sampleCount = 4096

	prevLo := -1
	for i := 0; i < n; i++ {
		lo, hi := bandRange(i, n, sampleCount, SampleRate)
		if lo < 0 || lo > sampleCount-1 {
			t.Fatalf("band %d: lo = %d, want within [0, %d]", i, lo, sampleCount-1)
		}
		if hi <= lo {
			t.Fatalf("band %d: hi = %d not above lo = %d", i, hi, lo)
		}
		if lo < prevLo {
			t.Fatalf("band %d: lo = %d went backwards from %d", i, lo, prevLo)
		}
		prevLo = lo
	}
}

func TestMapBandsUnitBlock(t *testing.T) {
	// Eight full-scale samples across four bands: every band range clamps
	// into the tiny block and still yields positive energy.
	samples := []float64{1, 1, 1, 1, 1, 1, 1, 1}
	energies := make([]float64, 4)

	mapBands(samples, energies, SampleRate)

	if energies[0] <= 0 {
		t.Fatalf("lowest band energy = %v, want > 0", energies[0])
	}
	for i, e := range energies {
		if e <= 0 {
			t.Fatalf("band %d energy = %v, want > 0", i, e)
		}
		if e > amplification {
			t.Fatalf("band %d energy = %v, want <= %v for unit samples", i, e, amplification)
		}
	}
}

func TestMapBandsShortBlock(t *testing.T) {
	// A block shorter than the band count must not fail, only produce
	// degenerate single-sample ranges.
	samples := []float64{0.5}
	energies := make([]float64, 16)

	mapBands(samples, energies, SampleRate)

	for i, e := range energies {
		if e != 0.5*amplification {
			t.Fatalf("band %d energy = %v, want %v", i, e, 0.5*amplification)
		}
	}
}

func TestMapBandsSanitizesNonFinite(t *testing.T) {
	samples := []float64{math.NaN(), math.Inf(1), 1, 1}
	energies := make([]float64, 4)

	mapBands(samples, energies, SampleRate)

	for i, e := range energies {
		if !isFinite(e) {
			t.Fatalf("band %d energy = %v, want finite", i, e)
		}
		if e < 0 {
			t.Fatalf("band %d energy = %v, want >= 0", i, e)
		}
	}
}

func TestMapBandsAmplitudeScaling(t *testing.T) {
	// A constant-amplitude block maps every band to amplitude × 2.5.
	samples := make([]float64, 1024)
	for i := range samples {
		samples[i] = 0.2
	}
	energies := make([]float64, 16)

	mapBands(samples, energies, SampleRate)

	want := 0.2 * amplification
	for i, e := range energies {
		if math.Abs(e-want) > 1e-9 {
			t.Fatalf("band %d energy = %v, want %v", i, e, want)
		}
	}
}
