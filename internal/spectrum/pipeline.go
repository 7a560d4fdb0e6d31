package spectrum

import (
	"math"
	"sync"
	"time"
)

const (
	// noiseFloor is the smallest smoothed energy that counts as signal.
	noiseFloor = 0.001

	// idleWaveStep sets the spatial/temporal frequency of the fallback wave.
	idleWaveStep = 0.1
)

var (
	// idleColor is the fixed tone of the fallback animation, independent of
	// the configured color mode.
	idleColor = RGBA{R: 64, G: 156, B: 176, A: 140}

	// backdropTone is the dark base of the background rectangle; the
	// configured opacity supplies its alpha.
	backdropTone = RGBA{R: 14, G: 16, B: 24}
)

// Pipeline turns an asynchronous stream of audio samples into per-frame bar
// draw lists. One goroutine may push samples while another ticks at the
// render cadence; all shared spectrum state is guarded by a single mutex,
// held only for short copy-and-blend sections so the audio producer is never
// stalled for long.
type Pipeline struct {
	mu        sync.Mutex
	cfg       Config
	raw       []float64
	smoothed  []float64
	peak      peakTracker
	lastAudio time.Time
	audioSeen bool
	frame     uint64

	// now is the clock used for idle detection. time.Now carries a
	// monotonic reading, so wall-clock adjustments cannot fake an idle
	// transition. Tests substitute their own clock.
	now func() time.Time
}

// New creates a pipeline with the given configuration. Out-of-range fields
// are clamped.
func New(cfg Config) *Pipeline {
	cfg = cfg.normalized()
	return &Pipeline{
		cfg:      cfg,
		raw:      make([]float64, cfg.Bands),
		smoothed: make([]float64, cfg.Bands),
		peak:     newPeakTracker(),
		now:      time.Now,
	}
}

// PushSamples ingests one block of flat float amplitude samples at the
// assumed SampleRate. Interleaved stereo is fine: the mapper treats the
// block as a plain sequence. Empty blocks are a no-op.
//
// Safe to call concurrently with Tick and SetConfig.
func (p *Pipeline) PushSamples(samples []float64) {
	if len(samples) == 0 {
		return
	}

	p.mu.Lock()
	n := p.cfg.Bands
	p.mu.Unlock()

	// Band mapping is the expensive part; do it outside the lock so the
	// audio callback only pays for a copy-and-blend inside.
	energies := make([]float64, n)
	mapBands(samples, energies, SampleRate)

	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.raw) != len(energies) {
		// Band count changed while we were mapping. Drop the block; a
		// partial-length update must never be observed.
		return
	}

	copy(p.raw, energies)
	blend(p.smoothed, p.raw, p.cfg.Smoothing)
	p.peak.observe(p.raw)
	p.lastAudio = p.now()
	p.audioSeen = true
}

// SetConfig replaces the configuration atomically with respect to any
// in-flight update. Changing the band count resizes the spectrum state and
// discards prior history.
func (p *Pipeline) SetConfig(cfg Config) {
	cfg = cfg.normalized()

	p.mu.Lock()
	defer p.mu.Unlock()

	if cfg.Bands != len(p.raw) {
		p.raw = make([]float64, cfg.Bands)
		p.smoothed = make([]float64, cfg.Bands)
	}
	p.cfg = cfg
}

// Config returns the current (clamped) configuration.
func (p *Pipeline) Config() Config {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg
}

// Idle reports whether the idle timeout has elapsed since the last audio
// block. Before any audio has arrived it is unconditionally true.
func (p *Pipeline) Idle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.idleLocked()
}

func (p *Pipeline) idleLocked() bool {
	if p.lastAudio.IsZero() {
		return true
	}
	return p.now().Sub(p.lastAudio) > p.cfg.IdleTimeout
}

// Tick advances one frame and returns the draw list for a viewport of the
// given pixel size. It is meant to be driven at a fixed external cadence
// (the design target is 16 ms). Tick performs no I/O; its only side effects
// are advancing the frame counter and the decay steps.
func (p *Pipeline) Tick(width, height float64) Frame {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.frame++
	p.peak.tick()

	// Consume the audio-present flag: one tick of silence already begins
	// the decay path.
	seen := p.audioSeen
	p.audioSeen = false
	if !seen {
		decayBands(p.smoothed, p.cfg.Decay)
	}

	active := !p.idleLocked() && maxBand(p.smoothed) > noiseFloor

	frame := Frame{Idle: !active}
	if p.cfg.BackgroundOpacity > 0 {
		frame.Background = &Background{
			Width:  width,
			Height: height,
			Color: RGBA{
				R: backdropTone.R,
				G: backdropTone.G,
				B: backdropTone.B,
				A: p.cfg.BackgroundOpacity,
			},
		}
	}

	n := len(p.smoothed)
	if n == 0 || width <= 0 || height <= 0 {
		return frame
	}

	// Each band gets an equal slot with one pixel reserved as a gap.
	slot := width / float64(n)
	barWidth := slot - 1
	if barWidth < 1 {
		barWidth = 1
	}

	frame.Bars = make([]Bar, n)
	for i := 0; i < n; i++ {
		var level float64
		var col RGBA
		if active {
			level = p.peak.normalize(p.smoothed[i])
			col = barColor(i, n, level, p.frame, p.cfg)
		} else {
			level = math.Sin((float64(i)+float64(p.frame))*idleWaveStep)*0.5 + 0.5
			col = idleColor
		}
		frame.Bars[i] = Bar{
			Index:  i,
			X:      float64(i) * slot,
			Width:  barWidth,
			Height: level * height,
			Level:  level,
			Color:  col,
		}
	}
	return frame
}
