package spectrum

import "time"

// ColorMode selects how bars are colored.
type ColorMode int

const (
	ModeDefault ColorMode = iota
	ModeCustom
	ModeRGBGradient
	ModeRainbowWave
)

// String returns a short label suitable for a status line.
func (m ColorMode) String() string {
	switch m {
	case ModeDefault:
		return "default"
	case ModeCustom:
		return "custom"
	case ModeRGBGradient:
		return "gradient"
	case ModeRainbowWave:
		return "rainbow"
	}
	return "unknown"
}

// Next cycles to the following mode, wrapping after RainbowWave.
func (m ColorMode) Next() ColorMode {
	switch m {
	case ModeDefault:
		return ModeCustom
	case ModeCustom:
		return ModeRGBGradient
	case ModeRGBGradient:
		return ModeRainbowWave
	default:
		return ModeDefault
	}
}

// Direction controls which way the rainbow wave travels across the bars.
type Direction int

const (
	Forward Direction = iota
	Reverse
)

// Flip returns the opposite direction.
func (d Direction) Flip() Direction {
	if d == Forward {
		return Reverse
	}
	return Forward
}

// RGBA is an 8-bit-per-channel color with alpha.
type RGBA struct {
	R, G, B, A uint8
}

// Band count bounds. Values outside this range are clamped, never rejected.
const (
	MinBands = 16
	MaxBands = 128
)

// Config holds every tunable of the pipeline. A Config is immutable within a
// frame; replace it wholesale with Pipeline.SetConfig between frames.
type Config struct {
	// Bands is the number of frequency bands, clamped to [MinBands, MaxBands].
	Bands int

	// Smoothing is the reaction knob in [0, 1]. It is inverted relative to
	// the filter's blend coefficient: 0 means instant reaction, 1 freezes
	// the bars entirely.
	Smoothing float64

	// Decay is the per-tick multiplicative falloff applied while no audio
	// arrives, in (0, 1].
	Decay float64

	// IdleTimeout is how long without audio before the pipeline reports
	// idle and the fallback animation takes over.
	IdleTimeout time.Duration

	Mode      ColorMode
	Direction Direction

	// WaveSpeed scales the rainbow animation rate.
	WaveSpeed float64

	// BackgroundOpacity is the alpha of the backdrop rectangle; 0 disables it.
	BackgroundOpacity uint8

	// LowColor and HighColor are the endpoints for ModeCustom.
	LowColor  RGBA
	HighColor RGBA
}

// DefaultConfig returns the configuration used at startup.
func DefaultConfig() Config {
	return Config{
		Bands:             48,
		Smoothing:         0.35,
		Decay:             0.9,
		IdleTimeout:       2 * time.Second,
		Mode:              ModeDefault,
		Direction:         Forward,
		WaveSpeed:         1.0,
		BackgroundOpacity: 180,
		LowColor:          RGBA{R: 30, G: 60, B: 200, A: 255},
		HighColor:         RGBA{R: 240, G: 60, B: 120, A: 255},
	}
}

// normalized clamps every field into its supported range so a bad value
// degrades instead of breaking the pipeline.
func (c Config) normalized() Config {
	if c.Bands < MinBands {
		c.Bands = MinBands
	}
	if c.Bands > MaxBands {
		c.Bands = MaxBands
	}
	c.Smoothing = clamp01(c.Smoothing)
	if !isFinite(c.Decay) || c.Decay <= 0 {
		c.Decay = 0.01
	}
	if c.Decay > 1 {
		c.Decay = 1
	}
	if c.IdleTimeout <= 0 {
		c.IdleTimeout = 2 * time.Second
	}
	if !isFinite(c.WaveSpeed) || c.WaveSpeed < 0 {
		c.WaveSpeed = 0
	}
	if c.WaveSpeed > 16 {
		c.WaveSpeed = 16
	}
	return c
}
