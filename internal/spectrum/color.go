package spectrum

import "math"

// fallbackColor is used when the configuration carries a mode this version
// does not recognize. A wrong color beats a dropped frame.
var fallbackColor = RGBA{R: 140, G: 200, B: 255, A: 255}

// barColor assigns a color to band i of n at the given normalized height.
// frame drives the rainbow animation; every mode is a pure function of its
// arguments, so colors are reproducible under test.
func barColor(i, n int, height float64, frame uint64, cfg Config) RGBA {
	height = clamp01(height)

	switch cfg.Mode {
	case ModeDefault:
		// Cyan-leaning gradient driven by height alone.
		return RGBA{
			R: clampChannel(140 + height*100),
			G: clampChannel(200 + height*50),
			B: clampChannel(255 + height*20),
			A: 255,
		}

	case ModeCustom:
		return lerpRGBA(cfg.LowColor, cfg.HighColor, height)

	case ModeRGBGradient:
		// Static hue from band position; no time dependency.
		hue := float64(i) / float64(n) * 360
		return hsvToRGBA(hue, 1, height)

	case ModeRainbowWave:
		hue := math.Mod((float64(i)/float64(n)+rainbowOffset(frame, cfg))*360, 360)
		if hue < 0 {
			hue += 360
		}
		return hsvToRGBA(hue, 1, height)
	}

	return fallbackColor
}

// rainbowOffset is the animated hue shift for ModeRainbowWave. It grows
// monotonically with the frame counter and flips sign for Reverse.
func rainbowOffset(frame uint64, cfg Config) float64 {
	offset := float64(frame) * 0.01 * cfg.WaveSpeed
	if cfg.Direction == Reverse {
		offset = -offset
	}
	return offset
}

// lerpRGBA blends a toward b by t in [0, 1].
func lerpRGBA(a, b RGBA, t float64) RGBA {
	t = clamp01(t)
	return RGBA{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
		A: uint8(float64(a.A) + (float64(b.A)-float64(a.A))*t),
	}
}

// hsvToRGBA converts via the standard six-sector algorithm. h is in degrees
// [0, 360), s and v in [0, 1].
func hsvToRGBA(h, s, v float64) RGBA {
	s = clamp01(s)
	v = clamp01(v)

	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return RGBA{
		R: uint8((r + m) * 255),
		G: uint8((g + m) * 255),
		B: uint8((b + m) * 255),
		A: 255,
	}
}

func clampChannel(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
