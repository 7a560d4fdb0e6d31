package spectrum

// Bar is one renderable bar for the current frame. Geometry is in viewport
// pixels with the origin at the bottom-left; Level is the normalized height
// the geometry was derived from.
type Bar struct {
	Index  int
	X      float64
	Width  float64
	Height float64
	Level  float64
	Color  RGBA
}

// Background describes the optional backdrop rectangle drawn beneath the bars.
type Background struct {
	Width  float64
	Height float64
	Color  RGBA
}

// Frame is the complete, order-independent draw description for one tick.
// Idle reports that the decorative fallback animation is showing instead of
// live spectrum data.
type Frame struct {
	Background *Background
	Bars       []Bar
	Idle       bool
}
