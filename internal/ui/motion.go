package ui

import (
	"github.com/charmbracelet/harmonica"

	"github.com/RedChase07/Taskbar-Audio-Visualizer/internal/spectrum"
)

// springField adds spring physics on top of the pipeline's exponential
// smoothing, so bar tips overshoot slightly and settle instead of snapping.
type springField struct {
	spring harmonica.Spring
	pos    []float64
	vel    []float64
}

func newSpringField() springField {
	return springField{spring: harmonica.NewSpring(harmonica.FPS(60), 7.5, 0.55)}
}

// apply steps every bar height toward its target and rewrites the frame
// geometry in place. A band count change re-seeds the field at the incoming
// heights so bars do not sweep in from zero.
func (s *springField) apply(f *spectrum.Frame) {
	n := len(f.Bars)
	if n == 0 {
		return
	}
	if len(s.pos) != n {
		s.pos = make([]float64, n)
		s.vel = make([]float64, n)
		for i := range f.Bars {
			s.pos[i] = f.Bars[i].Height
		}
		return
	}

	for i := range f.Bars {
		p, v := s.spring.Update(s.pos[i], s.vel[i], f.Bars[i].Height)
		s.pos[i], s.vel[i] = p, v
		if p < 0 {
			p = 0
		}
		f.Bars[i].Height = p
	}
}
