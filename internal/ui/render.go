package ui

import (
	"strings"

	"github.com/RedChase07/Taskbar-Audio-Visualizer/internal/spectrum"
)

var barChars = []rune(" ▁▂▃▄▅▆▇█")

// renderFrame draws a frame produced for a width×height cell viewport as
// terminal lines, using partial block characters for sub-row bar tips.
func renderFrame(f spectrum.Frame, width, height int) string {
	return renderFrameProfile(f, width, height, currentColorProfile())
}

func renderFrameProfile(f spectrum.Frame, width, height int, p colorProfile) string {
	if width < 1 || height < 1 {
		return ""
	}

	// Resolve which bar owns each column; the last pixel of every slot is the
	// gap and stays unowned.
	owner := make([]int, width)
	for c := range owner {
		owner[c] = -1
	}
	for bi, bar := range f.Bars {
		x0 := int(bar.X)
		cols := int(bar.Width)
		if cols < 1 {
			cols = 1
		}
		for c := x0; c < x0+cols && c < width; c++ {
			if c >= 0 {
				owner[c] = bi
			}
		}
	}

	var sb strings.Builder
	st := newANSIState(p)

	for row := 0; row < height; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		rowFromBottom := float64(height - 1 - row)

		for col := 0; col < width; col++ {
			if f.Background != nil {
				st.setBG(&sb, f.Background.Color)
			}

			ch := ' '
			if bi := owner[col]; bi >= 0 {
				bar := f.Bars[bi]
				idx := 0
				switch {
				case bar.Height > rowFromBottom+1:
					idx = len(barChars) - 1
				case bar.Height > rowFromBottom:
					idx = int((bar.Height - rowFromBottom) * float64(len(barChars)-1))
				}
				if idx > 0 {
					st.setFG(&sb, bar.Color)
					ch = barChars[idx]
				}
			}
			sb.WriteRune(ch)
		}
		st.reset(&sb)
	}

	return sb.String()
}
