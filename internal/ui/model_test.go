package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/RedChase07/Taskbar-Audio-Visualizer/internal/player"
	"github.com/RedChase07/Taskbar-Audio-Visualizer/internal/spectrum"
)

func keyPress(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func testModel() Model {
	pipe := spectrum.New(spectrum.DefaultConfig())
	return Model{
		pipeline: pipe,
		cfg:      pipe.Config(),
		keys:     defaultKeyMap(),
		help:     help.New(),
		springs:  newSpringField(),
	}
}

func TestColorModeKeyCycles(t *testing.T) {
	m := testModel()

	want := []spectrum.ColorMode{
		spectrum.ModeCustom,
		spectrum.ModeRGBGradient,
		spectrum.ModeRainbowWave,
		spectrum.ModeDefault,
	}
	for _, mode := range want {
		next, _ := m.handleKey(keyPress('c'))
		m = next.(Model)
		if m.cfg.Mode != mode {
			t.Fatalf("mode = %v, want %v", m.cfg.Mode, mode)
		}
		if got := m.pipeline.Config().Mode; got != mode {
			t.Fatalf("pipeline mode = %v, want %v", got, mode)
		}
	}
}

func TestDirectionKeyFlips(t *testing.T) {
	m := testModel()

	next, _ := m.handleKey(keyPress('d'))
	m = next.(Model)
	if m.cfg.Direction != spectrum.Reverse {
		t.Fatalf("direction = %v, want Reverse", m.cfg.Direction)
	}

	next, _ = m.handleKey(keyPress('d'))
	m = next.(Model)
	if m.cfg.Direction != spectrum.Forward {
		t.Fatalf("direction = %v, want Forward", m.cfg.Direction)
	}
}

func TestBandKeysClampAtBounds(t *testing.T) {
	m := testModel()

	for i := 0; i < 20; i++ {
		next, _ := m.handleKey(keyPress(']'))
		m = next.(Model)
	}
	if m.cfg.Bands != spectrum.MaxBands {
		t.Fatalf("bands = %d, want %d", m.cfg.Bands, spectrum.MaxBands)
	}

	for i := 0; i < 30; i++ {
		next, _ := m.handleKey(keyPress('['))
		m = next.(Model)
	}
	if m.cfg.Bands != spectrum.MinBands {
		t.Fatalf("bands = %d, want %d", m.cfg.Bands, spectrum.MinBands)
	}
}

func TestBackdropKeyCyclesSteps(t *testing.T) {
	m := testModel()

	seen := []uint8{m.cfg.BackgroundOpacity}
	for i := 0; i < len(backdropSteps); i++ {
		next, _ := m.handleKey(keyPress('b'))
		m = next.(Model)
		seen = append(seen, m.cfg.BackgroundOpacity)
	}
	if seen[len(seen)-1] != seen[0] {
		t.Fatalf("backdrop did not cycle back to %d: %v", seen[0], seen)
	}
}

func TestMotionKeyToggles(t *testing.T) {
	m := testModel()
	m.motion = true

	next, _ := m.handleKey(keyPress('m'))
	m = next.(Model)
	if m.motion {
		t.Fatal("expected motion off after toggle")
	}

	next, _ = m.handleKey(keyPress('m'))
	m = next.(Model)
	if !m.motion {
		t.Fatal("expected motion back on after second toggle")
	}
}

func TestNextBackdropStepUnknownValue(t *testing.T) {
	if got := nextBackdropStep(123); got != backdropSteps[0] {
		t.Fatalf("nextBackdropStep(123) = %d, want %d", got, backdropSteps[0])
	}
}

func TestVizSizeFallsBackOnTinyWindow(t *testing.T) {
	m := testModel()
	m.width = 5
	m.height = 3

	w, h := m.vizSize()
	if w != 76 || h != 13 {
		t.Fatalf("vizSize() = (%d, %d), want (76, 13)", w, h)
	}
}

func TestViewShowsTrackAndStatus(t *testing.T) {
	m := testModel()
	m.metadata = player.Metadata{Title: "Roygbiv", Artist: "Boards of Canada"}
	m.width = 80
	m.height = 24

	view := m.View()
	for _, want := range []string{"tavi", "Roygbiv", "Boards of Canada", "playing", "48 bands", "vol"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestSpringFieldReseedsOnResize(t *testing.T) {
	s := newSpringField()

	f := spectrum.Frame{Bars: []spectrum.Bar{{Height: 5}, {Height: 2}}}
	s.apply(&f)
	if f.Bars[0].Height != 5 || f.Bars[1].Height != 2 {
		t.Fatalf("first apply should seed at incoming heights, got %+v", f.Bars)
	}

	// Same size: heights now move through the spring.
	f2 := spectrum.Frame{Bars: []spectrum.Bar{{Height: 0}, {Height: 0}}}
	s.apply(&f2)
	if f2.Bars[0].Height >= 5 {
		t.Fatalf("spring did not move bar toward target: %v", f2.Bars[0].Height)
	}
}
