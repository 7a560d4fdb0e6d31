package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/RedChase07/Taskbar-Audio-Visualizer/internal/player"
	"github.com/RedChase07/Taskbar-Audio-Visualizer/internal/spectrum"
	"github.com/RedChase07/Taskbar-Audio-Visualizer/internal/util"
)

// backdropSteps are the opacity values the backdrop key cycles through.
var backdropSteps = []uint8{0, 90, 180, 255}

// Model is the Bubbletea model for the visualizer TUI.
type Model struct {
	player   *player.Player
	pipeline *spectrum.Pipeline
	metadata player.Metadata
	cfg      spectrum.Config
	keys     keyMap
	help     help.Model
	springs  springField
	motion   bool

	frame    spectrum.Frame
	elapsed  time.Duration
	duration time.Duration
	volume   float64
	paused   bool
	width    int
	height   int
	quitting bool
}

// New creates a Model around a running player and its spectrum pipeline.
func New(p *player.Player, pipe *spectrum.Pipeline, meta player.Metadata) Model {
	return Model{
		player:   p,
		pipeline: pipe,
		metadata: meta,
		cfg:      pipe.Config(),
		keys:     defaultKeyMap(),
		help:     help.New(),
		springs:  newSpringField(),
		motion:   true,
		duration: p.Duration(),
		volume:   p.Volume(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), checkDone(m.player), tea.SetWindowTitle(windowTitle(m.metadata.Title, false)))
}

func checkDone(p *player.Player) tea.Cmd {
	return func() tea.Msg {
		<-p.Done()
		return playbackEndedMsg{}
	}
}

// vizSize returns the cell viewport available to the bars after the header,
// progress, status and help lines are accounted for.
func (m Model) vizSize() (int, int) {
	w, h := m.width, m.height
	if w < 20 {
		w = 80
	}
	if h < 12 {
		h = 24
	}
	vw := w - 4
	vh := h - 11
	if vh < 4 {
		vh = 4
	}
	return vw, vh
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		m.elapsed = m.player.Position()
		m.volume = m.player.Volume()
		m.paused = m.player.Paused()

		vw, vh := m.vizSize()
		m.frame = m.pipeline.Tick(float64(vw), float64(vh))
		if m.motion {
			m.springs.apply(&m.frame)
		}
		return m, tickCmd()

	case playbackEndedMsg:
		m.elapsed = m.duration
		m.quitting = true
		m.player.Close()
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.player.Close()
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)

	case key.Matches(msg, m.keys.Pause):
		m.player.TogglePause()
		m.paused = m.player.Paused()
		return m, tea.SetWindowTitle(windowTitle(m.metadata.Title, m.paused))

	case key.Matches(msg, m.keys.SeekBack):
		m.player.Seek(-5 * time.Second)

	case key.Matches(msg, m.keys.SeekFwd):
		m.player.Seek(5 * time.Second)

	case key.Matches(msg, m.keys.VolumeUp):
		m.player.AdjustVolume(0.05)
		m.volume = m.player.Volume()

	case key.Matches(msg, m.keys.VolumeDown):
		m.player.AdjustVolume(-0.05)
		m.volume = m.player.Volume()

	case key.Matches(msg, m.keys.ColorMode):
		m.cfg.Mode = m.cfg.Mode.Next()
		m.applyConfig()

	case key.Matches(msg, m.keys.Direction):
		m.cfg.Direction = m.cfg.Direction.Flip()
		m.applyConfig()

	case key.Matches(msg, m.keys.BandsUp):
		m.cfg.Bands += 8
		m.applyConfig()

	case key.Matches(msg, m.keys.BandsDown):
		m.cfg.Bands -= 8
		m.applyConfig()

	case key.Matches(msg, m.keys.WaveFaster):
		m.cfg.WaveSpeed += 0.25
		m.applyConfig()

	case key.Matches(msg, m.keys.WaveSlower):
		m.cfg.WaveSpeed -= 0.25
		m.applyConfig()

	case key.Matches(msg, m.keys.Backdrop):
		m.cfg.BackgroundOpacity = nextBackdropStep(m.cfg.BackgroundOpacity)
		m.applyConfig()

	case key.Matches(msg, m.keys.Motion):
		m.motion = !m.motion

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// applyConfig pushes the local config to the pipeline and reads back the
// clamped result so the status line never shows an out-of-range value.
func (m *Model) applyConfig() {
	m.pipeline.SetConfig(m.cfg)
	m.cfg = m.pipeline.Config()
}

func nextBackdropStep(cur uint8) uint8 {
	for i, s := range backdropSteps {
		if s == cur {
			return backdropSteps[(i+1)%len(backdropSteps)]
		}
	}
	return backdropSteps[0]
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	w := m.width
	if w < 30 {
		w = 50
	}

	header := headerStyle.Render("tavi")

	title := titleStyle.Render(m.metadata.Title)
	subtitle := ""
	if m.metadata.Artist != "" && m.metadata.Album != "" {
		subtitle = artistStyle.Render(fmt.Sprintf("%s - %s", m.metadata.Artist, m.metadata.Album))
	} else if m.metadata.Artist != "" {
		subtitle = artistStyle.Render(m.metadata.Artist)
	} else if m.metadata.Album != "" {
		subtitle = artistStyle.Render(m.metadata.Album)
	}

	elapsedStr := timeStyle.Render(util.FormatDuration(m.elapsed))
	durationStr := timeStyle.Render(util.FormatDuration(m.duration))
	barWidth := w - len(util.FormatDuration(m.elapsed)) - len(util.FormatDuration(m.duration)) - 6
	if barWidth < 10 {
		barWidth = 10
	}
	bar := renderProgressBar(m.elapsed.Seconds(), m.duration.Seconds(), barWidth)
	progressLine := fmt.Sprintf("%s %s %s", elapsedStr, bar, durationStr)

	statusIcon := "▶"
	statusText := "playing"
	if m.paused {
		statusIcon = "❚❚"
		statusText = "paused"
	}
	dirIcon := "→"
	if m.cfg.Direction == spectrum.Reverse {
		dirIcon = "←"
	}
	leftText := fmt.Sprintf("%s  %s  %s %s  %d bands", statusIcon, statusText, m.cfg.Mode, dirIcon, m.cfg.Bands)
	volStr := renderVolumePercent(m.volume)
	statusLeft := statusStyle.Render(leftText)
	statusRight := statusStyle.Render(volStr)
	gap := w - len([]rune(leftText)) - len(volStr) - 4
	if gap < 2 {
		gap = 2
	}
	statusLine := fmt.Sprintf("%s%s%s", statusLeft, strings.Repeat(" ", gap), statusRight)

	vw, vh := m.vizSize()
	viz := renderFrame(m.frame, vw, vh)
	vizLines := ""
	for _, line := range strings.Split(viz, "\n") {
		vizLines += "  " + line + "\n"
	}

	lines := "\n"
	lines += "  " + header + "\n"
	lines += "\n"
	lines += "  " + title + "\n"
	if subtitle != "" {
		lines += "  " + subtitle + "\n"
	}
	lines += "\n"
	lines += vizLines
	lines += "\n"
	lines += "  " + progressLine + "\n"
	lines += "  " + statusLine + "\n"
	lines += "  " + m.help.View(m.keys) + "\n"

	return lines
}

func windowTitle(title string, paused bool) string {
	if paused {
		return "⏸ " + title + " — tavi"
	}
	return "▶ " + title + " — tavi"
}
