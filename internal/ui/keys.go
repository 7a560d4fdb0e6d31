package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Pause      key.Binding
	SeekBack   key.Binding
	SeekFwd    key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding
	ColorMode  key.Binding
	Direction  key.Binding
	BandsUp    key.Binding
	BandsDown  key.Binding
	WaveFaster key.Binding
	WaveSlower key.Binding
	Backdrop   key.Binding
	Motion     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Pause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause"),
		),
		SeekBack: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/→", "seek"),
		),
		SeekFwd: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("", ""),
		),
		VolumeUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/↓", "volume"),
		),
		VolumeDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("", ""),
		),
		ColorMode: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "color mode"),
		),
		Direction: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "direction"),
		),
		BandsUp: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("[/]", "bands"),
		),
		BandsDown: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("", ""),
		),
		WaveFaster: key.NewBinding(
			key.WithKeys(">", "."),
			key.WithHelp("</>", "wave speed"),
		),
		WaveSlower: key.NewBinding(
			key.WithKeys("<", ","),
			key.WithHelp("", ""),
		),
		Backdrop: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "backdrop"),
		),
		Motion: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "motion"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp satisfies help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.SeekBack, k.VolumeUp, k.ColorMode, k.Help, k.Quit}
}

// FullHelp satisfies help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Pause, k.SeekBack, k.VolumeUp, k.Quit},
		{k.ColorMode, k.Direction, k.BandsUp, k.WaveFaster},
		{k.Backdrop, k.Motion, k.Help},
	}
}
