package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/RedChase07/Taskbar-Audio-Visualizer/internal/player"
	"github.com/RedChase07/Taskbar-Audio-Visualizer/internal/spectrum"
	"github.com/RedChase07/Taskbar-Audio-Visualizer/internal/ui"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: tavi <audio file>\n")
		os.Exit(1)
	}
	path := os.Args[1]

	info, err := os.Stat(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if info.IsDir() {
		fmt.Fprintf(os.Stderr, "Error: %s is a directory\n", path)
		os.Exit(1)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !player.IsSupportedExt(ext) {
		fmt.Fprintf(os.Stderr, "Error: unsupported format %s (supported: %s)\n", ext, player.SupportedExtsList())
		os.Exit(1)
	}

	meta := player.ReadMetadata(path)

	pipeline := spectrum.New(spectrum.DefaultConfig())

	p, err := player.New(path, pipeline.PushSamples)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating player: %v\n", err)
		os.Exit(1)
	}
	defer p.Close()

	model := ui.New(p, pipeline, meta)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
