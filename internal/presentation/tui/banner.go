package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the ASCII art banner shown when a server starts on a terminal.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"  _                                      _   ", "#818cf8"},
		{" | |__   __ _ _   _  ___  ___ _ __   ___| |_ ", "#a78bfa"},
		{" | '_ \\ / _` | | | |/ _ \\/ __| '_ \\ / _ \\ __|", "#c084fc"},
		{" | |_) | (_| | |_| |  __/\\__ \\ | | |  __/ |_ ", "#e879f9"},
		{" |_.__/ \\__,_|\\__, |\\___||___/_| |_|\\___|\\__|", "#f472b6"},
		{"              |___/                          ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  v"+version).Faint())
	fmt.Fprintln(w)
}
