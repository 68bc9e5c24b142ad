package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the blockyard banner in a green-to-teal gradient.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{" _     _            _                          _ ", "#4ade80"},
		{"| |__ | | ___   ___| | ___   _  __ _ _ __ __| |", "#34d399"},
		{"| '_ \\| |/ _ \\ / __| |/ / | | |/ _` | '__/ _` |", "#2dd4bf"},
		{"| |_) | | (_) | (__|   <| |_| | (_| | | | (_| |", "#22d3ee"},
		{"|_.__/|_|\\___/ \\___|_|\\_\\\\__, |\\__,_|_|  \\__,_|", "#38bdf8"},
		{"                         |___/                 ", "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Warn writes an advisory message, colored when the profile allows it.
func Warn(w io.Writer, msg string) {
	p := termenv.ColorProfile()
	fmt.Fprintln(w, termenv.String("! "+msg).Foreground(p.Color("#fbbf24")))
}
