package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the Lobster ASCII art banner.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	// Warm gradient (Coral/Red) to match the name
	lines := []struct {
		text  string
		color string
	}{
		{"  _         _         _            ", "#fdba74"},
		{" | |   ___ | |__  ___| |_ ___ _ _  ", "#fb923c"},
		{" | |__/ _ \\| '_ \\(_-<|  _/ -_) '_| ", "#f97316"},
		{" |____\\___/|_.__//__/ \\__\\___|_|   ", "#ea580c"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}
