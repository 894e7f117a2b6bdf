package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the ctmdp banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.EnvColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"        _                  _       ", "#818cf8"},
		{"   ___ | |_  _ __ ___   __| |_ __  ", "#a78bfa"},
		{"  / __|| __|| '_ ` _ \\ / _` | '_ \\ ", "#c084fc"},
		{" | (__ | |_ | | | | | | (_| | |_) |", "#e879f9"},
		{"  \\___| \\__||_| |_| |_|\\__,_| .__/ ", "#f472b6"},
		{"                            |_|    ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

// Verdict colors a pass/fail message for terminal output.
func Verdict(ok bool, msg string) string {
	p := termenv.EnvColorProfile()
	color := "#ef4444"
	mark := "✗"
	if ok {
		color = "#22c55e"
		mark = "✓"
	}
	return termenv.String(mark + " " + msg).Foreground(p.Color(color)).String()
}
