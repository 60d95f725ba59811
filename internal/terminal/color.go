// Package terminal decides whether styled output may be written.
//
// ColorAuto follows the conventions of most CLIs: a non-empty NO_COLOR
// (https://no-color.org/) disables styling, a non-empty FORCE_COLOR enables
// it, and otherwise styling is used only when stdout is an interactive
// terminal.
package terminal

import (
	"os"

	"golang.org/x/term"

	"github.com/shinji-kodama/fcal/internal/model"
)

// Detector holds the inputs for resolving ColorAuto. The zero value
// inspects the real process environment and stdout.
type Detector struct {
	// LookupEnv reads environment variables. Nil means os.LookupEnv.
	LookupEnv func(string) (string, bool)

	// IsTerminal reports whether fd is a terminal. Nil means term.IsTerminal.
	IsTerminal func(fd int) bool

	// Fd is the file descriptor checked for a terminal. Zero means stdout.
	Fd int
}

// Enabled resolves mode to a yes/no decision.
func (d Detector) Enabled(mode model.ColorMode) bool {
	switch mode {
	case model.ColorAlways:
		return true
	case model.ColorNever:
		return false
	}

	lookup := d.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	// Both variables count only when set to a non-empty value.
	if v, ok := lookup("NO_COLOR"); ok && v != "" {
		return false
	}
	if v, ok := lookup("FORCE_COLOR"); ok && v != "" {
		return true
	}

	isTerminal := d.IsTerminal
	if isTerminal == nil {
		isTerminal = term.IsTerminal
	}
	fd := d.Fd
	if fd == 0 {
		fd = int(os.Stdout.Fd())
	}
	return isTerminal(fd)
}

// ColorEnabled resolves mode against the real environment and stdout.
func ColorEnabled(mode model.ColorMode) bool {
	return Detector{}.Enabled(mode)
}
