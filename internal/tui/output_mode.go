package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how human-readable output is rendered.
type OutputMode int

const (
	// OutputModePlain is uncolored text, used for pipes and redirects.
	OutputModePlain OutputMode = iota
	// OutputModeStyled is lipgloss-styled text without interaction.
	OutputModeStyled
	// OutputModeInteractive runs a bubbletea program.
	OutputModeInteractive
)

// String returns the mode name.
func (m OutputMode) String() string {
	switch m {
	case OutputModePlain:
		return "plain"
	case OutputModeStyled:
		return "styled"
	case OutputModeInteractive:
		return "interactive"
	default:
		return "unknown"
	}
}

// DetectOutputMode picks the output mode for stdout. plain and NO_COLOR
// force plain output; forceColor styles output even when stdout is not a
// terminal. Interactive mode needs both stdin and stdout on a terminal.
func DetectOutputMode(forceColor, noColor, plain bool) OutputMode {
	if plain || noColor || os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		return OutputModePlain
	}
	stdoutTTY := isTerminal(os.Stdout)
	if !stdoutTTY {
		if forceColor {
			return OutputModeStyled
		}
		return OutputModePlain
	}
	if isTerminal(os.Stdin) {
		return OutputModeInteractive
	}
	return OutputModeStyled
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the width of stdout, or fallback when it is not a
// terminal.
func TerminalWidth(fallback int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}
