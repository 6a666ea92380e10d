// Package tui renders calculation results with lipgloss and hosts the
// interactive history browser.
package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
const (
	ColorHeader = lipgloss.Color("86")
	ColorLabel  = lipgloss.Color("245")
	ColorValue  = lipgloss.Color("255")
	ColorSubtle = lipgloss.Color("241")
	ColorBorder = lipgloss.Color("62")
	ColorGood   = lipgloss.Color("#4CAF50")
	ColorWarn   = lipgloss.Color("#FF9800")
)

// Shared styles.
//
//nolint:gochecknoglobals // lipgloss styles are immutable values.
var (
	HeaderStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorHeader)
	LabelStyle    = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle    = lipgloss.NewStyle().Bold(true).Foreground(ColorValue)
	SubtleStyle   = lipgloss.NewStyle().Foreground(ColorSubtle)
	InfoStyle     = lipgloss.NewStyle().Italic(true).Foreground(ColorSubtle)
	GoodStyle     = lipgloss.NewStyle().Foreground(ColorGood)
	WarnStyle     = lipgloss.NewStyle().Foreground(ColorWarn)
	BoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ColorBorder).Padding(0, 1)
	SelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
)

// Key bindings shared by the interactive views.
const (
	keyQuit  = "q"
	keyCtrlC = "ctrl+c"
	keyEnter = "enter"
	keyEsc   = "esc"
	keySlash = "/"
	keyS     = "s"
)

// ViewState is the state of an interactive view.
type ViewState int

const (
	ViewStateList ViewState = iota
	ViewStateDetail
	ViewStateQuitting
)

const (
	borderPadding   = 2
	truncateSuffix  = "..."
	defaultBoxWidth = 72
)

// truncate shortens s to maxLen runes, ending in "...".
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= len(truncateSuffix) {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-len(truncateSuffix)]) + truncateSuffix
}
