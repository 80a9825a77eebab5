// Package render formats one-shot CLI output (the list verb's rows and
// heading, and error lines) using lipgloss, the same styling library the teacher uses for its
// interactive TUI. Here it's applied to plain stdout writes instead: no
// event loop, no alt screen, just styled strings printed once.
//
// Grounded on the teacher's pkg/manager/tui_bubble.go style definitions.
package render

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// SessionRow renders one line of `list` output: the session name,
// highlighted and followed by a dimmed "(running)" marker if it's
// currently a live session, the bare name otherwise.
func SessionRow(name string, live bool) string {
	if live {
		return activeStyle.Render(name) + dimStyle.Render("  (running)")
	}
	return name
}

// Title renders a section header, e.g. the "Configs" heading of `list`.
func Title(s string) string {
	return titleStyle.Render(s)
}

// Warn renders an operator-facing warning line.
func Warn(s string) string {
	return warnStyle.Render(s)
}
