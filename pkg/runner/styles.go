package runner

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Color palette shared by all console output.
var (
	salmonPink  = lipgloss.Color("#FFB3BA") // primary accent
	mintGreen   = lipgloss.Color("#A8E6CF") // success
	amber       = lipgloss.Color("#FCD34D") // warnings, skipped cases
	errorRed    = lipgloss.Color("#F87171") // failures
	mutedGray   = lipgloss.Color("#6B7280") // secondary text
	brightWhite = lipgloss.Color("#F9FAFB") // headers
	accentCyan  = lipgloss.Color("#67E8F9") // sections
)

// styles holds the styles for one output writer. Colors are dropped when the
// writer is not a terminal.
type styles struct {
	header  lipgloss.Style
	section lipgloss.Style
	success lipgloss.Style
	info    lipgloss.Style
	warning lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		header:  r.NewStyle().Foreground(brightWhite).Bold(true),
		section: r.NewStyle().Foreground(accentCyan),
		success: r.NewStyle().Foreground(mintGreen).Bold(true),
		info:    r.NewStyle().Foreground(salmonPink),
		warning: r.NewStyle().Foreground(amber),
		failure: r.NewStyle().Foreground(errorRed).Bold(true),
		muted:   r.NewStyle().Foreground(mutedGray),
	}
}
