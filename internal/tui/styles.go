package tui

import (
	"charm.land/lipgloss/v2"

	"github.com/xonecas/glancr/internal/highlight"
)

// Styles holds every lipgloss style the view uses, derived from one palette.
type Styles struct {
	BgFill     lipgloss.Style
	Text       lipgloss.Style
	Border     lipgloss.Style
	Title      lipgloss.Style
	Selected   lipgloss.Style
	Muted      lipgloss.Style
	LineNr     lipgloss.Style
	Match      lipgloss.Style
	Warning    lipgloss.Style
	Error      lipgloss.Style
	StatusText lipgloss.Style
	StatusKey  lipgloss.Style
}

func newStyles(p highlight.Palette) Styles {
	bg := lipgloss.Color(p.Bg)
	base := lipgloss.NewStyle().Background(bg)
	return Styles{
		BgFill:     base,
		Text:       base.Foreground(lipgloss.Color(p.Fg)),
		Border:     base.Foreground(lipgloss.Color(p.Border)),
		Title:      base.Foreground(lipgloss.Color(p.Accent)).Bold(true),
		Selected:   lipgloss.NewStyle().Background(lipgloss.Color(p.SelBg)).Foreground(lipgloss.Color(p.Fg)).Bold(true),
		Muted:      base.Foreground(lipgloss.Color(p.Muted)),
		LineNr:     base.Foreground(lipgloss.Color(p.Dim)),
		Match:      lipgloss.NewStyle().Background(lipgloss.Color(p.MatchBg)).Foreground(lipgloss.Color(p.Fg)).Bold(true),
		Warning:    base.Foreground(lipgloss.Color(p.Warning)).Bold(true),
		Error:      base.Foreground(lipgloss.Color(p.Error)),
		StatusText: base.Foreground(lipgloss.Color(p.Muted)),
		StatusKey:  base.Foreground(lipgloss.Color(p.Accent)),
	}
}
