package tui

import (
	"strings"
	"unicode"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/xonecas/glancr/internal/preview"
)

const tabWidth = 4

// renderListRow writes one row of the file list. The selected row carries a
// "> " marker and the selection style across the full width.
func (m Model) renderListRow(b *strings.Builder, idx, width int, bgFill lipgloss.Style) {
	if idx < 0 || idx >= len(m.filtered) {
		if idx == 0 && !m.discovering && !m.filtering {
			renderPaddedLine(b, []string{m.styles.Muted.Render("  no matches")}, 0, width, bgFill)
			return
		}
		b.WriteString(bgFill.Render(strings.Repeat(" ", width)))
		return
	}
	path := m.filtered[idx]
	if idx == m.selected {
		line := ansi.Truncate("> "+path, width, "…")
		pad := max(width-lipgloss.Width(line), 0)
		b.WriteString(m.styles.Selected.Render(line + strings.Repeat(" ", pad)))
		return
	}
	renderPaddedLine(b, []string{m.styles.Text.Render(ansi.Truncate("  "+path, width, "…"))}, 0, width, bgFill)
}

// renderPreviewRow writes one preview line, padded to width.
func (m Model) renderPreviewRow(b *strings.Builder, idx, width int, bgFill lipgloss.Style) {
	if idx < 0 || idx >= len(m.preview.Lines) {
		b.WriteString(bgFill.Render(strings.Repeat(" ", width)))
		return
	}
	renderPaddedLine(b, []string{m.renderPreviewLine(m.preview.Lines[idx])}, 0, width, bgFill)
}

// renderPreviewLine styles each span of a preview line.
func (m Model) renderPreviewLine(line preview.Line) string {
	var b strings.Builder
	for _, sp := range line {
		b.WriteString(m.spanStyle(sp).Render(previewText(sp.Text)))
	}
	return b.String()
}

// previewText expands tabs and replaces every other control character, so
// file contents never reach the terminal as escape sequences.
func previewText(s string) string {
	s = strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return '\uFFFD'
		}
		return r
	}, s)
}

func (m Model) spanStyle(sp preview.Span) lipgloss.Style {
	var st lipgloss.Style
	switch {
	case sp.Match:
		st = m.styles.Match
	case sp.Warning:
		return m.styles.Warning
	case sp.Dim:
		return m.styles.LineNr
	default:
		st = m.styles.Text
	}
	if sp.Fg != "" {
		st = st.Foreground(lipgloss.Color(sp.Fg))
	}
	if sp.Bold {
		st = st.Bold(true)
	}
	if sp.Italic {
		st = st.Italic(true)
	}
	return st
}

// renderPaddedLine writes a line from lines[idx] padded/truncated to width,
// or a blank fill if idx is out of range.
func renderPaddedLine(b *strings.Builder, lines []string, idx, width int, bgFill lipgloss.Style) {
	if idx >= 0 && idx < len(lines) {
		line := lines[idx]
		lw := lipgloss.Width(line)
		if lw > width {
			line = ansi.Truncate(line, width, "")
			lw = lipgloss.Width(line)
		}
		b.WriteString(line)
		if lw < width {
			b.WriteString(bgFill.Render(strings.Repeat(" ", width-lw)))
		}
	} else {
		b.WriteString(bgFill.Render(strings.Repeat(" ", width)))
	}
}
