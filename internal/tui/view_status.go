package tui

import (
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
)

// renderStatusBar writes the status separator and bar.
func (m Model) renderStatusBar(b *strings.Builder, bgFill lipgloss.Style) {
	b.WriteString(m.styles.Border.Render(strings.Repeat("─", m.width)))
	b.WriteByte('\n')

	// -- Left segments --
	leftParts := []string{
		m.styles.StatusKey.Render(" " + m.mode.String()),
		m.styles.StatusText.Render(m.base.String()),
		m.styles.StatusText.Render(strconv.Itoa(len(m.filtered)) + "/" + strconv.Itoa(len(m.files))),
	}
	switch {
	case m.discovering:
		leftParts = append(leftParts, m.styles.Muted.Render("scanning…"))
	case m.filtering:
		leftParts = append(leftParts, m.styles.Muted.Render("searching…"))
	}
	if m.preview.Language != "" {
		leftParts = append(leftParts, m.styles.Muted.Render(m.preview.Language))
	}
	left := strings.Join(leftParts, m.styles.StatusText.Render("  "))

	// -- Right segments --
	var rightParts []string
	if m.status != "" {
		text := m.status
		if len(text) > 60 {
			text = text[:60] + "…"
		}
		if m.statusErr {
			rightParts = append(rightParts, m.styles.Error.Render("✗ "+text))
		} else {
			rightParts = append(rightParts, m.styles.StatusText.Render(text))
		}
	}
	rightParts = append(rightParts, m.styles.StatusKey.Render("f1")+m.styles.StatusText.Render(" help"))
	right := strings.Join(rightParts, m.styles.StatusText.Render("  "))

	// -- Compose: left + gap + right + trailing space --
	leftW := lipgloss.Width(left)
	rightW := lipgloss.Width(right)
	gap := max(m.width-leftW-rightW-1, 0)
	line := left + bgFill.Render(strings.Repeat(" ", gap)) + right + bgFill.Render(" ")
	renderPaddedLine(b, []string{line}, 0, m.width, bgFill)
}
