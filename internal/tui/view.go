package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (m Model) View() tea.View {
	content := m.renderContent()
	if m.helpModal != nil {
		content = m.helpModal.View(m.width, m.height)
	}
	v := tea.NewView(content)
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

// renderContent produces the string content for the view.
func (m Model) renderContent() string {
	if m.width == 0 {
		return ""
	}

	ly := m.layout
	bgFill := m.styles.BgFill
	var b strings.Builder

	m.renderQueryRow(&b, bgFill)
	b.WriteByte('\n')
	b.WriteString(m.styles.Border.Render(strings.Repeat("─", m.width)))
	b.WriteByte('\n')

	for row := 0; row < ly.list.Dy(); row++ {
		m.renderListRow(&b, m.listOffset+row, ly.list.Dx(), bgFill)
		b.WriteString(m.styles.Border.Render("│"))
		m.renderPreviewRow(&b, m.previewOffset+row, ly.preview.Dx(), bgFill)
		b.WriteByte('\n')
	}

	m.renderStatusBar(&b, bgFill)
	return b.String()
}

// renderQueryRow writes the mode title followed by the query input.
func (m Model) renderQueryRow(b *strings.Builder, bgFill lipgloss.Style) {
	title := m.styles.Title.Render(m.mode.Label() + ": ")
	renderPaddedLine(b, []string{title + m.input.View()}, 0, m.width, bgFill)
}
