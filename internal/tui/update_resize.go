package tui

import (
	tea "charm.land/bubbletea/v2"
)

// handleResize applies a window size change and re-derives layout.
func (m *Model) handleResize(msg tea.WindowSizeMsg) {
	m.width, m.height = msg.Width, msg.Height
	m.layout = generateLayout(m.width, m.height)
	m.updateComponentSizes()
	m.ensureVisible()
	m.previewOffset = previewOffset(m.preview.ScrollTarget, len(m.preview.Lines), m.layout.preview.Dy())
}

// updateComponentSizes pushes layout dimensions to sub-models.
func (m *Model) updateComponentSizes() {
	title := len(m.mode.Label()) + 2 // ": "
	m.input.SetWidth(max(m.layout.input.Dx()-title-1, 1))
}
