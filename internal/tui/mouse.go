package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// ---------------------------------------------------------------------------
// Mouse filter: throttle high-frequency events at program level.
// ---------------------------------------------------------------------------

var lastMouseEvent time.Time

// MouseEventFilter rate-limits wheel and motion events (15 ms).
// Pass to tea.WithFilter. Never drops clicks or releases.
func MouseEventFilter(_ tea.Model, msg tea.Msg) tea.Msg {
	switch msg.(type) {
	case tea.MouseWheelMsg, tea.MouseMotionMsg:
		now := time.Now()
		if now.Sub(lastMouseEvent) < 15*time.Millisecond {
			return nil
		}
		lastMouseEvent = now
	}
	return msg
}

// ---------------------------------------------------------------------------
// Mouse handling: the wheel scrolls the pane under the pointer and a left click
// in the list selects that row.
// ---------------------------------------------------------------------------

const wheelStep = 3

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	x, y := mouse.X, mouse.Y

	switch ev := msg.(type) {
	case tea.MouseWheelMsg:
		delta := 0
		switch ev.Button {
		case tea.MouseWheelUp:
			delta = -wheelStep
		case tea.MouseWheelDown:
			delta = wheelStep
		}
		switch {
		case inRect(x, y, m.layout.list):
			return m, m.moveSelection(delta)
		case inRect(x, y, m.layout.preview):
			m.scrollPreview(delta)
		}
	case tea.MouseClickMsg:
		if ev.Button != tea.MouseLeft || !inRect(x, y, m.layout.list) {
			return m, nil
		}
		idx := m.listOffset + (y - m.layout.list.Min.Y)
		if idx >= len(m.filtered) {
			return m, nil
		}
		return m, m.moveSelection(idx - m.selected)
	}
	return m, nil
}
