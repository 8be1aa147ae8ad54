package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/glancr/internal/tui/modal"
)

func (m *Model) openKeybindsModal() {
	bs := bindings()
	items := make([]modal.Item, 0, len(bs))
	for _, b := range bs {
		items = append(items, modal.Item{Key: b.name(), Desc: b.desc})
	}
	md := modal.New(items, "Keys: ", m.colors)
	md.WidthPct = 60
	m.helpModal = &md
}

// updateHelpModal routes a key press to the open help modal. Choosing an
// entry closes the modal and runs that binding.
func (m *Model) updateHelpModal(msg tea.KeyPressMsg) (Model, tea.Cmd) {
	switch a := m.helpModal.HandleKey(msg).(type) {
	case modal.ActionClose:
		m.helpModal = nil
	case modal.ActionSelect:
		m.helpModal = nil
		for _, b := range bindings() {
			if b.name() == a.Item.Key {
				mdl, cmd, _ := b.handler(m)
				return mdl, cmd
			}
		}
	}
	return *m, nil
}
