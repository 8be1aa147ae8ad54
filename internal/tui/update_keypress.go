package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/glancr/internal/filesearch"
)

// binding ties keystrokes to a handler and its help text.
type binding struct {
	keys    []string
	desc    string
	handler func(*Model) (Model, tea.Cmd, bool)
}

// name is the label shown in the help list.
func (b binding) name() string { return strings.Join(b.keys, "/") }

func bindings() []binding {
	return []binding{
		{[]string{"f1", "ctrl+h"}, "keybinds", (*Model).handleHelp},
		{[]string{"ctrl+n"}, "filename search", (*Model).handleFilenameMode},
		{[]string{"ctrl+f"}, "content search (regex)", (*Model).handleContentsMode},
		{[]string{"ctrl+d"}, "toggle dirty files", (*Model).handleToggleDirty},
		{[]string{"ctrl+t"}, "toggle files changed from default branch", (*Model).handleToggleChanged},
		{[]string{"ctrl+r"}, "refresh file list", (*Model).handleRefresh},
		{[]string{"up", "ctrl+p"}, "previous file", (*Model).handleUp},
		{[]string{"down"}, "next file", (*Model).handleDown},
		{[]string{"pgup"}, "page up", (*Model).handlePgUp},
		{[]string{"pgdown"}, "page down", (*Model).handlePgDown},
		{[]string{"shift+up"}, "scroll preview up", (*Model).handlePreviewUp},
		{[]string{"shift+down"}, "scroll preview down", (*Model).handlePreviewDown},
		{[]string{"enter"}, "open file and quit", (*Model).handleEnter},
		{[]string{"esc", "ctrl+c"}, "quit", (*Model).handleQuit},
	}
}

// handleKeyPress processes key events. Returns (model, cmd, true) if handled.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (Model, tea.Cmd, bool) {
	handler := m.keyPressHandlers()[msg.Keystroke()]
	if handler == nil {
		return Model{}, nil, false
	}
	return handler(m)
}

func (m *Model) keyPressHandlers() map[string]func(*Model) (Model, tea.Cmd, bool) {
	handlers := make(map[string]func(*Model) (Model, tea.Cmd, bool))
	for _, b := range bindings() {
		for _, k := range b.keys {
			handlers[k] = b.handler
		}
	}
	return handlers
}

func (m *Model) handleQuit() (Model, tea.Cmd, bool) {
	return *m, m.quit(), true
}

func (m *Model) handleEnter() (Model, tea.Cmd, bool) {
	return *m, m.openSelected(), true
}

func (m *Model) handleHelp() (Model, tea.Cmd, bool) {
	m.openKeybindsModal()
	return *m, nil, true
}

func (m *Model) handleFilenameMode() (Model, tea.Cmd, bool) {
	return *m, m.setMode(filesearch.ModeFilename), true
}

func (m *Model) handleContentsMode() (Model, tea.Cmd, bool) {
	return *m, m.setMode(filesearch.ModeContents), true
}

func (m *Model) setMode(mode filesearch.Mode) tea.Cmd {
	if m.mode == mode {
		return nil
	}
	m.mode = mode
	m.clearStatus()
	m.updateComponentSizes()
	log.Debug().Str("mode", mode.String()).Msg("search mode")
	return m.startFilter()
}

func (m *Model) handleToggleDirty() (Model, tea.Cmd, bool) {
	return *m, m.toggleBase(BaseDirty), true
}

func (m *Model) handleToggleChanged() (Model, tea.Cmd, bool) {
	return *m, m.toggleBase(BaseChanged), true
}

// toggleBase switches to base, or back to all files when base is active.
func (m *Model) toggleBase(base BaseSet) tea.Cmd {
	if m.base == base {
		base = BaseAll
	}
	m.base = base
	m.selected = 0
	m.listOffset = 0
	m.clearStatus()
	return m.startDiscover()
}

func (m *Model) handleRefresh() (Model, tea.Cmd, bool) {
	m.clearStatus()
	return *m, m.startDiscover(), true
}

func (m *Model) handleUp() (Model, tea.Cmd, bool) {
	return *m, m.moveSelection(-1), true
}

func (m *Model) handleDown() (Model, tea.Cmd, bool) {
	return *m, m.moveSelection(1), true
}

func (m *Model) handlePgUp() (Model, tea.Cmd, bool) {
	return *m, m.moveSelection(-max(m.layout.list.Dy(), 1)), true
}

func (m *Model) handlePgDown() (Model, tea.Cmd, bool) {
	return *m, m.moveSelection(max(m.layout.list.Dy(), 1)), true
}

func (m *Model) handlePreviewUp() (Model, tea.Cmd, bool) {
	m.scrollPreview(-previewScroll)
	return *m, nil, true
}

func (m *Model) handlePreviewDown() (Model, tea.Cmd, bool) {
	m.scrollPreview(previewScroll)
	return *m, nil, true
}
