package tui

import (
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/glancr/internal/filesearch"
)

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// -- Window resize -------------------------------------------------------
	case tea.WindowSizeMsg:
		m.handleResize(msg)
		return m, nil

	// -- Mouse ---------------------------------------------------------------
	case tea.MouseMsg:
		if m.helpModal != nil {
			return m, nil
		}
		return m.handleMouse(msg)

	// -- Keyboard ------------------------------------------------------------
	case tea.KeyPressMsg:
		if m.helpModal != nil {
			return m.updateHelpModal(msg)
		}
		if mdl, cmd, handled := m.handleKeyPress(msg); handled {
			return mdl, cmd
		}

	// -- Async results -------------------------------------------------------
	case filesDiscoveredMsg:
		return m.handleDiscovered(msg)
	case filterDoneMsg:
		return m.handleFiltered(msg)
	case previewDoneMsg:
		return m.handlePreview(msg), nil

	case filesChangedMsg:
		log.Debug().Msg("files changed, refreshing")
		return m, tea.Batch(m.startDiscover(), m.waitForChange())

	case openedMsg:
		if msg.err != nil {
			log.Warn().Err(msg.err).Msg("open command failed")
			m.setError("open: " + msg.err.Error())
			return m, nil
		}
		return m, m.quit()
	}

	// Everything else edits the query.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if q := m.input.Value(); q != m.query {
		m.query = q
		m.clearStatus()
		return m, tea.Batch(cmd, m.startFilter())
	}
	return m, cmd
}

// handleDiscovered installs a new base set and refilters it.
func (m Model) handleDiscovered(msg filesDiscoveredMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.discoverSeq {
		return m, nil
	}
	m.discovering = false
	if msg.err != nil {
		log.Warn().Err(msg.err).Str("base", msg.base.String()).Msg("building file list failed")
		if msg.base != BaseAll {
			// Outside a repository the git sets do not exist; go back to all files.
			m.setError(msg.base.String() + " files: " + msg.err.Error())
			m.base = BaseAll
			return m, m.startDiscover()
		}
		m.setError(msg.err.Error())
	}
	log.Debug().Int("files", len(msg.files)).Str("base", msg.base.String()).Msg("base set ready")
	m.files = msg.files
	return m, m.startFilter()
}

// handleFiltered applies the latest filter pass and previews the selection.
func (m Model) handleFiltered(msg filterDoneMsg) (tea.Model, tea.Cmd) {
	if msg.seq != m.filterSeq {
		return m, nil
	}
	m.filtering = false
	m.filtered = msg.files
	m.selected = filesearch.Clamp(m.selected, len(m.filtered))
	m.ensureVisible()
	return m, m.startPreview()
}

// handlePreview installs a built preview and scrolls it to the first match.
func (m Model) handlePreview(msg previewDoneMsg) Model {
	if msg.seq != m.previewSeq {
		return m
	}
	m.preview = msg.result
	m.previewPath = msg.path
	m.previewOffset = previewOffset(msg.result.ScrollTarget, len(msg.result.Lines), m.layout.preview.Dy())
	return m
}

// moveSelection moves the list cursor by delta rows and refreshes the
// preview when the selection changed.
func (m *Model) moveSelection(delta int) tea.Cmd {
	if len(m.filtered) == 0 {
		return nil
	}
	next := filesearch.Clamp(m.selected+delta, len(m.filtered))
	if next == m.selected {
		return nil
	}
	m.selected = next
	m.ensureVisible()
	return m.startPreview()
}

// ensureVisible keeps the selected row inside the list pane.
func (m *Model) ensureVisible() {
	h := m.layout.list.Dy()
	if h <= 0 {
		return
	}
	if m.selected < m.listOffset {
		m.listOffset = m.selected
	}
	if m.selected >= m.listOffset+h {
		m.listOffset = m.selected - h + 1
	}
	m.listOffset = min(m.listOffset, max(len(m.filtered)-h, 0))
	m.listOffset = max(m.listOffset, 0)
}

// scrollPreview moves the preview viewport by delta lines.
func (m *Model) scrollPreview(delta int) {
	maxOff := max(len(m.preview.Lines)-m.layout.preview.Dy(), 0)
	m.previewOffset = min(max(m.previewOffset+delta, 0), maxOff)
}

func (m *Model) setError(text string) {
	m.status = text
	m.statusErr = true
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusErr = false
}

// quit cancels in-flight work and ends the program.
func (m *Model) quit() tea.Cmd {
	if m.filterCancel != nil {
		m.filterCancel()
	}
	if m.cancel != nil {
		m.cancel()
	}
	return tea.Quit
}
