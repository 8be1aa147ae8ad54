package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/glancr/internal/filesearch"
	"github.com/xonecas/glancr/internal/gitstatus"
	"github.com/xonecas/glancr/internal/launcher"
	"github.com/xonecas/glancr/internal/preview"
)

// ---------------------------------------------------------------------------
// ELM messages
// ---------------------------------------------------------------------------

// filesDiscoveredMsg carries a freshly built base set.
type filesDiscoveredMsg struct {
	seq   int
	base  BaseSet
	files []string
	err   error
}

// filterDoneMsg carries the result of one filter pass.
type filterDoneMsg struct {
	seq   int
	files []string
}

// previewDoneMsg carries a built preview for path.
type previewDoneMsg struct {
	seq    int
	path   string
	result preview.Result
}

// filesChangedMsg is sent when the watcher reports a change under the root.
type filesChangedMsg struct{}

// openedMsg is sent when the open command exits.
type openedMsg struct{ err error }

// ---------------------------------------------------------------------------
// ELM commands
// ---------------------------------------------------------------------------

// startDiscover rebuilds the active base set in the background.
func (m *Model) startDiscover() tea.Cmd {
	m.discoverSeq++
	m.discovering = true
	return m.discoverCmd()
}

// discoverCmd builds the base set for the current discovery sequence.
func (m Model) discoverCmd() tea.Cmd {
	seq, base, root := m.discoverSeq, m.base, m.root
	opts := m.discover
	filterVCS := m.cfg.FilterVCSSets
	ctx := m.ctx
	return func() tea.Msg {
		files, err := buildBaseSet(ctx, root, base, opts, filterVCS)
		return filesDiscoveredMsg{seq: seq, base: base, files: files, err: err}
	}
}

// buildBaseSet produces the file list for base. The git-derived sets are
// sanitized with the discovery rules when filterVCS is set.
func buildBaseSet(ctx context.Context, root string, base BaseSet, opts filesearch.DiscoverOptions, filterVCS bool) ([]string, error) {
	var (
		files []string
		err   error
	)
	switch base {
	case BaseDirty:
		files, err = gitstatus.Dirty(ctx, root)
	case BaseChanged:
		files, err = gitstatus.Changed(ctx, root)
	default:
		return filesearch.Discover(ctx, root, opts)
	}
	if err != nil {
		return nil, err
	}
	if filterVCS {
		files = filesearch.Sanitize(root, files, opts.Rules)
	}
	return files, nil
}

// startFilter cancels any running filter pass and starts a new one over the
// current base set.
func (m *Model) startFilter() tea.Cmd {
	if m.filterCancel != nil {
		m.filterCancel()
	}
	ctx, cancel := context.WithCancel(m.ctx)
	m.filterCancel = cancel
	m.filterSeq++
	m.filtering = true
	seq, root, files, query, mode := m.filterSeq, m.root, m.files, m.query, m.mode
	return func() tea.Msg {
		return filterDoneMsg{seq: seq, files: filesearch.Filter(ctx, root, files, query, mode)}
	}
}

// startPreview builds the preview of the selected file.
func (m *Model) startPreview() tea.Cmd {
	m.previewSeq++
	path := m.Selected()
	if path == "" {
		m.preview = preview.Result{}
		m.previewPath = ""
		m.previewOffset = 0
		return nil
	}
	seq, query, mode, opts := m.previewSeq, m.query, m.mode, m.previewOpts
	full := filesearch.Resolve(m.root, path)
	return func() tea.Msg {
		return previewDoneMsg{seq: seq, path: path, result: preview.Build(full, query, mode, opts)}
	}
}

// waitForChange blocks until the watcher reports a change.
func (m Model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	w := m.watcher
	return func() tea.Msg {
		if err := w.Wait(); err != nil {
			return nil
		}
		return filesChangedMsg{}
	}
}

// openSelected hands the terminal to the open command for the selected file.
func (m *Model) openSelected() tea.Cmd {
	path := m.Selected()
	if path == "" {
		return nil
	}
	c, err := launcher.Cmd(m.cfg.OpenCommand, m.root, path)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("open failed")
		m.setError(err.Error())
		return nil
	}
	log.Debug().Strs("args", c.Args).Msg("opening")
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return openedMsg{err: err}
	})
}
