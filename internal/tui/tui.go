// Package tui is the interactive finder: a query line, the filtered file list
// and a preview of the selected file.
package tui

import (
	"context"
	"image"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/glancr/internal/config"
	"github.com/xonecas/glancr/internal/filesearch"
	"github.com/xonecas/glancr/internal/highlight"
	"github.com/xonecas/glancr/internal/preview"
	"github.com/xonecas/glancr/internal/tui/modal"
	"github.com/xonecas/glancr/internal/watch"
)

// BaseSet selects where the file list comes from.
type BaseSet int

const (
	// BaseAll is every discovered file under the root.
	BaseAll BaseSet = iota
	// BaseDirty is files with uncommitted changes.
	BaseDirty
	// BaseChanged is files changed since the default branch, plus dirty files.
	BaseChanged
)

func (b BaseSet) String() string {
	switch b {
	case BaseDirty:
		return "dirty"
	case BaseChanged:
		return "changed"
	default:
		return "all"
	}
}

const (
	headerRows    = 2 // query line + separator
	statusRows    = 2 // separator + status bar
	minListWidth  = 20
	listWidthPct  = 35
	previewScroll = 3
)

// layout holds the screen rectangles of each region.
type layout struct {
	input   image.Rectangle
	list    image.Rectangle
	div     image.Rectangle
	preview image.Rectangle
}

func generateLayout(width, height int) layout {
	contentH := max(height-headerRows-statusRows, 1)
	listW := max(width*listWidthPct/100, minListWidth)
	if listW > width-2 {
		listW = max(width-2, 1)
	}
	top := headerRows
	return layout{
		input:   image.Rect(0, 0, width, 1),
		list:    image.Rect(0, top, listW, top+contentH),
		div:     image.Rect(listW, top, listW+1, top+contentH),
		preview: image.Rect(listW+1, top, width, top+contentH),
	}
}

func inRect(x, y int, r image.Rectangle) bool {
	return image.Pt(x, y).In(r)
}

// Options configures a new Model.
type Options struct {
	Root    string
	Config  *config.Config
	Watcher *watch.Watcher // nil disables live refresh
}

// Model is the application model.
type Model struct {
	width  int
	height int
	layout layout
	styles Styles
	colors modal.Colors

	cfg         *config.Config
	root        string
	discover    filesearch.DiscoverOptions
	previewOpts preview.Options
	watcher     *watch.Watcher

	input textinput.Model
	query string
	mode  filesearch.Mode
	base  BaseSet

	files      []string // the active base set
	filtered   []string
	selected   int
	listOffset int

	preview       preview.Result
	previewPath   string
	previewOffset int

	// Each async pass carries a sequence number; only the latest is applied.
	discoverSeq  int
	filterSeq    int
	previewSeq   int
	filterCancel context.CancelFunc
	discovering  bool
	filtering    bool

	status    string // last notice or error, cleared on the next input
	statusErr bool

	helpModal *modal.Model

	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a Model rooted at opts.Root.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	root := opts.Root
	if root == "" {
		root = "."
	}

	palette := highlight.ThemePalette(cfg.SyntaxTheme)

	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "type to search"
	ti.Focus()

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		styles: newStyles(palette),
		colors: modal.Colors{
			Fg:     palette.Fg,
			Bg:     palette.Bg,
			Dim:    palette.Dim,
			SelFg:  palette.Bg,
			SelBg:  palette.Fg,
			Border: palette.Border,
		},
		cfg:         cfg,
		root:        root,
		discover:    cfg.DiscoverOptions(),
		previewOpts: preview.Options{Theme: cfg.SyntaxTheme},
		watcher:     opts.Watcher,
		input:       ti,
		mode:        cfg.Mode(),
		discoverSeq: 1,
		discovering: true,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Init starts discovery and, when enabled, listening for file changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.discoverCmd(), m.waitForChange())
}

// Mode returns the active search mode.
func (m Model) Mode() filesearch.Mode { return m.mode }

// Selected returns the selected path relative to the root, or "".
func (m Model) Selected() string {
	if len(m.filtered) == 0 {
		return ""
	}
	return m.filtered[filesearch.Clamp(m.selected, len(m.filtered))]
}
