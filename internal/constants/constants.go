package constants

// SyntaxTheme is the default Chroma syntax highlighting theme for the preview
// pane. Overridden by the syntax_theme config key.
//
// Dark themes that read well in most terminals: github-dark, monokai, dracula,
// nord, gruvbox, onedark, catppuccin-mocha, tokyonight-night, vulcan.
// Light themes: github, solarized-light, gruvbox-light, catppuccin-latte.
const SyntaxTheme = "github-dark"

const (
	// MaxPreviewFileSize is the size above which the preview skips syntax
	// highlighting and streams the file as plain text.
	MaxPreviewFileSize = 512 * 1024

	// MaxPreviewLines caps the number of lines rendered in the preview.
	MaxPreviewLines = 1000

	// BinarySniffLen is how many leading bytes are checked for NUL.
	BinarySniffLen = 1024

	// LineNumberWidth is the right-aligned width of the preview gutter.
	LineNumberWidth = 4
)

const (
	// ScrollFreeLines: matches on lines before this one do not scroll the preview.
	ScrollFreeLines = 15

	// ScrollContextLines is how many lines are kept above a match after scrolling.
	ScrollContextLines = 10
)

// PlaceholderUnreadable is the single preview line shown for files that
// cannot be read as text.
const PlaceholderUnreadable = "Unable to read file"
