// Package preview builds the right-hand file preview: line-numbered,
// syntax-colored lines with search hits marked, plus the line the view
// should scroll to. Builds never fail; unreadable input degrades to a
// single placeholder line.
package preview

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/glancr/internal/constants"
	"github.com/xonecas/glancr/internal/filesearch"
	"github.com/xonecas/glancr/internal/highlight"
)

// Span is a run of preview text in one style.
type Span struct {
	Text    string
	Fg      string // "#rrggbb"; "" = pane default
	Match   bool   // search hit: distinct background, bold
	Bold    bool
	Italic  bool
	Dim     bool // line-number gutter
	Warning bool // large-file and truncation banners
}

// Line is one rendered preview row.
type Line []Span

// Text returns the line without styling.
func (l Line) Text() string {
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Result is a built preview.
type Result struct {
	Lines []Line
	// ScrollTarget is the 1-based line of the first match, 0 for none.
	ScrollTarget int
	Truncated    bool
	Large        bool
	Language     string
}

// PlainText renders the result without styling, one row per line.
func (r Result) PlainText() string {
	rows := make([]string, len(r.Lines))
	for i, l := range r.Lines {
		rows[i] = l.Text()
	}
	return strings.Join(rows, "\n")
}

// Options tunes a build. Zero fields take the package defaults.
type Options struct {
	Theme    string
	MaxSize  int64
	MaxLines int
}

// DefaultOptions returns the stock limits and theme.
func DefaultOptions() Options {
	return Options{
		Theme:    constants.SyntaxTheme,
		MaxSize:  constants.MaxPreviewFileSize,
		MaxLines: constants.MaxPreviewLines,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Theme == "" {
		o.Theme = d.Theme
	}
	if o.MaxSize <= 0 {
		o.MaxSize = d.MaxSize
	}
	if o.MaxLines <= 0 {
		o.MaxLines = d.MaxLines
	}
	return o
}

// Placeholder is the result for files that cannot be shown as text.
func Placeholder() Result {
	return Result{Lines: []Line{{{Text: constants.PlaceholderUnreadable}}}}
}

// Build previews the file at path. In contents mode with a query that
// compiles, the first matching line becomes the scroll target and hits are
// marked; otherwise the query has no effect.
func Build(path, query string, mode filesearch.Mode, opts Options) Result {
	opts = opts.withDefaults()
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return Placeholder()
	}
	m := filesearch.NewMatcher(query, mode)
	if info.Size() > opts.MaxSize {
		return buildLarge(path, m, opts)
	}
	return buildNormal(path, m, opts)
}

func buildNormal(path string, m *filesearch.Matcher, opts Options) Result {
	data, err := os.ReadFile(path)
	if err != nil || !utf8.Valid(data) || bytes.IndexByte(data, 0) >= 0 {
		return Placeholder()
	}
	lines := splitLines(string(data))

	res := Result{ScrollTarget: firstMatch(lines, m)}

	shown := lines
	if len(shown) > opts.MaxLines {
		shown = shown[:opts.MaxLines]
		res.Truncated = true
	}

	firstLine := ""
	if len(lines) > 0 {
		firstLine = lines[0]
	}
	lexer := highlight.Resolve(path, firstLine)
	res.Language = highlight.LexerName(lexer)

	tokens, err := highlight.Lines(lexer, opts.Theme, strings.Join(shown, "\n"))
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("preview: highlight failed, using plain text")
		tokens = nil
	}

	res.Lines = make([]Line, 0, len(shown)+1)
	for i, text := range shown {
		line := Line{gutter(i + 1)}
		if i < len(tokens) {
			line = appendTokens(line, tokens[i], m)
		} else if text != "" {
			line = appendTokens(line, []highlight.Token{{Text: text}}, m)
		}
		res.Lines = append(res.Lines, line)
	}
	if res.Truncated {
		res.Lines = append(res.Lines, banner(fmt.Sprintf("File truncated - showing first %d lines only", opts.MaxLines)))
	}
	return res
}

// splitLines splits on "\n", trimming a trailing "\r" from each line. A final
// newline does not start an extra empty line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// firstMatch returns the 1-based number of the first line m matches, or 0.
func firstMatch(lines []string, m *filesearch.Matcher) int {
	if !m.Active() {
		return 0
	}
	for i, l := range lines {
		if m.MatchLine(l) {
			return i + 1
		}
	}
	return 0
}

// appendTokens adds highlighted tokens to line. Each token's text is split
// at its own first hit into pre, match and post spans.
func appendTokens(line Line, toks []highlight.Token, m *filesearch.Matcher) Line {
	for _, t := range toks {
		base := Span{Text: t.Text, Fg: t.Fg, Bold: t.Bold, Italic: t.Italic}
		start, end, ok := m.FindIn(t.Text)
		if !ok {
			line = append(line, base)
			continue
		}
		if start > 0 {
			pre := base
			pre.Text = t.Text[:start]
			line = append(line, pre)
		}
		hit := base
		hit.Text = t.Text[start:end]
		hit.Match = true
		hit.Bold = true
		line = append(line, hit)
		if end < len(t.Text) {
			post := base
			post.Text = t.Text[end:]
			line = append(line, post)
		}
	}
	return line
}

func gutter(n int) Span {
	return Span{Text: fmt.Sprintf("%*d ", constants.LineNumberWidth, n), Dim: true}
}

func banner(text string) Line {
	return Line{{Text: text, Warning: true}}
}
