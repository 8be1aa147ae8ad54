// Package highlight provides syntax highlighting via Chroma, decoupled from any
// specific TUI component. Output is per-line runs of text with resolved theme
// colors rather than escape sequences, so callers can overlay their own
// styling (e.g. search hits) before rendering.
package highlight

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
)

// Token is a run of text rendered in a single style.
type Token struct {
	Text   string
	Fg     string // "#rrggbb", "" = terminal default
	Bold   bool
	Italic bool
}

// Lines tokenises text with lexer and returns one token slice per line, with
// colors taken from theme. Line terminators are not included in token text.
// Lexer state carries across lines, so multi-line constructs (block comments,
// raw strings) are colored correctly.
func Lines(lexer chroma.Lexer, theme, text string) ([][]Token, error) {
	if lexer == nil {
		return nil, fmt.Errorf("no lexer")
	}
	lex := chroma.Coalesce(lexer)
	sty := styles.Get(theme)
	it, err := lex.Tokenise(nil, text)
	if err != nil {
		return nil, fmt.Errorf("tokenise: %w", err)
	}

	var out [][]Token
	for _, line := range chroma.SplitTokensIntoLines(it.Tokens()) {
		toks := make([]Token, 0, len(line))
		for _, tok := range line {
			v := strings.TrimRight(tok.Value, "\r\n")
			if v == "" {
				continue
			}
			entry := sty.Get(tok.Type)
			t := Token{
				Text:   v,
				Bold:   entry.Bold == chroma.Yes,
				Italic: entry.Italic == chroma.Yes,
			}
			if entry.Colour.IsSet() {
				t.Fg = entry.Colour.String()
			}
			toks = append(toks, t)
		}
		out = append(out, toks)
	}
	return out, nil
}

// Palette holds UI chrome colors derived deterministically from a Chroma theme.
// The grayscale ramp is a linear interpolation from bg to fg; the accent is the
// most saturated token color in the palette; error comes from the Error token.
type Palette struct {
	Bg      string // Theme background
	Fg      string // Theme foreground (primary text)
	Border  string // 10% bg→fg: borders, dividers
	SelBg   string // 18% bg→fg: selected list row
	Dim     string // 25% bg→fg: line numbers, hints
	MatchBg string // 35% bg→fg: search hit background
	Muted   string // 45% bg→fg: secondary text
	Accent  string // Most saturated token color
	Error   string // From chroma Error token, lerped 45% toward fg
	Warning string // Banners (large file, truncation)
}

// ThemePalette derives a full UI color palette from a Chroma theme name.
// Deterministic: same theme → same output. Falls back to sensible defaults
// when the theme is missing entries.
func ThemePalette(theme string) Palette {
	sty := styles.Get(theme)
	if sty == nil {
		return defaultPalette()
	}
	entry := sty.Get(chroma.Background)
	bg := "#000000"
	fg := "#c8c8c8"
	if entry.Background.IsSet() {
		bg = entry.Background.String()
	}
	if entry.Colour.IsSet() {
		fg = entry.Colour.String()
	}

	return Palette{
		Bg:      bg,
		Fg:      fg,
		Border:  lerpHex(bg, fg, 0.10),
		SelBg:   lerpHex(bg, fg, 0.18),
		Dim:     lerpHex(bg, fg, 0.25),
		MatchBg: lerpHex(bg, fg, 0.35),
		Muted:   lerpHex(bg, fg, 0.45),
		Accent:  pickAccent(sty, fg),
		Error:   pickError(sty, bg, fg),
		Warning: "#d7af00",
	}
}

func defaultPalette() Palette {
	return Palette{
		Bg: "#000000", Fg: "#c8c8c8",
		Border: "#141414", SelBg: "#242424",
		Dim: "#323232", MatchBg: "#464646", Muted: "#5a5a5a",
		Accent: "#00dfff", Error: "#932e2e", Warning: "#d7af00",
	}
}

// pickAccent returns the most saturated foreground color across all tokens.
func pickAccent(sty *chroma.Style, fallback string) string {
	best := fallback
	bestSat := 0.0
	for tt := chroma.TokenType(0); tt < 2000; tt++ {
		e := sty.Get(tt)
		if !e.Colour.IsSet() {
			continue
		}
		hex := e.Colour.String()
		r, g, b := hexToRGBf(hex)
		mx := max(r, g, b)
		mn := min(r, g, b)
		if mx == 0 {
			continue
		}
		sat := (mx - mn) / mx
		if sat > bestSat {
			bestSat = sat
			best = hex
		}
	}
	return best
}

// pickError extracts the Error token color and lerps it 45% toward fg
// so it's visible but not garish against the theme background.
func pickError(sty *chroma.Style, bg, fg string) string {
	e := sty.Get(chroma.Error)
	if !e.Colour.IsSet() {
		return lerpHex(bg, fg, 0.45) // muted fallback
	}
	return lerpHex(bg, e.Colour.String(), 0.45)
}

// lerpHex linearly interpolates between two hex colors at fraction t.
func lerpHex(a, b string, t float64) string {
	ar, ag, ab := hexToRGBf(a)
	br, bg, bb := hexToRGBf(b)
	return fmt.Sprintf("#%02x%02x%02x",
		clampByte(ar+(br-ar)*t),
		clampByte(ag+(bg-ag)*t),
		clampByte(ab+(bb-ab)*t),
	)
}

func hexToRGBf(hex string) (float64, float64, float64) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0
	}
	return float64(hexByte(hex[1], hex[2])),
		float64(hexByte(hex[3], hex[4])),
		float64(hexByte(hex[5], hex[6]))
}

func hexByte(hi, lo byte) int {
	return hexNibble(hi)<<4 | hexNibble(lo)
}

func hexNibble(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return 0
}

func clampByte(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return int(v + 0.5)
}
