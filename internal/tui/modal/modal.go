// Package modal draws the key binding overlay: a filterable two-column list
// of keys and what they do, centered over the app.
package modal

import (
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/sahilm/fuzzy"
)

// Action is the result of handling a key. nil means no action.
type Action any

// ActionClose signals the overlay should be dismissed.
type ActionClose struct{}

// ActionSelect signals a binding was chosen to run.
type ActionSelect struct{ Item Item }

// Item is one key binding row.
type Item struct {
	Key  string
	Desc string
}

// Colors holds the theme colors for the overlay.
type Colors struct {
	Fg     string
	Bg     string
	Dim    string
	SelFg  string
	SelBg  string
	Border string
}

// Model is the key binding overlay. Typed text narrows the list at once;
// up and down move the highlight.
type Model struct {
	all      []Item
	items    []Item
	query    []rune
	selected int
	keyWidth int

	colors Colors

	// Title is shown before the filter text.
	Title string
	// WidthPct is the box width as a percentage of the app width (default 80).
	WidthPct int
}

// New returns an overlay listing items in order.
func New(items []Item, title string, colors Colors) Model {
	m := Model{all: items, items: items, Title: title, colors: colors}
	for _, it := range items {
		m.keyWidth = max(m.keyWidth, lipgloss.Width(it.Key))
	}
	return m
}

// Query returns the current filter text.
func (m *Model) Query() string { return string(m.query) }

// Items returns the rows that match the current filter.
func (m *Model) Items() []Item { return m.items }

// FilterItems returns the items whose key or description fuzzily matches
// query, in their original order. An empty query returns every item.
func FilterItems(items []Item, query string) []Item {
	if query == "" {
		return items
	}
	targets := make([]string, len(items))
	for i, it := range items {
		targets[i] = it.Key + " " + it.Desc
	}
	matches := fuzzy.Find(query, targets)
	sort.Slice(matches, func(i, j int) bool { return matches[i].Index < matches[j].Index })
	out := make([]Item, len(matches))
	for i, match := range matches {
		out[i] = items[match.Index]
	}
	return out
}

// HandleKey processes one key press and returns an optional Action.
func (m *Model) HandleKey(msg tea.KeyPressMsg) Action {
	switch msg.Keystroke() {
	case "esc":
		return ActionClose{}
	case "enter":
		if len(m.items) == 0 {
			return nil
		}
		return ActionSelect{Item: m.items[m.selected]}
	case "up":
		if m.selected > 0 {
			m.selected--
		}
		return nil
	case "down":
		if m.selected < len(m.items)-1 {
			m.selected++
		}
		return nil
	case "backspace":
		if len(m.query) > 0 {
			m.setQuery(m.query[:len(m.query)-1])
		}
		return nil
	}
	if msg.Text != "" {
		m.setQuery(append(m.query, []rune(msg.Text)...))
	}
	return nil
}

func (m *Model) setQuery(q []rune) {
	m.query = q
	m.items = FilterItems(m.all, string(q))
	m.selected = 0
}

// View renders the overlay centered in an appWidth x appHeight area.
func (m *Model) View(appWidth, appHeight int) string {
	pct := m.WidthPct
	if pct <= 0 || pct > 100 {
		pct = 80
	}
	w := max(appWidth*pct/100, 30)
	innerW := max(w-6, 10) // border + padding

	// Title, divider and footer take three rows inside the border.
	listHeight := max(min(len(m.all), appHeight*80/100-5), 1)

	bg := lipgloss.Color(m.colors.Bg)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Dim)).Background(bg)

	rows := make([]string, 0, listHeight+3)
	rows = append(rows, m.renderTitle())
	rows = append(rows, dim.Render(strings.Repeat("─", innerW)))
	rows = append(rows, m.renderList(innerW, listHeight)...)
	rows = append(rows, dim.Render(padRight("enter run · esc close", innerW)))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.colors.Border)).
		BorderBackground(bg).
		Foreground(lipgloss.Color(m.colors.Fg)).
		Background(bg).
		Padding(0, 1).
		Width(w - 2).
		Render(strings.Join(rows, "\n"))

	return lipgloss.Place(appWidth, appHeight, lipgloss.Center, lipgloss.Center, box,
		lipgloss.WithWhitespaceStyle(lipgloss.NewStyle().Background(bg)))
}

func (m *Model) renderTitle() string {
	cursor := lipgloss.NewStyle().Reverse(true).Render(" ")
	return lipgloss.NewStyle().Bold(true).Render(m.Title) + string(m.query) + cursor
}

func (m *Model) renderList(innerW, listHeight int) []string {
	bg := lipgloss.Color(m.colors.Bg)
	keyStyle := lipgloss.NewStyle().Bold(true).Background(bg)
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Dim)).Background(bg)
	selStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.colors.SelFg)).
		Background(lipgloss.Color(m.colors.SelBg))

	lines := make([]string, 0, listHeight)
	if len(m.items) == 0 {
		lines = append(lines, descStyle.Render(padRight("no matching keys", innerW)))
	}

	scrollOff := max(m.selected-listHeight+1, 0)
	for i := scrollOff; i < len(m.items) && len(lines) < listHeight; i++ {
		it := m.items[i]
		key := padRight(it.Key, m.keyWidth)
		if i == m.selected {
			lines = append(lines, selStyle.Render(padRight(key+"  "+it.Desc, innerW)))
			continue
		}
		lines = append(lines, padRight(keyStyle.Render(key)+descStyle.Render("  "+it.Desc), innerW))
	}

	for len(lines) < listHeight {
		lines = append(lines, strings.Repeat(" ", innerW))
	}
	return lines
}

// padRight pads or truncates s to exactly w cells, ignoring escape sequences.
func padRight(s string, w int) string {
	sw := lipgloss.Width(s)
	if sw > w {
		return ansi.Truncate(s, w, "…")
	}
	return s + strings.Repeat(" ", w-sw)
}
