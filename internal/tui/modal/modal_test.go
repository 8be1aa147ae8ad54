package modal

import (
	"reflect"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

var testColors = Colors{Dim: "#666", SelFg: "#fff", SelBg: "#444", Border: "#555"}

var keyItems = []Item{
	{Key: "ctrl+n", Desc: "filename search"},
	{Key: "ctrl+f", Desc: "content search"},
	{Key: "ctrl+d", Desc: "toggle dirty files"},
}

func newModel() Model { return New(keyItems, "Keys: ", testColors) }

func key(ch rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: ch, Text: string(ch)}
}

func special(name string) tea.KeyPressMsg {
	switch name {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	default:
		return tea.KeyPressMsg{}
	}
}

func typeText(m *Model, s string) {
	for _, r := range s {
		m.HandleKey(key(r))
	}
}

func selected(t *testing.T, a Action) string {
	t.Helper()
	sel, ok := a.(ActionSelect)
	if !ok {
		t.Fatalf("expected ActionSelect, got %T", a)
	}
	return sel.Item.Key
}

func TestEscapeCloses(t *testing.T) {
	m := newModel()
	if _, ok := m.HandleKey(special("esc")).(ActionClose); !ok {
		t.Fatal("expected ActionClose")
	}
}

func TestEnterSelectsFirst(t *testing.T) {
	m := newModel()
	if got := selected(t, m.HandleKey(special("enter"))); got != "ctrl+n" {
		t.Fatalf("expected ctrl+n, got %s", got)
	}
}

func TestNavigationIsClamped(t *testing.T) {
	m := newModel()
	m.HandleKey(special("up"))
	if m.selected != 0 {
		t.Fatalf("up at the top moved to %d", m.selected)
	}
	m.HandleKey(special("down"))
	if got := selected(t, m.HandleKey(special("enter"))); got != "ctrl+f" {
		t.Fatalf("expected ctrl+f, got %s", got)
	}
	for range 5 {
		m.HandleKey(special("down"))
	}
	if got := selected(t, m.HandleKey(special("enter"))); got != "ctrl+d" {
		t.Fatalf("expected ctrl+d at the bottom, got %s", got)
	}
}

func TestTypingFiltersImmediately(t *testing.T) {
	m := newModel()
	m.HandleKey(special("down"))
	typeText(&m, "dirty")
	if m.Query() != "dirty" {
		t.Fatalf("query = %q", m.Query())
	}
	if items := m.Items(); len(items) != 1 || items[0].Key != "ctrl+d" {
		t.Fatalf("items = %v", items)
	}
	if got := selected(t, m.HandleKey(special("enter"))); got != "ctrl+d" {
		t.Fatalf("a new filter selects the first row, got %s", got)
	}
}

func TestBackspaceWidensFilter(t *testing.T) {
	m := newModel()
	typeText(&m, "dirtyq")
	if len(m.Items()) != 0 {
		t.Fatalf("items = %v", m.Items())
	}
	m.HandleKey(special("backspace"))
	if m.Query() != "dirty" || len(m.Items()) != 1 {
		t.Fatalf("query = %q items = %v", m.Query(), m.Items())
	}
	for range 10 {
		m.HandleKey(special("backspace"))
	}
	if m.Query() != "" || len(m.Items()) != len(keyItems) {
		t.Fatalf("query = %q items = %v", m.Query(), m.Items())
	}
}

func TestEmptyResultsEnterNoAction(t *testing.T) {
	m := newModel()
	typeText(&m, "zzz")
	if a := m.HandleKey(special("enter")); a != nil {
		t.Fatalf("expected nil action, got %T", a)
	}
}

func TestFilterItems(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"ctrl+n", "ctrl+f", "ctrl+d"}},
		{"search", []string{"ctrl+n", "ctrl+f"}},
		{"ctrl+d", []string{"ctrl+d"}},
		{"zzz", []string{}},
	}
	for _, tt := range tests {
		got := []string{}
		for _, it := range FilterItems(keyItems, tt.query) {
			got = append(got, it.Key)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("FilterItems(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestViewRenders(t *testing.T) {
	m := newModel()
	m.WidthPct = 60
	v := m.View(100, 40)
	for _, want := range []string{"Keys:", "ctrl+n", "filename search", "esc close"} {
		if !strings.Contains(v, want) {
			t.Errorf("view is missing %q", want)
		}
	}
	if got := lipgloss.Height(v); got != 40 {
		t.Errorf("view height = %d, want 40", got)
	}

	typeText(&m, "zzz")
	if v := m.View(100, 40); !strings.Contains(v, "no matching keys") {
		t.Error("expected the empty-list notice")
	}
}

func TestPadRight(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("abc")
	if got := lipgloss.Width(padRight(styled, 6)); got != 6 {
		t.Errorf("styled pad width = %d, want 6", got)
	}
	if got := lipgloss.Width(padRight("abcdefgh", 4)); got != 4 {
		t.Errorf("truncated width = %d, want 4", got)
	}
}
