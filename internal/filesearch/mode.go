package filesearch

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Mode selects how a query is matched.
type Mode int

const (
	// ModeFilename fuzzy-matches the query against file paths.
	ModeFilename Mode = iota
	// ModeContents matches the query as a regular expression against file lines.
	ModeContents
)

func (m Mode) String() string {
	switch m {
	case ModeFilename:
		return "filename"
	case ModeContents:
		return "contents"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Label is the human-readable name shown in the input box title.
func (m Mode) Label() string {
	if m == ModeFilename {
		return "Filename Search"
	}
	return "Content Search"
}

// ParseMode parses "filename"/"name" or "contents"/"content".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "filename", "name", "file", "files":
		return ModeFilename, nil
	case "contents", "content", "grep", "":
		return ModeContents, nil
	}
	return ModeContents, fmt.Errorf("unknown search mode %q", s)
}

// Matcher is the single place that decides whether a path or a line matches
// a query under a mode. It is shared by Filter and the preview builder.
type Matcher struct {
	mode  Mode
	query string
	re    *regexp.Regexp // contents mode only; nil when the query is empty or invalid
}

// NewMatcher compiles query for mode. An invalid regular expression yields a
// matcher that matches nothing in contents mode; it is never an error.
func NewMatcher(query string, mode Mode) *Matcher {
	m := &Matcher{mode: mode, query: query}
	if mode == ModeContents && query != "" {
		if re, err := regexp.Compile(query); err == nil {
			m.re = re
		}
	}
	return m
}

// Mode returns the mode the matcher was built for.
func (m *Matcher) Mode() Mode { return m.mode }

// Empty reports whether the query is empty (no filter applied).
func (m *Matcher) Empty() bool { return m.query == "" }

// Valid reports whether a contents-mode query compiled.
func (m *Matcher) Valid() bool { return m.mode != ModeContents || m.query == "" || m.re != nil }

// Active reports whether line matching and highlighting apply: contents mode
// with a non-empty query that compiled.
func (m *Matcher) Active() bool { return m.re != nil }

// MatchPath reports whether every query rune appears in path in order,
// ignoring case.
func (m *Matcher) MatchPath(path string) bool {
	if m.query == "" {
		return true
	}
	return len(fuzzy.Find(m.query, []string{path})) > 0
}

// MatchPaths returns the paths that MatchPath accepts, in input order.
func (m *Matcher) MatchPaths(paths []string) []string {
	if m.query == "" {
		return paths
	}
	matches := fuzzy.Find(m.query, paths)
	// fuzzy.Find orders by score; the file list keeps walk order.
	sort.Slice(matches, func(i, j int) bool { return matches[i].Index < matches[j].Index })
	out := make([]string, len(matches))
	for i, match := range matches {
		out[i] = paths[match.Index]
	}
	return out
}

// MatchLine reports whether line contains a regex match.
func (m *Matcher) MatchLine(line string) bool {
	return m.re != nil && m.re.MatchString(line)
}

// FindIn returns the byte range of the first non-empty regex match in text.
// Empty-width matches are not highlights.
func (m *Matcher) FindIn(text string) (start, end int, ok bool) {
	if m.re == nil {
		return 0, 0, false
	}
	loc := m.re.FindStringIndex(text)
	if loc == nil || loc[0] == loc[1] {
		return 0, 0, false
	}
	return loc[0], loc[1], true
}
