package filesearch

import (
	"path/filepath"
	"strings"
)

// DefaultIgnoredDirs are directory markers excluded from discovery.
var DefaultIgnoredDirs = []string{
	"/.git/",
	"/node_modules/",
	"/target/",
	"/dist/",
	"/build/",
	"/.idea/",
	"/.vscode/",
	"/vendor/",
	"/.next/",
	"/coverage/",
	"/yarn.lock",
	"/.yarn/",
}

// DefaultIgnoredPatterns are file name infixes excluded from discovery.
var DefaultIgnoredPatterns = []string{
	".lock",
	".log",
	".map",
	".min.js",
	".min.css",
	".bundle.",
	".cache",
}

// Rules decides whether a path is excluded by directory markers or file name
// patterns. Matching is case-insensitive substring containment only.
type Rules struct {
	dirs     []string
	patterns []string
}

// NewRules normalizes the given markers and patterns. A nil slice selects the
// defaults; an empty non-nil slice disables that rule category.
func NewRules(dirs, patterns []string) *Rules {
	if dirs == nil {
		dirs = DefaultIgnoredDirs
	}
	if patterns == nil {
		patterns = DefaultIgnoredPatterns
	}
	r := &Rules{}
	for _, d := range dirs {
		if m := normalizeDirMarker(d); m != "" {
			r.dirs = append(r.dirs, m)
		}
	}
	for _, p := range patterns {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			r.patterns = append(r.patterns, p)
		}
	}
	return r
}

// normalizeDirMarker anchors a marker with path separators: "node_modules"
// becomes "/node_modules/". Markers naming a file (e.g. "/yarn.lock") only get
// the leading separator.
func normalizeDirMarker(marker string) string {
	m := strings.ToLower(strings.TrimSpace(filepath.ToSlash(marker)))
	if m == "" || m == "/" {
		return ""
	}
	if !strings.HasPrefix(m, "/") {
		m = "/" + m
	}
	if !strings.HasSuffix(m, "/") && !strings.Contains(strings.TrimPrefix(m[1:], "."), ".") {
		m += "/"
	}
	return m
}

// IsIgnored reports whether path is excluded. Root-relative paths are treated
// as if they started with a separator so markers anchor at the root too.
func (r *Rules) IsIgnored(path string) bool {
	if r == nil {
		return false
	}
	norm := strings.ToLower(filepath.ToSlash(path))
	if !strings.HasPrefix(norm, "/") {
		norm = "/" + norm
	}
	for _, d := range r.dirs {
		if strings.Contains(norm, d) {
			return true
		}
	}
	name := strings.ToLower(filepath.Base(path))
	for _, p := range r.patterns {
		if strings.Contains(name, p) {
			return true
		}
	}
	return false
}

// IsIgnoredDir reports whether a directory (and so its whole subtree) is
// excluded by a marker.
func (r *Rules) IsIgnoredDir(dir string) bool {
	if r == nil {
		return false
	}
	norm := strings.ToLower(filepath.ToSlash(dir))
	if !strings.HasPrefix(norm, "/") {
		norm = "/" + norm
	}
	norm = strings.TrimSuffix(norm, "/") + "/"
	for _, d := range r.dirs {
		if strings.Contains(norm, d) {
			return true
		}
	}
	return false
}
