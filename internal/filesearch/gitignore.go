package filesearch

import (
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/monochromegane/go-gitignore"
)

// GitignoreMatcher matches paths against the .gitignore files met while
// walking a tree, plus the repository's .git/info/exclude. Each layer applies
// to the directory that holds it and everything below.
type GitignoreMatcher struct {
	layers []gitignoreLayer
}

type gitignoreLayer struct {
	dir     string
	matcher gitignore.IgnoreMatcher
}

// NewGitignoreMatcher creates a matcher rooted at root (an absolute path) and
// loads root/.git/info/exclude when present. Unreadable files are skipped.
func NewGitignoreMatcher(root string) *GitignoreMatcher {
	m := &GitignoreMatcher{}
	m.load(root, filepath.Join(root, ".git", "info", "exclude"))
	return m
}

// Enter loads dir/.gitignore, if any. Called for every directory the walk
// descends into, parents before children.
func (m *GitignoreMatcher) Enter(dir string) {
	m.trim(dir)
	m.load(dir, filepath.Join(dir, ".gitignore"))
}

func (m *GitignoreMatcher) load(dir, file string) {
	if _, err := os.Stat(file); err != nil {
		return
	}
	matcher, err := gitignore.NewGitIgnore(file, dir)
	if err != nil {
		return
	}
	m.layers = append(m.layers, gitignoreLayer{dir: dir, matcher: matcher})
}

// trim drops layers that do not contain path. The walk is depth-first, so
// stale layers are always at the top of the stack.
func (m *GitignoreMatcher) trim(path string) {
	for len(m.layers) > 0 && !within(path, m.layers[len(m.layers)-1].dir) {
		m.layers = m.layers[:len(m.layers)-1]
	}
}

// Matches reports whether path (absolute) is ignored by any applicable layer.
func (m *GitignoreMatcher) Matches(path string, isDir bool) bool {
	if m == nil || len(m.layers) == 0 {
		return false
	}
	m.trim(path)
	for _, l := range m.layers {
		if l.matcher.Match(path, isDir) {
			return true
		}
	}
	return false
}

// within reports whether path is dir itself or lies below it.
func within(path, dir string) bool {
	if path == dir {
		return true
	}
	return strings.HasPrefix(path, strings.TrimSuffix(dir, string(filepath.Separator))+string(filepath.Separator))
}
