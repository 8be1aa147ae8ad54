// Package filesearch discovers candidate files under a root directory and
// filters them by fuzzy filename match or regex content search.
package filesearch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xonecas/glancr/internal/constants"
)

// DiscoverOptions configures the walk policy.
type DiscoverOptions struct {
	Rules     *Rules // Path ignore rules (nil = defaults)
	Hidden    bool   // Include dot-files and dot-directories
	GitIgnore bool   // Honor .gitignore files and .git/info/exclude
}

// DefaultDiscoverOptions shows dot-files and honors .gitignore.
func DefaultDiscoverOptions() DiscoverOptions {
	return DiscoverOptions{
		Rules:     NewRules(nil, nil),
		Hidden:    true,
		GitIgnore: true,
	}
}

// Discover walks root and returns the root-relative paths of every regular,
// non-ignored, non-binary file in walk order. Entries that fail during the
// walk are skipped; only context cancellation aborts it.
func Discover(ctx context.Context, root string, opts DiscoverOptions) ([]string, error) {
	if root == "" {
		root = "."
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}
	if opts.Rules == nil {
		opts.Rules = NewRules(nil, nil)
	}

	var gi *GitignoreMatcher
	if opts.GitIgnore {
		gi = NewGitignoreMatcher(absRoot)
	}

	var files []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if d != nil && d.IsDir() && path != absRoot {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if path == absRoot {
			if gi != nil {
				gi.Enter(path)
			}
			return nil
		}
		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if skipDir(relPath, path, d, gi, opts) {
				return filepath.SkipDir
			}
			if gi != nil {
				gi.Enter(path)
			}
			return nil
		}
		if keepFile(relPath, path, d, gi, opts) {
			files = append(files, relPath)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Debug().Str("root", absRoot).Int("files", len(files)).Msg("filesearch: discovered")
	return files, nil
}

func skipDir(relPath, path string, d fs.DirEntry, gi *GitignoreMatcher, opts DiscoverOptions) bool {
	if d.Name() == ".git" {
		return true
	}
	if !opts.Hidden && strings.HasPrefix(d.Name(), ".") {
		return true
	}
	if opts.Rules.IsIgnoredDir(relPath) {
		return true
	}
	return gi != nil && gi.Matches(path, true)
}

func keepFile(relPath, path string, d fs.DirEntry, gi *GitignoreMatcher, opts DiscoverOptions) bool {
	// Symlinks, devices, sockets and pipes are excluded before any content check.
	if !d.Type().IsRegular() || d.Name() == ".git" {
		return false
	}
	if !opts.Hidden && strings.HasPrefix(d.Name(), ".") {
		return false
	}
	if gi != nil && gi.Matches(path, false) {
		return false
	}
	if opts.Rules.IsIgnored(relPath) {
		return false
	}
	return !IsBinary(path)
}

// IsBinary reports whether the first BinarySniffLen bytes of the file contain
// a NUL byte. Unreadable files are not considered binary.
func IsBinary(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	buf := make([]byte, constants.BinarySniffLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false
	}
	return bytes.IndexByte(buf[:n], 0) >= 0
}

// Sanitize applies the discovery invariants to a file list produced some
// other way (e.g. from version-control status): only existing regular files
// that are neither ignored nor binary survive, in input order. Paths are
// resolved against root.
func Sanitize(root string, files []string, rules *Rules) []string {
	if rules == nil {
		rules = NewRules(nil, nil)
	}
	out := make([]string, 0, len(files))
	for _, f := range files {
		full := Resolve(root, f)
		info, err := os.Lstat(full)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if rules.IsIgnored(f) || IsBinary(full) {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Resolve joins a root-relative path onto root. Absolute paths are returned
// unchanged.
func Resolve(root, path string) string {
	if filepath.IsAbs(path) || root == "" || root == "." {
		return path
	}
	return filepath.Join(root, path)
}
