// Package gitstatus lists the files git considers changed, as alternate base
// sets for the finder. Paths are relative to the directory being searched.
package gitstatus

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNoDefaultBranch is returned by Changed when neither origin/HEAD nor a
// main/master branch exists.
var ErrNoDefaultBranch = errors.New("no default branch found")

// Dirty returns files with uncommitted changes under root: modified, staged,
// deleted and untracked. Rename sources are dropped; the new name is kept.
func Dirty(ctx context.Context, root string) ([]string, error) {
	prefix, err := showPrefix(ctx, root)
	if err != nil {
		return nil, err
	}
	out, err := git(ctx, root, "status", "--porcelain", "-z", "--untracked-files=all", "--", ".")
	if err != nil {
		return nil, err
	}
	return ParsePorcelain(out, prefix), nil
}

// Changed returns files that differ between the working tree and the merge
// base of HEAD with the default branch, followed by dirty files not already
// listed.
func Changed(ctx context.Context, root string) ([]string, error) {
	branch, err := DefaultBranch(ctx, root)
	if err != nil {
		return nil, err
	}
	base, err := git(ctx, root, "merge-base", "HEAD", branch)
	if err != nil {
		return nil, err
	}
	out, err := git(ctx, root, "diff", "--name-only", "-z", "--relative", strings.TrimSpace(string(base)))
	if err != nil {
		return nil, err
	}
	files := splitNUL(out)

	dirty, err := Dirty(ctx, root)
	if err != nil {
		return nil, err
	}
	return union(files, dirty), nil
}

// DefaultBranch resolves the branch that Changed compares against: the
// remote's HEAD when configured, else a local main or master.
func DefaultBranch(ctx context.Context, root string) (string, error) {
	if out, err := git(ctx, root, "symbolic-ref", "--quiet", "--short", "refs/remotes/origin/HEAD"); err == nil {
		if b := strings.TrimSpace(string(out)); b != "" {
			return b, nil
		}
	}
	for _, b := range []string{"main", "master"} {
		if _, err := git(ctx, root, "rev-parse", "--verify", "--quiet", "refs/heads/"+b); err == nil {
			return b, nil
		}
	}
	return "", ErrNoDefaultBranch
}

// ParsePorcelain parses `git status --porcelain -z` output. Entry paths are
// relative to the repository top level; only entries under prefix (the
// searched directory, as given by `git rev-parse --show-prefix`) are kept,
// with prefix removed.
func ParsePorcelain(out []byte, prefix string) []string {
	entries := splitNUL(out)
	var files []string
	for i := 0; i < len(entries); i++ {
		e := entries[i]
		if len(e) < 4 || e[2] != ' ' {
			continue
		}
		status, path := e[:2], e[3:]
		// Renames and copies are followed by their source path.
		if strings.ContainsAny(status, "RC") {
			i++
		}
		if strings.TrimSpace(status) == "" {
			continue
		}
		if rel, ok := strings.CutPrefix(path, prefix); ok && rel != "" {
			files = append(files, rel)
		}
	}
	return files
}

func showPrefix(ctx context.Context, root string) (string, error) {
	out, err := git(ctx, root, "rev-parse", "--show-prefix")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

func git(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", append([]string{"-C", dir}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("git %s: %s: %w", args[0], msg, err)
		}
		return nil, fmt.Errorf("git %s: %w", args[0], err)
	}
	return stdout.Bytes(), nil
}

func splitNUL(out []byte) []string {
	var parts []string
	for _, p := range strings.Split(string(out), "\x00") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

func union(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, f := range list {
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out
}
