package filesearch

import (
	"bufio"
	"context"
	"os"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"
)

// maxScanLine bounds a single line during content search. Longer lines end
// the scan for that file as "no match".
const maxScanLine = 1024 * 1024

// Filter returns the subset of files matching query under mode, preserving
// the order of files. An empty query returns files unchanged. In contents
// mode an invalid regular expression yields an empty result. Paths are
// resolved against root for reading. A cancelled context returns nil.
func Filter(ctx context.Context, root string, files []string, query string, mode Mode) []string {
	m := NewMatcher(query, mode)
	if m.Empty() {
		return files
	}
	if mode == ModeFilename {
		return m.MatchPaths(files)
	}
	if !m.Active() {
		return []string{}
	}
	return filterContents(ctx, root, files, m)
}

// filterContents searches files concurrently. Each worker writes only its
// own slot, so the result keeps input order regardless of scheduling.
func filterContents(ctx context.Context, root string, files []string, m *Matcher) []string {
	hits := make([]bool, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, f := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			hits[i] = FirstMatchLine(Resolve(root, f), m) > 0
			return nil
		})
	}
	if err := g.Wait(); err != nil || ctx.Err() != nil {
		return nil
	}

	out := make([]string, 0, len(files))
	for i, f := range files {
		if hits[i] {
			out = append(out, f)
		}
	}
	return out
}

// FirstMatchLine streams the file at path and returns the 1-based number of
// the first line m matches, or 0 when nothing matches, the file cannot be
// read, or binary content (a NUL byte) is met before a match.
func FirstMatchLine(path string, m *Matcher) int {
	if !m.Active() {
		return 0
	}
	f, err := os.Open(path)
	if err != nil {
		return 0
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxScanLine)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if strings.IndexByte(line, 0) >= 0 {
			return 0
		}
		if m.MatchLine(strings.TrimSuffix(line, "\r")) {
			return lineNum
		}
	}
	return 0
}

// Clamp keeps a selection index inside a list of length n: it returns
// min(index, n-1), or 0 when the list is empty.
func Clamp(index, n int) int {
	if n <= 0 || index < 0 {
		return 0
	}
	if index >= n {
		return n - 1
	}
	return index
}
