package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/xonecas/glancr/internal/config"
	"github.com/xonecas/glancr/internal/filesearch"
)

// runFilter prints the files under root matching query, one per line. In
// contents mode each line is path:line, the line being the first match. An
// invalid regular expression matches nothing.
func runFilter(ctx context.Context, w io.Writer, root string, cfg *config.Config, query string) error {
	files, err := filesearch.Discover(ctx, root, cfg.DiscoverOptions())
	if err != nil {
		return fmt.Errorf("discover %s: %w", root, err)
	}
	mode := cfg.Mode()
	matcher := filesearch.NewMatcher(query, mode)

	colored := false
	if f, ok := w.(*os.File); ok {
		colored = isatty.IsTerminal(f.Fd()) && !color.NoColor
	}
	pathColor := color.New(color.FgCyan)
	lineColor := color.New(color.FgYellow)
	if !colored {
		pathColor.DisableColor()
		lineColor.DisableColor()
	}

	for _, path := range filesearch.Filter(ctx, root, files, query, mode) {
		if mode == filesearch.ModeContents && matcher.Active() {
			n := filesearch.FirstMatchLine(filesearch.Resolve(root, path), matcher)
			fmt.Fprintf(w, "%s:%s\n", pathColor.Sprint(path), lineColor.Sprint(n))
			continue
		}
		fmt.Fprintln(w, pathColor.Sprint(path))
	}
	return ctx.Err()
}
