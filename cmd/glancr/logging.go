package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/glancr/internal/config"
)

const logFileName = "glancr.log"

// setupLogging points the global zerolog logger at the data directory log
// file. The terminal belongs to the TUI, so nothing is written to stderr.
// The returned func closes the file.
func setupLogging(cfg *config.Config, debug bool) func() {
	level := cfg.Level()
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	var out io.Writer = io.Discard
	closeFn := func() {}
	if dir, err := config.EnsureDataDir(); err == nil {
		//nolint:gosec // G304: fixed name under the user's config dir
		f, err := os.OpenFile(filepath.Join(dir, logFileName), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err == nil {
			out = f
			closeFn = func() { _ = f.Close() }
		}
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	log.Debug().Str("level", level.String()).Msg("logging started")
	return closeFn
}
