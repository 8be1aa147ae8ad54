package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/xonecas/glancr/internal/config"
	"github.com/xonecas/glancr/internal/filesearch"
	"github.com/xonecas/glancr/internal/tui"
	"github.com/xonecas/glancr/internal/watch"
)

var version = "dev"

type flags struct {
	configPath  string
	mode        string
	hidden      bool
	noVCSIgnore bool
	filter      string
	debug       bool
	checkConfig bool
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:     "glancr [directory]",
		Short:   "Find files by name or contents and preview them",
		Long:    `glancr is an interactive file finder with fuzzy filename search, regex content search and a syntax-highlighted preview.`,
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.checkConfig {
				return checkConfig(cmd, f.configPath)
			}
			root, err := resolveRoot(args)
			if err != nil {
				return err
			}
			cfg, loadErr := loadConfig(cmd, f.configPath)
			if err := applyFlags(cmd, cfg, f); err != nil {
				return err
			}
			closeLog := setupLogging(cfg, f.debug)
			defer closeLog()
			if loadErr != nil {
				log.Warn().Err(loadErr).Msg("config rejected, using defaults")
			}

			if cmd.Flags().Changed("filter") {
				return runFilter(cmd.Context(), cmd.OutOrStdout(), root, cfg, f.filter)
			}
			return runTUI(root, cfg)
		},
	}
	cmd.SetContext(context.Background())

	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "config file (default ~/.config/glancr/config.toml)")
	cmd.Flags().StringVarP(&f.mode, "mode", "m", "", "search mode: filename or contents")
	cmd.Flags().BoolVar(&f.hidden, "hidden", true, "include dot-files and dot-directories")
	cmd.Flags().BoolVar(&f.noVCSIgnore, "no-vcs-ignore", false, "do not honor .gitignore files")
	cmd.Flags().StringVarP(&f.filter, "filter", "f", "", "print files matching `query` and exit")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "log at debug level")
	cmd.Flags().BoolVar(&f.checkConfig, "check-config", false, "validate the config file and exit")

	return cmd
}

// resolveRoot returns the absolute search root from the optional argument.
func resolveRoot(args []string) (string, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", root)
	}
	return abs, nil
}

// loadConfig reads the configuration, falling back to defaults on error so
// the finder still starts. The load error is returned for logging.
func loadConfig(cmd *cobra.Command, path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v. Using default settings.\n", err)
		return config.Default(), err
	}
	return cfg, nil
}

// applyFlags overlays explicitly set flags on cfg.
func applyFlags(cmd *cobra.Command, cfg *config.Config, f flags) error {
	if cmd.Flags().Changed("mode") {
		m, err := filesearch.ParseMode(f.mode)
		if err != nil {
			return err
		}
		cfg.DefaultMode = m.String()
	}
	if cmd.Flags().Changed("hidden") {
		cfg.Hidden = f.hidden
	}
	if f.noVCSIgnore {
		cfg.GitIgnore = false
	}
	return nil
}

func checkConfig(cmd *cobra.Command, path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	src := cfg.Path
	if src == "" {
		src = "defaults (no config file found)"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "config ok: %s\n", src)
	return nil
}

func runTUI(root string, cfg *config.Config) error {
	var w *watch.Watcher
	if cfg.Watch {
		var err error
		w, err = watch.New(root, cfg.Rules(), watch.DefaultDelay)
		if err != nil {
			log.Warn().Err(err).Msg("file watching disabled")
		} else {
			defer w.Close()
		}
	}

	m := tui.New(tui.Options{Root: root, Config: cfg, Watcher: w})
	p := tea.NewProgram(m, tea.WithFilter(tui.MouseEventFilter))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running glancr: %w", err)
	}
	return nil
}
