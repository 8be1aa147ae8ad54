// Package config handles configuration loading from TOML (or legacy YAML)
// files and environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/xonecas/glancr/internal/constants"
	"github.com/xonecas/glancr/internal/filesearch"
	"github.com/xonecas/glancr/internal/launcher"
)

// Config is the root configuration structure.
type Config struct {
	// OpenCommand opens the selected file; the path is appended as the last
	// argument.
	OpenCommand     string   `toml:"open_command" yaml:"open_command"`
	IgnoredDirs     []string `toml:"ignored_dirs" yaml:"ignored_dirs"`
	IgnoredPatterns []string `toml:"ignored_patterns" yaml:"ignored_patterns"`
	// Hidden includes dot-files and dot-directories.
	Hidden    bool `toml:"hidden" yaml:"hidden"`
	GitIgnore bool `toml:"git_ignore" yaml:"git_ignore"`
	// FilterVCSSets runs the dirty and changed sets through the same ignore
	// rules and binary check as discovery.
	FilterVCSSets bool   `toml:"filter_vcs_sets" yaml:"filter_vcs_sets"`
	Watch         bool   `toml:"watch" yaml:"watch"`
	DefaultMode   string `toml:"default_mode" yaml:"default_mode"`
	SyntaxTheme   string `toml:"syntax_theme" yaml:"syntax_theme"`
	LogLevel      string `toml:"log_level" yaml:"log_level"`

	// Path is the file the configuration was read from, "" for defaults.
	Path string `toml:"-" yaml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		OpenCommand:     "cursor",
		IgnoredDirs:     append([]string(nil), filesearch.DefaultIgnoredDirs...),
		IgnoredPatterns: append([]string(nil), filesearch.DefaultIgnoredPatterns...),
		Hidden:          true,
		GitIgnore:       true,
		FilterVCSSets:   true,
		DefaultMode:     filesearch.ModeContents.String(),
		SyntaxTheme:     constants.SyntaxTheme,
		LogLevel:        zerolog.InfoLevel.String(),
	}
}

// Load reads configuration and applies environment variable overrides. An
// explicit path must exist. With path empty, the first of
// ~/.config/glancr/config.toml and ~/.glancr.yml that exists is used, and
// defaults apply when neither does.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = findConfig()
	} else if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	if path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
		cfg.Path = path
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Candidates lists the files Load searches when no path is given, in order.
func Candidates() []string {
	var out []string
	if dir, err := DataDir(); err == nil {
		out = append(out, filepath.Join(dir, "config.toml"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		out = append(out, filepath.Join(home, ".glancr.yml"))
	}
	return out
}

func findConfig() string {
	for _, p := range Candidates() {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

func decodeFile(path string, cfg *Config) error {
	//nolint:gosec // G304: path comes from the user's own flag or home dir
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		// Legacy files may carry keys this version no longer reads.
		dec := yaml.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	default:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, k := range undecoded {
				keys[i] = k.String()
			}
			return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
		}
		return nil
	}
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	var errs []error

	if _, err := filesearch.ParseMode(c.DefaultMode); err != nil {
		errs = append(errs, fmt.Errorf("default_mode=%q must be filename or contents", c.DefaultMode))
	}
	if _, ok := styles.Registry[strings.ToLower(c.SyntaxTheme)]; !ok {
		errs = append(errs, fmt.Errorf("syntax_theme=%q is not a known theme", c.SyntaxTheme))
	}
	if _, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("log_level=%q is invalid: %v", c.LogLevel, err))
	}
	if _, err := launcher.Command(c.OpenCommand, "x"); err != nil {
		errs = append(errs, fmt.Errorf("open_command=%q is invalid: %v", c.OpenCommand, err))
	}
	for i, d := range c.IgnoredDirs {
		if strings.Trim(strings.TrimSpace(d), "/") == "" {
			errs = append(errs, fmt.Errorf("ignored_dirs[%d]=%q is empty", i, d))
		}
	}
	for i, p := range c.IgnoredPatterns {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, fmt.Errorf("ignored_patterns[%d] is empty", i))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Rules returns the path ignore rules the configuration describes.
func (c *Config) Rules() *filesearch.Rules {
	return filesearch.NewRules(nonNil(c.IgnoredDirs), nonNil(c.IgnoredPatterns))
}

// DiscoverOptions returns the discovery policy the configuration describes.
func (c *Config) DiscoverOptions() filesearch.DiscoverOptions {
	return filesearch.DiscoverOptions{
		Rules:     c.Rules(),
		Hidden:    c.Hidden,
		GitIgnore: c.GitIgnore,
	}
}

// Mode returns the configured starting search mode.
func (c *Config) Mode() filesearch.Mode {
	m, _ := filesearch.ParseMode(c.DefaultMode)
	return m
}

// Level returns the configured log level, info when unparsable.
func (c *Config) Level() zerolog.Level {
	l, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil {
		return zerolog.InfoLevel
	}
	return l
}

// nonNil keeps an explicitly emptied list distinct from "use defaults".
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// applyEnvOverrides applies environment variable overrides to the configuration.
func applyEnvOverrides(cfg *Config) {
	for _, setter := range []struct {
		env   string
		apply func(string)
	}{
		{"GLANCR_OPEN_COMMAND", func(v string) {
			if v != "" {
				cfg.OpenCommand = v
			}
		}},
		{"GLANCR_THEME", func(v string) {
			if v != "" {
				cfg.SyntaxTheme = v
			}
		}},
	} {
		setter.apply(os.Getenv(setter.env))
	}
}

// DataDir returns the path to the glancr data directory (~/.config/glancr).
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "glancr"), nil
}

// EnsureDataDir creates the data directory if it doesn't exist.
func EnsureDataDir() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", err
	}
	return dir, nil
}
