package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/xonecas/glancr/internal/filesearch"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// isolate points the home directory at an empty temp dir and clears env
// overrides.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("GLANCR_OPEN_COMMAND", "")
	t.Setenv("GLANCR_THEME", "")
	return home
}

func TestLoadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != "" {
		t.Errorf("Path = %q, want none", cfg.Path)
	}
	if cfg.OpenCommand != "cursor" || !cfg.Hidden || !cfg.GitIgnore || !cfg.FilterVCSSets || cfg.Watch {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Mode() != filesearch.ModeContents {
		t.Errorf("default mode = %v, want contents", cfg.Mode())
	}
	if !reflect.DeepEqual(cfg.IgnoredDirs, filesearch.DefaultIgnoredDirs) {
		t.Errorf("IgnoredDirs = %v", cfg.IgnoredDirs)
	}
	if cfg.Level() != zerolog.InfoLevel {
		t.Errorf("Level = %v", cfg.Level())
	}
}

func TestLoadTOML(t *testing.T) {
	isolate(t)
	path := writeConfig(t, t.TempDir(), "glancr.toml", `
open_command = "code --reuse-window"
ignored_dirs = ["/vendor/", "fixtures"]
ignored_patterns = []
hidden = false
default_mode = "filename"
syntax_theme = "monokai"
log_level = "debug"
watch = true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Path != path {
		t.Errorf("Path = %q", cfg.Path)
	}
	if cfg.OpenCommand != "code --reuse-window" || cfg.Hidden || !cfg.Watch {
		t.Errorf("unexpected values: %+v", cfg)
	}
	if !cfg.GitIgnore {
		t.Error("unset keys keep their defaults")
	}
	if cfg.Mode() != filesearch.ModeFilename || cfg.Level() != zerolog.DebugLevel {
		t.Errorf("mode %v level %v", cfg.Mode(), cfg.Level())
	}

	rules := cfg.Rules()
	if !rules.IsIgnored("testdata/fixtures/x.json") {
		t.Error("custom dir marker should apply")
	}
	if rules.IsIgnored("app.log") {
		t.Error("an empty pattern list disables pattern rules")
	}
	if rules.IsIgnored("node_modules/x.js") {
		t.Error("custom dirs replace the defaults")
	}
	if opts := cfg.DiscoverOptions(); opts.Hidden || !opts.GitIgnore {
		t.Errorf("DiscoverOptions = %+v", opts)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := isolate(t)

	writeConfig(t, home, ".glancr.yml", "open_command: zed\ncolour: red\nignored_dirs:\n  - /node_modules/\n")
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OpenCommand != "zed" || !strings.HasSuffix(cfg.Path, ".glancr.yml") {
		t.Errorf("legacy yaml not loaded: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.IgnoredDirs, []string{"/node_modules/"}) {
		t.Errorf("IgnoredDirs = %v", cfg.IgnoredDirs)
	}
	if !reflect.DeepEqual(cfg.IgnoredPatterns, filesearch.DefaultIgnoredPatterns) {
		t.Errorf("absent yaml keys keep defaults, got %v", cfg.IgnoredPatterns)
	}

	writeConfig(t, home, ".config/glancr/config.toml", `open_command = "hx"`)
	cfg, err = Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OpenCommand != "hx" {
		t.Errorf("config.toml should win over the legacy file, got %q", cfg.OpenCommand)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("GLANCR_OPEN_COMMAND", "nvim")
	t.Setenv("GLANCR_THEME", "dracula")
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OpenCommand != "nvim" || cfg.SyntaxTheme != "dracula" {
		t.Errorf("env overrides not applied: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"malformed toml", "bad.toml", "open_command = ", "failed to parse config"},
		{"malformed yaml", "bad.yml", "open_command: [unclosed", "failed to parse config"},
		{"unknown toml key", "extra.toml", "colour = \"red\"", "unknown keys: colour"},
		{"bad mode", "mode.toml", `default_mode = "fuzzy"`, "default_mode"},
		{"bad theme", "theme.toml", `syntax_theme = "no-such-theme"`, "syntax_theme"},
		{"bad level", "level.toml", `log_level = "loud"`, "log_level"},
		{"bad command", "cmd.toml", `open_command = "code \"unterminated"`, "open_command"},
		{"empty dir marker", "dirs.toml", `ignored_dirs = ["/"]`, "ignored_dirs[0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, dir, tt.file, tt.content)
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got %v, want error containing %q", err, tt.wantErr)
			}
		})
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("an explicit missing path is an error")
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	cfg := Default()
	cfg.DefaultMode = "x"
	cfg.LogLevel = "y"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected errors")
	}
	msg := err.Error()
	if !strings.Contains(msg, "default_mode") || !strings.Contains(msg, "log_level") {
		t.Errorf("errors should be joined: %q", msg)
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("defaults must validate: %v", err)
	}
}

func TestEnsureDataDir(t *testing.T) {
	home := isolate(t)
	dir, err := EnsureDataDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join(home, ".config", "glancr") {
		t.Errorf("dir = %q", dir)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Errorf("data dir not created: %v", err)
	}
}
