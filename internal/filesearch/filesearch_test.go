package filesearch

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// writeTree creates files under dir from a path -> content map.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func slashed(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.ToSlash(p)
	}
	return out
}

func TestDiscover(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		".env":                      "KEY=value",
		".gitignore":                "generated/\n*.tmp\n",
		"app.log":                   "log line",
		"bin.dat":                   "abc\x00def",
		"cmd/server/main.go":        "package main",
		"generated/out.go":          "package generated",
		"main.go":                   "package main",
		"node_modules/x/index.js":   "module.exports = 1",
		"notes.tmp":                 "scratch",
		"sub/.gitignore":            "secret.txt\n",
		"sub/ok.txt":                "fine",
		"sub/secret.txt":            "hidden by nested gitignore",
		"web/app.min.js":            "minified",
		"web/Coverage/report.html":  "<html>",
		"web/src/component.tsx":     "export {}",
		"web/.yarn/cache/pkg.zip.x": "cached",
	})

	files, err := Discover(context.Background(), tmpDir, DefaultDiscoverOptions())
	if err != nil {
		t.Fatalf("discover failed: %v", err)
	}

	want := []string{
		".env",
		".gitignore",
		"cmd/server/main.go",
		"main.go",
		"sub/.gitignore",
		"sub/ok.txt",
		"web/src/component.tsx",
	}
	if got := slashed(files); !reflect.DeepEqual(got, want) {
		t.Errorf("discover:\n got %v\nwant %v", got, want)
	}
}

func TestDiscoverPolicies(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		".gitignore":       "generated/\n",
		".config/app.toml": "x = 1",
		"generated/out.go": "package generated",
		"main.go":          "package main",
	})

	tests := []struct {
		name string
		opts DiscoverOptions
		want []string
	}{
		{
			name: "defaults",
			opts: DefaultDiscoverOptions(),
			want: []string{".config/app.toml", ".gitignore", "main.go"},
		},
		{
			name: "hide dot-files",
			opts: DiscoverOptions{Hidden: false, GitIgnore: true},
			want: []string{"main.go"},
		},
		{
			name: "ignore gitignore",
			opts: DiscoverOptions{Hidden: true, GitIgnore: false},
			want: []string{".config/app.toml", ".gitignore", "generated/out.go", "main.go"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := Discover(context.Background(), tmpDir, tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if got := slashed(files); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiscoverExcludesBinaryRegardlessOfExtension(t *testing.T) {
	tmpDir := t.TempDir()
	late := make([]byte, 2048)
	for i := range late {
		late[i] = 'a'
	}
	late[1500] = 0
	writeTree(t, tmpDir, map[string]string{
		"code.go":  "package x\x00",
		"late.txt": string(late),
		"text.md":  "# title",
	})

	files, err := Discover(context.Background(), tmpDir, DefaultDiscoverOptions())
	if err != nil {
		t.Fatal(err)
	}
	// A NUL past the sniffed prefix is not detected.
	want := []string{"late.txt", "text.md"}
	if got := slashed(files); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDiscoverSkipsSymlinks(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{"real.txt": "content"})
	if err := os.Symlink(filepath.Join(tmpDir, "real.txt"), filepath.Join(tmpDir, "link.txt")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	files, err := Discover(context.Background(), tmpDir, DefaultDiscoverOptions())
	if err != nil {
		t.Fatal(err)
	}
	if got := slashed(files); !reflect.DeepEqual(got, []string{"real.txt"}) {
		t.Errorf("got %v, want [real.txt]", got)
	}
}

func TestDiscoverCancelled(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{"a.txt": "a", "b/c.txt": "c"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Discover(ctx, tmpDir, DefaultDiscoverOptions()); err == nil {
		t.Fatal("expected context error")
	}
}

func TestIsBinary(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		"text.txt":  "plain text\n",
		"nul.bin":   "\x00",
		"empty.txt": "",
	})

	tests := []struct {
		name string
		want bool
	}{
		{"text.txt", false},
		{"nul.bin", true},
		{"empty.txt", false},
		{"missing.txt", false},
	}
	for _, tt := range tests {
		if got := IsBinary(filepath.Join(tmpDir, tt.name)); got != tt.want {
			t.Errorf("IsBinary(%s) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSanitize(t *testing.T) {
	tmpDir := t.TempDir()
	writeTree(t, tmpDir, map[string]string{
		"keep.go":             "package x",
		"debug.log":           "noise",
		"blob.bin":            "\x00\x01",
		"node_modules/m/i.js": "x",
		"dir/inner.txt":       "inner",
	})

	in := []string{"keep.go", "debug.log", "blob.bin", "node_modules/m/i.js", "deleted.go", "dir", "dir/inner.txt"}
	got := slashed(Sanitize(tmpDir, in, nil))
	want := []string{"keep.go", "dir/inner.txt"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
