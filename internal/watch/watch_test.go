package watch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/xonecas/glancr/internal/filesearch"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func waitChange(t *testing.T, w *Watcher, within time.Duration) bool {
	t.Helper()
	select {
	case _, ok := <-w.Changes():
		return ok
	case <-time.After(within):
		return false
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	root := t.TempDir()
	w, err := New(root, filesearch.NewRules(nil, nil), 50*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if err := os.WriteFile(filepath.Join(root, "a.go"), []byte("package a\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !waitChange(t, w, 3*time.Second) {
		t.Fatal("no change reported for a new file")
	}

	// A directory created after start is watched too.
	sub := filepath.Join(root, "pkg")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if !waitChange(t, w, 3*time.Second) {
		t.Fatal("no change reported for a new directory")
	}
	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(sub, "b.go"), []byte("package pkg\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !waitChange(t, w, 3*time.Second) {
		t.Fatal("no change reported inside a new directory")
	}
}

func TestWatcherCoalescesBursts(t *testing.T) {
	root := t.TempDir()
	w, err := New(root, nil, 200*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	for i := range 5 {
		name := filepath.Join(root, string(rune('a'+i))+".txt")
		if err := os.WriteFile(name, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if !waitChange(t, w, 3*time.Second) {
		t.Fatal("no change reported")
	}
	if waitChange(t, w, 500*time.Millisecond) {
		t.Error("a burst should produce a single notification")
	}
}

func TestWatcherIgnoresRuledPaths(t *testing.T) {
	root := t.TempDir()
	for _, d := range []string{"node_modules/pkg", ".git"} {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	w, err := New(root, filesearch.NewRules(nil, nil), 50*time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	for _, f := range []string{"node_modules/pkg/index.js", ".git/index", "debug.log"} {
		if err := os.WriteFile(filepath.Join(root, f), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if waitChange(t, w, 400*time.Millisecond) {
		t.Error("changes in ignored paths must not be reported")
	}
}

func TestWatcherClose(t *testing.T) {
	w, err := New(t.TempDir(), nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	if w.delay != DefaultDelay {
		t.Errorf("delay = %v, want %v", w.delay, DefaultDelay)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if err := w.Wait(); !errors.Is(err, ErrClosed) {
		t.Errorf("Wait after Close = %v, want ErrClosed", err)
	}
}

func TestNewMissingRoot(t *testing.T) {
	if _, err := New(filepath.Join(t.TempDir(), "missing"), nil, 0); err == nil {
		t.Error("expected an error for a missing root")
	}
}
