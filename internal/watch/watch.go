// Package watch reports when files under a directory tree change, coalescing
// bursts of filesystem events into single notifications.
package watch

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/glancr/internal/filesearch"
)

// DefaultDelay is how long the tree must stay quiet before a change is
// reported.
const DefaultDelay = 300 * time.Millisecond

// Watcher watches every directory under a root, skipping ignored ones.
type Watcher struct {
	fw      *fsnotify.Watcher
	root    string
	rules   *filesearch.Rules
	delay   time.Duration
	changes chan struct{}
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// New starts watching root. Directories matched by rules, and .git, are not
// watched and events under them are dropped.
func New(root string, rules *filesearch.Rules, delay time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if delay <= 0 {
		delay = DefaultDelay
	}
	root, err = filepath.Abs(root)
	if err != nil {
		fw.Close()
		return nil, err
	}
	w := &Watcher{
		fw:      fw,
		root:    root,
		rules:   rules,
		delay:   delay,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	if err := w.addTree(root); err != nil {
		fw.Close()
		return nil, err
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Changes delivers one value per quiet period that followed at least one
// relevant event. It is closed by Close.
func (w *Watcher) Changes() <-chan struct{} { return w.changes }

// Close stops the watcher and waits for its goroutine to exit.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fw.Close()
		w.wg.Wait()
		close(w.changes)
	})
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	var quiet <-chan time.Time
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				// New directories need their own watches.
				_ = w.addTree(ev.Name)
			}
			quiet = time.After(w.delay)
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			log.Warn().Err(err).Msg("watch: fsnotify error")
		case <-quiet:
			quiet = nil
			select {
			case w.changes <- struct{}{}:
			default:
			}
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	rel, err := filepath.Rel(w.root, ev.Name)
	if err != nil {
		return false
	}
	return !w.ignoredDir(rel) && !w.rules.IsIgnored(rel)
}

// ignoredDir reports whether rel is, or is inside, a directory that is not
// watched.
func (w *Watcher) ignoredDir(rel string) bool {
	if rel == "." {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if part == ".git" {
			return true
		}
	}
	return w.rules.IsIgnoredDir(rel)
}

// addTree watches dir and every non-ignored directory below it. Unreadable
// entries are skipped; only a failure to watch dir itself is returned.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			return filepath.SkipDir
		}
		if !d.IsDir() {
			return nil
		}
		if rel, rerr := filepath.Rel(w.root, path); rerr == nil && w.ignoredDir(rel) {
			return filepath.SkipDir
		}
		if err := w.fw.Add(path); err != nil {
			if path == dir {
				return err
			}
			log.Debug().Err(err).Str("dir", path).Msg("watch: add failed")
		}
		return nil
	})
}

// ErrClosed is returned by Wait after Close.
var ErrClosed = errors.New("watcher closed")

// Wait blocks until the next change notification or until the watcher is
// closed.
func (w *Watcher) Wait() error {
	if _, ok := <-w.changes; !ok {
		return ErrClosed
	}
	return nil
}
