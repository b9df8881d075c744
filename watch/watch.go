// Package watch runs a handler on the files matching a glob pattern each time
// they are written.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/golang/glog"
)

// DefaultWindow is the default debouncing window.
const DefaultWindow = 300 * time.Millisecond

// A Watcher watches the files matching a doublestar pattern, such as "docs/**/*.md".
type Watcher struct {
	pattern string
	ignore  func(path string) bool
	fs      *fsnotify.Watcher
	deb     *Debouncer
	mu      sync.Mutex // Serializes calls to the handler
}

// New returns a watcher for pattern. Batches of written files are passed to
// handle, one batch at a time. Files for which ignore returns true are never
// reported; ignore may be nil.
func New(pattern string, window time.Duration, ignore func(string) bool, handle func([]string)) (*Watcher, error) {
	// Event paths are clean, so the pattern must be too.
	pattern = filepath.Clean(pattern)
	if !doublestar.ValidatePathPattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("could not create watcher: %v", err)
	}
	w := &Watcher{pattern: pattern, ignore: ignore, fs: fsw}
	w.deb = NewDebouncer(window, func(paths []string) {
		w.mu.Lock()
		defer w.mu.Unlock()
		handle(paths)
	})
	base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
	if err := w.addTree(filepath.FromSlash(base)); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

// addTree watches dir and all its subdirectories.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		glog.V(2).Infof("watching %s", path)
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("could not watch %q: %v", path, err)
		}
		return nil
	})
}

// Match reports whether path is reported by the watcher.
func (w *Watcher) Match(path string) bool {
	if w.ignore != nil && w.ignore(path) {
		return false
	}
	ok, err := doublestar.PathMatch(w.pattern, path)
	return err == nil && ok
}

// Run processes file system events until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()
	defer w.deb.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.event(ev)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			glog.Warningf("watch error: %v", err)
		}
	}
}

func (w *Watcher) event(ev fsnotify.Event) {
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			if err := w.addTree(ev.Name); err != nil {
				glog.Warningf("%v", err)
			}
			return
		}
	}
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return
	}
	if w.Match(ev.Name) {
		glog.V(1).Infof("%s changed", ev.Name)
		w.deb.Add(ev.Name)
	}
}
