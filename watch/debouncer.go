package watch

import (
	"sort"
	"sync"
	"time"
)

// A Debouncer groups the paths it receives and hands them over in batches,
// once no new path has been added for a given time window.
type Debouncer struct {
	window  time.Duration
	paths   map[string]struct{}
	mu      sync.Mutex
	timer   *time.Timer
	onFlush func([]string)
	stopped bool
}

// NewDebouncer returns a debouncer calling onFlush with sorted, distinct paths.
func NewDebouncer(window time.Duration, onFlush func([]string)) *Debouncer {
	return &Debouncer{
		window:  window,
		paths:   make(map[string]struct{}),
		onFlush: onFlush,
	}
}

// Add adds path to the current batch and restarts the window.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.paths[path] = struct{}{}
	d.timer = time.AfterFunc(d.window, d.flush)
}

func (d *Debouncer) flush() {
	d.mu.Lock()
	paths := d.takeLocked()
	d.mu.Unlock()
	if len(paths) > 0 && d.onFlush != nil {
		d.onFlush(paths)
	}
}

func (d *Debouncer) takeLocked() []string {
	paths := make([]string, 0, len(d.paths))
	for p := range d.paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	d.paths = make(map[string]struct{})
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	return paths
}

// Stop flushes the pending paths, if any. Paths added afterwards are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	paths := d.takeLocked()
	d.mu.Unlock()
	if len(paths) > 0 && d.onFlush != nil {
		d.onFlush(paths)
	}
}
