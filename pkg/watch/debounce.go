package watch

import (
	"sort"
	"sync"
	"time"
)

// Debouncer collects paths from bursts of events and hands them to a
// callback once no new event has arrived for the configured interval.
// Callbacks never run concurrently.
type Debouncer struct {
	interval time.Duration
	fn       func(paths []string)

	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]struct{}
	stopped bool

	// runMu serializes callbacks from timers that fire back to back.
	runMu sync.Mutex
}

// NewDebouncer creates a debouncer that calls fn with the sorted set of
// paths triggered since the previous call.
func NewDebouncer(interval time.Duration, fn func(paths []string)) *Debouncer {
	return &Debouncer{
		interval: interval,
		fn:       fn,
		pending:  make(map[string]struct{}),
	}
}

// Trigger records path and restarts the quiet period.
func (d *Debouncer) Trigger(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.pending[path] = struct{}{}

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.interval, d.fire)
}

func (d *Debouncer) fire() {
	d.runMu.Lock()
	defer d.runMu.Unlock()

	d.mu.Lock()
	if d.stopped || len(d.pending) == 0 {
		d.mu.Unlock()
		return
	}
	paths := make([]string, 0, len(d.pending))
	for p := range d.pending {
		paths = append(paths, p)
	}
	d.pending = make(map[string]struct{})
	d.mu.Unlock()

	sort.Strings(paths)
	d.fn(paths)
}

// Stop cancels any pending callback. It is safe to call more than once.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.pending = make(map[string]struct{})
}
