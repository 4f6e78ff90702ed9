package runner

import (
	"sort"
	"sync"
	"time"
)

// Debouncer collects changed paths and flushes them once no change has
// arrived for the window, or as soon as maxBatch distinct paths are pending.
type Debouncer struct {
	window   time.Duration
	maxBatch int
	pending  map[string]struct{}
	mu       sync.Mutex
	timer    *time.Timer
	onFlush  func([]string)
	stopped  bool
}

// NewDebouncer returns a Debouncer calling onFlush with sorted paths.
func NewDebouncer(window time.Duration, maxBatch int, onFlush func([]string)) *Debouncer {
	return &Debouncer{
		window:   window,
		maxBatch: maxBatch,
		pending:  make(map[string]struct{}),
		onFlush:  onFlush,
	}
}

// Add records a change to path.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()

	if d.stopped {
		d.mu.Unlock()
		return
	}

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	d.pending[path] = struct{}{}

	if d.maxBatch > 0 && len(d.pending) >= d.maxBatch {
		d.flushLocked()
		return
	}

	d.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		if !d.stopped {
			d.flushLocked()
		} else {
			d.mu.Unlock()
		}
	})

	d.mu.Unlock()
}

// flushLocked is called with mu held and releases it.
func (d *Debouncer) flushLocked() {
	batch := make([]string, 0, len(d.pending))
	for path := range d.pending {
		batch = append(batch, path)
	}
	sort.Strings(batch)

	d.pending = make(map[string]struct{})

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	d.mu.Unlock()

	if len(batch) > 0 && d.onFlush != nil {
		d.onFlush(batch)
	}
}

// Stop drops pending changes; later calls to Add are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.pending = make(map[string]struct{})
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
