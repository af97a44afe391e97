package scroll

import (
	"sync"
	"time"
)

// Origin is one scroll-offset sample reported by a strip.
type Origin struct {
	X, Y float64
}

// Debouncer forwards the last value pushed once no other value arrived for the
// quiet period. Emissions run on the timer goroutine.
type Debouncer[T any] struct {
	quiet time.Duration
	emit  func(T)

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	stopped bool
}

// NewDebouncer creates a debouncer calling emit after each quiet period.
func NewDebouncer[T any](quiet time.Duration, emit func(T)) *Debouncer[T] {
	return &Debouncer[T]{quiet: quiet, emit: emit}
}

// Push records v and restarts the quiet period.
func (d *Debouncer[T]) Push(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.gen++
	gen := d.gen
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, func() {
		d.mu.Lock()
		live := d.gen == gen && !d.stopped
		d.mu.Unlock()
		if live {
			d.emit(v)
		}
	})
}

// Cancel drops the pending emission, if any. Later pushes work normally.
func (d *Debouncer[T]) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Stop cancels the pending emission and ignores every later push.
func (d *Debouncer[T]) Stop() {
	d.Cancel()
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()
}
