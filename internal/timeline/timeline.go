// Package timeline serializes view-model mutations onto a single logical thread.
//
// The desktop host runs closures on the fyne event loop; headless hosts and
// tests use Serial, a goroutine draining a FIFO.
package timeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/tartampluch/go-calendar/internal/config"
)

// ErrStopped is returned when waiting on a timeline whose loop has exited.
var ErrStopped = errors.New(config.ErrDispatchStopped)

// Dispatcher schedules fn on the timeline. Do never blocks; closures run in
// submission order.
type Dispatcher interface {
	Do(fn func())
}

// Serial is a Dispatcher backed by one goroutine (see Run).
type Serial struct {
	mu      sync.Mutex
	pending []func()
	wake    chan struct{}
	stopped chan struct{}
	closed  bool
}

// NewSerial creates an idle timeline. Closures queue until Run is called.
func NewSerial() *Serial {
	return &Serial{
		pending: make([]func(), 0, config.DispatchQueueSize),
		wake:    make(chan struct{}, config.ChannelBufferSize),
		stopped: make(chan struct{}),
	}
}

// Do appends fn to the queue. Closures submitted after Run returned are dropped.
func (s *Serial) Do(fn func()) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		slog.Debug(config.ErrDispatchStopped, config.LogKeyComponent, config.CompTimeline)
		return
	}
	s.pending = append(s.pending, fn)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Run drains the queue until ctx is cancelled. It returns nil on cancellation
// so it can sit in an errgroup next to other loops.
func (s *Serial) Run(ctx context.Context) error {
	defer func() {
		s.mu.Lock()
		s.closed = true
		s.pending = nil
		s.mu.Unlock()
		close(s.stopped)
	}()

	for {
		s.mu.Lock()
		batch := s.pending
		s.pending = make([]func(), 0, config.DispatchQueueSize)
		s.mu.Unlock()

		for _, fn := range batch {
			if ctx.Err() != nil {
				return nil
			}
			fn()
		}

		select {
		case <-ctx.Done():
			return nil
		case <-s.wake:
		}
	}
}

// Stopped is closed once Run has returned.
func (s *Serial) Stopped() <-chan struct{} {
	return s.stopped
}

// DoAndWait runs fn on the timeline and blocks until it has completed.
// It must not be called from the timeline itself.
func (s *Serial) DoAndWait(ctx context.Context, fn func()) error {
	_, err := Query(ctx, s, func() struct{} {
		fn()
		return struct{}{}
	})
	return err
}

// Query runs fn on d and waits for its result. When d is a *Serial that stops
// before fn runs, ErrStopped is returned.
func Query[T any](ctx context.Context, d Dispatcher, fn func() T) (T, error) {
	var zero T
	result := make(chan T, 1)
	d.Do(func() { result <- fn() })

	var stopped <-chan struct{}
	if s, ok := d.(*Serial); ok {
		stopped = s.Stopped()
	}

	select {
	case v := <-result:
		return v, nil
	case <-stopped:
		// fn may have finished just before the loop exited.
		select {
		case v := <-result:
			return v, nil
		default:
			return zero, ErrStopped
		}
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}
