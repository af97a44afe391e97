// Package navigation delivers selections to views that may not be on screen yet.
//
// A hand-off from one view to another enqueues the target selection; the
// queue waits until the target reports itself visible, then applies it.
package navigation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/timeline"
)

// Target is a view able to receive a deferred selection. Visible and
// ApplySelection are always called on the timeline.
type Target interface {
	ID() uuid.UUID
	Name() string
	Visible() bool
	ApplySelection(primary, secondary int)
}

// Entry is one pending selection. Zero means "no selection" for both values.
type Entry struct {
	ID        uuid.UUID
	Target    Target
	Primary   int
	Secondary int
	Enqueued  time.Time
}

// Queue is a strictly FIFO delivery queue with one entry in flight.
type Queue struct {
	tl      timeline.Dispatcher
	poll    time.Duration
	timeout time.Duration

	mu      sync.Mutex
	entries []Entry
	wake    chan struct{}
}

// NewQueue creates a queue polling every poll. A zero timeout waits forever.
func NewQueue(tl timeline.Dispatcher, poll, timeout time.Duration) *Queue {
	if poll <= 0 {
		poll = config.NavigationPollInterval
	}
	return &Queue{
		tl:      tl,
		poll:    poll,
		timeout: timeout,
		wake:    make(chan struct{}, config.ChannelBufferSize),
	}
}

// Enqueue appends a selection for target and returns the entry id.
func (q *Queue) Enqueue(target Target, primary, secondary int) uuid.UUID {
	e := Entry{
		ID:        uuid.New(),
		Target:    target,
		Primary:   primary,
		Secondary: secondary,
		Enqueued:  time.Now(),
	}

	q.mu.Lock()
	q.entries = append(q.entries, e)
	pending := len(q.entries)
	q.mu.Unlock()

	slog.Debug(config.MsgNavEnqueued,
		config.LogKeyView, target.Name(),
		config.LogKeyViewID, target.ID(),
		config.LogKeyPrimary, primary,
		config.LogKeySecondary, secondary,
		config.LogKeyPending, pending,
		config.LogKeyComponent, config.CompNavigation)

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return e.ID
}

// Len is the number of entries not yet delivered, the in-flight one included.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.entries)
}

// Pending returns a snapshot of the queue, head first.
func (q *Queue) Pending() []Entry {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Entry, len(q.entries))
	copy(out, q.entries)
	return out
}

// Run drains the queue until ctx is cancelled.
func (q *Queue) Run(ctx context.Context) error {
	slog.Info(config.MsgQueueStart,
		config.LogKeyInterval, q.poll.String(),
		config.LogKeyComponent, config.CompNavigation)

	for {
		e, ok := q.head()
		if !ok {
			select {
			case <-ctx.Done():
				slog.Info(config.MsgQueueStop, config.LogKeyComponent, config.CompNavigation)
				return nil
			case <-q.wake:
				continue
			}
		}

		if err := q.deliver(ctx, e); err != nil {
			if ctx.Err() != nil {
				slog.Info(config.MsgQueueStop, config.LogKeyComponent, config.CompNavigation)
				return nil
			}
			return err
		}
		q.pop(e.ID)
	}
}

func (q *Queue) head() (Entry, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.entries) == 0 {
		return Entry{}, false
	}
	return q.entries[0], true
}

func (q *Queue) pop(id uuid.UUID) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.entries) > 0 && q.entries[0].ID == id {
		q.entries = q.entries[1:]
	}
}

// deliver waits for e's target to become visible and applies the selection.
// It returns nil once the entry is settled (applied or abandoned).
func (q *Queue) deliver(ctx context.Context, e Entry) error {
	ticker := time.NewTicker(q.poll)
	defer ticker.Stop()
	started := time.Now()

	for {
		// Check and apply share one turn so the target cannot hide in between.
		applied, err := timeline.Query(ctx, q.tl, func() bool {
			if !e.Target.Visible() {
				return false
			}
			e.Target.ApplySelection(e.Primary, e.Secondary)
			return true
		})
		if err != nil {
			return err
		}

		if applied {
			slog.Debug(config.MsgNavApplied,
				config.LogKeyView, e.Target.Name(),
				config.LogKeyPrimary, e.Primary,
				config.LogKeySecondary, e.Secondary,
				config.LogKeyWaited, time.Since(started).Milliseconds(),
				config.LogKeyComponent, config.CompNavigation)
			return nil
		}

		if q.timeout > 0 && time.Since(started) >= q.timeout {
			slog.Warn(config.MsgNavAbandoned,
				config.LogKeyView, e.Target.Name(),
				config.LogKeyViewID, e.Target.ID(),
				config.LogKeyPrimary, e.Primary,
				config.LogKeyWaited, time.Since(started).Milliseconds(),
				config.LogKeyComponent, config.CompNavigation)
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
