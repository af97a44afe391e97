// Package today tracks the current calendar day and signals midnight rollovers.
package today

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tartampluch/go-calendar/internal/calendar"
	"github.com/tartampluch/go-calendar/internal/config"
)

// State is the published snapshot. It is replaced as a whole, never mutated.
type State struct {
	Date      calendar.Date
	Rollovers uint64
}

// Ticker polls the clock and publishes the current date. Readers never block.
type Ticker struct {
	clock    Clock
	interval time.Duration
	state    atomic.Pointer[State]

	mu     sync.Mutex
	nextID int
	subs   map[int]func(State)
}

// NewTicker creates a ticker seeded with the clock's current date.
func NewTicker(clock Clock, interval time.Duration) *Ticker {
	if clock == nil {
		clock = RealClock{}
	}
	if interval <= 0 {
		interval = config.TodayTickInterval
	}
	t := &Ticker{
		clock:    clock,
		interval: interval,
		subs:     make(map[int]func(State)),
	}
	t.state.Store(&State{Date: calendar.FromTime(clock.Now())})
	return t
}

// State returns the current snapshot.
func (t *Ticker) State() State {
	return *t.state.Load()
}

// Date returns today's date.
func (t *Ticker) Date() calendar.Date {
	return t.state.Load().Date
}

// IsToday reports whether d is today.
func (t *Ticker) IsToday(d calendar.Date) bool {
	return t.Date() == d
}

// IsCurrentMonth reports whether (year, month) holds today.
func (t *Ticker) IsCurrentMonth(year, month int) bool {
	d := t.Date()
	return d.Year == year && d.Month == month
}

// IsCurrentYear reports whether year holds today.
func (t *Ticker) IsCurrentYear(year int) bool {
	return t.Date().Year == year
}

// Subscribe registers fn for rollover notifications and returns its cancel func.
// fn runs on the ticker goroutine.
func (t *Ticker) Subscribe(fn func(State)) func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	id := t.nextID
	t.nextID++
	t.subs[id] = fn
	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.subs, id)
	}
}

// Tick compares the wall-clock date with the published one. On any change,
// backwards clock jumps included, the state is replaced and true returned.
func (t *Ticker) Tick() bool {
	now := calendar.FromTime(t.clock.Now())
	cur := t.state.Load()
	if cur.Date == now {
		return false
	}

	next := &State{Date: now, Rollovers: cur.Rollovers + 1}
	if !t.state.CompareAndSwap(cur, next) {
		// A concurrent Tick already published this change.
		return false
	}

	slog.Info(config.MsgRollover,
		config.LogKeyDate, now.String(),
		config.LogKeyRollovers, next.Rollovers,
		config.LogKeyComponent, config.CompToday)

	t.mu.Lock()
	subs := make([]func(State), 0, len(t.subs))
	for _, fn := range t.subs {
		subs = append(subs, fn)
	}
	t.mu.Unlock()

	for _, fn := range subs {
		fn(*next)
	}
	return true
}

// Run ticks until ctx is cancelled. The timer is re-armed after each comparison.
func (t *Ticker) Run(ctx context.Context) error {
	slog.Info(config.MsgTickerStart,
		config.LogKeyInterval, t.interval.String(),
		config.LogKeyComponent, config.CompToday)

	timer := time.NewTimer(t.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info(config.MsgTickerStop, config.LogKeyComponent, config.CompToday)
			return nil
		case <-timer.C:
			t.Tick()
			timer.Reset(t.interval)
		}
	}
}
