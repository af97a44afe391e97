package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tartampluch/go-calendar/internal/calendar"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/navigation"
	"github.com/tartampluch/go-calendar/internal/registry"
	"github.com/tartampluch/go-calendar/internal/timeline"
	"github.com/tartampluch/go-calendar/internal/today"
	"golang.org/x/sync/errgroup"
)

// Timing overrides the background loop periods. Zero values use the config defaults;
// a negative VisibilityTimeout waits forever.
type Timing struct {
	Debounce          time.Duration
	Poll              time.Duration
	VisibilityTimeout time.Duration
	TodayTick         time.Duration
}

func (t Timing) withDefaults() Timing {
	if t.Debounce <= 0 {
		t.Debounce = config.DebounceQuiet
	}
	if t.Poll <= 0 {
		t.Poll = config.VisibilityPollInterval
	}
	if t.VisibilityTimeout == 0 {
		t.VisibilityTimeout = config.VisibilityTimeout
	}
	if t.TodayTick <= 0 {
		t.TodayTick = config.TodayTickInterval
	}
	return t
}

// Deps are the collaborators a Model is built with.
type Deps struct {
	Names    calendar.Namer      // month and weekday names, English when nil
	Clock    today.Clock         // wall clock, RealClock when nil
	Renderer Renderer            // NopRenderer when nil
	Timeline timeline.Dispatcher // a private Serial run by Start when nil
	Timing   Timing
}

// Model is the composition root: one calendar, one today ticker, one navigation
// queue and the three views sharing them.
type Model struct {
	Settings config.Settings
	Calendar *calendar.Calendar
	Today    *today.Ticker
	Queue    *navigation.Queue

	Week   *WeekView
	Months *MonthsView
	Year   *YearView

	tl     timeline.Dispatcher
	serial *timeline.Serial // set when the model owns its timeline
	strict bool
}

// NewModel builds every view from settings. FirstWeekday must already be
// resolved; an unset value falls back to Sunday.
func NewModel(settings config.Settings, deps Deps) (*Model, error) {
	timing := deps.Timing.withDefaults()

	m := &Model{
		Settings: settings,
		Calendar: calendar.New(settings.FirstWeekday, settings.BaseYear, deps.Names),
		Today:    today.NewTicker(deps.Clock, timing.TodayTick),
		tl:       deps.Timeline,
		strict:   settings.Strict,
	}
	if m.tl == nil {
		m.serial = timeline.NewSerial()
		m.tl = m.serial
	}

	queueTimeout := timing.VisibilityTimeout
	if queueTimeout < 0 {
		queueTimeout = 0
	}
	m.Queue = navigation.NewQueue(m.tl, timing.Poll, queueTimeout)

	begin := calendar.NewDate(settings.BaseYear, 1, 1)

	var err error
	m.Week, err = NewWeekView(m.tl, deps.Renderer, m.Calendar, m.Today, begin, settings.NumDays, timing, m.strict)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", WeekKind, err)
	}
	m.Months, err = NewMonthsView(deps.Renderer, m.Calendar, m.Today, m.Week, begin, settings.NumMonths, m.strict)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MonthsKind, err)
	}
	m.Year, err = NewYearView(deps.Renderer, m.Calendar, m.Today, settings.NumYears, m.strict)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", YearKind, err)
	}
	return m, nil
}

// Timeline is the dispatcher every view-model call must go through.
func (m *Model) Timeline() timeline.Dispatcher {
	return m.tl
}

// Start runs the background loops until ctx is cancelled.
func (m *Model) Start(ctx context.Context) error {
	slog.Info(config.MsgModelStart,
		config.LogKeyYear, m.Calendar.BaseYear(),
		config.LogKeyDate, m.Today.Date().String(),
		config.LogKeyComponent, config.CompEngine)

	unsubscribe := m.Today.Subscribe(func(today.State) {
		m.tl.Do(m.refreshAll)
	})
	defer unsubscribe()
	defer m.Close()

	g, ctx := errgroup.WithContext(ctx)
	if m.serial != nil {
		g.Go(func() error { return m.serial.Run(ctx) })
	}
	g.Go(func() error { return m.Today.Run(ctx) })
	g.Go(func() error { return m.Queue.Run(ctx) })

	if err := g.Wait(); err != nil {
		return fmt.Errorf("%s: %w", config.ErrBackground, err)
	}
	return nil
}

// Close stops the strip timers.
func (m *Model) Close() {
	m.Week.Close()
}

func (m *Model) refreshAll() {
	m.Week.refresh()
	m.Months.refresh()
	m.Year.refresh()
}

// OpenMonths hands off from a year-grid month cell to the month list, which
// selects that month once it is on screen. The year grid remembers the hand-off.
func (m *Model) OpenMonths(yearCellID int) error {
	g := m.Year.Grid()
	if !g.Contains(yearCellID) || g.Kind(yearCellID) != registry.MonthCell {
		return m.Year.invariant(fmt.Errorf("%s %d: %w", config.ErrTagNotFound, yearCellID, registry.ErrNotFound))
	}

	// The month list starts in January of the base year, like the grid.
	y, mo := g.YM(yearCellID)
	tag := g.MonthsTag(y, mo)
	if tag > m.Months.Len() {
		return m.Months.invariant(fmt.Errorf("%s %d-%02d: %w", config.ErrDateNotFound, y, mo, registry.ErrNotFound))
	}

	m.Year.subSelected = tag
	m.Queue.Enqueue(m.Months, tag, 0)
	return nil
}

// OpenWeek hands off to the week strip, which selects date once on screen.
func (m *Model) OpenWeek(date calendar.Date) error {
	if err := m.Calendar.Check(date); err != nil {
		return err
	}
	tag, err := m.Week.TagFor(date)
	if err != nil {
		return m.Week.invariant(err)
	}

	m.Months.subSelected = tag
	m.Queue.Enqueue(m.Week, tag, 0)
	return nil
}

// BackFromWeek returns to the month list, scrolled to the selected day's month.
func (m *Model) BackFromWeek() error {
	m.Months.subSelected = 0
	d, ok := m.Week.SelectedDate()
	if !ok {
		return nil
	}
	return m.Months.ReturnTo(d.Year, d.Month)
}

// BackFromMonths returns to the year grid, centered on the topmost visible month.
func (m *Model) BackFromMonths() error {
	m.Year.subSelected = 0
	y, mo, ok := m.Months.EarliestVisible()
	if !ok {
		return nil
	}
	return m.Year.ReturnTo(y, mo)
}

// GoToday brings today into view on the given level. On the year grid, pressing
// it again while today's cell is selected opens the month list.
func (m *Model) GoToday(kind ViewKind) error {
	switch kind {
	case YearKind:
		id := m.Year.IDForToday()
		if !m.Year.Grid().Contains(id) {
			return m.Year.invariant(fmt.Errorf("%s %d: %w", config.ErrTagNotFound, id, registry.ErrNotFound))
		}
		if m.Year.Selected() == id {
			if err := m.OpenMonths(id); err != nil {
				return err
			}
		}
		m.Year.Select(id)
	case MonthsKind:
		m.Months.ScrollToToday()
	default:
		tag := m.Week.TodayTag()
		if tag == 0 {
			return m.Week.invariant(fmt.Errorf("%s %s: %w", config.ErrDateNotFound, m.Today.Date(), registry.ErrNotFound))
		}
		m.Week.Tap(tag)
	}
	return nil
}

// Pending reports how many hand-offs wait for their target, per view.
func (m *Model) Pending() map[ViewKind]int {
	out := make(map[ViewKind]int, 3)
	for _, e := range m.Queue.Pending() {
		switch e.Target.ID() {
		case m.Week.ID():
			out[WeekKind]++
		case m.Months.ID():
			out[MonthsKind]++
		case m.Year.ID():
			out[YearKind]++
		}
	}
	return out
}

// ToolbarLabel is the month list's dominant visible year.
func (m *Model) ToolbarLabel() string {
	return m.Months.ToolbarLabel()
}
