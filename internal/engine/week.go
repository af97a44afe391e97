package engine

import (
	"strconv"

	"github.com/tartampluch/go-calendar/internal/calendar"
	"github.com/tartampluch/go-calendar/internal/registry"
	"github.com/tartampluch/go-calendar/internal/scroll"
	"github.com/tartampluch/go-calendar/internal/timeline"
	"github.com/tartampluch/go-calendar/internal/today"
)

// WeekView is the horizontally paged day strip. Its tags are consecutive days
// starting on a locale week boundary, so every seventh tag opens a week.
type WeekView struct {
	viewBase

	cal   *calendar.Calendar
	today *today.Ticker
	reg   *registry.Registry
	pipe  *scroll.Pipeline
}

// NewWeekView builds a strip of numDays days starting on the week that holds beginAround.
func NewWeekView(tl timeline.Dispatcher, r Renderer, cal *calendar.Calendar, ticker *today.Ticker,
	beginAround calendar.Date, numDays int, timing Timing, strict bool) (*WeekView, error) {
	reg, err := registry.New(cal.WeekStart(beginAround), numDays, registry.Days)
	if err != nil {
		return nil, err
	}

	w := &WeekView{
		viewBase: newViewBase(WeekKind, r, strict),
		cal:      cal,
		today:    ticker,
		reg:      reg,
	}
	w.pipe = scroll.NewPipeline(tl, scroller{&w.viewBase}, scroll.Options{
		Name:         w.Name(),
		Len:          reg.Len(),
		Quiet:        timing.Debounce,
		PollInterval: timing.Poll,
		Timeout:      timing.VisibilityTimeout,
		OnSelect:     func(int) { w.refresh() },
	})
	return w, nil
}

// Len is the number of days in the strip.
func (w *WeekView) Len() int {
	return w.reg.Len()
}

// TagFor returns the tag of d.
func (w *WeekView) TagFor(d calendar.Date) (int, error) {
	return w.reg.TagFor(d)
}

// DateFor returns the day of tag.
func (w *WeekView) DateFor(tag int) (calendar.Date, error) {
	return w.reg.DateFor(tag)
}

// DayLabel is the day-of-month number drawn in cell tag.
func (w *WeekView) DayLabel(tag int) string {
	d, err := w.reg.DateFor(tag)
	if err != nil {
		_ = w.invariant(err)
		return ""
	}
	return strconv.Itoa(d.Day)
}

// DayHeadings are the weekday symbols above the strip, in locale order.
func (w *WeekView) DayHeadings() []string {
	return w.cal.DayHeadings()
}

// IsToday reports whether tag is today's cell.
func (w *WeekView) IsToday(tag int) bool {
	d, err := w.reg.DateFor(tag)
	return err == nil && w.today.IsToday(d)
}

// TodayTag returns today's tag, or 0 when today lies outside the strip.
func (w *WeekView) TodayTag() int {
	tag, err := w.reg.TagFor(w.today.Date())
	if err != nil {
		return 0
	}
	return tag
}

// Selected returns the selected tag, 0 when none.
func (w *WeekView) Selected() int {
	return w.pipe.Selected()
}

// SelectedDate returns the selected day.
func (w *WeekView) SelectedDate() (calendar.Date, bool) {
	sel := w.pipe.Selected()
	if sel == 0 {
		return calendar.Date{}, false
	}
	d, err := w.reg.DateFor(sel)
	if err != nil {
		_ = w.invariant(err)
		return calendar.Date{}, false
	}
	return d, true
}

// State exposes the reconciliation phase.
func (w *WeekView) State() scroll.State {
	return w.pipe.State()
}

// Tap is an explicit user selection.
func (w *WeekView) Tap(tag int) {
	w.pipe.Select(tag)
}

// Sample forwards a scroll offset of the strip.
func (w *WeekView) Sample(o scroll.Origin) {
	w.pipe.Sample(o)
}

// CellAppeared records tag as on screen.
func (w *WeekView) CellAppeared(tag int) {
	w.pipe.CellAppeared(tag)
}

// CellDisappeared records tag as off screen.
func (w *WeekView) CellDisappeared(tag int) {
	w.pipe.CellDisappeared(tag)
}

// Appear is called when the strip comes on screen.
func (w *WeekView) Appear() {
	w.visible = true
	w.logVisibility(true)
	w.pipe.Appear()
}

// Disappear is called when the strip leaves the screen.
func (w *WeekView) Disappear() {
	w.visible = false
	w.logVisibility(false)
	w.pipe.Disappear()
}

// ApplySelection receives a deferred selection from the navigation queue.
// The strip has no secondary selection.
func (w *WeekView) ApplySelection(primary, _ int) {
	w.pipe.Select(primary)
}

// Close stops the strip's background timers.
func (w *WeekView) Close() {
	w.pipe.Close()
}
