package engine

import (
	"fmt"
	"log/slog"

	"github.com/tartampluch/go-calendar/internal/calendar"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/grid"
	"github.com/tartampluch/go-calendar/internal/registry"
	"github.com/tartampluch/go-calendar/internal/scroll"
	"github.com/tartampluch/go-calendar/internal/today"
)

// MonthsView is the vertical list of month grids. Each tag is one month.
type MonthsView struct {
	viewBase

	cal   *calendar.Calendar
	today *today.Ticker
	reg   *registry.Registry
	vis   *scroll.Visibility
	week  *WeekView // day links resolve against the strip's registry

	selected    int
	subSelected int
	returnTo    int
	toolbar     string
}

// NewMonthsView builds a list of numMonths months starting with the month of begin.
func NewMonthsView(r Renderer, cal *calendar.Calendar, ticker *today.Ticker, week *WeekView,
	begin calendar.Date, numMonths int, strict bool) (*MonthsView, error) {
	reg, err := registry.New(begin, numMonths, registry.Months)
	if err != nil {
		return nil, err
	}
	return &MonthsView{
		viewBase: newViewBase(MonthsKind, r, strict),
		cal:      cal,
		today:    ticker,
		reg:      reg,
		vis:      scroll.NewVisibility(),
		week:     week,
		toolbar:  config.EmptyToolbar,
	}, nil
}

// Len is the number of months in the list.
func (m *MonthsView) Len() int {
	return m.reg.Len()
}

// TagFor returns the tag of the month holding d.
func (m *MonthsView) TagFor(d calendar.Date) (int, error) {
	return m.reg.TagFor(d)
}

// DateFor returns the first day of the month of tag.
func (m *MonthsView) DateFor(tag int) (calendar.Date, error) {
	return m.reg.DateFor(tag)
}

// Layout computes the grid of month tag.
func (m *MonthsView) Layout(tag int) (grid.Layout, error) {
	d, err := m.reg.DateFor(tag)
	if err != nil {
		return grid.Layout{}, m.invariant(err)
	}
	return grid.Month(m.cal.MonthInfo(d), m.cal.FirstWeekdayOffset()), nil
}

// DayLink returns the week-strip tag a day cell of month tag navigates to.
func (m *MonthsView) DayLink(tag, day int) (int, error) {
	first, err := m.reg.DateFor(tag)
	if err != nil {
		return 0, m.invariant(err)
	}
	if day < 1 || day > calendar.DaysIn(first.Year, first.Month) {
		return 0, m.invariant(fmt.Errorf("%s %s/%d: %w", config.ErrDateNotFound, first, day, registry.ErrNotFound))
	}
	if m.week == nil {
		return 0, nil
	}
	weekTag, err := m.week.TagFor(calendar.NewDate(first.Year, first.Month, day))
	if err != nil {
		return 0, m.invariant(err)
	}
	return weekTag, nil
}

// IsToday reports whether day of month tag is today.
func (m *MonthsView) IsToday(tag, day int) bool {
	d, err := m.reg.DateFor(tag)
	return err == nil && m.today.IsToday(calendar.NewDate(d.Year, d.Month, day))
}

// IsCurrentMonth reports whether tag is the month holding today.
func (m *MonthsView) IsCurrentMonth(tag int) bool {
	d, err := m.reg.DateFor(tag)
	return err == nil && m.today.IsCurrentMonth(d.Year, d.Month)
}

// TodayTag returns the tag of the current month, 0 when outside the list.
func (m *MonthsView) TodayTag() int {
	tag, err := m.reg.TagFor(m.today.Date())
	if err != nil {
		return 0
	}
	return tag
}

// CellAppeared records month tag as on screen.
func (m *MonthsView) CellAppeared(tag int) {
	m.vis.Appear(tag)
	m.updateToolbar()
}

// CellDisappeared records month tag as off screen.
func (m *MonthsView) CellDisappeared(tag int) {
	m.vis.Disappear(tag)
	m.updateToolbar()
}

// VisibleTags returns the months on screen in ascending order.
func (m *MonthsView) VisibleTags() []int {
	return m.vis.Tags()
}

// ToolbarLabel is the dominant year among the visible months.
func (m *MonthsView) ToolbarLabel() string {
	return m.toolbar
}

func (m *MonthsView) updateToolbar() {
	tags := m.vis.Tags()
	years := make([]int, 0, len(tags))
	for _, tag := range tags {
		d, err := m.reg.DateFor(tag)
		if err != nil {
			_ = m.invariant(err)
			continue
		}
		years = append(years, d.Year)
	}

	label := ToolbarYear(years)
	if label != m.toolbar {
		m.toolbar = label
		m.refresh()
	}
}

// EarliestVisible returns the year and month of the topmost visible month.
func (m *MonthsView) EarliestVisible() (year, month int, ok bool) {
	tag, ok := m.vis.Earliest()
	if !ok {
		return 0, 0, false
	}
	d, err := m.reg.DateFor(tag)
	if err != nil {
		_ = m.invariant(err)
		return 0, 0, false
	}
	return d.Year, d.Month, true
}

// Selected returns the selected month tag, 0 when none.
func (m *MonthsView) Selected() int {
	return m.selected
}

// SubSelected returns the week-strip tag of the day link last followed, 0 when none.
func (m *MonthsView) SubSelected() int {
	return m.subSelected
}

// Select makes tag the selection and centers it.
func (m *MonthsView) Select(tag int) {
	if _, err := m.reg.DateFor(tag); err != nil {
		_ = m.invariant(err)
		return
	}
	m.selected = tag
	m.scrollTo(tag, scroll.Center)
	m.refresh()
}

// ApplySelection receives a deferred selection from the navigation queue.
func (m *MonthsView) ApplySelection(primary, secondary int) {
	if primary > 0 {
		m.Select(primary)
	}
	m.subSelected = secondary
}

// ScrollToToday centers the current month without selecting it.
func (m *MonthsView) ScrollToToday() {
	if tag := m.TodayTag(); tag > 0 {
		m.scrollTo(tag, scroll.Center)
	}
}

// ReturnTo brings (year, month) to the top of the list without selecting it.
// When the list is hidden the scroll happens on its next Appear.
func (m *MonthsView) ReturnTo(year, month int) error {
	tag, err := m.reg.TagFor(calendar.NewDate(year, month, 1))
	if err != nil {
		return m.invariant(err)
	}

	slog.Debug(config.MsgReturnTo,
		config.LogKeyView, m.Name(),
		config.LogKeyYear, year,
		config.LogKeyMonth, month,
		config.LogKeyTag, tag,
		config.LogKeyComponent, config.CompEngine)

	if m.visible {
		m.scrollTo(tag, scroll.Top)
		return nil
	}
	m.returnTo = tag
	return nil
}

// Appear is called when the list comes on screen.
func (m *MonthsView) Appear() {
	m.visible = true
	m.logVisibility(true)
	if m.returnTo > 0 {
		m.scrollTo(m.returnTo, scroll.Top)
		m.returnTo = 0
	}
}

// Disappear is called when the list leaves the screen. The selection is dropped.
func (m *MonthsView) Disappear() {
	m.visible = false
	m.selected = 0
	m.logVisibility(false)
}
