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

// YearCell describes one cell of the year grid for the renderer.
type YearCell struct {
	ID      int
	Kind    registry.CellKind
	Year    int
	Month   int  // 1..12 for month cells
	Current bool // year label of the current year, or the current month
}

// YearView is the three-column grid of compact months, one label row per year.
type YearView struct {
	viewBase

	cal   *calendar.Calendar
	today *today.Ticker
	grid  registry.YearGrid
	vis   *scroll.Visibility

	selected    int
	subSelected int
	returnTo    int
}

// NewYearView builds a grid of numYears years starting at the calendar's base year.
func NewYearView(r Renderer, cal *calendar.Calendar, ticker *today.Ticker, numYears int, strict bool) (*YearView, error) {
	g, err := registry.NewYearGrid(cal.BaseYear(), numYears)
	if err != nil {
		return nil, err
	}
	return &YearView{
		viewBase: newViewBase(YearKind, r, strict),
		cal:      cal,
		today:    ticker,
		grid:     g,
		vis:      scroll.NewVisibility(),
	}, nil
}

// Grid exposes the id arithmetic.
func (y *YearView) Grid() registry.YearGrid {
	return y.grid
}

// Cells is the number of grid ids.
func (y *YearView) Cells() int {
	return y.grid.Cells()
}

// Cell describes id.
func (y *YearView) Cell(id int) YearCell {
	year, month := y.grid.YM(id)
	c := YearCell{ID: id, Kind: y.grid.Kind(id), Year: year}
	switch c.Kind {
	case registry.YearLabel:
		c.Current = y.today.IsCurrentYear(year)
	case registry.MonthCell:
		c.Month = month
		c.Current = y.today.IsCurrentMonth(year, month)
	}
	return c
}

// IDForToday returns the id of the current month's cell.
func (y *YearView) IDForToday() int {
	d := y.today.Date()
	return y.grid.BuildID(d.Year, d.Month)
}

// MiniLayout computes the compact grid of month cell id.
func (y *YearView) MiniLayout(id int) (grid.MiniLayout, error) {
	if !y.grid.Contains(id) || y.grid.Kind(id) != registry.MonthCell {
		return grid.MiniLayout{}, y.invariant(fmt.Errorf("%s %d: %w", config.ErrTagNotFound, id, registry.ErrNotFound))
	}
	year, month := y.grid.YM(id)
	info := y.cal.MonthInfo(calendar.NewDate(year, month, 1))
	return grid.MiniMonth(info, y.cal.FirstWeekdayOffset()), nil
}

// IsToday reports whether day of month cell id is today.
func (y *YearView) IsToday(id, day int) bool {
	year, month := y.grid.YM(id)
	return y.grid.Kind(id) == registry.MonthCell && y.today.IsToday(calendar.NewDate(year, month, day))
}

// CellAppeared records id as on screen.
func (y *YearView) CellAppeared(id int) {
	y.vis.Appear(id)
}

// CellDisappeared records id as off screen. A selected cell scrolling away
// loses the selection.
func (y *YearView) CellDisappeared(id int) {
	y.vis.Disappear(id)
	if y.selected == id {
		y.selected = 0
		y.refresh()
	}
}

// VisibleIDs returns the ids on screen in ascending order.
func (y *YearView) VisibleIDs() []int {
	return y.vis.Tags()
}

// Selected returns the selected id, 0 when none.
func (y *YearView) Selected() int {
	return y.selected
}

// SubSelected returns the month-list tag opened from this grid, 0 when none.
func (y *YearView) SubSelected() int {
	return y.subSelected
}

// Select makes id the selection and centers it.
func (y *YearView) Select(id int) {
	if !y.grid.Contains(id) {
		_ = y.invariant(fmt.Errorf("%s %d: %w", config.ErrTagNotFound, id, registry.ErrNotFound))
		return
	}
	y.selected = id
	y.scrollTo(id, scroll.Center)
	y.refresh()
}

// ApplySelection receives a deferred selection from the navigation queue.
func (y *YearView) ApplySelection(primary, secondary int) {
	if primary > 0 {
		y.Select(primary)
	}
	y.subSelected = secondary
}

// ReturnTo centers the cell of (year, month) without selecting it.
// When the grid is hidden the scroll happens on its next Appear.
func (y *YearView) ReturnTo(year, month int) error {
	id := y.grid.BuildID(year, month)
	if !y.grid.Contains(id) {
		return y.invariant(fmt.Errorf("%s %d-%02d: %w", config.ErrDateNotFound, year, month, registry.ErrNotFound))
	}

	slog.Debug(config.MsgReturnTo,
		config.LogKeyView, y.Name(),
		config.LogKeyYear, year,
		config.LogKeyMonth, month,
		config.LogKeyTag, id,
		config.LogKeyComponent, config.CompEngine)

	if y.visible {
		y.scrollTo(id, scroll.Center)
		return nil
	}
	y.returnTo = id
	return nil
}

// Appear is called when the grid comes on screen.
func (y *YearView) Appear() {
	y.visible = true
	y.logVisibility(true)
	if y.returnTo > 0 {
		y.scrollTo(y.returnTo, scroll.Center)
		y.returnTo = 0
	}
}

// Disappear is called when the grid leaves the screen. The selection is dropped.
func (y *YearView) Disappear() {
	y.visible = false
	y.selected = 0
	y.logVisibility(false)
}
