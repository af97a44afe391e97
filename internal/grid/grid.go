// Package grid places the days of a month, or of a scrolling week strip,
// into seven-column grids addressed by a linear cursor.
package grid

import (
	"github.com/tartampluch/go-calendar/internal/calendar"
	"github.com/tartampluch/go-calendar/internal/config"
)

// Kind classifies a grid cell.
type Kind int

const (
	Blank Kind = iota
	Header
	Day
)

func (k Kind) String() string {
	switch k {
	case Header:
		return "header"
	case Day:
		return "day"
	default:
		return "blank"
	}
}

// Cell is one position of a month grid.
type Cell struct {
	Index int  // linear cursor, 1-based
	Kind  Kind // what the renderer should draw
	Day   int  // day of month, only meaningful when Kind == Day
}

// Layout is the cursor geometry of one month grid: a header row holding the
// month name above the first day, followed by up to six week rows.
type Layout struct {
	Info      calendar.MonthInfo
	Begin     int  // cursor of day 1
	End       int  // cursor of the last day
	DayOffset int  // day = cursor + DayOffset inside [Begin, End]
	Shifted   bool // Begin was pushed down one week to make room for the header
}

// Month computes the layout of info for a locale whose first weekday offset is
// firstWeekdayOffset (0 when weeks start on Sunday).
func Month(info calendar.MonthInfo, firstWeekdayOffset int) Layout {
	begin := info.WeekdayOfFirst + config.DaysPerWeek - firstWeekdayOffset
	shifted := false
	if begin-config.DaysPerWeek <= 0 {
		begin += config.DaysPerWeek
		shifted = true
	}

	dayOffset := -info.WeekdayOfFirst - 6 + firstWeekdayOffset
	if shifted {
		dayOffset -= config.DaysPerWeek
	}

	return Layout{
		Info:      info,
		Begin:     begin,
		End:       begin + info.DayCount - 1,
		DayOffset: dayOffset,
		Shifted:   shifted,
	}
}

// HeaderIndex is the cursor of the month-name cell, directly above day 1.
func (l Layout) HeaderIndex() int {
	return l.Begin - config.DaysPerWeek
}

// Cell classifies cursor i.
func (l Layout) Cell(i int) Cell {
	switch {
	case i >= l.Begin && i <= l.End:
		return Cell{Index: i, Kind: Day, Day: i + l.DayOffset}
	case i == l.HeaderIndex():
		return Cell{Index: i, Kind: Header}
	default:
		return Cell{Index: i, Kind: Blank}
	}
}

// Rows is the number of complete seven-cell rows the month occupies.
func (l Layout) Rows() int {
	return (l.End-1)/config.DaysPerWeek + 1
}

// Cells returns the padded grid: every row from the header row down to the
// row holding the last day, trailing blanks included.
func (l Layout) Cells() []Cell {
	n := l.Rows() * config.DaysPerWeek
	cells := make([]Cell, 0, n)
	for i := 1; i <= n; i++ {
		cells = append(cells, l.Cell(i))
	}
	return cells
}

// Cursor returns the cursor of day, or 0 when day is outside the month.
func (l Layout) Cursor(day int) int {
	if day < 1 || day > l.Info.DayCount {
		return 0
	}
	return day - l.DayOffset
}

// MiniLayout is the compact month used inside the year grid. It has no header
// row: the month name is drawn above the rows by the renderer.
type MiniLayout struct {
	Info      calendar.MonthInfo
	Begin     int
	End       int
	DayOffset int
	RowStarts []int
}

// MiniMonth computes the compact layout of info.
func MiniMonth(info calendar.MonthInfo, firstWeekdayOffset int) MiniLayout {
	begin := info.WeekdayOfFirst + config.DaysPerWeek - firstWeekdayOffset
	end := begin + info.DayCount - 1

	start := 1
	if begin > config.DaysPerWeek {
		start = config.DaysPerWeek + 1
	}

	var rows []int
	for s := start; s <= end; s += config.DaysPerWeek {
		rows = append(rows, s)
	}

	return MiniLayout{
		Info:      info,
		Begin:     begin,
		End:       end,
		DayOffset: -info.WeekdayOfFirst - 6 + firstWeekdayOffset,
		RowStarts: rows,
	}
}

// Cell classifies cursor i of the compact month.
func (m MiniLayout) Cell(i int) Cell {
	if i >= m.Begin && i <= m.End {
		return Cell{Index: i, Kind: Day, Day: i + m.DayOffset}
	}
	return Cell{Index: i, Kind: Blank}
}

// Column returns the 0-based column of a week-strip tag.
func Column(tag int) int {
	return (tag - 1) % config.DaysPerWeek
}

// Row returns the 0-based week of a week-strip tag.
func Row(tag int) int {
	return (tag - 1) / config.DaysPerWeek
}

// WeekBounds returns the first and last tag of the strip week holding tag.
func WeekBounds(tag int) (first, last int) {
	first = Row(tag)*config.DaysPerWeek + 1
	return first, first + config.DaysPerWeek - 1
}
