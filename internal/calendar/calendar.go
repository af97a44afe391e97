// Package calendar holds the locale-aware date arithmetic every view is built on.
package calendar

import (
	"fmt"
	"time"

	"github.com/tartampluch/go-calendar/internal/config"
)

// MonthInfo describes the month containing a given date.
type MonthInfo struct {
	WeekdayOfFirst int    // day of week of the 1st, Sunday=1 .. Saturday=7
	DayCount       int    // number of days in the month
	DisplayName    string // short localized month name, e.g. "Jan"
	Year           int
	Month          int // 1..12
}

// Namer supplies localized display strings.
// Implementations must be safe for concurrent use.
type Namer interface {
	MonthName(month int) string
	WeekdaySymbol(weekday int) string // Sunday=1 .. Saturday=7
}

// EnglishNames is the fallback Namer backed by the time package.
type EnglishNames struct{}

// MonthName returns the three-letter English month name.
func (EnglishNames) MonthName(month int) string {
	return time.Month(month).String()[:3]
}

// WeekdaySymbol returns the one-letter English weekday symbol.
func (EnglishNames) WeekdaySymbol(weekday int) string {
	return time.Weekday(weekday - 1).String()[:1]
}

// Calendar answers calendar questions for one locale.
// It is immutable after construction and safe to share between views.
type Calendar struct {
	firstWeekday int
	baseYear     int
	names        Namer
}

// New creates a Calendar whose weeks start on firstWeekday (Sunday=1).
// Out-of-range weekdays fall back to Sunday, and a nil namer to English.
func New(firstWeekday, baseYear int, names Namer) *Calendar {
	if firstWeekday < config.WeekdaySunday || firstWeekday > config.WeekdaySat {
		firstWeekday = config.WeekdaySunday
	}
	if names == nil {
		names = EnglishNames{}
	}
	return &Calendar{
		firstWeekday: firstWeekday,
		baseYear:     baseYear,
		names:        names,
	}
}

// FirstWeekday returns the locale's first day of the week (Sunday=1).
func (c *Calendar) FirstWeekday() int {
	return c.firstWeekday
}

// FirstWeekdayOffset returns FirstWeekday minus one (0 when weeks start on Sunday).
func (c *Calendar) FirstWeekdayOffset() int {
	return c.firstWeekday - 1
}

// BaseYear is the earliest year the calendar accepts.
func (c *Calendar) BaseYear() int {
	return c.baseYear
}

// MonthInfo describes the month containing d.
func (c *Calendar) MonthInfo(d Date) MonthInfo {
	first := d.FirstOfMonth()
	return MonthInfo{
		WeekdayOfFirst: first.Weekday(),
		DayCount:       DaysIn(d.Year, d.Month),
		DisplayName:    c.names.MonthName(d.Month),
		Year:           d.Year,
		Month:          d.Month,
	}
}

// WeekStart walks back from d to the nearest day that begins a locale week.
func (c *Calendar) WeekStart(d Date) Date {
	back := (d.Weekday() - c.firstWeekday + config.DaysPerWeek) % config.DaysPerWeek
	return d.AddDays(-back)
}

// DayHeadings returns the weekday symbols in locale order, starting with FirstWeekday.
func (c *Calendar) DayHeadings() []string {
	headings := make([]string, 0, config.DaysPerWeek)
	for i := 0; i < config.DaysPerWeek; i++ {
		wd := (c.firstWeekday-1+i)%config.DaysPerWeek + 1
		headings = append(headings, c.names.WeekdaySymbol(wd))
	}
	return headings
}

// Check rejects dates before the base year.
func (c *Calendar) Check(d Date) error {
	if d.Year < c.baseYear {
		return fmt.Errorf("%s %d: %w", d, c.baseYear, ErrOutOfRange)
	}
	return nil
}
