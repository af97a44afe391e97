package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/tartampluch/go-calendar/internal/config"
)

// ErrOutOfRange is returned for dates the configured views cannot address.
var ErrOutOfRange = errors.New(config.ErrOutOfRange)

// Date is a proleptic Gregorian calendar day without time or location.
// It is comparable and safe to use as a map key.
type Date struct {
	Year  int
	Month int // 1..12
	Day   int
}

// NewDate builds a Date, normalising overflowing fields the way time.Date does
// (2024-02-30 becomes 2024-03-01).
func NewDate(year, month, day int) Date {
	return FromTime(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC))
}

// FromTime extracts the calendar day of t in t's own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: int(m), Day: d}
}

// ParseDate reads the YYYY-MM-DD form used in configuration.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(config.DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%s: %w", config.ErrBadDate, err)
	}
	return FromTime(t), nil
}

// Time returns midnight of the day in loc.
func (d Date) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, loc)
}

// AddDays moves the date by n days.
func (d Date) AddDays(n int) Date {
	return NewDate(d.Year, d.Month, d.Day+n)
}

// AddMonths moves the date by n months. The day is clamped to the target month
// so that Jan 31 + 1 month is Feb 28/29 rather than a March date.
func (d Date) AddMonths(n int) Date {
	first := NewDate(d.Year, d.Month+n, 1)
	return Date{Year: first.Year, Month: first.Month, Day: min(d.Day, DaysIn(first.Year, first.Month))}
}

// FirstOfMonth returns day 1 of the same month.
func (d Date) FirstOfMonth() Date {
	return Date{Year: d.Year, Month: d.Month, Day: 1}
}

// Weekday returns the day of week using the Sunday=1 .. Saturday=7 convention.
func (d Date) Weekday() int {
	return int(d.Time(time.UTC).Weekday()) + 1
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(d.Month - o.Month)
	default:
		return sign(d.Day - o.Day)
	}
}

// Before reports whether d falls strictly before o.
func (d Date) Before(o Date) bool {
	return d.Compare(o) < 0
}

// DaysUntil counts the days from d to o (negative when o is earlier).
func (d Date) DaysUntil(o Date) int {
	return int(o.Time(time.UTC).Sub(d.Time(time.UTC)).Hours() / 24)
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// DaysIn returns the length of a month, accounting for leap years.
func DaysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsLeapYear reports whether February of year has 29 days.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
