package calendar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-calendar/internal/calendar"
)

func TestMonthInfo(t *testing.T) {
	c := calendar.New(1, 2000, nil)

	tests := []struct {
		name    string
		date    calendar.Date
		weekday int
		days    int
		display string
	}{
		{"January 2024 starts on Monday", calendar.NewDate(2024, 1, 15), 2, 31, "Jan"},
		{"Leap February", calendar.NewDate(2024, 2, 29), 5, 29, "Feb"},
		{"Common February", calendar.NewDate(2023, 2, 1), 4, 28, "Feb"},
		{"Century non-leap", calendar.NewDate(2100, 2, 1), 2, 28, "Feb"},
		{"30-day month", calendar.NewDate(2024, 9, 30), 1, 30, "Sep"},
		{"Saturday start", calendar.NewDate(2024, 6, 1), 7, 30, "Jun"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := c.MonthInfo(tt.date)
			assert.Equal(t, tt.weekday, info.WeekdayOfFirst)
			assert.Equal(t, tt.days, info.DayCount)
			assert.Equal(t, tt.display, info.DisplayName)
			assert.Equal(t, tt.date.Year, info.Year)
			assert.Equal(t, tt.date.Month, info.Month)
		})
	}
}

func TestMonthInfo_Deterministic(t *testing.T) {
	c := calendar.New(2, 2000, nil)
	d := calendar.NewDate(2025, 3, 9)
	assert.Equal(t, c.MonthInfo(d), c.MonthInfo(d))
}

func TestFirstWeekdayOffset(t *testing.T) {
	assert.Equal(t, 0, calendar.New(1, 2000, nil).FirstWeekdayOffset())
	assert.Equal(t, 1, calendar.New(2, 2000, nil).FirstWeekdayOffset())
	assert.Equal(t, 6, calendar.New(7, 2000, nil).FirstWeekdayOffset())
	// Invalid weekdays fall back to Sunday.
	assert.Equal(t, 0, calendar.New(9, 2000, nil).FirstWeekdayOffset())
}

func TestWeekStart(t *testing.T) {
	wed := calendar.NewDate(2024, 1, 3)

	assert.Equal(t, calendar.NewDate(2023, 12, 31), calendar.New(1, 2000, nil).WeekStart(wed), "Sunday weeks")
	assert.Equal(t, calendar.NewDate(2024, 1, 1), calendar.New(2, 2000, nil).WeekStart(wed), "Monday weeks")
	assert.Equal(t, calendar.NewDate(2023, 12, 30), calendar.New(7, 2000, nil).WeekStart(wed), "Saturday weeks")

	// A week start is its own week start.
	mon := calendar.NewDate(2024, 1, 1)
	assert.Equal(t, mon, calendar.New(2, 2000, nil).WeekStart(mon))
}

func TestDayHeadings(t *testing.T) {
	assert.Equal(t, []string{"S", "M", "T", "W", "T", "F", "S"}, calendar.New(1, 2000, nil).DayHeadings())
	assert.Equal(t, []string{"M", "T", "W", "T", "F", "S", "S"}, calendar.New(2, 2000, nil).DayHeadings())
}

func TestCheck(t *testing.T) {
	c := calendar.New(1, 2024, nil)
	assert.NoError(t, c.Check(calendar.NewDate(2024, 1, 1)))
	assert.ErrorIs(t, c.Check(calendar.NewDate(2023, 12, 31)), calendar.ErrOutOfRange)
}

func TestDate_Arithmetic(t *testing.T) {
	d := calendar.NewDate(2024, 1, 31)

	assert.Equal(t, calendar.NewDate(2024, 2, 1), d.AddDays(1))
	assert.Equal(t, calendar.NewDate(2023, 12, 31), d.AddDays(-31))
	assert.Equal(t, calendar.Date{Year: 2024, Month: 2, Day: 29}, d.AddMonths(1), "clamped to leap February")
	assert.Equal(t, calendar.Date{Year: 2025, Month: 2, Day: 28}, d.AddMonths(13))
	assert.Equal(t, calendar.Date{Year: 2023, Month: 12, Day: 31}, d.AddMonths(-1))
	assert.Equal(t, 366, calendar.NewDate(2024, 1, 1).DaysUntil(calendar.NewDate(2025, 1, 1)))
}

func TestDate_Normalisation(t *testing.T) {
	assert.Equal(t, calendar.Date{Year: 2023, Month: 3, Day: 1}, calendar.NewDate(2023, 2, 29))
	assert.Equal(t, calendar.Date{Year: 2025, Month: 1, Day: 1}, calendar.NewDate(2024, 13, 1))
}

func TestDate_Compare(t *testing.T) {
	a := calendar.NewDate(2024, 5, 1)
	b := calendar.NewDate(2024, 5, 2)

	assert.True(t, a.Before(b))
	assert.False(t, b.Before(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.Equal(t, 1, calendar.NewDate(2025, 1, 1).Compare(b))
}

func TestDate_ParseAndString(t *testing.T) {
	d, err := calendar.ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, calendar.Date{Year: 2024, Month: 2, Day: 29}, d)
	assert.Equal(t, "2024-02-29", d.String())

	_, err = calendar.ParseDate("2023-02-29")
	assert.Error(t, err)
}

func TestFromTime_UsesLocation(t *testing.T) {
	// 23:30 UTC on Jan 1 is already Jan 2 in Tokyo.
	utc := time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC)
	tokyo := time.FixedZone("JST", 9*60*60)

	assert.Equal(t, calendar.NewDate(2024, 1, 1), calendar.FromTime(utc))
	assert.Equal(t, calendar.NewDate(2024, 1, 2), calendar.FromTime(utc.In(tokyo)))
}

func TestIsLeapYear(t *testing.T) {
	assert.True(t, calendar.IsLeapYear(2000))
	assert.True(t, calendar.IsLeapYear(2024))
	assert.False(t, calendar.IsLeapYear(1900))
	assert.False(t, calendar.IsLeapYear(2023))
}
