package ui

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-calendar/internal/calendar"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/engine"
	"github.com/tartampluch/go-calendar/internal/scroll"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

// MockTray implements minimal system tray functionality for headless testing.
type MockTray struct {
	Menu *fyne.Menu
}

func (m *MockTray) SetSystemTrayMenu(menu *fyne.Menu) {
	m.Menu = menu
}

func (m *MockTray) SetSystemTrayIcon(icon fyne.Resource) {}
func (m *MockTray) SetSystemTrayWindow(w fyne.Window)    {}
func (m *MockTray) Run()                                 {}
func (m *MockTray) Quit()                                {}

// -----------------------------------------------------------------------------
// Test Setup Helper
// -----------------------------------------------------------------------------

// 2024-03-15 sits in the strip at tag 76; its week starts at tag 71 (Sunday 10th).
var testNow = time.Date(2024, time.March, 15, 12, 0, 0, 0, time.Local)

func testSettings() config.Settings {
	s := config.Defaults()
	s.Locale = "en"
	s.BaseYear = 2024
	s.NumYears = 3
	s.NumMonths = 36
	s.NumDays = 7 * 52 * 3
	return s
}

// newTestApp builds a headless app. prefs runs before Setup so stored
// preferences can be seeded.
func newTestApp(t *testing.T, prefs func(fyne.Preferences)) *CalendarApp {
	t.Helper()

	a := test.NewApp()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	app := NewCalendarApp(a, ctx, testSettings())
	app.Clock = MockClock{CurrentTime: testNow}
	// Polling and debounce never fire during a test; flows stop after
	// their synchronous part.
	app.Timing = engine.Timing{
		Debounce:          time.Hour,
		Poll:              time.Hour,
		VisibilityTimeout: -1,
		TodayTick:         time.Hour,
	}
	if prefs != nil {
		prefs(app.Preferences)
	}

	require.NoError(t, app.Setup())
	t.Cleanup(app.Model.Close)
	return app
}

func dayTexts(app *CalendarApp) []string {
	out := make([]string, len(app.days))
	for i, l := range app.days {
		out[i] = l.Text
	}
	return out
}

func headingTexts(app *CalendarApp) []string {
	out := make([]string, len(app.headings))
	for i, l := range app.headings {
		out[i] = l.Text
	}
	return out
}

// -----------------------------------------------------------------------------
// Setup & Preferences Tests
// -----------------------------------------------------------------------------

func TestSetup_FirstWeekdayFromLocale(t *testing.T) {
	app := newTestApp(t, nil)

	assert.Equal(t, config.WeekdaySunday, app.Model.Calendar.FirstWeekday())
	assert.Equal(t, []string{"S", "M", "T", "W", "T", "F", "S"}, headingTexts(app))
	assert.Equal(t, "Calendar", app.Window.Title())
}

func TestSetup_PreferenceOverrides(t *testing.T) {
	app := newTestApp(t, func(p fyne.Preferences) {
		p.SetInt(config.PrefFirstWeekday, config.WeekdayMonday)
		p.SetString(config.PrefLanguage, "fr")
	})

	assert.Equal(t, config.WeekdayMonday, app.Model.Calendar.FirstWeekday())
	assert.Equal(t, []string{"L", "M", "M", "J", "V", "S", "D"}, headingTexts(app))
	assert.Equal(t, "Calendrier", app.Window.Title())
}

func TestSetup_InvalidWeekdayPreferenceIgnored(t *testing.T) {
	app := newTestApp(t, func(p fyne.Preferences) {
		p.SetInt(config.PrefFirstWeekday, 9)
	})
	assert.Equal(t, config.WeekdaySunday, app.Model.Calendar.FirstWeekday())
}

func TestSetup_RecordsVersion(t *testing.T) {
	app := newTestApp(t, nil)
	assert.Equal(t, config.Version, app.Preferences.String(config.PrefLastRun))
}

func TestSetup_InvalidSettings(t *testing.T) {
	app := NewCalendarApp(test.NewApp(), context.Background(), config.Settings{})
	err := app.Setup()
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrModelBuild)
}

// -----------------------------------------------------------------------------
// Localization Tests
// -----------------------------------------------------------------------------

func TestLocalization_Switching(t *testing.T) {
	app := newTestApp(t, nil)

	// Case 1: English (Default)
	assert.Equal(t, "Today", app.todayBtn.Text)
	assert.Equal(t, "Today is 15 Mar 2024", app.todayLabel.Text)

	// Case 2: French
	app.Preferences.SetString(config.PrefLanguage, "fr")
	app.applyPreferences()
	assert.Equal(t, "Aujourd'hui", app.todayBtn.Text)
	assert.Equal(t, "Nous sommes le 15 mars 2024", app.todayLabel.Text)
	assert.Equal(t, "mars", app.Model.Calendar.MonthInfo(app.Model.Today.Date()).DisplayName)
}

func TestConfiguration_WorkerSignal(t *testing.T) {
	app := newTestApp(t, nil)
	app.watchPreferences()

	signalReceived := make(chan bool)
	go func() {
		select {
		case key := <-app.configChan:
			signalReceived <- key == config.PrefLanguage
		case <-time.After(500 * time.Millisecond):
			signalReceived <- false
		}
	}()

	app.Preferences.SetString(config.PrefLanguage, "fr")

	assert.True(t, <-signalReceived, "Changing the language should notify the background worker")
}

// -----------------------------------------------------------------------------
// Window & Viewport Tests
// -----------------------------------------------------------------------------

func TestWindow_EmptyBeforeFirstScroll(t *testing.T) {
	app := newTestApp(t, nil)

	assert.Equal(t, []string{"", "", "", "", "", "", ""}, dayTexts(app))
	assert.Equal(t, config.EmptyToolbar, app.toolbar.Text)
}

func TestTodayButton_SelectsAndScrolls(t *testing.T) {
	app := newTestApp(t, nil)

	test.Tap(app.todayBtn)

	assert.Equal(t, 76, app.Model.Week.Selected())
	assert.Equal(t, 71, app.view.first)
	assert.Equal(t, []string{"10", "11", "12", "13", "14", "15", "16"}, dayTexts(app))
	assert.Equal(t, widget.HighImportance, app.days[5].Importance)
	assert.True(t, app.days[5].TextStyle.Bold, "today is drawn bold")
	assert.Equal(t, widget.MediumImportance, app.days[4].Importance)
	assert.Equal(t, "2024", app.toolbar.Text)
	assert.Equal(t, []int{3}, app.Model.Months.VisibleTags())
}

func TestStepWeek_MovesRow(t *testing.T) {
	app := newTestApp(t, nil)

	// Nothing on screen yet.
	app.stepWeek(1)
	assert.Zero(t, app.view.first)

	test.Tap(app.todayBtn)
	app.stepWeek(1)

	assert.Equal(t, 78, app.view.first)
	assert.Equal(t, []string{"17", "18", "19", "20", "21", "22", "23"}, dayTexts(app))
	assert.Equal(t, []int{3}, app.Model.Months.VisibleTags())
	assert.Equal(t, 76, app.Model.Week.Selected(), "samples are dropped while the tap reconciles")

	app.stepWeek(-2)
	assert.Equal(t, 64, app.view.first)
	assert.Equal(t, "3", app.days[0].Text)
}

func TestShowInitial_QueuesRequestedDate(t *testing.T) {
	app := newTestApp(t, nil)
	app.Initial = calendar.NewDate(2024, 6, 1)

	app.showInitial()

	assert.Equal(t, 1, app.Model.Pending()[engine.WeekKind])
	assert.Zero(t, app.Model.Week.Selected(), "the queue applies the selection once its loop runs")
}

func TestShowInitial_OutOfRangeFallsBackToToday(t *testing.T) {
	app := newTestApp(t, nil)
	app.Initial = calendar.NewDate(2023, 5, 1)

	app.showInitial()

	assert.Zero(t, app.Model.Pending()[engine.WeekKind])
	assert.Equal(t, 76, app.Model.Week.Selected())
}

func TestViewport_YearBoundaryTie(t *testing.T) {
	app := newTestApp(t, nil)

	// Sunday 2024-12-29 .. Saturday 2025-01-04.
	app.view.show(365)

	assert.Equal(t, []int{12, 13}, app.Model.Months.VisibleTags())
	assert.Equal(t, "2024", app.toolbar.Text, "ties go to the earlier year")
}

func TestViewport_StripStartBeforeMonths(t *testing.T) {
	app := newTestApp(t, nil)

	// Tag 1 is 2023-12-31, before the month list's first month.
	app.view.show(1)

	assert.Equal(t, []int{1}, app.Model.Months.VisibleTags())
	assert.Equal(t, "31", app.days[0].Text)
	assert.Equal(t, "1", app.days[1].Text)
}

func TestViewport_IgnoresOtherViews(t *testing.T) {
	app := newTestApp(t, nil)

	app.view.ScrollTo(app.Model.Months.ID(), 5, scroll.Top)
	app.view.ScrollTo(app.Model.Year.ID(), 6, scroll.Center)
	assert.Zero(t, app.view.first)

	app.view.ScrollTo(app.Model.Week.ID(), 80, scroll.Leading)
	assert.Equal(t, 78, app.view.first)
}

func TestViewport_OutOfRangeIgnored(t *testing.T) {
	app := newTestApp(t, nil)

	app.view.show(app.Model.Week.Len() + 1)
	assert.Zero(t, app.view.first)
	app.view.show(-6)
	assert.Zero(t, app.view.first)
}

// -----------------------------------------------------------------------------
// Tray Tests
// -----------------------------------------------------------------------------

func TestTray_MenuFollowsLanguage(t *testing.T) {
	app := newTestApp(t, nil)
	mockTray := &MockTray{}
	app.Tray = mockTray
	app.setupTrayMenu()

	require.NotNil(t, mockTray.Menu)
	require.Len(t, mockTray.Menu.Items, 3)
	assert.Equal(t, "Today is 15 Mar 2024", mockTray.Menu.Items[0].Label)
	assert.Equal(t, "Show calendar", mockTray.Menu.Items[2].Label)

	app.Preferences.SetString(config.PrefLanguage, "fr")
	app.applyPreferences()
	assert.Equal(t, "Nous sommes le 15 mars 2024", mockTray.Menu.Items[0].Label)
	assert.Equal(t, "Afficher le calendrier", mockTray.Menu.Items[2].Label)
}

// -----------------------------------------------------------------------------
// Dispatcher Tests
// -----------------------------------------------------------------------------

func TestFyneDispatcher_Runs(t *testing.T) {
	_ = test.NewApp()

	var ran atomic.Bool
	fyneDispatcher{}.Do(func() { ran.Store(true) })

	assert.Eventually(t, ran.Load, time.Second, 5*time.Millisecond)
}
