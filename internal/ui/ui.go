package ui

import (
	"context"
	"fmt"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-calendar/internal/calendar"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/engine"
	"github.com/tartampluch/go-calendar/internal/locale"
	"github.com/tartampluch/go-calendar/internal/today"
)

// fyneDispatcher runs view-model closures on the fyne event loop.
type fyneDispatcher struct{}

func (fyneDispatcher) Do(fn func()) { fyne.Do(fn) }

// CalendarApp encapsulates the UI state, preferences, and the calendar model.
type CalendarApp struct {
	App         fyne.App
	Window      fyne.Window
	Preferences fyne.Preferences
	Bundle      *locale.Bundle
	Localizer   *locale.Localizer
	Ctx         context.Context

	Settings config.Settings
	Initial  calendar.Date // first date shown in the strip; zero means today
	Clock    today.Clock   // Injected clock for testability
	Timing   engine.Timing // zero value uses the config defaults
	Model    *engine.Model

	Tray desktop.App
	Menu *fyne.Menu

	TrayTodayItem *fyne.MenuItem
	TrayOpenItem  *fyne.MenuItem

	SupportedLanguages []string
	configChan         chan string

	view       *viewport
	firstDay   int // first weekday the model was built with
	toolbar    *widget.Label
	todayLabel *widget.Label
	headings   []*widget.Label
	days       []*widget.Label
	todayBtn   *widget.Button
	prevBtn    *widget.Button
	nextBtn    *widget.Button
}

// NewCalendarApp constructs the application. Call Setup (or Run) to build the model.
func NewCalendarApp(a fyne.App, ctx context.Context, settings config.Settings) *CalendarApp {
	return &CalendarApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Settings:           settings,
		Clock:              today.RealClock{},
		SupportedLanguages: config.SupportedLanguages,
		configChan:         make(chan string, config.ChannelBufferSize),
	}
}

// Setup loads translations, builds the model on the fyne timeline and the main window.
func (app *CalendarApp) Setup() error {
	app.SetupI18n()

	s := app.resolveSettings()
	app.view = &viewport{app: app}
	model, err := engine.NewModel(s, engine.Deps{
		Names:    names{app: app},
		Clock:    app.Clock,
		Renderer: app.view,
		Timeline: fyneDispatcher{},
		Timing:   app.Timing,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrModelBuild, err)
	}
	app.Model = model
	app.firstDay = s.FirstWeekday

	app.buildWindow()
	app.Model.Week.Appear()
	app.Model.Months.Appear()
	app.recordVersion()
	return nil
}

// Run launches the background loops and the main UI loop.
func (app *CalendarApp) Run() error {
	if app.Model == nil {
		if err := app.Setup(); err != nil {
			return err
		}
	}
	app.watchPreferences()

	go func() {
		if err := app.Model.Start(app.Ctx); err != nil {
			slog.Error(config.ErrBackground,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)
		}
	}()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayUnsupported,
			config.LogKeyComponent, config.CompUI)
	}

	go app.backgroundWorker()

	app.showInitial()
	app.Window.Show()
	app.App.Run()
	return nil
}

// watchPreferences monitors changes to settings to trigger immediate updates.
func (app *CalendarApp) watchPreferences() {
	app.Preferences.AddChangeListener(func() {
		select {
		case app.configChan <- config.PrefLanguage:
		default:
		}
	})
}

// recordVersion logs the first start of a new build.
func (app *CalendarApp) recordVersion() {
	if app.Preferences.String(config.PrefLastRun) == config.Version {
		return
	}
	slog.Info(config.MsgFirstRun,
		config.LogKeyVersion, config.Version,
		config.LogKeyComponent, config.CompUI)
	app.Preferences.SetString(config.PrefLastRun, config.Version)
}

// setupTrayMenu constructs the system tray menu.
func (app *CalendarApp) setupTrayMenu() {
	app.TrayTodayItem = fyne.NewMenuItem(app.todayText(), func() {
		app.showToday()
	})
	app.TrayOpenItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuOpen), func() {
		app.Window.Show()
		app.Window.RequestFocus()
	})

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayTodayItem,
		fyne.NewMenuItemSeparator(),
		app.TrayOpenItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu updates localized labels in the tray menu.
func (app *CalendarApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayTodayItem.Label = app.todayText()
	app.TrayOpenItem.Label = app.GetMsg(config.TKeyMenuOpen)
	app.Menu.Refresh()
}

// backgroundWorker applies preference changes on the fyne thread.
func (app *CalendarApp) backgroundWorker() {
	log := slog.With(config.LogKeyComponent, config.CompWorker)
	log.Info(config.MsgWorkerStart)

	for {
		select {
		case <-app.Ctx.Done():
			log.Info(config.MsgWorkerStop)
			return

		case key := <-app.configChan:
			log.Debug(config.MsgPrefsChanged, config.LogKeySetting, key)
			fyne.Do(app.applyPreferences)
		}
	}
}

// applyPreferences reloads the language. The first weekday fixes the strip
// registry, so a change there only takes effect on the next start.
func (app *CalendarApp) applyPreferences() {
	app.UpdateLocalizer()
	if s := app.resolveSettings(); s.FirstWeekday != app.firstDay {
		slog.Info(config.MsgWeekdayDeferred,
			config.LogKeyValue, s.FirstWeekday,
			config.LogKeyComponent, config.CompUI)
	}
	app.refreshLabels()
	app.RefreshTrayMenu()
}
