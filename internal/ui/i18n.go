package ui

import (
	"log/slog"

	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/locale"
)

// SetupI18n loads the embedded translations and picks the active language.
func (app *CalendarApp) SetupI18n() {
	app.Bundle = locale.LoadBundle()
	if langs := app.Bundle.Languages(); len(langs) > 0 {
		app.SupportedLanguages = langs
	}
	app.UpdateLocalizer()
}

// UpdateLocalizer refreshes the translator from the language preference,
// falling back to the configured locale and then the OS.
func (app *CalendarApp) UpdateLocalizer() {
	tag := locale.Detect(app.languageOverride())
	app.Localizer = app.Bundle.Localizer(tag)
	slog.Debug(config.MsgLocaleDetected,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyLang, tag.String())
}

// GetMsg is a helper to translate a key safely.
func (app *CalendarApp) GetMsg(key string) string {
	return app.Localizer.Msg(key)
}

func (app *CalendarApp) languageOverride() string {
	if lang := app.Preferences.String(config.PrefLanguage); lang != "" {
		return lang
	}
	return app.Settings.Locale
}

// resolveSettings applies the stored preferences on top of the environment
// settings and resolves the first weekday from the locale when unset.
func (app *CalendarApp) resolveSettings() config.Settings {
	s := app.Settings
	s.Locale = app.languageOverride()

	wd := app.Preferences.IntWithFallback(config.PrefFirstWeekday, config.DisabledWeekday)
	if wd >= config.WeekdaySunday && wd <= config.WeekdaySat {
		s.FirstWeekday = wd
	}
	if s.FirstWeekday == config.DisabledWeekday {
		s.FirstWeekday = locale.FirstWeekday(locale.Detect(s.Locale))
	}
	return s
}

// names resolves month and weekday names through the current localizer, so
// a language switch reaches the calendar without rebuilding it.
type names struct {
	app *CalendarApp
}

func (n names) MonthName(month int) string {
	return n.app.Localizer.MonthName(month)
}

func (n names) WeekdaySymbol(weekday int) string {
	return n.app.Localizer.WeekdaySymbol(weekday)
}
