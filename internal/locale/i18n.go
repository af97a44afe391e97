package locale

import (
	"embed"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-calendar/internal/calendar"
	"github.com/tartampluch/go-calendar/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Bundle holds every embedded translation.
type Bundle struct {
	bundle    *i18n.Bundle
	languages []string
}

// LoadBundle parses the embedded locales/active.<lang>.json files.
// Unreadable files are logged and skipped so a broken translation never blocks startup.
func LoadBundle() *Bundle {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	b := &Bundle{bundle: bundle}

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return b
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}

		b.languages = append(b.languages, langCode)
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
		)
	}

	return b
}

// Languages lists the language codes that loaded successfully.
func (b *Bundle) Languages() []string {
	return b.languages
}

// Localizer returns a translator for tag, falling back to English.
func (b *Bundle) Localizer(tag language.Tag) *Localizer {
	return &Localizer{
		loc:      i18n.NewLocalizer(b.bundle, tag.String(), config.DefaultLanguage),
		fallback: calendar.EnglishNames{},
	}
}

// Localizer translates message keys and implements calendar.Namer.
type Localizer struct {
	loc      *i18n.Localizer
	fallback calendar.Namer
}

var _ calendar.Namer = (*Localizer)(nil)

// Msg translates key, returning the key itself when no translation exists.
func (l *Localizer) Msg(key string) string {
	return l.MsgWith(key, nil)
}

// MsgWith translates key with template data.
func (l *Localizer) MsgWith(key string, data map[string]any) string {
	if l == nil || l.loc == nil {
		return key
	}
	msg, err := l.loc.Localize(&i18n.LocalizeConfig{MessageID: key, TemplateData: data})
	if err != nil || msg == "" {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

// MonthName returns the short localized month name.
func (l *Localizer) MonthName(month int) string {
	key := config.TKeyMonthPrefix + strconv.Itoa(month)
	if msg := l.Msg(key); msg != key {
		return msg
	}
	return l.fallbackNamer().MonthName(month)
}

// WeekdaySymbol returns the localized weekday initial (Sunday=1).
func (l *Localizer) WeekdaySymbol(weekday int) string {
	key := config.TKeyWeekdayPref + strconv.Itoa(weekday)
	if msg := l.Msg(key); msg != key {
		return msg
	}
	return l.fallbackNamer().WeekdaySymbol(weekday)
}

func (l *Localizer) fallbackNamer() calendar.Namer {
	if l == nil || l.fallback == nil {
		return calendar.EnglishNames{}
	}
	return l.fallback
}
