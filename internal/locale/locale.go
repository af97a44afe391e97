// Package locale detects the user's locale and derives the calendar rules and
// display strings that depend on it.
package locale

import (
	"log/slog"
	"strings"

	golocale "github.com/jeandeaual/go-locale"
	"github.com/tartampluch/go-calendar/internal/config"
	"golang.org/x/text/language"
)

// Detect resolves the active locale. An explicit override wins, then the
// operating system preference, then English.
func Detect(override string) language.Tag {
	candidates := []string{override}
	if override == "" {
		if sys, err := golocale.GetLocale(); err == nil {
			candidates = append(candidates, sys)
		}
	}

	for _, c := range candidates {
		if c == "" {
			continue
		}
		// POSIX locales look like fr_FR.UTF-8.
		c = strings.SplitN(c, ".", 2)[0]
		c = strings.ReplaceAll(c, "_", "-")
		tag, err := language.Parse(c)
		if err != nil {
			continue
		}
		slog.Debug(config.MsgLocaleDetected,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, tag.String(),
		)
		return tag
	}
	return language.English
}

// Regions whose week does not start on Monday, from CLDR weekData.
var (
	sundayRegions = setOf("AG", "AS", "BD", "BR", "BS", "BT", "BW", "BZ", "CA", "CN", "CO", "DM",
		"DO", "ET", "GT", "GU", "HK", "HN", "ID", "IL", "IN", "JM", "JP", "KE", "KH", "KR", "LA",
		"MH", "MM", "MO", "MT", "MX", "MZ", "NI", "NP", "PA", "PE", "PH", "PK", "PR", "PT", "PY",
		"SA", "SG", "SV", "TH", "TT", "TW", "UM", "US", "VE", "VI", "WS", "YE", "ZA", "ZW")
	saturdayRegions = setOf("AE", "AF", "BH", "DJ", "DZ", "EG", "IQ", "IR", "JO", "KW", "LY",
		"OM", "QA", "SD", "SY")
	fridayRegions = setOf("MV")
)

// FirstWeekday returns the first day of the week for tag, Sunday=1 .. Saturday=7.
// A tag without a region uses the region x/text infers for its language
// ("en" resolves to US, "fr" to FR).
func FirstWeekday(tag language.Tag) int {
	region, _ := tag.Region()
	code := region.String()

	switch {
	case sundayRegions[code]:
		return config.WeekdaySunday
	case saturdayRegions[code]:
		return config.WeekdaySat
	case fridayRegions[code]:
		return config.WeekdayFriday
	default:
		return config.WeekdayMonday
	}
}

func setOf(codes ...string) map[string]bool {
	m := make(map[string]bool, len(codes))
	for _, c := range codes {
		m[c] = true
	}
	return m
}
