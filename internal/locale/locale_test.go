package locale_test

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-calendar/internal/calendar"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/locale"
	"golang.org/x/text/language"
)

func TestDetect_Override(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"fr-FR", "fr-FR"},
		{"en_GB.UTF-8", "en-GB"},
		{"de", "de"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, locale.Detect(tt.in).String())
		})
	}
}

func TestDetect_GarbageFallsBack(t *testing.T) {
	// A malformed override is skipped; the result is still a usable tag.
	tag := locale.Detect("!!not-a-locale!!")
	assert.NotEqual(t, language.Und, tag)
}

func TestFirstWeekday(t *testing.T) {
	tests := []struct {
		tag  string
		want int
	}{
		{"en-US", config.WeekdaySunday},
		{"en", config.WeekdaySunday}, // region inferred as US
		{"ja-JP", config.WeekdaySunday},
		{"fr-FR", config.WeekdayMonday},
		{"fr", config.WeekdayMonday},
		{"en-GB", config.WeekdayMonday},
		{"ar-EG", config.WeekdaySat},
		{"dv-MV", config.WeekdayFriday},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			assert.Equal(t, tt.want, locale.FirstWeekday(language.MustParse(tt.tag)))
		})
	}
}

func TestBundle_LoadsEmbeddedLanguages(t *testing.T) {
	b := locale.LoadBundle()
	assert.ElementsMatch(t, config.SupportedLanguages, b.Languages())
}

func TestLocalizer_Names(t *testing.T) {
	b := locale.LoadBundle()

	en := b.Localizer(language.English)
	assert.Equal(t, "Jan", en.MonthName(1))
	assert.Equal(t, "Dec", en.MonthName(12))
	assert.Equal(t, "S", en.WeekdaySymbol(1))

	fr := b.Localizer(language.French)
	assert.Equal(t, "févr.", fr.MonthName(2))
	assert.Equal(t, "L", fr.WeekdaySymbol(2))

	// Unknown languages fall back to English.
	de := b.Localizer(language.German)
	assert.Equal(t, "Mar", de.MonthName(3))
}

func TestLocalizer_MissingKey(t *testing.T) {
	l := locale.LoadBundle().Localizer(language.English)
	assert.Equal(t, "no_such_key", l.Msg("no_such_key"))

	var nilLoc *locale.Localizer
	assert.Equal(t, "k", nilLoc.Msg("k"))
	assert.Equal(t, "Apr", nilLoc.MonthName(4))
}

func TestLocalizer_Template(t *testing.T) {
	l := locale.LoadBundle().Localizer(language.English)
	assert.Equal(t, "Today is 2024-01-01", l.MsgWith(config.TKeyLblToday, map[string]any{"Date": "2024-01-01"}))
}

func TestLocalizer_DrivesCalendar(t *testing.T) {
	fr := locale.LoadBundle().Localizer(language.French)
	c := calendar.New(locale.FirstWeekday(language.French), 2000, fr)

	assert.Equal(t, []string{"L", "M", "M", "J", "V", "S", "D"}, c.DayHeadings())
	assert.Equal(t, "août", c.MonthInfo(calendar.NewDate(2024, 8, 1)).DisplayName)
}

// TestI18nIntegrity ensures every key the code asks for exists in each locale file.
func TestI18nIntegrity(t *testing.T) {
	keys := []string{
		config.TKeyWinTitle, config.TKeyBtnToday, config.TKeyLblToday,
		config.TKeyMenuOpen,
	}
	for m := 1; m <= config.MonthsPerYear; m++ {
		keys = append(keys, config.TKeyMonthPrefix+strconv.Itoa(m))
	}
	for wd := 1; wd <= config.DaysPerWeek; wd++ {
		keys = append(keys, config.TKeyWeekdayPref+strconv.Itoa(wd))
	}

	for _, lang := range config.SupportedLanguages {
		t.Run(lang, func(t *testing.T) {
			content, err := os.ReadFile("locales/active." + lang + ".json")
			require.NoError(t, err)

			var jsonMap map[string]interface{}
			require.NoError(t, json.Unmarshal(content, &jsonMap), "JSON must be valid")

			for _, k := range keys {
				_, exists := jsonMap[k]
				assert.Truef(t, exists, "Key '%s' is missing in active.%s.json", k, lang)
			}
			for jsonKey := range jsonMap {
				if strings.HasPrefix(jsonKey, "_") {
					continue
				}
				assert.Contains(t, keys, jsonKey, "orphan key in active.%s.json", lang)
			}
		})
	}
}
