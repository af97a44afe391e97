package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Settings holds the runtime knobs that are not compile-time constants.
// Fields are populated from the process environment, optionally seeded by a .env file.
type Settings struct {
	Locale       string // BCP 47 tag; empty means "detect from the OS"
	FirstWeekday int    // 1 (Sunday) .. 7 (Saturday); 0 means "use the locale rule"
	BaseYear     int    // first year any view can address
	NumYears     int    // year grid length
	NumMonths    int    // month list length
	NumDays      int    // week strip length
	Strict       bool   // turn registry invariant violations into panics
	LogLevel     string // info or debug
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Settings {
	return Settings{
		FirstWeekday: DisabledWeekday,
		BaseYear:     DefaultBaseYear,
		NumYears:     DefaultNumYears,
		NumMonths:    DefaultNumMonths,
		NumDays:      DefaultNumDays,
		LogLevel:     LogLevelInfo,
	}
}

// Load reads settings from the environment.
// A .env file in the working directory is loaded first if present.
func Load() (Settings, error) {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	s := Defaults()
	s.Locale = getEnv(EnvLocale, s.Locale)
	s.FirstWeekday = getEnvInt(EnvFirstWeekday, s.FirstWeekday)
	s.BaseYear = getEnvInt(EnvBaseYear, s.BaseYear)
	s.NumYears = getEnvInt(EnvNumYears, s.NumYears)
	s.NumMonths = getEnvInt(EnvNumMonths, s.NumMonths)
	s.NumDays = getEnvInt(EnvNumDays, s.NumDays)
	s.Strict = getEnvBool(EnvStrict, s.Strict)
	s.LogLevel = strings.ToLower(getEnv(EnvLogLevel, s.LogLevel))

	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", ErrInvalidSetting, err)
	}

	slog.Debug(MsgSettingsLoaded,
		LogKeyComponent, CompConfig,
		LogKeySetting, s,
	)
	return s, nil
}

// Validate checks every field and reports all problems at once.
func (s Settings) Validate() error {
	var errs []error

	if s.FirstWeekday != DisabledWeekday && (s.FirstWeekday < WeekdaySunday || s.FirstWeekday > WeekdaySat) {
		errs = append(errs, fmt.Errorf("%s must be between 1 and 7, got %d", EnvFirstWeekday, s.FirstWeekday))
	}
	if s.BaseYear < MinBaseYear {
		errs = append(errs, fmt.Errorf("%s must be at least %d, got %d", EnvBaseYear, MinBaseYear, s.BaseYear))
	}
	if s.NumYears < 1 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvNumYears, s.NumYears))
	}
	if s.NumMonths < 1 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvNumMonths, s.NumMonths))
	}
	if s.NumDays < DaysPerWeek {
		errs = append(errs, fmt.Errorf("%s must cover at least one week, got %d", EnvNumDays, s.NumDays))
	}
	switch s.LogLevel {
	case LogLevelInfo, LogLevelDebug:
	default:
		errs = append(errs, fmt.Errorf("%s must be one of: info, debug; got %q", EnvLogLevel, s.LogLevel))
	}

	return errors.Join(errs...)
}

// getEnv reads an environment variable with a default fallback.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
