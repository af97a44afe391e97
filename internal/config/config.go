package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName     = "Go Calendar"
	AppID       = "com.github.tartampluch.go-calendar"
	LogFileName = "app.log"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1

	// DispatchQueueSize bounds the closures waiting on a serial timeline.
	DispatchQueueSize = 256
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagDate         = "date"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging and strict invariant checks"
	FlagDescDate     = "Open the week strip on this YYYY-MM-DD date instead of today"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Timing
// -----------------------------------------------------------------------------

const (
	// DebounceQuiet is the quiet period a scroll strip must observe before snapping.
	DebounceQuiet = 200 * time.Millisecond

	// VisibilityPollInterval is the pause between two "is the target on screen" checks.
	VisibilityPollInterval = 100 * time.Millisecond

	// VisibilityTimeout bounds a visibility wait. Zero disables the bound.
	VisibilityTimeout = 3 * time.Second

	// NavigationPollInterval paces the pending navigation drain loop.
	NavigationPollInterval = 100 * time.Millisecond

	// TodayTickInterval is the wall-clock polling period of the today ticker.
	TodayTickInterval = 1 * time.Second
)

// -----------------------------------------------------------------------------
// Calendar Geometry
// -----------------------------------------------------------------------------

const (
	DaysPerWeek    = 7
	MonthsPerYear  = 12
	WeekdaySunday  = 1
	WeekdayMonday  = 2
	WeekdayFriday  = 6
	WeekdaySat     = 7
	YearGridCols   = 3
	YearGridCells  = 15 // 12 months + year label + 2 spacers
	YearGridOffset = 3  // label and spacers precede January
	YearLabelSlot  = -2

	// CursorLimit is the exclusive upper bound of the month grid cursor:
	// one header row and up to six week rows.
	CursorLimit = 50
)

// -----------------------------------------------------------------------------
// Defaults & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultLanguage  = "en"
	DefaultBaseYear  = 2020
	DefaultNumYears  = 20
	DefaultNumMonths = 240
	DefaultNumDays   = 7 * 52 * 20
	MinBaseYear      = 1601
	DisabledWeekday  = 0
	DateLayout       = "2006-01-02"
	DateDisplay      = "%d %s %d" // day, month name, year
	LogLevelInfo     = "info"
	LogLevelDebug    = "debug"
	EmptyToolbar     = ""
)

// SupportedLanguages defines the list of bundled UI languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Environment Keys (.env / process environment)
// -----------------------------------------------------------------------------

const (
	EnvLocale       = "CALENDAR_LOCALE"
	EnvFirstWeekday = "CALENDAR_FIRST_WEEKDAY"
	EnvBaseYear     = "CALENDAR_BASE_YEAR"
	EnvNumYears     = "CALENDAR_NUM_YEARS"
	EnvNumMonths    = "CALENDAR_NUM_MONTHS"
	EnvNumDays      = "CALENDAR_NUM_DAYS"
	EnvStrict       = "CALENDAR_STRICT"
	EnvLogLevel     = "LOG_LEVEL"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	MainWindowWidth  = 360
	MainWindowHeight = 160

	PrefLanguage     = "language"
	PrefFirstWeekday = "first_weekday"
	PrefLastRun      = "last_run_version"

	// WeekCellWidth is the nominal width of one day column, used to express
	// strip offsets for scroll samples.
	WeekCellWidth = 48.0
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle    = "win_title"
	TKeyBtnToday    = "btn_today"
	TKeyLblToday    = "lbl_today"
	TKeyMenuOpen    = "menu_open"
	TKeyMonthPrefix = "month_"   // month_1 .. month_12
	TKeyWeekdayPref = "weekday_" // weekday_1 (Sunday) .. weekday_7
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInvalidSetting  = "configuration error: invalid setting"
	ErrOutOfRange      = "date precedes the configured base year"
	ErrBadDate         = "unable to parse date"
	ErrEmptyRegistry   = "registry needs at least one unit"
	ErrTagNotFound     = "tag not registered"
	ErrDateNotFound    = "date not registered"
	ErrInvariant       = "registry invariant violated"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrCreateDir       = "could not create app cache dir"
	ErrAppFailed       = "application failed unexpectedly"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
	ErrDispatchStopped = "timeline stopped"
	ErrBackground      = "background loop failed"
	ErrModelBuild      = "failed to build calendar model"
	ErrTrayUnsupported = "system tray not supported by driver"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting     = "Starting application"
	MsgAppStop         = "Application stopped gracefully"
	MsgCtxCancel       = "Context cancelled, shutting down UI"
	MsgLogWarning      = "Warning: %s at %s: %v\n"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgLocaleDetected  = "Locale detected"
	MsgTransMissing    = "Missing translation key"
	MsgTickerStart     = "Today ticker started"
	MsgTickerStop      = "Today ticker stopping due to context cancellation"
	MsgRollover        = "Calendar day rolled over"
	MsgQueueStart      = "Navigation queue started"
	MsgQueueStop       = "Navigation queue stopping due to context cancellation"
	MsgNavEnqueued     = "Navigation enqueued"
	MsgNavApplied      = "Navigation applied"
	MsgNavAbandoned    = "Navigation abandoned: target never became visible"
	MsgSnap            = "Strip snapped to week boundary"
	MsgSelect          = "Selection reconciling"
	MsgSelectParked    = "Selection parked until current pass completes"
	MsgReconciled      = "Selection reconciled"
	MsgReconcileAbort  = "Reconcile abandoned: selection never became visible"
	MsgViewAppear      = "View appeared"
	MsgViewDisappear   = "View disappeared"
	MsgScrollCommand   = "Scroll command"
	MsgReturnTo        = "Returning to month"
	MsgModelStart      = "Calendar model started"
	MsgSettingsLoaded  = "Settings loaded"
	MsgSampleDropped   = "Scroll sample dropped while reconciling"
	MsgStaleCompletion = "Ignoring completion from a cancelled pass"
	MsgWorkerStart     = "Preference worker started"
	MsgWorkerStop      = "Preference worker stopping due to context cancellation"
	MsgPrefsChanged    = "Preferences changed"
	MsgWeekdayDeferred = "First weekday change applies on next start"
	MsgFirstRun        = "First run of this version"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyView      = "view"
	LogKeyViewID    = "view_id"
	LogKeyTag       = "tag"
	LogKeyTarget    = "target"
	LogKeyPrimary   = "primary"
	LogKeySecondary = "secondary"
	LogKeyAnchor    = "anchor"
	LogKeyDate      = "date"
	LogKeyYear      = "year"
	LogKeyMonth     = "month"
	LogKeyRollovers = "rollovers"
	LogKeyInterval  = "interval"
	LogKeyPending   = "pending"
	LogKeyLang      = "lang"
	LogKeyFile      = "file"
	LogKeyKey       = "key"
	LogKeyGen       = "generation"
	LogKeyWaited    = "waited_ms"
	LogKeySetting   = "setting"
	LogKeyValue     = "value"
	LogKeyYears     = "years"
	LogKeyStrict    = "strict"
	LogKeyOffset    = "offset"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI         = "ui"
	CompMain       = "main"
	CompI18n       = "i18n"
	CompConfig     = "config"
	CompEngine     = "engine"
	CompScroll     = "scroll"
	CompNavigation = "navigation"
	CompToday      = "today"
	CompTimeline   = "timeline"
	CompWorker     = "worker"
)
