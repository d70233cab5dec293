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

// UserAgent identifies the HTTP client.
var UserAgent = "All-Friends/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "All Friends"
	AppID             = "com.github.redoswald.all-friends"
	KeyringService    = "com.github.redoswald.all-friends"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	EnvPrefix         = "ALLFRIENDS_"
	DefaultEnvFile    = ".env"
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
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagDebug       = "debug"
	FlagEnvFile     = "env-file"
	FlagLang        = "lang"
	FlagJSON        = "json"
	FlagFrom        = "from"
	FlagTo          = "to"
	FlagDays        = "days"
	FlagDescDebug   = "Enable debug logging to stdout"
	FlagDescEnvFile = "Path to an optional .env file"
	FlagDescLang    = "Language used for status text (en, fr)"
	FlagDescJSON    = "Print machine-readable JSON instead of a table"
	FlagDescFrom    = "First day of the range (YYYY-MM-DD)"
	FlagDescTo      = "Last day of the range (YYYY-MM-DD)"
	FlagDescDays    = "Number of days to snooze selected contacts"

	MsgVersionOutput = "%s version %s (commit %s, built %s) %s/%s\n"
)

// SupportedLanguages defines the list of available status languages (ISO 639-1).
var SupportedLanguages = []string{"en", "fr"}

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyBackToday        = "status_back_today"
	TKeyBackTomorrow     = "status_back_tomorrow"
	TKeyAwayDays         = "status_away_days" // Requires Count
	TKeyPlannedToday     = "status_planned_today"
	TKeyPlannedTomorrow  = "status_planned_tomorrow"
	TKeyPlannedDays      = "status_planned_days" // Requires Count
	TKeyNoCadence        = "status_no_cadence"
	TKeyNeverSeen        = "status_never_seen"
	TKeyOverdueDays      = "status_overdue_days" // Requires Count
	TKeyDueInDays        = "status_due_in_days"  // Requires Count
	TKeyUntilDueDays     = "status_until_due_days"
	TKeyAnnualFrequency  = "annual_frequency" // Requires Count
	TKeyEvtReachOut      = "event_reach_out"  // Requires Name
	TKeyEvtPlanNext      = "event_plan_next"  // Requires Name
	TKeyEvtSnoozed       = "event_snoozed"    // Requires Name
	TKeyEvtAway          = "event_away"       // Requires Name, Label
	TKeyCadenceWeekly    = "cadence_weekly"
	TKeyCadenceBiweekly  = "cadence_biweekly"
	TKeyCadenceMonthly   = "cadence_monthly"
	TKeyCadenceQuarterly = "cadence_quarterly"
	TKeyCadenceCustom    = "cadence_custom"
	TKeyCadenceNone      = "cadence_none"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	SourceModeWeb     = "web"
	SourceModeLocal   = "local"
	SourceModeCardDAV = "carddav"
	DefaultPort       = "18080"
	DefaultRefreshMin = 60
	DefaultLanguage   = "en"
	UIDNamespace      = "all-friends-v1" // Seed for deterministic event UIDs

	// DateOnlyHourUTC is the hour at which date-only values are stored.
	// Noon UTC keeps the calendar date identical from UTC-12 to UTC+12.
	DateOnlyHourUTC = 12
)

// ISO8601 Duration Components for Reminders
const (
	ISOPeriodPrefix   = "P"
	ISONegativePrefix = "-P"
	ISOTimePrefix     = "T"
	ISODay            = "D"
	ISOHour           = "H"
	ISOMinute         = "M"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar & vCard
// -----------------------------------------------------------------------------

const (
	// iCal Properties
	ICalVersion     = "2.0"
	ICalProdid      = "-//All Friends//Reminders//EN"
	ICalCalName     = "Reach out"
	ICalMethod      = "PUBLISH"
	ICalScale       = "GREGORIAN"
	ICalComponent   = "VALARM"
	ICalAction      = "DISPLAY"
	ICalDomain      = "allfriends"
	ICalTransparent = "TRANSPARENT"

	// iCal Fields
	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDTStart     = "DTSTART"
	PropDTEnd       = "DTEND"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropAction      = "ACTION"
	PropDescription = "DESCRIPTION"
	PropCategories  = "CATEGORIES"
	PropTransp      = "TRANSP"
	PropTrigger     = "TRIGGER"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"

	// vCard Fields. The X- properties carry the contact facts
	// consumed by the cadence engine.
	VCardUID          = "UID"
	VCardFN           = "FN"
	VCardN            = "N"
	VCardCadence      = "X-CADENCE-DAYS"
	VCardLastEvent    = "X-LAST-EVENT"
	VCardNextEvent    = "X-NEXT-EVENT"
	VCardOOO          = "X-OOO"
	VCardSnoozedUntil = "X-SNOOZED-UNTIL"
	VCardParamLabel   = "LABEL"

	// OOORangeSeparator splits "start/end" in X-OOO values.
	OOORangeSeparator = "/"

	DefaultICalRefresh = 1 * time.Hour
)

// -----------------------------------------------------------------------------
// Data Formats & Limits
// -----------------------------------------------------------------------------

const (
	DateFormatFullDash  = "2006-01-02"
	DateFormatFullBasic = "20060102"
	DateFormatRFC3339   = time.RFC3339
	DateFormatFullT     = "2006-01-02T15:04:05Z"

	MinPort = 1
	MaxPort = 65535

	FormatUID     = "%s-%s@%s"
	UIDKindOOO    = "ooo"
	FormatOOOUID  = "%s-%d"
	FormatUIDSeed = "%s|%s"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 256 * 1024 * 1024 // 256MB
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	AddrSeparator       = ":"

	RouteRoot           = "/"
	RouteCalendar       = "/calendar.ics"
	RouteContacts       = "/api/contacts"
	RouteDashboard      = "/api/dashboard"
	RouteCadenceOptions = "/api/cadence-options"
	RouteHealth         = "/healthz"
	QueryLang           = "lang"
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"
	HeaderAcceptLanguage  = "Accept-Language"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrLocalPathEmpty  = "configuration error: local path is empty"
	ErrWebURLEmpty     = "configuration error: web URL is empty"
	ErrFetcherMissing  = "internal error: network fetcher is not initialized"
	ErrModeUnsupport   = "configuration error: unsupported source mode"
	ErrServerStartup   = "server startup failed"
	ErrServerShutdown  = "server shutdown failed"
	ErrPortRequired    = "server port is required"
	ErrPortNumber      = "server port must be a number"
	ErrPortRange       = "server port must be between 1 and 65535"
	ErrInvalidURL      = "invalid URL structure"
	ErrProtocol        = "unsupported protocol scheme (http/https only)"
	ErrVCardParse      = "failed to parse vCard stream"
	ErrVCardEncode     = "failed to encode vCard stream"
	ErrCardDAVClient   = "failed to create CardDAV client"
	ErrCardDAVQuery    = "CardDAV address book query failed"
	ErrICalEncode      = "failed to encode iCalendar data"
	ErrDateParse       = "unable to parse date"
	ErrCadenceParse    = "cadence must be a positive number of days"
	ErrOOOParse        = "out-of-office value must be start/end"
	ErrSnoozeDays      = "snooze days must be positive"
	ErrSnoozeRange     = "snooze range end is before its start"
	ErrLogFile         = "failed to open log file"
	ErrCacheDir        = "could not determine user cache dir"
	ErrCreateDir       = "could not create app cache dir"
	ErrWriteResp       = "failed to write response body"
	ErrEncodeJSON      = "failed to encode JSON response"
	ErrLocalesAccess   = "failed to access embedded locales"
	ErrLocaleLoad      = "failed to load locale file"
	ErrLocNotInit      = "localizer not initialized"
	ErrEnvLoad         = "failed to load environment file"
	ErrEnvParse        = "failed to parse environment variables"
	ErrReminderUnit    = "configuration error: unsupported reminder unit"
	ErrReminderDir     = "configuration error: unsupported reminder direction"
	ErrRefreshInterval = "configuration error: refresh interval must not be negative"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Contacts initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgInternalErr  = "Internal Server Error"
	HTTPCodeNotReady    = "not_ready"
	HTTPCodeInternal    = "internal_error"
	HTTPStatusOK        = "ok"
)

// -----------------------------------------------------------------------------
// Fallbacks & Messages
// -----------------------------------------------------------------------------

const (
	FallbackReachOut = "Reach out: %s"
	FallbackPlanNext = "Plan next: %s"
	FallbackSnoozed  = "Snoozed: %s"
	FallbackAway     = "Away: %s"
	FallbackName     = "Unknown"

	// StubVCalendar is the minimal valid iCalendar object used when no events are found.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"

	MsgSyncStarted   = "Synchronization started..."
	MsgSyncFailed    = "Synchronization failed. Check logs."
	MsgSyncReq       = "Sync requested"
	MsgSyncDone      = "Sync completed"
	MsgWorkerStart   = "Background worker started"
	MsgWorkerStop    = "Worker stopping due to context cancellation"
	MsgAppStop       = "Application stopped gracefully"
	MsgSkippedCard   = "Skipping malformed vCard"
	MsgSkippedFact   = "Skipping invalid contact fact"
	MsgGenSuccess    = "Reminder feed generation successful"
	MsgAppStarting   = "Starting application"
	MsgServerListen  = "HTTP server listening"
	MsgServerStop    = "Shutting down HTTP server..."
	MsgCacheUpdated  = "Feed cache updated"
	MsgLocaleSkip    = "Skipping non-locale file"
	MsgLocaleBadName = "Skipping malformed locale filename"
	MsgLocaleLoaded  = "Locale loaded successfully"
	MsgTransMissing  = "Missing translation key"
	MsgPassFail      = "Password retrieval failed (might be empty)"
	MsgLogWarning    = "Warning: %s at %s: %v\n"
	MsgEnvMissing    = "No environment file found, using process environment"
	MsgContactDue    = "Contact needs attention"
	MsgSnoozePlan    = "Snooze selection computed"
	MsgNoSnooze      = "No contacts with due dates in this range"
	MsgSnoozeResult  = "Would snooze %d contacts until %s\n"
)

// -----------------------------------------------------------------------------
// Reminder Units & Directions
// -----------------------------------------------------------------------------

const (
	UnitDays    = "d"
	UnitHours   = "h"
	UnitMinutes = "m"
	DirBefore   = "before"
	DirAfter    = "after"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyInterval  = "interval"
	LogKeyUser      = "user"
	LogKeyTotal     = "total_cards"
	LogKeyTracked   = "contacts_tracked"
	LogKeyAttention = "contacts_attention"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyManual    = "manual"
	LogKeyValue     = "value"
	LogKeyProperty  = "property"
	LogKeyStats     = "stats"
	LogKeyCount     = "count"
	LogKeyName      = "name"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyCommit  = "commit"
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
	CompApp     = "app"
	CompEngine  = "engine"
	CompServer  = "server"
	CompFetcher = "fetcher"
	CompCardDAV = "carddav"
	CompWorker  = "worker"
	CompMain    = "main"
	CompI18n    = "i18n"
	CompConfig  = "config"
)
