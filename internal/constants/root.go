package constants

import "time"

const (
	AppName            = "softstreaks"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/softstreaks"
	DefaultConfigPath  = "~/.config/softstreaks/config.yaml"
	DefaultStorePath   = "~/.config/softstreaks/softstreaks.db"
	Version            = "v0.3.0"

	// StateKey names the slot holding the persisted state document.
	StateKey = "softstreaks_v1"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// Environment overrides
	EnvStore        = "SOFTSTREAKS_STORE"
	EnvTimezone     = "SOFTSTREAKS_TIMEZONE"
	EnvDBConnection = "SOFTSTREAKS_DB_CONNECTION"

	// State limits
	HabitSlots   = 3
	MaxFavorites = 50

	DefaultHabitName  = "Habit"
	PlaceholderFormat = "Tiny win %d ✨"
	BonusPrefix       = "Bonus pick ✨ "

	// Export
	ExportFileName = "soft-streaks-export.json"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "softstreaks-"
	BackupFileSuffix = ".json"

	// Server constants
	DefaultServerPort = 7341
	ShutdownTimeout   = 10 * time.Second
	WatchDebounce     = 150 * time.Millisecond

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "softstreaks-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.softstreaks"
	TrayExecutablePrefix   = "softstreaks-tray"
)

// SessionState represents the current screen of the TUI application
type SessionState int

const (
	StateToday SessionState = iota
	StateFavorites
	StateEditHabits
	StateConfirmReset
)
