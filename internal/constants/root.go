package constants

import "time"

const (
	AppName            = "habitsync"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/habitsync/habitsync.db"
	Version            = "v0.3.0"

	// DefaultOwnerID scopes rows in single-user installs. Every CLI and TUI
	// session operates on this owner.
	DefaultOwnerID = "local"

	// Water tracking
	GlassSizeMl     = 250
	DailyWaterCapMl = 3000
	PointsPerGlass  = 2
	// GoalGlasses is the number of glasses that completes the daily goal.
	GoalGlasses = DailyWaterCapMl / GlassSizeMl

	// Scheduler
	DefaultPollInterval = time.Minute

	// Notification titles used by the scheduler
	MedicineReminderTitle = "Medicine Reminder"
	WaterReminderTitle    = "Water Reminder"

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "habitsync-notifier.lock"
	NotificationDurationMs = 10000
	TrayAppIdentifier      = "com.julianstephens.habitsync"
)
