package constants

const (
	// Settings keys
	SettingNotificationsEnabled = "notifications_enabled"
	SettingTimezone             = "timezone"
	SettingDailyWaterGoalMl     = "daily_water_goal_ml"
	SettingPollIntervalSec      = "poll_interval_sec"

	// Default settings values
	DefaultNotificationsEnabled = true
	DefaultTimezone             = "Local" // Use system local timezone by default
	DefaultDailyWaterGoalMl     = DailyWaterCapMl
	DefaultPollIntervalSec      = 60
)
