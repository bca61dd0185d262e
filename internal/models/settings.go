package models

// Settings represents application-wide settings
type Settings struct {
	NotificationsEnabled bool   `json:"notifications_enabled"` // whether reminder notifications are delivered
	Timezone             string `json:"timezone"`               // IANA timezone name, or "Local" for the system timezone
	DailyWaterGoalMl     int    `json:"daily_water_goal_ml"`    // the daily hydration goal in millilitres
	PollIntervalSec      int    `json:"poll_interval_sec"`      // reminder evaluation interval in seconds
}
