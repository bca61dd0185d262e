package settings

import (
	"fmt"

	"github.com/julianstephens/habitsync/internal/cli"
	"github.com/julianstephens/habitsync/internal/utils"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	NotificationsEnabled *bool   `help:"Enable or disable reminder notifications."`
	Timezone             *string `help:"IANA timezone name, or Local for the system timezone."`
	DailyWaterGoalMl     *int    `help:"Daily hydration goal in millilitres."`
	PollIntervalSec      *int    `help:"Reminder evaluation interval in seconds."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		fmt.Println("Current Settings:")
		fmt.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
		fmt.Printf("  Timezone:              %s\n", settings.Timezone)
		fmt.Printf("  Daily Water Goal:      %d ml\n", settings.DailyWaterGoalMl)
		fmt.Printf("  Poll Interval:         %d sec\n", settings.PollIntervalSec)
		return nil
	}

	updated := false
	if c.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}
	if c.Timezone != nil {
		if !utils.ValidateTimezone(*c.Timezone) {
			return fmt.Errorf("invalid timezone: %s", *c.Timezone)
		}
		settings.Timezone = *c.Timezone
		updated = true
	}
	if c.DailyWaterGoalMl != nil {
		if *c.DailyWaterGoalMl <= 0 {
			return fmt.Errorf("daily water goal must be positive")
		}
		settings.DailyWaterGoalMl = *c.DailyWaterGoalMl
		updated = true
	}
	if c.PollIntervalSec != nil {
		if *c.PollIntervalSec < 1 {
			return fmt.Errorf("poll interval must be at least 1 second")
		}
		settings.PollIntervalSec = *c.PollIntervalSec
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
