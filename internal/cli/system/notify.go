package system

import (
	"fmt"

	"github.com/julianstephens/habitsync/internal/cli"
	"github.com/julianstephens/habitsync/internal/notifier"
)

// NotifyCmd sends a single notification through the desktop sink. It exists
// for scripting and for checking that the tray app is reachable.
type NotifyCmd struct {
	Title  string `arg:"" help:"Notification title."`
	Body   string `arg:"" help:"Notification body."`
	DryRun bool   `help:"Print the notification to stdout instead of sending it."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !settings.NotificationsEnabled {
		fmt.Println("Notifications are disabled in settings.")
		return nil
	}

	if c.DryRun {
		fmt.Printf("[DryRun] %s: %s\n", c.Title, c.Body)
		return nil
	}

	if err := notifier.NewDesktop().Notify(c.Title, c.Body); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	fmt.Println("✓ Notification sent")
	return nil
}
