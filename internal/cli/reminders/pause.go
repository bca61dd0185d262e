package reminders

import (
	"fmt"

	"github.com/julianstephens/habitsync/internal/cli"
)

// PauseCmd deactivates a reminder without deleting it, so the schedule can
// be kept while travelling or off a medication.
type PauseCmd struct {
	ID string `arg:"" help:"Reminder ID to pause."`
}

func (c *PauseCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeactivateReminder(c.ID); err != nil {
		return fmt.Errorf("failed to pause reminder: %w", err)
	}
	fmt.Printf("✓ Reminder paused: %s\n", c.ID)
	return nil
}
