package reminders

import (
	"fmt"

	"github.com/julianstephens/habitsync/internal/cli"
)

type DeleteCmd struct {
	ID string `arg:"" help:"Reminder ID to delete."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteReminder(c.ID); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	fmt.Printf("✓ Reminder deleted: %s\n", c.ID)
	return nil
}
