package reminders

import (
	"fmt"
	"strings"

	"github.com/julianstephens/habitsync/internal/cli"
	"github.com/julianstephens/habitsync/internal/models"
)

type ListCmd struct {
	Kind string `help:"Filter by kind (medicine|water)." enum:"medicine,water,"`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	kinds := []models.ReminderKind{models.ReminderKindMedicine, models.ReminderKindWater}
	if c.Kind != "" {
		kinds = []models.ReminderKind{models.ReminderKind(c.Kind)}
	}

	var all []models.Reminder
	for _, kind := range kinds {
		reminders, err := ctx.Store.GetActiveReminders(ctx.OwnerID, kind)
		if err != nil {
			return fmt.Errorf("failed to get %s reminders: %w", kind, err)
		}
		all = append(all, reminders...)
	}

	if len(all) == 0 {
		fmt.Println("No reminders configured.")
		return nil
	}

	fmt.Printf("%-36s %-10s %-20s %-8s %-16s\n", "ID", "Kind", "Label", "Time", "Recurrence")
	fmt.Println(strings.Repeat("-", 94))

	for _, rem := range all {
		label := rem.Label
		if label == "" {
			label = "-"
		}
		if len(label) > 18 {
			label = label[:15] + "..."
		}
		fmt.Printf("%-36s %-10s %-20s %-8s %-16s\n",
			rem.ID, rem.Kind, label, rem.DisplayTime(), rem.FormatRecurrence())
	}

	return nil
}
