package reminders

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/julianstephens/habitsync/internal/cli"
	"github.com/julianstephens/habitsync/internal/models"
	"github.com/julianstephens/habitsync/internal/utils"
)

type AddCmd struct {
	Kind       string `arg:"" enum:"medicine,water" help:"Reminder kind (medicine|water)."`
	Time       string `help:"Time for the reminder (HH:MM)." required:""`
	Medicine   string `help:"Medicine name (required for medicine reminders)."`
	Recurrence string `help:"Recurrence: medicine accepts daily or a weekday name; water accepts once, daily, 1hr, 2hrs, 3hrs." default:"daily"`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	if _, err := utils.ParseTime(c.Time); err != nil {
		return fmt.Errorf("invalid time format (expected HH:MM): %w", err)
	}

	rem := models.Reminder{
		ID:        uuid.New().String(),
		OwnerID:   ctx.OwnerID,
		Kind:      models.ReminderKind(c.Kind),
		TimeOfDay: c.Time,
		Active:    true,
		CreatedAt: time.Now(),
	}

	switch rem.Kind {
	case models.ReminderKindMedicine:
		if c.Medicine == "" {
			return fmt.Errorf("medicine reminders require --medicine")
		}
		recurrence, err := cli.ParseMedicineRecurrence(c.Recurrence)
		if err != nil {
			return err
		}
		rem.Label = c.Medicine
		rem.Recurrence = recurrence
	case models.ReminderKindWater:
		recurrence, err := cli.ParseWaterRecurrence(c.Recurrence)
		if err != nil {
			return err
		}
		rem.Recurrence = recurrence
	}

	if err := rem.Validate(); err != nil {
		return err
	}
	if err := ctx.Store.AddReminder(rem); err != nil {
		return fmt.Errorf("failed to add reminder: %w", err)
	}

	if rem.Kind == models.ReminderKindMedicine {
		fmt.Printf("✓ Medicine reminder added: %s at %s (%s)\n", rem.Label, rem.DisplayTime(), rem.FormatRecurrence())
	} else {
		fmt.Printf("✓ Water reminder added at %s (%s)\n", rem.DisplayTime(), rem.FormatRecurrence())
	}
	return nil
}
