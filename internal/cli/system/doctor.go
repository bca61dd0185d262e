package system

import (
	"errors"
	"fmt"

	"github.com/julianstephens/habitsync/internal/cli"
	"github.com/julianstephens/habitsync/internal/models"
	"github.com/julianstephens/habitsync/internal/storage"
	"github.com/julianstephens/habitsync/internal/validation"
)

// DoctorCmd checks stored data for inconsistencies: settings presence,
// reminder conflicts, and profile measurements that drifted out of range.
type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Printf("Storage: %s\n", ctx.Store.GetConfigPath())

	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("settings are unreadable: %w", err)
	}
	fmt.Println("✓ Settings readable")

	var reminders []models.Reminder
	for _, kind := range []models.ReminderKind{models.ReminderKindMedicine, models.ReminderKindWater} {
		rems, err := ctx.Store.GetActiveReminders(ctx.OwnerID, kind)
		if err != nil {
			return fmt.Errorf("failed to load %s reminders: %w", kind, err)
		}
		reminders = append(reminders, rems...)
	}
	medicines, err := ctx.Store.GetMedicines(ctx.OwnerID)
	if err != nil {
		return fmt.Errorf("failed to load medicines: %w", err)
	}

	v := validation.New()
	result := v.ValidateReminders(reminders, medicines)

	profile, err := ctx.Store.GetProfile(ctx.OwnerID)
	switch {
	case errors.Is(err, storage.ErrProfileNotFound):
		fmt.Println("ℹ No profile yet; run 'habitsync profile edit' to create one")
	case err != nil:
		return fmt.Errorf("failed to load profile: %w", err)
	default:
		profileResult := v.ValidateProfile(profile)
		result.Conflicts = append(result.Conflicts, profileResult.Conflicts...)
	}

	fmt.Println(result.FormatReport())
	if result.HasConflicts() {
		return fmt.Errorf("%d problem(s) detected", len(result.Conflicts))
	}
	return nil
}
