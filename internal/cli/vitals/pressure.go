package vitals

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/julianstephens/habitsync/internal/cli"
	"github.com/julianstephens/habitsync/internal/constants"
	"github.com/julianstephens/habitsync/internal/models"
	"github.com/julianstephens/habitsync/internal/utils"
)

type PressureLogCmd struct {
	Systolic  int `arg:"" help:"Systolic reading (mmHg)."`
	Diastolic int `arg:"" help:"Diastolic reading (mmHg)."`
	Pulse     int `help:"Pulse (bpm)."`
}

func (c *PressureLogCmd) Run(ctx *cli.Context) error {
	if c.Systolic <= 0 || c.Diastolic <= 0 {
		return fmt.Errorf("systolic and diastolic readings must be positive")
	}
	if c.Diastolic >= c.Systolic {
		return fmt.Errorf("diastolic reading must be below systolic")
	}

	log := models.BloodPressureLog{
		ID:        uuid.New().String(),
		OwnerID:   ctx.OwnerID,
		Systolic:  c.Systolic,
		Diastolic: c.Diastolic,
		Pulse:     c.Pulse,
		LoggedAt:  time.Now(),
	}
	if err := ctx.Store.AddBloodPressureLog(log); err != nil {
		return fmt.Errorf("failed to log blood pressure: %w", err)
	}

	fmt.Printf("✓ Blood pressure logged: %d/%d", c.Systolic, c.Diastolic)
	if c.Pulse > 0 {
		fmt.Printf(" (pulse %d)", c.Pulse)
	}
	fmt.Println()
	return nil
}

type PressureListCmd struct {
	Days int `help:"How many days back to list." default:"30"`
}

func (c *PressureListCmd) Run(ctx *cli.Context) error {
	since := utils.StartOfDay(ctx.Now()).AddDate(0, 0, -c.Days)
	logs, err := ctx.Store.GetBloodPressureLogsSince(ctx.OwnerID, since)
	if err != nil {
		return fmt.Errorf("failed to get blood pressure logs: %w", err)
	}

	if len(logs) == 0 {
		fmt.Printf("No blood pressure readings in the last %d days.\n", c.Days)
		return nil
	}

	fmt.Printf("%-20s %-10s %-10s %-8s\n", "Logged", "Systolic", "Diastolic", "Pulse")
	fmt.Println(strings.Repeat("-", 50))
	for _, l := range logs {
		pulse := "-"
		if l.Pulse > 0 {
			pulse = fmt.Sprintf("%d", l.Pulse)
		}
		fmt.Printf("%-20s %-10d %-10d %-8s\n",
			l.LoggedAt.Format(constants.DateFormat+" "+constants.TimeFormat),
			l.Systolic, l.Diastolic, pulse)
	}
	return nil
}
