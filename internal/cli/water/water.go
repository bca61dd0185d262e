package water

import (
	"errors"
	"fmt"

	"github.com/julianstephens/habitsync/internal/cli"
	"github.com/julianstephens/habitsync/internal/constants"
	"github.com/julianstephens/habitsync/internal/water"
)

type LogCmd struct{}

func (c *LogCmd) Run(ctx *cli.Context) error {
	tracker := water.NewTracker(ctx.Store, ctx.OwnerID)

	status, err := tracker.LogGlass(ctx.Now())
	if errors.Is(err, water.ErrDailyCapReached) {
		fmt.Printf("Daily goal of %dml already reached, nothing logged.\n", status.GoalMl)
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("✓ Glass logged: %d/%d glasses (%dml), %d points\n",
		status.Glasses, constants.GoalGlasses, status.TotalMl, status.Points)
	if status.GoalReached {
		fmt.Println("🎉 Daily water goal reached!")
	}
	return nil
}

type RemoveCmd struct{}

func (c *RemoveCmd) Run(ctx *cli.Context) error {
	tracker := water.NewTracker(ctx.Store, ctx.OwnerID)

	status, err := tracker.RemoveLastGlass(ctx.Now())
	if errors.Is(err, water.ErrNoGlassesToday) {
		fmt.Println("No glasses logged today.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Printf("✓ Last glass removed: %d/%d glasses (%dml), %d points\n",
		status.Glasses, constants.GoalGlasses, status.TotalMl, status.Points)
	return nil
}

type ResetCmd struct{}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	tracker := water.NewTracker(ctx.Store, ctx.OwnerID)

	status, err := tracker.ResetToday(ctx.Now())
	if err != nil {
		return err
	}

	fmt.Printf("✓ Today's water intake reset. Points: %d\n", status.Points)
	return nil
}

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	tracker := water.NewTracker(ctx.Store, ctx.OwnerID)

	status, err := tracker.Status(ctx.Now())
	if err != nil {
		return err
	}

	fmt.Printf("Water today: %d/%d glasses (%dml / %dml)\n",
		status.Glasses, constants.GoalGlasses, status.TotalMl, status.GoalMl)
	fmt.Printf("Points:      %d\n", status.Points)
	if status.GoalReached {
		fmt.Println("🎉 Daily water goal reached!")
	}
	return nil
}
