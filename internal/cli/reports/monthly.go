package reports

import (
	"errors"
	"fmt"

	"github.com/julianstephens/habitsync/internal/cli"
	"github.com/julianstephens/habitsync/internal/report"
	"github.com/julianstephens/habitsync/internal/storage"
)

type MonthlyCmd struct{}

func (c *MonthlyCmd) Run(ctx *cli.Context) error {
	gen := report.NewGenerator(ctx.Store)

	m, err := gen.Monthly(ctx.OwnerID, ctx.Now())
	if err != nil {
		if errors.Is(err, storage.ErrProfileNotFound) {
			fmt.Println("No profile yet. Run 'habitsync profile edit' to create one.")
			return nil
		}
		return err
	}

	fmt.Printf("Report for %s %d\n\n", m.Month, m.Year)
	fmt.Printf("Weight:  %.1f kg -> %.1f kg (%+.1f kg)\n", m.StartWeightKg, m.EndWeightKg, m.WeightChangeKg)
	fmt.Printf("BMI:     %.1f -> %.1f (%+.1f)\n", m.StartBMI, m.EndBMI, m.BMIChange)
	fmt.Printf("Water:   %dml average per day across %d log(s)\n", m.AvgDailyWaterMl, m.TotalWaterLogs)
	fmt.Printf("Streak:  %d day(s) (best %d)\n", m.CurrentStreak, m.BestStreak)
	fmt.Printf("Points:  %d\n", m.Points)
	return nil
}
