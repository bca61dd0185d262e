// Package report computes the monthly progress summary from the profile and
// the log tables. All metrics cover the 1st of the current month through now.
package report

import (
	"fmt"
	"math"
	"time"

	"github.com/julianstephens/habitsync/internal/constants"
	"github.com/julianstephens/habitsync/internal/models"
	"github.com/julianstephens/habitsync/internal/storage"
	"github.com/julianstephens/habitsync/internal/utils"
)

// Monthly is the progress summary for the month containing its timestamp.
type Monthly struct {
	Year  int
	Month time.Month

	StartWeightKg  float64
	EndWeightKg    float64
	WeightChangeKg float64

	StartBMI  float64
	EndBMI    float64
	BMIChange float64

	AvgDailyWaterMl int
	TotalWaterLogs  int

	CurrentStreak int
	BestStreak    int
	Points        int
}

// Build computes the monthly summary from already-fetched rows. Weight and
// BMI deltas compare the first and last weight log of the month; with fewer
// than two logs the profile's current weight stands in and the delta is zero.
func Build(profile models.Profile, weights []models.WeightLog, waters []models.WaterLog, now time.Time) Monthly {
	m := Monthly{
		Year:          now.Year(),
		Month:         now.Month(),
		CurrentStreak: profile.CurrentStreak,
		BestStreak:    profile.BestStreak,
		Points:        profile.Points,
	}

	m.StartWeightKg = profile.WeightKg
	m.EndWeightKg = profile.WeightKg
	if len(weights) > 0 {
		m.StartWeightKg = weights[0].WeightKg
		m.EndWeightKg = weights[len(weights)-1].WeightKg
	}
	m.WeightChangeKg = round1(m.EndWeightKg - m.StartWeightKg)

	m.StartBMI = models.CalculateBMI(m.StartWeightKg, profile.HeightCm)
	m.EndBMI = models.CalculateBMI(m.EndWeightKg, profile.HeightCm)
	m.BMIChange = round1(m.EndBMI - m.StartBMI)

	m.TotalWaterLogs = len(waters)
	totalMl := 0
	days := make(map[string]struct{})
	for _, w := range waters {
		totalMl += w.AmountMl
		days[w.LoggedAt.Format(constants.DateFormat)] = struct{}{}
	}
	if len(days) > 0 {
		m.AvgDailyWaterMl = totalMl / len(days)
	}

	return m
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Generator fetches the month's rows from the store and builds the summary.
type Generator struct {
	store storage.Provider
}

func NewGenerator(store storage.Provider) *Generator {
	return &Generator{store: store}
}

func (g *Generator) Monthly(ownerID string, now time.Time) (Monthly, error) {
	profile, err := g.store.GetProfile(ownerID)
	if err != nil {
		return Monthly{}, fmt.Errorf("failed to load profile: %w", err)
	}

	since := utils.StartOfMonth(now)
	weights, err := g.store.GetWeightLogsSince(ownerID, since)
	if err != nil {
		return Monthly{}, fmt.Errorf("failed to load weight logs: %w", err)
	}
	waters, err := g.store.GetWaterLogsSince(ownerID, since)
	if err != nil {
		return Monthly{}, fmt.Errorf("failed to load water logs: %w", err)
	}

	return Build(profile, weights, waters, now), nil
}
