package report

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/habitsync/internal/models"
	"github.com/julianstephens/habitsync/internal/storage"
)

func day(d, hour int) time.Time {
	return time.Date(2024, 3, d, hour, 0, 0, 0, time.UTC)
}

func TestBuild_WeightAndBMIChange(t *testing.T) {
	profile := models.Profile{
		ID:            "user-1",
		HeightCm:      170,
		WeightKg:      68,
		CurrentStreak: 4,
		BestStreak:    9,
		Points:        36,
	}
	weights := []models.WeightLog{
		{WeightKg: 70, LoggedAt: day(1, 9)},
		{WeightKg: 69.2, LoggedAt: day(10, 9)},
		{WeightKg: 68, LoggedAt: day(20, 9)},
	}

	m := Build(profile, weights, nil, day(25, 12))

	if m.StartWeightKg != 70 || m.EndWeightKg != 68 {
		t.Errorf("weights = %v -> %v, want 70 -> 68", m.StartWeightKg, m.EndWeightKg)
	}
	if m.WeightChangeKg != -2 {
		t.Errorf("WeightChangeKg = %v, want -2", m.WeightChangeKg)
	}

	// 70kg/1.70m -> 24.2, 68kg/1.70m -> 23.5
	if m.StartBMI != 24.2 || m.EndBMI != 23.5 {
		t.Errorf("BMI = %v -> %v, want 24.2 -> 23.5", m.StartBMI, m.EndBMI)
	}
	if m.BMIChange != -0.7 {
		t.Errorf("BMIChange = %v, want -0.7", m.BMIChange)
	}

	if m.CurrentStreak != 4 || m.BestStreak != 9 || m.Points != 36 {
		t.Errorf("streak/points not carried over: %+v", m)
	}
}

func TestBuild_NoWeightLogsFallsBackToProfile(t *testing.T) {
	profile := models.Profile{HeightCm: 180, WeightKg: 75}

	m := Build(profile, nil, nil, day(15, 12))

	if m.StartWeightKg != 75 || m.EndWeightKg != 75 {
		t.Errorf("weights = %v -> %v, want profile weight on both ends", m.StartWeightKg, m.EndWeightKg)
	}
	if m.WeightChangeKg != 0 || m.BMIChange != 0 {
		t.Errorf("expected zero deltas, got weight %v bmi %v", m.WeightChangeKg, m.BMIChange)
	}
}

func TestBuild_AverageDailyWater(t *testing.T) {
	waters := []models.WaterLog{
		{AmountMl: 250, LoggedAt: day(1, 8)},
		{AmountMl: 250, LoggedAt: day(1, 10)},
		{AmountMl: 250, LoggedAt: day(1, 12)},
		{AmountMl: 250, LoggedAt: day(2, 9)},
	}

	m := Build(models.Profile{}, nil, waters, day(3, 12))

	if m.TotalWaterLogs != 4 {
		t.Errorf("TotalWaterLogs = %d, want 4", m.TotalWaterLogs)
	}
	// 1000ml over 2 distinct days.
	if m.AvgDailyWaterMl != 500 {
		t.Errorf("AvgDailyWaterMl = %d, want 500", m.AvgDailyWaterMl)
	}
}

func TestBuild_NoWaterLogs(t *testing.T) {
	m := Build(models.Profile{}, nil, nil, day(3, 12))
	if m.AvgDailyWaterMl != 0 || m.TotalWaterLogs != 0 {
		t.Errorf("expected zero water metrics, got %+v", m)
	}
}

type fakeStore struct {
	storage.Provider

	profile models.Profile
	weights []models.WeightLog
	waters  []models.WaterLog
	err     error

	weightSince time.Time
}

func (f *fakeStore) GetProfile(ownerID string) (models.Profile, error) {
	if f.err != nil {
		return models.Profile{}, f.err
	}
	return f.profile, nil
}

func (f *fakeStore) GetWeightLogsSince(ownerID string, since time.Time) ([]models.WeightLog, error) {
	f.weightSince = since
	return f.weights, nil
}

func (f *fakeStore) GetWaterLogsSince(ownerID string, since time.Time) ([]models.WaterLog, error) {
	return f.waters, nil
}

func TestGenerator_QueriesFromStartOfMonth(t *testing.T) {
	store := &fakeStore{
		profile: models.Profile{ID: "user-1", HeightCm: 170, WeightKg: 68},
	}
	gen := NewGenerator(store)

	now := time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)
	if _, err := gen.Monthly("user-1", now); err != nil {
		t.Fatal(err)
	}

	wantSince := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if !store.weightSince.Equal(wantSince) {
		t.Errorf("since = %v, want %v", store.weightSince, wantSince)
	}
}

func TestGenerator_ProfileErrorPropagates(t *testing.T) {
	store := &fakeStore{err: errors.New("store unavailable")}
	gen := NewGenerator(store)

	if _, err := gen.Monthly("user-1", time.Now()); err == nil {
		t.Error("expected profile load failure to propagate")
	}
}
