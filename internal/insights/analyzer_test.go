package insights

import (
	"testing"
	"time"

	"github.com/julianstephens/habitsync/internal/constants"
	"github.com/julianstephens/habitsync/internal/models"
	"github.com/julianstephens/habitsync/internal/storage"
)

type fakeStore struct {
	storage.Provider

	logs      []models.WaterLog
	reminders []models.Reminder
}

func (f *fakeStore) GetWaterLogsSince(ownerID string, since time.Time) ([]models.WaterLog, error) {
	var out []models.WaterLog
	for _, l := range f.logs {
		if l.OwnerID == ownerID && !l.LoggedAt.Before(since) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeStore) GetActiveReminders(ownerID string, kind models.ReminderKind) ([]models.Reminder, error) {
	var out []models.Reminder
	for _, r := range f.reminders {
		if r.OwnerID == ownerID && r.Kind == kind {
			out = append(out, r)
		}
	}
	return out, nil
}

// glassesOverDays spreads the given number of glasses per day across the
// preceding days, newest first.
func glassesOverDays(now time.Time, days, perDay int) []models.WaterLog {
	var logs []models.WaterLog
	for d := 1; d <= days; d++ {
		day := now.AddDate(0, 0, -d)
		for g := 0; g < perDay; g++ {
			logs = append(logs, models.WaterLog{
				ID:       "log",
				OwnerID:  "local",
				AmountMl: constants.GlassSizeMl,
				LoggedAt: time.Date(day.Year(), day.Month(), day.Day(), 8+g, 0, 0, 0, time.UTC),
			})
		}
	}
	return logs
}

func waterReminder(id string, recurrence models.RecurrenceKind) models.Reminder {
	return models.Reminder{
		ID:         id,
		OwnerID:    "local",
		Kind:       models.ReminderKindWater,
		Recurrence: recurrence,
		TimeOfDay:  "09:00",
		Active:     true,
	}
}

func TestAnalyzeShortHistory(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{logs: glassesOverDays(now, 1, 2)}

	got, err := NewAnalyzer(store).Analyze("local", now)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no suggestions from one day of history, got %d", len(got))
	}
}

func TestAnalyzeSuggestsReminder(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{logs: glassesOverDays(now, 5, 2)} // 2 of 12 glasses per day

	got, err := NewAnalyzer(store).Analyze("local", now)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(got) != 1 || got[0].Type != SuggestionAddReminder {
		t.Fatalf("expected add_reminder suggestion, got %+v", got)
	}
	if got[0].Suggested != string(models.Recurrence2Hrs) {
		t.Errorf("expected 2hrs suggestion, got %q", got[0].Suggested)
	}
}

func TestAnalyzeTightensSlowInterval(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{
		logs:      glassesOverDays(now, 5, 2),
		reminders: []models.Reminder{waterReminder("r1", models.Recurrence3Hrs)},
	}

	got, err := NewAnalyzer(store).Analyze("local", now)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(got) != 1 || got[0].Type != SuggestionTightenInterval {
		t.Fatalf("expected tighten_interval suggestion, got %+v", got)
	}
	if got[0].ReminderID != "r1" {
		t.Errorf("expected suggestion to name reminder r1, got %q", got[0].ReminderID)
	}
}

func TestAnalyzeRelaxesHourlyAtGoal(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{
		logs:      glassesOverDays(now, 5, constants.GoalGlasses),
		reminders: []models.Reminder{waterReminder("r1", models.RecurrenceHourly)},
	}

	got, err := NewAnalyzer(store).Analyze("local", now)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(got) != 1 || got[0].Type != SuggestionRelaxInterval {
		t.Fatalf("expected relax_interval suggestion, got %+v", got)
	}
}

func TestAnalyzeQuietWhenOnTrack(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{
		logs:      glassesOverDays(now, 5, 8), // above half, below goal
		reminders: []models.Reminder{waterReminder("r1", models.Recurrence2Hrs)},
	}

	got, err := NewAnalyzer(store).Analyze("local", now)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no suggestions, got %+v", got)
	}
}
