// Package insights turns recent hydration history into actionable
// suggestions: whether to add, tighten, or relax the interval water
// reminders backing the daily goal.
package insights

import (
	"fmt"
	"time"

	"github.com/julianstephens/habitsync/internal/constants"
	"github.com/julianstephens/habitsync/internal/models"
	"github.com/julianstephens/habitsync/internal/storage"
	"github.com/julianstephens/habitsync/internal/utils"
)

// SuggestionType represents the type of adjustment suggested
type SuggestionType string

const (
	SuggestionAddReminder     SuggestionType = "add_reminder"
	SuggestionTightenInterval SuggestionType = "tighten_interval"
	SuggestionRelaxInterval   SuggestionType = "relax_interval"
)

// lookbackDays is the history window the analyzer reasons over.
const lookbackDays = 7

// Suggestion represents a suggested adjustment to the reminder setup
type Suggestion struct {
	Type       SuggestionType `json:"type"`
	Reason     string         `json:"reason"`
	Current    string         `json:"current,omitempty"`
	Suggested  string         `json:"suggested,omitempty"`
	ReminderID string         `json:"reminder_id,omitempty"`
}

// Analyzer analyzes recent water logs against the reminder setup
type Analyzer struct {
	store storage.Provider
}

// NewAnalyzer creates a new Analyzer
func NewAnalyzer(store storage.Provider) *Analyzer {
	return &Analyzer{store: store}
}

// Analyze inspects the last week of water logs and the active water
// reminders and returns suggestions. A short history (under two full days
// of logs) yields no suggestions rather than noisy ones.
func (a *Analyzer) Analyze(ownerID string, now time.Time) ([]Suggestion, error) {
	since := utils.StartOfDay(now).AddDate(0, 0, -lookbackDays)
	logs, err := a.store.GetWaterLogsSince(ownerID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to get water logs: %w", err)
	}

	days := distinctDays(logs)
	if days < 2 {
		return nil, nil
	}

	reminders, err := a.store.GetActiveReminders(ownerID, models.ReminderKindWater)
	if err != nil {
		return nil, fmt.Errorf("failed to get water reminders: %w", err)
	}
	interval, intervalID := shortestInterval(reminders)

	avgGlasses := float64(len(logs)) / float64(days)
	goalPercent := avgGlasses / float64(constants.GoalGlasses) * 100

	var suggestions []Suggestion

	// Under half the goal with no interval reminder: the schedule is the
	// missing piece, not the goal.
	if goalPercent < 50 && interval == 0 {
		suggestions = append(suggestions, Suggestion{
			Type:      SuggestionAddReminder,
			Reason:    fmt.Sprintf("Averaging %.1f of %d glasses per day over the last week", avgGlasses, constants.GoalGlasses),
			Suggested: string(models.Recurrence2Hrs),
		})
	}

	// Under half the goal despite a slow interval reminder: tighten it.
	if goalPercent < 50 && interval > 2 {
		suggestions = append(suggestions, Suggestion{
			Type:       SuggestionTightenInterval,
			Reason:     fmt.Sprintf("Averaging %.1f of %d glasses per day despite an every-%d-hours reminder", avgGlasses, constants.GoalGlasses, interval),
			Current:    fmt.Sprintf("%dhrs", interval),
			Suggested:  string(models.Recurrence2Hrs),
			ReminderID: intervalID,
		})
	}

	// Consistently at goal with an hourly reminder: the nudges have done
	// their job and can back off.
	if goalPercent >= 100 && interval == 1 {
		suggestions = append(suggestions, Suggestion{
			Type:       SuggestionRelaxInterval,
			Reason:     "Daily goal met on average over the last week; hourly reminders may be more than needed",
			Current:    string(models.RecurrenceHourly),
			Suggested:  string(models.Recurrence2Hrs),
			ReminderID: intervalID,
		})
	}

	return suggestions, nil
}

// distinctDays counts calendar days with at least one log.
func distinctDays(logs []models.WaterLog) int {
	days := make(map[string]bool)
	for _, l := range logs {
		days[l.LoggedAt.Format(constants.DateFormat)] = true
	}
	return len(days)
}

// shortestInterval returns the smallest anchored hour interval among the
// active water reminders, with the owning reminder's ID. Zero means no
// interval reminder is configured.
func shortestInterval(reminders []models.Reminder) (int, string) {
	best := 0
	id := ""
	for _, r := range reminders {
		h, ok := r.Recurrence.IntervalHours()
		if !ok {
			continue
		}
		if best == 0 || h < best {
			best = h
			id = r.ID
		}
	}
	return best, id
}
