package models

import (
	"fmt"
	"strings"
	"time"
)

// ReminderKind distinguishes the two reminder collections
type ReminderKind string

const (
	ReminderKindMedicine ReminderKind = "medicine"
	ReminderKindWater    ReminderKind = "water"
)

// RecurrenceKind names the rule governing when a reminder fires.
// Weekday names (monday..sunday) are valid kinds for medicine reminders.
type RecurrenceKind string

const (
	RecurrenceOnce  RecurrenceKind = "once"
	RecurrenceDaily RecurrenceKind = "daily"
	// RecurrenceWeekly is a legacy medicine kind; despite the name it fires
	// every day, same as an empty recurrence on old rows.
	RecurrenceWeekly RecurrenceKind = "weekly"
	RecurrenceHourly RecurrenceKind = "1hr"
	Recurrence2Hrs   RecurrenceKind = "2hrs"
	Recurrence3Hrs   RecurrenceKind = "3hrs"
)

var weekdayKinds = map[RecurrenceKind]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Weekday returns the weekday a weekday-kind recurrence names.
// The second return is false for every other kind.
func (k RecurrenceKind) Weekday() (time.Weekday, bool) {
	wd, ok := weekdayKinds[k]
	return wd, ok
}

// IntervalHours returns the anchor interval for the fixed-hour kinds
// (1hr, 2hrs, 3hrs). The second return is false for every other kind.
func (k RecurrenceKind) IntervalHours() (int, bool) {
	switch k {
	case RecurrenceHourly:
		return 1, true
	case Recurrence2Hrs:
		return 2, true
	case Recurrence3Hrs:
		return 3, true
	default:
		return 0, false
	}
}

// Reminder is a user-configured rule that triggers a notification at
// specific times. Medicine and water reminders share the same shape but
// live in separate collections and accept different recurrence kinds.
type Reminder struct {
	ID         string         `json:"id"`
	OwnerID    string         `json:"owner_id"`
	Kind       ReminderKind   `json:"kind"`
	Label      string         `json:"label"` // medicine name; water reminders carry a fixed label
	Recurrence RecurrenceKind `json:"recurrence"`
	TimeOfDay  string         `json:"time_of_day"` // HH:MM or HH:MM:SS; seconds are ignored for matching
	Active     bool           `json:"active"`
	CreatedAt  time.Time      `json:"created_at"`
}

// ClockTime parses the reminder's anchor time into hour and minute.
// Stored times may carry seconds (HH:MM:SS); they are discarded so two
// reminders with the same hour and minute always co-fire.
func (r *Reminder) ClockTime() (hour, minute int, err error) {
	s := r.TimeOfDay
	if len(s) > 5 {
		s = s[:5]
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid reminder time %q: %w", r.TimeOfDay, err)
	}
	return t.Hour(), t.Minute(), nil
}

func (r *Reminder) Validate() error {
	if r.Kind != ReminderKindMedicine && r.Kind != ReminderKindWater {
		return fmt.Errorf("invalid reminder kind: %s", r.Kind)
	}

	if r.Kind == ReminderKindMedicine && strings.TrimSpace(r.Label) == "" {
		return fmt.Errorf("medicine reminder requires a medicine name")
	}

	if r.TimeOfDay == "" {
		return fmt.Errorf("reminder time cannot be empty")
	}
	if _, _, err := r.ClockTime(); err != nil {
		return fmt.Errorf("invalid time format (expected HH:MM): %w", err)
	}

	switch r.Kind {
	case ReminderKindMedicine:
		if r.Recurrence == RecurrenceDaily || r.Recurrence == RecurrenceWeekly || r.Recurrence == "" {
			return nil
		}
		if _, ok := r.Recurrence.Weekday(); ok {
			return nil
		}
		return fmt.Errorf("invalid medicine recurrence: %s (must be daily or a weekday name)", r.Recurrence)
	case ReminderKindWater:
		switch r.Recurrence {
		case RecurrenceOnce, RecurrenceDaily, RecurrenceWeekly:
			return nil
		}
		if _, ok := r.Recurrence.IntervalHours(); ok {
			return nil
		}
		return fmt.Errorf("invalid water recurrence: %s (must be once, daily, 1hr, 2hrs, or 3hrs)", r.Recurrence)
	}
	return nil
}

// IsOneShot returns true for reminders that are consumed by their single firing.
func (r *Reminder) IsOneShot() bool {
	return r.Recurrence == RecurrenceOnce
}

// FormatRecurrence returns a human-readable description of the firing rule
func (r *Reminder) FormatRecurrence() string {
	switch r.Recurrence {
	case RecurrenceOnce:
		return "Only once"
	case RecurrenceDaily, RecurrenceWeekly, "":
		return "Daily"
	case RecurrenceHourly:
		return "Every hour"
	case Recurrence2Hrs:
		return "Every 2 hours"
	case Recurrence3Hrs:
		return "Every 3 hours"
	}
	if wd, ok := r.Recurrence.Weekday(); ok {
		return fmt.Sprintf("Every %s", wd.String())
	}
	return string(r.Recurrence)
}

// DisplayTime returns the anchor time trimmed to HH:MM for list views.
func (r *Reminder) DisplayTime() string {
	if len(r.TimeOfDay) > 5 {
		return r.TimeOfDay[:5]
	}
	return r.TimeOfDay
}
