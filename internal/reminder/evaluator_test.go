package reminder

import (
	"testing"
	"time"

	"github.com/julianstephens/habitsync/internal/models"
)

// at builds a local timestamp on a fixed date (a Monday) at the given clock time.
func at(hour, minute int) time.Time {
	return time.Date(2024, 3, 4, hour, minute, 0, 0, time.Local)
}

func water(recurrence models.RecurrenceKind, timeOfDay string) models.Reminder {
	return models.Reminder{
		ID:         "w1",
		Kind:       models.ReminderKindWater,
		Recurrence: recurrence,
		TimeOfDay:  timeOfDay,
		Active:     true,
	}
}

func medicine(recurrence models.RecurrenceKind, timeOfDay string) models.Reminder {
	return models.Reminder{
		ID:         "m1",
		Kind:       models.ReminderKindMedicine,
		Label:      "Aspirin",
		Recurrence: recurrence,
		TimeOfDay:  timeOfDay,
		Active:     true,
	}
}

func TestShouldFire_Daily(t *testing.T) {
	tests := []struct {
		name string
		rem  models.Reminder
		now  time.Time
		want bool
	}{
		{"exact minute", medicine(models.RecurrenceDaily, "08:30"), at(8, 30), true},
		{"wrong minute", medicine(models.RecurrenceDaily, "08:30"), at(8, 31), false},
		{"wrong hour", medicine(models.RecurrenceDaily, "08:30"), at(9, 30), false},
		{"water daily", water(models.RecurrenceDaily, "12:00"), at(12, 0), true},
		{"once matches like daily", water(models.RecurrenceOnce, "14:05"), at(14, 5), true},
		{"once off by a minute", water(models.RecurrenceOnce, "14:05"), at(14, 6), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldFire(tt.rem, tt.now); got != tt.want {
				t.Errorf("ShouldFire() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldFire_SecondsIgnored(t *testing.T) {
	// Stored times may carry seconds; two reminders with the same hour and
	// minute must co-fire regardless.
	withSeconds := medicine(models.RecurrenceDaily, "08:30:45")
	withoutSeconds := medicine(models.RecurrenceDaily, "08:30")

	now := at(8, 30)
	if !ShouldFire(withSeconds, now) {
		t.Error("reminder with seconds should fire at 08:30")
	}
	if ShouldFire(withSeconds, now) != ShouldFire(withoutSeconds, now) {
		t.Error("reminders differing only in seconds must co-fire")
	}
}

func TestShouldFire_Weekday(t *testing.T) {
	// 2024-03-04 is a Monday
	monday := at(9, 0)
	tuesday := monday.AddDate(0, 0, 1)

	rem := medicine("monday", "09:00")
	if !ShouldFire(rem, monday) {
		t.Error("monday reminder should fire on Monday at 09:00")
	}
	if ShouldFire(rem, tuesday) {
		t.Error("monday reminder must not fire on Tuesday")
	}
	if ShouldFire(rem, at(9, 1)) {
		t.Error("monday reminder must not fire at the wrong minute")
	}
}

func TestShouldFire_LegacyMedicineDefault(t *testing.T) {
	// "weekly" and empty recurrence on medicine rows both behave as daily.
	for _, kind := range []models.RecurrenceKind{models.RecurrenceWeekly, ""} {
		rem := medicine(kind, "07:15")
		if !ShouldFire(rem, at(7, 15)) {
			t.Errorf("medicine recurrence %q should fire daily at the anchor time", kind)
		}
		if ShouldFire(rem, at(7, 16)) {
			t.Errorf("medicine recurrence %q must not fire off the anchor minute", kind)
		}
	}
}

func TestShouldFire_HourlyIntervals(t *testing.T) {
	tests := []struct {
		name string
		rem  models.Reminder
		now  time.Time
		want bool
	}{
		{"2hrs at anchor", water(models.Recurrence2Hrs, "08:00"), at(8, 0), true},
		{"2hrs at +2h", water(models.Recurrence2Hrs, "08:00"), at(10, 0), true},
		{"2hrs at +4h", water(models.Recurrence2Hrs, "08:00"), at(12, 0), true},
		{"2hrs at odd hour", water(models.Recurrence2Hrs, "08:00"), at(9, 0), false},
		{"2hrs wrong minute", water(models.Recurrence2Hrs, "08:00"), at(8, 30), false},
		{"2hrs before anchor", water(models.Recurrence2Hrs, "08:00"), at(6, 0), false},
		{"1hr every hour", water(models.RecurrenceHourly, "09:15"), at(17, 15), true},
		{"1hr before anchor", water(models.RecurrenceHourly, "09:15"), at(8, 15), false},
		{"3hrs at +3h", water(models.Recurrence3Hrs, "06:30"), at(9, 30), true},
		{"3hrs at +2h", water(models.Recurrence3Hrs, "06:30"), at(8, 30), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldFire(tt.rem, tt.now); got != tt.want {
				t.Errorf("ShouldFire() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShouldFire_FailsClosed(t *testing.T) {
	tests := []struct {
		name string
		rem  models.Reminder
	}{
		{"unknown water kind", water("fortnightly", "08:00")},
		{"unknown medicine kind", medicine("biweekly", "08:00")},
		{"empty water kind", water("", "08:00")},
		{"malformed time", water(models.RecurrenceDaily, "8 o'clock")},
		{"empty time", medicine(models.RecurrenceDaily, "")},
		{"unknown reminder kind", models.Reminder{
			Kind:       "snack",
			Recurrence: models.RecurrenceDaily,
			TimeOfDay:  "08:00",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if ShouldFire(tt.rem, at(8, 0)) {
				t.Error("ShouldFire() must fail closed, got true")
			}
		})
	}
}

func TestShouldFire_Pure(t *testing.T) {
	rem := water(models.Recurrence2Hrs, "08:00")
	now := at(10, 0)
	first := ShouldFire(rem, now)
	for i := 0; i < 5; i++ {
		if ShouldFire(rem, now) != first {
			t.Fatal("repeated evaluation with identical inputs changed result")
		}
	}
}
