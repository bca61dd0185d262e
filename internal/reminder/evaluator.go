// Package reminder holds the pure firing predicate for reminder recurrence
// rules. It never touches storage or the clock; the scheduler feeds it the
// current time and acts on the result.
package reminder

import (
	"time"

	"github.com/julianstephens/habitsync/internal/models"
)

// ShouldFire reports whether the reminder fires at the given instant.
//
// Matching is done on hour and minute only, in now's location. With the
// scheduler polling once per minute this yields at most one firing per
// clock minute without any elapsed-time bookkeeping.
//
// Unrecognized recurrence kinds never fire, with one deliberate exception:
// medicine reminders with an empty or "weekly" recurrence fire every day.
// That mirrors how legacy rows behaved and is kept as the documented
// default rather than fixed.
func ShouldFire(r models.Reminder, now time.Time) bool {
	h, m, err := r.ClockTime()
	if err != nil {
		return false
	}

	curH, curM := now.Hour(), now.Minute()

	switch r.Kind {
	case models.ReminderKindMedicine:
		return medicineFires(r.Recurrence, h, m, curH, curM, now.Weekday())
	case models.ReminderKindWater:
		return waterFires(r.Recurrence, h, m, curH, curM)
	default:
		return false
	}
}

func medicineFires(kind models.RecurrenceKind, h, m, curH, curM int, weekday time.Weekday) bool {
	switch kind {
	case models.RecurrenceDaily, models.RecurrenceWeekly, "":
		return h == curH && m == curM
	}
	if wd, ok := kind.Weekday(); ok {
		return wd == weekday && h == curH && m == curM
	}
	return false
}

func waterFires(kind models.RecurrenceKind, h, m, curH, curM int) bool {
	switch kind {
	case models.RecurrenceOnce, models.RecurrenceDaily, models.RecurrenceWeekly:
		return h == curH && m == curM
	}
	if interval, ok := kind.IntervalHours(); ok {
		// Anchored at hour h: a 2hrs rule set for 08:00 fires at 08:00,
		// 10:00, 12:00... and never before the anchor hour that day.
		return m == curM && curH-h >= 0 && (curH-h)%interval == 0
	}
	return false
}
