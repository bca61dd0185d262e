package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/habitsync/internal/models"
	"github.com/julianstephens/habitsync/internal/storage"
	"github.com/julianstephens/habitsync/internal/utils"
)

type Context struct {
	Store   storage.Provider
	OwnerID string
	Debug   bool
}

// Now returns the current time in the configured timezone, falling back to
// the system clock when settings are unavailable.
func (c *Context) Now() time.Time {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return time.Now()
	}
	now, err := utils.NowInTimezone(settings.Timezone)
	if err != nil {
		return time.Now()
	}
	return now
}

// ParseMedicineRecurrence maps user input to a medicine recurrence kind:
// "daily" or a weekday name.
func ParseMedicineRecurrence(s string) (models.RecurrenceKind, error) {
	kind := models.RecurrenceKind(strings.ToLower(strings.TrimSpace(s)))
	if kind == "" || kind == models.RecurrenceDaily {
		return models.RecurrenceDaily, nil
	}
	if _, ok := kind.Weekday(); ok {
		return kind, nil
	}
	return "", fmt.Errorf("invalid recurrence %q (must be daily or a weekday name like monday)", s)
}

// ParseWaterRecurrence maps user input to a water recurrence kind:
// once, daily, or one of the anchored hour intervals.
func ParseWaterRecurrence(s string) (models.RecurrenceKind, error) {
	kind := models.RecurrenceKind(strings.ToLower(strings.TrimSpace(s)))
	switch kind {
	case models.RecurrenceOnce, models.RecurrenceDaily,
		models.RecurrenceHourly, models.Recurrence2Hrs, models.Recurrence3Hrs:
		return kind, nil
	}
	return "", fmt.Errorf("invalid recurrence %q (must be once, daily, 1hr, 2hrs, or 3hrs)", s)
}
