package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/habitsync/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateReminder  ConflictType = "duplicate_reminder"
	ConflictInvalidTime        ConflictType = "invalid_time"
	ConflictInvalidRecurrence  ConflictType = "invalid_recurrence"
	ConflictUnknownMedicine    ConflictType = "unknown_medicine"
	ConflictProfileMeasurement ConflictType = "profile_measurement"
	ConflictStaleBMI           ConflictType = "stale_bmi"
)

// Conflict represents a detected inconsistency in stored data
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // Reminder labels / medicine names involved
	IDs         []string // IDs of rows involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No problems detected."
	}

	report := "Problems detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator checks stored reminders and the profile for inconsistencies
// that the row-level Validate methods cannot see: duplicates across rows,
// reminders pointing at medicines that left the cabinet, and derived
// values that drifted from their inputs.
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateReminders checks a reminder collection for conflicts.
func (v *Validator) ValidateReminders(rems []models.Reminder, medicines []models.Medicine) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	// Row-level problems: unparseable times and recurrences that the
	// evaluator would silently skip every minute.
	for i := range rems {
		r := rems[i]
		if _, _, err := r.ClockTime(); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTime,
				Description: fmt.Sprintf("Reminder %q has invalid time: %s", r.Label, r.TimeOfDay),
				Items:       []string{r.Label},
				IDs:         []string{r.ID},
			})
		}
		if err := r.Validate(); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidRecurrence,
				Description: fmt.Sprintf("Reminder %q is invalid: %v", r.Label, err),
				Items:       []string{r.Label},
				IDs:         []string{r.ID},
			})
		}
	}

	// Duplicate reminders: same kind, label, anchor time, and recurrence
	// means a double notification every time the rule matches.
	dupes := make(map[string][]string)
	labels := make(map[string]string)
	for _, r := range rems {
		key := fmt.Sprintf("%s|%s|%s|%s", r.Kind, strings.ToLower(r.Label), r.DisplayTime(), r.Recurrence)
		dupes[key] = append(dupes[key], r.ID)
		labels[key] = r.Label
	}
	keys := make([]string, 0, len(dupes))
	for key := range dupes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		ids := dupes[key]
		if len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateReminder,
				Description: fmt.Sprintf("Duplicate reminder: %q fires %d times at the same minute (IDs: %v)", labels[key], len(ids), ids),
				Items:       []string{labels[key]},
				IDs:         ids,
			})
		}
	}

	// Medicine reminders referencing medicines no longer in the cabinet.
	known := make(map[string]bool, len(medicines))
	for _, m := range medicines {
		known[strings.ToLower(m.Name)] = true
	}
	for _, r := range rems {
		if r.Kind != models.ReminderKindMedicine {
			continue
		}
		if r.Label != "" && !known[strings.ToLower(r.Label)] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownMedicine,
				Description: fmt.Sprintf("Reminder %q references a medicine not in the cabinet", r.Label),
				Items:       []string{r.Label},
				IDs:         []string{r.ID},
			})
		}
	}

	return result
}

// ValidateProfile checks the health profile for impossible measurements
// and a stored BMI that no longer matches height and weight.
func (v *Validator) ValidateProfile(p models.Profile) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	if p.HeightCm < 0 || p.HeightCm > 300 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictProfileMeasurement,
			Description: fmt.Sprintf("Profile height %.1f cm is out of range", p.HeightCm),
		})
	}
	if p.WeightKg < 0 || p.WeightKg > 700 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictProfileMeasurement,
			Description: fmt.Sprintf("Profile weight %.1f kg is out of range", p.WeightKg),
		})
	}
	if p.Age < 0 || p.Age > 150 {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictProfileMeasurement,
			Description: fmt.Sprintf("Profile age %d is out of range", p.Age),
		})
	}

	if expected := models.CalculateBMI(p.WeightKg, p.HeightCm); expected != p.BMI {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictStaleBMI,
			Description: fmt.Sprintf("Stored BMI %.1f does not match height/weight (expected %.1f); edit the profile to recalculate", p.BMI, expected),
		})
	}

	return result
}
