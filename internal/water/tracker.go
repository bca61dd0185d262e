// Package water owns the daily hydration ledger: 250ml glasses logged
// against the day's cap, with points awarded and deducted in lockstep.
package water

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/habitsync/internal/constants"
	"github.com/julianstephens/habitsync/internal/models"
	"github.com/julianstephens/habitsync/internal/storage"
	"github.com/julianstephens/habitsync/internal/streak"
	"github.com/julianstephens/habitsync/internal/utils"
)

var (
	// ErrDailyCapReached is returned when logging would exceed the daily cap.
	ErrDailyCapReached = errors.New("daily water goal already reached")
	// ErrNoGlassesToday is returned when there is nothing to remove.
	ErrNoGlassesToday = errors.New("no glasses logged today")
)

// Status is a snapshot of today's hydration progress.
type Status struct {
	Glasses     int
	TotalMl     int
	GoalMl      int
	GoalReached bool
	Points      int
}

// Tracker mediates water logging for one owner.
type Tracker struct {
	store   storage.Provider
	ownerID string
}

func NewTracker(store storage.Provider, ownerID string) *Tracker {
	return &Tracker{store: store, ownerID: ownerID}
}

// LogGlass records one glass and awards its points. Logging stops at the
// daily cap; a cap refusal leaves both the ledger and the points untouched.
func (t *Tracker) LogGlass(now time.Time) (Status, error) {
	logs, err := t.todayLogs(now)
	if err != nil {
		return Status{}, err
	}
	if totalMl(logs) >= constants.DailyWaterCapMl {
		return t.snapshot(logs), ErrDailyCapReached
	}

	entry := models.WaterLog{
		ID:       uuid.New().String(),
		OwnerID:  t.ownerID,
		AmountMl: constants.GlassSizeMl,
		LoggedAt: now,
	}
	if err := t.store.AddWaterLog(entry); err != nil {
		return Status{}, fmt.Errorf("failed to log water: %w", err)
	}
	logs = append(logs, entry)

	if err := t.adjustPoints(constants.PointsPerGlass, now); err != nil {
		return Status{}, err
	}
	return t.snapshot(logs), nil
}

// RemoveLastGlass deletes today's most recent glass and deducts its points.
func (t *Tracker) RemoveLastGlass(now time.Time) (Status, error) {
	logs, err := t.todayLogs(now)
	if err != nil {
		return Status{}, err
	}
	if len(logs) == 0 {
		return t.snapshot(logs), ErrNoGlassesToday
	}

	last := logs[len(logs)-1]
	if err := t.store.DeleteWaterLog(last.ID); err != nil {
		return Status{}, fmt.Errorf("failed to remove water log: %w", err)
	}
	logs = logs[:len(logs)-1]

	if err := t.adjustPoints(-constants.PointsPerGlass, now); err != nil {
		return Status{}, err
	}
	return t.snapshot(logs), nil
}

// ResetToday deletes every glass logged today and deducts all their points.
func (t *Tracker) ResetToday(now time.Time) (Status, error) {
	logs, err := t.todayLogs(now)
	if err != nil {
		return Status{}, err
	}

	removed := 0
	for _, l := range logs {
		if err := t.store.DeleteWaterLog(l.ID); err != nil {
			return Status{}, fmt.Errorf("failed to remove water log: %w", err)
		}
		removed++
	}

	if removed > 0 {
		if err := t.adjustPoints(-removed*constants.PointsPerGlass, now); err != nil {
			return Status{}, err
		}
	}
	return t.snapshot(nil), nil
}

// Status reports today's progress without mutating anything.
func (t *Tracker) Status(now time.Time) (Status, error) {
	logs, err := t.todayLogs(now)
	if err != nil {
		return Status{}, err
	}
	return t.snapshot(logs), nil
}

func (t *Tracker) todayLogs(now time.Time) ([]models.WaterLog, error) {
	logs, err := t.store.GetWaterLogsSince(t.ownerID, utils.StartOfDay(now))
	if err != nil {
		return nil, fmt.Errorf("failed to load water logs: %w", err)
	}
	return logs, nil
}

// adjustPoints applies a clamped point delta to the profile. A missing
// profile starts from zero state so water logging works before `profile edit`.
func (t *Tracker) adjustPoints(delta int, now time.Time) error {
	p, err := t.store.GetProfile(t.ownerID)
	if err != nil {
		if !errors.Is(err, storage.ErrProfileNotFound) {
			return fmt.Errorf("failed to load profile: %w", err)
		}
		p = models.Profile{ID: t.ownerID}
	}

	p = streak.AddPoints(p, delta)
	p.UpdatedAt = now
	if err := t.store.SaveProfile(p); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// snapshot builds the progress view. The points read is best-effort; a
// missing profile just reports zero.
func (t *Tracker) snapshot(logs []models.WaterLog) Status {
	s := Status{
		Glasses: len(logs),
		TotalMl: totalMl(logs),
		GoalMl:  constants.DailyWaterCapMl,
	}
	s.GoalReached = s.TotalMl >= s.GoalMl

	if p, err := t.store.GetProfile(t.ownerID); err == nil {
		s.Points = p.Points
	}
	return s
}

func totalMl(logs []models.WaterLog) int {
	total := 0
	for _, l := range logs {
		total += l.AmountMl
	}
	return total
}
