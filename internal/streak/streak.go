// Package streak implements the daily-activity streak transition and the
// monthly points reset. Both transitions are pure; the Engine wires them to
// the data store for session bootstrap and day rollover.
package streak

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/habitsync/internal/models"
	"github.com/julianstephens/habitsync/internal/storage"
)

// Advance applies the daily streak transition for a visit at the given time.
// It returns the updated profile and whether anything changed.
//
// Same calendar day as the last visit: no-op. The day after the last visit:
// streak increments. Any larger gap, or no recorded visit: streak resets
// to 1. Best streak only ever grows.
func Advance(p models.Profile, now time.Time) (models.Profile, bool) {
	if p.LastActiveDate != nil && sameDate(*p.LastActiveDate, now) {
		return p, false
	}

	if p.LastActiveDate != nil && sameDate(*p.LastActiveDate, now.AddDate(0, 0, -1)) {
		p.CurrentStreak++
	} else {
		p.CurrentStreak = 1
	}
	if p.CurrentStreak > p.BestStreak {
		p.BestStreak = p.CurrentStreak
	}

	active := now
	p.LastActiveDate = &active
	return p, true
}

// ResetMonthlyPoints zeroes the points bucket when the calendar month or
// year has changed since the last reset. A profile that has never been
// reset counts as a different month, so the first bootstrap stamps it.
// This cycle is independent of the streak: it fires on month boundaries
// regardless of activity gaps.
func ResetMonthlyPoints(p models.Profile, now time.Time) (models.Profile, bool) {
	if p.LastPointsReset != nil &&
		p.LastPointsReset.Month() == now.Month() &&
		p.LastPointsReset.Year() == now.Year() {
		return p, false
	}

	p.Points = 0
	reset := now
	p.LastPointsReset = &reset
	return p, true
}

// AddPoints adjusts the points bucket by delta, clamping at zero.
func AddPoints(p models.Profile, delta int) models.Profile {
	p.Points += delta
	if p.Points < 0 {
		p.Points = 0
	}
	return p
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Engine applies the streak and points transitions against the data store.
type Engine struct {
	store storage.Provider
}

func NewEngine(store storage.Provider) *Engine {
	return &Engine{store: store}
}

// Bootstrap runs both state machines for a session start (or day rollover)
// and persists the result if anything changed. A missing profile row is
// created with zero state first, so a brand-new user starts a streak of 1.
func (e *Engine) Bootstrap(ownerID string, now time.Time) (models.Profile, error) {
	profile, err := e.store.GetProfile(ownerID)
	if err != nil {
		if !errors.Is(err, storage.ErrProfileNotFound) {
			return models.Profile{}, fmt.Errorf("failed to load profile: %w", err)
		}
		profile = models.Profile{ID: ownerID}
	}

	profile, streakChanged := Advance(profile, now)
	profile, pointsChanged := ResetMonthlyPoints(profile, now)

	if streakChanged || pointsChanged {
		profile.UpdatedAt = now
		if err := e.store.SaveProfile(profile); err != nil {
			return models.Profile{}, fmt.Errorf("failed to save profile: %w", err)
		}
	}

	return profile, nil
}
