// Package scheduler owns the live reminder collections and drives their
// evaluation once per polling interval. It holds authoritative in-memory
// mirrors of the medicine and water reminder sets; the TUI and CLI observe
// those mirrors but never mutate them directly.
package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/julianstephens/habitsync/internal/constants"
	"github.com/julianstephens/habitsync/internal/logger"
	"github.com/julianstephens/habitsync/internal/models"
	"github.com/julianstephens/habitsync/internal/notifier"
	"github.com/julianstephens/habitsync/internal/reminder"
	"github.com/julianstephens/habitsync/internal/storage"
)

// Clock supplies the current time; tests swap it to advance virtual time.
type Clock func() time.Time

type Scheduler struct {
	store   storage.Provider
	sink    notifier.Sink
	ownerID string

	clock    Clock
	interval time.Duration

	mu        sync.Mutex
	medicines []models.Reminder
	waters    []models.Reminder
	lastDay   string

	onDayRollover func(now time.Time)

	stop chan struct{}
	done chan struct{}
}

func New(store storage.Provider, sink notifier.Sink, ownerID string) *Scheduler {
	return &Scheduler{
		store:    store,
		sink:     sink,
		ownerID:  ownerID,
		clock:    time.Now,
		interval: constants.DefaultPollInterval,
	}
}

// SetClock replaces the time source. Must be called before Start.
func (s *Scheduler) SetClock(clock Clock) {
	s.clock = clock
}

// SetInterval replaces the polling interval. Must be called before Start.
func (s *Scheduler) SetInterval(d time.Duration) {
	if d > 0 {
		s.interval = d
	}
}

// OnDayRollover registers a callback invoked when a tick lands on a new
// calendar day. The streak/points bootstrap hangs off this.
func (s *Scheduler) OnDayRollover(fn func(now time.Time)) {
	s.onDayRollover = fn
}

// Reload refreshes both reminder mirrors from the store. Each collection is
// fetched independently: if one fetch fails its previous mirror is retained
// and the other collection still refreshes. The first error is returned so
// user-initiated reloads can surface it; background callers just log it.
func (s *Scheduler) Reload() error {
	var firstErr error

	meds, medErr := s.store.GetActiveReminders(s.ownerID, models.ReminderKindMedicine)
	if medErr != nil {
		firstErr = fmt.Errorf("failed to load medicine reminders: %w", medErr)
	}

	waters, waterErr := s.store.GetActiveReminders(s.ownerID, models.ReminderKindWater)
	if waterErr != nil && firstErr == nil {
		firstErr = fmt.Errorf("failed to load water reminders: %w", waterErr)
	}

	// A successful fetch replaces its mirror even when the result is empty;
	// an empty set is how out-of-band deletions become visible here.
	s.mu.Lock()
	if medErr == nil {
		s.medicines = meds
	}
	if waterErr == nil {
		s.waters = waters
	}
	s.mu.Unlock()

	return firstErr
}

// Add persists a reminder and appends it to the matching mirror.
func (s *Scheduler) Add(rem models.Reminder) error {
	if err := rem.Validate(); err != nil {
		return err
	}
	if err := s.store.AddReminder(rem); err != nil {
		return fmt.Errorf("failed to save reminder: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if rem.Kind == models.ReminderKindMedicine {
		s.medicines = append(s.medicines, rem)
	} else {
		s.waters = append(s.waters, rem)
	}
	return nil
}

// Remove deletes a reminder from the store and drops it from the mirrors.
func (s *Scheduler) Remove(id string) error {
	if err := s.store.DeleteReminder(id); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.medicines = dropReminder(s.medicines, id)
	s.waters = dropReminder(s.waters, id)
	return nil
}

// MedicineReminders returns a copy of the medicine mirror for display.
func (s *Scheduler) MedicineReminders() []models.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Reminder(nil), s.medicines...)
}

// WaterReminders returns a copy of the water mirror for display.
func (s *Scheduler) WaterReminders() []models.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Reminder(nil), s.waters...)
}

// Tick evaluates every mirrored reminder against now and fires matches.
// Evaluation order is the load order; each firing is independent. For a
// one-shot water reminder the notification is dispatched first, then the
// row is deleted best-effort: if the delete fails the reminder stays in
// the mirror and may fire again next minute, which is tolerated.
//
// Tick never returns an error and never panics on bad rows; the poller
// must keep running across individual failures.
func (s *Scheduler) Tick(now time.Time) {
	s.mu.Lock()
	meds := append([]models.Reminder(nil), s.medicines...)
	waters := append([]models.Reminder(nil), s.waters...)
	s.mu.Unlock()

	for _, med := range meds {
		if reminder.ShouldFire(med, now) {
			s.notify(constants.MedicineReminderTitle, fmt.Sprintf("Time to take your medicine: %s", med.Label))
		}
	}

	for _, w := range waters {
		if !reminder.ShouldFire(w, now) {
			continue
		}
		s.notify(constants.WaterReminderTitle, "Time to drink a glass of water! 💧")

		if w.IsOneShot() {
			if err := s.store.DeleteReminder(w.ID); err != nil {
				logger.Warn("Failed to consume one-shot water reminder", "id", w.ID, "error", err)
				continue
			}
			s.mu.Lock()
			s.waters = dropReminder(s.waters, w.ID)
			s.mu.Unlock()
		}
	}

	s.checkDayRollover(now)
}

func (s *Scheduler) notify(title, body string) {
	if err := s.sink.Notify(title, body); err != nil {
		logger.Warn("Failed to deliver notification", "title", title, "error", err)
	}
}

func (s *Scheduler) checkDayRollover(now time.Time) {
	day := now.Format(constants.DateFormat)

	s.mu.Lock()
	prev := s.lastDay
	s.lastDay = day
	s.mu.Unlock()

	if prev == "" || prev == day {
		return
	}

	if err := s.Reload(); err != nil {
		// Background refresh: keep the previous mirrors and retry on the
		// next rollover or explicit reload.
		logger.Warn("Reminder reload on day rollover failed", "error", err)
	}
	if s.onDayRollover != nil {
		s.onDayRollover(now)
	}
}

// Start launches the polling loop. Ticks run to completion before the next
// one is considered; there are no overlapping ticks. Stop cancels the loop.
func (s *Scheduler) Start() {
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		// Prime the rollover detector so the first real rollover is seen.
		s.checkDayRollover(s.clock())

		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				s.Tick(s.clock())
			}
		}
	}()
}

// Stop cancels the polling loop. An in-flight tick runs to completion; no
// new tick is scheduled afterwards.
func (s *Scheduler) Stop() {
	if s.stop == nil {
		return
	}
	close(s.stop)
	<-s.done
	s.stop = nil
}

func dropReminder(rems []models.Reminder, id string) []models.Reminder {
	out := rems[:0]
	for _, r := range rems {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}
