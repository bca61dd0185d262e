package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/habitsync/internal/models"
	"github.com/julianstephens/habitsync/internal/storage"
)

// fakeStore implements just the Provider methods the scheduler touches.
// Everything else panics via the embedded nil interface.
type fakeStore struct {
	storage.Provider

	medicines []models.Reminder
	waters    []models.Reminder

	medErr   error
	waterErr error

	deleted   []string
	deleteErr error
}

func (f *fakeStore) GetActiveReminders(ownerID string, kind models.ReminderKind) ([]models.Reminder, error) {
	if kind == models.ReminderKindMedicine {
		if f.medErr != nil {
			return nil, f.medErr
		}
		return append([]models.Reminder(nil), f.medicines...), nil
	}
	if f.waterErr != nil {
		return nil, f.waterErr
	}
	return append([]models.Reminder(nil), f.waters...), nil
}

func (f *fakeStore) AddReminder(rem models.Reminder) error { return nil }

func (f *fakeStore) DeleteReminder(id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeSink struct {
	titles []string
	bodies []string
	err    error
}

func (f *fakeSink) Notify(title, body string) error {
	if f.err != nil {
		return f.err
	}
	f.titles = append(f.titles, title)
	f.bodies = append(f.bodies, body)
	return nil
}

func at(hour, minute int) time.Time {
	return time.Date(2024, 3, 4, hour, minute, 0, 0, time.Local)
}

func newTestScheduler(store *fakeStore, sink *fakeSink) *Scheduler {
	s := New(store, sink, "user-1")
	if err := s.Reload(); err != nil {
		panic(err)
	}
	return s
}

func TestTick_FiresMatchingReminders(t *testing.T) {
	store := &fakeStore{
		medicines: []models.Reminder{
			{ID: "m1", Kind: models.ReminderKindMedicine, Label: "Aspirin", Recurrence: models.RecurrenceDaily, TimeOfDay: "08:30", Active: true},
			{ID: "m2", Kind: models.ReminderKindMedicine, Label: "Vitamin D", Recurrence: models.RecurrenceDaily, TimeOfDay: "09:00", Active: true},
		},
		waters: []models.Reminder{
			{ID: "w1", Kind: models.ReminderKindWater, Recurrence: models.Recurrence2Hrs, TimeOfDay: "06:30", Active: true},
		},
	}
	sink := &fakeSink{}
	s := newTestScheduler(store, sink)

	s.Tick(at(8, 30))

	if len(sink.titles) != 2 {
		t.Fatalf("expected 2 notifications, got %d: %v", len(sink.titles), sink.titles)
	}
	if sink.titles[0] != "Medicine Reminder" || sink.bodies[0] != "Time to take your medicine: Aspirin" {
		t.Errorf("unexpected first notification: %s / %s", sink.titles[0], sink.bodies[0])
	}
	if sink.titles[1] != "Water Reminder" {
		t.Errorf("unexpected second notification title: %s", sink.titles[1])
	}
}

func TestTick_IdempotentForNonFiring(t *testing.T) {
	store := &fakeStore{
		medicines: []models.Reminder{
			{ID: "m1", Kind: models.ReminderKindMedicine, Label: "Aspirin", Recurrence: models.RecurrenceDaily, TimeOfDay: "08:30", Active: true},
		},
	}
	sink := &fakeSink{}
	s := newTestScheduler(store, sink)

	// Two ticks landing in the same non-matching minute fire nothing,
	// and repeated matching ticks produce the same firings each time.
	s.Tick(at(8, 29))
	s.Tick(at(8, 29))
	if len(sink.titles) != 0 {
		t.Fatalf("expected no firings, got %d", len(sink.titles))
	}

	s.Tick(at(8, 30))
	s.Tick(at(8, 30))
	if len(sink.titles) != 2 {
		t.Errorf("expected matching ticks to fire each time, got %d firings", len(sink.titles))
	}
}

func TestTick_OneShotConsumedAfterFiring(t *testing.T) {
	store := &fakeStore{
		waters: []models.Reminder{
			{ID: "w1", Kind: models.ReminderKindWater, Recurrence: models.RecurrenceOnce, TimeOfDay: "14:00", Active: true},
		},
	}
	sink := &fakeSink{}
	s := newTestScheduler(store, sink)

	s.Tick(at(14, 0))

	if len(sink.titles) != 1 {
		t.Fatalf("expected 1 firing, got %d", len(sink.titles))
	}
	if len(store.deleted) != 1 || store.deleted[0] != "w1" {
		t.Errorf("expected exactly one delete for w1, got %v", store.deleted)
	}
	if len(s.WaterReminders()) != 0 {
		t.Error("one-shot reminder should be removed from the mirror")
	}

	// Later ticks see nothing to evaluate.
	s.Tick(at(14, 0))
	if len(sink.titles) != 1 || len(store.deleted) != 1 {
		t.Error("consumed one-shot reminder must not fire or delete again")
	}
}

func TestTick_OneShotDeleteFailureKeepsReminder(t *testing.T) {
	store := &fakeStore{
		waters: []models.Reminder{
			{ID: "w1", Kind: models.ReminderKindWater, Recurrence: models.RecurrenceOnce, TimeOfDay: "14:00", Active: true},
		},
		deleteErr: errors.New("store unavailable"),
	}
	sink := &fakeSink{}
	s := newTestScheduler(store, sink)

	s.Tick(at(14, 0))

	// Notification still went out; the reminder stays and may re-fire.
	if len(sink.titles) != 1 {
		t.Fatalf("expected 1 firing despite delete failure, got %d", len(sink.titles))
	}
	if len(s.WaterReminders()) != 1 {
		t.Error("reminder must stay in the mirror when the delete fails")
	}

	s.Tick(at(14, 0))
	if len(sink.titles) != 2 {
		t.Error("duplicate firing after failed delete is expected degraded behavior")
	}
}

func TestTick_NotificationBeforeDelete(t *testing.T) {
	// Even when the sink errors, the one-shot delete still proceeds:
	// dispatch is attempted first, persistence second.
	store := &fakeStore{
		waters: []models.Reminder{
			{ID: "w1", Kind: models.ReminderKindWater, Recurrence: models.RecurrenceOnce, TimeOfDay: "14:00", Active: true},
		},
	}
	sink := &fakeSink{err: errors.New("tray not running")}
	s := newTestScheduler(store, sink)

	s.Tick(at(14, 0))

	if len(store.deleted) != 1 {
		t.Error("one-shot reminder should be consumed even when delivery fails")
	}
}

func TestReload_IndependentCollections(t *testing.T) {
	store := &fakeStore{
		medicines: []models.Reminder{
			{ID: "m1", Kind: models.ReminderKindMedicine, Label: "Aspirin", Recurrence: models.RecurrenceDaily, TimeOfDay: "08:30", Active: true},
		},
		waters: []models.Reminder{
			{ID: "w1", Kind: models.ReminderKindWater, Recurrence: models.RecurrenceDaily, TimeOfDay: "10:00", Active: true},
		},
	}
	sink := &fakeSink{}
	s := newTestScheduler(store, sink)

	// Medicine fetch starts failing; water set changes.
	store.medErr = errors.New("store unavailable")
	store.waters = append(store.waters, models.Reminder{
		ID: "w2", Kind: models.ReminderKindWater, Recurrence: models.RecurrenceDaily, TimeOfDay: "11:00", Active: true,
	})

	err := s.Reload()
	if err == nil {
		t.Fatal("expected reload to report the medicine fetch failure")
	}
	if len(s.MedicineReminders()) != 1 {
		t.Error("medicine mirror must be retained when its fetch fails")
	}
	if len(s.WaterReminders()) != 2 {
		t.Error("water mirror must still refresh when the other fetch fails")
	}
}

func TestReload_EmptyFetchClearsMirror(t *testing.T) {
	store := &fakeStore{
		waters: []models.Reminder{
			{ID: "w1", Kind: models.ReminderKindWater, Recurrence: models.RecurrenceDaily, TimeOfDay: "10:00", Active: true},
		},
	}
	sink := &fakeSink{}
	s := newTestScheduler(store, sink)

	// The last reminder is deleted out-of-band; the next successful reload
	// returns an empty (nil) set and must empty the mirror.
	store.waters = nil

	if err := s.Reload(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if got := s.WaterReminders(); len(got) != 0 {
		t.Fatalf("mirror still holds %d reminder(s) after a successful empty reload", len(got))
	}

	s.Tick(at(10, 0))
	if len(sink.titles) != 0 {
		t.Error("deleted reminder must not fire after the mirror refreshed")
	}
}

func TestAddRemove_UpdateMirror(t *testing.T) {
	store := &fakeStore{}
	sink := &fakeSink{}
	s := newTestScheduler(store, sink)

	rem := models.Reminder{
		ID: "w1", Kind: models.ReminderKindWater, Recurrence: models.RecurrenceDaily, TimeOfDay: "10:00", Active: true,
	}
	if err := s.Add(rem); err != nil {
		t.Fatal(err)
	}
	if len(s.WaterReminders()) != 1 {
		t.Fatal("added reminder missing from mirror")
	}

	if err := s.Remove("w1"); err != nil {
		t.Fatal(err)
	}
	if len(s.WaterReminders()) != 0 {
		t.Error("removed reminder still in mirror")
	}
}

func TestAdd_RejectsInvalidReminder(t *testing.T) {
	s := newTestScheduler(&fakeStore{}, &fakeSink{})

	err := s.Add(models.Reminder{
		Kind: models.ReminderKindWater, Recurrence: "fortnightly", TimeOfDay: "10:00",
	})
	if err == nil {
		t.Error("expected validation error for unknown recurrence")
	}
}

func TestDayRollover(t *testing.T) {
	store := &fakeStore{}
	sink := &fakeSink{}
	s := newTestScheduler(store, sink)

	var rolledTo []time.Time
	s.OnDayRollover(func(now time.Time) {
		rolledTo = append(rolledTo, now)
	})

	day1 := at(23, 59)
	day2 := day1.Add(2 * time.Minute) // 00:01 the next day

	s.Tick(day1)
	if len(rolledTo) != 0 {
		t.Fatal("first tick must not count as a rollover")
	}

	s.Tick(day2)
	if len(rolledTo) != 1 {
		t.Fatalf("expected one rollover, got %d", len(rolledTo))
	}

	// Further ticks on the same day do not re-trigger.
	s.Tick(day2.Add(time.Minute))
	if len(rolledTo) != 1 {
		t.Error("rollover fired more than once for the same day")
	}
}

func TestStartStop(t *testing.T) {
	store := &fakeStore{
		waters: []models.Reminder{
			{ID: "w1", Kind: models.ReminderKindWater, Recurrence: models.RecurrenceDaily, TimeOfDay: "00:00", Active: true},
		},
	}
	sink := &fakeSink{}
	s := newTestScheduler(store, sink)
	s.SetInterval(5 * time.Millisecond)

	s.Start()
	time.Sleep(25 * time.Millisecond)
	s.Stop()

	// Stop twice is safe and no new ticks are scheduled afterwards.
	s.Stop()
}
