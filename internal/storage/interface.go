package storage

import (
	"errors"
	"time"

	"github.com/julianstephens/habitsync/internal/models"
)

// ErrProfileNotFound is returned when no profile row exists for an owner.
var ErrProfileNotFound = errors.New("profile not found")

// Provider is the data store the scheduler, streak engine, and CLI talk to.
// Implementations exist for SQLite (default) and PostgreSQL.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Profile
	GetProfile(ownerID string) (models.Profile, error)
	SaveProfile(models.Profile) error

	// Reminders
	AddReminder(models.Reminder) error
	GetActiveReminders(ownerID string, kind models.ReminderKind) ([]models.Reminder, error)
	DeleteReminder(id string) error
	DeactivateReminder(id string) error

	// Water logs
	AddWaterLog(models.WaterLog) error
	GetWaterLogsSince(ownerID string, since time.Time) ([]models.WaterLog, error)
	DeleteWaterLog(id string) error

	// Weight logs
	AddWeightLog(models.WeightLog) error
	GetWeightLogsSince(ownerID string, since time.Time) ([]models.WeightLog, error)

	// Blood pressure logs
	AddBloodPressureLog(models.BloodPressureLog) error
	GetBloodPressureLogsSince(ownerID string, since time.Time) ([]models.BloodPressureLog, error)

	// Medicine inventory
	AddMedicine(models.Medicine) error
	GetMedicines(ownerID string) ([]models.Medicine, error)
	DeleteMedicine(id string) error

	// Utils
	GetConfigPath() string
}
