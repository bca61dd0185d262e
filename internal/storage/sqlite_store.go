package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/habitsync/internal/constants"
	"github.com/julianstephens/habitsync/internal/migration"
	"github.com/julianstephens/habitsync/internal/models"
	"github.com/julianstephens/habitsync/migrations"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Open database
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Run migrations
	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize default settings if not present
	if _, err := s.GetSettings(); err != nil {
		defaultSettings := models.Settings{
			NotificationsEnabled: constants.DefaultNotificationsEnabled,
			Timezone:             constants.DefaultTimezone,
			DailyWaterGoalMl:     constants.DefaultDailyWaterGoalMl,
			PollIntervalSec:      constants.DefaultPollIntervalSec,
		}
		if err := s.SaveSettings(defaultSettings); err != nil {
			return fmt.Errorf("failed to save default settings: %w", err)
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'habitsync init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	// Validate schema version using embedded migrations
	if err := s.validateSchemaVersion(); err != nil {
		return err
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) runMigrations() error {
	runner := migration.NewRunner(s.db, migrations.SQLite(), migration.DriverSQLite)
	_, err := runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})
	return err
}

func (s *SQLiteStore) validateSchemaVersion() error {
	runner := migration.NewRunner(s.db, migrations.SQLite(), migration.DriverSQLite)
	return runner.ValidateVersion()
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

func (s *SQLiteStore) GetSettings() (models.Settings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.Settings{}, err
	}
	defer rows.Close()

	settings := models.Settings{}
	count := 0
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		switch key {
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingDailyWaterGoalMl:
			if _, err := fmt.Sscanf(value, "%d", &settings.DailyWaterGoalMl); err != nil {
				return models.Settings{}, fmt.Errorf("parsing daily_water_goal_ml: %w", err)
			}
		case constants.SettingPollIntervalSec:
			if _, err := fmt.Sscanf(value, "%d", &settings.PollIntervalSec); err != nil {
				return models.Settings{}, fmt.Errorf("parsing poll_interval_sec: %w", err)
			}
		}
		count++
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}

	if count == 0 {
		return models.Settings{}, fmt.Errorf("settings not found")
	}

	return settings, nil
}

func (s *SQLiteStore) SaveSettings(settings models.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	if _, err := stmt.Exec(constants.SettingNotificationsEnabled, fmt.Sprintf("%v", settings.NotificationsEnabled)); err != nil {
		return err
	}
	if _, err := stmt.Exec(constants.SettingTimezone, settings.Timezone); err != nil {
		return err
	}
	if _, err := stmt.Exec(constants.SettingDailyWaterGoalMl, fmt.Sprintf("%d", settings.DailyWaterGoalMl)); err != nil {
		return err
	}
	if _, err := stmt.Exec(constants.SettingPollIntervalSec, fmt.Sprintf("%d", settings.PollIntervalSec)); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStore) GetProfile(ownerID string) (models.Profile, error) {
	row := s.db.QueryRow(`
		SELECT id, full_name, age, sex, height_cm, weight_kg, blood_group, bmi,
		       points, current_streak, best_streak, last_active_date, last_points_reset, updated_at
		FROM profiles WHERE id = ?`, ownerID)

	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Profile{}, ErrProfileNotFound
		}
		return models.Profile{}, err
	}
	return p, nil
}

func (s *SQLiteStore) SaveProfile(p models.Profile) error {
	_, err := s.db.Exec(`
		INSERT INTO profiles (id, full_name, age, sex, height_cm, weight_kg, blood_group, bmi,
		                      points, current_streak, best_streak, last_active_date, last_points_reset, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			full_name = excluded.full_name,
			age = excluded.age,
			sex = excluded.sex,
			height_cm = excluded.height_cm,
			weight_kg = excluded.weight_kg,
			blood_group = excluded.blood_group,
			bmi = excluded.bmi,
			points = excluded.points,
			current_streak = excluded.current_streak,
			best_streak = excluded.best_streak,
			last_active_date = excluded.last_active_date,
			last_points_reset = excluded.last_points_reset,
			updated_at = excluded.updated_at`,
		p.ID, p.FullName, p.Age, p.Sex, p.HeightCm, p.WeightKg, p.BloodGroup, p.BMI,
		p.Points, p.CurrentStreak, p.BestStreak,
		formatNullableTime(p.LastActiveDate), formatNullableTime(p.LastPointsReset),
		p.UpdatedAt.Format(time.RFC3339))
	return err
}

func (s *SQLiteStore) AddReminder(r models.Reminder) error {
	_, err := s.db.Exec(`
		INSERT INTO reminders (id, owner_id, kind, label, recurrence, time_of_day, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.OwnerID, string(r.Kind), r.Label, string(r.Recurrence), r.TimeOfDay, r.Active,
		r.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *SQLiteStore) GetActiveReminders(ownerID string, kind models.ReminderKind) ([]models.Reminder, error) {
	rows, err := s.db.Query(`
		SELECT id, owner_id, kind, label, recurrence, time_of_day, is_active, created_at
		FROM reminders
		WHERE owner_id = ? AND kind = ? AND is_active = 1
		ORDER BY time_of_day, created_at`, ownerID, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []models.Reminder
	for rows.Next() {
		var r models.Reminder
		var kindStr, recurrence, createdAt string
		if err := rows.Scan(&r.ID, &r.OwnerID, &kindStr, &r.Label, &recurrence, &r.TimeOfDay, &r.Active, &createdAt); err != nil {
			return nil, err
		}
		r.Kind = models.ReminderKind(kindStr)
		r.Recurrence = models.RecurrenceKind(recurrence)
		r.CreatedAt = parseStoredTime(createdAt)
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}

func (s *SQLiteStore) DeleteReminder(id string) error {
	_, err := s.db.Exec("DELETE FROM reminders WHERE id = ?", id)
	return err
}

func (s *SQLiteStore) DeactivateReminder(id string) error {
	_, err := s.db.Exec("UPDATE reminders SET is_active = 0 WHERE id = ?", id)
	return err
}

func (s *SQLiteStore) AddWaterLog(l models.WaterLog) error {
	_, err := s.db.Exec(`
		INSERT INTO water_logs (id, owner_id, amount_ml, logged_at)
		VALUES (?, ?, ?, ?)`,
		l.ID, l.OwnerID, l.AmountMl, l.LoggedAt.Format(time.RFC3339))
	return err
}

func (s *SQLiteStore) GetWaterLogsSince(ownerID string, since time.Time) ([]models.WaterLog, error) {
	rows, err := s.db.Query(`
		SELECT id, owner_id, amount_ml, logged_at
		FROM water_logs
		WHERE owner_id = ? AND logged_at >= ?
		ORDER BY logged_at`, ownerID, since.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.WaterLog
	for rows.Next() {
		var l models.WaterLog
		var loggedAt string
		if err := rows.Scan(&l.ID, &l.OwnerID, &l.AmountMl, &loggedAt); err != nil {
			return nil, err
		}
		l.LoggedAt = parseStoredTime(loggedAt)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (s *SQLiteStore) DeleteWaterLog(id string) error {
	_, err := s.db.Exec("DELETE FROM water_logs WHERE id = ?", id)
	return err
}

func (s *SQLiteStore) AddWeightLog(l models.WeightLog) error {
	_, err := s.db.Exec(`
		INSERT INTO weight_logs (id, owner_id, weight_kg, logged_at)
		VALUES (?, ?, ?, ?)`,
		l.ID, l.OwnerID, l.WeightKg, l.LoggedAt.Format(time.RFC3339))
	return err
}

func (s *SQLiteStore) GetWeightLogsSince(ownerID string, since time.Time) ([]models.WeightLog, error) {
	rows, err := s.db.Query(`
		SELECT id, owner_id, weight_kg, logged_at
		FROM weight_logs
		WHERE owner_id = ? AND logged_at >= ?
		ORDER BY logged_at`, ownerID, since.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.WeightLog
	for rows.Next() {
		var l models.WeightLog
		var loggedAt string
		if err := rows.Scan(&l.ID, &l.OwnerID, &l.WeightKg, &loggedAt); err != nil {
			return nil, err
		}
		l.LoggedAt = parseStoredTime(loggedAt)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (s *SQLiteStore) AddBloodPressureLog(l models.BloodPressureLog) error {
	_, err := s.db.Exec(`
		INSERT INTO blood_pressure_logs (id, owner_id, systolic, diastolic, pulse, logged_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		l.ID, l.OwnerID, l.Systolic, l.Diastolic, l.Pulse, l.LoggedAt.Format(time.RFC3339))
	return err
}

func (s *SQLiteStore) GetBloodPressureLogsSince(ownerID string, since time.Time) ([]models.BloodPressureLog, error) {
	rows, err := s.db.Query(`
		SELECT id, owner_id, systolic, diastolic, pulse, logged_at
		FROM blood_pressure_logs
		WHERE owner_id = ? AND logged_at >= ?
		ORDER BY logged_at`, ownerID, since.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.BloodPressureLog
	for rows.Next() {
		var l models.BloodPressureLog
		var loggedAt string
		if err := rows.Scan(&l.ID, &l.OwnerID, &l.Systolic, &l.Diastolic, &l.Pulse, &loggedAt); err != nil {
			return nil, err
		}
		l.LoggedAt = parseStoredTime(loggedAt)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (s *SQLiteStore) AddMedicine(m models.Medicine) error {
	_, err := s.db.Exec(`
		INSERT INTO medicines (id, owner_id, name, dosage, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.OwnerID, m.Name, m.Dosage, m.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *SQLiteStore) GetMedicines(ownerID string) ([]models.Medicine, error) {
	rows, err := s.db.Query(`
		SELECT id, owner_id, name, dosage, created_at
		FROM medicines
		WHERE owner_id = ?
		ORDER BY name`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var medicines []models.Medicine
	for rows.Next() {
		var m models.Medicine
		var createdAt string
		if err := rows.Scan(&m.ID, &m.OwnerID, &m.Name, &m.Dosage, &createdAt); err != nil {
			return nil, err
		}
		m.CreatedAt = parseStoredTime(createdAt)
		medicines = append(medicines, m)
	}
	return medicines, rows.Err()
}

func (s *SQLiteStore) DeleteMedicine(id string) error {
	_, err := s.db.Exec("DELETE FROM medicines WHERE id = ?", id)
	return err
}
