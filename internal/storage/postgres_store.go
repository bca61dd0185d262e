package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/julianstephens/habitsync/internal/constants"
	"github.com/julianstephens/habitsync/internal/logger"
	"github.com/julianstephens/habitsync/internal/migration"
	"github.com/julianstephens/habitsync/internal/models"
	"github.com/julianstephens/habitsync/migrations"
)

type PostgresStore struct {
	connStr string
	db      *sql.DB
}

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

func NewPostgresStore(connStr string) *PostgresStore {
	s := &PostgresStore{
		connStr: connStr,
	}
	s.ensureSearchPath()
	return s
}

func (s *PostgresStore) ensureSearchPath() {
	// Ensure search_path is set to habitsync in the connection string
	if strings.HasPrefix(s.connStr, "postgres://") || strings.HasPrefix(s.connStr, "postgresql://") {
		u, err := url.Parse(s.connStr)
		if err != nil {
			logger.Warn("Failed to parse Postgres connection string", "error", err)
			return
		}
		q := u.Query()
		// Only set search_path if it's not already present
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
			s.connStr = u.String()
		}
	} else {
		// Assume DSN format - only append if search_path is not already present
		if !hasConnParam(s.connStr, "search_path") {
			s.connStr = strings.TrimSpace(s.connStr) + " search_path=" + constants.AppName
		}
	}
}

// hasConnParam returns true if a DSN-style connection string contains the
// given parameter key (case-insensitive).
func hasConnParam(connStr, key string) bool {
	parts := strings.Fields(connStr)
	for _, part := range parts {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		if strings.EqualFold(kv[0], key) {
			return true
		}
	}
	return false
}

// hasSSLMode checks if the connection string contains an sslmode parameter.
// It supports both URL-style and DSN-style connection strings.
func hasSSLMode(connStr string) bool {
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" {
		q := u.Query()
		for key := range q {
			if strings.EqualFold(key, "sslmode") {
				return true
			}
		}
	}
	return hasConnParam(connStr, "sslmode")
}

// ValidateConnString checks if a connection string is a valid PostgreSQL
// connection string (URI or DSN) and ensures it does not contain a password.
func ValidateConnString(connStr string) (bool, error) {
	if strings.TrimSpace(connStr) == "" {
		return false, fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}

	_, err := pq.NewConnector(connStr)
	if err != nil {
		return false, fmt.Errorf("%w: invalid connection string format: %v", ErrInvalidConnectionString, err)
	}

	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		parsedURL, err := url.Parse(connStr)
		if err != nil {
			return false, fmt.Errorf("%w: failed to parse connection URL: %v", ErrInvalidConnectionString, err)
		}

		if _, isSet := parsedURL.User.Password(); isSet {
			return false, ErrEmbeddedCredentials
		}

		if parsedURL.Host == "" && parsedURL.User == nil && (parsedURL.Path == "" || parsedURL.Path == "/") {
			return false, fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
	} else {
		pairs := strings.Fields(connStr)
		for _, pair := range pairs {
			parts := strings.SplitN(pair, "=", 2)
			if len(parts) == 2 && strings.ToLower(strings.TrimSpace(parts[0])) == "password" {
				return false, ErrEmbeddedCredentials
			}
		}
	}

	return true, nil
}

// HasEmbeddedCredentials reports whether a connection string carries a
// password inline. Such strings are rejected; credentials belong in the OS
// keyring, the environment, or .pgpass.
func HasEmbeddedCredentials(connStr string) bool {
	ok, err := ValidateConnString(connStr)
	return !ok && errors.Is(err, ErrEmbeddedCredentials)
}

func (s *PostgresStore) Init() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool parameters to avoid connection exhaustion
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Create schema if it doesn't exist (before assigning to s.db to maintain consistency)
	if _, err := db.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasSSLMode(s.connStr) {
			return fmt.Errorf("failed to connect to database: %w (hint: try adding ?sslmode=disable to your connection string)", err)
		}
		return fmt.Errorf("failed to connect to database: %w", err)
	}

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

func (s *PostgresStore) Load() error {
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := s.db.Ping(); err != nil {
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasSSLMode(s.connStr) {
			return fmt.Errorf("failed to connect to database: %w (hint: try adding ?sslmode=disable to your connection string)", err)
		}
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := s.validateSchemaVersion(); err != nil {
		return err
	}

	return nil
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *PostgresStore) runMigrations() error {
	runner := migration.NewRunner(s.db, migrations.Postgres(), migration.DriverPostgres)
	_, err := runner.ApplyMigrations(func(msg string) {
		fmt.Println(msg)
	})
	return err
}

func (s *PostgresStore) validateSchemaVersion() error {
	runner := migration.NewRunner(s.db, migrations.Postgres(), migration.DriverPostgres)
	return runner.ValidateVersion()
}

func (s *PostgresStore) GetConfigPath() string {
	// Return a non-sensitive identifier instead of the full connection string
	return "postgresql"
}

func (s *PostgresStore) GetSettings() (models.Settings, error) {
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

func (s *PostgresStore) SaveSettings(settings models.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO settings (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`)
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

func (s *PostgresStore) GetProfile(ownerID string) (models.Profile, error) {
	row := s.db.QueryRow(`
		SELECT id, full_name, age, sex, height_cm, weight_kg, blood_group, bmi,
		       points, current_streak, best_streak, last_active_date, last_points_reset, updated_at
		FROM profiles WHERE id = $1`, ownerID)

	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Profile{}, ErrProfileNotFound
		}
		return models.Profile{}, err
	}
	return p, nil
}

func (s *PostgresStore) SaveProfile(p models.Profile) error {
	_, err := s.db.Exec(`
		INSERT INTO profiles (id, full_name, age, sex, height_cm, weight_kg, blood_group, bmi,
		                      points, current_streak, best_streak, last_active_date, last_points_reset, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			age = EXCLUDED.age,
			sex = EXCLUDED.sex,
			height_cm = EXCLUDED.height_cm,
			weight_kg = EXCLUDED.weight_kg,
			blood_group = EXCLUDED.blood_group,
			bmi = EXCLUDED.bmi,
			points = EXCLUDED.points,
			current_streak = EXCLUDED.current_streak,
			best_streak = EXCLUDED.best_streak,
			last_active_date = EXCLUDED.last_active_date,
			last_points_reset = EXCLUDED.last_points_reset,
			updated_at = EXCLUDED.updated_at`,
		p.ID, p.FullName, p.Age, p.Sex, p.HeightCm, p.WeightKg, p.BloodGroup, p.BMI,
		p.Points, p.CurrentStreak, p.BestStreak,
		formatNullableTime(p.LastActiveDate), formatNullableTime(p.LastPointsReset),
		p.UpdatedAt.Format(time.RFC3339))
	return err
}

func (s *PostgresStore) AddReminder(r models.Reminder) error {
	_, err := s.db.Exec(`
		INSERT INTO reminders (id, owner_id, kind, label, recurrence, time_of_day, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		r.ID, r.OwnerID, string(r.Kind), r.Label, string(r.Recurrence), r.TimeOfDay, r.Active,
		r.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *PostgresStore) GetActiveReminders(ownerID string, kind models.ReminderKind) ([]models.Reminder, error) {
	rows, err := s.db.Query(`
		SELECT id, owner_id, kind, label, recurrence, time_of_day, is_active, created_at
		FROM reminders
		WHERE owner_id = $1 AND kind = $2 AND is_active = TRUE
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

func (s *PostgresStore) DeleteReminder(id string) error {
	_, err := s.db.Exec("DELETE FROM reminders WHERE id = $1", id)
	return err
}

func (s *PostgresStore) DeactivateReminder(id string) error {
	_, err := s.db.Exec("UPDATE reminders SET is_active = FALSE WHERE id = $1", id)
	return err
}

func (s *PostgresStore) AddWaterLog(l models.WaterLog) error {
	_, err := s.db.Exec(`
		INSERT INTO water_logs (id, owner_id, amount_ml, logged_at)
		VALUES ($1, $2, $3, $4)`,
		l.ID, l.OwnerID, l.AmountMl, l.LoggedAt.Format(time.RFC3339))
	return err
}

func (s *PostgresStore) GetWaterLogsSince(ownerID string, since time.Time) ([]models.WaterLog, error) {
	rows, err := s.db.Query(`
		SELECT id, owner_id, amount_ml, logged_at
		FROM water_logs
		WHERE owner_id = $1 AND logged_at >= $2
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

func (s *PostgresStore) DeleteWaterLog(id string) error {
	_, err := s.db.Exec("DELETE FROM water_logs WHERE id = $1", id)
	return err
}

func (s *PostgresStore) AddWeightLog(l models.WeightLog) error {
	_, err := s.db.Exec(`
		INSERT INTO weight_logs (id, owner_id, weight_kg, logged_at)
		VALUES ($1, $2, $3, $4)`,
		l.ID, l.OwnerID, l.WeightKg, l.LoggedAt.Format(time.RFC3339))
	return err
}

func (s *PostgresStore) GetWeightLogsSince(ownerID string, since time.Time) ([]models.WeightLog, error) {
	rows, err := s.db.Query(`
		SELECT id, owner_id, weight_kg, logged_at
		FROM weight_logs
		WHERE owner_id = $1 AND logged_at >= $2
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

func (s *PostgresStore) AddBloodPressureLog(l models.BloodPressureLog) error {
	_, err := s.db.Exec(`
		INSERT INTO blood_pressure_logs (id, owner_id, systolic, diastolic, pulse, logged_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID, l.OwnerID, l.Systolic, l.Diastolic, l.Pulse, l.LoggedAt.Format(time.RFC3339))
	return err
}

func (s *PostgresStore) GetBloodPressureLogsSince(ownerID string, since time.Time) ([]models.BloodPressureLog, error) {
	rows, err := s.db.Query(`
		SELECT id, owner_id, systolic, diastolic, pulse, logged_at
		FROM blood_pressure_logs
		WHERE owner_id = $1 AND logged_at >= $2
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

func (s *PostgresStore) AddMedicine(m models.Medicine) error {
	_, err := s.db.Exec(`
		INSERT INTO medicines (id, owner_id, name, dosage, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.OwnerID, m.Name, m.Dosage, m.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *PostgresStore) GetMedicines(ownerID string) ([]models.Medicine, error) {
	rows, err := s.db.Query(`
		SELECT id, owner_id, name, dosage, created_at
		FROM medicines
		WHERE owner_id = $1
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

func (s *PostgresStore) DeleteMedicine(id string) error {
	_, err := s.db.Exec("DELETE FROM medicines WHERE id = $1", id)
	return err
}
