package storage

import (
	"database/sql"
	"time"

	"github.com/julianstephens/habitsync/internal/models"
)

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (models.Profile, error) {
	var p models.Profile
	var lastActive, lastReset sql.NullString
	var updatedAt string

	err := row.Scan(
		&p.ID, &p.FullName, &p.Age, &p.Sex, &p.HeightCm, &p.WeightKg, &p.BloodGroup, &p.BMI,
		&p.Points, &p.CurrentStreak, &p.BestStreak, &lastActive, &lastReset, &updatedAt,
	)
	if err != nil {
		return models.Profile{}, err
	}

	if lastActive.Valid && lastActive.String != "" {
		t := parseStoredTime(lastActive.String)
		p.LastActiveDate = &t
	}
	if lastReset.Valid && lastReset.String != "" {
		t := parseStoredTime(lastReset.String)
		p.LastPointsReset = &t
	}
	p.UpdatedAt = parseStoredTime(updatedAt)

	return p, nil
}

func formatNullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(time.RFC3339)
}

// parseStoredTime decodes an RFC3339 timestamp column. Malformed values
// decode to the zero time rather than failing the whole read.
func parseStoredTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
