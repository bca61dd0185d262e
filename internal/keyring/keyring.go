// Package keyring stores the PostgreSQL connection string in the OS keyring
// so habitsync can reach a remote database without the DSN living in a flag,
// an environment variable, or a file.
package keyring

import (
	"errors"
	"fmt"

	gokeyring "github.com/zalando/go-keyring"

	"github.com/julianstephens/habitsync/internal/constants"
)

var (
	// ErrNotFound is returned when no connection string has been stored yet.
	ErrNotFound = errors.New("no database connection string stored in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring cannot be reached.
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetConnectionString retrieves the stored connection string. Callers fall
// back to the SQLite file on ErrNotFound; any other failure is wrapped as
// ErrKeyringUnavailable so the fallback still applies.
func GetConnectionString() (string, error) {
	connStr, err := gokeyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if errors.Is(err, gokeyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

// SetConnectionString stores the connection string under the habitsync
// service entry, replacing any previous value.
func SetConnectionString(connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := gokeyring.Set(constants.AppName, constants.DefaultKeyringUser, connStr); err != nil {
		return fmt.Errorf("failed to store connection string in keyring: %w", err)
	}
	return nil
}

// DeleteConnectionString removes the stored connection string, reverting
// habitsync to the SQLite file on the next start.
func DeleteConnectionString() error {
	if err := gokeyring.Delete(constants.AppName, constants.DefaultKeyringUser); err != nil {
		if errors.Is(err, gokeyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete connection string from keyring: %w", err)
	}
	return nil
}

// IsAvailable reports whether the OS keyring backend responds at all.
// Best-effort: a probe read that comes back empty still proves the keyring
// is reachable.
func IsAvailable() bool {
	_, err := gokeyring.Get(constants.AppName, constants.DefaultKeyringUser)
	return err == nil || errors.Is(err, gokeyring.ErrNotFound)
}
