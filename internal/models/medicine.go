package models

import (
	"fmt"
	"strings"
	"time"
)

// Medicine is an entry in the user's medicine inventory. Medicine reminders
// reference inventory entries by name.
type Medicine struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	Dosage    string    `json:"dosage,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (m *Medicine) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("medicine name cannot be empty")
	}
	return nil
}
