package models

import "time"

// WaterLog records one logged glass of water
type WaterLog struct {
	ID       string    `json:"id"`
	OwnerID  string    `json:"owner_id"`
	AmountMl int       `json:"amount_ml"`
	LoggedAt time.Time `json:"logged_at"`
}

// WeightLog records a weight measurement; one row is appended whenever the
// profile weight changes so the monthly report can compute deltas.
type WeightLog struct {
	ID       string    `json:"id"`
	OwnerID  string    `json:"owner_id"`
	WeightKg float64   `json:"weight_kg"`
	LoggedAt time.Time `json:"logged_at"`
}

// BloodPressureLog records a blood pressure reading
type BloodPressureLog struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Systolic  int       `json:"systolic"`
	Diastolic int       `json:"diastolic"`
	Pulse     int       `json:"pulse,omitempty"`
	LoggedAt  time.Time `json:"logged_at"`
}
