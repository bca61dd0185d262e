package models

import (
	"math"
	"time"
)

// Profile holds the user's health profile plus the streak and points state
// mutated by the streak engine and the monthly points reset.
type Profile struct {
	ID              string     `json:"id"`
	FullName        string     `json:"full_name"`
	Age             int        `json:"age,omitempty"`
	Sex             string     `json:"sex,omitempty"`
	HeightCm        float64    `json:"height_cm,omitempty"`
	WeightKg        float64    `json:"weight_kg,omitempty"`
	BloodGroup      string     `json:"blood_group,omitempty"`
	BMI             float64    `json:"bmi,omitempty"`
	Points          int        `json:"points"`
	CurrentStreak   int        `json:"current_streak"`
	BestStreak      int        `json:"best_streak"`
	LastActiveDate  *time.Time `json:"last_active_date,omitempty"`
	LastPointsReset *time.Time `json:"last_points_reset,omitempty"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// CalculateBMI computes body mass index (kg/m²) rounded to one decimal.
// Returns 0 when either measurement is missing.
func CalculateBMI(weightKg, heightCm float64) float64 {
	if weightKg <= 0 || heightCm <= 0 {
		return 0
	}
	hm := heightCm / 100
	return math.Round(weightKg/(hm*hm)*10) / 10
}

// BMICategory labels a BMI value using the standard WHO bands.
func BMICategory(bmi float64) string {
	switch {
	case bmi == 0:
		return "Not calculated"
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}

// RecalculateBMI refreshes the stored BMI from the current height and weight.
func (p *Profile) RecalculateBMI() {
	p.BMI = CalculateBMI(p.WeightKg, p.HeightCm)
}
