package profile

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/julianstephens/habitsync/internal/cli"
	"github.com/julianstephens/habitsync/internal/models"
	"github.com/julianstephens/habitsync/internal/storage"
)

type ShowCmd struct{}

func (c *ShowCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Store.GetProfile(ctx.OwnerID)
	if err != nil {
		if errors.Is(err, storage.ErrProfileNotFound) {
			fmt.Println("No profile yet. Run 'habitsync profile edit' to create one.")
			return nil
		}
		return fmt.Errorf("failed to get profile: %w", err)
	}

	fmt.Println("Profile:")
	fmt.Printf("  Name:        %s\n", orDash(p.FullName))
	if p.Age > 0 {
		fmt.Printf("  Age:         %d\n", p.Age)
	}
	fmt.Printf("  Sex:         %s\n", orDash(p.Sex))
	fmt.Printf("  Height:      %.1f cm\n", p.HeightCm)
	fmt.Printf("  Weight:      %.1f kg\n", p.WeightKg)
	fmt.Printf("  Blood group: %s\n", orDash(p.BloodGroup))
	fmt.Printf("  BMI:         %.1f (%s)\n", p.BMI, models.BMICategory(p.BMI))
	fmt.Println("\nActivity:")
	fmt.Printf("  Current streak: %d day(s)\n", p.CurrentStreak)
	fmt.Printf("  Best streak:    %d day(s)\n", p.BestStreak)
	fmt.Printf("  Points:         %d (reset monthly)\n", p.Points)
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

type EditCmd struct{}

func (c *EditCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Store.GetProfile(ctx.OwnerID)
	if err != nil {
		if !errors.Is(err, storage.ErrProfileNotFound) {
			return fmt.Errorf("failed to get profile: %w", err)
		}
		p = models.Profile{ID: ctx.OwnerID}
	}

	name := p.FullName
	sex := p.Sex
	bloodGroup := p.BloodGroup
	age := formatInt(p.Age)
	height := formatFloat(p.HeightCm)
	weight := formatFloat(p.WeightKg)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Full name").Value(&name),
			huh.NewInput().Title("Age").Value(&age).Validate(validateOptionalInt),
			huh.NewSelect[string]().Title("Sex").
				Options(
					huh.NewOption("Female", "female"),
					huh.NewOption("Male", "male"),
					huh.NewOption("Other", "other"),
					huh.NewOption("Prefer not to say", ""),
				).Value(&sex),
			huh.NewInput().Title("Height (cm)").Value(&height).Validate(validateOptionalFloat),
			huh.NewInput().Title("Weight (kg)").Value(&weight).Validate(validateOptionalFloat),
			huh.NewSelect[string]().Title("Blood group").
				Options(
					huh.NewOption("Unknown", ""),
					huh.NewOption("A+", "A+"), huh.NewOption("A-", "A-"),
					huh.NewOption("B+", "B+"), huh.NewOption("B-", "B-"),
					huh.NewOption("AB+", "AB+"), huh.NewOption("AB-", "AB-"),
					huh.NewOption("O+", "O+"), huh.NewOption("O-", "O-"),
				).Value(&bloodGroup),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	previousWeight := p.WeightKg
	p.FullName = name
	p.Sex = sex
	p.BloodGroup = bloodGroup
	p.Age, _ = strconv.Atoi(age)
	p.HeightCm = parseFloat(height)
	p.WeightKg = parseFloat(weight)
	p.RecalculateBMI()
	p.UpdatedAt = time.Now()

	if err := ctx.Store.SaveProfile(p); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	// A weight change feeds the monthly report's weight history.
	if p.WeightKg > 0 && p.WeightKg != previousWeight {
		log := models.WeightLog{
			ID:       uuid.New().String(),
			OwnerID:  ctx.OwnerID,
			WeightKg: p.WeightKg,
			LoggedAt: time.Now(),
		}
		if err := ctx.Store.AddWeightLog(log); err != nil {
			return fmt.Errorf("failed to record weight log: %w", err)
		}
	}

	fmt.Printf("✓ Profile saved. BMI: %.1f (%s)\n", p.BMI, models.BMICategory(p.BMI))
	return nil
}

func formatInt(v int) string {
	if v == 0 {
		return ""
	}
	return strconv.Itoa(v)
}

func formatFloat(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func validateOptionalInt(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return fmt.Errorf("must be a non-negative number")
	}
	return nil
}

func validateOptionalFloat(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return fmt.Errorf("must be a non-negative number")
	}
	return nil
}
