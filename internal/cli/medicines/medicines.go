package medicines

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/julianstephens/habitsync/internal/cli"
	"github.com/julianstephens/habitsync/internal/models"
)

type AddCmd struct {
	Name   string `arg:"" help:"Medicine name."`
	Dosage string `help:"Dosage description (e.g. 100mg)."`
}

func (c *AddCmd) Run(ctx *cli.Context) error {
	med := models.Medicine{
		ID:        uuid.New().String(),
		OwnerID:   ctx.OwnerID,
		Name:      c.Name,
		Dosage:    c.Dosage,
		CreatedAt: time.Now(),
	}
	if err := med.Validate(); err != nil {
		return err
	}

	if err := ctx.Store.AddMedicine(med); err != nil {
		return fmt.Errorf("failed to add medicine: %w", err)
	}

	fmt.Printf("✓ Medicine added: %s", med.Name)
	if med.Dosage != "" {
		fmt.Printf(" (%s)", med.Dosage)
	}
	fmt.Println()
	return nil
}

type ListCmd struct{}

func (c *ListCmd) Run(ctx *cli.Context) error {
	meds, err := ctx.Store.GetMedicines(ctx.OwnerID)
	if err != nil {
		return fmt.Errorf("failed to get medicines: %w", err)
	}

	if len(meds) == 0 {
		fmt.Println("No medicines in your inventory.")
		return nil
	}

	fmt.Printf("%-36s %-25s %-15s\n", "ID", "Name", "Dosage")
	fmt.Println(strings.Repeat("-", 78))
	for _, med := range meds {
		dosage := med.Dosage
		if dosage == "" {
			dosage = "-"
		}
		fmt.Printf("%-36s %-25s %-15s\n", med.ID, med.Name, dosage)
	}
	return nil
}

type DeleteCmd struct {
	ID string `arg:"" help:"Medicine ID to delete."`
}

func (c *DeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.DeleteMedicine(c.ID); err != nil {
		return fmt.Errorf("failed to delete medicine: %w", err)
	}
	fmt.Printf("✓ Medicine deleted: %s\n", c.ID)
	return nil
}
