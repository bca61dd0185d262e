package system

import (
	"fmt"

	"github.com/julianstephens/habitsync/internal/cli"
)

type MigrateCmd struct{}

// Run re-initializes the store, which applies any pending migrations against
// the existing database for either backend.
func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Init(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	fmt.Println("Database schema is up to date.")
	return nil
}
