package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/habitsync/internal/cli"
	"github.com/julianstephens/habitsync/internal/cli/medicines"
	"github.com/julianstephens/habitsync/internal/cli/profile"
	"github.com/julianstephens/habitsync/internal/cli/reminders"
	"github.com/julianstephens/habitsync/internal/cli/reports"
	"github.com/julianstephens/habitsync/internal/cli/settings"
	"github.com/julianstephens/habitsync/internal/cli/system"
	"github.com/julianstephens/habitsync/internal/cli/vitals"
	"github.com/julianstephens/habitsync/internal/cli/water"
	"github.com/julianstephens/habitsync/internal/constants"
	apperrors "github.com/julianstephens/habitsync/internal/errors"
	"github.com/julianstephens/habitsync/internal/keyring"
	"github.com/julianstephens/habitsync/internal/logger"
	"github.com/julianstephens/habitsync/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database file path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string. Use environment variables, .pgpass, or OS keyring instead." type:"string" default:"${config_path}"`
	Debug   bool   `help:"Enable debug logging."`

	Init    system.InitCmd    `cmd:"" help:"Initialize habitsync storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Check stored data for problems."`
	Tui     system.TuiCmd     `cmd:"" help:"Launch the interactive dashboard." default:"1"`
	Watch   system.WatchCmd   `cmd:"" help:"Run the reminder poller in the foreground."`
	Notify  system.NotifyCmd  `cmd:"" hidden:"" help:"Send a notification (used internally)."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string (password masked)."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability."`
	} `cmd:"" help:"Manage database credentials in the OS keyring."`
	Reminder struct {
		Add    reminders.AddCmd    `cmd:"" help:"Add a medicine or water reminder."`
		List   reminders.ListCmd   `cmd:"" help:"List active reminders."`
		Pause  reminders.PauseCmd  `cmd:"" help:"Pause a reminder without deleting it."`
		Delete reminders.DeleteCmd `cmd:"" help:"Delete a reminder."`
	} `cmd:"" help:"Manage reminders."`
	Water struct {
		Log    water.LogCmd    `cmd:"" help:"Log a glass of water." default:"1"`
		Remove water.RemoveCmd `cmd:"" help:"Remove the last glass logged today."`
		Reset  water.ResetCmd  `cmd:"" help:"Reset today's water log."`
		Status water.StatusCmd `cmd:"" help:"Show today's hydration progress."`
	} `cmd:"" help:"Track daily water intake."`
	Medicine struct {
		Add    medicines.AddCmd    `cmd:"" help:"Add a medicine to the cabinet."`
		List   medicines.ListCmd   `cmd:"" help:"List medicines."`
		Delete medicines.DeleteCmd `cmd:"" help:"Remove a medicine."`
	} `cmd:"" help:"Manage the medicine cabinet."`
	Profile struct {
		Show profile.ShowCmd `cmd:"" help:"Show the health profile." default:"1"`
		Edit profile.EditCmd `cmd:"" help:"Edit the health profile."`
	} `cmd:"" help:"Manage the health profile."`
	Report struct {
		Monthly reports.MonthlyCmd `cmd:"" help:"Show this month's health report." default:"1"`
		Suggest reports.SuggestCmd `cmd:"" help:"Suggest reminder adjustments from recent hydration history."`
	} `cmd:"" help:"Health reports and suggestions."`
	Pressure struct {
		Log  vitals.PressureLogCmd  `cmd:"" help:"Log a blood pressure reading."`
		List vitals.PressureListCmd `cmd:"" help:"List recent blood pressure readings."`
	} `cmd:"" help:"Track blood pressure."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("habitsync"),
		kong.Description("Personal health tracker: water, medicine reminders, streaks, and vitals"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_path": constants.DefaultConfigPath,
		},
	)

	store, err := buildStore(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:   store,
		OwnerID: constants.DefaultOwnerID,
		Debug:   CLI.Debug,
	}

	configDir := filepath.Dir(expandHome(constants.DefaultConfigPath))
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	// Load the store before running the command (init handles its own setup)
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			apperrors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		apperrors.Fatal(err)
	}
}

// buildStore selects the storage backend from the config value: an explicit
// PostgreSQL connection string wins, then a keyring-stored connection string
// when the config is still the default path, otherwise SQLite.
func buildStore(config string) (storage.Provider, error) {
	if isPostgresConfig(config) {
		return newPostgresStore(config)
	}

	if config == constants.DefaultConfigPath {
		connStr, err := keyring.GetConnectionString()
		switch {
		case err == nil:
			return newPostgresStore(connStr)
		case !errors.Is(err, keyring.ErrNotFound) && !errors.Is(err, keyring.ErrKeyringUnavailable):
			return nil, fmt.Errorf("failed to read keyring: %w", err)
		}
	}

	return storage.NewSQLiteStore(expandHome(config)), nil
}

func newPostgresStore(connStr string) (storage.Provider, error) {
	if storage.HasEmbeddedCredentials(connStr) {
		return nil, errors.New("PostgreSQL connection strings with embedded credentials are not allowed.\n" +
			"       Use one of these secure alternatives:\n" +
			"       1. OS keyring:    habitsync keyring set \"postgresql://user@host:5432/habitsync\"\n" +
			"       2. Environment:   export PGPASSWORD=...\n" +
			"       3. .pgpass file:  use a connection string without a password")
	}
	return storage.NewPostgresStore(connStr), nil
}

func isPostgresConfig(config string) bool {
	return strings.HasPrefix(config, "postgres://") ||
		strings.HasPrefix(config, "postgresql://") ||
		strings.Contains(config, "host=")
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return home + path[1:]
}
