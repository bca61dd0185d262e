package migration

import (
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestReadMigrationFiles(t *testing.T) {
	migFS := fstest.MapFS{
		"002_add_index.sql": {Data: []byte("CREATE INDEX idx_a ON a (x);")},
		"001_init.sql":      {Data: []byte("CREATE TABLE a (x INTEGER);")},
		"README.md":         {Data: []byte("not a migration")},
	}

	runner := NewRunner(openTestDB(t), migFS, DriverSQLite)
	migrations, err := runner.ReadMigrationFiles()
	if err != nil {
		t.Fatalf("ReadMigrationFiles failed: %v", err)
	}

	if len(migrations) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migrations))
	}
	if migrations[0].Version != 1 || migrations[0].Name != "init" {
		t.Errorf("first migration = %d/%s, want 1/init", migrations[0].Version, migrations[0].Name)
	}
	if migrations[1].Version != 2 {
		t.Errorf("second migration version = %d, want 2", migrations[1].Version)
	}
}

func TestReadMigrationFilesRejectsBadNames(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{"no version prefix", "init.sql"},
		{"non-numeric version", "abc_init.sql"},
		{"zero version", "000_init.sql"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			migFS := fstest.MapFS{
				tt.filename: {Data: []byte("SELECT 1;")},
			}
			runner := NewRunner(openTestDB(t), migFS, DriverSQLite)
			if _, err := runner.ReadMigrationFiles(); err == nil {
				t.Errorf("expected error for filename %s", tt.filename)
			}
		})
	}
}

func TestReadMigrationFilesRejectsDuplicateVersions(t *testing.T) {
	migFS := fstest.MapFS{
		"001_first.sql":  {Data: []byte("SELECT 1;")},
		"001_second.sql": {Data: []byte("SELECT 2;")},
	}
	runner := NewRunner(openTestDB(t), migFS, DriverSQLite)
	if _, err := runner.ReadMigrationFiles(); err == nil {
		t.Error("expected error for duplicate versions")
	}
}

func TestApplyMigrations(t *testing.T) {
	db := openTestDB(t)
	migFS := fstest.MapFS{
		"001_init.sql":     {Data: []byte("CREATE TABLE users (id TEXT PRIMARY KEY);")},
		"002_add_name.sql": {Data: []byte("ALTER TABLE users ADD COLUMN name TEXT;")},
	}
	runner := NewRunner(db, migFS, DriverSQLite)

	applied, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatal(err)
	}
	if version != 2 {
		t.Errorf("version = %d, want 2", version)
	}

	// Re-running is a no-op.
	applied, err = runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("second ApplyMigrations failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("re-run applied = %d, want 0", applied)
	}

	// The migrated schema is actually usable.
	if _, err := db.Exec("INSERT INTO users (id, name) VALUES ('u1', 'test')"); err != nil {
		t.Errorf("migrated schema rejected insert: %v", err)
	}
}

func TestApplyMigrationsRollsBackOnFailure(t *testing.T) {
	db := openTestDB(t)
	migFS := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE a (x INTEGER);")},
		"002_bad.sql":  {Data: []byte("THIS IS NOT SQL;")},
	}
	runner := NewRunner(db, migFS, DriverSQLite)

	applied, err := runner.ApplyMigrations(nil)
	if err == nil {
		t.Fatal("expected failure on malformed migration")
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1 (the good migration before the bad one)", applied)
	}

	// Version reflects the last successful migration only.
	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatal(err)
	}
	if version != 1 {
		t.Errorf("version = %d, want 1", version)
	}
}

func TestApplyMigrationsRejectsNewerDatabase(t *testing.T) {
	db := openTestDB(t)
	migFS := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE a (x INTEGER);")},
	}
	runner := NewRunner(db, migFS, DriverSQLite)

	if err := runner.SetVersion(5); err != nil {
		t.Fatal(err)
	}

	_, err := runner.ApplyMigrations(nil)
	if err == nil {
		t.Fatal("expected error for database newer than the binary")
	}
	if !strings.Contains(err.Error(), "newer than supported") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestValidateVersion(t *testing.T) {
	db := openTestDB(t)
	migFS := fstest.MapFS{
		"001_init.sql": {Data: []byte("CREATE TABLE a (x INTEGER);")},
	}
	runner := NewRunner(db, migFS, DriverSQLite)

	if _, err := runner.ApplyMigrations(nil); err != nil {
		t.Fatal(err)
	}
	if err := runner.ValidateVersion(); err != nil {
		t.Errorf("ValidateVersion on a current database: %v", err)
	}

	if err := runner.SetVersion(99); err != nil {
		t.Fatal(err)
	}
	if err := runner.ValidateVersion(); err == nil {
		t.Error("expected ValidateVersion to reject a newer database")
	}
}
