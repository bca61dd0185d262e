// Package migrations embeds the schema migrations shipped with the binary,
// one set per storage backend.
package migrations

import (
	"embed"
	"io/fs"
)

//go:embed sqlite/*.sql postgres/*.sql
var files embed.FS

// SQLite returns the migration set for the sqlite backend.
func SQLite() fs.FS {
	return mustSub("sqlite")
}

// Postgres returns the migration set for the postgres backend.
func Postgres() fs.FS {
	return mustSub("postgres")
}

func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(files, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
