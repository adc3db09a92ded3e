package scriptloc

import (
	"embed"
)

//go:embed data/sql/migrations/*.sql
var migrationsFS embed.FS

// GetMigrationsFS returns the embedded migration files for the locale table.
func GetMigrationsFS() embed.FS {
	return migrationsFS
}
