// Package migrate applies the embedded SQL migrations to a libsql
// database. Versions are tracked in a schema_migrations table; a
// migration that fails mid-way leaves the table marked dirty and
// requires manual intervention.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"lectern/migrations"
)

// Migration is one versioned schema change.
type Migration struct {
	Version int
	Name    string
	UpSQL   string
	DownSQL string
}

var filePattern = regexp.MustCompile(`^(\d+)_(.+)\.up\.sql$`)

// Load reads the embedded migration files, sorted by version.
func Load() ([]Migration, error) {
	var out []Migration

	entries, err := fs.ReadDir(migrations.FS, ".")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		m := filePattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		version, _ := strconv.Atoi(m[1])
		name := m[2]

		upSQL, err := fs.ReadFile(migrations.FS, e.Name())
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", e.Name(), err)
		}
		// The down file is optional.
		downSQL, _ := fs.ReadFile(migrations.FS, fmt.Sprintf("%03d_%s.down.sql", version, name))

		out = append(out, Migration{
			Version: version,
			Name:    name,
			UpSQL:   string(upSQL),
			DownSQL: string(downSQL),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// Version returns the current schema version and whether the last run
// left the database dirty.
func Version(ctx context.Context, db *sql.DB) (int, bool, error) {
	if err := ensureTable(ctx, db); err != nil {
		return 0, false, err
	}
	var version, dirty int
	err := db.QueryRowContext(ctx,
		`SELECT version, dirty FROM schema_migrations ORDER BY version DESC LIMIT 1`,
	).Scan(&version, &dirty)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return version, dirty == 1, nil
}

// To migrates the schema up or down to target. Target -1 means "latest".
func To(ctx context.Context, db *sql.DB, target int) error {
	all, err := Load()
	if err != nil {
		return fmt.Errorf("loading migrations: %w", err)
	}

	current, dirty, err := Version(ctx, db)
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if dirty {
		return fmt.Errorf("schema is dirty at version %d, fix it manually", current)
	}

	if target < 0 {
		if len(all) == 0 {
			return nil
		}
		target = all[len(all)-1].Version
	}

	switch {
	case target > current:
		for _, m := range all {
			if m.Version <= current || m.Version > target {
				continue
			}
			if err := apply(ctx, db, m, true); err != nil {
				return err
			}
		}
	case target < current:
		for i := len(all) - 1; i >= 0; i-- {
			m := all[i]
			if m.Version > current || m.Version <= target {
				continue
			}
			if m.DownSQL == "" {
				return fmt.Errorf("no down migration for version %d", m.Version)
			}
			if err := apply(ctx, db, m, false); err != nil {
				return err
			}
		}
	}
	return nil
}

// RunAll migrates to the latest version.
func RunAll(ctx context.Context, db *sql.DB) error {
	return To(ctx, db, -1)
}

func apply(ctx context.Context, db *sql.DB, m Migration, up bool) error {
	direction := "up"
	script := m.UpSQL
	toVersion := m.Version
	if !up {
		direction = "down"
		script = m.DownSQL
		toVersion = m.Version - 1
	}
	slog.Info("applying migration", "version", m.Version, "name", m.Name, "direction", direction)

	if err := setVersion(ctx, db, m.Version, true); err != nil {
		return fmt.Errorf("marking schema dirty: %w", err)
	}

	// libsql executes one statement per call.
	for _, stmt := range strings.Split(script, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d %s: %w", m.Version, direction, err)
		}
	}

	if err := setVersion(ctx, db, toVersion, false); err != nil {
		return fmt.Errorf("recording schema version: %w", err)
	}
	return nil
}

func ensureTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			dirty INTEGER NOT NULL DEFAULT 0
		)
	`)
	return err
}

func setVersion(ctx context.Context, db *sql.DB, version int, dirty bool) error {
	if _, err := db.ExecContext(ctx, `DELETE FROM schema_migrations`); err != nil {
		return err
	}
	if version <= 0 {
		return nil
	}
	dirtyInt := 0
	if dirty {
		dirtyInt = 1
	}
	_, err := db.ExecContext(ctx, `INSERT INTO schema_migrations (version, dirty) VALUES (?, ?)`, version, dirtyInt)
	return err
}
