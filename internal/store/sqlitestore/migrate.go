package sqlitestore

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
)

// Migration is one versioned schema step.
type Migration struct {
	Version int
	Name    string
	Up      string
}

// LoadMigrations reads NNN_name.sql files from fsys and returns them ordered
// by version. Versions must be positive and strictly increasing.
func LoadMigrations(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	var out []Migration
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".sql") {
			continue
		}
		prefix, _, ok := strings.Cut(name, "_")
		if !ok {
			return nil, fmt.Errorf("migration %s: missing version prefix", name)
		}
		version, err := strconv.Atoi(prefix)
		if err != nil || version <= 0 {
			return nil, fmt.Errorf("migration %s: invalid version %q", name, prefix)
		}
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		out = append(out, Migration{
			Version: version,
			Name:    name,
			Up:      ExtractUpMigration(string(content)),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	for i := 1; i < len(out); i++ {
		if out[i].Version == out[i-1].Version {
			return nil, fmt.Errorf("migrations %s and %s share version %d", out[i-1].Name, out[i].Name, out[i].Version)
		}
	}
	return out, nil
}

// ApplyMigrations brings the database from its stored schema version up to the
// last migration's version. Each step above the stored version runs exactly
// once, in order, in its own transaction, and records its version on commit.
// It returns the version found and the version reached.
func ApplyMigrations(ctx context.Context, db *sql.DB, migrations []Migration) (from, to int, err error) {
	from, err = SchemaVersion(ctx, db)
	if err != nil {
		return 0, 0, err
	}
	to = from

	if n := len(migrations); n > 0 && from > migrations[n-1].Version {
		return from, from, fmt.Errorf("schema version %d is newer than supported version %d", from, migrations[n-1].Version)
	}

	for _, m := range migrations {
		if m.Version <= to {
			continue
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return from, to, fmt.Errorf("begin migration %s: %w", m.Name, err)
		}
		if strings.TrimSpace(m.Up) != "" {
			if _, err := tx.ExecContext(ctx, m.Up); err != nil {
				_ = tx.Rollback()
				return from, to, fmt.Errorf("exec migration %s: %w", m.Name, err)
			}
		}
		// PRAGMA does not accept bound parameters.
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", m.Version)); err != nil {
			_ = tx.Rollback()
			return from, to, fmt.Errorf("record migration %s: %w", m.Name, err)
		}
		if err := tx.Commit(); err != nil {
			return from, to, fmt.Errorf("commit migration %s: %w", m.Name, err)
		}
		to = m.Version
	}

	return from, to, nil
}

// SchemaVersion returns the schema version stored in the database header.
func SchemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	return version, nil
}

// ExtractUpMigration returns the SQL in the -- +migrate Up section.
func ExtractUpMigration(content string) string {
	upIdx := strings.Index(content, "-- +migrate Up")
	if upIdx == -1 {
		return content
	}
	downIdx := strings.Index(content, "-- +migrate Down")
	if downIdx == -1 {
		return content[upIdx+len("-- +migrate Up"):]
	}
	return content[upIdx+len("-- +migrate Up") : downIdx]
}
