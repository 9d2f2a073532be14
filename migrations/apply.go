package migrations

import (
	"context"
	"database/sql"
	"fmt"
)

const createTracking = `CREATE TABLE IF NOT EXISTS schema_migrations (
    name       VARCHAR(255) PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Pending returns the embedded migrations not yet recorded in schema_migrations.
// A missing tracking table means nothing has been applied.
func Pending(ctx context.Context, db *sql.DB) ([]Migration, error) {
	all, err := All()
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}
	applied := map[string]bool{}
	rows, err := db.QueryContext(ctx, `SELECT name FROM schema_migrations`)
	if err == nil {
		defer rows.Close()
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				return nil, fmt.Errorf("failed to scan applied migration: %w", err)
			}
			applied[name] = true
		}
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to read applied migrations: %w", err)
		}
	}
	var out []Migration
	for _, m := range all {
		if !applied[m.Name] {
			out = append(out, m)
		}
	}
	return out, nil
}

// Apply runs every pending migration, each in its own transaction, and
// returns the names it applied.
func Apply(ctx context.Context, db *sql.DB) ([]string, error) {
	if _, err := db.ExecContext(ctx, createTracking); err != nil {
		return nil, fmt.Errorf("failed to create schema_migrations: %w", err)
	}
	pending, err := Pending(ctx, db)
	if err != nil {
		return nil, err
	}
	var done []string
	for _, m := range pending {
		if err := applyOne(ctx, db, m); err != nil {
			return done, err
		}
		done = append(done, m.Name)
	}
	return done, nil
}

func applyOne(ctx context.Context, db *sql.DB, m Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin %s: %w", m.Name, err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range Statements(m.SQL) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply %s statement %d: %w", m.Name, i+1, err)
		}
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, m.Name); err != nil {
		return fmt.Errorf("failed to record %s: %w", m.Name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit %s: %w", m.Name, err)
	}
	return nil
}
