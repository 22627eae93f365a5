package storage

import (
	"context"
	"database/sql"
)

// migrateInitialSchema creates the containers and notes tables.
func migrateInitialSchema(ctx context.Context, tx *sql.Tx, _ []int) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS containers (
			container_id INTEGER PRIMARY KEY,
			name TEXT UNIQUE NOT NULL,
			parent_id INTEGER NULL REFERENCES containers(container_id) ON DELETE CASCADE,
			created TEXT NOT NULL,
			modified TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS notes (
			note_id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NULL,
			container_id INTEGER NOT NULL REFERENCES containers(container_id) ON DELETE CASCADE,
			created TEXT NOT NULL,
			modified TEXT NOT NULL
		);`,
	}

	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}

	return nil
}
