package storage

import (
	"context"
	"database/sql"
	"fmt"
)

// Migration is one versioned schema transformation. Up runs inside the
// transaction that also records the migration in the version ledger, and
// receives the ids applied before it. Statements should no-op when their
// target already exists so that a retried run converges.
type Migration struct {
	ID   int
	Name string
	Up   func(ctx context.Context, tx *sql.Tx, applied []int) error
}

// Migrations returns the registry in application order.
func Migrations() []Migration {
	return []Migration{
		{ID: 1, Name: "initial_schema", Up: migrateInitialSchema},
	}
}

func validateMigrations(migrations []Migration) error {
	prev := 0
	for _, m := range migrations {
		if m.ID <= prev {
			return fmt.Errorf("%w: id %d after %d", ErrInvalidMigrations, m.ID, prev)
		}
		if m.Up == nil {
			return fmt.Errorf("%w: migration %d has no Up", ErrInvalidMigrations, m.ID)
		}
		prev = m.ID
	}
	return nil
}
