package storage

import (
	"context"
	"database/sql"
	"fmt"
	"slices"

	"selpkm/internal/contextutil"
)

const ledgerSchema = `CREATE TABLE IF NOT EXISTS versions (
	version_id INTEGER PRIMARY KEY,
	timestamp TEXT
);`

// Migrator applies pending migrations and records them in the versions
// table, one transaction per migration.
type Migrator struct {
	db         *sql.DB
	clock      Clock
	migrations []Migration
}

// NewMigrator creates a new Migrator. A nil clock means SystemClock.
func NewMigrator(db *sql.DB, clock Clock, migrations []Migration) *Migrator {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Migrator{
		db:         db,
		clock:      clock,
		migrations: migrations,
	}
}

// EnsureLedger creates the empty versions table if it is missing.
func (m *Migrator) EnsureLedger(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, ledgerSchema); err != nil {
		return fmt.Errorf("failed to create version ledger: %w", err)
	}
	return nil
}

// Applied returns the applied migration ids in ascending order.
// It returns an empty slice when the ledger does not exist yet.
func (m *Migrator) Applied(ctx context.Context) ([]int, error) {
	return appliedMigrations(ctx, m.db)
}

// Pending returns the registered migrations that have not been applied.
func (m *Migrator) Pending(ctx context.Context) ([]Migration, error) {
	applied, err := m.Applied(ctx)
	if err != nil {
		return nil, err
	}

	var pending []Migration
	for _, mig := range m.migrations {
		if !slices.Contains(applied, mig.ID) {
			pending = append(pending, mig)
		}
	}
	return pending, nil
}

// Run applies every pending migration in ascending id order and returns how
// many were applied. The first failure stops the run; migrations committed
// before it stay applied.
func (m *Migrator) Run(ctx context.Context) (int, error) {
	if err := validateMigrations(m.migrations); err != nil {
		return 0, err
	}
	if err := m.EnsureLedger(ctx); err != nil {
		return 0, err
	}

	logger := contextutil.LoggerFromContext(ctx)
	count := 0
	for _, mig := range m.migrations {
		// Re-read on every step so each migration sees the ones applied
		// earlier in this run.
		applied, err := m.Applied(ctx)
		if err != nil {
			return count, err
		}
		if slices.Contains(applied, mig.ID) {
			continue
		}

		logger.DebugContext(ctx, "applying migration", "id", mig.ID, "name", mig.Name)
		if err := m.apply(ctx, mig, applied); err != nil {
			return count, &MigrationError{ID: mig.ID, Name: mig.Name, Err: err}
		}
		logger.InfoContext(ctx, "applied migration", "id", mig.ID, "name", mig.Name)
		count++
	}

	return count, nil
}

func (m *Migrator) apply(ctx context.Context, mig Migration, applied []int) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := mig.Up(ctx, tx, slices.Clone(applied)); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO versions (version_id, timestamp) VALUES (?, ?)",
		mig.ID, Timestamp(m.clock.Now()),
	)
	if err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func appliedMigrations(ctx context.Context, q Queryer) ([]int, error) {
	exists, err := tableExists(ctx, q, "versions")
	if err != nil {
		return nil, err
	}
	if !exists {
		return []int{}, nil
	}

	rows, err := q.QueryContext(ctx, "SELECT version_id FROM versions ORDER BY version_id")
	if err != nil {
		return nil, fmt.Errorf("failed to query versions: %w", err)
	}
	defer rows.Close()

	applied := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan version: %w", err)
		}
		applied = append(applied, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to query versions: %w", err)
	}

	return applied, nil
}
