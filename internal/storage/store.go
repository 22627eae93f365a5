package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// StoreState is the lifecycle state of a Store.
type StoreState int

const (
	StateUnopened      StoreState = iota // Open has not run
	StateOpening                         // Connection being established
	StateUninitialized                   // Opened without migrations; introspection only
	StateMigrating                       // Migrations running
	StateReady                           // All migrations applied
	StateClosed                          // Connection released
)

func (s StoreState) String() string {
	switch s {
	case StateUnopened:
		return "unopened"
	case StateOpening:
		return "opening"
	case StateUninitialized:
		return "uninitialized"
	case StateMigrating:
		return "migrating"
	case StateReady:
		return "ready"
	case StateClosed:
		return "closed"
	}
	return fmt.Sprintf("StoreState(%d)", int(s))
}

// Options configures Open.
type Options struct {
	// Initialize bootstraps the version ledger and applies pending
	// migrations. When false the file is opened as-is.
	Initialize bool
	// Clock stamps rows and ledger entries. Defaults to SystemClock.
	Clock Clock
	// Migrations overrides the registry. Defaults to Migrations().
	Migrations []Migration
}

// DefaultOptions returns the options used by the CLI.
func DefaultOptions() Options {
	return Options{
		Initialize: true,
		Clock:      SystemClock{},
	}
}

var (
	_ ContainerStore = (*Store)(nil)
	_ NoteStore      = (*Store)(nil)
)

// Store owns the database connection and implements ContainerStore and
// NoteStore. Values it returns are copies.
type Store struct {
	path     string
	db       *sql.DB
	clock    Clock
	migrator *Migrator

	mu    sync.RWMutex
	state StoreState
}

// Open opens the database at path (or MemoryPath) and, when
// opts.Initialize is set, migrates it to the latest schema. A migration
// failure closes the connection and is returned.
func Open(ctx context.Context, path string, opts Options) (*Store, error) {
	s := &Store{
		path:  path,
		clock: opts.Clock,
		state: StateUnopened,
	}
	if s.clock == nil {
		s.clock = SystemClock{}
	}
	migrations := opts.Migrations
	if migrations == nil {
		migrations = Migrations()
	}

	s.state = StateOpening
	db, err := openDB(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db
	s.migrator = NewMigrator(db, s.clock, migrations)

	if !opts.Initialize {
		s.state = StateUninitialized
		return s, nil
	}

	if _, err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Migrate bootstraps the version ledger, applies pending migrations and
// returns how many ran. The store is Ready only if all of them succeed.
func (s *Store) Migrate(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateClosed {
		return 0, ErrClosed
	}

	s.state = StateMigrating
	n, err := s.migrator.Run(ctx)
	if err != nil {
		s.state = StateUninitialized
		return n, err
	}
	s.state = StateReady
	return n, nil
}

// State returns the lifecycle state.
func (s *Store) State() StoreState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Path returns the path the store was opened with.
func (s *Store) Path() string {
	return s.path
}

// Close releases the connection. Closing twice is a no-op.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateClosed {
		return nil
	}
	s.state = StateClosed
	return s.db.Close()
}

// Tables returns the names of the tables currently in the database.
func (s *Store) Tables(ctx context.Context) ([]string, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	return Tables(ctx, s.db)
}

// SchemaVersion returns the highest applied migration id. ok is false when
// no migration has been applied or the ledger does not exist.
func (s *Store) SchemaVersion(ctx context.Context) (version int, ok bool, err error) {
	if err := s.checkOpen(); err != nil {
		return 0, false, err
	}

	applied, err := appliedMigrations(ctx, s.db)
	if err != nil {
		return 0, false, err
	}
	if len(applied) == 0 {
		return 0, false, nil
	}
	return applied[len(applied)-1], true, nil
}

// Pending returns the migrations not yet recorded in the ledger.
func (s *Store) Pending(ctx context.Context) ([]Migration, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	return s.migrator.Pending(ctx)
}

func (s *Store) checkOpen() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state == StateClosed {
		return ErrClosed
	}
	return nil
}

func (s *Store) checkReady() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch s.state {
	case StateReady:
		return nil
	case StateClosed:
		return ErrClosed
	}
	return ErrNotReady
}
