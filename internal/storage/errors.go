package storage

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
)

var (
	// ErrNotFound is returned when a record is not found.
	// Every *NotFoundError matches it with errors.Is.
	ErrNotFound = errors.New("record not found")
	// ErrNameExists matches every *NameExistsError.
	ErrNameExists = errors.New("name already exists")
	// ErrNotReady is returned by data operations on a store that has not
	// finished its migrations.
	ErrNotReady = errors.New("store is not ready")
	// ErrClosed is returned by any operation after Close.
	ErrClosed = errors.New("store is closed")
	// ErrInvalidMigrations is returned when the migration registry is not a
	// strictly increasing list of positive ids.
	ErrInvalidMigrations = errors.New("invalid migration registry")
)

// Entity kinds reported by NotFoundError.
const (
	KindContainer = "Container"
	KindNote      = "Note"
)

// NotFoundError reports a lookup whose selectors matched no row, or more
// than one.
type NotFoundError struct {
	Kind string
	ID   *int64
	Name *string
}

func (e *NotFoundError) Error() string {
	var sel []string
	if e.ID != nil {
		sel = append(sel, fmt.Sprintf("id=%d", *e.ID))
	}
	if e.Name != nil {
		sel = append(sel, `name="`+*e.Name+`"`)
	}
	if len(sel) == 0 {
		return e.Kind + " does not exist."
	}
	return fmt.Sprintf("%s with (%s) does not exist.", e.Kind, strings.Join(sel, ","))
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// notFound builds a NotFoundError holding its own copies of the selector values.
func notFound(kind string, sel Selector) *NotFoundError {
	e := &NotFoundError{Kind: kind}
	if sel.ID != nil {
		id := *sel.ID
		e.ID = &id
	}
	if sel.Name != nil {
		name := *sel.Name
		e.Name = &name
	}
	return e
}

// NameExistsError is returned when a container name is already taken.
type NameExistsError struct {
	Name string
}

func (e *NameExistsError) Error() string {
	return fmt.Sprintf(`Cannot add container named "%s", it already exists.`, e.Name)
}

func (e *NameExistsError) Is(target error) bool {
	return target == ErrNameExists
}

// MigrationError wraps the failure of a single migration.
type MigrationError struct {
	ID   int
	Name string
	Err  error
}

func (e *MigrationError) Error() string {
	return fmt.Sprintf("migration %04d_%s failed: %v", e.ID, e.Name, e.Err)
}

func (e *MigrationError) Unwrap() error {
	return e.Err
}

// isConstraint reports whether err is a SQLite constraint violation with
// the given extended result code.
func isConstraint(err error, code sqlite3.ErrNoExtended) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint && sqliteErr.ExtendedCode == code
	}
	return false
}
