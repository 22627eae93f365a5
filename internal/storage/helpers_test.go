package storage

import (
	"context"
	"database/sql"
	"testing"
	"time"
)

var testTime = time.Date(2000, 3, 14, 16, 21, 32, 0, time.UTC)

const testStamp = "2000-03-14T16:21:32+00:00"

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time {
	return c.t
}

// newTestStore opens an initialized in-memory store with a fixed clock.
func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), MemoryPath, Options{Initialize: true, Clock: fixedClock{testTime}})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

// openTestDB opens a bare in-memory database with no tables.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := openDB(context.Background(), MemoryPath)
	if err != nil {
		t.Fatalf("openDB() error = %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

func countRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM " + table).Scan(&count); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return count
}

func mustAddContainer(t *testing.T, s *Store, name string, parent Selector) int64 {
	t.Helper()
	id, err := s.AddContainer(context.Background(), name, parent)
	if err != nil {
		t.Fatalf("AddContainer(%q) error = %v", name, err)
	}
	return id
}

func mustAddNote(t *testing.T, s *Store, name string, container Selector) int64 {
	t.Helper()
	id, err := s.AddNote(context.Background(), name, nil, container)
	if err != nil {
		t.Fatalf("AddNote(%q) error = %v", name, err)
	}
	return id
}

func ptr[T any](v T) *T {
	return &v
}
