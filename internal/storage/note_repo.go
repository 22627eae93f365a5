package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_note_store.go -package=mocks selpkm/internal/storage NoteStore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mattn/go-sqlite3"
)

// NoteStore defines the interface for note storage operations.
type NoteStore interface {
	// AddNote inserts a note owned by the container picked by container and
	// returns its id. There is no default container: a zero selector
	// returns *NotFoundError.
	AddNote(ctx context.Context, name string, description *string, container Selector) (int64, error)
	// GetNote gets a note by id. Returns *NotFoundError if not found.
	GetNote(ctx context.Context, id int64) (Note, error)
	// GetNotes returns all notes, or only those of the selected container
	// when container is not zero, in id order.
	GetNotes(ctx context.Context, container Selector) ([]Note, error)
	// DeleteNote deletes a note by id.
	DeleteNote(ctx context.Context, id int64) error
}

const noteColumns = "note_id, name, description, container_id, created, modified"

// AddNote inserts a new note stamped with the current time.
func (s *Store) AddNote(ctx context.Context, name string, description *string, container Selector) (int64, error) {
	if err := s.checkReady(); err != nil {
		return 0, err
	}

	c, err := getContainer(ctx, s.db, container)
	if err != nil {
		return 0, err
	}

	var desc sql.NullString
	if description != nil {
		desc = sql.NullString{String: *description, Valid: true}
	}

	now := Timestamp(s.clock.Now())
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO notes (name, description, container_id, created, modified) VALUES (?, ?, ?, ?, ?)",
		name, desc, c.ID, now, now,
	)
	if err != nil {
		if isConstraint(err, sqlite3.ErrConstraintForeignKey) {
			return 0, notFound(KindContainer, ByID(c.ID))
		}
		return 0, fmt.Errorf("failed to insert note: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get note id: %w", err)
	}
	return id, nil
}

// GetNote gets a note by id.
func (s *Store) GetNote(ctx context.Context, id int64) (Note, error) {
	if err := s.checkReady(); err != nil {
		return Note{}, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+noteColumns+" FROM notes WHERE note_id = ? LIMIT 2", id,
	)
	if err != nil {
		return Note{}, fmt.Errorf("failed to query note: %w", err)
	}
	defer rows.Close()

	notes, err := scanNotes(rows)
	if err != nil {
		return Note{}, err
	}
	if len(notes) != 1 {
		return Note{}, notFound(KindNote, ByID(id))
	}
	return notes[0], nil
}

// GetNotes returns notes in insertion order, optionally restricted to one
// container. Returns an empty slice if there are none.
func (s *Store) GetNotes(ctx context.Context, container Selector) ([]Note, error) {
	if err := s.checkReady(); err != nil {
		return nil, err
	}

	query := "SELECT " + noteColumns + " FROM notes ORDER BY note_id"
	var args []any
	if !container.IsZero() {
		c, err := getContainer(ctx, s.db, container)
		if err != nil {
			return nil, err
		}
		query = "SELECT " + noteColumns + " FROM notes WHERE container_id = ? ORDER BY note_id"
		args = append(args, c.ID)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query notes: %w", err)
	}
	defer rows.Close()

	return scanNotes(rows)
}

// DeleteNote deletes a note by id.
func (s *Store) DeleteNote(ctx context.Context, id int64) error {
	if err := s.checkReady(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, "DELETE FROM notes WHERE note_id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	if n == 0 {
		return notFound(KindNote, ByID(id))
	}
	return nil
}

func scanNotes(rows *sql.Rows) ([]Note, error) {
	notes := []Note{}
	for rows.Next() {
		var n Note
		var desc sql.NullString
		if err := rows.Scan(&n.ID, &n.Name, &desc, &n.ContainerID, &n.Created, &n.Modified); err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		if desc.Valid {
			d := desc.String
			n.Description = &d
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}
	return notes, nil
}
