package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_container_store.go -package=mocks selpkm/internal/storage ContainerStore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
)

// ContainerStore defines the interface for container storage operations.
type ContainerStore interface {
	// AddContainer inserts a container under the parent picked by parent
	// (top level when parent is zero) and returns its id.
	// Returns *NameExistsError if the name is taken and *NotFoundError if
	// the parent does not exist.
	AddContainer(ctx context.Context, name string, parent Selector) (int64, error)
	// GetContainer returns the single container matching sel.
	// Returns *NotFoundError if none, or more than one, matches.
	GetContainer(ctx context.Context, sel Selector) (Container, error)
	// GetContainers returns all containers in id order.
	GetContainers(ctx context.Context) ([]Container, error)
	// DeleteContainer deletes the container matching sel together with its
	// descendants and their notes.
	DeleteContainer(ctx context.Context, sel Selector) error
}

const containerColumns = "container_id, name, parent_id, created, modified"

// AddContainer inserts a new container stamped with the current time.
func (s *Store) AddContainer(ctx context.Context, name string, parent Selector) (int64, error) {
	if err := s.checkReady(); err != nil {
		return 0, err
	}

	var parentID sql.NullInt64
	if !parent.IsZero() {
		p, err := getContainer(ctx, s.db, parent)
		if err != nil {
			return 0, err
		}
		parentID = sql.NullInt64{Int64: p.ID, Valid: true}
	}

	now := Timestamp(s.clock.Now())
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO containers (name, parent_id, created, modified) VALUES (?, ?, ?, ?)",
		name, parentID, now, now,
	)
	if err != nil {
		switch {
		case isConstraint(err, sqlite3.ErrConstraintUnique):
			return 0, &NameExistsError{Name: name}
		case isConstraint(err, sqlite3.ErrConstraintForeignKey):
			return 0, notFound(KindContainer, ByID(parentID.Int64))
		}
		return 0, fmt.Errorf("failed to insert container: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get container id: %w", err)
	}
	return id, nil
}

// GetContainer returns the container matching every set field of sel.
func (s *Store) GetContainer(ctx context.Context, sel Selector) (Container, error) {
	if err := s.checkReady(); err != nil {
		return Container{}, err
	}
	return getContainer(ctx, s.db, sel)
}

// GetContainers returns all containers ordered by id.
// Returns an empty slice if there are none.
func (s *Store) GetContainers(ctx context.Context) ([]Container, error) {
	if err := s.checkReady(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT "+containerColumns+" FROM containers ORDER BY container_id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query containers: %w", err)
	}
	defer rows.Close()

	return scanContainers(rows)
}

// DeleteContainer deletes the matching container. SQLite cascades the
// delete to child containers and to every note they own.
func (s *Store) DeleteContainer(ctx context.Context, sel Selector) error {
	if err := s.checkReady(); err != nil {
		return err
	}

	c, err := getContainer(ctx, s.db, sel)
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM containers WHERE container_id = ?", c.ID); err != nil {
		return fmt.Errorf("failed to delete container: %w", err)
	}
	return nil
}

// getContainer resolves sel to exactly one container. The zero selector
// never matches.
func getContainer(ctx context.Context, q Queryer, sel Selector) (Container, error) {
	if sel.IsZero() {
		return Container{}, notFound(KindContainer, sel)
	}

	var where []string
	var args []any
	if sel.ID != nil {
		where = append(where, "container_id = ?")
		args = append(args, *sel.ID)
	}
	if sel.Name != nil {
		where = append(where, "name = ?")
		args = append(args, *sel.Name)
	}

	// LIMIT 2 is enough to tell "exactly one" from "more than one".
	rows, err := q.QueryContext(ctx,
		"SELECT "+containerColumns+" FROM containers WHERE "+strings.Join(where, " AND ")+" LIMIT 2",
		args...,
	)
	if err != nil {
		return Container{}, fmt.Errorf("failed to query container: %w", err)
	}
	defer rows.Close()

	containers, err := scanContainers(rows)
	if err != nil {
		return Container{}, err
	}
	if len(containers) != 1 {
		return Container{}, notFound(KindContainer, sel)
	}
	return containers[0], nil
}

func scanContainers(rows *sql.Rows) ([]Container, error) {
	containers := []Container{}
	for rows.Next() {
		var c Container
		var parentID sql.NullInt64
		if err := rows.Scan(&c.ID, &c.Name, &parentID, &c.Created, &c.Modified); err != nil {
			return nil, fmt.Errorf("failed to scan container: %w", err)
		}
		if parentID.Valid {
			id := parentID.Int64
			c.ParentID = &id
		}
		containers = append(containers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate containers: %w", err)
	}
	return containers, nil
}
