package storage

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func TestStore_AddContainer(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if id := mustAddContainer(t, s, "thing 1", Selector{}); id != 1 {
		t.Errorf("AddContainer() = %d, want 1", id)
	}
	if id := mustAddContainer(t, s, "thing 2", Selector{}); id != 2 {
		t.Errorf("AddContainer() = %d, want 2", id)
	}
	if id := mustAddContainer(t, s, "thing 3", ByID(1)); id != 3 {
		t.Errorf("AddContainer() = %d, want 3", id)
	}
	if id := mustAddContainer(t, s, "thing 4", ByName("thing 1")); id != 4 {
		t.Errorf("AddContainer() = %d, want 4", id)
	}

	tests := []struct {
		name    string
		cname   string
		parent  Selector
		wantErr error
		wantMsg string
	}{
		{
			name:    "duplicate name",
			cname:   "thing 2",
			wantErr: ErrNameExists,
			wantMsg: `Cannot add container named "thing 2", it already exists.`,
		},
		{
			name:    "duplicate name with valid parent",
			cname:   "thing 2",
			parent:  ByID(1),
			wantErr: ErrNameExists,
			wantMsg: `Cannot add container named "thing 2", it already exists.`,
		},
		{
			name:    "missing parent",
			cname:   "thing 999",
			parent:  ByID(999),
			wantErr: ErrNotFound,
			wantMsg: "Container with (id=999) does not exist.",
		},
		{
			name:    "inconsistent parent selectors",
			cname:   "thing 5",
			parent:  ByIDAndName(1, "thing 2"),
			wantErr: ErrNotFound,
			wantMsg: `Container with (id=1,name="thing 2") does not exist.`,
		},
		{
			name:    "missing parent by name",
			cname:   "thing 6",
			parent:  ByName("nope"),
			wantErr: ErrNotFound,
			wantMsg: `Container with (name="nope") does not exist.`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := countRows(t, s.db, "containers")

			_, err := s.AddContainer(ctx, tt.cname, tt.parent)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("AddContainer() error = %v, want %v", err, tt.wantErr)
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("AddContainer() error = %q, want %q", err.Error(), tt.wantMsg)
			}

			if after := countRows(t, s.db, "containers"); after != before {
				t.Errorf("containers rows = %d after failed insert, want %d", after, before)
			}
		})
	}

	rows, err := s.db.Query("SELECT container_id, name, parent_id FROM containers ORDER BY container_id")
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	defer rows.Close()

	type row struct {
		id       int64
		name     string
		parentID *int64
	}
	var got []row
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.id, &r.name, &r.parentID); err != nil {
			t.Fatalf("Scan() error = %v", err)
		}
		got = append(got, r)
	}
	want := []row{
		{1, "thing 1", nil},
		{2, "thing 2", nil},
		{3, "thing 3", ptr(int64(1))},
		{4, "thing 4", ptr(int64(1))},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("containers = %+v, want %+v", got, want)
	}
}

func TestStore_AddContainer_Timestamps(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id := mustAddContainer(t, s, "stamped", Selector{})
	c, err := s.GetContainer(ctx, ByID(id))
	if err != nil {
		t.Fatalf("GetContainer() error = %v", err)
	}
	if c.Created != testStamp || c.Modified != testStamp {
		t.Errorf("created, modified = %q, %q, want both %q", c.Created, c.Modified, testStamp)
	}
}

func TestStore_GetContainer(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, stmt := range []string{
		"INSERT INTO containers VALUES(1, 'thing 1', NULL, 'now', 'now')",
		"INSERT INTO containers VALUES(2, 'thing 2', NULL, 'now', 'now')",
		"INSERT INTO containers VALUES(3, 'thing 3', 1, 'now', 'now')",
	} {
		if _, err := s.db.Exec(stmt); err != nil {
			t.Fatalf("Exec() error = %v", err)
		}
	}

	thing1 := Container{ID: 1, Name: "thing 1", Created: "now", Modified: "now"}
	thing2 := Container{ID: 2, Name: "thing 2", Created: "now", Modified: "now"}
	thing3 := Container{ID: 3, Name: "thing 3", ParentID: ptr(int64(1)), Created: "now", Modified: "now"}

	tests := []struct {
		name    string
		sel     Selector
		want    Container
		wantErr string
	}{
		{name: "id 1", sel: ByID(1), want: thing1},
		{name: "name 1", sel: ByName("thing 1"), want: thing1},
		{name: "id and name 1", sel: ByIDAndName(1, "thing 1"), want: thing1},
		{name: "id 2", sel: ByID(2), want: thing2},
		{name: "name 2", sel: ByName("thing 2"), want: thing2},
		{name: "id and name 2", sel: ByIDAndName(2, "thing 2"), want: thing2},
		{name: "id 3", sel: ByID(3), want: thing3},
		{name: "name 3", sel: ByName("thing 3"), want: thing3},
		{name: "id and name 3", sel: ByIDAndName(3, "thing 3"), want: thing3},
		{name: "missing id", sel: ByID(99), wantErr: "Container with (id=99) does not exist."},
		{name: "missing name", sel: ByName("not a container"), wantErr: `Container with (name="not a container") does not exist.`},
		{name: "mismatched pair", sel: ByIDAndName(1, "thing 2"), wantErr: `Container with (id=1,name="thing 2") does not exist.`},
		{name: "no selector", sel: Selector{}, wantErr: "Container does not exist."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.GetContainer(ctx, tt.sel)

			if tt.wantErr != "" {
				if !errors.Is(err, ErrNotFound) {
					t.Fatalf("GetContainer() error = %v, want ErrNotFound", err)
				}
				if err.Error() != tt.wantErr {
					t.Errorf("GetContainer() error = %q, want %q", err.Error(), tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("GetContainer() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GetContainer() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestStore_GetContainer_ReturnsCopies(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustAddContainer(t, s, "parent", Selector{})
	mustAddContainer(t, s, "child", ByID(1))

	c, err := s.GetContainer(ctx, ByName("child"))
	if err != nil {
		t.Fatalf("GetContainer() error = %v", err)
	}
	*c.ParentID = 42
	c.Name = "changed"

	again, err := s.GetContainer(ctx, ByName("child"))
	if err != nil {
		t.Fatalf("GetContainer() error = %v", err)
	}
	if again.Name != "child" || *again.ParentID != 1 {
		t.Errorf("stored container changed through a snapshot: %+v", again)
	}
}

func TestStore_GetContainers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	containers, err := s.GetContainers(ctx)
	if err != nil {
		t.Fatalf("GetContainers() error = %v", err)
	}
	if containers == nil || len(containers) != 0 {
		t.Errorf("GetContainers() = %#v, want empty slice", containers)
	}

	for _, stmt := range []string{
		"INSERT INTO containers VALUES(1, 'thing 1', NULL, 'now', 'now')",
		"INSERT INTO containers VALUES(2, 'thing 2', NULL, 'now', 'now')",
		"INSERT INTO containers VALUES(3, 'thing 3', 1, 'now', 'now')",
	} {
		if _, err := s.db.Exec(stmt); err != nil {
			t.Fatalf("Exec() error = %v", err)
		}
	}

	containers, err = s.GetContainers(ctx)
	if err != nil {
		t.Fatalf("GetContainers() error = %v", err)
	}
	want := []Container{
		{ID: 1, Name: "thing 1", Created: "now", Modified: "now"},
		{ID: 2, Name: "thing 2", Created: "now", Modified: "now"},
		{ID: 3, Name: "thing 3", ParentID: ptr(int64(1)), Created: "now", Modified: "now"},
	}
	if !reflect.DeepEqual(containers, want) {
		t.Errorf("GetContainers() = %+v, want %+v", containers, want)
	}
}

func TestStore_GetContainer_IDAndNameAgree(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustAddContainer(t, s, "a", Selector{})
	mustAddContainer(t, s, "b", ByName("a"))
	mustAddContainer(t, s, "c", ByName("b"))
	mustAddContainer(t, s, "d", Selector{})

	containers, err := s.GetContainers(ctx)
	if err != nil {
		t.Fatalf("GetContainers() error = %v", err)
	}
	for _, c := range containers {
		byID, err := s.GetContainer(ctx, ByID(c.ID))
		if err != nil {
			t.Fatalf("GetContainer(id=%d) error = %v", c.ID, err)
		}
		byName, err := s.GetContainer(ctx, ByName(c.Name))
		if err != nil {
			t.Fatalf("GetContainer(name=%q) error = %v", c.Name, err)
		}
		if !reflect.DeepEqual(byID, byName) || !reflect.DeepEqual(byID, c) {
			t.Errorf("snapshots differ: by id %+v, by name %+v, listed %+v", byID, byName, c)
		}
	}
}

func TestStore_AddContainer_DuplicateChildScenario(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	mustAddContainer(t, s, "A", Selector{})
	mustAddContainer(t, s, "B", ByName("A"))

	_, err := s.AddContainer(ctx, "B", Selector{})
	var exists *NameExistsError
	if !errors.As(err, &exists) {
		t.Fatalf("AddContainer() error = %v, want *NameExistsError", err)
	}
	if exists.Name != "B" {
		t.Errorf("NameExistsError.Name = %q, want B", exists.Name)
	}

	containers, err := s.GetContainers(ctx)
	if err != nil {
		t.Fatalf("GetContainers() error = %v", err)
	}
	if len(containers) != 2 || containers[0].ID != 1 || containers[1].ID != 2 {
		t.Errorf("GetContainers() = %+v, want ids 1 and 2", containers)
	}
}

func TestStore_DeleteContainer_Cascades(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	a := mustAddContainer(t, s, "a", Selector{})
	b := mustAddContainer(t, s, "b", ByID(a))
	c := mustAddContainer(t, s, "c", ByID(b))
	d := mustAddContainer(t, s, "d", Selector{})
	for _, id := range []int64{a, b, c, d} {
		mustAddNote(t, s, "note", ByID(id))
	}

	if err := s.DeleteContainer(ctx, ByName("a")); err != nil {
		t.Fatalf("DeleteContainer() error = %v", err)
	}

	containers, err := s.GetContainers(ctx)
	if err != nil {
		t.Fatalf("GetContainers() error = %v", err)
	}
	if len(containers) != 1 || containers[0].ID != d {
		t.Errorf("GetContainers() = %+v, want only container %d", containers, d)
	}

	notes, err := s.GetNotes(ctx, Selector{})
	if err != nil {
		t.Fatalf("GetNotes() error = %v", err)
	}
	if len(notes) != 1 || notes[0].ContainerID != d {
		t.Errorf("GetNotes() = %+v, want only the note of container %d", notes, d)
	}

	var orphans int
	err = s.db.QueryRow(
		"SELECT COUNT(*) FROM notes WHERE container_id NOT IN (SELECT container_id FROM containers)",
	).Scan(&orphans)
	if err != nil {
		t.Fatalf("failed to count orphans: %v", err)
	}
	if orphans != 0 {
		t.Errorf("%d orphaned notes after cascade, want 0", orphans)
	}
}

func TestStore_DeleteContainer_NotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.DeleteContainer(context.Background(), ByID(5))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteContainer() error = %v, want ErrNotFound", err)
	}
}
