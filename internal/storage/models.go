package storage

// Container is a named node of the hierarchy. Names are unique.
type Container struct {
	ID       int64  `json:"container_id" yaml:"container_id"`
	Name     string `json:"name" yaml:"name"`
	ParentID *int64 `json:"parent_id" yaml:"parent_id"` // nil for top-level containers
	Created  string `json:"created" yaml:"created"`
	Modified string `json:"modified" yaml:"modified"`
}

// Note is a leaf record owned by exactly one container.
type Note struct {
	ID          int64   `json:"note_id" yaml:"note_id"`
	Name        string  `json:"name" yaml:"name"` // not unique
	Description *string `json:"description" yaml:"description"`
	ContainerID int64   `json:"container_id" yaml:"container_id"`
	Created     string  `json:"created" yaml:"created"`
	Modified    string  `json:"modified" yaml:"modified"`
}

// Selector picks a row by id, by name, or by both. When both are set a row
// must match both. The zero Selector matches nothing.
type Selector struct {
	ID   *int64
	Name *string
}

// ByID selects by identity.
func ByID(id int64) Selector {
	return Selector{ID: &id}
}

// ByName selects by name.
func ByName(name string) Selector {
	return Selector{Name: &name}
}

// ByIDAndName selects the row that has both the id and the name.
func ByIDAndName(id int64, name string) Selector {
	return Selector{ID: &id, Name: &name}
}

// IsZero reports whether neither selector is set.
func (s Selector) IsZero() bool {
	return s.ID == nil && s.Name == nil
}
