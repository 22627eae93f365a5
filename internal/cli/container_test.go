package cli

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedContainers(t *testing.T, db string) {
	t.Helper()
	mustExecute(t, db, "container", "add", "Work")
	mustExecute(t, db, "container", "add", "Projects", "--parent", "Work")
	mustExecute(t, db, "container", "add", "Home")
}

func TestContainerAdd(t *testing.T) {
	db := testDB(t)

	out := mustExecute(t, db, "container", "add", "Work")
	assert.Equal(t, "Added container \"Work\" (id=1).\n", out)

	out = mustExecute(t, db, "container", "add", "Projects", "--parent-id", "1", "--format", "json")
	assert.JSONEq(t, `{
		"container_id": 2,
		"name": "Projects",
		"parent_id": 1,
		"created": "2000-03-14T16:21:32+00:00",
		"modified": "2000-03-14T16:21:32+00:00"
	}`, out)
}

func TestContainerAdd_Errors(t *testing.T) {
	db := testDB(t)
	seedContainers(t, db)

	tests := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{
			name:    "duplicate name",
			args:    []string{"container", "add", "Projects"},
			wantMsg: `Cannot add container named "Projects", it already exists.`,
		},
		{
			name:    "missing parent",
			args:    []string{"container", "add", "Nested", "--parent-id", "999"},
			wantMsg: "Container with (id=999) does not exist.",
		},
		{
			name:    "inconsistent parent",
			args:    []string{"container", "add", "Nested", "--parent-id", "1", "--parent", "Home"},
			wantMsg: `Container with (id=1,name="Home") does not exist.`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, db, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}

	out := mustExecute(t, db, "container", "list", "--format", "json")
	assert.NotContains(t, out, "Nested")
}

func TestContainerList_Golden(t *testing.T) {
	db := testDB(t)
	seedContainers(t, db)

	g := goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))

	g.Assert(t, "container_list", []byte(mustExecute(t, db, "container", "list")))
	g.Assert(t, "container_tree", []byte(mustExecute(t, db, "container", "list", "--tree")))
}

func TestContainerList_Empty(t *testing.T) {
	db := testDB(t)

	out := mustExecute(t, db, "container", "list", "--format", "json")
	assert.Equal(t, "[]\n", out)
}

func TestContainerShow(t *testing.T) {
	db := testDB(t)
	seedContainers(t, db)

	out := mustExecute(t, db, "container", "show", "--name", "Projects", "--format", "yaml")
	assert.Contains(t, out, "container_id: 2\n")
	assert.Contains(t, out, "parent_id: 1\n")

	byID := mustExecute(t, db, "container", "show", "--id", "2", "--format", "yaml")
	assert.Equal(t, out, byID)

	_, err := execute(t, db, "container", "show")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "Container does not exist.")
}

func TestContainerRemove_Cascades(t *testing.T) {
	db := testDB(t)
	seedContainers(t, db)
	mustExecute(t, db, "note", "add", "plan", "--container", "Projects")
	mustExecute(t, db, "note", "add", "chores", "--container", "Home")

	out := mustExecute(t, db, "container", "rm", "--name", "Work")
	assert.Equal(t, "Removed container.\n", out)

	out = mustExecute(t, db, "container", "list", "--tree")
	assert.Equal(t, "Home (3)\n", out)

	out = mustExecute(t, db, "note", "list", "--format", "json")
	assert.Contains(t, out, `"name": "chores"`)
	assert.NotContains(t, out, `"name": "plan"`)

	_, err := execute(t, db, "container", "rm", "--name", "Work")
	assert.Equal(t, ExitFailure, GetExitCode(err))
}
