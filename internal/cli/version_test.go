package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionCommand(t *testing.T) {
	out := mustExecute(t, testDB(t), "version")
	assert.Contains(t, out, "selpkm ")
	assert.Contains(t, out, "(schema 1)")

	out = mustExecute(t, testDB(t), "version", "--format", "json")
	assert.Contains(t, out, `"schema_version": 1`)
	assert.Contains(t, out, `"version": "`+Version.String()+`"`)
}
