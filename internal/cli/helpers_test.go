package cli

import (
	"bytes"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"
)

func init() {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type fixedClock struct{}

func (fixedClock) Now() time.Time {
	return time.Date(2000, 3, 14, 16, 21, 32, 0, time.UTC)
}

// testDB returns a database path in a fresh temp directory.
func testDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "data", "selpkm.db")
}

// execute runs the root command with fresh options against dbPath and
// returns everything written to stdout and stderr.
func execute(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()

	buf := &bytes.Buffer{}
	cmd := NewRootCommand(&RootOptions{
		DBPath: dbPath,
		Inbox:  "Inbox",
		Clock:  fixedClock{},
	})
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

// mustExecute is execute that fails the test on error.
func mustExecute(t *testing.T, dbPath string, args ...string) string {
	t.Helper()
	out, err := execute(t, dbPath, args...)
	if err != nil {
		t.Fatalf("execute(%v) error = %v\noutput: %s", args, err, out)
	}
	return out
}
