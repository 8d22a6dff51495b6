package cli

import (
	"bytes"
	"path/filepath"
	"testing"
)

// runCLI executes the root command with the given args and returns the
// combined output.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// testDB returns a database path inside a per-test temp directory.
func testDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "thermoscreen.db")
}
