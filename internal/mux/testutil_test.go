package mux

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeScript writes an executable shell script standing in for the tmux
// binary in tests that need to control its argv-level behavior without a
// real tmux server.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "fake-tmux")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o755))
	return path
}
