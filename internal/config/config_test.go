package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "proctmux.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
log_file: /tmp/proctmux.log
procs:
  web:
    shell: "python -m http.server"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, DefaultDetachedSessionName, cfg.General.DetachedSessionName)
	assert.Equal(t, DefaultProcessListWidth, cfg.Layout.ProcessListWidth)
	assert.Equal(t, DefaultCategorySearchPrefix, cfg.Layout.CategorySearchPrefix)
	assert.Equal(t, DefaultPointerChar, cfg.Style.PointerChar)
	assert.True(t, *cfg.Layout.SortProcessListAlpha)
	assert.Equal(t, []string{"q"}, cfg.Keybinding.Quit)
	assert.Equal(t, DefaultStopSignal, cfg.Procs["web"].Stop)
}

func TestLoadRejectsMissingCommand(t *testing.T) {
	path := writeConfig(t, `
log_file: /tmp/proctmux.log
procs:
  web: {}
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsAmbiguousCommand(t *testing.T) {
	path := writeConfig(t, `
log_file: /tmp/proctmux.log
procs:
  web:
    shell: "echo hi"
    cmd: ["echo", "hi"]
`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestProcessConfigCommandPrefersShell(t *testing.T) {
	p := ProcessConfig{Shell: "echo hi", Cmd: []string{"echo", "bye"}}
	assert.Equal(t, "echo hi", p.Command())

	p = ProcessConfig{Cmd: []string{"echo", "bye"}}
	assert.Equal(t, "'echo' 'bye'", p.Command())
}

func TestStopSignalMapping(t *testing.T) {
	sig, err := signalFromString("SIGTERM")
	require.NoError(t, err)
	assert.Equal(t, "terminated", sig.String())

	_, err = signalFromString("SIGWHAT")
	assert.Error(t, err)
}
