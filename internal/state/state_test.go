package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leo/proctmux/internal/config"
)

func newTestState(t *testing.T) State {
	t.Helper()
	cfg := &config.Config{
		Layout: config.Layout{CategorySearchPrefix: "cat:"},
		Procs: map[string]config.ProcessConfig{
			"a": {Shell: "a", Categories: []string{"db"}},
			"b": {Shell: "b", Categories: []string{"web"}, MetaTags: []string{"slow"}},
			"c": {Shell: "c"},
		},
	}
	return New(cfg)
}

func TestFilteredProcessesByCategoryPrefix(t *testing.T) {
	st := newTestState(t)

	filter := "cat:db"
	st.GUI.FilterText = &filter
	got := st.FilteredProcesses()
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Label)

	none := "cat:none"
	st.GUI.FilterText = &none
	assert.Empty(t, st.FilteredProcesses())
}

func TestFilteredProcessesBySubstringOrMetaTag(t *testing.T) {
	st := newTestState(t)

	filter := "sl"
	st.GUI.FilterText = &filter
	got := st.FilteredProcesses()
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].Label)
}

func TestFilteredProcessesUnsetMatchesAll(t *testing.T) {
	st := newTestState(t)
	assert.Len(t, st.FilteredProcesses(), 3)
}

func TestAllHalted(t *testing.T) {
	st := newTestState(t)
	assert.True(t, st.AllHalted())

	st = On(st).SetProcessStatus(st.Processes[0].ID, Running).Commit()
	assert.False(t, st.AllHalted())
}

func TestCloneDoesNotAliasProcesses(t *testing.T) {
	st := newTestState(t)
	clone := st.Clone()
	clone.Processes[0].Status = Running
	assert.Equal(t, Halted, st.Processes[0].Status)
}
