package draw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leo/proctmux/internal/config"
	"github.com/leo/proctmux/internal/state"
)

func buildTestState(procs int) state.State {
	cfg := &config.Config{
		Layout: config.Layout{CategorySearchPrefix: "cat:", ProcessListWidth: 31},
	}
	names := map[string]config.ProcessConfig{}
	for i := 0; i < procs; i++ {
		names[string(rune('a'+i))] = config.ProcessConfig{Shell: "x"}
	}
	cfg.Procs = names
	return state.New(cfg)
}

func TestBuildRejectsBelowMinHeight(t *testing.T) {
	st := buildTestState(3)
	f := Builder{}.Build(st, 80, MinHeight-1)
	assert.True(t, f.TooSmall)
}

func TestBuildAllocatesFilterLineFirst(t *testing.T) {
	st := buildTestState(1)
	filter := "x"
	st.GUI.FilterText = &filter

	f := Builder{}.Build(st, 80, 10)
	require.NotNil(t, f.FilterLine)
	assert.Equal(t, "/x", *f.FilterLine)
}

func TestPartitionNaturalSizeWhenBothFit(t *testing.T) {
	list, msg := partition(10, 3, 2)
	assert.Equal(t, 3, list)
	assert.Equal(t, 2, msg)
}

func TestPartitionSplits75_25WhenOverflowing(t *testing.T) {
	list, msg := partition(100, 1000, 1000)
	assert.Equal(t, 75, list)
	assert.Equal(t, 25, msg)
}

func TestBuildProcessLinesWindowsAroundSelection(t *testing.T) {
	st := buildTestState(10)
	st.CurrentProcID = 8
	lines, selIdx := buildProcessLines(st, st.FilteredProcesses(), 3)
	assert.Len(t, lines, 3)
	assert.GreaterOrEqual(t, selIdx, 0)
}

func TestBottomAlignKeepsLastMessages(t *testing.T) {
	msgs := []string{"a", "b", "c", "d"}
	assert.Equal(t, []string{"c", "d"}, bottomAlign(msgs, 2))
	assert.Nil(t, bottomAlign(msgs, 0))
	assert.Equal(t, msgs, bottomAlign(msgs, 10))
}

func TestBreakAtNaturalBreakPoints(t *testing.T) {
	var acc []string
	for _, next := range []string{"ab", "cd", "efghij"} {
		acc = BreakAtNaturalBreakPoints(5, "|", acc, next)
	}
	assert.Equal(t, []string{"ab|cd", "efghij"}, acc)
}
