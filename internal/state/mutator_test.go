package state

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leo/proctmux/internal/config"
)

func threeProcState() State {
	cfg := &config.Config{
		Layout: config.Layout{CategorySearchPrefix: "cat:"},
		Procs: map[string]config.ProcessConfig{
			"a": {Shell: "a"},
			"b": {Shell: "b"},
			"c": {Shell: "c"},
		},
	}
	return New(cfg)
}

func TestMoveSelectionWrapsBothEnds(t *testing.T) {
	st := threeProcState()
	// a(1) -> b(2) -> c(3) -> a(1)
	st = On(st).NextProcess().Commit()
	assert.Equal(t, 2, st.CurrentProcID)
	st = On(st).NextProcess().Commit()
	assert.Equal(t, 3, st.CurrentProcID)
	st = On(st).NextProcess().Commit()
	assert.Equal(t, 1, st.CurrentProcID)

	st = On(st).PreviousProcess().Commit()
	assert.Equal(t, 3, st.CurrentProcID)
}

func TestMoveSelectionHonorsFilteredView(t *testing.T) {
	st := threeProcState()
	filter := "b"
	st.GUI.FilterText = &filter
	st.CurrentProcID = 2

	st = On(st).NextProcess().Commit()
	assert.Equal(t, 2, st.CurrentProcID, "single-entry filtered view snaps to the sole entry")
}

func TestMoveSelectionNoopOnEmptyFilteredView(t *testing.T) {
	st := threeProcState()
	filter := "nope"
	st.GUI.FilterText = &filter

	before := st.CurrentProcID
	st = On(st).NextProcess().Commit()
	assert.Equal(t, before, st.CurrentProcID)
}

func TestSetProcessPaneAndPID(t *testing.T) {
	st := threeProcState()
	st = On(st).SetProcessPane(1, PaneString("%3")).SetProcessPID(1, PIDInt(42)).Commit()

	p, ok := st.GetProcess(1)
	assert.True(t, ok)
	assert.Equal(t, "%3", *p.Pane)
	assert.Equal(t, 42, *p.PID)

	st = On(st).SetProcessPane(1, nil).SetProcessPID(1, nil).Commit()
	p, _ = st.GetProcess(1)
	assert.Nil(t, p.Pane)
	assert.Nil(t, p.PID)
}

func TestFilterModeTransitions(t *testing.T) {
	st := threeProcState()
	st = On(st).StartEnteringFilter().Commit()
	assert.True(t, st.GUI.EnteringFilterText)

	st = On(st).StopEnteringFilter().Commit()
	assert.False(t, st.GUI.EnteringFilterText)
}

func TestAddAndClearMessages(t *testing.T) {
	st := threeProcState()
	st = On(st).AddMessage("one").AddMessage("two").Commit()
	assert.Equal(t, []string{"one", "two"}, st.GUI.Messages)

	st = On(st).ClearMessages().Commit()
	assert.Empty(t, st.GUI.Messages)
}
