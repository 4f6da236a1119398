package supervisor

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leo/proctmux/internal/config"
	"github.com/leo/proctmux/internal/state"
)

// fakeMux is a hand-written double for muxContext, letting the end-to-end
// scenarios in spec.md §8 run without a real tmux binary.
type fakeMux struct {
	mu          sync.Mutex
	nextPane    int
	pids        map[string]int
	killedPanes []string
}

func newFakeMux() *fakeMux {
	return &fakeMux{pids: map[string]int{}}
}

func (f *fakeMux) PickerPane() string { return "%0" }
func (f *fakeMux) Break(pane, label string) error { return nil }
func (f *fakeMux) Join(pane string) error          { return nil }

func (f *fakeMux) CreatePane(command, cwd string, env []string) (string, error) {
	return f.newPane(), nil
}

func (f *fakeMux) CreateDetachedPane(label, command, cwd string, env []string) (string, error) {
	return f.newPane(), nil
}

func (f *fakeMux) newPane() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextPane++
	pane := "%" + string(rune('0'+f.nextPane))
	f.pids[pane] = 1000 + f.nextPane
	return pane
}

func (f *fakeMux) KillPaneIfPossible(pane string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.killedPanes = append(f.killedPanes, pane)
	delete(f.pids, pane)
	return nil
}

func (f *fakeMux) GetPID(pane string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	pid, ok := f.pids[pane]
	if !ok {
		return 0, errors.New("no such pane")
	}
	return pid, nil
}

func (f *fakeMux) SelectPane(pane string) error  { return nil }
func (f *fakeMux) ToggleZoom(pane string) error   { return nil }
func (f *fakeMux) Cleanup() error                 { return nil }

// fakeKiller records Kill calls instead of sending real signals.
type fakeKiller struct {
	mu      sync.Mutex
	killed  []int
	failPID map[int]error
}

func (f *fakeKiller) Kill(pid int, sig int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failPID[pid]; ok {
		return err
	}
	f.killed = append(f.killed, pid)
	return nil
}

func newTestSupervisor(t *testing.T, labels ...string) (*Supervisor, *fakeMux) {
	t.Helper()
	procs := map[string]config.ProcessConfig{}
	for _, l := range labels {
		procs[l] = config.ProcessConfig{Shell: "echo hi", Stop: "SIGTERM"}
	}
	cfg := &config.Config{
		Layout: config.Layout{CategorySearchPrefix: "cat:"},
		Procs:  procs,
	}
	st := state.New(cfg)
	mux := newFakeMux()
	sup := New(st, mux, make(chan int, 8), nil)
	sup.kill = &fakeKiller{}
	return sup, mux
}

func TestStartStopSingleProcess(t *testing.T) {
	sup, _ := newTestSupervisor(t, "echo")

	id := sup.Snapshot().Processes[0].ID
	require.NoError(t, sup.Start(id))

	p, _ := sup.Snapshot().GetProcess(id)
	assert.Equal(t, state.Running, p.Status)
	require.NotNil(t, p.PID)

	sup.OnDeath(*p.PID)
	p, _ = sup.Snapshot().GetProcess(id)
	assert.Equal(t, state.Halted, p.Status)
	assert.Nil(t, p.PID)
}

func TestExitDrainsBothProcesses(t *testing.T) {
	sup, _ := newTestSupervisor(t, "a", "b")
	ids := []int{}
	for _, p := range sup.Snapshot().Processes {
		require.NoError(t, sup.Start(p.ID))
		ids = append(ids, p.ID)
	}

	sup.Quit()
	assert.True(t, sup.Snapshot().Exiting)
	for _, id := range ids {
		p, _ := sup.Snapshot().GetProcess(id)
		assert.Equal(t, state.Halting, p.Status)
	}

	select {
	case <-sup.Done():
		t.Fatal("should not be done until both deaths arrive")
	default:
	}

	for _, id := range ids {
		p, _ := sup.Snapshot().GetProcess(id)
		sup.OnDeath(*p.PID)
	}

	select {
	case <-sup.Done():
	default:
		t.Fatal("expected Done() to be closed once all processes halted")
	}
}

func TestRestartOfPreviouslyDeadPaneHardKillsStalePane(t *testing.T) {
	sup, mux := newTestSupervisor(t, "echo")
	id := sup.Snapshot().Processes[0].ID

	require.NoError(t, sup.Start(id))
	p, _ := sup.Snapshot().GetProcess(id)
	stalePane := *p.Pane

	// Simulate remain-on-exit: the pane survives after the child exits, so
	// the process becomes Halted but its Pane handle is left set.
	sup.withLock(func() {
		s := sup.st
		sup.st = stateSetHalted(s, id)
	})

	require.NoError(t, sup.Start(id))

	assert.Contains(t, mux.killedPanes, stalePane)
	p, _ = sup.Snapshot().GetProcess(id)
	assert.Equal(t, state.Running, p.Status)
	assert.NotEqual(t, stalePane, *p.Pane)
}

// stateSetHalted marks id Halted without clearing its Pane, mirroring a
// remain-on-exit pane that hasn't been cleaned up yet.
func stateSetHalted(s state.State, id int) state.State {
	for i, p := range s.Processes {
		if p.ID == id {
			s.Processes[i].Status = state.Halted
			s.Processes[i].PID = nil
		}
	}
	return s
}
