// Package state holds the supervisor's immutable-snapshot data model:
// Process, GUIState, State and the Mutator builder that produces new
// snapshots. Ported from original_source/src/{process,state,gui_state}.rs.
package state

import (
	"github.com/leo/proctmux/internal/config"
)

// ProcessStatus is one of the three lifecycle states a Process can be in.
type ProcessStatus int

const (
	Halted ProcessStatus = iota
	Running
	Halting
)

func (s ProcessStatus) String() string {
	switch s {
	case Running:
		return "running"
	case Halting:
		return "halting"
	default:
		return "halted"
	}
}

// Process is one catalog entry, coupled to at most one tmux pane and at
// most one OS pid.
//
// Invariants (spec.md §3):
//  1. Pane != nil iff tmux currently owns a pane created for this process.
//  2. PID != nil implies Status is Running or Halting; PID == nil implies
//     Status is Halted.
//  3. Status == Halted implies halt delivers no signal.
//  4. No two processes share the same Pane value at the same time.
type Process struct {
	ID     int
	Label  string
	Status ProcessStatus
	Pane   *string
	PID    *int
	Config config.ProcessConfig
}

// NewProcess creates a Halted process with no pane or pid, matching
// process.rs's Process::new.
func NewProcess(id int, label string, cfg config.ProcessConfig) Process {
	return Process{
		ID:     id,
		Label:  label,
		Status: Halted,
		Config: cfg,
	}
}

// Command returns the shell command line to run for this process.
func (p Process) Command() string { return p.Config.Command() }

// clone returns a copy safe to mutate independently: Pane and PID, when
// set, point at fresh copies of the receiver's values.
func (p Process) clone() Process {
	cp := p
	if p.Pane != nil {
		v := *p.Pane
		cp.Pane = &v
	}
	if p.PID != nil {
		v := *p.PID
		cp.PID = &v
	}
	return cp
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
