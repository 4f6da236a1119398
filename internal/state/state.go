package state

import (
	"sort"
	"strings"

	"github.com/leo/proctmux/internal/config"
)

// State is the single coherent, immutable snapshot of the supervisor: the
// configuration, the ordered process catalog, the current selection, the
// GUI state, and the exiting flag. Ported from original_source/src/state.rs.
type State struct {
	Config          *config.Config
	CurrentProcID   int
	Processes       []Process
	GUI             GUIState
	Exiting         bool
}

// New builds the initial State from a parsed config, assigning dense ids
// (1-based) and optionally sorting labels alphabetically, matching
// state.rs's State::new.
func New(cfg *config.Config) State {
	names := make([]string, 0, len(cfg.Procs))
	for name := range cfg.Procs {
		names = append(names, name)
	}
	if cfg.Layout.SortProcessListAlpha == nil || *cfg.Layout.SortProcessListAlpha {
		sort.Strings(names)
	}

	procs := make([]Process, 0, len(names))
	for i, name := range names {
		procs = append(procs, NewProcess(i+1, name, cfg.Procs[name]))
	}

	var first int
	if len(procs) > 0 {
		first = procs[0].ID
	}

	return State{
		Config:        cfg,
		CurrentProcID: first,
		Processes:     procs,
		GUI:           GUIState{},
	}
}

// Clone returns a deep-enough copy for the Mutator to build on top of
// without aliasing the receiver's slices.
func (s State) Clone() State {
	cp := s
	cp.Processes = make([]Process, len(s.Processes))
	for i, p := range s.Processes {
		cp.Processes[i] = p.clone()
	}
	cp.GUI = s.GUI.clone()
	return cp
}

// GetProcess returns the process with the given id, or false if none.
func (s State) GetProcess(id int) (Process, bool) {
	for _, p := range s.Processes {
		if p.ID == id {
			return p, true
		}
	}
	return Process{}, false
}

// CurrentProcess returns the currently selected process, or false if the
// catalog is empty.
func (s State) CurrentProcess() (Process, bool) {
	return s.GetProcess(s.CurrentProcID)
}

// GetProcessByPID finds the process currently holding the given pid.
func (s State) GetProcessByPID(pid int) (Process, bool) {
	for _, p := range s.Processes {
		if p.PID != nil && *p.PID == pid {
			return p, true
		}
	}
	return Process{}, false
}

// FilteredProcesses returns the processes matching the current filter text,
// or all processes when unset. Ported from state.rs's get_filtered_processes
// / §4.6's filter semantics: a filter beginning with the configured category
// prefix matches on exact lowercased category equality; otherwise it matches
// substrings of the label or any meta tag, case-insensitively.
func (s State) FilteredProcesses() []Process {
	if s.GUI.FilterText == nil {
		return s.Processes
	}
	filter := *s.GUI.FilterText
	prefix := s.Config.Layout.CategorySearchPrefix

	var match func(Process) bool
	if strings.HasPrefix(filter, prefix) {
		want := strings.ToLower(strings.TrimPrefix(filter, prefix))
		match = func(p Process) bool {
			for _, c := range p.Config.Categories {
				if strings.ToLower(c) == want {
					return true
				}
			}
			return false
		}
	} else {
		want := strings.ToLower(filter)
		match = func(p Process) bool {
			if strings.Contains(strings.ToLower(p.Label), want) {
				return true
			}
			for _, m := range p.Config.MetaTags {
				if strings.Contains(strings.ToLower(m), want) {
					return true
				}
			}
			return false
		}
	}

	out := make([]Process, 0, len(s.Processes))
	for _, p := range s.Processes {
		if match(p) {
			out = append(out, p)
		}
	}
	return out
}

// AllHalted reports whether every process in the catalog is Halted — the
// other half of the exit condition in spec.md §4.7.
func (s State) AllHalted() bool {
	for _, p := range s.Processes {
		if p.Status != Halted {
			return false
		}
	}
	return true
}
