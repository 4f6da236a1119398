package state

// Mutator is a builder that produces a new State from an old one via named
// transformations, so every state change is a single atomic replacement
// under the Supervisor's lock (spec.md §9's "Repeated snapshot cloning ->
// Mutator builder" design note). Ported from original_source/src/state.rs's
// StateMutation and gui_state.rs's GUIStateMutation, merged into one type
// since this port keeps GUIState embedded directly in State.
type Mutator struct {
	s State
}

// On starts a mutation chain from an existing State, cloning it so the
// original snapshot is left untouched.
func On(s State) Mutator {
	return Mutator{s: s.Clone()}
}

// Commit finalizes the chain and returns the new State.
func (m Mutator) Commit() State {
	return m.s
}

func (m Mutator) selectFirstProcess() Mutator {
	filtered := m.s.FilteredProcesses()
	if len(filtered) > 0 {
		m.s.CurrentProcID = filtered[0].ID
	}
	return m
}

// moveSelection rotates the selection by direction (+1 or -1) over the
// filtered id sequence, wrapping at both ends; no-op on an empty filtered
// view, snaps to the sole entry on a single-entry view. Ported from
// state.rs's move_process_selection.
func (m Mutator) moveSelection(direction int) Mutator {
	filtered := m.s.FilteredProcesses()
	if len(filtered) == 0 {
		return m
	}
	if len(filtered) < 2 {
		return m.selectFirstProcess()
	}

	ids := make([]int, len(filtered))
	for i, p := range filtered {
		ids[i] = p.ID
	}

	currentIdx := -1
	for i, id := range ids {
		if id == m.s.CurrentProcID {
			currentIdx = i
			break
		}
	}
	if currentIdx < 0 {
		return m.selectFirstProcess()
	}

	n := len(ids)
	newIdx := ((currentIdx+direction)%n + n) % n
	m.s.CurrentProcID = ids[newIdx]
	return m
}

// NextProcess moves the selection forward in the filtered view.
func (m Mutator) NextProcess() Mutator { return m.moveSelection(1) }

// PreviousProcess moves the selection backward in the filtered view.
func (m Mutator) PreviousProcess() Mutator { return m.moveSelection(-1) }

// SelectFirstProcess snaps the selection to the first process in the
// filtered view (used after the filter text changes).
func (m Mutator) SelectFirstProcess() Mutator { return m.selectFirstProcess() }

func (m Mutator) mapProcess(id int, f func(Process) Process) Mutator {
	for i, p := range m.s.Processes {
		if p.ID == id {
			m.s.Processes[i] = f(p)
		}
	}
	return m
}

// SetProcessStatus sets the status of the process with the given id.
func (m Mutator) SetProcessStatus(id int, status ProcessStatus) Mutator {
	return m.mapProcess(id, func(p Process) Process {
		p.Status = status
		return p
	})
}

// SetProcessPane sets (or clears, when pane == nil) the pane handle of the
// process with the given id.
func (m Mutator) SetProcessPane(id int, pane *string) Mutator {
	return m.mapProcess(id, func(p Process) Process {
		p.Pane = pane
		return p
	})
}

// SetProcessPID sets (or clears, when pid == nil) the OS pid of the process
// with the given id.
func (m Mutator) SetProcessPID(id int, pid *int) Mutator {
	return m.mapProcess(id, func(p Process) Process {
		p.PID = pid
		return p
	})
}

// SetFilterText sets or clears (nil) the active filter text.
func (m Mutator) SetFilterText(text *string) Mutator {
	m.s.GUI.FilterText = text
	return m
}

// StartEnteringFilter marks the GUI as currently accepting filter input.
func (m Mutator) StartEnteringFilter() Mutator {
	m.s.GUI.EnteringFilterText = true
	return m
}

// StopEnteringFilter marks the GUI as no longer accepting filter input.
func (m Mutator) StopEnteringFilter() Mutator {
	m.s.GUI.EnteringFilterText = false
	return m
}

// AddMessage appends a user-visible message (spec.md §7's error policy).
func (m Mutator) AddMessage(msg string) Mutator {
	m.s.GUI.Messages = append(m.s.GUI.Messages, msg)
	return m
}

// ClearMessages empties the message list.
func (m Mutator) ClearMessages() Mutator {
	m.s.GUI.Messages = nil
	return m
}

// SetExiting marks the state as exiting (spec.md §4.7).
func (m Mutator) SetExiting() Mutator {
	m.s.Exiting = true
	return m
}

// PaneString and PIDInt are small helpers for callers that need to produce
// the *string/*int values SetProcessPane/SetProcessPID expect.
func PaneString(s string) *string { return strPtr(s) }
func PIDInt(i int) *int           { return intPtr(i) }
