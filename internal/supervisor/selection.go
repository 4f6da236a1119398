package supervisor

import "github.com/leo/proctmux/internal/state"

// NextProcess moves the selection forward in the filtered view, breaking
// the previously-selected running pane out to the detached session and
// joining the newly-selected running pane into the picker window.
func (s *Supervisor) NextProcess() {
	s.withLock(func() { s.moveSelection(state.Mutator.NextProcess) })
}

// PreviousProcess moves the selection backward in the filtered view.
func (s *Supervisor) PreviousProcess() {
	s.withLock(func() { s.moveSelection(state.Mutator.PreviousProcess) })
}

// moveSelection applies move to the current state's selection, then swaps
// which running process's pane occupies the picker window, per spec.md
// §4.4's "selection change" row.
func (s *Supervisor) moveSelection(move func(state.Mutator) state.Mutator) {
	prevID := s.st.CurrentProcID
	s.st = move(state.On(s.st)).Commit()
	newID := s.st.CurrentProcID
	if newID == prevID {
		return
	}
	s.swapForeground(prevID, newID)
}

// swapForeground breaks prevID's pane (if running and joined) out to the
// detached session, then joins newID's pane (if running) into the picker
// window.
func (s *Supervisor) swapForeground(prevID, newID int) {
	if prev, ok := s.st.GetProcess(prevID); ok && prev.Status != state.Halted && prev.Pane != nil {
		if err := s.mux.Break(*prev.Pane, prev.Label); err != nil {
			s.logError("break pane on selection change", err)
		}
	}
	if next, ok := s.st.GetProcess(newID); ok && next.Status != state.Halted && next.Pane != nil {
		if err := s.mux.Join(*next.Pane); err != nil {
			s.logError("join pane on selection change", err)
		}
	}
}
