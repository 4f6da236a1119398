package supervisor

import "github.com/leo/proctmux/internal/state"

// EnterFilterMode switches the GUI into filter-entry sub-mode with an empty
// filter, per the InputLoop's "filter" action (spec.md §4.4/§6).
func (s *Supervisor) EnterFilterMode() {
	s.withLock(func() {
		empty := ""
		s.st = state.On(s.st).
			StartEnteringFilter().
			SetFilterText(&empty).
			Commit()
	})
}

// AppendFilterRune appends r to the in-progress filter text and reselects
// if the current selection fell out of the new filtered view.
func (s *Supervisor) AppendFilterRune(r rune) {
	s.withLock(func() {
		text := ""
		if s.st.GUI.FilterText != nil {
			text = *s.st.GUI.FilterText
		}
		text += string(r)
		s.st = state.On(s.st).SetFilterText(&text).Commit()
		s.reselectIfFiltered()
	})
}

// Backspace removes the last rune of the in-progress filter text.
func (s *Supervisor) Backspace() {
	s.withLock(func() {
		if s.st.GUI.FilterText == nil {
			return
		}
		text := *s.st.GUI.FilterText
		runes := []rune(text)
		if len(runes) > 0 {
			runes = runes[:len(runes)-1]
		}
		text = string(runes)
		s.st = state.On(s.st).SetFilterText(&text).Commit()
		s.reselectIfFiltered()
	})
}

// SubmitFilter leaves filter-entry sub-mode while keeping the filter text
// active, per the "filter_submit" action.
func (s *Supervisor) SubmitFilter() {
	s.withLock(func() {
		s.st = state.On(s.st).StopEnteringFilter().Commit()
	})
}

// CancelFilter leaves filter-entry sub-mode and clears the filter text,
// bound to the generic "esc" key literal while entering a filter.
func (s *Supervisor) CancelFilter() {
	s.withLock(func() {
		s.st = state.On(s.st).StopEnteringFilter().SetFilterText(nil).Commit()
		s.reselectIfFiltered()
	})
}

// reselectIfFiltered snaps the selection to the first entry of the filtered
// view when the current selection no longer belongs to it, keeping
// spec.md §3's "current_proc_id in filtered view" invariant intact across
// filter text edits. Callers must hold s.mu.
func (s *Supervisor) reselectIfFiltered() {
	for _, p := range s.st.FilteredProcesses() {
		if p.ID == s.st.CurrentProcID {
			return
		}
	}
	s.st = state.On(s.st).SelectFirstProcess().Commit()
}
