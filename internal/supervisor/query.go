package supervisor

// CurrentProcessID returns the id of the currently selected process, or
// false if the catalog is empty.
func (s *Supervisor) CurrentProcessID() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.st.CurrentProcess()
	if !ok {
		return 0, false
	}
	return p.ID, true
}

// FilterEntering reports whether the GUI is currently accepting filter
// text, for the input loop's normal/filter sub-mode switch.
func (s *Supervisor) FilterEntering() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st.GUI.EnteringFilterText
}

// ToggleZoomCurrent flips the zoomed state of the currently selected
// process's pane, bound to the "switch_focus" action.
func (s *Supervisor) ToggleZoomCurrent() error {
	s.mu.Lock()
	p, ok := s.st.CurrentProcess()
	s.mu.Unlock()
	if !ok || p.Pane == nil {
		return nil
	}
	return s.mux.ToggleZoom(*p.Pane)
}
