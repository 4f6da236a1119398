package state

// GUIState holds everything the drawer needs besides the process list:
// pending messages, the active filter, and whether the user is currently
// typing one. Ported from original_source/src/gui_state.rs.
type GUIState struct {
	Messages          []string
	FilterText        *string
	EnteringFilterText bool
}

func (g GUIState) clone() GUIState {
	cp := g
	cp.Messages = append([]string(nil), g.Messages...)
	if g.FilterText != nil {
		v := *g.FilterText
		cp.FilterText = &v
	}
	return cp
}
