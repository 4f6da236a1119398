// Package input reads raw keystrokes from stdin and decodes them against
// the key literal grammar of spec.md §6 (a single character; `enter`,
// `esc`, `up`, `down`, `left`, `right`; `a-X` for Alt+X; `c-X` for Ctrl+X),
// then dispatches the matching action to the Supervisor. Grounded on
// golang.org/x/term's raw-mode pattern in
// shepherdjerred-claude-squad/session/docker/docker.go's Attach (MakeRaw +
// a buffered stdin read loop), since key-binding symbolic decoding's exact
// terminal-escape grammar is the one piece spec.md leaves as an external
// contract (§1) rather than specifying bubbletea's own key model.
package input

// decodeKey turns up to the first few bytes of a raw stdin read into a key
// literal string matching the vocabulary accepted by config.Keybinding's
// entries, plus the number of bytes it consumed. Every non-empty buf decodes
// to some literal; only an empty buf yields ("", 0).
func decodeKey(buf []byte) (literal string, consumed int) {
	if len(buf) == 0 {
		return "", 0
	}

	b0 := buf[0]

	switch b0 {
	case '\r', '\n':
		return "enter", 1
	case 0x1b: // ESC
		if len(buf) >= 3 && buf[1] == '[' {
			switch buf[2] {
			case 'A':
				return "up", 3
			case 'B':
				return "down", 3
			case 'C':
				return "right", 3
			case 'D':
				return "left", 3
			}
		}
		if len(buf) >= 2 {
			// Alt+X: ESC followed by the plain character.
			return "a-" + string(buf[1]), 2
		}
		return "esc", 1
	case 0x7f:
		return "backspace", 1
	}

	if b0 < 0x20 && b0 != '\t' {
		// Ctrl+X: the control code is X's ASCII value with bits 5-6 cleared.
		ctrlChar := rune(b0 | 0x60)
		return "c-" + string(ctrlChar), 1
	}

	return string(b0), 1
}

// Action is a symbolic name for a dispatchable keybinding action.
type Action string

const (
	ActionQuit         Action = "quit"
	ActionStart        Action = "start"
	ActionStop         Action = "stop"
	ActionUp           Action = "up"
	ActionDown         Action = "down"
	ActionFilter       Action = "filter"
	ActionFilterSubmit Action = "filter_submit"
	ActionSwitchFocus  Action = "switch_focus"
)

// Resolver maps a decoded key literal to the action it is bound to, per the
// loaded config's keybinding table.
type Resolver struct {
	byLiteral map[string]Action
}

// NewResolver builds a Resolver from the action->literals lists. When the
// same literal is listed under more than one action, which of those actions
// it resolves to is not defined (it depends on map iteration order); config
// loading does not check for overlapping bindings.
func NewResolver(bindings map[Action][]string) *Resolver {
	r := &Resolver{byLiteral: make(map[string]Action)}
	for action, literals := range bindings {
		for _, lit := range literals {
			r.byLiteral[lit] = action
		}
	}
	return r
}

// Resolve returns the action bound to literal, or "" if unbound.
func (r *Resolver) Resolve(literal string) (Action, bool) {
	a, ok := r.byLiteral[literal]
	return a, ok
}

func (a Action) String() string { return string(a) }
