package input

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/leo/proctmux/internal/config"
)

// dispatcher is the subset of *supervisor.Supervisor the loop drives.
// Narrowed to an interface so tests can drive a fake without real tmux or a
// real terminal.
type dispatcher interface {
	Start(processID int) error
	Stop(processID int) error
	NextProcess()
	PreviousProcess()
	Quit()
	EnterFilterMode()
	AppendFilterRune(r rune)
	Backspace()
	SubmitFilter()
	CancelFilter()
	ToggleZoomCurrent() error
	CurrentProcessID() (int, bool)
	FilterEntering() bool
	Done() <-chan struct{}
}

// Loop owns stdin in raw mode and implements the normal/filter sub-mode
// dispatch of spec.md §4.4's InputLoop, switching from blocking reads to a
// poll-with-timeout once the supervisor starts exiting so that late death
// notifications can still progress the drain (spec.md §4.7).
type Loop struct {
	in       io.Reader
	resolver *Resolver
	sup      dispatcher
	log      *log.Logger

	restoreTerm func() error
}

// New builds a Loop reading from os.Stdin, putting it into raw mode.
// Callers must call Restore once Run returns.
func New(bindings config.Keybinding, sup dispatcher, logger *log.Logger) (*Loop, error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return &Loop{
		in:       os.Stdin,
		resolver: NewResolver(bindingsMap(bindings)),
		sup:      sup,
		log:      logger,
		restoreTerm: func() error {
			return term.Restore(fd, oldState)
		},
	}, nil
}

// Restore returns stdin to cooked mode.
func (l *Loop) Restore() error {
	if l.restoreTerm == nil {
		return nil
	}
	return l.restoreTerm()
}

func bindingsMap(kb config.Keybinding) map[Action][]string {
	return map[Action][]string{
		ActionQuit:         kb.Quit,
		ActionStart:        kb.Start,
		ActionStop:         kb.Stop,
		ActionUp:           kb.Up,
		ActionDown:         kb.Down,
		ActionFilter:       kb.Filter,
		ActionFilterSubmit: kb.FilterSubmit,
		ActionSwitchFocus:  kb.SwitchFocus,
	}
}

// Run reads keystrokes until the supervisor reports it is done draining.
// It blocks on stdin during normal operation; once Quit has been
// dispatched it polls with a short timeout between reads so Done() is
// re-checked even if no further key arrives.
func (l *Loop) Run() {
	buf := make([]byte, 8)
	quitting := false

	for {
		select {
		case <-l.sup.Done():
			return
		default:
		}

		n, err := l.readWithTimeout(buf, quitting)
		if err != nil {
			if quitting {
				continue
			}
			if l.log != nil {
				l.log.Error("stdin read", "err", err)
			}
			return
		}
		if n == 0 {
			continue
		}

		lit, consumed := decodeKey(buf[:n])
		if consumed == 0 {
			continue
		}
		if l.handle(lit) {
			quitting = true
		}
	}
}

// readWithTimeout performs a blocking read in normal mode, or a
// short-timeout read once quitting so the Done() check above gets a chance
// to run between keystrokes.
func (l *Loop) readWithTimeout(buf []byte, quitting bool) (int, error) {
	if !quitting {
		return l.in.Read(buf)
	}

	type result struct {
		n   int
		err error
	}
	ch := make(chan result, 1)
	go func() {
		n, err := l.in.Read(buf)
		ch <- result{n, err}
	}()
	select {
	case r := <-ch:
		return r.n, r.err
	case <-time.After(100 * time.Millisecond):
		return 0, nil
	}
}

// handle dispatches a decoded key literal, reporting whether it triggered
// the quit action.
func (l *Loop) handle(literal string) bool {
	if l.sup.FilterEntering() {
		switch literal {
		case "esc":
			l.sup.CancelFilter()
			return false
		case "enter":
			l.sup.SubmitFilter()
			return false
		}
		if action, ok := l.resolver.Resolve(literal); ok && action == ActionFilterSubmit {
			l.sup.SubmitFilter()
			return false
		}
		if len(literal) == 1 {
			l.sup.AppendFilterRune(rune(literal[0]))
			return false
		}
		if literal == "c-h" || literal == "backspace" {
			l.sup.Backspace()
		}
		return false
	}

	action, ok := l.resolver.Resolve(literal)
	if !ok {
		return false
	}

	switch action {
	case ActionQuit:
		l.sup.Quit()
		return true
	case ActionStart:
		if id, ok := l.sup.CurrentProcessID(); ok {
			if err := l.sup.Start(id); err != nil && l.log != nil {
				l.log.Error("start", "err", err)
			}
		}
	case ActionStop:
		if id, ok := l.sup.CurrentProcessID(); ok {
			if err := l.sup.Stop(id); err != nil && l.log != nil {
				l.log.Error("stop", "err", err)
			}
		}
	case ActionUp:
		l.sup.PreviousProcess()
	case ActionDown:
		l.sup.NextProcess()
	case ActionFilter:
		l.sup.EnterFilterMode()
	case ActionSwitchFocus:
		if err := l.sup.ToggleZoomCurrent(); err != nil && l.log != nil {
			l.log.Error("toggle zoom", "err", err)
		}
	}
	return false
}
