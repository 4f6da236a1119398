// Package supervisor is the central coordinator: it holds the State behind
// one lock, owns the MuxContext and the pair of control channels, and
// exposes the event handlers the input loop and death dispatcher call into.
// Ported from original_source/src/controller.rs, generalized from a single
// tmux session to the foreground/detached pair spec.md describes.
package supervisor

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/leo/proctmux/internal/mux"
	"github.com/leo/proctmux/internal/state"
)

// muxContext is the subset of *mux.Context the supervisor depends on,
// narrowed to an interface so end-to-end tests (spec.md §8) can supply a
// fake without a real tmux binary.
type muxContext interface {
	PickerPane() string
	Break(pane, label string) error
	Join(pane string) error
	CreatePane(command, cwd string, env []string) (string, error)
	CreateDetachedPane(label, command, cwd string, env []string) (string, error)
	KillPaneIfPossible(pane string) error
	GetPID(pane string) (int, error)
	SelectPane(pane string) error
	ToggleZoom(pane string) error
	Cleanup() error
}

// killer sends a signal to a pid; abstracted so tests don't send real
// signals. Implemented for real use by unixKiller (kill.go).
type killer interface {
	Kill(pid int, sig int) error
}

// Supervisor is the single owner of State; every public method takes the
// lock, mutates (or reads) the State, and releases it before returning.
// Draw notifications are delivered to onUpdate from inside the critical
// section, so every render reflects a committed snapshot (spec.md §5).
type Supervisor struct {
	mu sync.Mutex
	st state.State

	mux    muxContext
	kill   killer
	log    *log.Logger

	onUpdate func(state.State)

	deadPIDs chan int
	channels []*mux.ControlChannel

	done     chan struct{}
	doneOnce sync.Once
}

// Option configures a Supervisor at construction time.
type Option func(*Supervisor)

// WithOnUpdate registers a callback invoked with every committed State
// snapshot, used to drive the drawer.
func WithOnUpdate(f func(state.State)) Option {
	return func(s *Supervisor) { s.onUpdate = f }
}

// WithControlChannels registers the control channels the supervisor owns
// for teardown (spec.md §4.7's "kill both control channels" step).
func WithControlChannels(channels ...*mux.ControlChannel) Option {
	return func(s *Supervisor) { s.channels = append(s.channels, channels...) }
}

// New constructs a Supervisor over the given initial state and mux context.
func New(st state.State, muxCtx muxContext, deadPIDs chan int, logger *log.Logger, opts ...Option) *Supervisor {
	s := &Supervisor{
		st:       st,
		mux:      muxCtx,
		kill:     unixKiller{},
		log:      logger,
		deadPIDs: deadPIDs,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Done returns a channel closed once the supervisor has fully drained
// (exiting flag set and every process Halted) — the outer thread's exit
// condition from spec.md §4.7/§2.
func (s *Supervisor) Done() <-chan struct{} { return s.done }

// Snapshot returns a copy of the current state, for the drawer's initial
// render before any mutation has happened.
func (s *Supervisor) Snapshot() state.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.st
}

// withLock runs f with the lock held, then notifies onUpdate with the
// committed snapshot and checks the exit condition — every public handler
// funnels through here so draws and exit checks never happen outside the
// critical section's result (spec.md §5, §4.7).
func (s *Supervisor) withLock(f func()) {
	s.mu.Lock()
	f()
	if s.onUpdate != nil {
		s.onUpdate(s.st)
	}
	exiting := s.st.Exiting
	allHalted := s.st.AllHalted()
	s.mu.Unlock()

	if exiting && allHalted {
		s.doneOnce.Do(func() { close(s.done) })
	}
}

// addMessage appends a user-visible error message to the GUI state. Callers
// must already hold s.mu.
func (s *Supervisor) addMessage(msg string) {
	s.st = state.On(s.st).AddMessage(msg).Commit()
}

func (s *Supervisor) logError(verb string, err error) {
	if s.log != nil {
		s.log.Error(verb, "err", err)
	}
}
