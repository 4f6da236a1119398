package supervisor

import "github.com/leo/proctmux/internal/state"

// Quit marks the state as exiting and asks every non-Halted process to
// stop. Done() closes once every process has actually halted (spec.md
// §4.7's drain-before-exit protocol).
func (s *Supervisor) Quit() {
	var toStop []int
	s.withLock(func() {
		s.st = state.On(s.st).SetExiting().Commit()
		for _, p := range s.st.Processes {
			if p.Status == state.Running {
				toStop = append(toStop, p.ID)
			}
		}
	})
	for _, id := range toStop {
		if err := s.Stop(id); err != nil {
			s.logError("stop process during quit", err)
		}
	}
}

// Teardown runs the shutdown sequence of spec.md §4.7 after Done() has
// closed: stop both control channels, then release the MuxContext's
// detached session and remain-on-exit flag.
func (s *Supervisor) Teardown() error {
	for _, ch := range s.channels {
		if err := ch.Close(); err != nil {
			s.logError("close control channel", err)
		}
	}
	return s.mux.Cleanup()
}
