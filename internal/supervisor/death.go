package supervisor

// RunDeathDispatcher drains deadPIDs (shared by every control channel) and
// calls OnDeath for each, until the channel is closed. Intended to run in
// its own goroutine alongside the input loop, per spec.md §5's two
// long-lived reader routines feeding one dispatcher.
func (s *Supervisor) RunDeathDispatcher() {
	for pid := range s.deadPIDs {
		s.OnDeath(pid)
	}
}
