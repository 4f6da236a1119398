package supervisor

import (
	"fmt"
	"os"

	"github.com/leo/proctmux/internal/errs"
	"github.com/leo/proctmux/internal/state"
)

// Start implements the Halted -> Running transition of spec.md §4.4's
// state table, including the "restart of a previously dead pane"
// branch (hard-kill the stale pane first, per the Open Question resolution
// recorded in DESIGN.md).
func (s *Supervisor) Start(processID int) error {
	var startErr error
	s.withLock(func() {
		p, ok := s.st.GetProcess(processID)
		if !ok || p.Status != state.Halted {
			return
		}

		if p.Pane != nil {
			if err := s.mux.KillPaneIfPossible(*p.Pane); err != nil {
				s.logError("kill stale pane", err)
			}
			s.st = state.On(s.st).SetProcessPane(processID, nil).Commit()
			p.Pane = nil
		}

		selected := processID == s.st.CurrentProcID
		cfg := p.Config
		var paneID string
		var err error
		if selected {
			paneID, err = s.mux.CreatePane(p.Command(), cfg.Cwd, envSlice(cfg.Env, cfg.AddPath))
		} else {
			paneID, err = s.mux.CreateDetachedPane(p.Label, p.Command(), cfg.Cwd, envSlice(cfg.Env, cfg.AddPath))
		}
		if err != nil {
			s.addMessage(fmt.Sprintf("failed to start %s: %v", p.Label, err))
			s.logError("start process", err)
			startErr = err
			return
		}

		pid, err := s.mux.GetPID(paneID)
		if err != nil {
			s.addMessage(fmt.Sprintf("failed to read pid for %s: %v", p.Label, err))
			s.logError("get pid", err)
			startErr = err
			return
		}

		s.st = state.On(s.st).
			SetProcessPane(processID, state.PaneString(paneID)).
			SetProcessPID(processID, state.PIDInt(pid)).
			SetProcessStatus(processID, state.Running).
			Commit()

		if cfg.Autofocus {
			if err := s.mux.SelectPane(paneID); err != nil {
				s.logError("autofocus select pane", err)
			}
		}
	})
	return startErr
}

// Stop implements the Running -> Halting transition, signaling the pid
// with the process's configured stop signal.
func (s *Supervisor) Stop(processID int) error {
	var stopErr error
	s.withLock(func() {
		p, ok := s.st.GetProcess(processID)
		if !ok || p.Status != state.Running || p.PID == nil {
			return
		}

		sig, err := p.Config.StopSignal()
		if err != nil {
			s.addMessage(fmt.Sprintf("failed to stop %s: %v", p.Label, err))
			stopErr = err
			return
		}

		if err := s.kill.Kill(*p.PID, int(sig)); err != nil {
			if err == errPidGone {
				// PidGoneError: advance state as if the death notification
				// had already arrived (spec.md §7 item 4).
				s.logError("stop process: pid already gone", &errs.PidGoneError{PID: *p.PID})
				s.onDeathLocked(*p.PID)
				return
			}
			s.addMessage(fmt.Sprintf("failed to stop %s: %v", p.Label, err))
			s.logError("stop process", err)
			stopErr = err
			return
		}

		s.st = state.On(s.st).SetProcessStatus(processID, state.Halting).Commit()
	})
	return stopErr
}

// OnDeath implements the Running/Halting -> Halted transition triggered by
// an asynchronous pane-dead notification for pid.
func (s *Supervisor) OnDeath(pid int) {
	s.withLock(func() {
		s.onDeathLocked(pid)
	})
}

// onDeathLocked performs the death transition; callers must already hold
// s.mu (either via withLock's f, or directly from Stop's PidGone fallback).
func (s *Supervisor) onDeathLocked(pid int) {
	p, ok := s.st.GetProcessByPID(pid)
	if !ok {
		return
	}

	wasHalting := p.Status == state.Halting

	s.st = state.On(s.st).
		SetProcessPID(p.ID, nil).
		SetProcessStatus(p.ID, state.Halted).
		Commit()

	if wasHalting {
		// Leave the pane for scrollback; refocus the picker pane.
		if err := s.mux.SelectPane(s.mux.PickerPane()); err != nil {
			s.logError("refocus picker pane", err)
		}
	}
}

// envSlice builds a "KEY=VALUE" slice from env overrides plus an extended
// PATH built by prepending addPath entries, matching config.rs's add_path
// semantics.
func envSlice(env map[string]string, addPath []string) []string {
	var out []string
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	if len(addPath) > 0 {
		path := ""
		for _, p := range addPath {
			path += p + ":"
		}
		out = append(out, "PATH="+path+os.Getenv("PATH"))
	}
	return out
}
