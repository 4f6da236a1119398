package supervisor

import (
	"errors"

	"golang.org/x/sys/unix"
)

// unixKiller delivers signals via golang.org/x/sys/unix.Kill rather than
// shelling out to kill(1), grounded on golang.org/x/sys already being a
// transitive dependency of the teacher's terminal stack (see SPEC_FULL.md §9).
type unixKiller struct{}

func (unixKiller) Kill(pid int, sig int) error {
	err := unix.Kill(pid, unix.Signal(sig))
	if errors.Is(err, unix.ESRCH) {
		return errPidGone
	}
	return err
}

var errPidGone = errors.New("pid already gone")
