// Package logger configures the file-backed logger used across proctmux.
//
// A terminal multiplexer supervisor cannot log to stdout/stderr — both are
// owned by the picker pane's rendering — so every diagnostic goes to the
// log_file configured in proctmux.yaml, mirroring the Rust original's use of
// a file appender behind the `log`/`trace!` macros (original_source's
// state.rs, daemon.rs).
package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// New opens path for appending and returns a logger writing to it.
func New(path string, debug bool) (*log.Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		ReportCaller:    false,
	})
	if debug {
		l.SetLevel(log.DebugLevel)
	} else {
		l.SetLevel(log.InfoLevel)
	}
	return l, nil
}
