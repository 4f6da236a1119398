package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigErrorUnwraps(t *testing.T) {
	inner := errors.New("boom")
	err := &ConfigError{Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "boom")
}

func TestMuxInvocationErrorIncludesStderr(t *testing.T) {
	err := &MuxInvocationError{Verb: "kill-pane", Stderr: "can't find pane", Err: errors.New("exit status 1")}
	assert.Contains(t, err.Error(), "kill-pane")
	assert.Contains(t, err.Error(), "can't find pane")
}

func TestMuxParseErrorIncludesRaw(t *testing.T) {
	err := &MuxParseError{Verb: "display-message", Raw: "nope", Err: errors.New("strconv")}
	assert.Contains(t, err.Error(), "nope")
}

func TestPidGoneErrorMessage(t *testing.T) {
	err := &PidGoneError{PID: 99}
	assert.Equal(t, "pid 99 already gone", err.Error())
}
