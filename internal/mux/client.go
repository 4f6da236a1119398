// Package mux wraps the tmux binary: a stateless command client
// (MuxClient, spec.md §4.1), an async control-mode death-notification
// channel (MuxControlChannel, §4.2), and the pane-topology invariants owned
// by the supervisor's own pane (MuxContext, §4.3).
//
// Grounded on leonardcser-claude-mux/internal/agent/tmux.go's pattern of
// thin exec.Command wrappers around a single tmux verb each, and on
// original_source/src/tmux.rs for the exact argv shapes (break-pane,
// join-pane, split-window with -l 70%, etc).
package mux

import (
	"bytes"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/leo/proctmux/internal/errs"
)

// Client issues synchronous tmux commands and parses their replies. It is
// stateless: every method is a self-contained invocation of the tmux
// binary.
type Client struct {
	// Bin overrides the tmux executable name, for tests.
	Bin string
}

// NewClient returns a Client invoking the system tmux binary.
func NewClient() *Client {
	return &Client{Bin: "tmux"}
}

func (c *Client) bin() string {
	if c.Bin == "" {
		return "tmux"
	}
	return c.Bin
}

// run executes tmux with the given args and returns trimmed stdout, or a
// MuxInvocationError carrying stderr on failure.
func (c *Client) run(verb string, args ...string) (string, error) {
	cmd := exec.Command(c.bin(), args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", &errs.MuxInvocationError{Verb: verb, Stderr: strings.TrimSpace(stderr.String()), Err: err}
	}
	return strings.TrimRight(stdout.String(), "\n"), nil
}

func (c *Client) runInt(verb string, args ...string) (int, error) {
	out, err := c.run(verb, args...)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		return 0, &errs.MuxParseError{Verb: verb, Raw: out, Err: err}
	}
	return n, nil
}

// ListSessions returns the names of all tmux sessions.
func (c *Client) ListSessions() ([]string, error) {
	out, err := c.run("list-sessions", "list-sessions", "-F", "#{session_name}")
	if err != nil {
		var invErr *errs.MuxInvocationError
		if ok := asInvocationError(err, &invErr); ok && strings.Contains(invErr.Stderr, "no server running") {
			return nil, nil
		}
		return nil, err
	}
	if out == "" {
		return nil, nil
	}
	return strings.Split(out, "\n"), nil
}

func asInvocationError(err error, target **errs.MuxInvocationError) bool {
	e, ok := err.(*errs.MuxInvocationError)
	if ok {
		*target = e
	}
	return ok
}

// CurrentSession returns the invoking client's session name.
func (c *Client) CurrentSession() (string, error) {
	return c.run("display-message", "display-message", "-p", "#S")
}

// CurrentPane returns the invoking client's pane id ("<window>.<pane>").
func (c *Client) CurrentPane() (string, error) {
	window, err := c.run("display-message", "display-message", "-p", "#I")
	if err != nil {
		return "", err
	}
	pane, err := c.run("display-message", "display-message", "-p", "#P")
	if err != nil {
		return "", err
	}
	return window + "." + pane, nil
}

// StartDetachedSession creates a detached session and returns its name,
// which later commands use as the session target.
func (c *Client) StartDetachedSession(name string) (string, error) {
	if _, err := c.run("new-session", "new-session", "-d", "-s", name); err != nil {
		return "", err
	}
	return name, nil
}

// KillSession kills the session with the given id.
func (c *Client) KillSession(id string) error {
	_, err := c.run("kill-session", "kill-session", "-t", id)
	return err
}

// SetRemainOnExit toggles the remain-on-exit pane option.
func (c *Client) SetRemainOnExit(pane string, on bool) error {
	val := "off"
	if on {
		val = "on"
	}
	_, err := c.run("set-option", "set-option", "-t", pane, "remain-on-exit", val)
	return err
}

// BreakPane moves srcPane out of its window into a new window named
// windowLabel inside dstSession (at dstWindow, an index hint tmux is free
// to renumber). Pane ids are stable across the move, so the caller does
// not need a new identifier back.
func (c *Client) BreakPane(srcPane, dstSession, dstWindow, windowLabel string) error {
	_, err := c.run("break-pane", "break-pane", "-d",
		"-s", srcPane,
		"-t", fmt.Sprintf("%s:%s", dstSession, dstWindow),
		"-n", windowLabel)
	return err
}

// JoinPane splits dstPane horizontally at 70% width and reparents srcPane
// into the new split.
func (c *Client) JoinPane(srcPane, dstPane string) error {
	_, err := c.run("join-pane", "join-pane", "-d", "-h", "-l", "70%", "-s", srcPane, "-t", dstPane)
	return err
}

// CreatePane splits hostPane 70%/30% horizontally and runs command there,
// returning the new pane id.
func (c *Client) CreatePane(hostPane, command, cwd string, env []string) (string, error) {
	args := []string{"split-window", "-d", "-h", "-l", "70%", "-t", hostPane, "-P", "-F", "#{pane_id}"}
	if cwd != "" {
		args = append(args, "-c", cwd)
	}
	for _, e := range env {
		args = append(args, "-e", e)
	}
	args = append(args, command)
	return c.run("split-window", args...)
}

// CreateDetachedPane creates a new window named label inside dstSession at
// dstWindow, running command, returning the new pane id.
func (c *Client) CreateDetachedPane(dstSession, dstWindow, label, command, cwd string, env []string) (string, error) {
	args := []string{"new-window", "-d", "-t", fmt.Sprintf("%s:%s", dstSession, dstWindow), "-n", label, "-P", "-F", "#{pane_id}"}
	if cwd != "" {
		args = append(args, "-c", cwd)
	}
	for _, e := range env {
		args = append(args, "-e", e)
	}
	args = append(args, command)
	return c.run("new-window", args...)
}

// KillPane kills the given pane.
func (c *Client) KillPane(pane string) error {
	_, err := c.run("kill-pane", "kill-pane", "-t", pane)
	return err
}

// SelectPane moves input focus to the given pane.
func (c *Client) SelectPane(pane string) error {
	_, err := c.run("select-pane", "select-pane", "-t", pane)
	return err
}

// GetPanePID returns the OS pid of the pane's child process.
func (c *Client) GetPanePID(pane string) (int, error) {
	return c.runInt("display-message", "display-message", "-p", "-t", pane, "#{pane_pid}")
}

// ToggleZoom toggles the zoomed state of the pane's window.
func (c *Client) ToggleZoom(pane string) error {
	_, err := c.run("resize-pane", "resize-pane", "-Z", "-t", pane)
	return err
}

// PaneVariables evaluates a tmux format string against a pane.
func (c *Client) PaneVariables(pane, format string) (string, error) {
	return c.run("display-message", "display-message", "-p", "-t", pane, format)
}
