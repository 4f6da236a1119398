package mux

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leo/proctmux/internal/errs"
)

// Context owns the supervisor's own pane identity, the foreground session,
// and the detached holding session, and enforces the pane-topology
// invariants of spec.md §4.3. Grounded on
// original_source/src/tmux_context.rs's TmuxContext.
type Context struct {
	client *Client

	session        string
	window         string
	pane           string // picker pane, "<window>.<pane>"
	detachedSession string

	nextDetachedWindow int
}

// Prepare performs the startup sequence of spec.md §4.3: read own identity,
// check for (and optionally kill) a pre-existing detached session, create
// the detached session, enable remain-on-exit on the picker pane.
func Prepare(client *Client, detachedSessionName string, killExisting bool) (*Context, error) {
	session, err := client.CurrentSession()
	if err != nil {
		return nil, err
	}
	pane, err := client.CurrentPane()
	if err != nil {
		return nil, err
	}
	window := pane
	if idx := strings.Index(pane, "."); idx >= 0 {
		window = pane[:idx]
	}

	sessions, err := client.ListSessions()
	if err != nil {
		return nil, err
	}
	for _, s := range sessions {
		if s == detachedSessionName {
			if !killExisting {
				return nil, &errs.ConfigError{Err: fmt.Errorf("detached session %q already exists; set general.kill_existing_session to replace it", detachedSessionName)}
			}
			if err := client.KillSession(detachedSessionName); err != nil {
				return nil, err
			}
			break
		}
	}

	if _, err := client.StartDetachedSession(detachedSessionName); err != nil {
		return nil, err
	}
	if err := client.SetRemainOnExit(pane, true); err != nil {
		return nil, err
	}

	return &Context{
		client:          client,
		session:         session,
		window:          window,
		pane:            pane,
		detachedSession: detachedSessionName,
	}, nil
}

// Cleanup reverses Prepare: kill the detached session and disable
// remain-on-exit on the picker pane.
func (c *Context) Cleanup() error {
	if err := c.client.KillSession(c.detachedSession); err != nil {
		return err
	}
	return c.client.SetRemainOnExit(c.pane, false)
}

// PickerPane returns the supervisor's own pane id.
func (c *Context) PickerPane() string { return c.pane }

// Break moves pane out of the foreground window into a fresh window inside
// the detached session named label, then re-asserts remain-on-exit (tmux
// drops the flag on move, per spec.md §4.1). Pane ids are stable across
// the move.
func (c *Context) Break(pane, label string) error {
	c.nextDetachedWindow++
	dstWindow := strconv.Itoa(c.nextDetachedWindow)
	if err := c.client.BreakPane(pane, c.detachedSession, dstWindow, label); err != nil {
		return err
	}
	return c.client.SetRemainOnExit(pane, true)
}

// Join splits the picker pane and reparents pane into it at 70% width.
func (c *Context) Join(pane string) error {
	return c.client.JoinPane(pane, c.pane)
}

// CreatePane starts command in a foreground split off the picker pane.
func (c *Context) CreatePane(command, cwd string, env []string) (string, error) {
	return c.client.CreatePane(c.pane, command, cwd, env)
}

// CreateDetachedPane starts command in a fresh window inside the detached
// session, then re-asserts remain-on-exit.
func (c *Context) CreateDetachedPane(label, command, cwd string, env []string) (string, error) {
	c.nextDetachedWindow++
	dstWindow := strconv.Itoa(c.nextDetachedWindow)
	id, err := c.client.CreateDetachedPane(c.detachedSession, dstWindow, label, command, cwd, env)
	if err != nil {
		return "", err
	}
	if err := c.client.SetRemainOnExit(id, true); err != nil {
		return "", err
	}
	return id, nil
}

// KillPaneIfPossible kills pane, swallowing the "pane not found" error tmux
// raises when the pane is already gone (the stale-pane case spec.md §4.4's
// restart branch must tolerate).
func (c *Context) KillPaneIfPossible(pane string) error {
	err := c.client.KillPane(pane)
	if err == nil {
		return nil
	}
	var invErr *errs.MuxInvocationError
	if e, ok := err.(*errs.MuxInvocationError); ok {
		invErr = e
		if strings.Contains(invErr.Stderr, "can't find pane") {
			return nil
		}
	}
	return err
}

// GetPID returns the OS pid of the pane's current child.
func (c *Context) GetPID(pane string) (int, error) {
	return c.client.GetPanePID(pane)
}

// ZoomIn zooms pane if it is not already zoomed.
func (c *Context) ZoomIn(pane string) error {
	zoomed, err := c.isZoomed(pane)
	if err != nil {
		return err
	}
	if zoomed {
		return nil
	}
	return c.client.ToggleZoom(pane)
}

// ZoomOut unzooms pane if it is currently zoomed.
func (c *Context) ZoomOut(pane string) error {
	zoomed, err := c.isZoomed(pane)
	if err != nil {
		return err
	}
	if !zoomed {
		return nil
	}
	return c.client.ToggleZoom(pane)
}

// ToggleZoom flips the zoomed state of pane.
func (c *Context) ToggleZoom(pane string) error {
	return c.client.ToggleZoom(pane)
}

func (c *Context) isZoomed(pane string) (bool, error) {
	out, err := c.client.PaneVariables(pane, "#{window_zoomed_flag}")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) == "1", nil
}

// SelectPane moves input focus to pane.
func (c *Context) SelectPane(pane string) error {
	return c.client.SelectPane(pane)
}

// DetachedSession returns the name of the holding session.
func (c *Context) DetachedSession() string { return c.detachedSession }

// Session returns the supervisor's own foreground session name.
func (c *Context) Session() string { return c.session }
