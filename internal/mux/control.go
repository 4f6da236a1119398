package mux

import (
	"bufio"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"
)

// sanitizeSubscriptionName keeps a tmux format-string token safe by
// replacing every character outside [A-Za-z0-9_] with an underscore, per
// spec.md §4.2's "pane_dead_notification_<sanitized-session>".
var nonWordRe = regexp.MustCompile(`[^A-Za-z0-9_]`)

func sanitizeSubscriptionName(session string) string {
	return "pane_dead_notification_" + nonWordRe.ReplaceAllString(session, "_")
}

// ControlChannel is a long-lived tmux child running in control mode,
// streaming asynchronous pane-dead notifications for one session. Grounded
// on original_source/src/tmux_daemon.rs's TmuxDaemon (command_mode,
// refresh-client -B subscription, a BufReader read loop feeding an
// mpsc::Sender) ported to a bufio.Scanner + atomic running flag + Go
// channel.
type ControlChannel struct {
	session string
	subName string

	cmd     *exec.Cmd
	stdin   io.WriteCloser
	stdout  io.ReadCloser
	running atomic.Bool

	deadPIDs chan int
}

// NewControlChannel spawns `tmux -C attach -t <session>` bound to session
// and returns the channel without registering the subscription yet —
// callers must call Subscribe once all sibling channels have been
// constructed and the startup grace period (spec.md §4.2) has elapsed.
func NewControlChannel(bin, session string, deadPIDs chan int) (*ControlChannel, error) {
	if bin == "" {
		bin = "tmux"
	}
	cmd := exec.Command(bin, "-C", "attach-session", "-t", session)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	cc := &ControlChannel{
		session:  session,
		subName:  sanitizeSubscriptionName(session),
		cmd:      cmd,
		stdin:    stdin,
		stdout:   stdout,
		deadPIDs: deadPIDs,
	}
	cc.running.Store(true)
	return cc, nil
}

// Subscribe registers the pane-dead notification subscription and starts
// the reader goroutine.
func (cc *ControlChannel) Subscribe() error {
	cmdLine := fmt.Sprintf("refresh-client -B %s:%%*:\"#{pane_dead} #{pane_pid}\"\n", cc.subName)
	if _, err := io.WriteString(cc.stdin, cmdLine); err != nil {
		return err
	}
	go cc.readLoop()
	return nil
}

// readLoop reads one line at a time while running is true, extracting dead
// pids from lines matching this channel's subscription. It never holds any
// lock while blocked on Scan (spec.md §5).
func (cc *ControlChannel) readLoop() {
	scanner := bufio.NewScanner(cc.stdout)
	for cc.running.Load() && scanner.Scan() {
		line := scanner.Text()
		if pid, ok := parseSubscriptionLine(line, cc.subName); ok {
			cc.deadPIDs <- pid
		}
	}
}

// parseSubscriptionLine parses a control-mode output line of the form
// `%subscription-changed <subname> … <dead> <pid>`, returning the pid when
// the subscription name matches and the dead flag is "1".
func parseSubscriptionLine(line, subName string) (int, bool) {
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return 0, false
	}
	if fields[0] != "%subscription-changed" || fields[1] != subName {
		return 0, false
	}
	dead := fields[len(fields)-2]
	pidStr := fields[len(fields)-1]
	if dead != "1" {
		return 0, false
	}
	pid, err := strconv.Atoi(pidStr)
	if err != nil {
		return 0, false
	}
	return pid, true
}

// Close stops the reader loop and terminates and reaps the control-mode
// child.
func (cc *ControlChannel) Close() error {
	cc.running.Store(false)
	if cc.cmd.Process != nil {
		_ = cc.cmd.Process.Kill()
	}
	_ = cc.stdin.Close()
	return cc.cmd.Wait()
}
