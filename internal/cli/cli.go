// Package cli wires a single cobra root command that loads the config,
// prepares the multiplexer context, and runs the supervisor loop until
// exit. Grounded on shepherdjerred-claude-squad/main.go's single
// long-running RunE command (the only cobra usage in the retrieved
// corpus with an actual cobra.Command{} literal).
package cli

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/leo/proctmux/internal/app"
	"github.com/leo/proctmux/internal/config"
	"github.com/leo/proctmux/internal/input"
	"github.com/leo/proctmux/internal/logger"
	"github.com/leo/proctmux/internal/mux"
	"github.com/leo/proctmux/internal/state"
	"github.com/leo/proctmux/internal/supervisor"
)

var logLevel string

// NewRootCommand builds the proctmux root command.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proctmux [config-path]",
		Short: "Supervise a catalog of processes from a tmux picker pane",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "proctmux.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			return run(path)
		},
	}
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug logs at debug level, any other value logs at info level")
	return cmd
}

// Execute runs the root command and maps errors to a process exit code,
// per spec.md §6's "non-zero on config error / session lookup failure".
func Execute() int {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func run(path string) error {
	if os.Getenv("TMUX") == "" {
		return fmt.Errorf("proctmux must be run inside tmux")
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	log, err := logger.New(cfg.LogFile, logLevel == "debug")
	if err != nil {
		return err
	}

	client := mux.NewClient()
	muxCtx, err := mux.Prepare(client, cfg.General.DetachedSessionName, cfg.General.KillExistingSession)
	if err != nil {
		return err
	}

	deadPIDs := make(chan int, 64)
	ownChannel, err := mux.NewControlChannel("", muxCtx.Session(), deadPIDs)
	if err != nil {
		return err
	}
	detachedChannel, err := mux.NewControlChannel("", muxCtx.DetachedSession(), deadPIDs)
	if err != nil {
		return err
	}

	st := state.New(cfg)
	model := app.New(st)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithInput(nil))

	sup := supervisor.New(st, muxCtx, deadPIDs, log,
		supervisor.WithControlChannels(ownChannel, detachedChannel),
		supervisor.WithOnUpdate(func(s state.State) {
			program.Send(app.StateMsg{State: s})
		}),
	)

	// Startup grace period before subscribing: spec.md §4.2 notes the
	// control-mode child needs a moment to finish attaching before a
	// refresh-client subscription registers reliably.
	time.Sleep(50 * time.Millisecond)
	if err := ownChannel.Subscribe(); err != nil {
		return err
	}
	if err := detachedChannel.Subscribe(); err != nil {
		return err
	}

	go sup.RunDeathDispatcher()

	loop, err := input.New(cfg.Keybinding, sup, log)
	if err != nil {
		return err
	}
	go loop.Run()

	go func() {
		<-sup.Done()
		if err := sup.Teardown(); err != nil {
			log.Error("teardown", "err", err)
		}
		if err := loop.Restore(); err != nil {
			log.Error("restore terminal", "err", err)
		}
		program.Send(app.QuitCmd())
	}()

	for _, p := range st.Processes {
		if p.Config.Autostart {
			if err := sup.Start(p.ID); err != nil {
				log.Error("autostart", "process", p.Label, "err", err)
			}
		}
	}

	_, err = program.Run()
	return err
}
