// Package app wires the Supervisor's state snapshots to a bubbletea
// program used purely as a renderer: tea.WithInput(nil) disables Bubble
// Tea's own stdin decoding (internal/input owns the key-literal grammar
// instead) and every frame is pushed in externally via Program.Send,
// following the render-from-snapshot split in
// leonardcser-claude-mux/internal/tui/model.go's Model/View.
package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/leo/proctmux/internal/draw"
	"github.com/leo/proctmux/internal/state"
)

// StateMsg carries a freshly committed State snapshot into the program.
type StateMsg struct{ State state.State }

// quitMsg tells the program to exit its event loop once teardown has run.
type quitMsg struct{}

// QuitCmd is the tea.Cmd the caller sends once Supervisor.Done() has
// closed and Teardown has completed.
func QuitCmd() tea.Msg { return quitMsg{} }

// Model renders the most recently received State snapshot through
// draw.Builder/draw.Render; it holds no behavior of its own.
type Model struct {
	builder draw.Builder
	state   state.State
	width   int
	height  int
}

// New constructs a Model seeded with the initial snapshot.
func New(initial state.State) Model {
	return Model{state: initial}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case StateMsg:
		m.state = msg.State
	case quitMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	frame := m.builder.Build(m.state, m.width, m.height)
	return draw.Render(frame)
}
