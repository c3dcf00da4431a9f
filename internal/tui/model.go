// Package tui provides the Bubble Tea drill interface.
package tui

import (
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/propdrill/internal/session"
)

const inputWidth = 4

// Model implements the Bubble Tea drill UI. It renders session snapshots and
// turns key presses into session events.
type Model struct {
	disp   *session.Dispatcher
	rounds int
	snap   session.Snapshot

	input textinput.Model
	keys  keyMap
	help  help.Model

	width  int
	height int

	err error
}

// NewModel constructs a drill TUI model.
func NewModel(disp *session.Dispatcher, rounds int) *Model {
	if rounds <= 0 {
		rounds = session.DefaultRounds
	}
	input := textinput.New()
	input.Prompt = ""
	input.Placeholder = "?"
	input.CharLimit = inputWidth
	input.Width = inputWidth

	m := &Model{
		disp:   disp,
		rounds: rounds,
		snap:   disp.Snapshot(),
		input:  input,
		keys:   newKeyMap(),
		help:   help.New(),
	}
	m.keys.sync(m.snap, m.rounds)
	return m
}

// Err returns the internal fault that stopped the program, if any.
func (m *Model) Err() error {
	return m.err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	default:
		if m.snap.Phase != session.PhaseExercising {
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Abort):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Begin):
		return m.dispatch(session.Begin{})
	case key.Matches(msg, m.keys.Submit):
		return m.dispatch(session.Submit{})
	case key.Matches(msg, m.keys.Next):
		return m.dispatch(session.Advance{})
	case key.Matches(msg, m.keys.Finish):
		return m.dispatch(session.Conclude{})
	case key.Matches(msg, m.keys.Restart), key.Matches(msg, m.keys.Reset):
		return m.dispatch(session.Restart{})
	}
	if m.snap.Phase != session.PhaseExercising {
		return m, nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() == before {
		return m, cmd
	}
	_, dispatchCmd := m.dispatch(session.SetInput{Text: m.input.Value()})
	return m, tea.Batch(cmd, dispatchCmd)
}

func (m *Model) dispatch(ev session.Event) (tea.Model, tea.Cmd) {
	snap, err := m.disp.Dispatch(ev)
	m.snap = snap
	m.keys.sync(m.snap, m.rounds)
	if err != nil {
		if errors.Is(err, session.ErrInternalFault) {
			m.err = err
			return m, tea.Quit
		}
		// Rejected events are traced by the dispatcher and otherwise ignored.
		return m, nil
	}

	if _, ok := ev.(session.SetInput); ok {
		return m, nil
	}
	if snap.Phase == session.PhaseExercising {
		m.input.Reset()
		return m, m.input.Focus()
	}
	m.input.Blur()
	return m, nil
}
