package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/verte-zerg/propdrill/internal/session"
)

type keyMap struct {
	Begin   key.Binding
	Submit  key.Binding
	Next    key.Binding
	Finish  key.Binding
	Restart key.Binding
	Reset   key.Binding
	Quit    key.Binding
	Abort   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Begin:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "start")),
		Submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "check")),
		Next:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		Finish:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "finish")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Reset:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "restart")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
		Abort:   key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

// sync enables exactly the bindings the phase accepts. Several bindings
// share enter, so only one of them may be live at a time.
func (k *keyMap) sync(snap session.Snapshot, rounds int) {
	phase := snap.Phase
	result := phase == session.PhaseResult
	conclude := snap.ShouldConclude(rounds)

	k.Begin.SetEnabled(phase == session.PhaseStart)
	k.Submit.SetEnabled(snap.CanSubmit())
	k.Next.SetEnabled(result && !conclude)
	k.Finish.SetEnabled(result && conclude)
	k.Restart.SetEnabled(phase == session.PhaseFinalEvaluation)
	k.Reset.SetEnabled(true)
	k.Quit.SetEnabled(phase != session.PhaseExercising)
	k.Abort.SetEnabled(phase == session.PhaseExercising)
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Begin, k.Submit, k.Next, k.Finish, k.Restart, k.Reset, k.Quit, k.Abort}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
