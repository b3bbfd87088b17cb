package timer

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	start key.Binding
	pause key.Binding
	reset key.Binding
	skip  key.Binding
	task  key.Binding
	quit  key.Binding
}

var defaultKeymap = keymap{
	start: key.NewBinding(
		key.WithKeys("enter", "s"),
		key.WithHelp("enter", "start"),
	),
	pause: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "pause"),
	),
	reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	skip: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "skip"),
	),
	task: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "task"),
	),
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// forStatus returns the bindings that apply in the given run state.
func (k keymap) forStatus(running, paused bool) []key.Binding {
	switch {
	case paused:
		return []key.Binding{withHelp(k.start, "resume"), k.reset, k.skip, k.task, k.quit}
	case running:
		return []key.Binding{k.pause, k.reset, k.skip, k.task, k.quit}
	default:
		return []key.Binding{k.start, k.skip, k.task, k.quit}
	}
}

func withHelp(b key.Binding, desc string) key.Binding {
	b.SetHelp(b.Help().Key, desc)

	return b
}
