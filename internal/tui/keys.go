package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Online   key.Binding
	Degraded key.Binding
	Offline  key.Binding
	Lead     key.Binding
	Refetch  key.Binding
	Dismiss  key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Online: key.NewBinding(
		key.WithKeys("1", "o"),
		key.WithHelp("1/o", "online"),
	),
	Degraded: key.NewBinding(
		key.WithKeys("2", "d"),
		key.WithHelp("2/d", "degraded"),
	),
	Offline: key.NewBinding(
		key.WithKeys("3", "f"),
		key.WithHelp("3/f", "offline"),
	),
	Lead: key.NewBinding(
		key.WithKeys("l"),
		key.WithHelp("l", "submit lead"),
	),
	Refetch: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refetch"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "dismiss"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Online, k.Degraded, k.Offline, k.Lead, k.Refetch, k.Dismiss, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Online, k.Degraded, k.Offline},
		{k.Lead, k.Refetch, k.Dismiss},
		{k.Help, k.Quit},
	}
}
