package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the dashboard key bindings.
type KeyMap struct {
	LogWater    key.Binding
	RemoveGlass key.Binding
	Refresh     key.Binding
	Dismiss     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// ShortHelp returns keybindings shown in the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.LogWater, k.RemoveGlass, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.LogWater, k.RemoveGlass},
		{k.Refresh, k.Dismiss},
		{k.Help, k.Quit},
	}
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		LogWater: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "log water"),
		),
		RemoveGlass: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "undo glass"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
