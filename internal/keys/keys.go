// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// Printable keys all belong to the search input, so app bindings use
// control and function keys only.

// KeyMap defines the application keybindings.
type KeyMap struct {
	Focus     key.Binding
	ClearText key.Binding
	Logs      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Focus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "focus/blur search"),
		),
		ClearText: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear search"),
		),
		Logs: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "debug logs"),
			key.WithDisabled(),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// WithDebug enables the log overlay binding.
func (k KeyMap) WithDebug(debug bool) KeyMap {
	k.Logs.SetEnabled(debug)
	return k
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Focus, k.ClearText},
		{k.Logs, k.Help, k.Quit},
	}
}
