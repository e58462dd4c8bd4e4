package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the top-level key bindings for the demo app. The stats
// popup has its own keymap and consumes all keys while open.
type KeyMap struct {
	Quit  key.Binding
	Stats key.Binding
	Help  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Stats: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "session stats"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}
