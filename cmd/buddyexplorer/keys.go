package main

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Input
	Enter key.Binding
	Esc   key.Binding

	// Pool commands
	Alloc  key.Binding
	Text   key.Binding
	Free   key.Binding
	Reset  key.Binding
	Verify key.Binding

	// Clipboard
	CopyRef    key.Binding
	CopyReport key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "go to bottom"),
		),

		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "submit"),
		),
		Esc: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),

		Alloc: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "allocate bytes"),
		),
		Text: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "store text"),
		),
		Free: key.NewBinding(
			key.WithKeys("d", "x"),
			key.WithHelp("d/x", "free selected block"),
		),
		Reset: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset pool"),
		),
		Verify: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "verify pool"),
		),

		CopyRef: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy ref"),
		),
		CopyReport: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy report"),
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
