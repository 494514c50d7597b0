package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the resume prompt
type KeyMap struct {
	// Navigation
	Left   key.Binding
	Right  key.Binding
	Toggle key.Binding

	// Actions
	Select  key.Binding
	Resume  key.Binding
	Restart key.Binding
	Dismiss key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "right"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "switch"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Resume: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "resume"),
		),
		Restart: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "restart"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("esc", "q", "ctrl+c"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

// ShortHelp returns the bindings shown under the prompt
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Select, k.Resume, k.Restart, k.Dismiss}
}
