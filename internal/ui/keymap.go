package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines keyboard shortcuts for the application. Plain letters are
// left to the text inputs, so every global action uses a modifier or F-key.
type KeyMap struct {
	// Global
	Quit key.Binding
	Back key.Binding
	Help key.Binding
	Logs key.Binding

	// Navigation
	Next  key.Binding
	Prev  key.Binding
	Left  key.Binding
	Right key.Binding

	// Calculator
	ToggleMode key.Binding
	Reset      key.Binding
	Export     key.Binding
	NextPreset key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "help"),
		),
		Logs: key.NewBinding(
			key.WithKeys("f12"),
			key.WithHelp("F12", "logs"),
		),

		Next: key.NewBinding(
			key.WithKeys("tab", "down", "enter"),
			key.WithHelp("tab/↓", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab/↑", "prev field"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "option"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", " "),
			key.WithHelp("→/space", "option"),
		),

		ToggleMode: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "% / €"),
		),
		Reset: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reset"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "export"),
		),
		NextPreset: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "next preset"),
		),
	}
}

// ShortHelp returns key help text for the compact help bar
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.ToggleMode, k.Export, k.Help, k.Quit}
}

// FullHelp returns extended help text
func (k KeyMap) FullHelp() []key.Binding {
	return []key.Binding{
		k.Next, k.Prev, k.Left, k.Right,
		k.ToggleMode, k.Reset, k.NextPreset, k.Export,
		k.Logs, k.Help, k.Quit,
	}
}

// ContextualHelp returns the bindings that make sense on the given route
func (k KeyMap) ContextualHelp(route Route) []key.Binding {
	switch route {
	case RouteLogs:
		return []key.Binding{k.Back, k.Quit}
	default:
		return k.ShortHelp()
	}
}
