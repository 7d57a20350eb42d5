package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
//
// Letter bindings only fire while the search box is blurred; while it is
// focused every printable key goes to the query.
type keyMap struct {
	// Always active
	Quit key.Binding
	Up   key.Binding
	Down key.Binding

	// Search box
	Focus key.Binding
	Blur  key.Binding

	// Blurred only
	QuitBlurred    key.Binding
	UpBlurred      key.Binding
	DownBlurred    key.Binding
	Top            key.Binding
	Bottom         key.Binding
	Help           key.Binding
	CycleTheme     key.Binding
	ToggleOverview key.Binding
	Diagnostics    key.Binding

	// Diagnostics overlay
	ToggleProblems key.Binding
	Reload         key.Binding
	Close          key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "Previous movie"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "Next movie"),
		),

		Focus: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Focus search"),
		),
		Blur: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Leave search"),
		),

		QuitBlurred: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "Quit"),
		),
		UpBlurred: key.NewBinding(
			key.WithKeys("k"),
			key.WithHelp("k", "Previous movie"),
		),
		DownBlurred: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "Next movie"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "First movie"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Last movie"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		ToggleOverview: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Toggle overviews"),
		),
		Diagnostics: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Diagnostics"),
		),

		ToggleProblems: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Problems only"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "L", "q"),
			key.WithHelp("esc", "Close"),
		),
	}
}
