package preview

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the preview key bindings.
type keyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Activate key.Binding
	Commit   key.Binding
	Quit     key.Binding
	QuitRune key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "prev"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "press"),
		),
		Commit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "commit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
		// Only on buttons, so q can still be typed into inputs
		QuitRune: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// help returns the bindings shown in the footer.
func (k keyMap) help(onInput bool) []key.Binding {
	if onInput {
		return []key.Binding{k.Next, k.Prev, k.Commit, k.Quit}
	}
	return []key.Binding{k.Next, k.Prev, k.Activate, k.QuitRune}
}
