package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add        key.Binding
	Toggle     key.Binding
	Delete     key.Binding
	FocusInput key.Binding
	FocusList  key.Binding
	Quit       key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Add:        key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add todo")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		Delete:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		FocusInput: key.NewBinding(key.WithKeys("a", "i", "tab"), key.WithHelp("a", "new todo")),
		FocusList:  key.NewBinding(key.WithKeys("esc", "tab"), key.WithHelp("esc", "back to list")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// listHelp is shown under the list while it has focus.
func (k keyMap) listHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Delete, k.FocusInput, k.Quit}
}
