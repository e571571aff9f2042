package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/five82/e6viu/internal/state"
)

// keyMap defines the prompt's keyboard bindings.
type keyMap struct {
	Next key.Binding
	Quit key.Binding
}

// defaultKeyMap returns the default key bindings.
func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(
			key.WithKeys(state.NextKeys...),
			key.WithHelp("N", "new image"),
		),
		Quit: key.NewBinding(
			key.WithKeys(state.QuitKeys...),
			key.WithHelp("Q", "quit"),
		),
	}
}
