package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	quit     key.Binding
	editMode key.Binding

	// check mode
	toggle key.Binding
	reset  key.Binding

	// edit mode
	add    key.Binding
	rename key.Binding
	remove key.Binding
	undo   key.Binding

	// prompts
	submit  key.Binding
	cancel  key.Binding
	confirm key.Binding
	deny    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		editMode: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit list")),

		toggle: key.NewBinding(key.WithKeys(" ", "x", "enter"), key.WithHelp("space", "check")),
		reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),

		add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		rename: key.NewBinding(key.WithKeys("enter", "r"), key.WithHelp("enter", "rename")),
		remove: key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		undo:   key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),

		submit:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		cancel:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		confirm: key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "reset")),
		deny:    key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "cancel")),
	}
}

func (k keyMap) checkModeKeys() []key.Binding {
	return []key.Binding{k.toggle, k.reset, k.editMode}
}

func (k keyMap) editModeKeys() []key.Binding {
	return []key.Binding{k.add, k.rename, k.remove, k.undo, k.editMode}
}
