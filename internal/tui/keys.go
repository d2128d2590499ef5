package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every binding the dashboard reacts to.
type KeyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding

	// Table
	Sort     key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	Up       key.Binding
	Down     key.Binding
	View     key.Binding
	Edit     key.Binding
	Delete   key.Binding
	New      key.Binding
	Filter   key.Binding

	// Form and dialogs
	NextField   key.Binding
	PrevField   key.Binding
	Submit      key.Binding
	RemoveImage key.Binding
	Back        key.Binding
	Confirm     key.Binding
	Deny        key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),

		Sort:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8"), key.WithHelp("1-8", "sort")),
		NextPage: key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n", "next page")),
		PrevPage: key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p", "prev page")),
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		View:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "view")),
		Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		New:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "new call")),
		Filter:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),

		NextField:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		PrevField:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Submit:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "submit")),
		RemoveImage: key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "remove screenshot")),
		Back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Confirm:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		Deny:        key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "no")),
	}
}

// sortIndex maps a sort key press to its position in calltable.Fields.
func sortIndex(k string) (int, bool) {
	if len(k) != 1 || k[0] < '1' || k[0] > '8' {
		return 0, false
	}
	return int(k[0] - '1'), true
}
