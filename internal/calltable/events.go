package calltable

import (
	"errors"
	"fmt"
)

// ErrUnknownAction is returned by RowActivated for an action it cannot route.
var ErrUnknownAction = errors.New("unknown row action")

// Action is what the user asked to do with a row.
type Action string

const (
	ActionView   Action = "view"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

// Host receives row intents. The table never navigates or mutates records
// itself; the host decides what view, edit and delete mean.
type Host interface {
	ViewCall(id string)
	EditCall(id string)
	DeleteCall(id string)
}

// HostFuncs adapts plain functions to Host. Nil funcs are skipped.
type HostFuncs struct {
	OnView   func(id string)
	OnEdit   func(id string)
	OnDelete func(id string)
}

func (h HostFuncs) ViewCall(id string) {
	if h.OnView != nil {
		h.OnView(id)
	}
}

func (h HostFuncs) EditCall(id string) {
	if h.OnEdit != nil {
		h.OnEdit(id)
	}
}

func (h HostFuncs) DeleteCall(id string) {
	if h.OnDelete != nil {
		h.OnDelete(id)
	}
}

// RowActivated signals a single intent for the row with the given id.
// A plain row click is ActionView.
func RowActivated(h Host, action Action, id string) error {
	switch action {
	case ActionView, "":
		h.ViewCall(id)
	case ActionEdit:
		h.EditCall(id)
	case ActionDelete:
		h.DeleteCall(id)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	return nil
}
