// Package calltable derives the sorted, filtered and paginated view of a call
// collection. All state lives in a State value owned by the caller; nothing in
// this package mutates the collection it is given.
package calltable

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rcliao/helpdesk/internal/model"
)

// PageSize is the number of rows shown per page.
const PageSize = 10

// Field is a sortable call attribute.
type Field string

const (
	FieldID               Field = "id"
	FieldCallerName       Field = "callerName"
	FieldCallerEmail      Field = "callerEmail"
	FieldCallerPhone      Field = "callerPhone"
	FieldIssueDescription Field = "issueDescription"
	FieldPriority         Field = "priority"
	FieldStatus           Field = "status"
	FieldDateCreated      Field = "dateCreated"
)

// Fields lists the sortable fields in column order.
var Fields = []Field{
	FieldID,
	FieldCallerName,
	FieldCallerEmail,
	FieldCallerPhone,
	FieldIssueDescription,
	FieldPriority,
	FieldStatus,
	FieldDateCreated,
}

var fieldAliases = map[string]Field{
	"name":        FieldCallerName,
	"caller":      FieldCallerName,
	"email":       FieldCallerEmail,
	"phone":       FieldCallerPhone,
	"description": FieldIssueDescription,
	"issue":       FieldIssueDescription,
	"date":        FieldDateCreated,
	"created":     FieldDateCreated,
}

// ParseField resolves a field name or short alias, case-insensitively.
func ParseField(s string) (Field, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, f := range Fields {
		if strings.ToLower(string(f)) == name {
			return f, nil
		}
	}
	if f, ok := fieldAliases[name]; ok {
		return f, nil
	}
	return "", fmt.Errorf("unknown sort field %q", s)
}

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ParseDirection accepts "asc" or "desc".
func ParseDirection(s string) (Direction, error) {
	switch Direction(strings.ToLower(strings.TrimSpace(s))) {
	case Asc:
		return Asc, nil
	case Desc:
		return Desc, nil
	}
	return "", fmt.Errorf("unknown sort direction %q (use asc or desc)", s)
}

// State is the sort and pagination state of one table.
type State struct {
	Field     Field
	Direction Direction
	Page      int // 1-based
}

// NewState returns the initial table state: newest calls first, page 1.
func NewState() State {
	return State{Field: FieldDateCreated, Direction: Desc, Page: 1}
}

// SetSort toggles the direction when field is already active, otherwise
// switches to field ascending. The current page is left alone, so callers
// must cope with an empty page after a sort change.
func (s *State) SetSort(field Field) {
	if field == s.Field {
		if s.Direction == Asc {
			s.Direction = Desc
		} else {
			s.Direction = Asc
		}
		return
	}
	s.Field = field
	s.Direction = Asc
}

// SetPage sets the current page without any bounds check.
func (s *State) SetPage(n int) {
	s.Page = n
}

// CanPrev reports whether the previous-page control is enabled.
func (s State) CanPrev() bool {
	return s.Page > 1
}

// CanNext reports whether the next-page control is enabled for a collection
// of total calls.
func (s State) CanNext(total int) bool {
	return s.Page < TotalPages(total)
}

// Prev moves one page back, stopping at the first page.
func (s *State) Prev() {
	if s.Page <= 1 {
		s.Page = 1
		return
	}
	s.Page--
}

// Next moves one page forward, stopping at the last page.
func (s *State) Next(total int) {
	last := max(1, TotalPages(total))
	if s.Page >= last {
		s.Page = last
		return
	}
	s.Page = max(1, s.Page+1)
}

// TotalPages returns ceil(n / PageSize).
func TotalPages(n int) int {
	return (n + PageSize - 1) / PageSize
}

// SortedView returns a stably sorted copy of calls ordered by the state's
// field and direction. Priority and status compare on their raw labels, so
// they sort alphabetically rather than by severity or workflow order.
func SortedView(s State, calls []model.Call) []model.Call {
	out := slices.Clone(calls)
	cmp := comparator(s.Field)
	slices.SortStableFunc(out, func(a, b model.Call) int {
		if s.Direction == Desc {
			return cmp(b, a)
		}
		return cmp(a, b)
	})
	return out
}

func comparator(f Field) func(a, b model.Call) int {
	switch f {
	case FieldCallerName:
		return func(a, b model.Call) int { return strings.Compare(a.CallerName, b.CallerName) }
	case FieldCallerEmail:
		return func(a, b model.Call) int { return strings.Compare(a.CallerEmail, b.CallerEmail) }
	case FieldCallerPhone:
		return func(a, b model.Call) int { return strings.Compare(a.CallerPhone, b.CallerPhone) }
	case FieldIssueDescription:
		return func(a, b model.Call) int { return strings.Compare(a.IssueDescription, b.IssueDescription) }
	case FieldPriority:
		return func(a, b model.Call) int { return strings.Compare(string(a.Priority), string(b.Priority)) }
	case FieldStatus:
		return func(a, b model.Call) int { return strings.Compare(string(a.Status), string(b.Status)) }
	case FieldDateCreated:
		return func(a, b model.Call) int { return a.DateCreated.Compare(b.DateCreated) }
	default:
		return func(a, b model.Call) int { return strings.Compare(a.ID, b.ID) }
	}
}
