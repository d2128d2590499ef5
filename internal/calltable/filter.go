package calltable

import (
	"strings"

	"github.com/rcliao/helpdesk/internal/model"
)

// Filter narrows a collection before it is sorted. Zero values match everything.
type Filter struct {
	Query    string
	Status   model.Status
	Priority model.Priority
}

// IsZero reports whether the filter matches every call.
func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Query) == "" && f.Status == "" && f.Priority == ""
}

// Match reports whether c passes the filter. The query is a case-insensitive
// substring test on id, caller name, email and description.
func (f Filter) Match(c model.Call) bool {
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.Priority != "" && c.Priority != f.Priority {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	for _, v := range []string{c.ID, c.CallerName, c.CallerEmail, c.IssueDescription} {
		if strings.Contains(strings.ToLower(v), q) {
			return true
		}
	}
	return false
}

// Apply returns the calls that pass the filter, in input order. The input
// slice is returned as-is when the filter is empty.
func (f Filter) Apply(calls []model.Call) []model.Call {
	if f.IsZero() {
		return calls
	}
	var out []model.Call
	for _, c := range calls {
		if f.Match(c) {
			out = append(out, c)
		}
	}
	return out
}
