// Package model defines the core help-desk call types.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Priority is the urgency of a support call.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Status is the workflow state of a support call.
type Status string

const (
	StatusNew        Status = "new"
	StatusOpen       Status = "open"
	StatusInProgress Status = "in-progress"
	StatusOnHold     Status = "on-hold"
	StatusResolved   Status = "resolved"
	StatusClosed     Status = "closed"
)

// ValidPriorities are the allowed priority levels.
var ValidPriorities = map[Priority]bool{
	PriorityLow:      true,
	PriorityMedium:   true,
	PriorityHigh:     true,
	PriorityCritical: true,
}

// ValidStatuses are the allowed call statuses. "new" and "open" both mean
// an untouched call; the form offers the former, older records use the latter.
var ValidStatuses = map[Status]bool{
	StatusNew:        true,
	StatusOpen:       true,
	StatusInProgress: true,
	StatusOnHold:     true,
	StatusResolved:   true,
	StatusClosed:     true,
}

// Defaults applied to a fresh draft.
const (
	DefaultPriority = PriorityMedium
	DefaultStatus   = StatusNew
)

// Call is a tracked support call.
type Call struct {
	ID               string    `json:"id" yaml:"id"`
	CallerName       string    `json:"callerName" yaml:"callerName"`
	CallerEmail      string    `json:"callerEmail" yaml:"callerEmail"`
	CallerPhone      string    `json:"callerPhone" yaml:"callerPhone"`
	IssueDescription string    `json:"issueDescription" yaml:"issueDescription"`
	Priority         Priority  `json:"priority" yaml:"priority"`
	Status           Status    `json:"status" yaml:"status"`
	DateCreated      time.Time `json:"dateCreated" yaml:"dateCreated"`
	IssueImage       string    `json:"issueImage,omitempty" yaml:"issueImage,omitempty"`
}

// HasImage reports whether the call carries an attached screenshot.
func (c Call) HasImage() bool {
	return c.IssueImage != ""
}

// ParsePriority converts s to a Priority, rejecting unknown values.
func ParsePriority(s string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(s)))
	if !ValidPriorities[p] {
		return "", fmt.Errorf("invalid priority %q (use low, medium, high, critical)", s)
	}
	return p, nil
}

// ParseStatus converts s to a Status, rejecting unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !ValidStatuses[st] {
		return "", fmt.Errorf("invalid status %q (use new, open, in-progress, on-hold, resolved, closed)", s)
	}
	return st, nil
}
