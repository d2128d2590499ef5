package render

import (
	"strings"
	"testing"
	"time"

	"github.com/rcliao/helpdesk/internal/calltable"
	"github.com/rcliao/helpdesk/internal/model"
)

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", 150)
	got := Truncate(long, 100)
	if got != strings.Repeat("a", 100)+"..." {
		t.Errorf("expected 100 chars plus ellipsis, got %d chars", len(got))
	}

	exact := strings.Repeat("b", 100)
	if Truncate(exact, 100) != exact {
		t.Error("expected text at the limit to be unchanged")
	}

	if got := Truncate("héllo wörld", 5); got != "héllo..." {
		t.Errorf("expected rune-aware truncation, got %q", got)
	}
}

func TestLabel(t *testing.T) {
	tests := map[string]string{
		"in-progress": "In Progress",
		"on-hold":     "On Hold",
		"critical":    "Critical",
		"new":         "New",
	}
	for in, want := range tests {
		if got := Label(in); got != want {
			t.Errorf("Label(%q): expected %q, got %q", in, want, got)
		}
	}
	if got := StatusLabel(model.StatusInProgress); got != "In Progress" {
		t.Errorf("expected In Progress, got %q", got)
	}
	if got := PriorityLabel(model.PriorityHigh); got != "High" {
		t.Errorf("expected High, got %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2023, 6, 15, 14, 5, 0, 0, time.Local)
	if got := FormatDate(d); got != "Jun 15, 2023, 02:05 PM" {
		t.Errorf("expected en-US date, got %q", got)
	}
	if FormatDate(time.Time{}) != "" {
		t.Error("expected empty string for zero time")
	}
}

func TestAge(t *testing.T) {
	now := time.Date(2023, 6, 18, 9, 30, 0, 0, time.UTC)
	got := Age(now.Add(-72*time.Hour), now)
	if got != "3 days ago" {
		t.Errorf("expected 3 days ago, got %q", got)
	}
}

func TestHeader(t *testing.T) {
	s := calltable.NewState()
	if got := Header(s, calltable.FieldDateCreated); got != "Date Created ▼" {
		t.Errorf("expected descending marker, got %q", got)
	}
	s.SetSort(calltable.FieldID)
	if got := Header(s, calltable.FieldID); got != "ID ▲" {
		t.Errorf("expected ascending marker, got %q", got)
	}
	if got := Header(s, calltable.FieldStatus); got != "Status" {
		t.Errorf("expected unmarked header, got %q", got)
	}
}

func TestPagination(t *testing.T) {
	tests := []struct {
		current, total int
		want           string
	}{
		{1, 1, ""},
		{1, 2, "[1] 2 ›"},
		{2, 2, "‹ 1 [2]"},
		{1, 8, "[1] 2 3 4 5 … ›"},
		{5, 8, "‹ 3 4 [5] 6 7 … ›"},
		{8, 8, "‹ 4 5 6 7 [8]"},
	}
	for _, tt := range tests {
		if got := Pagination(tt.current, tt.total); got != tt.want {
			t.Errorf("Pagination(%d, %d): expected %q, got %q", tt.current, tt.total, tt.want, got)
		}
	}
}

func TestTable(t *testing.T) {
	calls := []model.Call{
		{ID: "CALL-001", CallerName: "John Smith", IssueDescription: strings.Repeat("x", 120),
			Priority: model.PriorityHigh, Status: model.StatusOpen,
			DateCreated: time.Date(2023, 6, 15, 9, 30, 0, 0, time.UTC)},
		{ID: "CALL-002", CallerName: "Sarah Johnson", IssueDescription: "Printer offline",
			Priority: model.PriorityMedium, Status: model.StatusInProgress,
			DateCreated: time.Date(2023, 6, 14, 14, 45, 0, 0, time.UTC)},
	}
	s := calltable.NewState()
	out := Table(s, calltable.PageView(s, calls))

	for _, want := range []string{"CALL-001", "Sarah Johnson", "In Progress", "Date Created ▼",
		strings.Repeat("x", 100) + "...", "Showing 1 to 2 of 2 entries"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, strings.Repeat("x", 101)) {
		t.Error("expected description to be truncated")
	}

	empty := Table(s, calltable.PageView(s, nil))
	if strings.TrimSpace(empty) != "No calls found" {
		t.Errorf("expected empty table message, got %q", empty)
	}
}

func TestDetail(t *testing.T) {
	c := model.Call{
		ID: "CALL-003", CallerName: "Michael Brown", CallerEmail: "m@b.com",
		IssueDescription: "New employee setup", Priority: model.PriorityLow, Status: model.StatusOpen,
		DateCreated: time.Date(2023, 6, 14, 11, 20, 0, 0, time.UTC),
		IssueImage:  "data:image/png;base64,iVBORw==",
	}
	out := Detail(c, c.DateCreated.Add(2*time.Hour))
	for _, want := range []string{"CALL-003", "Michael Brown", "m@b.com", "2 hours ago", "Image:   attached", "New employee setup"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected detail to contain %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Phone:") {
		t.Error("expected empty phone to be omitted")
	}
}
