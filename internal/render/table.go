package render

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rcliao/helpdesk/internal/calltable"
	"github.com/rcliao/helpdesk/internal/model"
)

// Headers names every sortable column.
var Headers = map[calltable.Field]string{
	calltable.FieldID:               "ID",
	calltable.FieldCallerName:       "Caller Name",
	calltable.FieldCallerEmail:      "Email",
	calltable.FieldCallerPhone:      "Phone",
	calltable.FieldIssueDescription: "Issue Description",
	calltable.FieldPriority:         "Priority",
	calltable.FieldStatus:           "Status",
	calltable.FieldDateCreated:      "Date Created",
}

// Columns are the fields shown in the call table, in order.
var Columns = []calltable.Field{
	calltable.FieldID,
	calltable.FieldCallerName,
	calltable.FieldIssueDescription,
	calltable.FieldPriority,
	calltable.FieldStatus,
	calltable.FieldDateCreated,
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Header returns the column title for f, marked with an arrow when the
// table is sorted by it.
func Header(s calltable.State, f calltable.Field) string {
	h := Headers[f]
	if s.Field != f {
		return h
	}
	if s.Direction == calltable.Asc {
		return h + " ▲"
	}
	return h + " ▼"
}

// Cell formats one column of a call for the table.
func Cell(c model.Call, f calltable.Field) string {
	switch f {
	case calltable.FieldID:
		return c.ID
	case calltable.FieldCallerName:
		return c.CallerName
	case calltable.FieldCallerEmail:
		return c.CallerEmail
	case calltable.FieldCallerPhone:
		return c.CallerPhone
	case calltable.FieldIssueDescription:
		return Truncate(c.IssueDescription, DescriptionWidth)
	case calltable.FieldPriority:
		return PriorityBadge(c.Priority)
	case calltable.FieldStatus:
		return StatusBadge(c.Status)
	case calltable.FieldDateCreated:
		return FormatDate(c.DateCreated)
	}
	return ""
}

// Table renders a page of calls with its sort markers, summary and page
// links.
func Table(s calltable.State, p calltable.Page) string {
	headers := make([]string, len(Columns))
	for i, f := range Columns {
		headers[i] = Header(s, f)
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, c := range p.Rows {
		row := make([]string, len(Columns))
		for i, f := range Columns {
			row[i] = Cell(c, f)
		}
		t.Row(row...)
	}

	var b strings.Builder
	if p.Total == 0 {
		b.WriteString(p.Summary())
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(t.String())
	b.WriteString("\n")
	b.WriteString(p.Summary())
	if links := Pagination(p.Current, p.TotalPages); links != "" {
		b.WriteString("  ")
		b.WriteString(links)
	}
	b.WriteString("\n")
	return b.String()
}

// Pagination renders the page links, e.g. "‹ [1] 2 3 4 5 … ›". The
// arrows are omitted when there is no previous or next page.
func Pagination(current, totalPages int) string {
	if totalPages <= 1 {
		return ""
	}
	pages, more := calltable.Window(current, totalPages)

	parts := make([]string, 0, len(pages)+3)
	if current > 1 {
		parts = append(parts, "‹")
	}
	for _, n := range pages {
		if n == current {
			parts = append(parts, "["+strconv.Itoa(n)+"]")
		} else {
			parts = append(parts, strconv.Itoa(n))
		}
	}
	if more {
		parts = append(parts, "…")
	}
	if current < totalPages {
		parts = append(parts, "›")
	}
	return strings.Join(parts, " ")
}

// Detail renders every field of a single call.
func Detail(c model.Call, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  %s\n", c.ID, PriorityBadge(c.Priority), StatusBadge(c.Status))
	fmt.Fprintf(&b, "Caller:  %s\n", c.CallerName)
	if c.CallerEmail != "" {
		fmt.Fprintf(&b, "Email:   %s\n", c.CallerEmail)
	}
	if c.CallerPhone != "" {
		fmt.Fprintf(&b, "Phone:   %s\n", c.CallerPhone)
	}
	fmt.Fprintf(&b, "Created: %s (%s)\n", FormatDate(c.DateCreated), Age(c.DateCreated, now))
	if c.HasImage() {
		b.WriteString("Image:   attached\n")
	}
	b.WriteString("\n")
	b.WriteString(c.IssueDescription)
	b.WriteString("\n")
	return b.String()
}

// Counts renders a count map as "label: n" lines in key order.
func Counts(title string, counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(title)
	b.WriteString(":\n")
	for _, k := range keys {
		fmt.Fprintf(&b, "  %-12s %d\n", Label(k), counts[k])
	}
	return b.String()
}
