package calltable

import (
	"fmt"

	"github.com/rcliao/helpdesk/internal/model"
)

// windowSize is the number of page links shown in the pagination bar.
const windowSize = 5

// Page is one page of the sorted view plus its pagination metadata.
type Page struct {
	Rows       []model.Call `json:"rows"`
	Current    int          `json:"currentPage"`
	TotalPages int          `json:"totalPages"`
	Total      int          `json:"totalItems"`
	PageSize   int          `json:"pageSize"`
	From       int          `json:"from"` // 1-based, 0 when Rows is empty
	To         int          `json:"to"`
}

// Empty reports whether the page has nothing to show.
func (p Page) Empty() bool {
	return len(p.Rows) == 0
}

// Summary renders the "Showing X to Y of N entries" caption.
func (p Page) Summary() string {
	if p.Total == 0 {
		return "No calls found"
	}
	if p.Empty() {
		return fmt.Sprintf("Showing 0 of %d entries", p.Total)
	}
	return fmt.Sprintf("Showing %d to %d of %d entries", p.From, p.To, p.Total)
}

// PageView sorts calls and slices out the state's current page. A page
// outside [1, TotalPages] yields no rows rather than an error.
func PageView(s State, calls []model.Call) Page {
	sorted := SortedView(s, calls)
	n := len(sorted)
	p := Page{
		Current:    s.Page,
		TotalPages: TotalPages(n),
		Total:      n,
		PageSize:   PageSize,
	}

	// Checked before multiplying so huge pages cannot overflow.
	if s.Page < 1 || s.Page > p.TotalPages {
		return p
	}
	start := (s.Page - 1) * PageSize
	end := min(s.Page*PageSize, n)

	p.Rows = sorted[start:end]
	p.From = start + 1
	p.To = end
	return p
}

// Window returns the page numbers to render as links (at most five, kept
// around current) and whether a trailing ellipsis follows them.
func Window(current, totalPages int) ([]int, bool) {
	count := min(windowSize, totalPages)
	pages := make([]int, 0, count)
	for i := 0; i < count; i++ {
		var n int
		switch {
		case totalPages <= windowSize, current <= 3:
			n = i + 1
		case current >= totalPages-2:
			n = totalPages - windowSize + 1 + i
		default:
			n = current - 2 + i
		}
		pages = append(pages, n)
	}
	return pages, totalPages > windowSize && current < totalPages-2
}
