// Package render formats calls for terminal output.
package render

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/rcliao/helpdesk/internal/model"
)

// DescriptionWidth is how many characters of an issue description the call
// table shows.
const DescriptionWidth = 100

// DateLayout matches the en-US short date and time used in the call table,
// e.g. "Jun 15, 2023, 09:30 AM".
const DateLayout = "Jan 2, 2006, 03:04 PM"

// Truncate shortens text to max characters followed by "...". Text that
// already fits is returned unchanged.
func Truncate(text string, max int) string {
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	return string([]rune(text)[:max]) + "..."
}

// FormatDate formats t in the local zone using DateLayout.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(DateLayout)
}

// Age describes how long ago t was relative to now, e.g. "3 days ago".
func Age(t, now time.Time) string {
	if t.IsZero() {
		return ""
	}
	return humanize.RelTime(t, now, "ago", "from now")
}

// Label turns an enumerated value like "in-progress" into "In Progress".
func Label(s string) string {
	// A Caser is stateful, so each call gets its own.
	return cases.Title(language.English).String(strings.ReplaceAll(s, "-", " "))
}

func PriorityLabel(p model.Priority) string { return Label(string(p)) }

func StatusLabel(s model.Status) string { return Label(string(s)) }

// Badge colors follow the web dashboard: critical is destructive, high is
// the primary color, medium is secondary and low is outlined.
var (
	priorityColors = map[model.Priority]lipgloss.Color{
		model.PriorityLow:      lipgloss.Color("245"),
		model.PriorityMedium:   lipgloss.Color("111"),
		model.PriorityHigh:     lipgloss.Color("214"),
		model.PriorityCritical: lipgloss.Color("196"),
	}
	statusColors = map[model.Status]lipgloss.Color{
		model.StatusNew:        lipgloss.Color("51"),
		model.StatusOpen:       lipgloss.Color("245"),
		model.StatusInProgress: lipgloss.Color("111"),
		model.StatusOnHold:     lipgloss.Color("180"),
		model.StatusResolved:   lipgloss.Color("42"),
		model.StatusClosed:     lipgloss.Color("196"),
	}
)

// PriorityBadge renders a colored priority label.
func PriorityBadge(p model.Priority) string {
	return lipgloss.NewStyle().Foreground(priorityColors[p]).Bold(p == model.PriorityCritical).Render(PriorityLabel(p))
}

// StatusBadge renders a colored status label.
func StatusBadge(s model.Status) string {
	return lipgloss.NewStyle().Foreground(statusColors[s]).Render(StatusLabel(s))
}
