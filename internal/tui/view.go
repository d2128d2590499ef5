package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/rcliao/helpdesk/internal/callform"
	"github.com/rcliao/helpdesk/internal/render"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("111"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	labelStyle    = lipgloss.NewStyle().Width(14).Bold(true)
	focusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	selectedStyle = lipgloss.NewStyle().Reverse(true).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	headerStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2)
)

func (m Model) View() string {
	var body string
	switch m.screen {
	case ScreenLogin:
		body = m.viewLogin()
	case ScreenTable:
		body = m.viewTable()
	case ScreenDetail:
		body = m.viewDetail()
	case ScreenForm:
		body = m.viewForm()
	case ScreenConfirm:
		body = m.viewConfirm()
	}

	var b strings.Builder
	b.WriteString(body)
	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.err.Error()))
	} else if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(noticeStyle.Render(m.notice))
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewLogin() string {
	return boxStyle.Render(titleStyle.Render("Help Desk") + "\n\n" +
		"Sign in to manage support calls.\n\n" +
		labelStyle.Render("Name") + m.login.View() + "\n\n" +
		mutedStyle.Render("enter sign in • ctrl+c quit"))
}

func (m Model) viewTable() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Support Calls"))
	b.WriteString(mutedStyle.Render("  signed in as " + m.operator))
	b.WriteString("\n")

	if m.filtering {
		b.WriteString(m.filterInput.View())
		b.WriteString("\n")
	} else if m.filter.Query != "" {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("filter: %q (/ to change, esc in filter clears)", m.filter.Query)))
		b.WriteString("\n")
	}

	page := m.Page()
	if page.Total == 0 {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Italic(true).Render(page.Summary()))
		b.WriteString("\n\n")
		b.WriteString(m.help(m.keys.New, m.keys.Filter, m.keys.Quit))
		return b.String()
	}

	headers := make([]string, len(render.Columns))
	for i, f := range render.Columns {
		headers[i] = render.Header(m.table, f)
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == m.cursor:
				return selectedStyle
			}
			return cellStyle
		})
	for _, c := range page.Rows {
		row := make([]string, len(render.Columns))
		for i, f := range render.Columns {
			row[i] = render.Cell(c, f)
		}
		t.Row(row...)
	}
	b.WriteString(t.String())
	b.WriteString("\n")

	b.WriteString(page.Summary())
	if links := render.Pagination(page.Current, page.TotalPages); links != "" {
		b.WriteString("  ")
		b.WriteString(links)
	}
	b.WriteString("\n\n")
	b.WriteString(m.help(m.keys.Sort, m.keys.NextPage, m.keys.PrevPage, m.keys.View,
		m.keys.Edit, m.keys.Delete, m.keys.New, m.keys.Filter, m.keys.Quit))
	return b.String()
}

func (m Model) viewDetail() string {
	c, ok := m.find(m.selectedID)
	if !ok {
		return mutedStyle.Render("Call not found") + "\n\n" + m.help(m.keys.Back)
	}
	return boxStyle.Render(render.Detail(c, time.Now())) + "\n" +
		m.help(m.keys.Edit, m.keys.Delete, m.keys.Back)
}

func (m Model) viewConfirm() string {
	return boxStyle.Render(fmt.Sprintf("Delete %s? This cannot be undone.", m.selectedID)) + "\n" +
		m.help(m.keys.Confirm, m.keys.Deny)
}

func (m Model) viewForm() string {
	fs := m.form
	f := fs.form

	var b strings.Builder
	if f.Editing() {
		b.WriteString(titleStyle.Render("Edit " + fs.callID))
	} else {
		b.WriteString(titleStyle.Render("New Call"))
	}
	b.WriteString("\n\n")

	errs := f.Errors()
	for i, field := range callform.Fields {
		b.WriteString(m.fieldLabel(fs, i, field.Label()))
		b.WriteString(fs.inputs[i].View())
		b.WriteString("\n")
		if msg, ok := errs[field]; ok {
			b.WriteString(labelStyle.Render(""))
			b.WriteString(errorStyle.Render(msg))
			b.WriteString("\n")
		}
	}

	b.WriteString(m.fieldLabel(fs, imageInput, "Screenshot"))
	b.WriteString(fs.inputs[imageInput].View())
	b.WriteString("\n")
	if f.Draft().IssueImage != "" {
		b.WriteString(labelStyle.Render(""))
		b.WriteString(noticeStyle.Render("attached"))
		b.WriteString(mutedStyle.Render(" (ctrl+x to remove)"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case fs.submitting():
		b.WriteString(mutedStyle.Render("Submitting..."))
		b.WriteString("\n")
	case f.FormError() != "":
		b.WriteString(errorStyle.Render(f.FormError()))
		b.WriteString("\n")
	}
	b.WriteString(m.help(m.keys.NextField, m.keys.PrevField, m.keys.Submit, m.keys.RemoveImage, m.keys.Back))
	return b.String()
}

func (m Model) fieldLabel(fs *formScreen, i int, label string) string {
	if i == fs.focus {
		return focusStyle.Inherit(labelStyle).Render("> " + label)
	}
	return labelStyle.Render("  " + label)
}

func (m Model) help(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return mutedStyle.Render(strings.Join(parts, " • "))
}
