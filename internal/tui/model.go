// Package tui implements the interactive help-desk dashboard: a mock sign
// in, the call table and the call form.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rcliao/helpdesk/internal/callform"
	"github.com/rcliao/helpdesk/internal/calltable"
	"github.com/rcliao/helpdesk/internal/model"
	"github.com/rcliao/helpdesk/internal/store"
)

var errNotImage = errors.New("file is not an image")

// Screen identifies which view has the keyboard.
type Screen int

const (
	// ScreenLogin asks for an operator name. Any non-empty name signs in.
	ScreenLogin Screen = iota
	// ScreenTable shows the sorted, paginated call table.
	ScreenTable
	// ScreenDetail shows one call.
	ScreenDetail
	// ScreenForm edits a new or existing call.
	ScreenForm
	// ScreenConfirm asks before deleting a call.
	ScreenConfirm
)

// callsLoadedMsg carries a fresh copy of the collection.
type callsLoadedMsg struct {
	calls []model.Call
	err   error
}

// mutationResultMsg is sent when an asynchronous delete completes.
type mutationResultMsg struct {
	notice string
	err    error
}

// Model is the top-level bubbletea model for the dashboard.
type Model struct {
	store  store.Store
	keys   KeyMap
	logger *slog.Logger

	width  int
	height int

	screen   Screen
	operator string
	login    textinput.Model

	calls       []model.Call
	table       calltable.State
	filter      calltable.Filter
	filterInput textinput.Model
	filtering   bool
	cursor      int // row within the current page

	selectedID string
	form       *formScreen

	notice string
	err    error
}

// Option configures a Model.
type Option func(*Model)

// WithOperator signs in as name, skipping the login screen.
func WithOperator(name string) Option {
	return func(m *Model) {
		if strings.TrimSpace(name) != "" {
			m.operator = strings.TrimSpace(name)
			m.screen = ScreenTable
		}
	}
}

// WithLogger sets the logger form submissions report to.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		m.logger = l
	}
}

// NewModel returns a dashboard over s.
func NewModel(s store.Store, opts ...Option) Model {
	login := newInput("> ")
	login.Placeholder = "your name"
	login.Focus()

	filter := newInput("/")
	filter.Placeholder = "id, name, email or description"

	m := Model{
		store:       s,
		keys:        DefaultKeyMap(),
		logger:      slog.Default(),
		screen:      ScreenLogin,
		login:       login,
		table:       calltable.NewState(),
		filterInput: filter,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init loads the collection.
func (m Model) Init() tea.Cmd {
	return m.loadCalls()
}

func (m Model) loadCalls() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		calls, err := s.List(context.Background(), store.ListParams{})
		return callsLoadedMsg{calls: calls, err: err}
	}
}

// Screen returns the active screen.
func (m Model) Screen() Screen { return m.screen }

// Table returns the call table state.
func (m Model) Table() calltable.State { return m.table }

// Page returns the page of calls currently on screen.
func (m Model) Page() calltable.Page {
	return calltable.PageView(m.table, m.filter.Apply(m.calls))
}

// Selected returns the call under the cursor.
func (m Model) Selected() (model.Call, bool) {
	p := m.Page()
	if m.cursor < 0 || m.cursor >= len(p.Rows) {
		return model.Call{}, false
	}
	return p.Rows[m.cursor], true
}

// Form returns the open call form, or nil.
func (m Model) Form() *callform.Form {
	if m.form == nil {
		return nil
	}
	return m.form.form
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case callsLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.calls = msg.calls
		m.clampCursor()
		return m, nil

	case mutationResultMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.notice = msg.notice
		return m, m.loadCalls()

	case submitResultMsg:
		return m.handleSubmitResult(msg)

	case imageStagedMsg:
		if m.form == nil || m.form.form != msg.form {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.notice = "Screenshot attached"
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		switch m.screen {
		case ScreenLogin:
			return m.handleLoginKeys(msg)
		case ScreenTable:
			if m.filtering {
				return m.handleFilterKeys(msg)
			}
			return m.handleTableKeys(msg)
		case ScreenDetail:
			return m.handleDetailKeys(msg)
		case ScreenForm:
			return m.handleFormKeys(msg)
		case ScreenConfirm:
			return m.handleConfirmKeys(msg)
		}
	}
	return m, nil
}

func (m Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		name := strings.TrimSpace(m.login.Value())
		if name == "" {
			m.err = errors.New("enter a name to sign in")
			return m, nil
		}
		m.err = nil
		m.operator = name
		m.screen = ScreenTable
		m.login.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.login, cmd = m.login.Update(msg)
	return m, cmd
}

func (m Model) handleTableKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""
	total := len(m.filter.Apply(m.calls))

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Sort):
		if i, ok := sortIndex(msg.String()); ok {
			m.table.SetSort(calltable.Fields[i])
			m.clampCursor()
		}
	case key.Matches(msg, m.keys.NextPage):
		m.table.Next(total)
		m.cursor = 0
	case key.Matches(msg, m.keys.PrevPage):
		m.table.Prev()
		m.cursor = 0
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		m.cursor++
		m.clampCursor()
	case key.Matches(msg, m.keys.View):
		return m.activate(calltable.ActionView)
	case key.Matches(msg, m.keys.Edit):
		return m.activate(calltable.ActionEdit)
	case key.Matches(msg, m.keys.Delete):
		return m.activate(calltable.ActionDelete)
	case key.Matches(msg, m.keys.New):
		m.form = newFormScreen(m.store, nil, m.logger)
		m.screen = ScreenForm
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		m.filterInput.SetValue(m.filter.Query)
		m.filterInput.Focus()
	}
	return m, nil
}

// activate routes a row intent for the selected call through the table's
// host interface.
func (m Model) activate(action calltable.Action) (tea.Model, tea.Cmd) {
	c, ok := m.Selected()
	if !ok {
		return m, nil
	}
	if err := calltable.RowActivated(&m, action, c.ID); err != nil {
		m.err = err
	}
	return m, nil
}

// ViewCall opens the detail screen for id.
func (m *Model) ViewCall(id string) {
	m.selectedID = id
	m.screen = ScreenDetail
}

// EditCall opens the form on the call with id.
func (m *Model) EditCall(id string) {
	c, ok := m.find(id)
	if !ok {
		m.err = fmt.Errorf("%w: %s", store.ErrNotFound, id)
		return
	}
	m.selectedID = id
	m.form = newFormScreen(m.store, &c, m.logger)
	m.screen = ScreenForm
}

// DeleteCall asks for confirmation before deleting id.
func (m *Model) DeleteCall(id string) {
	m.selectedID = id
	m.screen = ScreenConfirm
}

func (m Model) find(id string) (model.Call, bool) {
	for _, c := range m.calls {
		if c.ID == id {
			return c, true
		}
	}
	return model.Call{}, false
}

func (m Model) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.filter.Query = strings.TrimSpace(m.filterInput.Value())
		m.filtering = false
		m.filterInput.Blur()
		m.table.SetPage(1)
		m.cursor = 0
		return m, nil
	case tea.KeyEsc:
		m.filter.Query = ""
		m.filterInput.SetValue("")
		m.filtering = false
		m.filterInput.Blur()
		m.table.SetPage(1)
		m.cursor = 0
		return m, nil
	}
	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	return m, cmd
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), msg.Type == tea.KeyBackspace:
		m.screen = ScreenTable
	case key.Matches(msg, m.keys.Edit):
		if err := calltable.RowActivated(&m, calltable.ActionEdit, m.selectedID); err != nil {
			m.err = err
		}
	case key.Matches(msg, m.keys.Delete):
		if err := calltable.RowActivated(&m, calltable.ActionDelete, m.selectedID); err != nil {
			m.err = err
		}
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		id := m.selectedID
		s := m.store
		m.screen = ScreenTable
		return m, func() tea.Msg {
			if err := s.Rm(context.Background(), id); err != nil {
				return mutationResultMsg{err: err}
			}
			return mutationResultMsg{notice: "Deleted " + id}
		}
	case key.Matches(msg, m.keys.Deny):
		m.screen = ScreenTable
	}
	return m, nil
}

func (m Model) handleFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	fs := m.form
	switch {
	case key.Matches(msg, m.keys.Back):
		fs.form.Cancel()
		m.form = nil
		m.err = nil
		m.screen = ScreenTable
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		if fs.submitting() {
			return m, nil
		}
		m.err = nil
		res, cmd := fs.submit()
		if cmd == nil {
			return m.handleSubmitResult(res)
		}
		return m, cmd
	case key.Matches(msg, m.keys.RemoveImage):
		fs.form.RemoveImage()
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		fs.setFocus(fs.focus + 1)
		return m, nil
	case key.Matches(msg, m.keys.PrevField):
		fs.setFocus(fs.focus - 1)
		return m, nil
	case msg.Type == tea.KeyEnter:
		if fs.focus == imageInput {
			return m, fs.attach()
		}
		fs.setFocus(fs.focus + 1)
		return m, nil
	}
	return m, fs.update(msg)
}

func (m Model) handleSubmitResult(msg submitResultMsg) (tea.Model, tea.Cmd) {
	if m.form == nil || m.form.form != msg.form {
		return m, nil
	}
	m.form.pending = false
	var verr *callform.ValidationError
	switch {
	case msg.err == nil:
		if m.form.callID == "" {
			m.notice = "Call created"
		} else {
			m.notice = "Updated " + m.form.callID
		}
		m.form = nil
		m.screen = ScreenTable
		return m, m.loadCalls()
	case errors.Is(msg.err, callform.ErrSubmitInFlight):
		// The first submission is still running; its result will follow.
	case errors.As(msg.err, &verr):
		// Field messages are read from the form when rendering.
	default:
		m.err = msg.err
	}
	return m, nil
}

func (m *Model) clampCursor() {
	rows := len(m.Page().Rows)
	if m.cursor >= rows {
		m.cursor = rows - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
