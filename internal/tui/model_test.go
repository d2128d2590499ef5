package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rcliao/helpdesk/internal/callform"
	"github.com/rcliao/helpdesk/internal/calltable"
	"github.com/rcliao/helpdesk/internal/model"
	"github.com/rcliao/helpdesk/internal/store"
)

func newTestModel(t *testing.T, opts ...Option) (Model, *store.SQLiteStore) {
	t.Helper()
	s, err := store.Seed(context.Background(), "")
	if err != nil {
		t.Fatalf("seed store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	m := NewModel(s, opts...)
	return send(t, m, m.Init()()), s
}

func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// press sends a key and runs the command it returns, feeding the result
// back into the model.
func press(t *testing.T, m Model, k string) Model {
	t.Helper()
	next, cmd := m.Update(keyMsg(k))
	m = next.(Model)
	for cmd != nil {
		msg := cmd()
		switch msg.(type) {
		case callsLoadedMsg, mutationResultMsg, submitResultMsg, imageStagedMsg:
		default:
			return m
		}
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+x":
		return tea.KeyMsg{Type: tea.KeyCtrlX}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m = press(t, m, string(r))
	}
	return m
}

func TestLoginRequiresName(t *testing.T) {
	m, _ := newTestModel(t)
	if m.Screen() != ScreenLogin {
		t.Fatalf("expected login screen, got %v", m.Screen())
	}

	m = press(t, m, "enter")
	if m.Screen() != ScreenLogin || m.err == nil {
		t.Error("expected empty name to be rejected")
	}

	m = typeText(t, m, "Dana")
	m = press(t, m, "enter")
	if m.Screen() != ScreenTable {
		t.Fatalf("expected table screen, got %v", m.Screen())
	}
	if !strings.Contains(m.View(), "signed in as Dana") {
		t.Error("expected operator name in header")
	}
}

func TestTableSortAndPaging(t *testing.T) {
	m, _ := newTestModel(t, WithOperator("Dana"))

	p := m.Page()
	if p.Total != 12 || len(p.Rows) != 10 || p.Rows[0].ID != "CALL-012" {
		t.Fatalf("unexpected first page: total=%d rows=%d", p.Total, len(p.Rows))
	}

	m = press(t, m, "1") // id ascending
	if s := m.Table(); s.Field != calltable.FieldID || s.Direction != calltable.Asc {
		t.Fatalf("expected id asc, got %+v", s)
	}
	if m.Page().Rows[0].ID != "CALL-001" {
		t.Errorf("expected CALL-001 first, got %s", m.Page().Rows[0].ID)
	}

	m = press(t, m, "n")
	p = m.Page()
	if p.Current != 2 || len(p.Rows) != 2 || p.Rows[0].ID != "CALL-011" {
		t.Errorf("unexpected second page %+v", p)
	}
	m = press(t, m, "n")
	if m.Table().Page != 2 {
		t.Errorf("expected next to stop at last page, got %d", m.Table().Page)
	}

	m = press(t, m, "1") // toggle to desc, page unchanged
	if s := m.Table(); s.Direction != calltable.Desc || s.Page != 2 {
		t.Errorf("expected id desc on page 2, got %+v", s)
	}

	m = press(t, m, "p")
	m = press(t, m, "p")
	if m.Table().Page != 1 {
		t.Errorf("expected prev to stop at first page, got %d", m.Table().Page)
	}
}

func TestSelectAndView(t *testing.T) {
	m, _ := newTestModel(t, WithOperator("Dana"))

	m = press(t, m, "j")
	m = press(t, m, "j")
	m = press(t, m, "k")
	c, ok := m.Selected()
	if !ok || c.ID != m.Page().Rows[1].ID {
		t.Fatalf("expected second row selected, got %v", c.ID)
	}

	m = press(t, m, "enter")
	if m.Screen() != ScreenDetail || m.selectedID != c.ID {
		t.Fatalf("expected detail of %s, got screen %v", c.ID, m.Screen())
	}
	if !strings.Contains(m.View(), c.CallerName) {
		t.Error("expected caller name in detail view")
	}

	m = press(t, m, "esc")
	if m.Screen() != ScreenTable {
		t.Errorf("expected table screen, got %v", m.Screen())
	}
}

func TestDetailEditMissingCall(t *testing.T) {
	m, _ := newTestModel(t, WithOperator("Dana"))
	c, _ := m.Selected()
	m = press(t, m, "enter")

	// The call disappears from the loaded list while its detail is open.
	var rest []model.Call
	for _, other := range m.calls {
		if other.ID != c.ID {
			rest = append(rest, other)
		}
	}
	m.calls = rest

	m = press(t, m, "e")
	if m.Screen() != ScreenDetail {
		t.Errorf("expected to stay on detail, got %v", m.Screen())
	}
	if !errors.Is(m.err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", m.err)
	}
}

func TestFilter(t *testing.T) {
	m, _ := newTestModel(t, WithOperator("Dana"))

	m = press(t, m, "/")
	m = typeText(t, m, "calendar")
	m = press(t, m, "enter")
	if p := m.Page(); p.Total != 2 {
		t.Fatalf("expected 2 filtered calls, got %d", p.Total)
	}

	m = press(t, m, "/")
	m = press(t, m, "esc")
	if p := m.Page(); p.Total != 12 {
		t.Errorf("expected filter cleared, got %d", p.Total)
	}
}

func TestDeleteConfirm(t *testing.T) {
	m, s := newTestModel(t, WithOperator("Dana"))
	target, _ := m.Selected()

	m = press(t, m, "d")
	if m.Screen() != ScreenConfirm {
		t.Fatalf("expected confirm screen, got %v", m.Screen())
	}
	m = press(t, m, "n")
	if m.Screen() != ScreenTable || m.Page().Total != 12 {
		t.Fatal("expected deny to keep the call")
	}

	m = press(t, m, "d")
	m = press(t, m, "y")
	if m.Page().Total != 11 {
		t.Errorf("expected 11 calls after delete, got %d", m.Page().Total)
	}
	if _, err := s.Get(context.Background(), target.ID); err == nil {
		t.Errorf("expected %s to be deleted", target.ID)
	}
	if m.notice != "Deleted "+target.ID {
		t.Errorf("unexpected notice %q", m.notice)
	}
}

func TestNewCallForm(t *testing.T) {
	m, s := newTestModel(t, WithOperator("Dana"))

	m = press(t, m, "c")
	if m.Screen() != ScreenForm || m.Form().Editing() {
		t.Fatalf("expected new call form, got %v", m.Screen())
	}

	// Submitting the empty form reports field errors and stays put.
	m = press(t, m, "ctrl+s")
	if m.Screen() != ScreenForm {
		t.Fatal("expected invalid submit to stay on the form")
	}
	if errs := m.Form().Errors(); errs[callform.FieldCallerName] != "Caller name is required" {
		t.Errorf("unexpected errors %v", errs)
	}
	if !strings.Contains(m.View(), "Caller name is required") {
		t.Error("expected field error in view")
	}

	m = typeText(t, m, "Al")
	m = press(t, m, "tab")
	m = typeText(t, m, "a@b.com")
	m = press(t, m, "tab")
	m = typeText(t, m, "1234567890")
	m = press(t, m, "tab")
	m = typeText(t, m, "printer is broken today")
	if errs := m.Form().Errors(); errs != nil {
		t.Errorf("expected errors to clear as fields are fixed, got %v", errs)
	}

	m = press(t, m, "ctrl+s")
	if m.Screen() != ScreenTable || m.notice != "Call created" {
		t.Fatalf("expected table with notice, got screen %v notice %q", m.Screen(), m.notice)
	}
	if m.Page().Total != 13 {
		t.Errorf("expected 13 calls, got %d", m.Page().Total)
	}

	calls, _ := s.Search(context.Background(), store.SearchParams{Query: "printer broken"})
	if len(calls) != 1 || calls[0].Priority != model.PriorityMedium || calls[0].Status != model.StatusNew {
		t.Errorf("unexpected stored call %+v", calls)
	}
}

func TestDoubleSubmitStoresOneCall(t *testing.T) {
	m, s := newTestModel(t, WithOperator("Dana"))

	m = press(t, m, "c")
	m = typeText(t, m, "Al")
	m = press(t, m, "tab")
	m = typeText(t, m, "a@b.com")
	m = press(t, m, "tab")
	m = typeText(t, m, "1234567890")
	m = press(t, m, "tab")
	m = typeText(t, m, "printer is broken today")

	next, first := m.Update(keyMsg("ctrl+s"))
	m = next.(Model)
	if !m.form.submitting() || !strings.Contains(m.View(), "Submitting...") {
		t.Error("expected submit to be disabled after the first press")
	}
	next, second := m.Update(keyMsg("ctrl+s"))
	m = next.(Model)
	if first == nil {
		t.Fatal("expected the first press to start a submission")
	}
	if second != nil {
		t.Error("expected the second press to be ignored")
	}

	m = send(t, m, first())
	if m.Screen() != ScreenTable {
		t.Fatalf("expected table screen, got %v", m.Screen())
	}
	calls, err := s.List(context.Background(), store.ListParams{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(calls) != 13 {
		t.Errorf("expected 13 calls after one submit, got %d", len(calls))
	}
}

func TestEditCallForm(t *testing.T) {
	m, s := newTestModel(t, WithOperator("Dana"))
	target, _ := m.Selected()

	m = press(t, m, "e")
	if m.Screen() != ScreenForm || !m.Form().Editing() {
		t.Fatalf("expected edit form, got %v", m.Screen())
	}
	if m.Form().Value(callform.FieldCallerName) != target.CallerName {
		t.Error("expected form to be prefilled")
	}

	// Move to status and append text.
	for range 5 {
		m = press(t, m, "tab")
	}
	m = typeText(t, m, "-x")
	m = press(t, m, "ctrl+s")
	if m.Screen() != ScreenForm || m.Form().FormError() != callform.SubmitFailedMessage {
		t.Fatalf("expected unknown status to fail in the store, screen %v", m.Screen())
	}
	if m.Form().State() != callform.StateErrored {
		t.Errorf("expected errored form, got %v", m.Form().State())
	}

	m = press(t, m, "backspace")
	m = press(t, m, "backspace")
	m = press(t, m, "ctrl+s")
	if m.Screen() != ScreenTable || m.notice != "Updated "+target.ID {
		t.Fatalf("expected retry to succeed, screen %v notice %q", m.Screen(), m.notice)
	}
	got, _ := s.Get(context.Background(), target.ID)
	if got.Status != target.Status {
		t.Errorf("expected status %s, got %s", target.Status, got.Status)
	}
}

func TestFormCancel(t *testing.T) {
	m, _ := newTestModel(t, WithOperator("Dana"))

	m = press(t, m, "c")
	m = typeText(t, m, "Someone")
	m = press(t, m, "esc")
	if m.Screen() != ScreenTable || m.Form() != nil {
		t.Fatal("expected cancel to close the form")
	}
	if m.Page().Total != 12 {
		t.Error("expected nothing to be created")
	}
}

func TestFormAttachScreenshot(t *testing.T) {
	m, _ := newTestModel(t, WithOperator("Dana"))

	dir := t.TempDir()
	png := filepath.Join(dir, "shot.png")
	os.WriteFile(png, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), 0o644)
	txt := filepath.Join(dir, "notes.txt")
	os.WriteFile(txt, []byte("just text"), 0o644)

	m = press(t, m, "c")
	m = press(t, m, "shift+tab") // wraps to the screenshot input

	m = typeText(t, m, txt)
	m = press(t, m, "enter")
	if m.err == nil || m.Form().Draft().IssueImage != "" {
		t.Fatal("expected non-image file to be rejected")
	}

	m = typeText(t, m, png)
	m = press(t, m, "enter")
	if !strings.HasPrefix(m.Form().Draft().IssueImage, "data:image/png;base64,") {
		t.Fatalf("expected png data uri, got %q", m.Form().Draft().IssueImage)
	}
	if !strings.Contains(m.View(), "attached") {
		t.Error("expected attached marker in view")
	}

	m = press(t, m, "ctrl+x")
	if m.Form().Draft().IssueImage != "" {
		t.Error("expected ctrl+x to remove the screenshot")
	}
}

func TestEmptyTable(t *testing.T) {
	m, _ := newTestModel(t, WithOperator("Dana"))

	m = press(t, m, "/")
	m = typeText(t, m, "no such thing")
	m = press(t, m, "enter")
	if !strings.Contains(m.View(), "No calls found") {
		t.Error("expected empty state message")
	}

	// Row actions do nothing without a selection.
	m = press(t, m, "enter")
	if m.Screen() != ScreenTable {
		t.Errorf("expected to stay on table, got %v", m.Screen())
	}
}
