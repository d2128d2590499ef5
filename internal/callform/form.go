// Package callform holds the state of one call create/edit form: the draft,
// its validation errors, the staged screenshot and the submission state.
package callform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/rcliao/helpdesk/internal/model"
)

// SubmitFailedMessage is the form-level message shown after a failed submission.
const SubmitFailedMessage = "An error occurred while submitting the form. Please try again."

var (
	// ErrSubmitInFlight is returned when Submit is called while a previous
	// submission is still pending. The handler is not invoked.
	ErrSubmitInFlight = errors.New("submission already in progress")
	// ErrSubmitFailed wraps the handler's error after a failed submission.
	ErrSubmitFailed = errors.New("submission failed")
	// ErrUnknownField is returned by SetField for a name it does not edit.
	ErrUnknownField = errors.New("unknown form field")
)

// State is the submission state of a form.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateErrored
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateErrored:
		return "errored"
	}
	return "unknown"
}

// Handler is the host side of a form.
type Handler interface {
	// Submit receives a validated copy of the draft.
	Submit(ctx context.Context, d model.Draft) error
	Cancel()
}

// HandlerFuncs adapts plain functions to Handler. Nil funcs are no-ops.
type HandlerFuncs struct {
	OnSubmit func(ctx context.Context, d model.Draft) error
	OnCancel func()
}

func (h HandlerFuncs) Submit(ctx context.Context, d model.Draft) error {
	if h.OnSubmit == nil {
		return nil
	}
	return h.OnSubmit(ctx, d)
}

func (h HandlerFuncs) Cancel() {
	if h.OnCancel != nil {
		h.OnCancel()
	}
}

// Form is a call draft plus its validation and submission state. Methods
// are safe to call from the host's event loop while an image decode or a
// submission runs on another goroutine.
type Form struct {
	mu      sync.Mutex
	handler Handler
	logger  *slog.Logger
	editing bool

	initial model.Draft
	draft   model.Draft
	errs    FieldErrors
	formErr string
	state   State
}

// Option configures a Form.
type Option func(*Form)

// WithInitial preloads the form with an existing call and marks it as an edit.
func WithInitial(c model.Call) Option {
	return func(f *Form) {
		f.initial = model.DraftFromCall(c)
		f.editing = true
	}
}

// WithDraft preloads the form with arbitrary starting values.
func WithDraft(d model.Draft) Option {
	return func(f *Form) {
		f.initial = d
	}
}

// WithLogger sets the logger submission failures are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(f *Form) {
		f.logger = l
	}
}

// New returns an idle form with the default draft.
func New(h Handler, opts ...Option) *Form {
	f := &Form{
		handler: h,
		logger:  slog.Default(),
		initial: model.DefaultDraft(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.draft = f.initial
	return f
}

// Editing reports whether the form edits an existing call.
func (f *Form) Editing() bool {
	return f.editing
}

// Draft returns a copy of the current draft.
func (f *Form) Draft() model.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Errors returns a copy of the field errors from the last submit attempt.
func (f *Form) Errors() FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.errs) == 0 {
		return nil
	}
	out := make(FieldErrors, len(f.errs))
	for k, v := range f.errs {
		out[k] = v
	}
	return out
}

// FormError returns the form-level error message, empty unless errored.
func (f *Form) FormError() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.formErr
}

// State returns the submission state.
func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// CanSubmit reports whether the submit control is enabled.
func (f *Form) CanSubmit() bool {
	return f.State() != StateSubmitting
}

// Value returns the current value of a text field.
func (f *Form) Value(field Field) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p := fieldPtr(&f.draft, field); p != nil {
		return *p
	}
	return ""
}

// SetField sets one text field. Once a submit attempt has reported errors,
// every change re-validates the draft so fixed fields drop their message.
func (f *Form) SetField(field Field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := fieldPtr(&f.draft, field)
	if p == nil {
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	*p = value
	f.revalidate()
	return nil
}

// Update applies fn to the draft.
func (f *Form) Update(fn func(d *model.Draft)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.draft)
	f.revalidate()
}

func (f *Form) revalidate() {
	if f.errs != nil {
		f.errs = Validate(f.draft)
	}
}

func fieldPtr(d *model.Draft, field Field) *string {
	switch field {
	case FieldCallerName:
		return &d.CallerName
	case FieldCallerEmail:
		return &d.CallerEmail
	case FieldCallerPhone:
		return &d.CallerPhone
	case FieldIssueDescription:
		return &d.IssueDescription
	case FieldPriority:
		return &d.Priority
	case FieldStatus:
		return &d.Status
	}
	return nil
}

// Submit validates the draft and, when it passes, hands a copy to the
// handler. Only one submission runs at a time; a call made while one is
// pending returns ErrSubmitInFlight. Invalid drafts return a
// *ValidationError and leave the submission state as it was. A failing
// handler moves the form to StateErrored with the draft untouched.
func (f *Form) Submit(ctx context.Context) error {
	done, err := f.Start(ctx)
	if err != nil {
		return err
	}
	return <-done
}

// Start is Submit without the wait. The form is StateSubmitting by the
// time Start returns, so the submit control is already disabled; the
// handler's result arrives on the returned channel.
func (f *Form) Start(ctx context.Context) (<-chan error, error) {
	f.mu.Lock()
	if f.state == StateSubmitting {
		f.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	d := f.draft
	if errs := Validate(d); errs != nil {
		f.errs = errs
		f.mu.Unlock()
		return nil, &ValidationError{Fields: errs}
	}
	f.errs = nil
	f.formErr = ""
	f.state = StateSubmitting
	f.mu.Unlock()

	done := make(chan error, 1)
	go func() {
		done <- f.finish(ctx, d)
	}()
	return done, nil
}

func (f *Form) finish(ctx context.Context, d model.Draft) error {
	attempt := uuid.NewString()
	f.logger.DebugContext(ctx, "submitting call form", "attempt", attempt, "editing", f.editing)
	err := f.invoke(ctx, d)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = StateErrored
		f.formErr = SubmitFailedMessage
		f.logger.ErrorContext(ctx, "call form submit failed", "attempt", attempt, "err", err)
		return fmt.Errorf("%w: %w", ErrSubmitFailed, err)
	}
	f.state = StateIdle
	return nil
}

func (f *Form) invoke(ctx context.Context, d model.Draft) (err error) {
	if f.handler == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("submit handler panic: %v", r)
		}
	}()
	return f.handler.Submit(ctx, d)
}

// Cancel tells the host the user abandoned the form.
func (f *Form) Cancel() {
	if f.handler != nil {
		f.handler.Cancel()
	}
}

// Reset restores the initial draft and clears all errors. A pending
// submission keeps its state.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = f.initial
	f.errs = nil
	f.formErr = ""
	if f.state == StateErrored {
		f.state = StateIdle
	}
}
