package tui

import (
	"context"
	"log/slog"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rcliao/helpdesk/internal/callform"
	"github.com/rcliao/helpdesk/internal/model"
	"github.com/rcliao/helpdesk/internal/store"
)

// submitResultMsg is sent when an asynchronous form submission returns.
type submitResultMsg struct {
	form *callform.Form
	err  error
}

// imageStagedMsg is sent once a pasted screenshot is held by the draft.
type imageStagedMsg struct {
	form *callform.Form
	err  error
}

// formScreen pairs a call form with one text input per field plus a path
// input used to paste screenshot files.
type formScreen struct {
	form   *callform.Form
	callID string // empty for a new call

	inputs []textinput.Model
	focus  int

	// pending stays set from the submit key until its result message is
	// handled, even if the handler has already returned.
	pending bool
}

// imageInput is the index of the screenshot path input.
var imageInput = len(callform.Fields)

func newFormScreen(s store.Store, existing *model.Call, logger *slog.Logger) *formScreen {
	fs := &formScreen{}

	handler := callform.HandlerFuncs{
		OnSubmit: func(ctx context.Context, d model.Draft) error {
			if existing == nil {
				_, err := s.Create(ctx, store.CreateParams{Draft: d})
				return err
			}
			_, err := s.Replace(ctx, existing.ID, d)
			return err
		},
		OnCancel: func() {
			logger.Debug("call form cancelled", "call", fs.callID)
		},
	}

	opts := []callform.Option{callform.WithLogger(logger)}
	if existing != nil {
		opts = append(opts, callform.WithInitial(*existing))
		fs.callID = existing.ID
	}
	fs.form = callform.New(handler, opts...)

	for _, f := range callform.Fields {
		ti := newInput("")
		ti.Placeholder = f.Label()
		ti.SetValue(fs.form.Value(f))
		fs.inputs = append(fs.inputs, ti)
	}
	img := newInput("")
	img.Placeholder = "path to a screenshot, enter to attach"
	fs.inputs = append(fs.inputs, img)

	fs.inputs[0].Focus()
	return fs
}

// newInput returns a text input with a steady cursor. A blinking cursor
// would schedule a timer on every keystroke.
func newInput(prompt string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

// submitting reports whether the submit control is disabled.
func (fs *formScreen) submitting() bool {
	return fs.pending || !fs.form.CanSubmit()
}

func (fs *formScreen) setFocus(i int) {
	n := len(fs.inputs)
	i = ((i % n) + n) % n
	fs.inputs[fs.focus].Blur()
	fs.focus = i
	fs.inputs[fs.focus].Focus()
}

// update feeds a key to the focused input and mirrors text fields into the
// form.
func (fs *formScreen) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	fs.inputs[fs.focus], cmd = fs.inputs[fs.focus].Update(msg)
	if fs.focus < imageInput {
		fs.form.SetField(callform.Fields[fs.focus], fs.inputs[fs.focus].Value())
	}
	return cmd
}

// submit starts the submission before returning, so a second submit key
// sees the form as Submitting. An invalid draft or a pending submission is
// reported straight away as the result.
func (fs *formScreen) submit() (submitResultMsg, tea.Cmd) {
	form := fs.form
	done, err := form.Start(context.Background())
	if err != nil {
		return submitResultMsg{form: form, err: err}, nil
	}
	fs.pending = true
	return submitResultMsg{}, func() tea.Msg {
		return submitResultMsg{form: form, err: <-done}
	}
}

// attach pastes the file named in the screenshot input.
func (fs *formScreen) attach() tea.Cmd {
	form := fs.form
	path := fs.inputs[imageInput].Value()
	if path == "" {
		return nil
	}
	fs.inputs[imageInput].SetValue("")
	return func() tea.Msg {
		it, err := callform.ItemFromFile(path)
		if err != nil {
			return imageStagedMsg{form: form, err: err}
		}
		done, ok := form.Paste([]callform.ClipboardItem{it})
		if !ok {
			return imageStagedMsg{form: form, err: errNotImage}
		}
		<-done
		return imageStagedMsg{form: form}
	}
}
