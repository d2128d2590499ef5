package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/rcliao/helpdesk/internal/callform"
	"github.com/spf13/cobra"
)

// formFlags maps command-line flags onto call form fields.
var formFlags = []struct {
	name  string
	field callform.Field
	usage string
}{
	{"name", callform.FieldCallerName, "Caller name"},
	{"email", callform.FieldCallerEmail, "Caller email"},
	{"phone", callform.FieldCallerPhone, "Caller phone number"},
	{"description", callform.FieldIssueDescription, "Issue description"},
	{"priority", callform.FieldPriority, "Priority: low, medium, high, critical"},
	{"status", callform.FieldStatus, "Status: new, open, in-progress, on-hold, resolved, closed"},
}

func addFormFlags(cmd *cobra.Command) {
	for _, ff := range formFlags {
		cmd.Flags().String(ff.name, "", ff.usage)
	}
	cmd.Flags().StringSlice("image", nil, "Screenshot files to paste; the first image is attached")
}

// fillForm copies the flags the user set into the form and pastes any
// --image files, waiting for the encode to finish.
func fillForm(cmd *cobra.Command, f *callform.Form) error {
	for _, ff := range formFlags {
		if !cmd.Flags().Changed(ff.name) {
			continue
		}
		v, _ := cmd.Flags().GetString(ff.name)
		if err := f.SetField(ff.field, v); err != nil {
			return err
		}
	}

	paths, _ := cmd.Flags().GetStringSlice("image")
	if len(paths) == 0 {
		return nil
	}
	items := make([]callform.ClipboardItem, 0, len(paths))
	for _, p := range paths {
		it, err := callform.ItemFromFile(p)
		if err != nil {
			return err
		}
		items = append(items, it)
	}
	done, ok := f.Paste(items)
	if !ok {
		return fmt.Errorf("none of %v is an image", paths)
	}
	<-done
	return nil
}

// submitForm submits f and exits on failure. Validation errors print one
// line per field.
func submitForm(cmd *cobra.Command, f *callform.Form) {
	err := f.Submit(cmd.Context())
	if err == nil {
		return
	}

	var verr *callform.ValidationError
	if errors.As(err, &verr) {
		for _, field := range callform.Fields {
			if msg, ok := verr.Fields[field]; ok {
				fmt.Fprintf(os.Stderr, "%s: %s\n", field.Label(), msg)
			}
		}
		os.Exit(1)
	}
	if msg := f.FormError(); msg != "" {
		fmt.Fprintln(os.Stderr, msg)
	}
	exitErr("submit", err)
}
