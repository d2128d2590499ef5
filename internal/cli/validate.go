package cli

import (
	"fmt"
	"os"

	"github.com/rcliao/helpdesk/internal/callform"
	"github.com/rcliao/helpdesk/internal/model"
	"github.com/rcliao/helpdesk/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a seed file against the call form rules",
		Long:  "Load a YAML or JSON seed file and run every call through the call form's validation.",
		Args:  cobra.ExactArgs(1),
		Run:   runValidate,
	}

	RootCmd.AddCommand(cmd)
}

type invalidCall struct {
	ID     string               `json:"id"`
	Errors callform.FieldErrors `json:"errors"`
}

func runValidate(cmd *cobra.Command, args []string) {
	calls, err := store.LoadCalls(args[0])
	if err != nil {
		exitErr("validate", err)
	}

	invalid := checkCalls(calls)

	if textOutput() {
		for _, ic := range invalid {
			fmt.Printf("%s: %s\n", ic.ID, ic.Errors)
		}
		fmt.Printf("%d of %d calls valid\n", len(calls)-len(invalid), len(calls))
	} else {
		printJSON(map[string]any{
			"ok":      len(invalid) == 0,
			"checked": len(calls),
			"invalid": invalid,
		})
	}
	if len(invalid) > 0 {
		os.Exit(1)
	}
}

func checkCalls(calls []model.Call) []invalidCall {
	invalid := []invalidCall{}
	for _, c := range calls {
		if errs := callform.Validate(model.DraftFromCall(c)); errs != nil {
			invalid = append(invalid, invalidCall{ID: c.ID, Errors: errs})
		}
	}
	return invalid
}
