package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rcliao/helpdesk/internal/callform"
	"github.com/rcliao/helpdesk/internal/model"
	"github.com/rcliao/helpdesk/internal/render"
	"github.com/rcliao/helpdesk/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Log a new call",
		Long: "Log a new call through the call form. Priority defaults to medium and status to new. " +
			"The call is added to this run's collection and printed.",
		Run: runNew,
	}

	addFormFlags(cmd)

	RootCmd.AddCommand(cmd)
}

func runNew(cmd *cobra.Command, args []string) {
	s, err := openStore(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	var created *model.Call
	form := callform.New(callform.HandlerFuncs{
		OnSubmit: func(ctx context.Context, d model.Draft) error {
			c, err := s.Create(ctx, store.CreateParams{Draft: d})
			created = c
			return err
		},
	}, callform.WithLogger(slog.Default()))

	if err := fillForm(cmd, form); err != nil {
		exitErr("new", err)
	}
	submitForm(cmd, form)

	if textOutput() {
		fmt.Print(render.Detail(*created, time.Now()))
		return
	}
	printJSON(created)
}
