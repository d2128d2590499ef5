package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rcliao/helpdesk/internal/callform"
	"github.com/rcliao/helpdesk/internal/model"
	"github.com/rcliao/helpdesk/internal/render"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a call",
		Long:  "Edit a call through the call form. Only the flags given change; the rest keep their current values.",
		Args:  cobra.ExactArgs(1),
		Run:   runEdit,
	}

	addFormFlags(cmd)
	cmd.Flags().Bool("remove-image", false, "Remove the attached screenshot")

	RootCmd.AddCommand(cmd)
}

func runEdit(cmd *cobra.Command, args []string) {
	removeImage, _ := cmd.Flags().GetBool("remove-image")

	s, err := openStore(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	existing, err := s.Get(cmd.Context(), args[0])
	if err != nil {
		exitErr("edit", err)
	}

	var updated *model.Call
	form := callform.New(callform.HandlerFuncs{
		OnSubmit: func(ctx context.Context, d model.Draft) error {
			c, err := s.Replace(ctx, existing.ID, d)
			updated = c
			return err
		},
	}, callform.WithInitial(*existing), callform.WithLogger(slog.Default()))

	if removeImage {
		form.RemoveImage()
	}
	if err := fillForm(cmd, form); err != nil {
		exitErr("edit", err)
	}
	submitForm(cmd, form)

	if textOutput() {
		fmt.Print(render.Detail(*updated, time.Now()))
		return
	}
	printJSON(updated)
}
