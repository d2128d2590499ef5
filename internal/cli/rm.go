package cli

import (
	"fmt"

	"github.com/rcliao/helpdesk/internal/calltable"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a call",
		Args:  cobra.ExactArgs(1),
		Run:   runRm,
	}

	RootCmd.AddCommand(cmd)
}

func runRm(cmd *cobra.Command, args []string) {
	s, err := openStore(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	var rmErr error
	host := calltable.HostFuncs{
		OnDelete: func(id string) { rmErr = s.Rm(cmd.Context(), id) },
	}
	if err := calltable.RowActivated(host, calltable.ActionDelete, args[0]); err != nil {
		exitErr("rm", err)
	}
	if rmErr != nil {
		exitErr("rm", rmErr)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%q}`+"\n", args[0])
}
