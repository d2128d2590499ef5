package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/rcliao/helpdesk/internal/model"
	"github.com/rcliao/helpdesk/internal/render"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a call",
		Args:  cobra.ExactArgs(1),
		Run:   runGet,
	}

	cmd.Flags().String("save-image", "", "Write the attached screenshot to this path")

	RootCmd.AddCommand(cmd)
}

func runGet(cmd *cobra.Command, args []string) {
	imagePath, _ := cmd.Flags().GetString("save-image")

	s, err := openStore(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	c, err := s.Get(cmd.Context(), args[0])
	if err != nil {
		exitErr("get", err)
	}

	if imagePath != "" {
		if !c.HasImage() {
			exitErr("save image", fmt.Errorf("call %s has no image", c.ID))
		}
		_, data, err := model.DecodeDataURI(c.IssueImage)
		if err != nil {
			exitErr("save image", err)
		}
		if err := os.WriteFile(imagePath, data, 0o644); err != nil {
			exitErr("save image", err)
		}
	}

	if textOutput() {
		fmt.Print(render.Detail(*c, time.Now()))
		return
	}
	printJSON(c)
}
