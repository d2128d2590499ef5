package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rcliao/helpdesk/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export calls as a seed file",
		Long:  "Export every call ordered by id, in a format --seed can load back.",
		Run:   runExport,
	}

	cmd.Flags().String("as", "yaml", "Encoding: yaml or json")
	cmd.Flags().StringP("out", "o", "", "Write to this file instead of stdout")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	as, _ := cmd.Flags().GetString("as")
	out, _ := cmd.Flags().GetString("out")

	var asJSON bool
	switch strings.ToLower(as) {
	case "json":
		asJSON = true
	case "yaml", "yml":
	default:
		exitErr("export", fmt.Errorf("invalid encoding %q (want yaml or json)", as))
	}

	s, err := openStore(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	calls, err := s.ExportAll(cmd.Context())
	if err != nil {
		exitErr("export", err)
	}
	b, err := store.EncodeCalls(calls, asJSON)
	if err != nil {
		exitErr("export", err)
	}

	if out != "" {
		if err := os.WriteFile(out, b, 0o644); err != nil {
			exitErr("export", err)
		}
		fmt.Printf(`{"ok":true,"exported":%d,"path":%q}`+"\n", len(calls), out)
		return
	}
	os.Stdout.Write(b)
}
