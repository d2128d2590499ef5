package cli

import (
	"fmt"

	"github.com/rcliao/helpdesk/internal/render"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show call counts by status and priority",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	s, err := openStore(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	stats, err := s.Stats(cmd.Context())
	if err != nil {
		exitErr("stats", err)
	}

	if textOutput() {
		fmt.Printf("Total calls: %d (%d with screenshots)\n", stats.TotalCalls, stats.WithImage)
		fmt.Print(render.Counts("By status", stats.ByStatus))
		fmt.Print(render.Counts("By priority", stats.ByPriority))
		return
	}
	printJSON(stats)
}
