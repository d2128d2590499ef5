package cli

import (
	"fmt"
	"strings"

	"github.com/rcliao/helpdesk/internal/render"
	"github.com/rcliao/helpdesk/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search calls by keyword",
		Long:  "Full-text search over caller names and issue descriptions. Each word matches as a prefix.",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSearch,
	}

	cmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

func runSearch(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	query := strings.Join(args, " ")

	s, err := openStore(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	results, err := s.Search(cmd.Context(), store.SearchParams{
		Query: query,
		Limit: limit,
	})
	if err != nil {
		exitErr("search", err)
	}

	if textOutput() {
		if len(results) == 0 {
			fmt.Println("No calls found")
		}
		for _, c := range results {
			fmt.Printf("%s  %-18s %s\n", c.ID, c.CallerName, render.Truncate(c.IssueDescription, 60))
		}
		return
	}

	if len(results) == 0 {
		fmt.Println("[]")
		return
	}
	printJSON(results)
}
