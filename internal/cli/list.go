package cli

import (
	"fmt"

	"github.com/rcliao/helpdesk/internal/calltable"
	"github.com/rcliao/helpdesk/internal/model"
	"github.com/rcliao/helpdesk/internal/render"
	"github.com/rcliao/helpdesk/internal/store"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List calls one page at a time",
		Long: "List calls sorted by a column, ten per page. Sorting by the column that is already " +
			"active (dateCreated by default) toggles its direction.",
		Run: runList,
	}

	cmd.Flags().String("sort", "", "Sort field: id, callerName, callerEmail, callerPhone, issueDescription, priority, status, dateCreated")
	cmd.Flags().String("dir", "", "Sort direction: asc or desc")
	cmd.Flags().IntP("page", "p", 1, "Page number")
	cmd.Flags().String("status", "", "Filter by status")
	cmd.Flags().String("priority", "", "Filter by priority")
	cmd.Flags().StringP("query", "q", "", "Filter by text in id, name, email or description")

	RootCmd.AddCommand(cmd)
}

func runList(cmd *cobra.Command, args []string) {
	sortStr, _ := cmd.Flags().GetString("sort")
	dirStr, _ := cmd.Flags().GetString("dir")
	page, _ := cmd.Flags().GetInt("page")
	statusStr, _ := cmd.Flags().GetString("status")
	priorityStr, _ := cmd.Flags().GetString("priority")
	query, _ := cmd.Flags().GetString("query")

	state, err := tableState(sortStr, dirStr, page)
	if err != nil {
		exitErr("list", err)
	}

	var params store.ListParams
	if statusStr != "" {
		if params.Status, err = model.ParseStatus(statusStr); err != nil {
			exitErr("list", err)
		}
	}
	if priorityStr != "" {
		if params.Priority, err = model.ParsePriority(priorityStr); err != nil {
			exitErr("list", err)
		}
	}

	s, err := openStore(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	calls, err := s.List(cmd.Context(), params)
	if err != nil {
		exitErr("list", err)
	}
	calls = calltable.Filter{Query: query}.Apply(calls)
	view := calltable.PageView(state, calls)

	if textOutput() {
		fmt.Print(render.Table(state, view))
		return
	}
	printJSON(view)
}

// tableState builds the table state a list invocation asks for. A sort
// field goes through SetSort so choosing the active field toggles it.
func tableState(sortStr, dirStr string, page int) (calltable.State, error) {
	state := calltable.NewState()
	if sortStr != "" {
		f, err := calltable.ParseField(sortStr)
		if err != nil {
			return state, err
		}
		state.SetSort(f)
	}
	if dirStr != "" {
		d, err := calltable.ParseDirection(dirStr)
		if err != nil {
			return state, err
		}
		state.Direction = d
	}
	state.SetPage(page)
	return state, nil
}
