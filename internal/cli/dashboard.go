package cli

import (
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rcliao/helpdesk/internal/tui"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Open the interactive call dashboard",
		Long: "Open the interactive dashboard: sign in, browse and sort the call table, and log or " +
			"edit calls through the call form. Changes last until the dashboard exits.",
		Run: runDashboard,
	}

	cmd.Flags().String("log-file", "", "Write logs to this file while the dashboard owns the terminal")

	RootCmd.AddCommand(cmd)
}

func runDashboard(cmd *cobra.Command, args []string) {
	logFile, _ := cmd.Flags().GetString("log-file")

	// The dashboard owns stderr too, so logs go to a file or nowhere.
	var w io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			exitErr("open log file", err)
		}
		defer f.Close()
		w = f
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	s, err := openStore(cmd)
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	m := tui.NewModel(s, tui.WithOperator(cfg.Operator), tui.WithLogger(logger))
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run(); err != nil {
		exitErr("dashboard", err)
	}
}
