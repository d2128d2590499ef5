// Package cli implements the helpdesk CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/rcliao/helpdesk/internal/config"
	"github.com/rcliao/helpdesk/internal/store"
	"github.com/spf13/cobra"
)

var (
	seedPath   string
	formatFlag string
	logLevel   string
	configPath string
	operator   string

	cfg = config.Default()
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "helpdesk",
	Short: "Track and triage help-desk calls",
	Long: "A small help-desk call tracker. Calls are loaded from a seed file into an in-memory " +
		"collection that lives for the duration of the command.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := setup(); err != nil {
			exitErr("config", err)
		}
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&seedPath, "seed", "s", "", "Seed file, YAML or JSON (default: $HELPDESK_SEED or the built-in calls)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "", "Output format: json or text (default: $HELPDESK_FORMAT or json)")
	RootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: $HELPDESK_LOG_LEVEL or warn)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: $HELPDESK_CONFIG)")
	RootCmd.PersistentFlags().StringVar(&operator, "operator", "", "Operator name for the dashboard (default: $HELPDESK_OPERATOR)")
}

// setup resolves configuration and installs the default logger.
func setup() error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := c.Override(seedPath, formatFlag, logLevel, operator); err != nil {
		return err
	}
	cfg = c

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))
	slog.Debug("config resolved", "seed", cfg.SeedPath, "format", cfg.Format, "operator", cfg.Operator)
	return nil
}

func openStore(cmd *cobra.Command) (*store.SQLiteStore, error) {
	return store.Seed(cmd.Context(), cfg.SeedPath)
}

func textOutput() bool {
	return cfg.Format == "text"
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
