package main

import (
	"os"

	"github.com/rcliao/helpdesk/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
