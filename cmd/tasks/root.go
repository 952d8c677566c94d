package main

import (
	"fmt"

	"github.com/aussiebroadwan/tasks/internal/tasks/app"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "tasks",
	Short:         "Multi-user task list API",
	Version:       app.BuildVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
	// Running the bare binary serves the API
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func loadConfig() (app.Config, error) {
	cfg, err := app.LoadConfig()
	if err != nil {
		return app.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
