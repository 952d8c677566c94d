package main

import (
	"github.com/aussiebroadwan/tasks/internal/tasks/app"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the database schema and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logger := app.NewLogger(cfg)
		db, err := app.OpenStore(cmd.Context(), cfg, logger)
		if err != nil {
			logger.Error("migration failed", "error", err)
			return err
		}

		// Only the sql driver tracks a schema version
		if v, ok := db.(interface{ SchemaVersion() (uint, bool, error) }); ok {
			version, dirty, err := v.SchemaVersion()
			if err != nil {
				_ = db.Close()
				return err
			}
			logger.Info("schema is current", "version", version, "dirty", dirty)
		}

		return db.Close()
	},
}
