package main

import (
	"github.com/spf13/cobra"

	"github.com/Djberg2/GrndWrkv0/internal/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := db.New(cmd.Context(), cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer store.Close()
		return store.Migrate(cmd.Context(), logger)
	},
}
