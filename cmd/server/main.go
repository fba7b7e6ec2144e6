package main

import (
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/Djberg2/GrndWrkv0/internal/config"
)

var (
	cfg    config.Config
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "grndwrk",
	Short: "GrndWrk quote and lead backend",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		zerolog.TimeFieldFormat = time.RFC3339
		level, err := zerolog.ParseLevel(cfg.LogLevel)
		if err != nil || level == zerolog.NoLevel {
			level = zerolog.InfoLevel
		}
		logger = log.Level(level).With().Str("service", "grndwrk-backend").Str("env", cfg.Env).Logger()
		return nil
	},
	SilenceUsage: true,
}

func main() {
	rootCmd.AddCommand(serveCmd, migrateCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
