package cmd

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var logger = zerolog.Nop()

var rootCmd = &cobra.Command{
	Use:   "wsparam",
	Short: "Compile typed RPC parameter definitions and load payloads against them",
	Long: `wsparam reads a service definition written in the compact param
notation, compiles it into parameter schemas and coerces request payloads
into typed values.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		levelName, err := cmd.Flags().GetString("log-level")
		if err != nil {
			return err
		}

		level, err := zerolog.ParseLevel(levelName)
		if err != nil {
			return err
		}

		logger = newLogger(level)
		return nil
	},
}

func newLogger(level zerolog.Level) zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (trace, debug, info, warn, error)")
}
