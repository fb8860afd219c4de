package main

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"pcsoft.com/lumo/internal/config"
)

func main() {
	// Add some millisecond precision to log timestamps, useful for debugging performance.
	formatter := new(log.TextFormatter)
	formatter.TimestampFormat = "2006-01-02T15:04:05.999Z07:00"
	formatter.FullTimestamp = true
	log.SetFormatter(formatter)

	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "lumo",
		Short: "Lumo is a demo ERP assistant with simulated streaming answers",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(cfg.LogLevel)
			if err != nil {
				return errors.WithMessage(err, "cannot parse log-level")
			}
			log.SetLevel(level)
			log.Debug("debug logging enabled")

			return errors.WithMessage(cfg.Validate(), "invalid configuration")
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel,
		"Log level (trace,debug,info,warn,error)")
	cfg.BindFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		NewServeCommand(cfg),
		NewAskCommand(cfg),
		NewHistoryCommand(cfg),
		NewLogoutCommand(cfg),
	)

	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Fatal("could not execute root command")
	}
}
