package main

import (
	"github.com/spf13/cobra"

	"tradestats/internal/config"
)

// rootOptions are the flags shared by every subcommand
type rootOptions struct {
	configFile string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "tradestats",
		Short:         "Broker statement parser and trading statistics",
		Version:       config.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.configFile, "config", "", "Config file (default: config.yaml or configs/config.yaml)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Override the configured log level (debug|info|warn|error)")

	root.AddCommand(newAnalyzeCmd(opts))
	root.AddCommand(newServeCmd(opts))
	return root
}

// loadConfig applies the shared flags on top of the layered configuration
func (o *rootOptions) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if o.configFile != "" {
		cfg, err = config.LoadFrom(o.configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	return cfg, nil
}
