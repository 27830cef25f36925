package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// globalFlags holds the flags shared by every subcommand.
type globalFlags struct {
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:   "mdsim",
		Short: "Drive the 2D molecular-dynamics engine from a scenario file",
	}
	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "path to a scenario YAML file (required)")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug-level logging")

	root.AddCommand(newRunCmd(flags))
	root.AddCommand(newRelaxCmd(flags))
	return root
}

// buildLogger constructs the zap logger the flags request: a
// development logger (human-readable, debug-enabled) under --verbose,
// otherwise a production (JSON, info-and-above) logger.
func buildLogger(flags *globalFlags) (*zap.Logger, error) {
	if flags.verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("mdsim: building logger: %w", err)
		}
		return logger, nil
	}
	logger, err := zap.NewProduction()
	if err != nil {
		return nil, fmt.Errorf("mdsim: building logger: %w", err)
	}
	return logger, nil
}

func requireConfigPath(flags *globalFlags) error {
	if flags.configPath == "" {
		return fmt.Errorf("mdsim: --config is required")
	}
	return nil
}
