package main

import (
	"github.com/spf13/cobra"

	"github.com/asymmetrica-labs/moldyn2d/internal/runner"
)

func newRelaxCmd(flags *globalFlags) *cobra.Command {
	var maxSteps int

	cmd := &cobra.Command{
		Use:   "relax",
		Short: "Load a scenario and drive it to its configured thermostat target temperature",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireConfigPath(flags); err != nil {
				return err
			}
			logger, err := buildLogger(flags)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			scenario, err := runner.LoadScenario(flags.configPath)
			if err != nil {
				return err
			}
			e, err := scenario.Build()
			if err != nil {
				return err
			}

			return runner.Relax(e, scenario, logger, maxSteps)
		},
	}
	cmd.Flags().IntVar(&maxSteps, "max-steps", 100000, "maximum dt-sized steps to take before giving up on convergence")
	return cmd
}
