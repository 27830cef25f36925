package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asymmetrica-labs/moldyn2d/internal/runner"
)

func newRunCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Load a scenario, integrate it for its full duration, and print the final observables",
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

			state, err := runner.Run(e, scenario, logger)
			if err != nil {
				return err
			}

			fmt.Printf("t=%.1f fs  PE=%.6f eV  KE=%.6f eV  T=%.2f K\n",
				state.Time, state.PotentialEnergy, state.KineticEnergy, state.Temperature)
			return nil
		},
	}
	return cmd
}
