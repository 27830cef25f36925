package runner

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/asymmetrica-labs/moldyn2d/internal/engine"
)

// reportChunks splits a scenario's total duration into this many
// Integrate calls so Run can log an observables snapshot between each,
// rather than only at the very end.
const reportChunks = 10

// Run drives e through the scenario's full duration in reportChunks
// Integrate calls, logging an observables snapshot after each chunk,
// and returns the final OutputState. Mirrors the teacher's flat
// driver-program shape (backend/cmd/*/main.go: build state, advance,
// print) generalized to a reusable function the cobra `run` subcommand
// calls into.
func Run(e *engine.Engine, s *Scenario, logger *zap.Logger) (*engine.OutputState, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	e.SetLogger(logger)

	chunkDuration := s.Duration / reportChunks
	if chunkDuration <= 0 || chunkDuration < s.Dt {
		chunkDuration = s.Duration
	}

	var state engine.OutputState
	elapsed := 0.0
	for elapsed < s.Duration {
		step := chunkDuration
		if remaining := s.Duration - elapsed; remaining < step {
			step = remaining
		}
		if err := e.Integrate(step, s.Dt); err != nil {
			return nil, fmt.Errorf("runner: integrating at t=%g: %w", e.Time(), err)
		}
		elapsed += step

		e.ComputeOutputState(&state)
		logger.Info("run progress",
			zap.Float64("time_fs", state.Time),
			zap.Float64("potential_eV", state.PotentialEnergy),
			zap.Float64("kinetic_eV", state.KineticEnergy),
			zap.Float64("temperature_K", state.Temperature),
			zap.Float64("temperature_stddev_K", state.TemperatureStdDev),
		)

		if report := e.ValidateState(); !report.Valid {
			logger.Warn("validation failed", zap.String("reason", report.ValidationError))
		}
	}

	return &state, nil
}
