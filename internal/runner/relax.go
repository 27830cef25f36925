package runner

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/asymmetrica-labs/moldyn2d/internal/engine"
)

// Relax drives e to the scenario's thermostat target temperature via
// engine.RelaxToTemperature, logging the outcome. maxSteps bounds how
// many dt-sized steps RelaxToTemperature may take before giving up.
func Relax(e *engine.Engine, s *Scenario, logger *zap.Logger, maxSteps int) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	e.SetLogger(logger)

	target := s.Thermostat.TargetTemperature
	logger.Info("relaxing to target temperature", zap.Float64("target_K", target), zap.Float64("dt_fs", s.Dt))

	if err := e.RelaxToTemperature(target, s.Dt, maxSteps); err != nil {
		return fmt.Errorf("runner: relax: %w", err)
	}

	var state engine.OutputState
	e.ComputeOutputState(&state)
	logger.Info("relax converged",
		zap.Float64("time_fs", state.Time),
		zap.Float64("temperature_K", state.Temperature),
	)
	return nil
}
