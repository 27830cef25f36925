package runner

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunAdvancesSimulationTimeToDuration(t *testing.T) {
	s := testScenario()
	e, err := s.Build()
	require.NoError(t, err)

	state, err := Run(e, s, nil)
	require.NoError(t, err)
	require.InDelta(t, s.Duration, state.Time, s.Dt)
}

func TestRunZeroDurationReturnsImmediately(t *testing.T) {
	s := testScenario()
	s.Duration = 0
	e, err := s.Build()
	require.NoError(t, err)

	state, err := Run(e, s, nil)
	require.NoError(t, err)
	require.Equal(t, 0.0, state.Time)
}

func TestRelaxConvergesToTargetTemperature(t *testing.T) {
	s := testScenario()
	s.Thermostat = ThermostatSpec{Enabled: true, TargetTemperature: 300}
	e, err := s.Build()
	require.NoError(t, err)

	err = Relax(e, s, nil, 5000)
	require.NoError(t, err)
}
