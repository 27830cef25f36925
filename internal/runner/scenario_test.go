package runner

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testScenario() *Scenario {
	return &Scenario{
		SizeX: 10, SizeY: 10,
		Dt: 0.5, Duration: 50,
		Element: ElementSpec{Mass: 39.948, Epsilon: 0.0103, Sigma: 0.3405},
		Lattice: LatticeSpec{Rows: 2, Cols: 2, Spacing: 0.6, OriginX: 4, OriginY: 4},
	}
}

func TestScenarioBuildPlacesExpectedAtomCount(t *testing.T) {
	e, err := testScenario().Build()
	require.NoError(t, err)
	require.Equal(t, 4, e.GetNumberOfAtoms())
}

func TestScenarioBuildRejectsEmptyLattice(t *testing.T) {
	s := testScenario()
	s.Lattice.Rows = 0
	_, err := s.Build()
	require.Error(t, err)
}

func TestScenarioBuildAppliesThermostatConfig(t *testing.T) {
	s := testScenario()
	s.Thermostat = ThermostatSpec{Enabled: true, TargetTemperature: 250}
	e, err := s.Build()
	require.NoError(t, err)

	// Thermostat engagement is only observable indirectly (Engine
	// exposes no getter for the toggle) — confirm the velocities it
	// would rescale don't diverge across a short run instead.
	require.NoError(t, e.Integrate(5, s.Dt))
}

func TestScenarioBuildSeedsLatticeVelocitiesDeterministically(t *testing.T) {
	s := testScenario()
	s.Lattice.TargetTemperature = 300
	s.Seed = 42

	e1, err := s.Build()
	require.NoError(t, err)
	e2, err := s.Build()
	require.NoError(t, err)

	ke1, err := e1.GetAtomKineticEnergy(0)
	require.NoError(t, err)
	ke2, err := e2.GetAtomKineticEnergy(0)
	require.NoError(t, err)
	require.Equal(t, ke1, ke2, "same seed should reproduce identical initial velocities")
}

func TestLoadScenarioMissingFileErrors(t *testing.T) {
	_, err := LoadScenario("/nonexistent/scenario.yaml")
	require.Error(t, err)
}
