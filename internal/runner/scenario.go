// Package runner wires a YAML scenario description onto an
// engine.Engine and drives it, the one layer of I/O/configuration
// spec.md's core deliberately has none of. Grounded on the teacher's
// flat driver-programs-under-cmd/ idiom (backend/cmd/*/main.go each
// parsing a small config and calling straight into physics/optimization),
// generalized from ad hoc flag parsing into a single declarative YAML
// document per SPEC_FULL.md's AMBIENT STACK configuration section.
package runner

import (
	"fmt"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/asymmetrica-labs/moldyn2d/internal/engine"
)

// ElementSpec describes one LJ element species in a scenario file.
type ElementSpec struct {
	Mass    float64 `yaml:"mass"`
	Epsilon float64 `yaml:"epsilon"`
	Sigma   float64 `yaml:"sigma"`
}

// LatticeSpec describes the initial rows*cols grid of atoms placed on
// startup, mirroring engine.LatticeSpec without the resolved element
// index or *rand.Rand (those are filled in once the scenario is built).
type LatticeSpec struct {
	Rows              int     `yaml:"rows"`
	Cols              int     `yaml:"cols"`
	Spacing           float64 `yaml:"spacing"`
	OriginX           float64 `yaml:"originX"`
	OriginY           float64 `yaml:"originY"`
	TargetTemperature float64 `yaml:"targetTemperature"`
}

// ThermostatSpec configures the steady-state or one-shot relaxation
// thermostat.
type ThermostatSpec struct {
	Enabled           bool    `yaml:"enabled"`
	TargetTemperature float64 `yaml:"targetTemperature"`
}

// Scenario is the top-level YAML document cmd/mdsim reads: domain
// size, integration parameters, one element species, a starting
// lattice, and optional thermostat/gravity/viscosity settings.
type Scenario struct {
	SizeX float64 `yaml:"sizeX"`
	SizeY float64 `yaml:"sizeY"`

	Dt       float64 `yaml:"dt"`       // fs
	Duration float64 `yaml:"duration"` // fs

	Element ElementSpec `yaml:"element"`
	Lattice LatticeSpec `yaml:"lattice"`

	Thermostat ThermostatSpec `yaml:"thermostat"`
	Gravity    float64        `yaml:"gravity"`
	Viscosity  float64        `yaml:"viscosity"`

	// Seed seeds the Maxwell-Boltzmann velocity sampler when the
	// lattice spec requests a nonzero target temperature. Two runs
	// with the same seed reproduce identical initial velocities.
	Seed int64 `yaml:"seed"`
}

// LoadScenario reads and parses a scenario YAML file from disk.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("runner: reading scenario %q: %w", path, err)
	}
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("runner: parsing scenario %q: %w", path, err)
	}
	return &s, nil
}

// Build constructs an Engine from the scenario: sets the domain size,
// declares the one element species, allocates the atoms array, and
// places the starting lattice, seeding velocities from the scenario's
// Seed when a target temperature is requested.
func (s *Scenario) Build() (*engine.Engine, error) {
	e := engine.New()
	if err := e.SetSize(s.SizeX, s.SizeY); err != nil {
		return nil, fmt.Errorf("runner: building engine: %w", err)
	}
	elem := e.AddElement(engine.ElementProps{
		Mass:    s.Element.Mass,
		Epsilon: s.Element.Epsilon,
		Sigma:   s.Element.Sigma,
	})

	atomCount := s.Lattice.Rows * s.Lattice.Cols
	if atomCount <= 0 {
		return nil, fmt.Errorf("runner: lattice must place at least one atom, got %dx%d", s.Lattice.Rows, s.Lattice.Cols)
	}
	if err := e.CreateAtomsArray(atomCount); err != nil {
		return nil, fmt.Errorf("runner: building engine: %w", err)
	}

	latticeSpec := engine.LatticeSpec{
		Rows:              s.Lattice.Rows,
		Cols:              s.Lattice.Cols,
		Spacing:           s.Lattice.Spacing,
		OriginX:           s.Lattice.OriginX,
		OriginY:           s.Lattice.OriginY,
		Element:           elem,
		TargetTemperature: s.Lattice.TargetTemperature,
	}
	if s.Lattice.TargetTemperature > 0 {
		latticeSpec.Rand = rand.New(rand.NewSource(s.Seed))
	}
	if _, err := e.PlaceOnLattice(latticeSpec); err != nil {
		return nil, fmt.Errorf("runner: placing lattice: %w", err)
	}

	if s.Thermostat.Enabled {
		if err := e.SetTargetTemperature(s.Thermostat.TargetTemperature); err != nil {
			return nil, fmt.Errorf("runner: building engine: %w", err)
		}
		e.UseThermostat(true)
	}
	if s.Gravity != 0 {
		e.SetGravitationalField(s.Gravity, true)
	}
	if s.Viscosity != 0 {
		e.SetViscosity(s.Viscosity)
	}

	return e, nil
}
