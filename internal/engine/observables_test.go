package engine

import (
	"math"
	"testing"
)

func TestComputeOutputStateRadialBondPotentialAtRestLengthIsZero(t *testing.T) {
	e, a1, a2 := newArgonPair(t, 0.34)
	e.UseLennardJonesInteraction(false)
	e.UseCoulombInteraction(false)
	e.AddRadialBond(RadialBondProps{Atom1: a1, Atom2: a2, Length0: 0.34, Strength: 10})

	var state OutputState
	e.accumulateForces(true)
	e.ComputeOutputState(&state)

	if math.Abs(state.Potential.Radial) > 1e-12 {
		t.Errorf("expected zero radial-bond PE at rest length, got %g", state.Potential.Radial)
	}
}

func TestComputeOutputStateRadialBondPotentialGrowsWithStretch(t *testing.T) {
	e, a1, a2 := newArgonPair(t, 0.5)
	e.UseLennardJonesInteraction(false)
	e.UseCoulombInteraction(false)
	e.AddRadialBond(RadialBondProps{Atom1: a1, Atom2: a2, Length0: 0.34, Strength: 10})

	var state OutputState
	e.accumulateForces(true)
	e.ComputeOutputState(&state)

	want := 0.5 * 10 * (0.5 - 0.34) * (0.5 - 0.34)
	if math.Abs(state.Potential.Radial-want) > 1e-9 {
		t.Errorf("got %g want %g", state.Potential.Radial, want)
	}
}

func TestComputeOutputStateKineticEnergyAndTemperature(t *testing.T) {
	e, a1, a2 := newArgonPair(t, 3.0)
	e.atoms.vx[a1], e.atoms.vx[a2] = 0.01, -0.01
	var state OutputState
	e.accumulateForces(true)
	e.ComputeOutputState(&state)

	if state.KineticEnergy <= 0 {
		t.Errorf("expected positive kinetic energy, got %g", state.KineticEnergy)
	}
	if state.Temperature <= 0 {
		t.Errorf("expected positive temperature, got %g", state.Temperature)
	}
}

func TestComputeOutputStateCenterOfMassStationaryPairIsAtMidpoint(t *testing.T) {
	e, a1, a2 := newArgonPair(t, 1.0)
	if e.atoms.mass[a1] != e.atoms.mass[a2] {
		t.Fatal("test assumes equal masses")
	}
	var state OutputState
	e.accumulateForces(true)
	e.ComputeOutputState(&state)

	wantX := (e.atoms.x[a1] + e.atoms.x[a2]) / 2
	if math.Abs(state.CMPositionX-wantX) > 1e-9 {
		t.Errorf("got CM x=%g want %g", state.CMPositionX, wantX)
	}
	if state.CMMomentumX != 0 || state.CMMomentumY != 0 {
		t.Errorf("expected zero CM momentum for atoms at rest, got (%g,%g)", state.CMMomentumX, state.CMMomentumY)
	}
}

func TestComputeOutputStateGravityPotentialScalesWithHeight(t *testing.T) {
	e, _, _ := newArgonPair(t, 5.0)
	e.SetGravitationalField(0.001, true)
	e.accumulateForces(true)

	var state OutputState
	e.ComputeOutputState(&state)
	if state.Potential.Gravity <= 0 {
		t.Errorf("expected positive gravitational PE for atoms at y>0, got %g", state.Potential.Gravity)
	}
}

func TestComputeOutputStatePressuresShapedByObstacleCount(t *testing.T) {
	e, _, _ := newArgonPair(t, 1.0)
	e.AddObstacle(ObstacleProps{X: 1, Y: 1, Width: 1, Height: 1, Mass: math.Inf(1), Visible: true})
	e.AddObstacle(ObstacleProps{X: 3, Y: 3, Width: 1, Height: 1, Mass: math.Inf(1), Visible: true})

	var state OutputState
	e.accumulateForces(true)
	e.ComputeOutputState(&state)
	if len(state.Pressures) != 2 {
		t.Errorf("expected one pressure row per obstacle, got %d", len(state.Pressures))
	}
}

func TestUpdateVdwPairsArrayFindsCloseNonBondedPair(t *testing.T) {
	e, a1, a2 := newArgonPair(t, 0.3)
	e.accumulateForces(true)
	e.UpdateVdwPairsArray()
	found := false
	for _, pair := range e.vdwPairs {
		if (pair[0] == a1 && pair[1] == a2) || (pair[0] == a2 && pair[1] == a1) {
			found = true
		}
	}
	if !found {
		t.Errorf("expected (%d,%d) in vdwPairs, got %v", a1, a2, e.vdwPairs)
	}
}

func TestUpdateVdwPairsArrayExcludesSameSignChargedPair(t *testing.T) {
	e, a1, a2 := newArgonPair(t, 0.3)
	if err := e.SetAtomProperties(a1, AtomProps{X: e.atoms.x[a1], Y: e.atoms.y[a1], Element: e.atoms.element[a1], Charge: 1, Visible: true}); err != nil {
		t.Fatalf("SetAtomProperties a1: %v", err)
	}
	if err := e.SetAtomProperties(a2, AtomProps{X: e.atoms.x[a2], Y: e.atoms.y[a2], Element: e.atoms.element[a2], Charge: 1, Visible: true}); err != nil {
		t.Fatalf("SetAtomProperties a2: %v", err)
	}
	e.accumulateForces(true)
	e.UpdateVdwPairsArray()
	for _, pair := range e.vdwPairs {
		if (pair[0] == a1 && pair[1] == a2) || (pair[0] == a2 && pair[1] == a1) {
			t.Errorf("expected same-sign charged pair excluded from vdwPairs, got %v", e.vdwPairs)
		}
	}
}

func TestUpdateVdwPairsArrayIncludesOppositeSignChargedPair(t *testing.T) {
	e, a1, a2 := newArgonPair(t, 0.3)
	if err := e.SetAtomProperties(a1, AtomProps{X: e.atoms.x[a1], Y: e.atoms.y[a1], Element: e.atoms.element[a1], Charge: 1, Visible: true}); err != nil {
		t.Fatalf("SetAtomProperties a1: %v", err)
	}
	if err := e.SetAtomProperties(a2, AtomProps{X: e.atoms.x[a2], Y: e.atoms.y[a2], Element: e.atoms.element[a2], Charge: -1, Visible: true}); err != nil {
		t.Fatalf("SetAtomProperties a2: %v", err)
	}
	e.accumulateForces(true)
	e.UpdateVdwPairsArray()
	found := false
	for _, pair := range e.vdwPairs {
		if (pair[0] == a1 && pair[1] == a2) || (pair[0] == a2 && pair[1] == a1) {
			found = true
		}
	}
	if !found {
		t.Errorf("expected opposite-sign charged pair (%d,%d) in vdwPairs, got %v", a1, a2, e.vdwPairs)
	}
}

func TestUpdateVdwPairsArrayExcludesBondedPair(t *testing.T) {
	e, a1, a2 := newArgonPair(t, 0.3)
	e.AddRadialBond(RadialBondProps{Atom1: a1, Atom2: a2, Length0: 0.3, Strength: 10})
	e.accumulateForces(true)
	e.UpdateVdwPairsArray()
	for _, pair := range e.vdwPairs {
		if (pair[0] == a1 && pair[1] == a2) || (pair[0] == a2 && pair[1] == a1) {
			t.Errorf("expected bonded pair excluded from vdwPairs, got %v", e.vdwPairs)
		}
	}
}
