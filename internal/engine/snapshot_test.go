package engine

import "testing"

func TestGetStateRestoreRevertsAtomPosition(t *testing.T) {
	e, a1, a2 := newArgonPair(t, 0.5)
	x0, y0 := e.atoms.x[a1], e.atoms.y[a1]

	snap := e.GetState()

	e.atoms.x[a1] += 1.0
	e.atoms.y[a2] -= 1.0

	e.Restore(snap)

	if e.atoms.x[a1] != x0 || e.atoms.y[a1] != y0 {
		t.Errorf("expected atom %d restored to (%g,%g), got (%g,%g)", a1, x0, y0, e.atoms.x[a1], e.atoms.y[a1])
	}
}

func TestGetStateRestoreRevertsObstacle(t *testing.T) {
	e, _, _ := newArgonPair(t, 1.0)
	e.AddObstacle(ObstacleProps{X: 2, Y: 2, Width: 1, Height: 1, Mass: 40, Visible: true})
	x0 := e.obstacles.x[0]

	snap := e.GetState()
	e.obstacles.x[0] += 5
	e.Restore(snap)

	if e.obstacles.x[0] != x0 {
		t.Errorf("expected obstacle restored to x=%g, got %g", x0, e.obstacles.x[0])
	}
}

func TestGetStateRestoreRevertsSimulationTime(t *testing.T) {
	e, _, _ := newArgonPair(t, 3.0)
	snap := e.GetState()

	if err := e.Integrate(10, 1); err != nil {
		t.Fatalf("Integrate: %v", err)
	}
	if e.time == 0 {
		t.Fatal("test assumes Integrate advances simulation time")
	}

	e.Restore(snap)
	if e.time != 0 {
		t.Errorf("expected time restored to 0, got %g", e.time)
	}
}

// A clone captured once must stay frozen even if live state is mutated
// again after the snapshot is taken — Restore always lands on the
// captured values, never on whatever the live state happened to be at
// the second mutation.
func TestGetStateSnapshotIsIndependentOfLaterMutation(t *testing.T) {
	e, a1, _ := newArgonPair(t, 1.0)
	x0 := e.atoms.x[a1]

	snap := e.GetState()

	e.atoms.x[a1] = x0 + 1
	e.atoms.x[a1] = x0 + 2 // a second mutation after the snapshot was captured

	e.Restore(snap)
	if e.atoms.x[a1] != x0 {
		t.Errorf("expected restore to land on snapshot value %g, got %g", x0, e.atoms.x[a1])
	}
}

func TestGetStateRestoreRevertsRadialBondRemoval(t *testing.T) {
	e, a1, a2 := newArgonPair(t, 0.34)
	e.AddRadialBond(RadialBondProps{Atom1: a1, Atom2: a2, Length0: 0.34, Strength: 10})
	countBefore := e.radialBonds.n

	snap := e.GetState()
	e.radialBonds.n = 0

	e.Restore(snap)
	if e.radialBonds.n != countBefore {
		t.Errorf("expected %d radial bonds restored, got %d", countBefore, e.radialBonds.n)
	}
}

func TestGetStateRestoreRevertsSpringAnchor(t *testing.T) {
	e, a1, _ := newArgonPair(t, 1.0)
	idx := e.AddSpringForce(a1, 0, 0, 5)
	x0 := e.springs.x[idx]

	snap := e.GetState()
	e.springs.x[idx] = x0 + 9

	e.Restore(snap)
	if e.springs.x[idx] != x0 {
		t.Errorf("expected spring anchor restored to %g, got %g", x0, e.springs.x[idx])
	}
}
