package engine

import (
	"errors"
	"math/rand"
	"testing"
)

func newLatticeEngine(t *testing.T, capacity int) (*Engine, int) {
	t.Helper()
	e := New()
	if err := e.SetSize(20, 20); err != nil {
		t.Fatalf("SetSize: %v", err)
	}
	argon := e.AddElement(ElementProps{Mass: 39.948, Epsilon: 0.0103, Sigma: 0.3405})
	if err := e.CreateAtomsArray(capacity); err != nil {
		t.Fatalf("CreateAtomsArray: %v", err)
	}
	return e, argon
}

func TestPlaceOnLatticePlacesAtomsOnGrid(t *testing.T) {
	e, argon := newLatticeEngine(t, 6)
	indices, err := e.PlaceOnLattice(LatticeSpec{Rows: 2, Cols: 3, Spacing: 0.5, OriginX: 1, OriginY: 2, Element: argon})
	if err != nil {
		t.Fatalf("PlaceOnLattice: %v", err)
	}
	if len(indices) != 6 {
		t.Fatalf("expected 6 atoms placed, got %d", len(indices))
	}

	// row-major: index 1 is row 0, col 1.
	i := indices[1]
	if e.atoms.x[i] != 1.5 || e.atoms.y[i] != 2 {
		t.Errorf("expected (1.5, 2), got (%g, %g)", e.atoms.x[i], e.atoms.y[i])
	}
	// index 3 is row 1, col 0.
	i = indices[3]
	if e.atoms.x[i] != 1 || e.atoms.y[i] != 2.5 {
		t.Errorf("expected (1, 2.5), got (%g, %g)", e.atoms.x[i], e.atoms.y[i])
	}
}

func TestPlaceOnLatticeZeroVelocityWithoutTargetTemperature(t *testing.T) {
	e, argon := newLatticeEngine(t, 4)
	indices, err := e.PlaceOnLattice(LatticeSpec{Rows: 2, Cols: 2, Spacing: 0.5, Element: argon})
	if err != nil {
		t.Fatalf("PlaceOnLattice: %v", err)
	}
	for _, i := range indices {
		if e.atoms.vx[i] != 0 || e.atoms.vy[i] != 0 {
			t.Errorf("expected zero velocity for atom %d, got (%g,%g)", i, e.atoms.vx[i], e.atoms.vy[i])
		}
	}
}

func TestPlaceOnLatticeNonPositiveDimensionsErrors(t *testing.T) {
	e, argon := newLatticeEngine(t, 4)
	if _, err := e.PlaceOnLattice(LatticeSpec{Rows: 0, Cols: 2, Spacing: 0.5, Element: argon}); err == nil {
		t.Error("expected an error for zero rows")
	}
	if _, err := e.PlaceOnLattice(LatticeSpec{Rows: 2, Cols: -1, Spacing: 0.5, Element: argon}); err == nil {
		t.Error("expected an error for negative cols")
	}
}

func TestPlaceOnLatticeUnknownElementErrors(t *testing.T) {
	e, _ := newLatticeEngine(t, 4)
	if _, err := e.PlaceOnLattice(LatticeSpec{Rows: 2, Cols: 2, Spacing: 0.5, Element: 7}); !errors.Is(err, ErrUnknownElement) {
		t.Errorf("expected ErrUnknownElement, got %v", err)
	}
}

func TestPlaceOnLatticeTargetTemperatureWithoutRandErrors(t *testing.T) {
	e, argon := newLatticeEngine(t, 4)
	if _, err := e.PlaceOnLattice(LatticeSpec{Rows: 2, Cols: 2, Spacing: 0.5, Element: argon, TargetTemperature: 300}); err == nil {
		t.Error("expected an error when TargetTemperature > 0 without a Rand source")
	}
}

func TestPlaceOnLatticeSeedsNonZeroVelocitiesAtTemperature(t *testing.T) {
	e, argon := newLatticeEngine(t, 9)
	src := rand.New(rand.NewSource(1))
	indices, err := e.PlaceOnLattice(LatticeSpec{
		Rows: 3, Cols: 3, Spacing: 0.5, Element: argon,
		TargetTemperature: 300, Rand: src,
	})
	if err != nil {
		t.Fatalf("PlaceOnLattice: %v", err)
	}

	anyNonZero := false
	for _, i := range indices {
		if e.atoms.vx[i] != 0 || e.atoms.vy[i] != 0 {
			anyNonZero = true
		}
	}
	if !anyNonZero {
		t.Error("expected at least one atom to get a nonzero thermal velocity")
	}
}
