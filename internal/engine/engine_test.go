package engine

import (
	"testing"

	"github.com/asymmetrica-labs/moldyn2d/internal/units"
)

// newArgonPair builds a 2-atom, argon-like engine: a 10x10 nm box, one
// LJ element (mass/epsilon/sigma roughly argon's), two atoms placed a
// bit off their equilibrium separation so the short-range force has
// something to do. Mirrors the teacher's habit of building a small
// known-good fixture per test file (parser_test.go's test_peptide.pdb)
// rather than constructing one from scratch in every test.
func newArgonPair(t *testing.T, sep float64) (*Engine, int, int) {
	t.Helper()
	e := New()
	if err := e.SetSize(10, 10); err != nil {
		t.Fatalf("SetSize: %v", err)
	}
	argon := e.AddElement(ElementProps{Mass: 39.948, Epsilon: 0.0103, Sigma: 0.3405})
	if err := e.CreateAtomsArray(2); err != nil {
		t.Fatalf("CreateAtomsArray: %v", err)
	}
	a1, err := e.AddAtom(AtomProps{X: 5 - sep/2, Y: 5, Element: argon, Visible: true})
	if err != nil {
		t.Fatalf("AddAtom a1: %v", err)
	}
	a2, err := e.AddAtom(AtomProps{X: 5 + sep/2, Y: 5, Element: argon, Visible: true})
	if err != nil {
		t.Fatalf("AddAtom a2: %v", err)
	}
	return e, a1, a2
}

func isFinite(x float64) bool {
	return units.IsFinite(x)
}
