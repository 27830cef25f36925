package engine

import (
	"math"
	"testing"
)

func TestValidateStateCleanPairIsValid(t *testing.T) {
	e, _, _ := newArgonPair(t, 1.0)
	report := e.ValidateState()
	if !report.Valid {
		t.Errorf("expected valid state, got error: %s", report.ValidationError)
	}
	if report.HasClashes {
		t.Errorf("expected no clashes for atoms 1nm apart, got %d", report.ClashCount)
	}
}

func TestValidateStateFlagsNonFiniteCoordinate(t *testing.T) {
	e, a1, _ := newArgonPair(t, 1.0)
	e.atoms.x[a1] = math.NaN()

	report := e.ValidateState()
	if report.Valid {
		t.Error("expected invalid state for a NaN coordinate")
	}
}

func TestValidateStateFlagsAtomFarOutsideDomain(t *testing.T) {
	e, a1, _ := newArgonPair(t, 1.0)
	e.atoms.x[a1] = 1e6

	report := e.ValidateState()
	if report.Valid {
		t.Error("expected invalid state for an atom far outside the domain")
	}
}

func TestValidateStateFlagsOverlappingAtoms(t *testing.T) {
	e, a1, a2 := newArgonPair(t, 1.0)
	// sigma=0.3405 -> radius ~0.191; push well inside the 0.6 ratio threshold.
	e.atoms.x[a2] = e.atoms.x[a1] + 0.05

	report := e.ValidateState()
	if !report.Valid {
		t.Fatalf("clashes should not invalidate the report, got error: %s", report.ValidationError)
	}
	if !report.HasClashes || report.ClashCount != 1 {
		t.Errorf("expected exactly one clash, got hasClashes=%v count=%d", report.HasClashes, report.ClashCount)
	}
	if report.WorstClashRatio >= clashRatioThreshold {
		t.Errorf("expected worst clash ratio below %g, got %g", clashRatioThreshold, report.WorstClashRatio)
	}
}

func TestValidateStateExcludesBondedPairsFromClashScan(t *testing.T) {
	e, a1, a2 := newArgonPair(t, 1.0)
	e.atoms.x[a2] = e.atoms.x[a1] + 0.05
	e.AddRadialBond(RadialBondProps{Atom1: a1, Atom2: a2, Length0: 0.05, Strength: 10})

	report := e.ValidateState()
	if report.HasClashes {
		t.Errorf("expected bonded pair excluded from the clash scan, got %d clashes", report.ClashCount)
	}
}
