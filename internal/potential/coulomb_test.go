package potential

import (
	"math"
	"testing"
)

func TestCoulombRepulsiveForLikeCharges(t *testing.T) {
	// Negative F/r means (F/r)*(b-a) applied to atom a points from b
	// toward a: repulsive.
	f := CoulombForceOverDistanceFromSquaredDistance(1.0, 1.0, 1.0)
	if f >= 0 {
		t.Errorf("expected repulsive (negative) force for like charges, got %g", f)
	}
}

func TestCoulombAttractiveForOppositeCharges(t *testing.T) {
	// Positive F/r means (F/r)*(b-a) applied to atom a points toward b:
	// attractive.
	f := CoulombForceOverDistanceFromSquaredDistance(1.0, 1.0, -1.0)
	if f <= 0 {
		t.Errorf("expected attractive (positive) force for opposite charges, got %g", f)
	}
}

func TestCoulombZeroAtZeroDistance(t *testing.T) {
	if f := CoulombForceOverDistanceFromSquaredDistance(0, 1.0, -1.0); f != 0 {
		t.Errorf("expected 0 at r=0 (degenerate guard), got %g", f)
	}
	if u := CoulombPotentialFromSquaredDistance(0, 1.0, -1.0); u != 0 {
		t.Errorf("expected 0 potential at r=0, got %g", u)
	}
}

func TestCoulombPotentialFallsWithDistance(t *testing.T) {
	uNear := CoulombPotentialFromSquaredDistance(1.0, 1.0, 1.0)
	uFar := CoulombPotentialFromSquaredDistance(4.0, 1.0, 1.0)
	if math.Abs(uFar) >= math.Abs(uNear) {
		t.Errorf("expected |U| to decrease with distance: near=%g far=%g", uNear, uFar)
	}
}
