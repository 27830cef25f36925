package engine

import (
	"fmt"
	"math"

	"github.com/asymmetrica-labs/moldyn2d/internal/potential"
	"github.com/asymmetrica-labs/moldyn2d/internal/units"
)

// GetNumberOfAtoms returns how many atoms have been added so far.
func (e *Engine) GetNumberOfAtoms() int { return e.atoms.filled }

// GetTotalMass sums every atom's mass.
func (e *Engine) GetTotalMass() float64 {
	total := 0.0
	for i := 0; i < e.atoms.filled; i++ {
		total += e.atoms.mass[i]
	}
	return total
}

// GetRadiusOfElement returns element i's LJ-derived radius.
func (e *Engine) GetRadiusOfElement(i int) (float64, error) {
	if i < 0 || i >= e.elements.n {
		return 0, fmt.Errorf("%w: %d", ErrUnknownElement, i)
	}
	return e.elements.radius[i], nil
}

// GetAtomKineticEnergy returns atom i's kinetic energy, in eV.
func (e *Engine) GetAtomKineticEnergy(i int) (float64, error) {
	if i < 0 || i >= e.atoms.filled {
		return 0, fmt.Errorf("%w: %d", ErrUnknownAtom, i)
	}
	a := e.atoms
	v2 := a.vx[i]*a.vx[i] + a.vy[i]*a.vy[i]
	return units.KineticEnergyMWtoEV(0.5 * a.mass[i] * v2), nil
}

// GetAtomNeighbors returns the indices currently in atom i's cached
// Verlet list.
func (e *Engine) GetAtomNeighbors(i int) ([]int, error) {
	if i < 0 || i >= e.atoms.filled {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAtom, i)
	}
	return e.neighbors.Partners(i), nil
}

// GetBondedAtoms returns the indices radially bonded to atom i.
func (e *Engine) GetBondedAtoms(i int) ([]int, error) {
	if i < 0 || i >= e.atoms.filled {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAtom, i)
	}
	row := e.radialBonds.matrix[i]
	out := make([]int, 0, len(row))
	for j := range row {
		out = append(out, j)
	}
	return out, nil
}

// GetMoleculeAtoms returns every atom reachable from i by a chain of
// radial bonds, i included (spec.md §9's reentrancy-safe molecule
// traversal, per SPEC_FULL.md's REDESIGN FLAGS).
func (e *Engine) GetMoleculeAtoms(i int) ([]int, error) {
	if i < 0 || i >= e.atoms.filled {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAtom, i)
	}
	return getMoleculeAtoms(e.radialBonds.matrix, i), nil
}

// AtomInBounds reports whether (x, y) lies within the domain, deflated
// by radius so the whole atom (not just its center) stays inside.
func (e *Engine) AtomInBounds(x, y, radius float64) bool {
	return x >= radius && x <= e.lx-radius && y >= radius && y <= e.ly-radius
}

// CanPlaceAtom reports whether an atom of the given radius centered at
// (x, y) would overlap any existing atom or lie outside the domain.
func (e *Engine) CanPlaceAtom(x, y, radius float64) bool {
	if !e.AtomInBounds(x, y, radius) {
		return false
	}
	a := e.atoms
	for i := 0; i < a.filled; i++ {
		dx := a.x[i] - x
		dy := a.y[i] - y
		minDist := a.radius[i] + radius
		if dx*dx+dy*dy < minDist*minDist {
			return false
		}
	}
	return true
}

// PotentialCalculator evaluates the LJ/Coulomb potential energy (and,
// when built with wantGradient, its gradient) that a hypothetical atom
// of a fixed element and charge would experience at an arbitrary
// (x, y) against every atom currently in the engine. It is a probe,
// not a placed atom: it never touches bonds, restraints, obstacles, or
// the real atom arrays. newPotentialCalculator/findMinimumPELocation/
// findMinimumPESquaredLocation (spec.md §6) use it to search for good
// atom-placement sites the way a scenario-building tool wants to.
type PotentialCalculator struct {
	e            *Engine
	element      int
	charge       float64
	wantGradient bool
}

// NewPotentialCalculator builds a calculator for a hypothetical atom of
// element el and charge q, per spec.md §6's newPotentialCalculator(el,
// q, wantGradient).
func (e *Engine) NewPotentialCalculator(el int, q float64, wantGradient bool) (*PotentialCalculator, error) {
	if el < 0 || el >= e.elements.n || !e.elements.used[el] {
		return nil, fmt.Errorf("%w: %d", ErrUnknownElement, el)
	}
	return &PotentialCalculator{e: e, element: el, charge: q, wantGradient: wantGradient}, nil
}

// Evaluate returns the potential energy in eV at (x, y), summed over
// every atom within the relevant element pair's LJ cutoff (Coulomb has
// no cutoff, matching accumulateCoulomb). When the calculator was built
// with wantGradient, gx/gy hold d(PE)/d(x,y) in eV/nm; otherwise they
// are zero. Respects the engine's current UseLennardJonesInteraction/
// UseCoulombInteraction toggles.
func (pc *PotentialCalculator) Evaluate(x, y float64) (pe, gx, gy float64) {
	e := pc.e
	a := e.atoms
	for i := 0; i < a.filled; i++ {
		dx := x - a.x[i]
		dy := y - a.y[i]
		rSq := dx*dx + dy*dy
		if rSq == 0 {
			continue
		}

		if e.lennardJonesOn {
			coeff := e.elements.pair(pc.element, a.element[i])
			if rSq < coeff.ljCutoffSq {
				pe += coeff.kernel.PotentialFromSquaredDistance(rSq)
				if pc.wantGradient {
					fOverR := coeff.kernel.ForceOverDistanceFromSquaredDistance(rSq)
					gx += fOverR * dx
					gy += fOverR * dy
				}
			}
		}

		if e.coulombOn && pc.charge != 0 && a.charge[i] != 0 {
			pe += potential.CoulombPotentialFromSquaredDistance(rSq, pc.charge, a.charge[i]) * units.MWtoEV
			if pc.wantGradient {
				fOverR := potential.CoulombForceOverDistanceFromSquaredDistance(rSq, pc.charge, a.charge[i])
				gx += fOverR * dx * units.MWtoEV
				gy += fOverR * dy * units.MWtoEV
			}
		}
	}
	return pe, gx, gy
}

const (
	potentialSearchGridN      = 20
	potentialRefineSteps      = 200
	potentialRefineStepLength = 1e-3
	potentialRefineTolerance  = 1e-6
)

// findMinimumLocation walks a potentialSearchGridN x potentialSearchGridN
// grid over the domain, keeping the lowest-score sample, then (when
// calc was built with wantGradient) refines from that point with a
// normalized steepest-descent walk on score/gradient, mirroring
// MinimizeEnergy's normalized-step style. scoreAndGrad turns a raw
// (pe, gx, gy) sample into the scalar being minimized and its gradient.
func (e *Engine) findMinimumLocation(calc *PotentialCalculator, scoreAndGrad func(pe, gx, gy float64) (score, dx, dy float64)) (x, y, pe float64) {
	bestScore := math.Inf(1)
	for iy := 0; iy < potentialSearchGridN; iy++ {
		sy := e.ly * (float64(iy) + 0.5) / float64(potentialSearchGridN)
		for ix := 0; ix < potentialSearchGridN; ix++ {
			sx := e.lx * (float64(ix) + 0.5) / float64(potentialSearchGridN)
			samplePE, sgx, sgy := calc.Evaluate(sx, sy)
			score, _, _ := scoreAndGrad(samplePE, sgx, sgy)
			if score < bestScore {
				bestScore, x, y, pe = score, sx, sy, samplePE
			}
		}
	}

	if !calc.wantGradient {
		return x, y, pe
	}

	prevScore := bestScore
	for step := 0; step < potentialRefineSteps; step++ {
		samplePE, sgx, sgy := calc.Evaluate(x, y)
		score, dx, dy := scoreAndGrad(samplePE, sgx, sgy)
		mag := math.Hypot(dx, dy)
		if mag == 0 {
			break
		}
		stride := potentialRefineStepLength / mag
		nx := math.Max(0, math.Min(e.lx, x-stride*dx))
		ny := math.Max(0, math.Min(e.ly, y-stride*dy))
		x, y, pe = nx, ny, samplePE

		if math.Abs(score-prevScore) < potentialRefineTolerance {
			break
		}
		prevScore = score
	}
	return x, y, pe
}

// FindMinimumPELocation searches the domain for the (x, y) minimizing
// calc's potential energy -- the deepest well the hypothetical atom
// could sit in -- per spec.md §6's findMinimumPELocation.
func (e *Engine) FindMinimumPELocation(calc *PotentialCalculator) (x, y, pe float64) {
	return e.findMinimumLocation(calc, func(p, gx, gy float64) (float64, float64, float64) {
		return p, gx, gy
	})
}

// FindMinimumPESquaredLocation searches the domain for the (x, y)
// minimizing calc's squared potential energy -- the location where the
// hypothetical atom is closest to energetically neutral, as opposed to
// FindMinimumPELocation's deepest well -- per spec.md §6's
// findMinimumPESquaredLocation.
func (e *Engine) FindMinimumPESquaredLocation(calc *PotentialCalculator) (x, y, pe float64) {
	return e.findMinimumLocation(calc, func(p, gx, gy float64) (float64, float64, float64) {
		return p * p, 2 * p * gx, 2 * p * gy
	})
}
