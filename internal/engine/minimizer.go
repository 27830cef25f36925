package engine

import (
	"fmt"
	"math"
)

const (
	minimizerStepLength  = 1e-3
	minimizerTolerance   = 1e-4
	minimizerIterLimit   = 3000
	minimizerExplosionFactor = 10.0
)

// MinimizeEnergy performs steepest-descent energy minimization: each
// iteration accumulates forces, normalizes the step by the largest
// per-atom acceleration magnitude so a single stiff bond can't runaway
// the whole step, and moves every non-pinned atom along its
// acceleration. Grounded on the teacher's physics.MinimizeEnergy
// (backend/internal/physics/minimizer.go), generalized from a fixed
// per-coordinate step size to a normalized one (suited to this engine's
// far smaller, often near-equilibrium 2D systems) and from Cartesian
// forces to the same MW-unit accelerations the integrator already
// computes.
func (e *Engine) MinimizeEnergy() (*MinimizationResult, error) {
	if e.atoms.filled == 0 {
		return nil, ErrNoAtoms
	}

	result := &MinimizationResult{}
	e.accumulateForces(true)
	e.applyMassDivideAndGravity()
	prevEnergy := e.totalPotentialEnergy()
	result.InitialEnergy = prevEnergy

	a := e.atoms
	for step := 0; step < minimizerIterLimit; step++ {
		result.Steps = step + 1

		maxAcc := 0.0
		for i := 0; i < a.filled; i++ {
			if a.pinned[i] {
				continue
			}
			mag := math.Hypot(a.ax[i], a.ay[i])
			if mag > maxAcc {
				maxAcc = mag
			}
		}
		if maxAcc == 0 {
			result.FinalEnergy = prevEnergy
			result.DeltaEnergy = result.InitialEnergy - prevEnergy
			result.Converged = true
			result.Reason = "zero net force"
			return result, nil
		}

		stride := minimizerStepLength / maxAcc
		for i := 0; i < a.filled; i++ {
			if a.pinned[i] {
				continue
			}
			a.x[i] += stride * a.ax[i]
			a.y[i] += stride * a.ay[i]
		}

		e.accumulateForces(true)
		e.applyMassDivideAndGravity()
		currentEnergy := e.totalPotentialEnergy()

		if math.IsNaN(currentEnergy) || math.IsInf(currentEnergy, 0) ||
			(prevEnergy != 0 && math.Abs(currentEnergy) > math.Abs(prevEnergy)*minimizerExplosionFactor) {
			result.FinalEnergy = currentEnergy
			result.DeltaEnergy = result.InitialEnergy - currentEnergy
			result.Converged = false
			result.Reason = "numerical instability detected (step size too large)"
			return result, fmt.Errorf("%w: energy exploded from %g to %g", ErrDiverged, prevEnergy, currentEnergy)
		}

		deltaE := math.Abs(currentEnergy - prevEnergy)
		if deltaE < minimizerTolerance {
			result.FinalEnergy = currentEnergy
			result.DeltaEnergy = result.InitialEnergy - currentEnergy
			result.Converged = true
			result.Reason = fmt.Sprintf("energy converged (dE = %.6g < %.6g)", deltaE, minimizerTolerance)
			return result, nil
		}

		prevEnergy = currentEnergy
	}

	result.FinalEnergy = prevEnergy
	result.DeltaEnergy = result.InitialEnergy - prevEnergy
	result.Converged = false
	result.Reason = fmt.Sprintf("max steps reached (%d)", minimizerIterLimit)
	return result, nil
}
