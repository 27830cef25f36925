package engine

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/asymmetrica-labs/moldyn2d/internal/potential"
	"github.com/asymmetrica-labs/moldyn2d/internal/pressure"
	"github.com/asymmetrica-labs/moldyn2d/internal/units"
)

// ComputeOutputState fills state with the current step's observables
// per spec.md §4.10: potential energy (total and broken down), kinetic
// energy, temperature, center-of-mass position/momentum/velocity,
// angular velocity, and per-obstacle/per-wall pressures. Bonded pairs
// are excluded from the LJ/Coulomb sums to avoid double-counting energy
// already captured by the radial/angular bond terms.
func (e *Engine) ComputeOutputState(state *OutputState) {
	a := e.atoms
	state.Time = e.time

	var pe PotentialBreakdown
	pe.LennardJones = e.lennardJonesPotential()
	pe.Coulomb = e.coulombPotential()
	pe.Radial = e.radialBondPotential()
	pe.Angular = e.angularBondPotential()
	pe.Restraint = e.restraintPotential() + e.springPotential()
	pe.Gravity = e.gravityPotential()
	state.Potential = pe
	state.PotentialEnergy = pe.Total()

	keMW := kineticEnergyMW(a, e.obstacles)
	keEV := units.KineticEnergyMWtoEV(keMW)
	state.KineticEnergy = keEV
	state.Temperature = units.TemperatureFromKineticEnergy(keEV, a.filled+e.obstacles.movableCount())
	state.TemperatureStdDev = e.temperatureStdDev()

	e.computeCenterOfMass(state)

	e.radialBonds.refreshResults(a.x[:a.filled], a.y[:a.filled])

	state.Pressures = state.Pressures[:0]
	for i := 0; i < e.obstacles.n; i++ {
		state.Pressures = append(state.Pressures, [4]float64{
			e.probes.Pressure(i, pressure.West),
			e.probes.Pressure(i, pressure.North),
			e.probes.Pressure(i, pressure.East),
			e.probes.Pressure(i, pressure.South),
		})
	}
}

// lennardJonesPotential sums the LJ potential over the cached Verlet
// list (excluding bonded pairs), in eV.
func (e *Engine) lennardJonesPotential() float64 {
	if !e.lennardJonesOn {
		return 0
	}
	a := e.atoms
	total := 0.0
	for i := 0; i < a.filled; i++ {
		for _, j := range e.neighbors.Partners(i) {
			if j <= i || e.radialBonds.isBonded(i, j) {
				continue
			}
			dx := a.x[j] - a.x[i]
			dy := a.y[j] - a.y[i]
			rSq := dx*dx + dy*dy
			pc := e.elements.pair(a.element[i], a.element[j])
			if rSq >= pc.ljCutoffSq {
				continue
			}
			total += pc.kernel.PotentialFromSquaredDistance(rSq)
		}
	}
	return total
}

// coulombPotential sums the Coulomb potential over charged pairs
// (excluding bonded pairs), converting from the kernel's MW-unit return
// to eV.
func (e *Engine) coulombPotential() float64 {
	if !e.coulombOn {
		return 0
	}
	a := e.atoms
	charged := a.chargedAtoms
	total := 0.0
	for idx1 := 1; idx1 < len(charged); idx1++ {
		i := charged[idx1]
		for idx2 := 0; idx2 < idx1; idx2++ {
			j := charged[idx2]
			if e.radialBonds.isBonded(i, j) {
				continue
			}
			dx := a.x[j] - a.x[i]
			dy := a.y[j] - a.y[i]
			rSq := dx*dx + dy*dy
			total += potential.CoulombPotentialFromSquaredDistance(rSq, a.charge[i], a.charge[j])
		}
	}
	return total * units.MWtoEV
}

func (e *Engine) radialBondPotential() float64 {
	b := e.radialBonds
	a := e.atoms
	total := 0.0
	for k := 0; k < b.n; k++ {
		i1, i2 := b.atom1[k], b.atom2[k]
		dx := a.x[i2] - a.x[i1]
		dy := a.y[i2] - a.y[i1]
		r := math.Sqrt(dx*dx + dy*dy)
		d := r - b.length0[k]
		total += 0.5 * b.strength[k] * d * d
	}
	return total
}

func (e *Engine) angularBondPotential() float64 {
	bonds := e.angularBonds
	a := e.atoms
	total := 0.0
	for k := 0; k < bonds.n; k++ {
		i1, i2, apex := bonds.atom1[k], bonds.atom2[k], bonds.atom3[k]
		rijX, rijY := a.x[i1]-a.x[apex], a.y[i1]-a.y[apex]
		rkjX, rkjY := a.x[i2]-a.x[apex], a.y[i2]-a.y[apex]
		rij := math.Sqrt(rijX*rijX + rijY*rijY)
		rkj := math.Sqrt(rkjX*rkjX + rkjY*rkjY)
		if rij == 0 || rkj == 0 {
			continue
		}
		cosTheta := (rijX*rkjX + rijY*rkjY) / (rij * rkj)
		cosTheta = math.Max(-1, math.Min(1, cosTheta))
		theta := math.Acos(cosTheta)
		d := theta - bonds.angle0[k]
		total += 0.5 * bonds.strength[k] * d * d
	}
	return total
}

func (e *Engine) restraintPotential() float64 {
	r := e.restraints
	a := e.atoms
	total := 0.0
	for k := 0; k < r.n; k++ {
		i := r.atomIndex[k]
		dx := r.x0[k] - a.x[i]
		dy := r.y0[k] - a.y[i]
		total += 0.5 * r.strength[k] * (dx*dx + dy*dy)
	}
	return total
}

func (e *Engine) springPotential() float64 {
	s := e.springs
	a := e.atoms
	total := 0.0
	for k := range s.active {
		if !s.active[k] {
			continue
		}
		i := s.atomIndex[k]
		dx := s.x[k] - a.x[i]
		dy := s.y[k] - a.y[i]
		total += 0.5 * s.strength[k] * (dx*dx + dy*dy)
	}
	return total
}

// gravityPotential sums m*g*y over every atom, converted to eV. Zero
// when gravity is disabled.
func (e *Engine) gravityPotential() float64 {
	if !e.gravityOn {
		return 0
	}
	a := e.atoms
	total := 0.0
	for i := 0; i < a.filled; i++ {
		total += a.mass[i] * e.gravity * a.y[i]
	}
	return total * units.MWtoEV
}

// totalPotentialEnergy sums every PE component without the rest of
// ComputeOutputState's bookkeeping (CM, pressures, bond-result mirror),
// for use by the minimizer's per-iteration convergence/explosion check.
func (e *Engine) totalPotentialEnergy() float64 {
	return e.lennardJonesPotential() + e.coulombPotential() + e.radialBondPotential() +
		e.angularBondPotential() + e.restraintPotential() + e.springPotential() + e.gravityPotential()
}

// computeCenterOfMass fills the CM position/momentum/velocity and
// angular-velocity fields of state.
func (e *Engine) computeCenterOfMass(state *OutputState) {
	a := e.atoms
	if a.filled == 0 {
		state.CMPositionX, state.CMPositionY = 0, 0
		state.CMMomentumX, state.CMMomentumY = 0, 0
		state.CMVelocityX, state.CMVelocityY = 0, 0
		state.AngularVelocity = 0
		return
	}

	// Mass-weighted sums and momentum totals are bulk reductions over
	// parallel slices, so they go through gonum/floats (as
	// internal/neighbor does for its own bulk vector ops) rather than a
	// hand-rolled loop.
	mass, x, y := a.mass[:a.filled], a.x[:a.filled], a.y[:a.filled]
	totalMass := floats.Sum(mass)
	sumX := floats.Dot(mass, x)
	sumY := floats.Dot(mass, y)
	sumPX := floats.Sum(a.px[:a.filled])
	sumPY := floats.Sum(a.py[:a.filled])
	state.CMPositionX = sumX / totalMass
	state.CMPositionY = sumY / totalMass
	state.CMMomentumX = sumPX
	state.CMMomentumY = sumPY
	state.CMVelocityX = sumPX / totalMass
	state.CMVelocityY = sumPY / totalMass

	var angularMomentum, momentOfInertia float64
	for i := 0; i < a.filled; i++ {
		dx := a.x[i] - state.CMPositionX
		dy := a.y[i] - state.CMPositionY
		angularMomentum += a.mass[i] * (dx*a.vy[i] - dy*a.vx[i])
		momentOfInertia += a.mass[i] * (dx*dx + dy*dy)
	}
	if momentOfInertia > 0 {
		state.AngularVelocity = angularMomentum / momentOfInertia
	} else {
		state.AngularVelocity = 0
	}
}

// UpdateVdwPairsArray recomputes e.vdwPairs in place: every non-bonded,
// opposite- or zero-charge atom pair whose separation is within
// vdwLinesRatio*sigma_ij, for renderer consumption (spec.md §4.10).
// sigma_ij is the mixed pair sigma from the element pair table; no
// element epsilon enters the comparison.
func (e *Engine) UpdateVdwPairsArray() {
	e.vdwPairs = e.vdwPairs[:0]
	a := e.atoms
	for i := 0; i < a.filled; i++ {
		for _, j := range e.neighbors.Partners(i) {
			if j <= i || e.radialBonds.isBonded(i, j) {
				continue
			}
			if a.charge[i]*a.charge[j] > 0 {
				continue // same-sign charges excluded; opposite- or zero-charge only
			}
			dx := a.x[j] - a.x[i]
			dy := a.y[j] - a.y[i]
			rSq := dx*dx + dy*dy
			sigmaIJ := e.elements.pair(a.element[i], a.element[j]).sigma
			threshold := e.vdwLinesRatio * sigmaIJ
			if rSq <= threshold*threshold {
				e.vdwPairs = append(e.vdwPairs, [2]int{i, j})
			}
		}
	}
}
