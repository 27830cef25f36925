package engine

import (
	"math"

	"go.uber.org/zap"

	"github.com/asymmetrica-labs/moldyn2d/internal/potential"
	"github.com/asymmetrica-labs/moldyn2d/internal/units"
)

// zeroAccelerations clears the force/acceleration accumulator ahead of
// a new accumulation pass (spec.md §4.7 step 3: "zero a").
func (e *Engine) zeroAccelerations() {
	a := e.atoms
	for i := 0; i < a.filled; i++ {
		a.ax[i], a.ay[i] = 0, 0
	}
}

// accumulateForces runs every force component in spec.md §4.4-§4.6,
// leaving ax/ay in MW force units (not yet divided by mass). rebuild
// controls whether the short-range pass walks the cell list (and
// repopulates the Verlet list) or the cached Verlet list alone, per
// spec.md §4.3's rebuild policy.
func (e *Engine) accumulateForces(rebuild bool) {
	e.zeroAccelerations()
	e.accumulateShortRange(rebuild)
	e.accumulateCoulomb()
	e.accumulateRadialBonds()
	e.accumulateAngularBonds()
	e.accumulateRestraints()
	e.accumulateSprings()
	e.accumulateDrag()
}

// accumulateShortRange implements spec.md §4.4. When rebuild is true,
// pairs are discovered by walking the cell list's half-stencil and the
// Verlet list is repopulated in the same pass; otherwise only the
// cached Verlet list is iterated.
func (e *Engine) accumulateShortRange(rebuild bool) {
	if rebuild {
		e.rebuildCellsAndNeighbors()
	}

	apply := func(i, j int) {
		if e.radialBonds.isBonded(i, j) {
			return
		}
		a := e.atoms
		dx := a.x[j] - a.x[i]
		dy := a.y[j] - a.y[i]
		rSq := dx*dx + dy*dy

		pc := e.elements.pair(a.element[i], a.element[j])
		if !e.lennardJonesOn || rSq >= pc.ljCutoffSq || rSq == 0 {
			return
		}
		fOverR := pc.kernel.ForceOverDistanceFromSquaredDistance(rSq) * units.EVtoMW
		fx := fOverR * dx
		fy := fOverR * dy
		a.ax[i] += fx
		a.ay[i] += fy
		a.ax[j] -= fx
		a.ay[j] -= fy
	}

	if !rebuild {
		if !e.lennardJonesOn {
			return
		}
		for i := 0; i < e.atoms.filled; i++ {
			for _, j := range e.neighbors.Partners(i) {
				if j <= i {
					continue
				}
				apply(i, j)
			}
		}
		return
	}

	builder := e.neighbors.BeginRebuild()
	rows, cols := e.cells.Rows(), e.cells.Cols()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			selfIdx := row*cols + col
			bucketA := e.cells.GetCell(selfIdx)
			if len(bucketA) == 0 {
				continue
			}
			for _, cellIdx := range e.cells.GetNeighboringCells(row, col) {
				bucketB := e.cells.GetCell(cellIdx)
				if cellIdx == selfIdx {
					for ii := 0; ii < len(bucketA); ii++ {
						for jj := ii + 1; jj < len(bucketA); jj++ {
							e.markAndApply(bucketA[ii], bucketA[jj], builder, apply)
						}
					}
					continue
				}
				for _, i := range bucketA {
					for _, j := range bucketB {
						e.markAndApply(i, j, builder, apply)
					}
				}
			}
		}
	}
	e.neighbors.FinishRebuild(builder)
}

// rebuildBuilder is the narrow interface forces.go needs from the
// builder returned by neighbor.List.BeginRebuild, whose concrete type is
// unexported and so cannot be named here.
type rebuildBuilder interface {
	MarkNeighbors(i, j int)
}

func (e *Engine) markAndApply(i, j int, builder rebuildBuilder, apply func(i, j int)) {
	if e.radialBonds.isBonded(i, j) {
		return
	}
	a := e.atoms
	dx := a.x[j] - a.x[i]
	dy := a.y[j] - a.y[i]
	rSq := dx*dx + dy*dy

	pc := e.elements.pair(a.element[i], a.element[j])
	if rSq < pc.neighborCutoffSq {
		builder.MarkNeighbors(i, j)
	}
	apply(i, j)
}

// rebuildCellsAndNeighbors refills the cell list from current
// positions and snapshots them for the next ShouldUpdate check, per
// spec.md §4.3's rebuild policy.
func (e *Engine) rebuildCellsAndNeighbors() {
	e.cells.Clear()
	a := e.atoms
	for i := 0; i < a.filled; i++ {
		e.cells.AddToCell(i, a.x[i], a.y[i])
		e.neighbors.SaveAtomPosition(i, a.x[i], a.y[i])
	}
	e.log().Debug("neighbor list rebuilt", zap.Int("atoms", a.filled))
}

// shouldRebuild reports whether the Verlet list has gone stale, per
// spec.md §4.3's displacement-based trigger. Always true before the
// first build (no atoms have been snapshotted yet).
func (e *Engine) shouldRebuild() bool {
	if e.neighbors == nil {
		return true
	}
	a := e.atoms
	return e.neighbors.ShouldUpdate(a.x[:a.filled], a.y[:a.filled])
}

// accumulateCoulomb implements spec.md §4.5: iterate only the
// charged-atom list, inner loop over earlier charged atoms, skip
// bonded pairs. Fast-path returns when Coulomb is off or no atom
// carries charge.
func (e *Engine) accumulateCoulomb() {
	if !e.coulombOn || len(e.atoms.chargedAtoms) == 0 {
		return
	}
	a := e.atoms
	charged := a.chargedAtoms
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
			if rSq == 0 {
				continue
			}
			fOverR := potential.CoulombForceOverDistanceFromSquaredDistance(rSq, a.charge[i], a.charge[j])
			fx := fOverR * dx
			fy := fOverR * dy
			a.ax[i] += fx
			a.ay[i] += fy
			a.ax[j] -= fx
			a.ay[j] -= fy
		}
	}
}

// accumulateRadialBonds implements spec.md §4.6's radial-bond formula:
// F = k*(r - r0), directed along the bond.
func (e *Engine) accumulateRadialBonds() {
	b := e.radialBonds
	if b.n == 0 {
		return
	}
	a := e.atoms
	for k := 0; k < b.n; k++ {
		i1, i2 := b.atom1[k], b.atom2[k]
		dx := a.x[i2] - a.x[i1]
		dy := a.y[i2] - a.y[i1]
		r := math.Sqrt(dx*dx + dy*dy)
		if r == 0 {
			continue
		}
		forceMag := b.strength[k] * (r - b.length0[k]) * units.EVtoMW
		fx := forceMag * dx / r
		fy := forceMag * dy / r
		a.ax[i1] += fx
		a.ay[i1] += fy
		a.ax[i2] -= fx
		a.ay[i2] -= fy
	}
}

// minSinTheta floors sin(theta) away from zero, per spec.md §4.6
// ("sinθ is floored at 1e-4") to avoid a divide-by-zero at a linear
// bond angle.
const minSinTheta = 1e-4

// accumulateAngularBonds implements spec.md §4.6's angular-bond
// formula, the standard harmonic-angle bending force (the same
// functional form as the teacher's CalculateAngleEnergy in
// force_field.go, generalized from a fixed apex convention to
// per-bond-instance atom indices).
func (e *Engine) accumulateAngularBonds() {
	bonds := e.angularBonds
	if bonds.n == 0 {
		return
	}
	a := e.atoms
	for k := 0; k < bonds.n; k++ {
		i1, i2, apex := bonds.atom1[k], bonds.atom2[k], bonds.atom3[k]

		rijX := a.x[i1] - a.x[apex]
		rijY := a.y[i1] - a.y[apex]
		rkjX := a.x[i2] - a.x[apex]
		rkjY := a.y[i2] - a.y[apex]

		rij := math.Sqrt(rijX*rijX + rijY*rijY)
		rkj := math.Sqrt(rkjX*rkjX + rkjY*rkjY)
		if rij == 0 || rkj == 0 {
			continue
		}

		cosTheta := (rijX*rkjX + rijY*rkjY) / (rij * rkj)
		cosTheta = math.Max(-1, math.Min(1, cosTheta))
		theta := math.Acos(cosTheta)

		sinTheta := math.Sin(theta)
		if sinTheta < minSinTheta {
			sinTheta = minSinTheta
		}

		st := bonds.strength[k] * (theta - bonds.angle0[k]) / sinTheta * units.EVtoMW
		commonPrefactor := st / (rij * rkj)
		sth := st * cosTheta
		cii := sth / (rij * rij)
		ckk := sth / (rkj * rkj)

		f1x := commonPrefactor*rkjX - cii*rijX
		f1y := commonPrefactor*rkjY - cii*rijY
		f2x := commonPrefactor*rijX - ckk*rkjX
		f2y := commonPrefactor*rijY - ckk*rkjY

		a.ax[i1] += f1x
		a.ay[i1] += f1y
		a.ax[i2] += f2x
		a.ay[i2] += f2y
		a.ax[apex] += -(f1x + f2x)
		a.ay[apex] += -(f1y + f2y)
	}
}

// accumulateRestraints implements spec.md §4.6's restraint formula:
// F = k*r directed from atom to anchor, no rest length.
func (e *Engine) accumulateRestraints() {
	r := e.restraints
	if r.n == 0 {
		return
	}
	a := e.atoms
	for k := 0; k < r.n; k++ {
		i := r.atomIndex[k]
		fx := r.strength[k] * (r.x0[k] - a.x[i]) * units.EVtoMW
		fy := r.strength[k] * (r.y0[k] - a.y[i]) * units.EVtoMW
		a.ax[i] += fx
		a.ay[i] += fy
	}
}

// accumulateSprings implements spec.md §4.6's externally-steered spring
// force, identical in form to restraints but over the mutable spring
// set.
func (e *Engine) accumulateSprings() {
	s := e.springs
	if len(s.active) == 0 {
		return
	}
	a := e.atoms
	for k := range s.active {
		if !s.active[k] {
			continue
		}
		i := s.atomIndex[k]
		fx := s.strength[k] * (s.x[k] - a.x[i]) * units.EVtoMW
		fy := s.strength[k] * (s.y[k] - a.y[i]) * units.EVtoMW
		a.ax[i] += fx
		a.ay[i] += fy
	}
}

// accumulateDrag implements spec.md §4.6's viscous drag. Drag is
// expressed per spec.md §4.6 design text as a direct acceleration
// contribution (-viscosity*friction_i*velocity); since ax/ay here are
// still force units pending the mass divide in the integrator, the
// per-atom mass is folded in now so the post-divide result comes out
// to exactly that acceleration.
func (e *Engine) accumulateDrag() {
	if e.viscosity == 0 {
		return
	}
	a := e.atoms
	for i := 0; i < a.filled; i++ {
		if a.friction[i] == 0 {
			continue
		}
		damping := -e.viscosity * a.friction[i] * a.mass[i]
		a.ax[i] += damping * a.vx[i]
		a.ay[i] += damping * a.vy[i]
	}
}

// applyMassDivideAndGravity converts the force accumulator into
// accelerations and adds gravity, per spec.md §4.6/§4.7.
func (e *Engine) applyMassDivideAndGravity() {
	a := e.atoms
	for i := 0; i < a.filled; i++ {
		a.ax[i] /= a.mass[i]
		a.ay[i] /= a.mass[i]
		if e.gravityOn {
			a.ay[i] -= e.gravity
		}
	}
}
