package engine

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/asymmetrica-labs/moldyn2d/internal/units"
)

// divergenceFactor bounds how far a coordinate may drift beyond the
// domain before Integrate gives up and reports ErrDiverged, per
// spec.md §4.7 step 2's divergence guard.
const divergenceFactor = 100

// Integrate advances the simulation by floor(duration/dt) velocity-
// Verlet steps of size dt, per spec.md §4.7. Returns ErrNoAtoms if no
// atoms have been added yet, ErrDiverged if any atom's position goes
// non-finite or leaves the domain by more than 100x its extent.
func (e *Engine) Integrate(duration, dt float64) error {
	if e.atoms.filled == 0 {
		return ErrNoAtoms
	}
	steps := int(math.Floor(duration / dt))
	if steps <= 0 {
		return nil
	}

	e.accumulateForces(e.shouldRebuild())
	e.applyMassDivideAndGravity()
	e.atoms.applyPinMask()

	a := e.atoms
	prevX := make([]float64, a.filled)
	prevY := make([]float64, a.filled)

	for step := 0; step < steps; step++ {
		// 1. half-kick
		for i := 0; i < a.filled; i++ {
			a.vx[i] += 0.5 * a.ax[i] * dt
			a.vy[i] += 0.5 * a.ay[i] * dt
			a.syncMomentum(i)
		}

		// 2. drift
		copy(prevX, a.x[:a.filled])
		copy(prevY, a.y[:a.filled])
		for i := 0; i < a.filled; i++ {
			a.x[i] += a.vx[i] * dt
			a.y[i] += a.vy[i] * dt
		}
		if err := e.checkDivergence(); err != nil {
			return err
		}
		e.bounceOffWalls()
		e.bounceOffObstacles(prevX, prevY, true)

		// 3. recompute accelerations
		rebuild := e.shouldRebuild()
		e.accumulateForces(rebuild)
		e.applyMassDivideAndGravity()

		// 4. pin mask
		a.applyPinMask()

		// 5. half-kick again
		for i := 0; i < a.filled; i++ {
			a.vx[i] += 0.5 * a.ax[i] * dt
			a.vy[i] += 0.5 * a.ay[i] * dt
			a.syncMomentum(i)
			a.speed[i] = speedOf(a.vx[i], a.vy[i])
		}

		// 6. obstacle update
		e.advanceObstacles(dt)

		// 7. thermostat
		e.adjustTemperature()

		e.time += dt
	}

	e.probes.AdvanceByDuration(float64(steps)*dt, e.obstacles.width[:e.obstacles.n], e.obstacles.height[:e.obstacles.n])
	return nil
}

// advanceObstacles integrates every movable obstacle one dt step via
// the kinematic formula of spec.md §4.7 step 6: acceleration is
// extFx - drag*vx on x and extFy - drag*vy - g on y, the external
// force being per unit mass already.
func (e *Engine) advanceObstacles(dt float64) {
	o := e.obstacles
	for i := 0; i < o.n; i++ {
		if !o.isMovable(i) {
			continue
		}
		ax := o.extFX[i] - o.friction[i]*o.vx[i]
		ay := o.extFY[i] - o.friction[i]*o.vy[i]
		if e.gravityOn {
			ay -= e.gravity
		}
		o.vx[i] += ax * dt
		o.vy[i] += ay * dt
		o.prevX[i], o.prevY[i] = o.x[i], o.y[i]
		o.x[i] += o.vx[i] * dt
		o.y[i] += o.vy[i] * dt
	}
	e.bounceOffObstacleWalls()
}

// checkDivergence implements spec.md §4.7 step 2's divergence guard:
// any non-finite coordinate, or any coordinate more than 100x outside
// the domain extent, aborts the step.
func (e *Engine) checkDivergence() error {
	a := e.atoms
	loX, hiX := -divergenceFactor*e.lx, (divergenceFactor+1)*e.lx
	loY, hiY := -divergenceFactor*e.ly, (divergenceFactor+1)*e.ly
	for i := 0; i < a.filled; i++ {
		if !units.IsFinite(a.x[i]) || !units.IsFinite(a.y[i]) {
			e.log().Error("atom position went non-finite", zap.Int("atom", i), zap.Float64("time", e.time))
			return fmt.Errorf("%w: atom %d position is non-finite", ErrDiverged, i)
		}
		if a.x[i] < loX || a.x[i] > hiX || a.y[i] < loY || a.y[i] > hiY {
			e.log().Warn("atom left the domain", zap.Int("atom", i), zap.Float64("time", e.time))
			return fmt.Errorf("%w: atom %d left the domain", ErrDiverged, i)
		}
	}
	return nil
}
