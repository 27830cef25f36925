package engine

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/asymmetrica-labs/moldyn2d/internal/units"
)

// pushTemperatureWindow records one instantaneous-temperature sample
// into the fixed-size ring buffer backing adjustTemperature's averaged
// reading.
func (e *Engine) pushTemperatureWindow(tInstant float64) {
	if e.tempWindow == nil {
		e.tempWindow = make([]float64, temperatureWindowSize(e.thermostatOn))
	}
	e.tempWindow[e.tempWindowHead] = tInstant
	e.tempWindowHead = (e.tempWindowHead + 1) % len(e.tempWindow)
	if e.tempWindowFilled < len(e.tempWindow) {
		e.tempWindowFilled++
	}
}

// averagedTemperature returns the mean of the window's filled samples,
// via gonum.org/v1/gonum/stat.Mean (the teacher's preference for
// leaning on gonum for reductions rather than hand-rolled loops,
// grounded on internal/neighbor's and computeCenterOfMass's use of
// gonum/floats elsewhere in this module).
func (e *Engine) averagedTemperature() float64 {
	if e.tempWindowFilled == 0 {
		return 0
	}
	return stat.Mean(e.tempWindow[:e.tempWindowFilled], nil)
}

// temperatureStdDev returns the standard deviation of the window's
// filled samples via gonum/stat.StdDev, an additional (non-spec-
// mandated) diagnostic alongside averagedTemperature's stat.Mean. Zero
// until at least two samples are present, since StdDev is undefined
// for a single sample.
func (e *Engine) temperatureStdDev() float64 {
	if e.tempWindowFilled < 2 {
		return 0
	}
	return stat.StdDev(e.tempWindow[:e.tempWindowFilled], nil)
}

// beginTransientTemperatureChange clears the temperature window and
// turns on transient mode, in which every adjustTemperature call
// rescales velocities regardless of the steady-state thermostat toggle
// until the window's average reaches the target, per spec.md §4.9's
// relaxToTemperature entry point.
func (e *Engine) beginTransientTemperatureChange() {
	e.transientActive = true
	e.tempWindowHead = 0
	e.tempWindowFilled = 0
}

// adjustTemperature implements spec.md §4.9: compute the instantaneous
// temperature from the total kinetic energy of every atom and movable
// obstacle and fold it into the rolling window. A transient change in
// progress ends once the window's average is within
// temperatureToleranceRatio of the target. Then, whenever the
// steady-state thermostat is on or a transient change is still in
// progress, every non-pinned atom's and movable obstacle's velocity (and
// momentum, for atoms) is rescaled by sqrt(target/instantaneous) —
// skipped when the instantaneous temperature is zero (a rescale factor
// is undefined at T=0).
func (e *Engine) adjustTemperature() {
	a := e.atoms
	if a.filled == 0 {
		return
	}

	keEV := units.KineticEnergyMWtoEV(kineticEnergyMW(a, e.obstacles))
	tInstant := units.TemperatureFromKineticEnergy(keEV, a.filled+e.obstacles.movableCount())
	e.pushTemperatureWindow(tInstant)

	if e.transientActive {
		tAvg := e.averagedTemperature()
		if math.Abs(tAvg-e.targetTemperature) <= temperatureToleranceRatio*e.targetTemperature {
			e.transientActive = false
			e.log().Info("thermostat transient converged", zap.Float64("target", e.targetTemperature), zap.Float64("averaged", tAvg))
		}
	}

	if !e.thermostatOn && !e.transientActive {
		return
	}
	if tInstant <= 0 {
		return
	}

	scale := math.Sqrt(e.targetTemperature / tInstant)
	for i := 0; i < a.filled; i++ {
		if a.pinned[i] {
			continue
		}
		a.vx[i] *= scale
		a.vy[i] *= scale
		a.syncMomentum(i)
		a.speed[i] = speedOf(a.vx[i], a.vy[i])
	}

	o := e.obstacles
	for i := 0; i < o.n; i++ {
		if !o.isMovable(i) {
			continue
		}
		o.vx[i] *= scale
		o.vy[i] *= scale
	}
}

// kineticEnergyMW sums 0.5*m*v^2 over every atom and every movable
// obstacle, in MW energy units. Immovable (infinite-mass) obstacles
// contribute nothing: their mass is +Inf but their velocity is always
// zero, and multiplying through would otherwise produce a NaN.
func kineticEnergyMW(a *atomSet, o *obstacleSet) float64 {
	total := 0.0
	for i := 0; i < a.filled; i++ {
		v2 := a.vx[i]*a.vx[i] + a.vy[i]*a.vy[i]
		total += 0.5 * a.mass[i] * v2
	}
	for i := 0; i < o.n; i++ {
		if !o.isMovable(i) {
			continue
		}
		v2 := o.vx[i]*o.vx[i] + o.vy[i]*o.vy[i]
		total += 0.5 * o.mass[i] * v2
	}
	return total
}

// RelaxToTemperature drives the simulation forward in dt-sized steps,
// rescaling velocities each step via the transient mechanism, until the
// averaged temperature settles within tolerance of target — spec.md
// §6's relaxToTemperature(target, dt, maxSteps).
func (e *Engine) RelaxToTemperature(target float64, dt float64, maxSteps int) error {
	if err := e.SetTargetTemperature(target); err != nil {
		return err
	}
	e.beginTransientTemperatureChange()
	for step := 0; step < maxSteps; step++ {
		if err := e.Integrate(dt, dt); err != nil {
			return fmt.Errorf("RelaxToTemperature: %w", err)
		}
		if !e.transientActive {
			return nil
		}
	}
	return fmt.Errorf("RelaxToTemperature: did not converge within %d steps", maxSteps)
}
