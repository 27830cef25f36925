package engine

import (
	"math"

	"github.com/asymmetrica-labs/moldyn2d/internal/pressure"
)

// foldAndReflect brings val back into [lo, hi] for the wall-bounce
// rule of spec.md §4.8: "first fold by an integer number of domain
// widths ... then reflect about the boundary". A triangle-wave modulo
// implements both steps in one expression — it is mathematically
// identical to repeatedly folding/reflecting off both walls until the
// point lands in range, which is exactly what an iterative
// fold-then-reflect loop would converge to, but without looping for an
// arbitrarily large overshoot.
func foldAndReflect(val, lo, hi float64) (newVal float64, crossed bool) {
	width := hi - lo
	if width <= 0 {
		return lo, val < lo || val > hi
	}
	if val >= lo && val <= hi {
		return val, false
	}
	period := 2 * width
	offset := math.Mod(val-lo, period)
	if offset < 0 {
		offset += period
	}
	if offset > width {
		offset = period - offset
	}
	return lo + offset, true
}

// bounceOffWalls implements spec.md §4.8's perfectly-elastic wall
// collisions for every atom, independently on each axis.
func (e *Engine) bounceOffWalls() {
	a := e.atoms
	for i := 0; i < a.filled; i++ {
		loX, hiX := a.radius[i], e.lx-a.radius[i]
		if nx, crossed := foldAndReflect(a.x[i], loX, hiX); crossed {
			a.x[i] = nx
			a.vx[i] = -a.vx[i]
			a.syncMomentum(i)
		}
		loY, hiY := a.radius[i], e.ly-a.radius[i]
		if ny, crossed := foldAndReflect(a.y[i], loY, hiY); crossed {
			a.y[i] = ny
			a.vy[i] = -a.vy[i]
			a.syncMomentum(i)
		}
	}
}

// bounceOffObstacleWalls implements spec.md §4.8's obstacle wall-bounce
// rule for movable obstacles themselves (they are reflected by the
// domain boundary exactly like atoms, using width/height in place of
// radius).
func (e *Engine) bounceOffObstacleWalls() {
	o := e.obstacles
	for i := 0; i < o.n; i++ {
		if !o.isMovable(i) {
			continue
		}
		loX, hiX := 0.0, e.lx-o.width[i]
		if nx, crossed := foldAndReflect(o.x[i], loX, hiX); crossed {
			o.x[i] = nx
			o.vx[i] = -o.vx[i]
		}
		loY, hiY := 0.0, e.ly-o.height[i]
		if ny, crossed := foldAndReflect(o.y[i], loY, hiY); crossed {
			o.y[i] = ny
			o.vy[i] = -o.vy[i]
		}
	}
}

// bounceOffObstacles implements spec.md §4.8's atom-obstacle collision
// rule: for each obstacle, inflate by the atom radius; if the atom is
// now inside, use the previous position's side (tested west, east,
// south, north in that priority) to decide which wall was crossed,
// reflect position about it, and resolve the normal-velocity component
// either via a 1D elastic two-body collision (movable obstacle) or a
// simple flip (immovable obstacle, reflecting as off a wall).
func (e *Engine) bounceOffObstacles(prevX, prevY []float64, updatePressure bool) {
	a := e.atoms
	o := e.obstacles
	for oi := 0; oi < o.n; oi++ {
		for ai := 0; ai < a.filled; ai++ {
			e.bounceOneObstacle(oi, ai, prevX[ai], prevY[ai], updatePressure)
		}
	}
}

func (e *Engine) bounceOneObstacle(oi, ai int, prevXi, prevYi float64, updatePressure bool) {
	a := e.atoms
	o := e.obstacles
	r := a.radius[ai]

	loX := o.x[oi] - r
	hiX := o.x[oi] + o.width[oi] + r
	loY := o.y[oi] - r
	hiY := o.y[oi] + o.height[oi] + r

	x, y := a.x[ai], a.y[ai]
	if x < loX || x > hiX || y < loY || y > hiY {
		return // not currently inside the inflated rectangle
	}

	prevLoX := o.prevX[oi] - r
	prevHiX := o.prevX[oi] + o.width[oi] + r
	prevLoY := o.prevY[oi] - r
	prevHiY := o.prevY[oi] + o.height[oi] + r

	switch {
	case prevXi <= prevLoX:
		e.resolveNormalCollision(oi, ai, pressure.West, loX, true, updatePressure)
	case prevXi >= prevHiX:
		e.resolveNormalCollision(oi, ai, pressure.East, hiX, true, updatePressure)
	case prevYi <= prevLoY:
		e.resolveNormalCollision(oi, ai, pressure.South, loY, false, updatePressure)
	case prevYi >= prevHiY:
		e.resolveNormalCollision(oi, ai, pressure.North, hiY, false, updatePressure)
	}
}

// resolveNormalCollision reflects atom ai's position about the crossed
// wall's coordinate, resolves the normal-velocity component against
// obstacle oi (1D elastic collision if movable, simple flip if not),
// and optionally accumulates the pressure-probe impulse.
func (e *Engine) resolveNormalCollision(oi, ai int, wall pressure.Wall, wallCoord float64, isXAxis bool, updatePressure bool) {
	a := e.atoms
	o := e.obstacles

	var vBeforeAtom, vBeforeObstacle float64
	if isXAxis {
		a.x[ai] = 2*wallCoord - a.x[ai]
		vBeforeAtom = a.vx[ai]
		vBeforeObstacle = o.vx[oi]
	} else {
		a.y[ai] = 2*wallCoord - a.y[ai]
		vBeforeAtom = a.vy[ai]
		vBeforeObstacle = o.vy[oi]
	}

	var vAfterAtom, vAfterObstacle float64
	if o.isMovable(oi) {
		m1, m2 := a.mass[ai], o.mass[oi]
		vAfterAtom = ((m1-m2)*vBeforeAtom + 2*m2*vBeforeObstacle) / (m1 + m2)
		vAfterObstacle = ((m2-m1)*vBeforeObstacle + 2*m1*vBeforeAtom) / (m1 + m2)
	} else {
		vAfterAtom = -vBeforeAtom
		vAfterObstacle = vBeforeObstacle
	}

	if isXAxis {
		a.vx[ai] = vAfterAtom
		o.vx[oi] = vAfterObstacle
	} else {
		a.vy[ai] = vAfterAtom
		o.vy[oi] = vAfterObstacle
	}
	a.syncMomentum(ai)

	if updatePressure {
		impulse := a.mass[ai] * math.Abs(vBeforeAtom-vAfterAtom)
		e.probes.AccumulateImpulse(oi, wall, impulse)
	}
}
