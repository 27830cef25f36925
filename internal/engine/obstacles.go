package engine

import (
	"fmt"
	"math"
)

// obstacleSet is the chunk-grown array of movable/immovable rectangular
// obstacles, per spec.md §3. Mass = +Inf marks an immovable obstacle;
// atom collisions against it reflect as off a wall.
type obstacleSet struct {
	n        int
	capacity int

	x, y          []float64 // lower-left corner, nm
	width, height []float64
	vx, vy        []float64
	extFX, extFY  []float64
	friction      []float64
	mass          []float64
	prevX, prevY  []float64

	probeW, probeN []bool
	probeE, probeS []bool

	r, g, b []uint8
	visible []bool
}

func newObstacleSet() *obstacleSet {
	return &obstacleSet{}
}

func (o *obstacleSet) ensureCapacity(needed int) {
	if needed <= o.capacity {
		return
	}
	newCap := growChunked(needed)
	growF := func(s []float64) []float64 {
		g := make([]float64, newCap)
		copy(g, s)
		return g
	}
	growBool := func(s []bool) []bool {
		g := make([]bool, newCap)
		copy(g, s)
		return g
	}
	growByte := func(s []uint8) []uint8 {
		g := make([]uint8, newCap)
		copy(g, s)
		return g
	}
	o.x = growF(o.x)
	o.y = growF(o.y)
	o.width = growF(o.width)
	o.height = growF(o.height)
	o.vx = growF(o.vx)
	o.vy = growF(o.vy)
	o.extFX = growF(o.extFX)
	o.extFY = growF(o.extFY)
	o.friction = growF(o.friction)
	o.mass = growF(o.mass)
	o.prevX = growF(o.prevX)
	o.prevY = growF(o.prevY)
	o.probeW = growBool(o.probeW)
	o.probeN = growBool(o.probeN)
	o.probeE = growBool(o.probeE)
	o.probeS = growBool(o.probeS)
	o.visible = growBool(o.visible)
	o.r = growByte(o.r)
	o.g = growByte(o.g)
	o.b = growByte(o.b)
	o.capacity = newCap
}

func (o *obstacleSet) add(p ObstacleProps) int {
	o.ensureCapacity(o.n + 1)
	i := o.n
	o.n++
	o.set(i, p)
	o.prevX[i], o.prevY[i] = p.X, p.Y
	return i
}

func (o *obstacleSet) set(i int, p ObstacleProps) {
	o.x[i], o.y[i] = p.X, p.Y
	o.width[i], o.height[i] = p.Width, p.Height
	o.vx[i], o.vy[i] = p.VX, p.VY
	o.extFX[i], o.extFY[i] = p.ExtFX, p.ExtFY
	o.friction[i] = p.Friction
	o.mass[i] = p.Mass
	o.probeW[i], o.probeN[i] = p.ProbeW, p.ProbeN
	o.probeE[i], o.probeS[i] = p.ProbeE, p.ProbeS
	o.r[i], o.g[i], o.b[i] = p.R, p.G, p.B
	o.visible[i] = p.Visible
}

func (o *obstacleSet) setProperties(i int, p ObstacleProps) error {
	if i < 0 || i >= o.n {
		return fmt.Errorf("%w: %d", ErrUnknownObstacle, i)
	}
	o.set(i, p)
	return nil
}

func (o *obstacleSet) isMovable(i int) bool {
	return !math.IsInf(o.mass[i], 1)
}

// movableCount returns how many obstacles have finite mass, the degree-
// of-freedom contribution folded into the thermostat's temperature
// calculation alongside atom count (spec.md §4.9).
func (o *obstacleSet) movableCount() int {
	n := 0
	for i := 0; i < o.n; i++ {
		if o.isMovable(i) {
			n++
		}
	}
	return n
}

func (o *obstacleSet) clone() *obstacleSet {
	cp := *o
	cp.x = append([]float64(nil), o.x...)
	cp.y = append([]float64(nil), o.y...)
	cp.width = append([]float64(nil), o.width...)
	cp.height = append([]float64(nil), o.height...)
	cp.vx = append([]float64(nil), o.vx...)
	cp.vy = append([]float64(nil), o.vy...)
	cp.extFX = append([]float64(nil), o.extFX...)
	cp.extFY = append([]float64(nil), o.extFY...)
	cp.friction = append([]float64(nil), o.friction...)
	cp.mass = append([]float64(nil), o.mass...)
	cp.prevX = append([]float64(nil), o.prevX...)
	cp.prevY = append([]float64(nil), o.prevY...)
	cp.probeW = append([]bool(nil), o.probeW...)
	cp.probeN = append([]bool(nil), o.probeN...)
	cp.probeE = append([]bool(nil), o.probeE...)
	cp.probeS = append([]bool(nil), o.probeS...)
	cp.visible = append([]bool(nil), o.visible...)
	cp.r = append([]uint8(nil), o.r...)
	cp.g = append([]uint8(nil), o.g...)
	cp.b = append([]uint8(nil), o.b...)
	return &cp
}

func (o *obstacleSet) restoreFrom(snap *obstacleSet) {
	*o = *snap.clone()
}
