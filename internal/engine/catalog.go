package engine

import (
	"fmt"
	"math"

	"github.com/asymmetrica-labs/moldyn2d/internal/neighbor"
	"github.com/asymmetrica-labs/moldyn2d/internal/pressure"
)

// InitializeElements bulk-declares the element catalog. Must be called
// before CreateAtomsArray (spec.md §6 error conditions: "creating atoms
// before elements").
func (e *Engine) InitializeElements(props []ElementProps) []int {
	indices := make([]int, len(props))
	for i, p := range props {
		indices[i] = e.elements.add(p)
	}
	return indices
}

// AddElement appends a single element to the catalog, returning its
// index.
func (e *Engine) AddElement(p ElementProps) int {
	return e.elements.add(p)
}

// CreateAtomsArray allocates backing storage for exactly n atoms. n
// must satisfy 1 <= n <= 1000 (spec.md §6); may only be called once,
// and only after at least one element has been declared.
func (e *Engine) CreateAtomsArray(n int) error {
	if e.atomsCreated {
		return ErrAtomsAlreadyCreated
	}
	if e.elements.n == 0 {
		return ErrElementsNotReady
	}
	if n < 1 || n > 1000 {
		return fmt.Errorf("%w: got %d", ErrAtomCountOutOfRange, n)
	}
	e.atoms.createArray(n)
	e.vdwPairs = make([][2]int, 0, n*(n-1)/2)
	e.atomsCreated = true
	e.neighbors = neighbor.NewList(e.atoms.capacity, 0)
	return nil
}

// AddAtom appends one atom, copying mass/radius from its referenced
// element (spec.md §3 invariant 2) and marking that element used
// (gating pair-coefficient computation, spec.md §3).
func (e *Engine) AddAtom(p AtomProps) (int, error) {
	if !e.atomsCreated {
		return 0, ErrElementsNotReady
	}
	if p.Element < 0 || p.Element >= e.elements.n {
		return 0, fmt.Errorf("%w: %d", ErrUnknownElement, p.Element)
	}
	e.elements.markUsed(p.Element)
	mass := e.elements.mass[p.Element]
	radius := e.elements.radius[p.Element]

	i, err := e.atoms.add(p, mass, radius)
	if err != nil {
		return 0, err
	}
	e.resizeAccelerationStructures()
	return i, nil
}

// resizeAccelerationStructures re-derives the cell list's cell size
// and the Verlet list's skin width from the currently-used element
// set, per spec.md §4.2's reinitialize(maxCutoff) and §4.3's
// maxDisplacement. Called whenever the used-element set or atom count
// changes.
func (e *Engine) resizeAccelerationStructures() {
	if !e.sizeSet || !e.atomsCreated {
		return
	}
	maxCutoff := e.elements.maxNeighborCutoff()
	if maxCutoff <= 0 {
		maxCutoff = math.Max(e.lx, e.ly)
	}
	e.cells.Reinitialize(e.lx, e.ly, maxCutoff)

	if e.neighbors == nil {
		e.neighbors = neighbor.NewList(e.atoms.capacity, 0)
	} else if e.atoms.capacity != e.neighborsCapacity {
		e.neighbors.Resize(e.atoms.capacity)
	}
	e.neighborsCapacity = e.atoms.capacity
	e.neighbors.SetMaxDisplacement(e.elements.minSkinWidth())
}

// AddRadialBond appends a radial bond and marks the pair bonded in the
// exclusion matrix.
func (e *Engine) AddRadialBond(p RadialBondProps) int {
	return e.radialBonds.add(p)
}

// SetRadialBondProperties overwrites radial bond i's properties.
func (e *Engine) SetRadialBondProperties(i int, p RadialBondProps) error {
	return e.radialBonds.setProperties(i, p)
}

// AddAngularBond appends an angular bond.
func (e *Engine) AddAngularBond(p AngularBondProps) int {
	return e.angularBonds.add(p)
}

// AddRestraint appends a fixed-anchor harmonic restraint.
func (e *Engine) AddRestraint(p RestraintProps) int {
	return e.restraints.add(p)
}

// AddObstacle appends an obstacle and grows the pressure-probe set to
// match.
func (e *Engine) AddObstacle(p ObstacleProps) int {
	i := e.obstacles.add(p)
	if e.probes == nil {
		e.probes = pressure.NewSet(e.obstacles.n)
	} else {
		e.probes.Resize(e.obstacles.n)
	}
	e.setObstacleProbes(i, p)
	return i
}

// SetObstacleProperties overwrites obstacle i's properties.
func (e *Engine) SetObstacleProperties(i int, p ObstacleProps) error {
	if err := e.obstacles.setProperties(i, p); err != nil {
		return err
	}
	e.setObstacleProbes(i, p)
	return nil
}

func (e *Engine) setObstacleProbes(i int, p ObstacleProps) {
	e.probes.SetEnabled(i, pressure.West, p.ProbeW)
	e.probes.SetEnabled(i, pressure.North, p.ProbeN)
	e.probes.SetEnabled(i, pressure.East, p.ProbeE)
	e.probes.SetEnabled(i, pressure.South, p.ProbeS)
}

// AddSpringForce appends a transient, externally-steered spring and
// returns its stable index.
func (e *Engine) AddSpringForce(atomIndex int, x, y, strength float64) int {
	return e.springs.add(atomIndex, x, y, strength)
}

// UpdateSpringForce moves spring i's anchor.
func (e *Engine) UpdateSpringForce(i int, x, y float64) error {
	return e.springs.update(i, x, y)
}

// RemoveSpringForce deactivates spring i.
func (e *Engine) RemoveSpringForce(i int) error {
	return e.springs.remove(i)
}

// SetAtomProperties overwrites atom i's mutable fields.
func (e *Engine) SetAtomProperties(i int, p AtomProps) error {
	if i < 0 || i >= e.atoms.filled {
		return fmt.Errorf("%w: %d", ErrUnknownAtom, i)
	}
	if p.Element < 0 || p.Element >= e.elements.n {
		return fmt.Errorf("%w: %d", ErrUnknownElement, p.Element)
	}
	e.elements.markUsed(p.Element)
	mass := e.elements.mass[p.Element]
	radius := e.elements.radius[p.Element]
	e.atoms.setProperties(i, p, mass, radius)
	e.resizeAccelerationStructures()
	return nil
}

// SetElementProperties overwrites element i's (mass, epsilon, sigma),
// propagating the new mass/radius to every atom currently referencing
// it and recomputing pair coefficients (spec.md §6).
func (e *Engine) SetElementProperties(i int, p ElementProps) error {
	if err := e.elements.setProperties(i, p); err != nil {
		return err
	}
	e.atoms.setMassRadiusForElement(i, e.elements.mass[i], e.elements.radius[i])
	return nil
}
