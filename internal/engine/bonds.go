package engine

import (
	"fmt"
	"sort"
)

// radialBondSet is the chunk-grown array of radial bonds plus the
// sparse symmetric bond matrix used for O(1) pair exclusion from LJ
// and Coulomb (spec.md §3).
type radialBondSet struct {
	n        int
	capacity int

	atom1, atom2 []int
	length0      []float64
	strength     []float64
	style        []BondStyle

	// matrix[i] is the set of atoms bonded to atom i, keyed by atom
	// index. A map-of-maps keeps the exclusion test O(1) average
	// without a dense N^2 boolean grid, since bonds are typically
	// sparse relative to atom count.
	matrix map[int]map[int]bool

	// results mirrors each bond's static properties plus its current
	// endpoint coordinates, refreshed by refreshResults each
	// computeOutputState call (spec.md §3, §5).
	results []RadialBondResult
}

func newRadialBondSet() *radialBondSet {
	return &radialBondSet{matrix: make(map[int]map[int]bool)}
}

func (b *radialBondSet) ensureCapacity(needed int) {
	if needed <= b.capacity {
		return
	}
	newCap := growChunked(needed)
	growInt := func(s []int) []int {
		g := make([]int, newCap)
		copy(g, s)
		return g
	}
	growF := func(s []float64) []float64 {
		g := make([]float64, newCap)
		copy(g, s)
		return g
	}
	growStyle := func(s []BondStyle) []BondStyle {
		g := make([]BondStyle, newCap)
		copy(g, s)
		return g
	}
	b.atom1 = growInt(b.atom1)
	b.atom2 = growInt(b.atom2)
	b.length0 = growF(b.length0)
	b.strength = growF(b.strength)
	b.style = growStyle(b.style)
	grownResults := make([]RadialBondResult, newCap)
	copy(grownResults, b.results)
	b.results = grownResults
	b.capacity = newCap
}

func (b *radialBondSet) add(p RadialBondProps) int {
	b.ensureCapacity(b.n + 1)
	i := b.n
	b.n++

	b.atom1[i] = p.Atom1
	b.atom2[i] = p.Atom2
	b.length0[i] = p.Length0
	b.strength[i] = p.Strength
	b.style[i] = p.Style

	b.markBonded(p.Atom1, p.Atom2)
	return i
}

func (b *radialBondSet) markBonded(a1, a2 int) {
	if b.matrix[a1] == nil {
		b.matrix[a1] = make(map[int]bool)
	}
	if b.matrix[a2] == nil {
		b.matrix[a2] = make(map[int]bool)
	}
	b.matrix[a1][a2] = true
	b.matrix[a2][a1] = true
}

// isBonded implements spec.md §3's bond matrix: O(1) exclusion test for
// the short-range and Coulomb force loops.
func (b *radialBondSet) isBonded(i, j int) bool {
	row := b.matrix[i]
	if row == nil {
		return false
	}
	return row[j]
}

func (b *radialBondSet) setProperties(i int, p RadialBondProps) error {
	if i < 0 || i >= b.n {
		return fmt.Errorf("%w: %d", ErrUnknownBond, i)
	}
	// Unbonding the old pair and bonding the new one keeps the matrix
	// consistent if a caller re-points a bond at different atoms.
	oldA1, oldA2 := b.atom1[i], b.atom2[i]
	if oldA1 != p.Atom1 || oldA2 != p.Atom2 {
		delete(b.matrix[oldA1], oldA2)
		delete(b.matrix[oldA2], oldA1)
		b.markBonded(p.Atom1, p.Atom2)
	}
	b.atom1[i] = p.Atom1
	b.atom2[i] = p.Atom2
	b.length0[i] = p.Length0
	b.strength[i] = p.Strength
	b.style[i] = p.Style
	return nil
}

// refreshResults rewrites every bond's RadialBondResult mirror with
// current endpoint coordinates, per spec.md §4.10/§5.
func (b *radialBondSet) refreshResults(x, y []float64) {
	for i := 0; i < b.n; i++ {
		b.results[i] = RadialBondResult{
			Atom1:    b.atom1[i],
			Atom2:    b.atom2[i],
			Length0:  b.length0[i],
			Strength: b.strength[i],
			Style:    b.style[i],
			X1:       x[b.atom1[i]],
			Y1:       y[b.atom1[i]],
			X2:       x[b.atom2[i]],
			Y2:       y[b.atom2[i]],
		}
	}
}

func (b *radialBondSet) clone() *radialBondSet {
	cp := *b
	cp.atom1 = append([]int(nil), b.atom1...)
	cp.atom2 = append([]int(nil), b.atom2...)
	cp.length0 = append([]float64(nil), b.length0...)
	cp.strength = append([]float64(nil), b.strength...)
	cp.style = append([]BondStyle(nil), b.style...)
	cp.results = append([]RadialBondResult(nil), b.results...)

	cp.matrix = make(map[int]map[int]bool, len(b.matrix))
	for k, row := range b.matrix {
		cpRow := make(map[int]bool, len(row))
		for j, v := range row {
			cpRow[j] = v
		}
		cp.matrix[k] = cpRow
	}
	return &cp
}

// restoreFrom overwrites b's live state from a previously cloned
// snapshot.
func (b *radialBondSet) restoreFrom(snap *radialBondSet) {
	*b = *snap.clone()
}

// angularBondSet is the chunk-grown array of angular bonds.
type angularBondSet struct {
	n        int
	capacity int

	atom1, atom2, atom3 []int
	angle0              []float64
	strength            []float64
}

func newAngularBondSet() *angularBondSet {
	return &angularBondSet{}
}

func (a *angularBondSet) ensureCapacity(needed int) {
	if needed <= a.capacity {
		return
	}
	newCap := growChunked(needed)
	growInt := func(s []int) []int {
		g := make([]int, newCap)
		copy(g, s)
		return g
	}
	growF := func(s []float64) []float64 {
		g := make([]float64, newCap)
		copy(g, s)
		return g
	}
	a.atom1 = growInt(a.atom1)
	a.atom2 = growInt(a.atom2)
	a.atom3 = growInt(a.atom3)
	a.angle0 = growF(a.angle0)
	a.strength = growF(a.strength)
	a.capacity = newCap
}

func (a *angularBondSet) add(p AngularBondProps) int {
	a.ensureCapacity(a.n + 1)
	i := a.n
	a.n++
	a.atom1[i] = p.Atom1
	a.atom2[i] = p.Atom2
	a.atom3[i] = p.Atom3
	a.angle0[i] = p.Angle0
	a.strength[i] = p.Strength
	return i
}

func (a *angularBondSet) clone() *angularBondSet {
	cp := *a
	cp.atom1 = append([]int(nil), a.atom1...)
	cp.atom2 = append([]int(nil), a.atom2...)
	cp.atom3 = append([]int(nil), a.atom3...)
	cp.angle0 = append([]float64(nil), a.angle0...)
	cp.strength = append([]float64(nil), a.strength...)
	return &cp
}

func (a *angularBondSet) restoreFrom(snap *angularBondSet) {
	*a = *snap.clone()
}

// restraintSet is the chunk-grown array of fixed-anchor restraints.
type restraintSet struct {
	n        int
	capacity int

	atomIndex []int
	strength  []float64
	x0, y0    []float64
}

func newRestraintSet() *restraintSet {
	return &restraintSet{}
}

func (r *restraintSet) ensureCapacity(needed int) {
	if needed <= r.capacity {
		return
	}
	newCap := growChunked(needed)
	growInt := func(s []int) []int {
		g := make([]int, newCap)
		copy(g, s)
		return g
	}
	growF := func(s []float64) []float64 {
		g := make([]float64, newCap)
		copy(g, s)
		return g
	}
	r.atomIndex = growInt(r.atomIndex)
	r.strength = growF(r.strength)
	r.x0 = growF(r.x0)
	r.y0 = growF(r.y0)
	r.capacity = newCap
}

func (r *restraintSet) add(p RestraintProps) int {
	r.ensureCapacity(r.n + 1)
	i := r.n
	r.n++
	r.atomIndex[i] = p.AtomIndex
	r.strength[i] = p.Strength
	r.x0[i] = p.X0
	r.y0[i] = p.Y0
	return i
}

func (r *restraintSet) clone() *restraintSet {
	cp := *r
	cp.atomIndex = append([]int(nil), r.atomIndex...)
	cp.strength = append([]float64(nil), r.strength...)
	cp.x0 = append([]float64(nil), r.x0...)
	cp.y0 = append([]float64(nil), r.y0...)
	return &cp
}

func (r *restraintSet) restoreFrom(snap *restraintSet) {
	*r = *snap.clone()
}

// springSet holds transient, externally-mutable spring forces. Unlike
// restraints, entries may be removed; removedSlots tracks freed
// indices so removeSpringForce doesn't shift every later index (which
// would invalidate indices callers have stored), per spec.md §3's
// "addSpringForce returns a stable index".
type springSet struct {
	atomIndex []int
	strength  []float64
	x, y      []float64
	active    []bool
}

func newSpringSet() *springSet {
	return &springSet{}
}

func (s *springSet) add(atomIndex int, x, y, strength float64) int {
	for i, active := range s.active {
		if !active {
			s.atomIndex[i] = atomIndex
			s.strength[i] = strength
			s.x[i] = x
			s.y[i] = y
			s.active[i] = true
			return i
		}
	}
	s.atomIndex = append(s.atomIndex, atomIndex)
	s.strength = append(s.strength, strength)
	s.x = append(s.x, x)
	s.y = append(s.y, y)
	s.active = append(s.active, true)
	return len(s.active) - 1
}

func (s *springSet) update(i int, x, y float64) error {
	if i < 0 || i >= len(s.active) || !s.active[i] {
		return fmt.Errorf("%w: %d", ErrUnknownSpring, i)
	}
	s.x[i], s.y[i] = x, y
	return nil
}

func (s *springSet) remove(i int) error {
	if i < 0 || i >= len(s.active) || !s.active[i] {
		return fmt.Errorf("%w: %d", ErrUnknownSpring, i)
	}
	s.active[i] = false
	return nil
}

func (s *springSet) clone() *springSet {
	return &springSet{
		atomIndex: append([]int(nil), s.atomIndex...),
		strength:  append([]float64(nil), s.strength...),
		x:         append([]float64(nil), s.x...),
		y:         append([]float64(nil), s.y...),
		active:    append([]bool(nil), s.active...),
	}
}

func (s *springSet) restoreFrom(snap *springSet) {
	*s = *snap.clone()
}

// getMoleculeAtoms returns the transitive closure of atom i over the
// radial-bond matrix: every atom reachable from i by a chain of bonds,
// i included. Keeps its visited set in a local map and returns a fresh slice,
// per SPEC_FULL.md's REDESIGN FLAGS passthrough of spec.md §9's note
// that the teacher's recursion shared mutable scratch state
// (atomsInMolecule, depth) on the engine object — eliminated here by
// keeping the visited set local to the call instead of storing it on
// the receiver.
func getMoleculeAtoms(matrix map[int]map[int]bool, start int) []int {
	visited := map[int]bool{start: true}
	stack := []int{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for neighbor := range matrix[cur] {
			if visited[neighbor] {
				continue
			}
			visited[neighbor] = true
			stack = append(stack, neighbor)
		}
	}
	out := make([]int, 0, len(visited))
	for atomIdx := range visited {
		out = append(out, atomIdx)
	}
	sort.Ints(out)
	return out
}
