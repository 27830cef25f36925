package engine

import (
	"fmt"
	"math"

	"github.com/asymmetrica-labs/moldyn2d/internal/potential"
)

// pairCoeffs holds the mixed Lennard-Jones coefficients and cutoffs
// for one ordered element pair, plus the shared kernel instance used
// by the short-range force loop (spec.md §3, §4.1).
type pairCoeffs struct {
	epsilon         float64
	sigma           float64
	ljCutoffSq      float64 // nm^2
	neighborCutoffSq float64 // nm^2
	kernel          *potential.LennardJones
}

// elementSet is the small, chunk-grown table of element species plus
// the pairwise coefficient matrix derived from them, per spec.md §3.
// Grounded on the teacher's ljParams/bondParams lookup tables
// (force_field.go), generalized from a fixed AMBER atom-type catalog
// to a caller-populated, dynamically growable table.
type elementSet struct {
	n        int
	capacity int

	mass    []float64
	epsilon []float64
	sigma   []float64
	radius  []float64
	used    []bool

	// pairs[i][j] is valid once both i and j are marked used; it is
	// recomputed by recomputePair whenever markUsed or setProperties
	// touches i or j.
	pairs [][]pairCoeffs

	// cutoffList/cutoff ratios, expressed as multipliers of sigma_ij,
	// per the glossary's "Cutoff (LJ)"/"Cutoff (list)" entries. These
	// are engine-wide constants rather than per-pair, since every
	// element pair shares the same multiplier.
	cutoffRatio     float64
	cutoffListRatio float64
}

const (
	defaultLJCutoffRatio   = 2.0 // glossary: "Cutoff (LJ) ... (≈ 2σ per pair)"
	defaultListCutoffRatio = 2.5 // glossary: "Cutoff (list) ... (≈ 2.5σ per pair)"
)

func newElementSet() *elementSet {
	return &elementSet{
		cutoffRatio:     defaultLJCutoffRatio,
		cutoffListRatio: defaultListCutoffRatio,
	}
}

func (e *elementSet) ensureCapacity(needed int) {
	if needed <= e.capacity {
		return
	}
	newCap := growChunked(needed)

	grow := func(s []float64) []float64 {
		g := make([]float64, newCap)
		copy(g, s)
		return g
	}
	growBool := func(s []bool) []bool {
		g := make([]bool, newCap)
		copy(g, s)
		return g
	}

	e.mass = grow(e.mass)
	e.epsilon = grow(e.epsilon)
	e.sigma = grow(e.sigma)
	e.radius = grow(e.radius)
	e.used = growBool(e.used)

	grownPairs := make([][]pairCoeffs, newCap)
	for i := range grownPairs {
		grownPairs[i] = make([]pairCoeffs, newCap)
	}
	for i := 0; i < e.n; i++ {
		copy(grownPairs[i], e.pairs[i])
	}
	e.pairs = grownPairs

	e.capacity = newCap
}

// add appends one element and returns its index. Used-ness is set the
// first time an atom references it (markUsed), not at add time.
func (e *elementSet) add(p ElementProps) int {
	e.ensureCapacity(e.n + 1)
	i := e.n
	e.n++

	e.mass[i] = p.Mass
	e.epsilon[i] = p.Epsilon
	e.sigma[i] = p.Sigma
	e.radius[i] = potential.LJRadius(p.Sigma)
	return i
}

// setProperties overwrites element i's (mass, epsilon, sigma),
// recomputing its radius and pair coefficients against every other
// used element (spec.md §6: "recomputes pair coefficients").
func (e *elementSet) setProperties(i int, p ElementProps) error {
	if i < 0 || i >= e.n {
		return fmt.Errorf("%w: %d", ErrUnknownElement, i)
	}
	e.mass[i] = p.Mass
	e.epsilon[i] = p.Epsilon
	e.sigma[i] = p.Sigma
	e.radius[i] = potential.LJRadius(p.Sigma)

	for j := 0; j < e.n; j++ {
		if e.used[j] {
			e.recomputePair(i, j)
		}
	}
	return nil
}

func (e *elementSet) markUsed(i int) {
	if e.used[i] {
		return
	}
	e.used[i] = true
	for j := 0; j < e.n; j++ {
		if e.used[j] {
			e.recomputePair(i, j)
		}
	}
}

// recomputePair mixes (epsilon, sigma) for element pair (i, j) via the
// Lorentz-Berthelot rules and installs/updates the shared LJ kernel.
// Mirrors Lorentz-Berthelot mixing in the teacher's
// force_field.go (LennardJonesParams construction).
func (e *elementSet) recomputePair(i, j int) {
	eps := potential.MixEpsilon(e.epsilon[i], e.epsilon[j])
	sigma := potential.MixSigma(e.sigma[i], e.sigma[j])

	ljCutoff := e.cutoffRatio * sigma
	listCutoff := e.cutoffListRatio * sigma

	pc := pairCoeffs{
		epsilon:          eps,
		sigma:            sigma,
		ljCutoffSq:       ljCutoff * ljCutoff,
		neighborCutoffSq: listCutoff * listCutoff,
		kernel:           potential.NewLennardJones(eps, sigma),
	}
	pc.kernel.MarkInUse()

	e.pairs[i][j] = pc
	e.pairs[j][i] = pc
}

// pair returns the coefficients for element pair (i, j). Both elements
// must already be marked used.
func (e *elementSet) pair(i, j int) pairCoeffs {
	return e.pairs[i][j]
}

// maxNeighborCutoff returns the largest neighbor-cutoff distance
// (not squared) over every used element pair, feeding the cell list's
// reinitialize(maxCutoff) (spec.md §4.2).
func (e *elementSet) maxNeighborCutoff() float64 {
	max := 0.0
	for i := 0; i < e.n; i++ {
		if !e.used[i] {
			continue
		}
		for j := 0; j < e.n; j++ {
			if !e.used[j] {
				continue
			}
			c := e.pairs[i][j]
			d := math.Sqrt(c.neighborCutoffSq)
			if d > max {
				max = d
			}
		}
	}
	return max
}

// minSkinWidth returns min_{used pairs}((cutoffList - cutoff)*sigma_ij),
// the maxDisplacement feeding the Verlet list's rebuild trigger
// (spec.md §4.3).
func (e *elementSet) minSkinWidth() float64 {
	min := -1.0
	skinRatio := e.cutoffListRatio - e.cutoffRatio
	for i := 0; i < e.n; i++ {
		if !e.used[i] {
			continue
		}
		for j := 0; j < e.n; j++ {
			if !e.used[j] {
				continue
			}
			skin := skinRatio * e.pairs[i][j].sigma
			if min < 0 || skin < min {
				min = skin
			}
		}
	}
	if min < 0 {
		return 0
	}
	return min
}

// clone returns a deep, independent copy of the element set. LJ kernel
// instances are immutable once in use, so pairCoeffs (and its kernel
// pointer) can be copied by value without violating the "clone is
// independent" contract — no clone ever calls SetCoefficients on a
// shared kernel.
func (e *elementSet) clone() *elementSet {
	cp := *e
	cp.mass = append([]float64(nil), e.mass...)
	cp.epsilon = append([]float64(nil), e.epsilon...)
	cp.sigma = append([]float64(nil), e.sigma...)
	cp.radius = append([]float64(nil), e.radius...)
	cp.used = append([]bool(nil), e.used...)

	cp.pairs = make([][]pairCoeffs, len(e.pairs))
	for i := range e.pairs {
		cp.pairs[i] = append([]pairCoeffs(nil), e.pairs[i]...)
	}
	return &cp
}

// restoreFrom overwrites e's live state from a previously cloned
// snapshot.
func (e *elementSet) restoreFrom(snap *elementSet) {
	*e = *snap.clone()
}
