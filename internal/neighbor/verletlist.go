// Package neighbor implements the per-atom Verlet (skin) list that
// amortizes cell-list rebuilds across multiple integration steps
// (spec.md §4.3).
//
// The CSR-style flat storage (getList/getStartIdxFor/getEndIdxFor) is
// new relative to the teacher, which re-derived all-pairs neighbors
// fresh every frame via SpatialHash.GetNeighbors
// (backend/internal/physics/spatial_hash.go) rather than caching a
// partner list across steps — a short-lived protein viewer has no use
// for a skin-width rebuild trigger. The underlying grid-gather shape
// (bucket the cell, walk its half-stencil neighbors) is taken directly
// from that file; what is added here is the per-atom partner cache and
// the displacement-triggered shouldUpdate check, since nothing in the
// pack implements a Verlet list. Distances are tracked with
// gonum.org/v1/gonum/floats, the pack's numeric-slice helper library.
package neighbor

import "gonum.org/v1/gonum/floats"

// List is a CSR-style per-atom partner list built from cell-list
// traversal, plus the bookkeeping needed to decide when it has gone
// stale.
type List struct {
	n int

	// CSR storage: pairs[start[i]:start[i+1]] are i's partners.
	// Built via markNeighbors during a rebuild pass, then frozen
	// until the next rebuild.
	starts []int
	pairs  []int

	// snapshot positions taken at the last rebuild, used by
	// ShouldUpdate to measure cumulative per-atom displacement.
	snapX, snapY []float64

	maxDisplacement float64 // (cutoffList - cutoff) * sigma_min, halved at use site
}

// NewList allocates a Verlet list for n atoms. maxDisplacement is the
// skin width (cutoffList-cutoff)*sigma_min computed by the caller from
// the currently-used element pairs; ShouldUpdate trips when any atom
// has moved more than half of it since the last snapshot.
func NewList(n int, maxDisplacement float64) *List {
	return &List{
		n:               n,
		starts:          make([]int, n+1),
		snapX:           make([]float64, n),
		snapY:           make([]float64, n),
		maxDisplacement: maxDisplacement,
	}
}

// Resize reallocates per-atom bookkeeping for a new atom count,
// discarding any existing snapshot and partner data. Callers must
// rebuild immediately afterward.
func (l *List) Resize(n int) {
	l.n = n
	l.starts = make([]int, n+1)
	l.snapX = make([]float64, n)
	l.snapY = make([]float64, n)
	l.pairs = l.pairs[:0]
}

// SetMaxDisplacement updates the skin-width rebuild threshold, e.g.
// after the set of used element pairs changes and sigma_min shifts.
func (l *List) SetMaxDisplacement(d float64) {
	l.maxDisplacement = d
}

// SaveAtomPosition snapshots atom i's position at build time, both to
// seed ShouldUpdate's displacement tracking and (via the start/builder
// pair below) to begin a fresh CSR build.
func (l *List) SaveAtomPosition(i int, x, y float64) {
	l.snapX[i] = x
	l.snapY[i] = y
}

// builder accumulates adjacency during a rebuild pass before it is
// compacted into the CSR arrays. Kept separate from the CSR arrays
// since partner counts are unknown in advance.
type builder struct {
	adj [][]int
}

// BeginRebuild starts a fresh adjacency build for n atoms. Callers
// must follow with MarkNeighbors calls and finish with FinishRebuild.
func (l *List) BeginRebuild() *builder {
	b := &builder{adj: make([][]int, l.n)}
	return b
}

// MarkNeighbors records an unordered pair (i, j) discovered while
// walking the cell list's half-stencil. Self-pairs are rejected; the
// caller's half-stencil traversal order already guarantees no pair is
// discovered twice.
func (b *builder) MarkNeighbors(i, j int) {
	if i == j {
		return
	}
	b.adj[i] = append(b.adj[i], j)
	b.adj[j] = append(b.adj[j], i)
}

// FinishRebuild compacts the builder's adjacency lists into the
// flat CSR storage and becomes the list's new authoritative state.
func (l *List) FinishRebuild(b *builder) {
	total := 0
	for i := 0; i < l.n; i++ {
		total += len(b.adj[i])
	}
	pairs := make([]int, 0, total)
	starts := make([]int, l.n+1)
	for i := 0; i < l.n; i++ {
		starts[i] = len(pairs)
		pairs = append(pairs, b.adj[i]...)
	}
	starts[l.n] = len(pairs)

	l.starts = starts
	l.pairs = pairs
}

// GetList returns the full flat CSR partner array.
func (l *List) GetList() []int { return l.pairs }

// GetStartIdxFor returns the start offset (inclusive) of atom i's
// partners in GetList.
func (l *List) GetStartIdxFor(i int) int { return l.starts[i] }

// GetEndIdxFor returns the end offset (exclusive) of atom i's
// partners in GetList.
func (l *List) GetEndIdxFor(i int) int { return l.starts[i+1] }

// Partners returns atom i's partner slice directly, a convenience
// wrapper over GetStartIdxFor/GetEndIdxFor/GetList.
func (l *List) Partners(i int) []int {
	return l.pairs[l.starts[i]:l.starts[i+1]]
}

// ShouldUpdate reports whether any atom has moved more than half of
// maxDisplacement since the last snapshot, per-coordinate slices x, y
// indexed the same way as SaveAtomPosition.
func (l *List) ShouldUpdate(x, y []float64) bool {
	threshold := l.maxDisplacement / 2.0
	thresholdSq := threshold * threshold

	dx := make([]float64, l.n)
	dy := make([]float64, l.n)
	copy(dx, x)
	copy(dy, y)
	floats.Sub(dx, l.snapX)
	floats.Sub(dy, l.snapY)

	for i := 0; i < l.n; i++ {
		dSq := dx[i]*dx[i] + dy[i]*dy[i]
		if dSq > thresholdSq {
			return true
		}
	}
	return false
}
