// Package pressure implements the rolling directional impulse buffers
// behind each obstacle's optional wall probes (spec.md §4.8, §4.10,
// Glossary "Probe").
//
// Grounded on the teacher's ClashReport (backend/internal/physics/
// clash_detector.go): a plain struct of running counters built up
// incrementally across a scan and read back once the scan finishes.
// The same shape is used here — AccumulateImpulse plays the role of
// ClashReport's per-clash counter bump, and AdvanceByDuration plays the
// role of the final score/report conversion — generalized from a
// single-shot report into a rolling buffer that is drained and
// restarted every integration call.
package pressure

import (
	"github.com/asymmetrica-labs/moldyn2d/internal/snapshot"
	"github.com/asymmetrica-labs/moldyn2d/internal/units"
)

// Wall identifies one of an obstacle's four probed sides.
type Wall int

const (
	West Wall = iota
	North
	East
	South
	numWalls
)

// Probe holds one obstacle's four directional impulse accumulators and
// the pressure last computed from them.
type Probe struct {
	Enabled  [numWalls]bool
	impulse  [numWalls]float64 // running sum of m*(v_before - v_after), MW units
	pressure [numWalls]float64 // last value computed by AdvanceByDuration, bar
}

// Set holds one Probe per obstacle.
type Set struct {
	probes []Probe
}

// NewSet allocates a probe set for n obstacles, all walls disabled.
func NewSet(n int) *Set {
	return &Set{probes: make([]Probe, n)}
}

// Resize grows or shrinks the set to n obstacles, preserving existing
// probe state for indices that still exist.
func (s *Set) Resize(n int) {
	if n == len(s.probes) {
		return
	}
	grown := make([]Probe, n)
	copy(grown, s.probes)
	s.probes = grown
}

// SetEnabled toggles whether wall w of obstacle idx accumulates
// impulse.
func (s *Set) SetEnabled(idx int, w Wall, enabled bool) {
	s.probes[idx].Enabled[w] = enabled
}

// AccumulateImpulse adds an impulse contribution (m*(v_before-v_after),
// MW units) to obstacle idx's wall w, if that wall's probe is enabled.
// Collisions against a disabled probe are silently ignored, matching
// the teacher's "a report only tracks what it's configured to track"
// accumulator discipline.
func (s *Set) AccumulateImpulse(idx int, w Wall, impulse float64) {
	if !s.probes[idx].Enabled[w] {
		return
	}
	s.probes[idx].impulse[w] += impulse
}

// AdvanceByDuration converts each obstacle's accumulated impulse over
// the elapsed duration (fs) into a pressure in bar, given that
// obstacle's wall lengths (nm): west/east walls have length = height,
// north/south walls have length = width. The impulse accumulators are
// then reset to begin the next window.
func (s *Set) AdvanceByDuration(duration float64, widths, heights []float64) {
	if duration <= 0 {
		return
	}
	for i := range s.probes {
		length := [numWalls]float64{heights[i], widths[i], heights[i], widths[i]}
		for w := Wall(0); w < numWalls; w++ {
			if !s.probes[i].Enabled[w] {
				s.probes[i].pressure[w] = 0
				s.probes[i].impulse[w] = 0
				continue
			}
			forcePerLength := (s.probes[i].impulse[w] / duration) / length[w]
			s.probes[i].pressure[w] = units.PressureBarFromForcePerLengthMW(forcePerLength)
			s.probes[i].impulse[w] = 0
		}
	}
}

// Pressure returns obstacle idx's last-computed pressure (bar) on
// wall w.
func (s *Set) Pressure(idx int, w Wall) float64 {
	return s.probes[idx].pressure[w]
}

// Clone returns a deep, independent copy of the probe set, satisfying
// snapshot.Handle.
func (s *Set) Clone() snapshot.Handle {
	cp := make([]Probe, len(s.probes))
	copy(cp, s.probes)
	return &Set{probes: cp}
}

// Restore overwrites s's state from a previously cloned snapshot.
func (s *Set) Restore(h snapshot.Handle) {
	snap, ok := h.(*Set)
	if !ok {
		panic("pressure: Restore called with a non-*Set handle")
	}
	s.probes = make([]Probe, len(snap.probes))
	copy(s.probes, snap.probes)
}
