package engine

import (
	"fmt"
	"math"

	"github.com/asymmetrica-labs/moldyn2d/internal/units"
)

// clashRatioThreshold flags a pair as a clash once their separation
// drops below this fraction of their summed radii — 0.6 is the
// teacher's own threshold for a "severe" steric overlap (backend/
// internal/physics/clash_detector.go), carried over unchanged since
// nothing about 2D vs 3D geometry changes what counts as a clash.
const clashRatioThreshold = 0.6

// ValidateState implements SPEC_FULL.md's supplemented
// ValidateState() diagnostic: a NaN/Inf coordinate check followed by an
// all-pairs overlap scan, grounded on the teacher's
// ValidateCoordinates/DetectClashes pair.
func (e *Engine) ValidateState() *ValidationReport {
	report := &ValidationReport{Valid: true, WorstClashRatio: math.Inf(1)}
	a := e.atoms

	for i := 0; i < a.filled; i++ {
		if !units.IsFinite(a.x[i]) || !units.IsFinite(a.y[i]) {
			report.Valid = false
			report.ValidationError = fmt.Sprintf("non-finite coordinate in atom %d", i)
			return report
		}
		dist := math.Hypot(a.x[i], a.y[i])
		if dist > divergenceFactor*math.Max(e.lx, e.ly) {
			report.Valid = false
			report.ValidationError = fmt.Sprintf("atom %d too far from origin: %.3g nm", i, dist)
			return report
		}
	}

	for i := 0; i < a.filled; i++ {
		for j := i + 1; j < a.filled; j++ {
			if e.radialBonds.isBonded(i, j) {
				continue
			}
			dx := a.x[j] - a.x[i]
			dy := a.y[j] - a.y[i]
			dist := math.Hypot(dx, dy)
			minDist := a.radius[i] + a.radius[j]
			if minDist <= 0 {
				continue
			}
			ratio := dist / minDist
			if ratio < clashRatioThreshold {
				report.HasClashes = true
				report.ClashCount++
				if ratio < report.WorstClashRatio {
					report.WorstClashRatio = ratio
				}
			}
		}
	}

	return report
}
