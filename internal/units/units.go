// Package units holds the unit-conversion constants shared by every
// other package in this module.
//
// The engine stores positions in nanometres, time in femtoseconds,
// mass in Dalton, and accumulates forces in "MW" units (Dalton·nm/fs²)
// before dividing by mass to get accelerations (nm/fs²). Energies cross
// the public API boundary in electron-volts; internally, kinetic energy
// is summed in MW energy units (Dalton·nm²/fs²) and converted once, at
// the boundary, while potential-energy terms are summed in eV, with the
// Coulomb and gravity sums converted from MW units per term.
//
// Citation for the physical constants: CODATA 2018 recommended values.
package units

import "math"

const (
	// KB is Boltzmann's constant, expressed in eV/K.
	KB = 8.617333262e-5

	// EVtoMW converts electron-volts to MW energy units
	// (Dalton·nm²/fs²). 1 eV = 1.602176634e-19 J; 1 Dalton·nm²/fs² =
	// 1.66053906660e-27 kg · (1e-9 m)² / (1e-15 s)² = 1.66053906660e-15 J.
	EVtoMW = 1.602176634e-19 / 1.66053906660e-15

	// MWtoEV is the inverse of EVtoMW.
	MWtoEV = 1.0 / EVtoMW

	// DaltonToKg converts Dalton (atomic mass unit) to kilograms.
	DaltonToKg = 1.66053906660e-27

	// NmToM converts nanometres to metres.
	NmToM = 1e-9

	// FsToS converts femtoseconds to seconds.
	FsToS = 1e-15

	// JouleToEV converts joules to electron-volts.
	JouleToEV = 1.0 / 1.602176634e-19

	// KelvinToEV converts a temperature in Kelvin to the equivalent
	// eV via KB — a convenience for comparing thermal energy scales.
	KelvinToEV = KB
)

// KineticEnergyMWtoEV converts a kinetic energy accumulated in MW
// units (Dalton·nm²/fs²) to electron-volts.
func KineticEnergyMWtoEV(keMW float64) float64 {
	return keMW * MWtoEV
}

// TemperatureFromKineticEnergy implements T = 2*KE / (Ndf * kB) for a
// 2D system, where Ndf = 2*N is the number of degrees of freedom.
// keEV is kinetic energy in electron-volts, n is the atom/obstacle
// count contributing degrees of freedom.
func TemperatureFromKineticEnergy(keEV float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	ndf := 2.0 * float64(n)
	return 2.0 * keEV / (ndf * KB)
}

// IsFinite reports whether x is neither NaN nor ±Inf — used throughout
// the engine's divergence guards.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// PressureBarFromForcePerLengthMW converts a force-per-unit-length
// (impulse/duration, divided by the probed wall's length) from MW
// units (Dalton/fs²) to bar, treating the 2D simulation as a unit-depth
// slice so that a force per unit length (N/m) stands directly for a
// pressure (N/m² = Pa).
//
// Dalton/fs² -> kg/s² (= N/m, the 2D force-per-length unit) via
// DaltonToKg / FsToS²; Pa -> bar divides by 1e5.
func PressureBarFromForcePerLengthMW(forcePerLengthMW float64) float64 {
	newtonsPerMetre := forcePerLengthMW * DaltonToKg / (FsToS * FsToS)
	return newtonsPerMetre / 1e5
}
