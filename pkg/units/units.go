// Package units converts solver results from the reduced units used
// internally (kT and kT/e) to the physical units of the reports.
package units

// Physical constants of the conversion. The reporting temperature is
// fixed at 298.15 K whatever temperature the individual calculations
// were configured with, so that every run reports in the same scale.
const (
	Boltzmann = 1.3806581e-23
	Avogadro  = 6.0221367e23
	Temp      = 298.15
)

// Factor returns the conversion factor from kT to kJ/mol at the fixed
// reporting temperature.
func Factor() float64 {
	return Boltzmann / 1000.0 * Temp * Avogadro
}

// Energy converts a per-atom energy from kT to kJ/mol. The half
// compensates for the double counting of the pair terms in the
// per-atom energy sums of the solver.
func Energy(reduced float64) float64 {
	return reduced * Factor() * 0.5
}

// TotalEnergy converts a total energy from kT to kJ/mol. Totals are
// already free of double counting, so no half applies.
func TotalEnergy(reduced float64) float64 {
	return reduced * Factor()
}

// Force converts one force component from reduced units. No half
// applies to forces either.
func Force(reduced float64) float64 {
	return reduced * Factor()
}
