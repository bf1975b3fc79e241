package run

import (
	"gonum.org/v1/gonum/floats"

	"github.com/kpotier/pbdriver/pkg/input"
	"github.com/kpotier/pbdriver/pkg/solver"
)

// Forces is the force bundle contributed by one calculation. Calc is
// the index of that calculation in the configuration.
type Forces struct {
	Calc  int
	Atoms []solver.AtomForce
}

// Results aggregates what the calculations of one run produced.
// Potentials and Energies hold one per-atom slice per calculation, in
// calculation order. Forces holds one bundle per calculation that
// requested them, also in calculation order, but NOT index-aligned
// with the other two: use ForcesFor to look a bundle up by
// calculation. TotEnergy is indexed by calculation and sized to the
// configured calculation count before anything runs.
type Results struct {
	Potentials [][]float64
	Energies   [][]float64
	Forces     []Forces
	TotEnergy  []float64
}

// ForcesFor returns the force bundle of calculation icalc, or nil when
// that calculation did not compute forces.
func (r *Results) ForcesFor(icalc int) *Forces {
	for i := range r.Forces {
		if r.Forces[i].Calc == icalc {
			return &r.Forces[i]
		}
	}
	return nil
}

// EnergySum evaluates the signed total-energy sum of an energy print
// directive, in reduced units.
func (r *Results) EnergySum(args []input.Operand) float64 {
	terms := make([]float64, len(args))
	for k, op := range args {
		terms[k] = float64(op.Sign) * r.TotEnergy[op.Calc]
	}
	return floats.Sum(terms)
}
