// Package run drives an ordered sequence of electrostatics
// calculations through a solver adapter and aggregates their results.
// Calculations execute strictly in configuration order, one at a time;
// the first failure aborts the whole run and no results are returned.
package run

import (
	"fmt"
	"log"

	"github.com/kpotier/pbdriver/pkg/input"
	"github.com/kpotier/pbdriver/pkg/pqr"
	"github.com/kpotier/pbdriver/pkg/solver"
)

// Com identifies this process within a process group. Only rank 0
// prints; the driver itself is sequential.
type Com struct {
	Rank int
	Size int
}

// Printer reports whether this process is the one that prints.
func (c Com) Printer() bool { return c.Rank == 0 }

// Runner executes the calculations of a configuration against an
// adapter. Log may be nil to silence progress output.
type Runner struct {
	Adapter solver.Adapter
	Log     *log.Logger
	Com     Com
}

// Run executes every calculation of in, in order, over the shared atom
// set. On success the returned results cover all calculations; on the
// first failure the run aborts with a typed error, the current
// handle's resources released and no results returned.
func (r *Runner) Run(in *input.Input, atoms *pqr.AtomSet, maps *solver.Maps) (*Results, error) {
	res := &Results{
		// Pre-sized so print directives address a stable index space.
		TotEnergy: make([]float64, len(in.Calcs)),
	}

	r.logf("Preparing to run %d PBE calculations.", len(in.Calcs))
	for i := range in.Calcs {
		if err := r.runCalc(in, i, atoms, maps, res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// runCalc performs one calculation: setup, solve, partition, extract,
// release. The handle never outlives this call, whatever the exit
// path.
func (r *Runner) runCalc(in *input.Input, icalc int, atoms *pqr.AtomSet,
	maps *solver.Maps, res *Results) error {
	calc := &in.Calcs[icalc]
	if calc.Type != input.Multigrid {
		return fmt.Errorf("calculation %d: %w", icalc+1, solver.ErrCalcType)
	}

	r.logf("---------------------------------------------")
	if name := in.ElecName(icalc); name != "" {
		r.logf("CALCULATION #%d (%s): MULTIGRID", icalc+1, name)
	} else {
		r.logf("CALCULATION #%d: MULTIGRID", icalc+1)
	}

	r.logf("Setting up problem...")
	h, err := r.Adapter.Setup(calc, atoms, maps)
	if err != nil {
		return fmt.Errorf("calculation %d: Setup: %w", icalc+1, err)
	}
	defer h.Release()

	if err := h.Solve(); err != nil {
		return fmt.Errorf("calculation %d: Solve: %w", icalc+1, err)
	}
	if err := h.Partition(); err != nil {
		return fmt.Errorf("calculation %d: Partition: %w", icalc+1, err)
	}

	tot, err := h.Energy()
	if err != nil {
		return fmt.Errorf("calculation %d: Energy: %w", icalc+1, err)
	}
	res.TotEnergy[icalc] = tot

	pot, err := h.Potentials()
	if err != nil {
		return fmt.Errorf("calculation %d: Potentials: %w", icalc+1, err)
	}
	eng, err := h.AtomEnergies()
	if err != nil {
		return fmt.Errorf("calculation %d: AtomEnergies: %w", icalc+1, err)
	}
	res.Potentials = append(res.Potentials, pot)
	res.Energies = append(res.Energies, eng)

	// Forces are extracted only on request, so the force list may be
	// shorter than the potential and energy lists; each bundle carries
	// the index of the calculation that produced it.
	if calc.WantForce() {
		f, err := h.Forces()
		if err != nil {
			return fmt.Errorf("calculation %d: Forces: %w", icalc+1, err)
		}
		res.Forces = append(res.Forces, Forces{Calc: icalc, Atoms: f})
	}
	return nil
}

func (r *Runner) logf(format string, args ...interface{}) {
	if r.Log != nil && r.Com.Printer() {
		r.Log.Printf(format, args...)
	}
}
