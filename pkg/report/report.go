// Package report turns aggregated calculation results into the
// textual report: a TOML-encoded configuration echo, the per-atom
// potential, energy and force sections, and the evaluation of the
// print directives.
package report

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/pelletier/go-toml"

	"github.com/kpotier/pbdriver/pkg/input"
	"github.com/kpotier/pbdriver/pkg/pqr"
	"github.com/kpotier/pbdriver/pkg/run"
	"github.com/kpotier/pbdriver/pkg/solver"
	"github.com/kpotier/pbdriver/pkg/units"
)

// summary is the configuration echo written at the top of every
// report, in the TOML format.
type summary struct {
	Molecules    []string `toml:"molecules"`
	Atoms        int      `toml:"atoms"`
	Calculations []string `toml:"calculations"`
}

// Write writes the per-atom sections of the report: potentials in
// kT/e, energies in kJ/mol, and the force components of every
// calculation that requested them.
func Write(w io.Writer, in *input.Input, atoms *pqr.AtomSet, res *run.Results) error {
	names := make([]string, len(in.Calcs))
	for i := range in.Calcs {
		names[i] = in.ElecName(i)
	}
	enc := toml.NewEncoder(w)
	err := enc.Encode(summary{
		Molecules:    in.Mols,
		Atoms:        atoms.Len(),
		Calculations: names,
	})
	if err != nil {
		return fmt.Errorf("Encode: %w", err)
	}

	for i, pot := range res.Potentials {
		fmt.Fprintf(w, "\nPer-atom potentials from calculation %d\n", i)
		for j, v := range pot {
			fmt.Fprintf(w, "\t%d\t%.4f kT/e\n", j, v)
		}
	}

	for i, eng := range res.Energies {
		fmt.Fprintf(w, "\nPer-atom energies from calculation %d\n", i)
		for j, v := range eng {
			fmt.Fprintf(w, "\t%d\t%.4f kJ/mol\n", j, units.Energy(v))
		}
	}

	for _, f := range res.Forces {
		fmt.Fprintf(w, "\nPer-atom forces from calculation %d\n", f.Calc)
		writeForces(w, f.Atoms)
	}
	return nil
}

// writeForces writes the three component lines of every atom, in
// physical units.
func writeForces(w io.Writer, atoms []solver.AtomForce) {
	for j, af := range atoms {
		fmt.Fprintf(w, "\t%d\t%.3E %.3E %.3E (qf)\n", j,
			units.Force(af.QF[0]), units.Force(af.QF[1]), units.Force(af.QF[2]))
		fmt.Fprintf(w, "\t%d\t%.3E %.3E %.3E (ib)\n", j,
			units.Force(af.IB[0]), units.Force(af.IB[1]), units.Force(af.IB[2]))
		fmt.Fprintf(w, "\t%d\t%.3E %.3E %.3E (db)\n", j,
			units.Force(af.DB[0]), units.Force(af.DB[1]), units.Force(af.DB[2]))
	}
}

// Directives evaluates the print directives against the aggregated
// results, strictly after every calculation completed. Unknown
// directive kinds are logged and skipped; they never abort the run.
func Directives(w io.Writer, logger *log.Logger, in *input.Input, res *run.Results) {
	if len(in.Prints) == 0 {
		return
	}
	fmt.Fprintf(w, "\n---------------------------------------------\n")
	fmt.Fprintf(w, "PRINT STATEMENTS\n")

	for _, pr := range in.Prints {
		switch pr.Kind {
		case input.PrintEnergy:
			fmt.Fprintf(w, "%s = %1.6E kJ/mol\n",
				expr(pr), units.TotalEnergy(res.EnergySum(pr.Args)))
		case input.PrintForce:
			icalc := pr.Args[0].Calc
			f := res.ForcesFor(icalc)
			if f == nil {
				if logger != nil {
					logger.Printf("no force results for calculation %d "+
						"(calcforce wasn't requested)", icalc+1)
				}
				continue
			}
			fmt.Fprintf(w, "%s\n", expr(pr))
			writeForces(w, f.Atoms)
		default:
			if logger != nil {
				logger.Printf("Undefined PRINT keyword `%s`!", pr.Word)
			}
		}
	}
}

// expr renders a directive back in its configuration notation, with
// one-based calculation references.
func expr(pr input.Print) string {
	var b strings.Builder
	fmt.Fprintf(&b, "print %s", pr.Word)
	for k, op := range pr.Args {
		if k > 0 {
			if op.Sign > 0 {
				b.WriteString(" +")
			} else {
				b.WriteString(" -")
			}
		}
		fmt.Fprintf(&b, " %d", op.Calc+1)
	}
	return b.String()
}
