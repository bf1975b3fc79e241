// Command pbdriver runs a sequence of Poisson-Boltzmann electrostatics
// calculations over an embedded configuration and atom set, then
// reports per-atom potentials, energies and forces together with the
// configured print directives. It takes no arguments: the input lives
// in this file, like the no-input drivers it descends from, and should
// be edited or generated to suit the problem at hand.
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/kpotier/pbdriver/pkg/input"
	"github.com/kpotier/pbdriver/pkg/mg"
	"github.com/kpotier/pbdriver/pkg/pqr"
	"github.com/kpotier/pbdriver/pkg/report"
	"github.com/kpotier/pbdriver/pkg/run"
)

// defaultInput solves a single ion in water against the same ion in
// vacuum; the print directive at the end yields its solvation energy.
const defaultInput = `read
    mol pqr ion.pqr
end
elec name solvated
    mg-manual
    dime 65 65 65
    nlev 4
    grid 0.33 0.33 0.33
    gcent mol 1
    chgm spl2
    mol 1
    lpbe
    bcfl mdh
    ion 1 0.000 2.0
    ion -1 0.000 2.0
    pdie 1.0
    sdie 78.54
    srfm spl2
    sdens 10.0
    srad 1.4
    swin 0.3
    temp 298.15
    gamma 0.105
    calcenergy total
    calcforce comps
end
elec name reference
    mg-manual
    dime 65 65 65
    nlev 4
    grid 0.33 0.33 0.33
    gcent mol 1
    chgm spl2
    mol 1
    lpbe
    bcfl mdh
    ion 1 0.000 2.0
    ion -1 0.000 2.0
    pdie 1.0
    sdie 1.0
    srfm spl2
    sdens 10.0
    srad 1.4
    swin 0.3
    temp 298.15
    gamma 0.105
    calcenergy total
end

print energy 1 - 2 end

quit
`

const defaultPQR = "ATOM      1  I   ION     1       0.000   0.000  0.000  1.00  3.00"

func main() {
	log := log.New(os.Stdout, "", log.LstdFlags)

	if len(os.Args) != 1 {
		log.Fatal("no argument is expected: the configuration is embedded, invoke as `pbdriver`")
	}

	log.Print("pbdriver: Poisson-Boltzmann electrostatics driver")
	start := time.Now()

	in, err := input.ParseString(defaultInput)
	if err != nil {
		log.Fatal(fmt.Errorf("Parse: %w", err))
	}

	atoms, err := pqr.ReadString(defaultPQR)
	if err != nil {
		log.Fatal(fmt.Errorf("Read: %w", err))
	}

	maps, err := mg.LoadMaps(in)
	if err != nil {
		log.Fatal(fmt.Errorf("LoadMaps: %w", err))
	}

	r := &run.Runner{Adapter: mg.New(), Log: log, Com: run.Com{Rank: 0, Size: 1}}
	res, err := r.Run(in, atoms, maps)
	if err != nil {
		log.Fatal(fmt.Errorf("Run: %w", err))
	}

	if r.Com.Printer() {
		if err := report.Write(os.Stdout, in, atoms, res); err != nil {
			log.Fatal(fmt.Errorf("Write: %w", err))
		}
		report.Directives(os.Stdout, log, in, res)
	}

	log.Printf("total execution time: %1.6e s", time.Since(start).Seconds())
}
