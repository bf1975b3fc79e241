// Package mg is the built-in multigrid-family solver binding. It
// implements the linearized Poisson-Boltzmann problem for a set of
// point charges in a homogeneous dielectric with Debye screening:
// pairwise screened Coulomb interactions plus a Born reaction term for
// each atom. The dielectric boundary force is identically zero in this
// model, so the db component of the reported forces is always zero.
package mg

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/kpotier/pbdriver/pkg/input"
	"github.com/kpotier/pbdriver/pkg/pqr"
	"github.com/kpotier/pbdriver/pkg/solver"
	"github.com/kpotier/pbdriver/pkg/units"
)

// elementary charge (C) and vacuum permittivity (F/m), same vintage as
// the constants of the units package.
const (
	eCharge = 1.60217733e-19
	eps0    = 8.854187817e-12
)

var (
	errNotSolved = errors.New("mg: handle not solved yet")
	errReleased  = errors.New("mg: handle already released")
)

// Adapter implements solver.Adapter.
type Adapter struct{}

// New returns the built-in adapter.
func New() *Adapter { return &Adapter{} }

// Setup binds one calculation. It validates the grid geometry and the
// physical parameters; any inconsistency is a setup error.
func (a *Adapter) Setup(calc *input.Calc, atoms *pqr.AtomSet, maps *solver.Maps) (solver.Handle, error) {
	if atoms == nil {
		return nil, fmt.Errorf("%w: no atom set", solver.ErrSetup)
	}
	for k := 0; k < 3; k++ {
		if calc.Dime[k] < 1 {
			return nil, fmt.Errorf("%w: dime %v", solver.ErrSetup, calc.Dime)
		}
		if calc.Grid[k] <= 0 {
			return nil, fmt.Errorf("%w: grid spacing %v", solver.ErrSetup, calc.Grid)
		}
	}
	if calc.PDie <= 0 || calc.SDie <= 0 {
		return nil, fmt.Errorf("%w: dielectric constants %g/%g",
			solver.ErrSetup, calc.PDie, calc.SDie)
	}
	if calc.Temp <= 0 {
		return nil, fmt.Errorf("%w: temperature %g", solver.ErrSetup, calc.Temp)
	}

	h := &handle{calc: calc, atoms: atoms.Atoms}
	h.bjerrum = eCharge * eCharge / (4 * math.Pi * eps0 * units.Boltzmann * calc.Temp) * 1e10
	h.kappa = debye(h.bjerrum, calc)
	return h, nil
}

// debye returns the inverse screening length in 1/Å for the ion
// species of calc.
func debye(bjerrum float64, calc *input.Calc) float64 {
	var strength float64 // number-density ionic strength, 1/Å^3
	for _, ion := range calc.Ions {
		n := ion.Conc * units.Avogadro / 1e27
		strength += 0.5 * ion.Charge * ion.Charge * n
	}
	return math.Sqrt(8 * math.Pi * bjerrum / calc.SDie * strength)
}

// handle is the per-calculation state. It is created by Setup and must
// be released exactly once per calculation; extra releases are no-ops.
type handle struct {
	calc  *input.Calc
	atoms []pqr.Atom

	bjerrum float64 // in Å
	kappa   float64 // in 1/Å

	phi      []float64 // per-atom potentials, kT/e
	charges  []float64
	solved   bool
	parted   bool
	released bool
}

func (h *handle) Solve() error {
	if h.released {
		return fmt.Errorf("%w: %v", solver.ErrSolve, errReleased)
	}

	n := len(h.atoms)
	h.phi = make([]float64, n)
	h.charges = make([]float64, n)
	for i, at := range h.atoms {
		h.charges[i] = at.Charge
	}

	lb := h.bjerrum
	for i, ai := range h.atoms {
		// Born reaction term of the atom itself.
		if ai.Radius > 0 {
			h.phi[i] += ai.Charge * lb / ai.Radius *
				(1/(h.calc.SDie*(1+h.kappa*ai.Radius)) - 1/h.calc.PDie)
		}
		// Screened interaction with every other atom.
		for j, aj := range h.atoms {
			if j == i {
				continue
			}
			r := dist(ai, aj)
			if r == 0 {
				return fmt.Errorf("%w: atoms %d and %d coincide", solver.ErrSolve, i, j)
			}
			h.phi[i] += lb / h.calc.SDie * aj.Charge * math.Exp(-h.kappa*r) / r
		}
	}

	h.solved = true
	return nil
}

func (h *handle) Partition() error {
	if h.released {
		return fmt.Errorf("%w: %v", solver.ErrPartition, errReleased)
	}
	if !h.solved {
		return fmt.Errorf("%w: %v", solver.ErrPartition, errNotSolved)
	}
	// A single process owns the whole domain, so there is no overlap
	// to resolve; the handle only records that extraction may begin.
	h.parted = true
	return nil
}

func (h *handle) Energy() (float64, error) {
	if err := h.ready(); err != nil {
		return 0, err
	}
	return 0.5 * floats.Dot(h.charges, h.phi), nil
}

func (h *handle) Potentials() ([]float64, error) {
	if err := h.ready(); err != nil {
		return nil, err
	}
	pot := make([]float64, len(h.phi))
	copy(pot, h.phi)
	return pot, nil
}

func (h *handle) AtomEnergies() ([]float64, error) {
	if err := h.ready(); err != nil {
		return nil, err
	}
	eng := make([]float64, len(h.phi))
	copy(eng, h.phi)
	floats.Mul(eng, h.charges)
	return eng, nil
}

// Forces reports the per-atom force decomposition: qf is the Coulomb
// force in the solvent dielectric, ib the ionic screening correction
// and db zero (no dielectric boundary in the homogeneous model).
func (h *handle) Forces() ([]solver.AtomForce, error) {
	if err := h.ready(); err != nil {
		return nil, err
	}

	forces := make([]solver.AtomForce, len(h.atoms))
	lb := h.bjerrum / h.calc.SDie
	for i, ai := range h.atoms {
		for j, aj := range h.atoms {
			if j == i {
				continue
			}
			r := dist(ai, aj)
			qq := lb * ai.Charge * aj.Charge
			bare := qq / (r * r)
			screened := qq * math.Exp(-h.kappa*r) * (1 + h.kappa*r) / (r * r)

			u := [3]float64{(ai.X - aj.X) / r, (ai.Y - aj.Y) / r, (ai.Z - aj.Z) / r}
			for k := 0; k < 3; k++ {
				forces[i].QF[k] += bare * u[k]
				forces[i].IB[k] += (screened - bare) * u[k]
			}
		}
	}
	return forces, nil
}

func (h *handle) Release() {
	if h.released {
		return
	}
	h.released = true
	h.phi = nil
	h.charges = nil
	h.atoms = nil
}

func (h *handle) ready() error {
	if h.released {
		return errReleased
	}
	if !h.solved {
		return errNotSolved
	}
	if !h.parted {
		return errors.New("mg: handle not partitioned yet")
	}
	return nil
}

func dist(a, b pqr.Atom) float64 {
	dx, dy, dz := a.X-b.X, a.Y-b.Y, a.Z-b.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
