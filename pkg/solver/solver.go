// Package solver is the boundary between the calculation driver and a
// Poisson-Boltzmann solver implementation. The driver only ever talks
// to the Adapter and Handle interfaces, so a solver binding stays
// confined to its own package.
package solver

import (
	"errors"

	"github.com/kpotier/pbdriver/pkg/input"
	"github.com/kpotier/pbdriver/pkg/pqr"
)

// Error kinds surfaced by an adapter. Every one of them is fatal to
// the whole run: the driver releases what was acquired for the current
// calculation and aborts without attempting the remaining ones.
var (
	ErrSetup     = errors.New("solver: setup failed")
	ErrSolve     = errors.New("solver: solve failed")
	ErrPartition = errors.New("solver: partition failed")
	ErrMapLoad   = errors.New("solver: map load failed")
	ErrCalcType  = errors.New("solver: only multigrid calculations are supported")
)

// AtomForce groups the three force components reported for one atom,
// in reduced units.
type AtomForce struct {
	QF [3]float64 // fixed charge
	IB [3]float64 // ionic boundary
	DB [3]float64 // dielectric boundary
}

// Grid is a scalar field sampled on a regular grid, as loaded from a
// map file.
type Grid struct {
	Dime    [3]int
	Origin  [3]float64
	Spacing [3]float64
	Data    []float64
}

// Maps holds the external field maps of a run. Slices are indexed like
// the molecules of the configuration; nil entries mean no map was
// declared for that molecule.
type Maps struct {
	DielX, DielY, DielZ []*Grid
	Kappa               []*Grid
	Charge              []*Grid
}

// Adapter creates solver state for one calculation. Setup binds the
// grid geometry and physical parameters of calc, the shared atom set
// and the loaded field maps into a fresh handle scoped to that
// calculation.
type Adapter interface {
	Setup(calc *input.Calc, atoms *pqr.AtomSet, maps *Maps) (Handle, error)
}

// Handle is the per-calculation solver state. The caller of Setup owns
// it exclusively for the duration of one calculation and must release
// it before the next calculation starts, on error paths included.
type Handle interface {
	// Solve runs the solver on the problem bound at setup.
	Solve() error

	// Partition resolves the overlapping-subdomain bookkeeping needed
	// before any extraction. It must be called after Solve.
	Partition() error

	// Energy returns the total electrostatic energy in reduced units.
	Energy() (float64, error)

	// Potentials returns the per-atom potentials in kT/e, indexed like
	// the atom set.
	Potentials() ([]float64, error)

	// AtomEnergies returns the per-atom energy decomposition in
	// reduced units, indexed like the atom set.
	AtomEnergies() ([]float64, error)

	// Forces returns the per-atom force components in reduced units,
	// indexed like the atom set.
	Forces() ([]AtomForce, error)

	// Release frees every calculation-scoped resource. It is safe to
	// call more than once.
	Release()
}
