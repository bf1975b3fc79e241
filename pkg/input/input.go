// Package input parses the block-structured text configuration that
// drives a run: a read section naming the molecules and optional field
// maps, one or more named elec sections each describing one
// calculation, print directives evaluated once every calculation is
// done, and a terminating quit.
package input

import "errors"

// Capacity bounds of a single run. Exceeding one of them is a
// configuration error, never a silent truncation.
const (
	MaxMol  = 20
	MaxCalc = 20
)

var (
	// ErrSyntax is returned for a malformed configuration.
	ErrSyntax = errors.New("input: syntax error")

	// ErrLimit is returned when the configuration declares more
	// molecules or calculations than MaxMol/MaxCalc.
	ErrLimit = errors.New("input: capacity exceeded")
)

// CalcType selects the numerical method of a calculation. Only
// Multigrid is supported by the driver; requesting another type is
// detected when that calculation is reached, not at parse time.
type CalcType int

const (
	Multigrid CalcType = iota
	FiniteElement
)

// Ion is one mobile ion species of the solvent.
type Ion struct {
	Charge float64 // in units of the elementary charge
	Conc   float64 // molar concentration
	Radius float64 // in Å
}

// Center is the grid centre of a calculation: either the geometric
// centre of a molecule (Mol >= 1) or an explicit point.
type Center struct {
	Mol   int
	Coord [3]float64
}

// Calc describes one electrostatics calculation. The order of the
// Calcs slice of an Input is the execution order, and the index in
// that slice is how print directives refer to a calculation.
type Calc struct {
	Type CalcType

	Dime  [3]int     // grid dimensions
	Nlev  int        // number of multigrid levels
	Grid  [3]float64 // grid spacing in Å
	Gcent Center

	Mol  int    // one-based molecule reference
	PBE  string // lpbe or npbe
	Bcfl string // boundary condition flavour
	Chgm string // charge discretization method
	Srfm string // surface definition method

	Ions []Ion
	PDie float64 // protein (interior) dielectric constant
	SDie float64 // solvent dielectric constant

	Sdens float64 // surface density
	Srad  float64 // solvent probe radius
	Swin  float64 // surface smoothing window
	Temp  float64 // temperature in K
	Gamma float64 // surface tension coefficient

	CalcEnergy string // energy reporting mode; empty or "no" means none
	CalcForce  string // force reporting mode; empty or "no" means none
}

// WantForce reports whether the calculation asked for per-atom force
// vectors.
func (c *Calc) WantForce() bool {
	return c.CalcForce != "" && c.CalcForce != "no"
}

// Elec is one named elec section. Calc is the index of the last
// calculation expanded from the section, so a section can cover a run
// of calculation indices.
type Elec struct {
	Name string
	Calc int
}

// PrintKind tags a print directive.
type PrintKind int

const (
	PrintEnergy PrintKind = iota
	PrintForce
	PrintUnknown
)

// Operand is one signed term of an energy print directive. Calc is
// zero-based here; the configuration text counts from one.
type Operand struct {
	Calc int
	Sign int
}

// Print is one print directive. Word keeps the raw directive keyword
// so that unknown kinds can be reported.
type Print struct {
	Kind PrintKind
	Word string
	Args []Operand
}

// Input is a parsed configuration.
type Input struct {
	Mols []string // paths of the molecule files, in declaration order

	// Optional field map paths, indexed like Mols. Empty strings mean
	// no map for that molecule.
	DielX, DielY, DielZ []string
	Kappa, Charge       []string

	Elecs  []Elec
	Calcs  []Calc
	Prints []Print
}

// ElecName returns the name of the elec section covering calculation
// icalc. Unnamed sections yield the empty string.
func (in *Input) ElecName(icalc int) string {
	for _, e := range in.Elecs {
		if e.Calc >= icalc {
			return e.Name
		}
	}
	return ""
}
