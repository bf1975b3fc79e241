// Package pqr reads atomic records in the PQR flavour of the PDB
// format. Only the fields needed by the electrostatics driver are
// kept: position, charge and radius.
package pqr

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// ErrRecord is returned when an ATOM or HETATM record doesn't carry
// enough fields or a field cannot be read as a number.
var ErrRecord = errors.New("pqr: malformed record")

// Atom is one ATOM or HETATM record. Coordinates are in Å, the charge
// in units of the elementary charge and the radius in Å.
type Atom struct {
	X, Y, Z float64
	Charge  float64
	Radius  float64
}

// AtomSet is an ordered list of atoms. The position of an atom in the
// set is its identity: potentials, energies and forces reported by a
// calculation are indexed the same way. An AtomSet must not be
// modified once the calculations have started.
type AtomSet struct {
	Atoms []Atom
}

// Len returns the number of atoms in the set.
func (s *AtomSet) Len() int { return len(s.Atoms) }

// chainRe matches the residue name, chain identifier and residue
// number columns of a record that carries a chain identifier. When it
// matches, every field after the residue name is shifted right by one
// column.
var chainRe = regexp.MustCompile(` [A-Z]{3} [A-Z] *\d+`)

// Read parses every ATOM and HETATM record of r, in input order. Lines
// starting with any other token (REMARK, TER, blank lines, ...) are
// skipped.
func Read(r io.Reader) (*AtomSet, error) {
	set := &AtomSet{}
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		rec := sc.Text()
		if !strings.HasPrefix(rec, "ATOM") && !strings.HasPrefix(rec, "HETATM") {
			continue
		}

		atom, err := parse(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		set.Atoms = append(set.Atoms, atom)
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}
	return set, nil
}

// ReadString is like Read but takes the records directly as a string.
func ReadString(s string) (*AtomSet, error) {
	return Read(strings.NewReader(s))
}

// parse extracts x, y, z, charge and radius from one record. The
// fields sit at whitespace-separated offsets 5 to 9, shifted right by
// one when a chain identifier is present.
func parse(rec string) (Atom, error) {
	var shift int
	if chainRe.MatchString(rec) {
		shift = 1
	}

	fields := strings.Fields(rec)
	if len(fields) < 10+shift {
		return Atom{}, fmt.Errorf("%w: got %d fields (at least %d are needed)",
			ErrRecord, len(fields), 10+shift)
	}

	var vals [5]float64
	for k := range vals {
		v, err := strconv.ParseFloat(fields[5+shift+k], 64)
		if err != nil {
			return Atom{}, fmt.Errorf("%w: field %d: %v", ErrRecord, 5+shift+k, err)
		}
		vals[k] = v
	}

	return Atom{X: vals[0], Y: vals[1], Z: vals[2], Charge: vals[3], Radius: vals[4]}, nil
}
