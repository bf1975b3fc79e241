package pqr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadSingleIon(t *testing.T) {
	set, err := ReadString("ATOM      1  I   ION     1       0.000   0.000  0.000  1.00  3.00")
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 1, set.Len())
	assert.Equal(t, Atom{X: 0, Y: 0, Z: 0, Charge: 1, Radius: 3}, set.Atoms[0])
}

func TestReadChainShift(t *testing.T) {
	// A chain identifier (here "A") shifts every coordinate field one
	// column to the right.
	set, err := ReadString("ATOM      1  N   ALA A   1      1.000   2.000  3.000 -0.30  1.55")
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 1, set.Len())
	assert.Equal(t, Atom{X: 1, Y: 2, Z: 3, Charge: -0.3, Radius: 1.55}, set.Atoms[0])
}

func TestReadSkipsOtherRecords(t *testing.T) {
	in := `REMARK   1 generated for testing
ATOM      1  I   ION     1       0.000   0.000  0.000  1.00  3.00

TER
HETATM    2  O   HOH     2       1.000   0.000  0.000 -0.50  1.40
END`
	set, err := ReadString(in)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 2, set.Len())
	assert.Equal(t, 1.0, set.Atoms[0].Charge)
	assert.Equal(t, -0.5, set.Atoms[1].Charge)
}

func TestReadOrderPreserved(t *testing.T) {
	in := `ATOM      1  I   ION     1       0.000   0.000  0.000  1.00  3.00
ATOM      2  I   ION     2       4.000   0.000  0.000 -1.00  2.00`
	set, err := ReadString(in)
	if err != nil {
		t.Fatal(err)
	}
	if set.Atoms[0].X != 0 || set.Atoms[1].X != 4 {
		t.Errorf("atoms out of order: %v", set.Atoms)
	}
}

func TestReadShortRecord(t *testing.T) {
	_, err := ReadString("ATOM      1  I   ION     1       0.000   0.000")
	if !errors.Is(err, ErrRecord) {
		t.Errorf("got %v, wanted ErrRecord", err)
	}
}

func TestReadBadNumber(t *testing.T) {
	_, err := ReadString("ATOM      1  I   ION     1       0.000   x.000  0.000  1.00  3.00")
	if !errors.Is(err, ErrRecord) {
		t.Errorf("got %v, wanted ErrRecord", err)
	}
}
