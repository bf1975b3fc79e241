package input

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const ionInput = `read
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
    chgm spl2
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
    mol 1
    lpbe
    bcfl mdh
    ion 1 0.000 2.0
    ion -1 0.000 2.0
    pdie 1.0
    sdie 1.0
    chgm spl2
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

func TestParseIonInput(t *testing.T) {
	in, err := ParseString(ionInput)
	if err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, []string{"ion.pqr"}, in.Mols)
	assert.Equal(t, 2, len(in.Calcs))
	assert.Equal(t, "solvated", in.ElecName(0))
	assert.Equal(t, "reference", in.ElecName(1))

	solv := in.Calcs[0]
	assert.Equal(t, Multigrid, solv.Type)
	assert.Equal(t, [3]int{65, 65, 65}, solv.Dime)
	assert.Equal(t, 4, solv.Nlev)
	assert.Equal(t, [3]float64{0.33, 0.33, 0.33}, solv.Grid)
	assert.Equal(t, Center{Mol: 1}, solv.Gcent)
	assert.Equal(t, 1, solv.Mol)
	assert.Equal(t, "lpbe", solv.PBE)
	assert.Equal(t, "mdh", solv.Bcfl)
	assert.Equal(t, []Ion{{1, 0, 2}, {-1, 0, 2}}, solv.Ions)
	assert.Equal(t, 1.0, solv.PDie)
	assert.Equal(t, 78.54, solv.SDie)
	assert.Equal(t, 298.15, solv.Temp)
	assert.Equal(t, "total", solv.CalcEnergy)
	assert.True(t, solv.WantForce())

	ref := in.Calcs[1]
	assert.Equal(t, 1.0, ref.SDie)
	assert.False(t, ref.WantForce())

	if assert.Equal(t, 1, len(in.Prints)) {
		pr := in.Prints[0]
		assert.Equal(t, PrintEnergy, pr.Kind)
		assert.Equal(t, []Operand{{Calc: 0, Sign: 1}, {Calc: 1, Sign: -1}}, pr.Args)
	}
}

func TestParseUnknownPrintKept(t *testing.T) {
	in, err := ParseString(`elec
    mg-manual
end
print wombat 1 end
quit`)
	if err != nil {
		t.Fatal(err)
	}
	if assert.Equal(t, 1, len(in.Prints)) {
		assert.Equal(t, PrintUnknown, in.Prints[0].Kind)
		assert.Equal(t, "wombat", in.Prints[0].Word)
	}
}

func TestParseFiniteElement(t *testing.T) {
	in, err := ParseString(`elec
    fe-manual
end
quit`)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, FiniteElement, in.Calcs[0].Type)
}

func TestParseTooManyCalcs(t *testing.T) {
	var b strings.Builder
	for i := 0; i <= MaxCalc; i++ {
		fmt.Fprintf(&b, "elec name c%d\n    mg-manual\nend\n", i)
	}
	b.WriteString("quit\n")

	_, err := ParseString(b.String())
	if !errors.Is(err, ErrLimit) {
		t.Errorf("got %v, wanted ErrLimit", err)
	}
}

func TestParseTooManyMols(t *testing.T) {
	var b strings.Builder
	b.WriteString("read\n")
	for i := 0; i <= MaxMol; i++ {
		fmt.Fprintf(&b, "    mol pqr m%d.pqr\n", i)
	}
	b.WriteString("end\nquit\n")

	_, err := ParseString(b.String())
	if !errors.Is(err, ErrLimit) {
		t.Errorf("got %v, wanted ErrLimit", err)
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{
		"banana",
		"elec\n    dime 65 sixty-five 65\nend\nquit",
		"elec\n    mg-manual\nend\nprint energy 3 end\nquit",
		"elec\n    mg-manual\nend\nprint energy 1 * 1 end\nquit",
		"elec\n    mg-manual",
	} {
		if _, err := ParseString(in); !errors.Is(err, ErrSyntax) {
			t.Errorf("%q: got %v, wanted ErrSyntax", in, err)
		}
	}
}

func TestParseMaps(t *testing.T) {
	in, err := ParseString(`read
    mol pqr a.pqr
    mol pqr b.pqr
    diel dx x.dx y.dx z.dx
    kappa dx k.dx
end
elec
    mg-manual
end
quit`)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, []string{"x.dx", ""}, in.DielX)
	assert.Equal(t, []string{"k.dx", ""}, in.Kappa)
	assert.Equal(t, []string{"", ""}, in.Charge)
}
