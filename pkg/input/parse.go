package input

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse reads a configuration. Parsing stops at the quit token or at
// the end of the stream, whichever comes first.
func Parse(r io.Reader) (*Input, error) {
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	p := &parser{sc: sc, in: &Input{}}

	for p.sc.Scan() {
		tok := p.sc.Text()
		switch tok {
		case "read":
			p.parseRead()
		case "elec":
			p.parseElec()
		case "print":
			p.parsePrint()
		case "quit":
			return p.finish()
		default:
			p.err = fmt.Errorf("%w: unknown section `%s`", ErrSyntax, tok)
		}
		if p.err != nil {
			return nil, p.err
		}
	}
	if err := p.sc.Err(); err != nil {
		return nil, err
	}
	return p.finish()
}

// ParseString is like Parse but takes the configuration directly as a
// string.
func ParseString(s string) (*Input, error) {
	return Parse(strings.NewReader(s))
}

// parser is a token reader with a sticky error: once err is set, every
// fetch is a no-op and the first error is the one reported.
type parser struct {
	sc  *bufio.Scanner
	in  *Input
	err error
}

func (p *parser) next() string {
	if p.err != nil {
		return ""
	}
	if !p.sc.Scan() {
		if err := p.sc.Err(); err != nil {
			p.err = err
		} else {
			p.err = fmt.Errorf("%w: unexpected end of configuration", ErrSyntax)
		}
		return ""
	}
	return p.sc.Text()
}

func (p *parser) float() float64 {
	tok := p.next()
	if p.err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		p.err = fmt.Errorf("%w: `%s` isn't a number", ErrSyntax, tok)
	}
	return v
}

func (p *parser) integer() int {
	tok := p.next()
	if p.err != nil {
		return 0
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		p.err = fmt.Errorf("%w: `%s` isn't an integer", ErrSyntax, tok)
	}
	return v
}

// parseRead parses the read section: molecule sources and the optional
// dielectric, kappa and charge map files. Map declarations are aligned
// with the molecules by declaration order.
func (p *parser) parseRead() {
	for {
		tok := p.next()
		if p.err != nil || tok == "end" {
			return
		}
		switch tok {
		case "mol":
			p.next() // format, only pqr is meaningful here
			path := p.next()
			if p.err == nil && len(p.in.Mols) >= MaxMol {
				p.err = fmt.Errorf("%w: more than %d molecules", ErrLimit, MaxMol)
				return
			}
			p.in.Mols = append(p.in.Mols, path)
		case "diel":
			p.next()
			p.in.DielX = append(p.in.DielX, p.next())
			p.in.DielY = append(p.in.DielY, p.next())
			p.in.DielZ = append(p.in.DielZ, p.next())
		case "kappa":
			p.next()
			p.in.Kappa = append(p.in.Kappa, p.next())
		case "charge":
			p.next()
			p.in.Charge = append(p.in.Charge, p.next())
		default:
			p.err = fmt.Errorf("%w: unknown read keyword `%s`", ErrSyntax, tok)
			return
		}
	}
}

// parseElec parses one elec section into a Calc and its Elec label.
func (p *parser) parseElec() {
	if len(p.in.Calcs) >= MaxCalc {
		p.err = fmt.Errorf("%w: more than %d calculations", ErrLimit, MaxCalc)
		return
	}

	calc := Calc{Type: Multigrid}
	var elec Elec
	for {
		tok := p.next()
		if p.err != nil {
			return
		}
		if tok == "end" {
			break
		}
		switch tok {
		case "name":
			elec.Name = p.next()
		case "mg-manual", "mg-auto", "mg-para":
			calc.Type = Multigrid
		case "fe-manual":
			calc.Type = FiniteElement
		case "dime":
			for k := 0; k < 3; k++ {
				calc.Dime[k] = p.integer()
			}
		case "nlev":
			calc.Nlev = p.integer()
		case "grid":
			for k := 0; k < 3; k++ {
				calc.Grid[k] = p.float()
			}
		case "gcent":
			p.parseCenter(&calc.Gcent)
		case "mol":
			calc.Mol = p.integer()
		case "lpbe", "npbe":
			calc.PBE = tok
		case "bcfl":
			calc.Bcfl = p.next()
		case "chgm":
			calc.Chgm = p.next()
		case "srfm":
			calc.Srfm = p.next()
		case "ion":
			ion := Ion{Charge: p.float(), Conc: p.float(), Radius: p.float()}
			calc.Ions = append(calc.Ions, ion)
		case "pdie":
			calc.PDie = p.float()
		case "sdie":
			calc.SDie = p.float()
		case "sdens":
			calc.Sdens = p.float()
		case "srad":
			calc.Srad = p.float()
		case "swin":
			calc.Swin = p.float()
		case "temp":
			calc.Temp = p.float()
		case "gamma":
			calc.Gamma = p.float()
		case "calcenergy":
			calc.CalcEnergy = p.next()
		case "calcforce":
			calc.CalcForce = p.next()
		default:
			p.err = fmt.Errorf("%w: unknown elec keyword `%s`", ErrSyntax, tok)
			return
		}
	}
	if p.err != nil {
		return
	}

	p.in.Calcs = append(p.in.Calcs, calc)
	elec.Calc = len(p.in.Calcs) - 1
	p.in.Elecs = append(p.in.Elecs, elec)
}

// parseCenter parses a gcent argument: either `mol <i>` or an explicit
// coordinate triple.
func (p *parser) parseCenter(c *Center) {
	tok := p.next()
	if p.err != nil {
		return
	}
	if tok == "mol" {
		c.Mol = p.integer()
		return
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		p.err = fmt.Errorf("%w: `%s` isn't a number", ErrSyntax, tok)
		return
	}
	c.Coord[0] = v
	c.Coord[1] = p.float()
	c.Coord[2] = p.float()
}

// parsePrint parses one print directive. Unknown directive kinds are
// kept with their keyword so the evaluator can report them; they are
// not a parse error.
func (p *parser) parsePrint() {
	word := p.next()
	if p.err != nil {
		return
	}

	switch word {
	case "energy":
		pr := Print{Kind: PrintEnergy, Word: word}
		pr.Args = append(pr.Args, Operand{Calc: p.calcIndex(), Sign: 1})
		for {
			tok := p.next()
			if p.err != nil {
				return
			}
			if tok == "end" {
				break
			}
			var sign int
			switch tok {
			case "+":
				sign = 1
			case "-":
				sign = -1
			default:
				p.err = fmt.Errorf("%w: `%s` isn't a print operator", ErrSyntax, tok)
				return
			}
			pr.Args = append(pr.Args, Operand{Calc: p.calcIndex(), Sign: sign})
		}
		p.in.Prints = append(p.in.Prints, pr)
	case "force":
		pr := Print{Kind: PrintForce, Word: word}
		pr.Args = []Operand{{Calc: p.calcIndex(), Sign: 1}}
		if tok := p.next(); p.err == nil && tok != "end" {
			p.err = fmt.Errorf("%w: `%s` after print force index", ErrSyntax, tok)
		}
		p.in.Prints = append(p.in.Prints, pr)
	default:
		for {
			tok := p.next()
			if p.err != nil || tok == "end" {
				break
			}
		}
		p.in.Prints = append(p.in.Prints, Print{Kind: PrintUnknown, Word: word})
	}
}

// calcIndex reads a one-based calculation reference and converts it to
// the index space of Calcs.
func (p *parser) calcIndex() int {
	i := p.integer()
	if p.err != nil {
		return 0
	}
	if i < 1 || i > len(p.in.Calcs) {
		p.err = fmt.Errorf("%w: calculation %d doesn't exist (%d declared)",
			ErrSyntax, i, len(p.in.Calcs))
		return 0
	}
	return i - 1
}

// finish pads the map slices so they can be indexed like Mols, and
// hands over the parsed configuration.
func (p *parser) finish() (*Input, error) {
	if p.err != nil {
		return nil, p.err
	}
	pad := func(s []string) []string {
		for len(s) < len(p.in.Mols) {
			s = append(s, "")
		}
		return s
	}
	p.in.DielX = pad(p.in.DielX)
	p.in.DielY = pad(p.in.DielY)
	p.in.DielZ = pad(p.in.DielZ)
	p.in.Kappa = pad(p.in.Kappa)
	p.in.Charge = pad(p.in.Charge)
	return p.in, nil
}
