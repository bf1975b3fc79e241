package mg

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/kpotier/pbdriver/pkg/input"
	"github.com/kpotier/pbdriver/pkg/solver"
)

// ReadGrid parses a scalar field in the OpenDX grid format: a
// gridpositions object giving the dimensions, an origin line, three
// delta lines (only the diagonal is kept, the grids are axis aligned),
// and a data array holding dime[0]*dime[1]*dime[2] values.
func ReadGrid(r io.Reader) (*solver.Grid, error) {
	g := &solver.Grid{}
	sc := bufio.NewScanner(r)

	var deltas int
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "object":
			if len(fields) >= 4 && fields[3] == "gridpositions" {
				if len(fields) < 8 {
					return nil, fmt.Errorf("gridpositions: got %d fields", len(fields))
				}
				for k := 0; k < 3; k++ {
					v, err := strconv.Atoi(fields[5+k])
					if err != nil {
						return nil, fmt.Errorf("gridpositions: %v", err)
					}
					g.Dime[k] = v
				}
			}
			if len(fields) >= 4 && fields[3] == "array" {
				return readGridData(sc, g)
			}
		case "origin":
			if err := triple(fields[1:], &g.Origin); err != nil {
				return nil, fmt.Errorf("origin: %v", err)
			}
		case "delta":
			if deltas > 2 {
				return nil, fmt.Errorf("more than three delta lines")
			}
			var d [3]float64
			if err := triple(fields[1:], &d); err != nil {
				return nil, fmt.Errorf("delta: %v", err)
			}
			g.Spacing[deltas] = d[deltas]
			deltas++
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("no data array found")
}

// readGridData reads the values following the array object, one or
// more per line, until the expected count is reached.
func readGridData(sc *bufio.Scanner, g *solver.Grid) (*solver.Grid, error) {
	want := g.Dime[0] * g.Dime[1] * g.Dime[2]
	if want < 1 {
		return nil, fmt.Errorf("data array before gridpositions")
	}

	g.Data = make([]float64, 0, want)
	for len(g.Data) < want && sc.Scan() {
		for _, f := range strings.Fields(sc.Text()) {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, fmt.Errorf("data value %d: %v", len(g.Data), err)
			}
			g.Data = append(g.Data, v)
		}
	}
	if len(g.Data) < want {
		return nil, fmt.Errorf("truncated data array: got %d values (expected %d)",
			len(g.Data), want)
	}
	return g, nil
}

func triple(fields []string, dst *[3]float64) error {
	if len(fields) < 3 {
		return fmt.Errorf("got %d fields (expected 3)", len(fields))
	}
	for k := 0; k < 3; k++ {
		v, err := strconv.ParseFloat(fields[k], 64)
		if err != nil {
			return err
		}
		dst[k] = v
	}
	return nil
}

// LoadMaps loads every dielectric, kappa and charge map declared in
// the configuration. A declared map that cannot be opened or parsed
// aborts the run before any calculation starts.
func LoadMaps(in *input.Input) (*solver.Maps, error) {
	n := len(in.Mols)
	maps := &solver.Maps{
		DielX:  make([]*solver.Grid, n),
		DielY:  make([]*solver.Grid, n),
		DielZ:  make([]*solver.Grid, n),
		Kappa:  make([]*solver.Grid, n),
		Charge: make([]*solver.Grid, n),
	}

	load := func(path string, dst []*solver.Grid, i int) error {
		if path == "" {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("%w: %v", solver.ErrMapLoad, err)
		}
		defer f.Close()

		g, err := ReadGrid(f)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", solver.ErrMapLoad, path, err)
		}
		dst[i] = g
		return nil
	}

	for i := 0; i < n; i++ {
		if err := load(in.DielX[i], maps.DielX, i); err != nil {
			return nil, err
		}
		if err := load(in.DielY[i], maps.DielY, i); err != nil {
			return nil, err
		}
		if err := load(in.DielZ[i], maps.DielZ, i); err != nil {
			return nil, err
		}
		if err := load(in.Kappa[i], maps.Kappa, i); err != nil {
			return nil, err
		}
		if err := load(in.Charge[i], maps.Charge, i); err != nil {
			return nil, err
		}
	}
	return maps, nil
}
