package builder

import (
	"math"

	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/geometry"
)

// GridDescriptor describes an orthogonal 2D grid. A valid descriptor sets
// at least two of NCells, CellLen and Lens; the third is derived. When all
// three are set, Lens is ignored.
type GridDescriptor struct {
	// Origin is the bottom-left corner of the grid.
	Origin geometry.Vertex2
	// NCells is the number of cells along x and y.
	NCells [2]int
	// CellLen is the edge length of one cell along x and y.
	CellLen [2]float64
	// Lens is the total grid length along x and y.
	Lens [2]float64
	// SplitQuads cuts every quad into two triangles along its diagonal.
	SplitQuads bool
}

func (g GridDescriptor) hasNCells() bool  { return g.NCells != [2]int{} }
func (g GridDescriptor) hasCellLen() bool { return g.CellLen != [2]float64{} }
func (g GridDescriptor) hasLens() bool    { return g.Lens != [2]float64{} }

func checkCounts(n [2]int) error {
	if n[0] <= 0 || n[1] <= 0 {
		return &GridParameterError{Param: "NCells", Reason: "cell counts must be positive"}
	}
	return nil
}

func checkLengths(param string, l [2]float64) error {
	if l[0] <= 0 || l[1] <= 0 || math.IsNaN(l[0]) || math.IsNaN(l[1]) {
		return &GridParameterError{Param: param, Reason: "lengths must be positive"}
	}
	return nil
}

// resolve computes the cell counts and per-cell lengths the building
// routines need.
func (g GridDescriptor) resolve() ([2]int, [2]float64, error) {
	switch {
	case g.hasNCells() && g.hasCellLen():
		if err := checkCounts(g.NCells); err != nil {
			return [2]int{}, [2]float64{}, err
		}
		if err := checkLengths("CellLen", g.CellLen); err != nil {
			return [2]int{}, [2]float64{}, err
		}
		return g.NCells, g.CellLen, nil
	case g.hasNCells() && g.hasLens():
		if err := checkCounts(g.NCells); err != nil {
			return [2]int{}, [2]float64{}, err
		}
		if err := checkLengths("Lens", g.Lens); err != nil {
			return [2]int{}, [2]float64{}, err
		}
		return g.NCells, [2]float64{
			g.Lens[0] / float64(g.NCells[0]),
			g.Lens[1] / float64(g.NCells[1]),
		}, nil
	case g.hasCellLen() && g.hasLens():
		if err := checkLengths("CellLen", g.CellLen); err != nil {
			return [2]int{}, [2]float64{}, err
		}
		if err := checkLengths("Lens", g.Lens); err != nil {
			return [2]int{}, [2]float64{}, err
		}
		return [2]int{
			int(math.Ceil(g.Lens[0] / g.CellLen[0])),
			int(math.Ceil(g.Lens[1] / g.CellLen[1])),
		}, g.CellLen, nil
	default:
		return [2]int{}, [2]float64{}, ErrMissingGridParameters
	}
}
