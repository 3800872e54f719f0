/*
Package grid provides real-space grids as produced by electronic-structure
codes (charge densities, wavefunctions on a mesh), a compressed on-disk format
for them, and a settings-driven plot object that extracts 2-D planes from a
grid without re-slicing more than it has to.
*/
package grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

/**Note: the element accessors here panic on out-of-range indices instead of
 * returning errors. They sit in the innermost loops of everything this
 * package does, and an out-of-range index means the calling code is wrong.**/

// Grid is a regular 3-D grid spanning a (not necessarily orthogonal) cell.
// Values are stored flat in row-major order, z fastest.
type Grid struct {
	shape [3]int
	cell  *mat.Dense //3x3, one lattice vector per row, in Angstrom
	data  []float64
}

// New builds a zero-filled grid. The cell is copied; a nil cell means the
// unit cube.
func New(shape [3]int, cell *mat.Dense) (*Grid, error) {
	for _, s := range shape {
		if s <= 0 {
			return nil, fmt.Errorf("grid: non-positive shape %v", shape)
		}
	}
	g := &Grid{shape: shape, data: make([]float64, shape[0]*shape[1]*shape[2])}
	if cell == nil {
		g.cell = mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	} else {
		r, c := cell.Dims()
		if r != 3 || c != 3 {
			return nil, fmt.Errorf("grid: cell must be 3x3, got %dx%d", r, c)
		}
		g.cell = mat.DenseCopyOf(cell)
	}
	return g, nil
}

func (g *Grid) index(i, j, k int) int {
	if i < 0 || i >= g.shape[0] || j < 0 || j >= g.shape[1] || k < 0 || k >= g.shape[2] {
		panic(fmt.Sprintf("grid: index (%d,%d,%d) out of range for shape %v", i, j, k, g.shape))
	}
	return (i*g.shape[1]+j)*g.shape[2] + k
}

// At returns the value at grid point (i,j,k).
func (g *Grid) At(i, j, k int) float64 { return g.data[g.index(i, j, k)] }

// Set stores a value at grid point (i,j,k).
func (g *Grid) Set(i, j, k int, v float64) { g.data[g.index(i, j, k)] = v }

// Fill sets every grid point to v.
func (g *Grid) Fill(v float64) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Shape returns the number of points along each cell vector.
func (g *Grid) Shape() [3]int { return g.shape }

// Size returns the total number of grid points.
func (g *Grid) Size() int { return len(g.data) }

// Cell returns a copy of the cell matrix.
func (g *Grid) Cell() *mat.Dense { return mat.DenseCopyOf(g.cell) }

// Data returns a copy of the flat values, z fastest.
func (g *Grid) Data() []float64 {
	c := make([]float64, len(g.data))
	copy(c, g.data)
	return c
}

// Volume returns the cell volume.
func (g *Grid) Volume() float64 { return math.Abs(mat.Det(g.cell)) }

// DVolume returns the volume per grid point.
func (g *Grid) DVolume() float64 { return g.Volume() / float64(g.Size()) }

// Copy returns a deep copy.
func (g *Grid) Copy() *Grid {
	c := &Grid{shape: g.shape, cell: mat.DenseCopyOf(g.cell), data: make([]float64, len(g.data))}
	copy(c.data, g.data)
	return c
}

func (g *Grid) checkAxis(axis int) error {
	if axis < 0 || axis > 2 {
		return fmt.Errorf("grid: axis %d out of range", axis)
	}
	return nil
}

// planeShape returns the shape of a plane perpendicular to axis, keeping the
// remaining axes in order.
func (g *Grid) planeShape(axis int) (int, int) {
	switch axis {
	case 0:
		return g.shape[1], g.shape[2]
	case 1:
		return g.shape[0], g.shape[2]
	default:
		return g.shape[0], g.shape[1]
	}
}

func (g *Grid) atAlong(axis, a, b, c int) float64 {
	//a runs along the reduced first remaining axis, b the second, c the axis
	switch axis {
	case 0:
		return g.At(c, a, b)
	case 1:
		return g.At(a, c, b)
	default:
		return g.At(a, b, c)
	}
}

// CrossSection extracts the plane at position idx along the given axis.
func (g *Grid) CrossSection(idx, axis int) ([][]float64, error) {
	if err := g.checkAxis(axis); err != nil {
		return nil, err
	}
	if idx < 0 || idx >= g.shape[axis] {
		return nil, fmt.Errorf("grid: cross section %d out of range along axis %d", idx, axis)
	}
	na, nb := g.planeShape(axis)
	plane := make([][]float64, na)
	for a := 0; a < na; a++ {
		row := make([]float64, nb)
		for b := 0; b < nb; b++ {
			row[b] = g.atAlong(axis, a, b, idx)
		}
		plane[a] = row
	}
	return plane, nil
}

// Sum projects the grid onto the plane perpendicular to axis by summing.
func (g *Grid) Sum(axis int) ([][]float64, error) {
	if err := g.checkAxis(axis); err != nil {
		return nil, err
	}
	na, nb := g.planeShape(axis)
	plane := make([][]float64, na)
	for a := 0; a < na; a++ {
		row := make([]float64, nb)
		for b := 0; b < nb; b++ {
			var s float64
			for c := 0; c < g.shape[axis]; c++ {
				s += g.atAlong(axis, a, b, c)
			}
			row[b] = s
		}
		plane[a] = row
	}
	return plane, nil
}

// Average projects the grid onto the plane perpendicular to axis by
// averaging.
func (g *Grid) Average(axis int) ([][]float64, error) {
	plane, err := g.Sum(axis)
	if err != nil {
		return nil, err
	}
	n := float64(g.shape[axis])
	for _, row := range plane {
		for i := range row {
			row[i] /= n
		}
	}
	return plane, nil
}
