package grid

import "fmt"

// NumOrientations is the size of the symmetry group of a square: four
// rotations, each with and without a reflection.
const NumOrientations = 8

// Orientation is one element of the symmetry group of a square. The low two
// bits count clockwise quarter turns and bit 2 marks a horizontal flip that
// is applied before rotating.
type Orientation uint8

const (
	rotationMask = 0x3
	flipBit      = 0x4
)

// Identity leaves a grid unchanged.
const Identity Orientation = 0

// NewOrientation returns the orientation that flips (optionally) and then
// rotates clockwise by turns quarter turns. turns is taken modulo 4.
func NewOrientation(turns int, flipped bool) Orientation {
	o := Orientation(((turns % 4) + 4) % 4)
	if flipped {
		o |= flipBit
	}
	return o
}

// Rotations returns the number of clockwise quarter turns.
func (o Orientation) Rotations() int {
	return int(o & rotationMask)
}

// Flipped reports whether the orientation includes the horizontal flip.
func (o Orientation) Flipped() bool {
	return o&flipBit != 0
}

func (o Orientation) String() string {
	if o.Flipped() {
		return fmt.Sprintf("flip+rot%d", o.Rotations()*90)
	}
	return fmt.Sprintf("rot%d", o.Rotations()*90)
}

// Rotate90 returns g rotated a quarter turn clockwise, so that the pixel at
// (r, c) moves to (c, rows-1-r). The result has the rows and columns
// swapped.
func Rotate90(g Grid) Grid {
	out := Grid{rows: g.cols, cols: g.rows, pix: make([]bool, len(g.pix))}
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			out.pix[c*out.cols+(g.rows-1-r)] = g.at(r, c)
		}
	}
	return out
}

// FlipHorizontal returns g mirrored left to right; every row is reversed.
func FlipHorizontal(g Grid) Grid {
	out := Grid{rows: g.rows, cols: g.cols, pix: make([]bool, len(g.pix))}
	for r := 0; r < g.rows; r++ {
		for c := 0; c < g.cols; c++ {
			out.pix[r*g.cols+(g.cols-1-c)] = g.at(r, c)
		}
	}
	return out
}

// FlipVertical returns g mirrored top to bottom; the row order is reversed.
func FlipVertical(g Grid) Grid {
	out := Grid{rows: g.rows, cols: g.cols, pix: make([]bool, len(g.pix))}
	for r := 0; r < g.rows; r++ {
		copy(out.pix[(g.rows-1-r)*g.cols:(g.rows-r)*g.cols], g.pix[r*g.cols:(r+1)*g.cols])
	}
	return out
}

// Orient applies o to g.
func Orient(g Grid, o Orientation) Grid {
	if o.Flipped() {
		g = FlipHorizontal(g)
	} else {
		g = Grid{rows: g.rows, cols: g.cols, pix: append([]bool(nil), g.pix...)}
	}
	for i := 0; i < o.Rotations(); i++ {
		g = Rotate90(g)
	}
	return g
}

// Orientations returns all eight orientations of g. Index i holds
// Orient(g, Orientation(i)): the identity and three successive clockwise
// quarter turns, then the horizontally flipped grid and its three quarter
// turns. Grids with internal symmetry yield duplicates.
func Orientations(g Grid) [NumOrientations]Grid {
	var out [NumOrientations]Grid
	out[0] = Orient(g, Identity)
	out[4] = FlipHorizontal(g)
	for i := 1; i < 4; i++ {
		out[i] = Rotate90(out[i-1])
		out[4+i] = Rotate90(out[4+i-1])
	}
	return out
}
