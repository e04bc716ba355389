/*
Package grid implements the fixed-size boolean pixel grid shared by puzzle
tiles and the stitched composite image, together with the eight rigid-body
orientations of a grid and the edge fingerprints used to match neighbouring
tiles.

A Grid is a value; none of its methods modify it and every transform returns
a new Grid.
*/
package grid

import (
	"errors"
	"fmt"
	"strings"
)

const (
	on  = '#'
	off = '.'
)

var (
	// ErrDimensionMismatch is returned when pixel rows are not all the
	// same length or a pixel buffer does not fit the requested size.
	ErrDimensionMismatch = errors.New("grid: dimension mismatch")
	// ErrOutOfBounds is returned when addressing a pixel outside the grid.
	ErrOutOfBounds = errors.New("grid: coordinates out of bounds")
	// ErrInvalidPixel is returned when parsing a character other than
	// '#' or '.'.
	ErrInvalidPixel = errors.New("grid: invalid pixel")
)

// Grid is a rows by cols boolean pixel grid stored row-major.
type Grid struct {
	rows, cols int
	pix        []bool
}

// New returns a Grid built from rows of pixels. Every row must be the same
// length.
func New(rows [][]bool) (Grid, error) {
	if len(rows) == 0 {
		return Grid{}, nil
	}

	cols := len(rows[0])
	pix := make([]bool, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return Grid{}, fmt.Errorf("%w: row %d has %d pixels, expected %d", ErrDimensionMismatch, i, len(row), cols)
		}
		pix = append(pix, row...)
	}

	return Grid{rows: len(rows), cols: cols, pix: pix}, nil
}

// FromPixels returns a Grid using a copy of the row-major buffer pix.
func FromPixels(rows, cols int, pix []bool) (Grid, error) {
	if rows < 0 || cols < 0 || len(pix) != rows*cols {
		return Grid{}, fmt.Errorf("%w: %d pixels for %dx%d", ErrDimensionMismatch, len(pix), rows, cols)
	}
	return Grid{rows: rows, cols: cols, pix: append([]bool(nil), pix...)}, nil
}

// Parse returns a Grid from lines of '#' (on) and '.' (off) characters.
// Trailing carriage returns are ignored.
func Parse(s string) (Grid, error) {
	s = strings.TrimRight(s, "\r\n")
	if s == "" {
		return Grid{}, nil
	}

	var rows [][]bool
	for _, line := range strings.Split(s, "\n") {
		row, err := ParseRow(strings.TrimSuffix(line, "\r"))
		if err != nil {
			return Grid{}, err
		}
		rows = append(rows, row)
	}
	return New(rows)
}

// ParseRow decodes a single line of '#' and '.' characters.
func ParseRow(line string) ([]bool, error) {
	row := make([]bool, 0, len(line))
	for i, c := range line {
		switch c {
		case on:
			row = append(row, true)
		case off:
			row = append(row, false)
		default:
			return nil, fmt.Errorf("%w: %q at column %d", ErrInvalidPixel, c, i)
		}
	}
	return row, nil
}

// Rows returns the number of rows.
func (g Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns.
func (g Grid) Cols() int {
	return g.cols
}

// Square reports whether the grid has as many rows as columns.
func (g Grid) Square() bool {
	return g.rows == g.cols
}

// Get returns the pixel at row, col.
func (g Grid) Get(row, col int) (bool, error) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return false, fmt.Errorf("%w: (%d, %d) in %dx%d", ErrOutOfBounds, row, col, g.rows, g.cols)
	}
	return g.pix[row*g.cols+col], nil
}

// at is the unchecked accessor used by the transforms, which only ever
// address pixels inside the grid.
func (g Grid) at(row, col int) bool {
	return g.pix[row*g.cols+col]
}

// Equal reports whether both grids have the same dimensions and pixels.
func (g Grid) Equal(o Grid) bool {
	if g.rows != o.rows || g.cols != o.cols {
		return false
	}
	for i := range g.pix {
		if g.pix[i] != o.pix[i] {
			return false
		}
	}
	return true
}

// Count returns the number of on pixels.
func (g Grid) Count() int {
	n := 0
	for _, p := range g.pix {
		if p {
			n++
		}
	}
	return n
}

// Pixels returns a copy of the row-major pixel buffer.
func (g Grid) Pixels() []bool {
	return append([]bool(nil), g.pix...)
}

func (g Grid) String() string {
	var b strings.Builder
	b.Grow(g.rows * (g.cols + 1))
	for r := 0; r < g.rows; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := 0; c < g.cols; c++ {
			if g.at(r, c) {
				b.WriteByte(on)
			} else {
				b.WriteByte(off)
			}
		}
	}
	return b.String()
}
