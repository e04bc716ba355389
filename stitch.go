package jigsaw

import (
	"fmt"

	"github.com/bodgit/jigsaw/grid"
)

// Stitch trims the one pixel border from every placed tile and joins the
// interiors into a single image covering the layout's bounding box.
func Stitch(l *Layout) (grid.Grid, error) {
	inner := l.TileSide() - 2
	if inner < 1 {
		return grid.Grid{}, fmt.Errorf("%w: tile side %d has no interior", grid.ErrDimensionMismatch, l.TileSide())
	}

	b := l.Bounds()
	rows, cols := b.Rows()*inner, b.Cols()*inner
	pix := make([]bool, rows*cols)

	for ty := 0; ty < b.Rows(); ty++ {
		for tx := 0; tx < b.Cols(); tx++ {
			p := Position{b.MinRow + ty, b.MinCol + tx}
			pl, ok := l.At(p)
			if !ok {
				return grid.Grid{}, fmt.Errorf("%w: position %s", ErrMissingTile, p)
			}

			for y := 0; y < inner; y++ {
				for x := 0; x < inner; x++ {
					v, err := pl.Grid.Get(y+1, x+1)
					if err != nil {
						return grid.Grid{}, err
					}
					pix[(ty*inner+y)*cols+tx*inner+x] = v
				}
			}
		}
	}

	return grid.FromPixels(rows, cols, pix)
}
