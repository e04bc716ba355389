package image

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/bodgit/jigsaw/grid"
	"golang.org/x/image/draw"
)

var (
	errEmpty    = errors.New("image: empty grid")
	errBadScale = errors.New("image: scale must be at least 1")
)

// Render returns g as a paletted image. If highlight is not empty it must
// be the same size as g; on pixels under an on highlight pixel use the
// highlight colour.
func Render(g, highlight grid.Grid) (*image.Paletted, error) {
	useHighlight := highlight.Rows() > 0 || highlight.Cols() > 0
	if useHighlight && (highlight.Rows() != g.Rows() || highlight.Cols() != g.Cols()) {
		return nil, fmt.Errorf("%w: highlight is %dx%d, image is %dx%d", grid.ErrDimensionMismatch, highlight.Rows(), highlight.Cols(), g.Rows(), g.Cols())
	}

	m := image.NewPaletted(image.Rect(0, 0, g.Cols(), g.Rows()), palette)
	for y := 0; y < g.Rows(); y++ {
		for x := 0; x < g.Cols(); x++ {
			v, err := g.Get(y, x)
			if err != nil {
				return nil, err
			}
			if !v {
				continue
			}

			index := uint8(onIndex)
			if useHighlight {
				if h, _ := highlight.Get(y, x); h {
					index = highlightIndex
				}
			}
			m.SetColorIndex(x, y, index)
		}
	}

	return m, nil
}

// Encode writes g to w as a PNG with every grid pixel drawn as a scale by
// scale block.
func Encode(w io.Writer, g, highlight grid.Grid, scale int) error {
	if g.Rows() == 0 || g.Cols() == 0 {
		return errEmpty
	}
	if scale < 1 {
		return errBadScale
	}

	m, err := Render(g, highlight)
	if err != nil {
		return err
	}

	if scale > 1 {
		dst := image.NewPaletted(image.Rect(0, 0, g.Cols()*scale, g.Rows()*scale), palette)
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), m, m.Bounds(), draw.Src, nil)
		m = dst
	}

	return png.Encode(w, m)
}
