package image

import (
	"errors"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/bodgit/jigsaw/grid"
	"github.com/ericpauley/go-quantize/quantize"
)

var errNotEnough = errors.New("image: image smaller than one grid pixel")

func luminance(c color.Color) uint8 {
	return color.GrayModel.Convert(c).(color.Gray).Y
}

// binarise reduces m to two colours and returns a function reporting
// whether a colour is on, which is whether it is closest to the darker of
// the two.
func binarise(m image.Image) func(color.Color) bool {
	q := quantize.MedianCutQuantizer{}
	p := q.Quantize(make(color.Palette, 0, 2), m)

	// A single colour, or two equally bright ones, falls back to a fixed
	// threshold
	if len(p) < 2 || luminance(p[0]) == luminance(p[1]) {
		return func(c color.Color) bool {
			return luminance(c) < 0x80
		}
	}

	dark := 0
	if luminance(p[1]) < luminance(p[0]) {
		dark = 1
	}

	return func(c color.Color) bool {
		return p.Index(c) == dark
	}
}

// Decode reads an image from r and returns it as a grid where each scale by
// scale block of image pixels, sampled at its centre, becomes one grid
// pixel.
func Decode(r io.Reader, scale int) (grid.Grid, error) {
	if scale < 1 {
		return grid.Grid{}, errBadScale
	}

	m, _, err := image.Decode(r)
	if err != nil {
		return grid.Grid{}, err
	}

	b := m.Bounds()
	rows, cols := b.Dy()/scale, b.Dx()/scale
	if rows == 0 || cols == 0 {
		return grid.Grid{}, errNotEnough
	}

	on := binarise(m)

	pix := make([]bool, 0, rows*cols)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			pix = append(pix, on(m.At(b.Min.X+x*scale+scale/2, b.Min.Y+y*scale+scale/2)))
		}
	}

	return grid.FromPixels(rows, cols, pix)
}
