package jigsaw

import (
	"fmt"
	"strings"

	"github.com/bodgit/jigsaw/grid"
)

const seaMonsterTemplate = "" +
	"                  # \n" +
	"#    ##    ##    ###\n" +
	" #  #  #  #  #  #   "

// SeaMonster is the 20x3 stencil searched for in the stitched image.
var SeaMonster = mustParsePattern(seaMonsterTemplate)

// Offset is the position of an on cell relative to the top-left corner of
// a pattern.
type Offset struct {
	Row, Col int
}

// Pattern is a small fixed stencil of on cells.
type Pattern struct {
	Width   int
	Height  int
	Offsets []Offset
}

// ParsePattern reads a stencil where '#' marks an on cell and ' ' or '.'
// is ignored. The width is the longest line.
func ParsePattern(template string) (Pattern, error) {
	var p Pattern
	for row, line := range strings.Split(strings.TrimRight(template, "\r\n"), "\n") {
		line = strings.TrimSuffix(line, "\r")
		col := 0
		for _, c := range line {
			switch c {
			case '#':
				p.Offsets = append(p.Offsets, Offset{row, col})
			case ' ', '.':
			default:
				return Pattern{}, fmt.Errorf("%w: %q at line %d", ErrInvalidPattern, c, row+1)
			}
			col++
		}
		p.Width = max(p.Width, col)
		p.Height++
	}

	if len(p.Offsets) == 0 {
		return Pattern{}, fmt.Errorf("%w: no cells", ErrInvalidPattern)
	}

	return p, nil
}

func mustParsePattern(template string) Pattern {
	p, err := ParsePattern(template)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Pattern) matchesAt(g grid.Grid, row, col int) bool {
	for _, o := range p.Offsets {
		if v, err := g.Get(row+o.Row, col+o.Col); err != nil || !v {
			return false
		}
	}
	return true
}

// Find returns the top-left position of every window of g, as oriented,
// that has all of the pattern's cells on.
func (p Pattern) Find(g grid.Grid) []Position {
	var matches []Position
	for row := 0; row+p.Height <= g.Rows(); row++ {
		for col := 0; col+p.Width <= g.Cols(); col++ {
			if p.matchesAt(g, row, col) {
				matches = append(matches, Position{row, col})
			}
		}
	}
	return matches
}

// Scan is the outcome of searching an image for a pattern.
type Scan struct {
	Pattern     Pattern
	Orientation grid.Orientation // Orientation of the image that matched
	Image       grid.Grid        // The image in that orientation
	Matches     []Position
	Roughness   int // On pixels less those claimed by matches
}

// Scan tries each orientation of g in the order returned by
// grid.Orientations and stops at the first one with at least one match.
func (p Pattern) Scan(g grid.Grid) (*Scan, error) {
	for i, img := range grid.Orientations(g) {
		matches := p.Find(img)
		if len(matches) == 0 {
			continue
		}
		return &Scan{
			Pattern:     p,
			Orientation: grid.Orientation(i),
			Image:       img,
			Matches:     matches,
			Roughness:   img.Count() - len(matches)*len(p.Offsets),
		}, nil
	}
	return nil, ErrNoOrientationMatched
}

// Covered returns a mask, the same size as the matched image, of every
// pixel claimed by a match.
func (s *Scan) Covered() (grid.Grid, error) {
	rows, cols := s.Image.Rows(), s.Image.Cols()
	pix := make([]bool, rows*cols)
	for _, m := range s.Matches {
		for _, o := range s.Pattern.Offsets {
			pix[(m.Row+o.Row)*cols+m.Col+o.Col] = true
		}
	}
	return grid.FromPixels(rows, cols, pix)
}
