/*
Package tile implements a decoder and encoder for puzzle tile sets.

A tile set is one or more blocks separated by blank lines. Each block is a
header line of the form "Tile <id>:" followed by n lines of n characters,
where '#' is an on pixel and '.' is an off pixel. Every tile in a set shares
the same side length, taken from the first row of the first tile.
*/
package tile

import "github.com/bodgit/jigsaw/grid"

const (
	headerPrefix = "Tile "
	headerSuffix = ":"

	// MinSide is the smallest tile that still has an interior once its
	// one pixel border is trimmed.
	MinSide = 3
)

// Tile is a square pixel grid with a unique identifier.
type Tile struct {
	ID   uint64
	Grid grid.Grid
}

// Side returns the side length of the tile.
func (t Tile) Side() int {
	return t.Grid.Rows()
}
