package jigsaw

import (
	"cmp"
	"fmt"
	"math/bits"
	"slices"

	"github.com/bodgit/jigsaw/grid"
	"github.com/bodgit/jigsaw/metadata"
	"github.com/bodgit/jigsaw/tile"
)

// Position is a cell in the unbounded tile coordinate space. Rows grow
// downwards and columns grow to the right.
type Position struct {
	Row, Col int
}

// Step returns the neighbouring position across side s.
func (p Position) Step(s grid.Side) Position {
	switch s {
	case grid.Top:
		return Position{p.Row - 1, p.Col}
	case grid.Bottom:
		return Position{p.Row + 1, p.Col}
	case grid.Left:
		return Position{p.Row, p.Col - 1}
	case grid.Right:
		return Position{p.Row, p.Col + 1}
	}
	return p
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Col)
}

func comparePositions(a, b Position) int {
	if c := cmp.Compare(a.Row, b.Row); c != 0 {
		return c
	}
	return cmp.Compare(a.Col, b.Col)
}

// Placement records which tile sits at a position and how it is oriented.
type Placement struct {
	Position
	TileID      uint64
	Orientation grid.Orientation
	Grid        grid.Grid // The tile grid with Orientation applied

	edges [4][]bool
}

func newPlacement(p Position, id uint64, o grid.Orientation, g grid.Grid) Placement {
	pl := Placement{
		Position:    p,
		TileID:      id,
		Orientation: o,
		Grid:        g,
	}
	for _, s := range grid.Sides {
		pl.edges[s] = g.Edge(s)
	}
	return pl
}

// Bounds is the inclusive bounding box of every placed position.
type Bounds struct {
	MinRow, MaxRow, MinCol, MaxCol int
}

// Rows returns the number of tile rows covered.
func (b Bounds) Rows() int {
	return b.MaxRow - b.MinRow + 1
}

// Cols returns the number of tile columns covered.
func (b Bounds) Cols() int {
	return b.MaxCol - b.MinCol + 1
}

// Corners returns the top-left, top-right, bottom-left and bottom-right
// positions.
func (b Bounds) Corners() [4]Position {
	return [4]Position{
		{b.MinRow, b.MinCol},
		{b.MinRow, b.MaxCol},
		{b.MaxRow, b.MinCol},
		{b.MaxRow, b.MaxCol},
	}
}

func (b *Bounds) extend(p Position) {
	b.MinRow = min(b.MinRow, p.Row)
	b.MaxRow = max(b.MaxRow, p.Row)
	b.MinCol = min(b.MinCol, p.Col)
	b.MaxCol = max(b.MaxCol, p.Col)
}

// Layout is the append-only mapping of positions to placements built by an
// Assembler.
type Layout struct {
	placements map[Position]Placement
	tiles      map[uint64]Position
	bounds     Bounds
	side       int
}

func newLayout(side int) *Layout {
	return &Layout{
		placements: make(map[Position]Placement),
		tiles:      make(map[uint64]Position),
		side:       side,
	}
}

// place records pl. Positions and tiles are never reused.
func (l *Layout) place(pl Placement) {
	if len(l.placements) == 0 {
		l.bounds = Bounds{pl.Row, pl.Row, pl.Col, pl.Col}
	} else {
		l.bounds.extend(pl.Position)
	}
	l.placements[pl.Position] = pl
	l.tiles[pl.TileID] = pl.Position
}

// fits reports whether a grid with the given edges can sit at p: every
// placed neighbour must present an identical touching edge.
func (l *Layout) fits(p Position, edges *[4][]bool) bool {
	if _, ok := l.placements[p]; ok {
		return false
	}
	for _, s := range grid.Sides {
		n, ok := l.placements[p.Step(s)]
		if !ok {
			continue
		}
		if !grid.EdgesEqual(edges[s], n.edges[s.Opposite()]) {
			return false
		}
	}
	return true
}

// frontier returns the empty positions next to at least one placement, in
// row then column order.
func (l *Layout) frontier() []Position {
	seen := make(map[Position]struct{})
	var out []Position
	for p := range l.placements {
		for _, s := range grid.Sides {
			n := p.Step(s)
			if _, ok := l.placements[n]; ok {
				continue
			}
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	slices.SortFunc(out, comparePositions)
	return out
}

// At returns the placement at p, if any.
func (l *Layout) At(p Position) (Placement, bool) {
	pl, ok := l.placements[p]
	return pl, ok
}

// Find returns the placement of the tile with the given id, if any.
func (l *Layout) Find(id uint64) (Placement, bool) {
	p, ok := l.tiles[id]
	if !ok {
		return Placement{}, false
	}
	return l.placements[p], true
}

// Len returns the number of placed tiles.
func (l *Layout) Len() int {
	return len(l.placements)
}

// Bounds returns the bounding box of the placed positions.
func (l *Layout) Bounds() Bounds {
	return l.bounds
}

// TileSide returns the side length of the placed tiles.
func (l *Layout) TileSide() int {
	return l.side
}

// Placements returns every placement ordered by row then column.
func (l *Layout) Placements() []Placement {
	out := make([]Placement, 0, len(l.placements))
	for _, pl := range l.placements {
		out = append(out, pl)
	}
	slices.SortFunc(out, func(a, b Placement) int {
		return comparePositions(a.Position, b.Position)
	})
	return out
}

// Corners returns the placements at the four corners of the bounding box.
func (l *Layout) Corners() ([4]Placement, error) {
	var out [4]Placement
	for i, p := range l.bounds.Corners() {
		pl, ok := l.placements[p]
		if !ok {
			return out, fmt.Errorf("%w: corner %s", ErrMissingTile, p)
		}
		out[i] = pl
	}
	return out, nil
}

// CornerProduct returns the product of the four corner tile ids. A single
// tile is its own four corners. ErrOverflow is returned if the product does
// not fit in 64 bits.
func (l *Layout) CornerProduct() (uint64, error) {
	corners, err := l.Corners()
	if err != nil {
		return 0, err
	}
	product := uint64(1)
	for _, pl := range corners {
		hi, lo := bits.Mul64(product, pl.TileID)
		if hi != 0 {
			return 0, fmt.Errorf("%w: corner product with tile %d", ErrOverflow, pl.TileID)
		}
		product = lo
	}
	return product, nil
}

// Metadata returns the layout in its storable form.
func (l *Layout) Metadata() *metadata.Layout {
	m := metadata.New()
	for _, pl := range l.placements {
		m.Set(metadata.Entry{
			Row:         int32(pl.Row),
			Col:         int32(pl.Col),
			TileID:      pl.TileID,
			Orientation: uint8(pl.Orientation),
		})
	}
	return m
}

// LayoutFromMetadata rebuilds a layout from its stored form, re-orienting
// each tile and checking every shared edge again.
func LayoutFromMetadata(m *metadata.Layout, tiles []tile.Tile) (*Layout, error) {
	byID := make(map[uint64]tile.Tile, len(tiles))
	for _, t := range tiles {
		byID[t.ID] = t
	}

	entries := m.Entries()
	if len(entries) == 0 || len(entries) != len(tiles) {
		return nil, fmt.Errorf("%w: %d stored placements for %d tiles", ErrNoValidArrangement, len(entries), len(tiles))
	}

	l := newLayout(tiles[0].Side())
	for _, e := range entries {
		t, ok := byID[e.TileID]
		if !ok {
			return nil, fmt.Errorf("%w: tile %d", ErrMissingTile, e.TileID)
		}
		if _, ok := l.tiles[e.TileID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateTile, e.TileID)
		}
		if e.Orientation >= grid.NumOrientations {
			return nil, fmt.Errorf("%w: tile %d has orientation %d", ErrNoValidArrangement, e.TileID, e.Orientation)
		}

		o := grid.Orientation(e.Orientation)
		pl := newPlacement(Position{int(e.Row), int(e.Col)}, t.ID, o, grid.Orient(t.Grid, o))
		if !l.fits(pl.Position, &pl.edges) {
			return nil, fmt.Errorf("%w: tile %d does not fit at %s", ErrNoValidArrangement, t.ID, pl.Position)
		}
		l.place(pl)
	}

	// Edges are only compared between neighbours, so the stored
	// placements must fill their bounding box
	if b := l.Bounds(); l.Len() != b.Rows()*b.Cols() {
		return nil, fmt.Errorf("%w: %d placements in a %dx%d layout", ErrMissingTile, l.Len(), b.Rows(), b.Cols())
	}

	return l, nil
}
