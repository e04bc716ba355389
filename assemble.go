package jigsaw

import (
	"context"
	"fmt"
	"slices"

	"github.com/bodgit/jigsaw/grid"
	"github.com/bodgit/jigsaw/tile"
	"github.com/rs/zerolog"
)

// candidate is an unplaced tile with every orientation and its edges worked
// out once up front.
type candidate struct {
	id    uint64
	grids [grid.NumOrientations]grid.Grid
	edges [grid.NumOrientations][4][]bool
}

func newCandidate(t tile.Tile) *candidate {
	c := &candidate{
		id:    t.ID,
		grids: grid.Orientations(t.Grid),
	}
	for o, g := range c.grids {
		for _, s := range grid.Sides {
			c.edges[o][s] = g.Edge(s)
		}
	}
	return c
}

func (c *candidate) placement(p Position, o grid.Orientation) Placement {
	return Placement{
		Position:    p,
		TileID:      c.id,
		Orientation: o,
		Grid:        c.grids[o],
		edges:       c.edges[o],
	}
}

// firstFit returns the first remaining tile, and the first of its
// orientations, that fits at p.
func firstFit(l *Layout, p Position, remaining []*candidate) (int, grid.Orientation, bool) {
	for i, c := range remaining {
		for o := range c.edges {
			if l.fits(p, &c.edges[o]) {
				return i, grid.Orientation(o), true
			}
		}
	}
	return 0, grid.Identity, false
}

// An Assembler places tiles edge to edge until every tile is used.
type Assembler struct {
	logger  zerolog.Logger
	workers int
}

// NewAssembler returns an Assembler. With more than one worker the frontier
// positions of each pass are searched concurrently.
func NewAssembler(logger zerolog.Logger, workers int) *Assembler {
	return &Assembler{
		logger:  logger,
		workers: workers,
	}
}

func validateTiles(tiles []tile.Tile) error {
	if len(tiles) == 0 {
		return ErrNoTiles
	}

	side := tiles[0].Side()
	ids := make(map[uint64]struct{}, len(tiles))
	for _, t := range tiles {
		if !t.Grid.Square() || t.Side() != side {
			return fmt.Errorf("%w: tile %d is %dx%d, expected %dx%d", grid.ErrDimensionMismatch, t.ID, t.Grid.Rows(), t.Grid.Cols(), side, side)
		}
		if _, ok := ids[t.ID]; ok {
			return fmt.Errorf("%w: %d", ErrDuplicateTile, t.ID)
		}
		ids[t.ID] = struct{}{}
	}

	return nil
}

func (a *Assembler) place(l *Layout, pl Placement) {
	l.place(pl)
	a.logger.Debug().
		Uint64("tile", pl.TileID).
		Int("row", pl.Row).
		Int("col", pl.Col).
		Stringer("orientation", pl.Orientation).
		Msg("Placed tile")
}

// scan walks the frontier once and places the first tile that fits.
func (a *Assembler) scan(l *Layout, remaining []*candidate) (int, []*candidate) {
	for _, p := range l.frontier() {
		if i, o, ok := firstFit(l, p, remaining); ok {
			a.place(l, remaining[i].placement(p, o))
			return 1, slices.Delete(remaining, i, i+1)
		}
	}
	return 0, remaining
}

// Assemble seeds the layout with the first tile, unrotated, at (0, 0) and
// then repeatedly fills frontier positions. Accepted placements are never
// revisited, so a tile set without a unique arrangement can leave tiles
// over, which is reported as ErrNoValidArrangement.
func (a *Assembler) Assemble(ctx context.Context, tiles []tile.Tile) (*Layout, error) {
	if err := validateTiles(tiles); err != nil {
		return nil, err
	}

	l := newLayout(tiles[0].Side())
	a.place(l, newCandidate(tiles[0]).placement(Position{}, grid.Identity))

	remaining := make([]*candidate, 0, len(tiles)-1)
	for _, t := range tiles[1:] {
		remaining = append(remaining, newCandidate(t))
	}

	// Every pass places at least one tile or gives up
	for pass := 0; len(remaining) > 0 && pass < len(tiles); pass++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var placed int
		if a.workers > 1 {
			var err error
			if placed, remaining, err = a.scanParallel(ctx, l, remaining); err != nil {
				return nil, err
			}
		} else {
			placed, remaining = a.scan(l, remaining)
		}

		if placed == 0 {
			break
		}
	}

	if len(remaining) > 0 {
		return nil, fmt.Errorf("%w: %d of %d tiles unplaced", ErrNoValidArrangement, len(remaining), len(tiles))
	}

	b := l.Bounds()
	a.logger.Info().
		Int("tiles", l.Len()).
		Int("rows", b.Rows()).
		Int("cols", b.Cols()).
		Msg("Assembled tiles")

	return l, nil
}
