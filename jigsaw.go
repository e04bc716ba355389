/*
Package jigsaw reassembles a picture from square tiles whose borders match
pixel for pixel, stitches the tile interiors into a single image and searches
that image for sea monsters.

Solving produces two figures: the product of the ids of the four corner
tiles, and the number of on pixels in the stitched image that are not part of
a sea monster.
*/
package jigsaw

import (
	"context"

	"github.com/bodgit/jigsaw/grid"
	"github.com/bodgit/jigsaw/tile"
	"github.com/rs/zerolog"
)

type Jigsaw struct {
	db      *PuzzleDB
	logger  zerolog.Logger
	workers int
}

// New returns a Jigsaw. db may be nil, in which case nothing is cached.
func New(db *PuzzleDB, logger zerolog.Logger, workers int) *Jigsaw {
	return &Jigsaw{
		db:      db,
		logger:  logger,
		workers: workers,
	}
}

// Result holds both puzzle answers along with the intermediate layout and
// images when they were computed rather than loaded from the database.
type Result struct {
	CornerProduct uint64 `json:"corner_product"`
	Monsters      int    `json:"monsters"`
	Roughness     int    `json:"roughness"`

	Layout *Layout   `json:"-"`
	Image  grid.Grid `json:"-"` // Stitched image before orienting
	Scan   *Scan     `json:"-"`
}

// Solve assembles tiles, stitches the image and scans it for sea monsters.
func (j *Jigsaw) Solve(ctx context.Context, tiles []tile.Tile) (*Result, error) {
	l, err := NewAssembler(j.logger, j.workers).Assemble(ctx, tiles)
	if err != nil {
		return nil, err
	}

	product, err := l.CornerProduct()
	if err != nil {
		return nil, err
	}

	img, err := Stitch(l)
	if err != nil {
		return nil, err
	}

	scan, err := j.ScanImage(img)
	if err != nil {
		return nil, err
	}

	return &Result{
		CornerProduct: product,
		Monsters:      len(scan.Matches),
		Roughness:     scan.Roughness,
		Layout:        l,
		Image:         img,
		Scan:          scan,
	}, nil
}

// ScanImage searches img for sea monsters in every orientation.
func (j *Jigsaw) ScanImage(img grid.Grid) (*Scan, error) {
	scan, err := SeaMonster.Scan(img)
	if err != nil {
		return nil, err
	}

	j.logger.Info().
		Int("rows", img.Rows()).
		Int("cols", img.Cols()).
		Stringer("orientation", scan.Orientation).
		Int("monsters", len(scan.Matches)).
		Msg("Found sea monsters")

	return scan, nil
}

// SolveCached returns the stored solution for tiles if there is one,
// otherwise it solves them and stores the tiles under name along with the
// result. Nothing is stored when solving fails. The boolean reports whether
// the result came from the database.
func (j *Jigsaw) SolveCached(ctx context.Context, name string, tiles []tile.Tile) (*Result, bool, error) {
	if j.db == nil {
		r, err := j.Solve(ctx, tiles)
		return r, false, err
	}

	crc, err := Checksum(tiles)
	if err != nil {
		return nil, false, err
	}

	solution, err := j.db.FindSolutionByCRC(crc)
	if err != nil {
		return nil, false, err
	}
	if solution != nil {
		l, err := LayoutFromMetadata(solution.Layout, tiles)
		if err != nil {
			return nil, false, err
		}
		j.logger.Debug().Str("crc", crc).Msg("Using stored solution")
		return &Result{
			CornerProduct: solution.CornerProduct,
			Monsters:      solution.Monsters,
			Roughness:     solution.Roughness,
			Layout:        l,
		}, true, nil
	}

	r, err := j.Solve(ctx, tiles)
	if err != nil {
		return nil, false, err
	}

	id, _, err := j.db.AddPuzzle(name, tiles)
	if err != nil {
		return nil, false, err
	}

	if err := j.db.SaveSolution(id, r); err != nil {
		return nil, false, err
	}
	j.logger.Debug().Str("crc", crc).Int64("puzzle", id).Msg("Stored solution")

	return r, false, nil
}
