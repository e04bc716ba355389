package jigsaw

import (
	"context"
	"math/rand"
	"testing"

	"github.com/bodgit/jigsaw/grid"
	"github.com/bodgit/jigsaw/tile"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// idMatrix returns the tile ids of a complete layout as rows of columns.
func idMatrix(t *testing.T, l *Layout) [][]uint64 {
	t.Helper()

	b := l.Bounds()
	m := make([][]uint64, b.Rows())
	for r := range m {
		m[r] = make([]uint64, b.Cols())
		for c := range m[r] {
			pl, ok := l.At(Position{b.MinRow + r, b.MinCol + c})
			require.True(t, ok)
			m[r][c] = pl.TileID
		}
	}
	return m
}

func rotateMatrix(m [][]uint64) [][]uint64 {
	out := make([][]uint64, len(m[0]))
	for c := range out {
		out[c] = make([]uint64, len(m))
		for r := range m {
			out[c][len(m)-1-r] = m[r][c]
		}
	}
	return out
}

func flipMatrix(m [][]uint64) [][]uint64 {
	out := make([][]uint64, len(m))
	for r := range m {
		out[r] = make([]uint64, len(m[r]))
		for c := range m[r] {
			out[r][len(m[r])-1-c] = m[r][c]
		}
	}
	return out
}

// symmetries returns the eight rigid transforms of m.
func symmetries(m [][]uint64) [][][]uint64 {
	out := [][][]uint64{m, flipMatrix(m)}
	for i := 0; i < 3; i++ {
		out = append(out, rotateMatrix(out[len(out)-2]), rotateMatrix(out[len(out)-1]))
	}
	return out
}

// checkEdges asserts that every pair of neighbouring placements shares an
// identical edge.
func checkEdges(t *testing.T, l *Layout) {
	t.Helper()

	for _, pl := range l.Placements() {
		for _, s := range []grid.Side{grid.Right, grid.Bottom} {
			n, ok := l.At(pl.Step(s))
			if !ok {
				continue
			}
			assert.Equal(t, pl.Grid.Edge(s), n.Grid.Edge(s.Opposite()), "tile %d %s of tile %d", n.TileID, s, pl.TileID)
		}
	}
}

func TestAssembleExample(t *testing.T) {
	tiles := loadExample(t)

	l, err := NewAssembler(zerolog.Nop(), 1).Assemble(context.Background(), tiles)
	require.NoError(t, err)

	assert.Equal(t, 9, l.Len())
	assert.Equal(t, 10, l.TileSide())
	assert.Equal(t, 3, l.Bounds().Rows())
	assert.Equal(t, 3, l.Bounds().Cols())
	checkEdges(t, l)

	seed, ok := l.At(Position{})
	require.True(t, ok)
	assert.Equal(t, tiles[0].ID, seed.TileID)
	assert.Equal(t, grid.Identity, seed.Orientation)
	assert.True(t, tiles[0].Grid.Equal(seed.Grid))

	for _, tl := range tiles {
		pl, ok := l.Find(tl.ID)
		require.True(t, ok, "tile %d", tl.ID)
		assert.True(t, grid.Orient(tl.Grid, pl.Orientation).Equal(pl.Grid))
	}

	corners, err := l.Corners()
	require.NoError(t, err)
	ids := make([]uint64, 0, 4)
	for _, c := range corners {
		ids = append(ids, c.TileID)
	}
	assert.ElementsMatch(t, []uint64{1951, 3079, 2971, 1171}, ids)

	product, err := l.CornerProduct()
	require.NoError(t, err)
	assert.Equal(t, uint64(exampleCornerProduct), product)
}

func TestAssembleDeterminism(t *testing.T) {
	tiles := loadExample(t)

	base, err := NewAssembler(zerolog.Nop(), 1).Assemble(context.Background(), tiles)
	require.NoError(t, err)
	want := symmetries(idMatrix(t, base))

	for seed := int64(1); seed <= 8; seed++ {
		rnd := rand.New(rand.NewSource(seed))

		// Shuffle and re-orient every tile
		shuffled := make([]tile.Tile, len(tiles))
		for i, j := range rnd.Perm(len(tiles)) {
			shuffled[i] = tile.Tile{
				ID:   tiles[j].ID,
				Grid: grid.Orient(tiles[j].Grid, grid.Orientation(rnd.Intn(grid.NumOrientations))),
			}
		}

		l, err := NewAssembler(zerolog.Nop(), 1+int(seed%3)).Assemble(context.Background(), shuffled)
		require.NoError(t, err, "seed %d", seed)
		checkEdges(t, l)

		assert.Contains(t, want, idMatrix(t, l), "seed %d", seed)

		product, err := l.CornerProduct()
		require.NoError(t, err)
		assert.Equal(t, uint64(exampleCornerProduct), product, "seed %d", seed)
	}
}

func TestAssembleSingleTile(t *testing.T) {
	tiles := loadExample(t)[4:5]

	l, err := NewAssembler(zerolog.Nop(), 1).Assemble(context.Background(), tiles)
	require.NoError(t, err)

	assert.Equal(t, 1, l.Len())
	assert.Equal(t, Bounds{}, l.Bounds())

	product, err := l.CornerProduct()
	require.NoError(t, err)
	id := tiles[0].ID
	assert.Equal(t, id*id*id*id, product)
}

func TestAssembleNoValidArrangement(t *testing.T) {
	tiles := loadExample(t)

	full := make([]bool, 100)
	for i := range full {
		full[i] = true
	}
	g, err := grid.FromPixels(10, 10, full)
	require.NoError(t, err)
	tiles = append(tiles, tile.Tile{ID: 9999, Grid: g})

	for _, workers := range []int{1, 3} {
		_, err = NewAssembler(zerolog.Nop(), workers).Assemble(context.Background(), tiles)
		assert.ErrorIs(t, err, ErrNoValidArrangement, "%d workers", workers)
	}
}

func TestAssembleInvalidTiles(t *testing.T) {
	tiles := loadExample(t)
	a := NewAssembler(zerolog.Nop(), 1)

	_, err := a.Assemble(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoTiles)

	_, err = a.Assemble(context.Background(), append(tiles[:2:2], tiles[0]))
	assert.ErrorIs(t, err, ErrDuplicateTile)

	small, err := grid.Parse("###\n...\n#.#")
	require.NoError(t, err)
	_, err = a.Assemble(context.Background(), append(tiles[:2:2], tile.Tile{ID: 1, Grid: small}))
	assert.ErrorIs(t, err, grid.ErrDimensionMismatch)
}

func TestFrontier(t *testing.T) {
	tiles := loadExample(t)
	l := newLayout(10)
	l.place(newCandidate(tiles[0]).placement(Position{}, grid.Identity))

	assert.Equal(t, []Position{{-1, 0}, {0, -1}, {0, 1}, {1, 0}}, l.frontier())

	l.place(newCandidate(tiles[1]).placement(Position{0, 1}, grid.Identity))
	assert.Equal(t, []Position{{-1, 0}, {-1, 1}, {0, -1}, {0, 2}, {1, 0}, {1, 1}}, l.frontier())
	assert.Equal(t, Bounds{MinRow: 0, MaxRow: 0, MinCol: 0, MaxCol: 1}, l.Bounds())
}
