package jigsaw

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/jigsaw/grid"
	"github.com/bodgit/jigsaw/tile"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	exampleCornerProduct = 20899048083289
	exampleRoughness     = 273
)

func loadExample(t *testing.T) []tile.Tile {
	t.Helper()

	f, err := os.Open(filepath.Join("testdata", "example.txt"))
	require.NoError(t, err)
	defer f.Close()

	tiles, err := tile.Decode(f)
	require.NoError(t, err)
	require.Len(t, tiles, 9)

	return tiles
}

func TestSolveExample(t *testing.T) {
	j := New(nil, zerolog.Nop(), 1)

	r, err := j.Solve(context.Background(), loadExample(t))
	require.NoError(t, err)

	assert.Equal(t, uint64(exampleCornerProduct), r.CornerProduct)
	assert.Equal(t, exampleRoughness, r.Roughness)
	assert.Equal(t, 2, r.Monsters)
	assert.Equal(t, 24, r.Image.Rows())
	assert.Equal(t, 24, r.Image.Cols())
	assert.Equal(t, 3, r.Layout.Bounds().Rows())
	assert.Equal(t, 3, r.Layout.Bounds().Cols())
	require.NotNil(t, r.Scan)
	assert.True(t, grid.Orient(r.Image, r.Scan.Orientation).Equal(r.Scan.Image))
}

func TestSolveParallel(t *testing.T) {
	tiles := loadExample(t)

	sequential, err := New(nil, zerolog.Nop(), 1).Solve(context.Background(), tiles)
	require.NoError(t, err)

	for _, workers := range []int{2, 4, 16} {
		parallel, err := New(nil, zerolog.Nop(), workers).Solve(context.Background(), tiles)
		require.NoError(t, err, "%d workers", workers)

		assert.Equal(t, sequential.CornerProduct, parallel.CornerProduct)
		assert.Equal(t, sequential.Roughness, parallel.Roughness)
		assert.Equal(t, sequential.Layout.Placements(), parallel.Layout.Placements(), "%d workers", workers)
	}
}

func TestSolveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(nil, zerolog.Nop(), 4).Solve(ctx, loadExample(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSolveCachedWithoutDB(t *testing.T) {
	r, cached, err := New(nil, zerolog.Nop(), 1).SolveCached(context.Background(), "example", loadExample(t))
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Equal(t, uint64(exampleCornerProduct), r.CornerProduct)
}

func TestSolveErrors(t *testing.T) {
	j := New(nil, zerolog.Nop(), 1)

	_, err := j.Solve(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoTiles)

	// A lone tile assembles and stitches but has no sea monster in it
	tiles := loadExample(t)
	_, err = j.Solve(context.Background(), tiles[:1])
	assert.ErrorIs(t, err, ErrNoOrientationMatched)
}
