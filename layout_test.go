package jigsaw

import (
	"context"
	"testing"

	"github.com/bodgit/jigsaw/grid"
	"github.com/bodgit/jigsaw/metadata"
	"github.com/bodgit/jigsaw/tile"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionStep(t *testing.T) {
	p := Position{2, 5}
	assert.Equal(t, Position{1, 5}, p.Step(grid.Top))
	assert.Equal(t, Position{2, 6}, p.Step(grid.Right))
	assert.Equal(t, Position{3, 5}, p.Step(grid.Bottom))
	assert.Equal(t, Position{2, 4}, p.Step(grid.Left))
	assert.Equal(t, "(2, 5)", p.String())
}

func TestLayoutMetadata(t *testing.T) {
	tiles := loadExample(t)

	l, err := NewAssembler(zerolog.Nop(), 1).Assemble(context.Background(), tiles)
	require.NoError(t, err)

	m := l.Metadata()
	assert.Equal(t, 9, m.Length())

	b, err := m.MarshalBinary()
	require.NoError(t, err)

	stored := metadata.New()
	require.NoError(t, stored.UnmarshalBinary(b))

	restored, err := LayoutFromMetadata(stored, tiles)
	require.NoError(t, err)
	assert.Equal(t, l.Placements(), restored.Placements())
	assert.Equal(t, l.Bounds(), restored.Bounds())

	product, err := restored.CornerProduct()
	require.NoError(t, err)
	assert.Equal(t, uint64(exampleCornerProduct), product)
}

func TestLayoutFromMetadataErrors(t *testing.T) {
	tiles := loadExample(t)

	l, err := NewAssembler(zerolog.Nop(), 1).Assemble(context.Background(), tiles)
	require.NoError(t, err)

	entries := l.Metadata().Entries()

	tables := []struct {
		name   string
		modify func([]metadata.Entry) []metadata.Entry
		err    error
	}{
		{
			name:   "short",
			modify: func(e []metadata.Entry) []metadata.Entry { return e[1:] },
			err:    ErrNoValidArrangement,
		},
		{
			name: "unknown tile",
			modify: func(e []metadata.Entry) []metadata.Entry {
				e[0].TileID = 1
				return e
			},
			err: ErrMissingTile,
		},
		{
			name: "bad orientation",
			modify: func(e []metadata.Entry) []metadata.Entry {
				e[0].Orientation = grid.NumOrientations
				return e
			},
			err: ErrNoValidArrangement,
		},
		{
			name: "disconnected",
			modify: func(e []metadata.Entry) []metadata.Entry {
				for i := range e {
					e[i].Row, e[i].Col = int32(i*5), 0
				}
				return e
			},
			err: ErrMissingTile,
		},
		{
			name: "swapped",
			modify: func(e []metadata.Entry) []metadata.Entry {
				e[0].TileID, e[1].TileID = e[1].TileID, e[0].TileID
				return e
			},
			err: ErrNoValidArrangement,
		},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			m := metadata.New()
			for _, e := range table.modify(append([]metadata.Entry(nil), entries...)) {
				m.Set(e)
			}
			_, err := LayoutFromMetadata(m, tiles)
			assert.ErrorIs(t, err, table.err)
		})
	}
}

func TestCornerProductOverflow(t *testing.T) {
	g, err := grid.Parse("#..\n.#.\n..#")
	require.NoError(t, err)

	l, err := NewAssembler(zerolog.Nop(), 1).Assemble(context.Background(), []tile.Tile{{ID: 1 << 20, Grid: g}})
	require.NoError(t, err)

	_, err = l.CornerProduct()
	assert.ErrorIs(t, err, ErrOverflow)

	// 2^64 is one past the largest product
	l, err = NewAssembler(zerolog.Nop(), 1).Assemble(context.Background(), []tile.Tile{{ID: 1 << 16, Grid: g}})
	require.NoError(t, err)

	_, err = l.CornerProduct()
	assert.ErrorIs(t, err, ErrOverflow)

	l, err = NewAssembler(zerolog.Nop(), 1).Assemble(context.Background(), []tile.Tile{{ID: 1<<16 - 1, Grid: g}})
	require.NoError(t, err)

	product, err := l.CornerProduct()
	require.NoError(t, err)
	id := uint64(1<<16 - 1)
	assert.Equal(t, id*id*id*id, product)
}
