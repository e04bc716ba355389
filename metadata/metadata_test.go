package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayout(t *testing.T) {
	l := New()
	l.Set(Entry{Row: 1, Col: -1, TileID: 2729, Orientation: 6})
	l.Set(Entry{Row: 0, Col: 0, TileID: 1951, Orientation: 0})
	l.Set(Entry{Row: 0, Col: -1, TileID: 2311, Orientation: 3})
	l.Set(Entry{Row: 0, Col: 0, TileID: 1951, Orientation: 5})
	require.Equal(t, 3, l.Length())

	entries := l.Entries()
	assert.Equal(t, uint64(2311), entries[0].TileID)
	assert.Equal(t, uint64(1951), entries[1].TileID)
	assert.Equal(t, uint8(5), entries[1].Orientation, "later Set replaces the entry")
	assert.Equal(t, uint64(2729), entries[2].TileID)

	b, err := l.MarshalBinary()
	require.NoError(t, err)
	assert.Len(t, b, 2+3*17)

	decoded := New()
	require.NoError(t, decoded.UnmarshalBinary(b))
	assert.Equal(t, entries, decoded.Entries())
}

func TestUnmarshalErrors(t *testing.T) {
	l := New()
	l.Set(Entry{Row: 3, Col: 4, TileID: 99, Orientation: 1})
	b, err := l.MarshalBinary()
	require.NoError(t, err)

	assert.Error(t, New().UnmarshalBinary(nil))
	assert.Error(t, New().UnmarshalBinary(b[:len(b)-1]))
	assert.Error(t, New().UnmarshalBinary(append(b, 0)))

	empty, err := New().MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0}, empty)
	assert.NoError(t, New().UnmarshalBinary(empty))
}
