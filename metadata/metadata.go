/*
Package metadata implements the binary record of a solved tile layout that is
stored alongside each puzzle in the database.

The record is a little-endian 16-bit entry count followed by one 17 byte
entry per placed tile: row and column as signed 32-bit values, the tile id as
an unsigned 64-bit value and the orientation as a single byte. Entries are
written in row then column order.
*/
package metadata

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sort"
)

const maxEntries = 1<<16 - 1

var (
	errTruncated = errors.New("metadata: insufficient data")
	errTooMuch   = errors.New("metadata: too much data")
)

// Entry is a single placed tile.
type Entry struct {
	Row         int32
	Col         int32
	TileID      uint64
	Orientation uint8
}

// Layout is the stored form of a solved layout. It implements the
// encoding.BinaryMarshaler and encoding.BinaryUnmarshaler interfaces.
type Layout struct {
	entries map[uint64]Entry
}

// New returns an empty layout
func New() *Layout {
	return &Layout{
		entries: make(map[uint64]Entry),
	}
}

// Length returns the number of entries
func (l *Layout) Length() int {
	return len(l.entries)
}

// Set stores e, replacing any earlier entry for the same tile
func (l *Layout) Set(e Entry) {
	l.entries[e.TileID] = e
}

// Entries returns every entry in row then column order
func (l *Layout) Entries() []Entry {
	entries := make([]Entry, 0, len(l.entries))
	for _, e := range l.entries {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Row != entries[j].Row {
			return entries[i].Row < entries[j].Row
		}
		return entries[i].Col < entries[j].Col
	})
	return entries
}

// MarshalBinary encodes the layout into binary form and returns the result
func (l *Layout) MarshalBinary() ([]byte, error) {
	length := len(l.entries)

	if length > maxEntries {
		return nil, fmt.Errorf("metadata: more than %d entries", maxEntries)
	}

	b := new(bytes.Buffer)

	if err := binary.Write(b, binary.LittleEndian, uint16(length)); err != nil {
		return nil, err
	}

	entries := l.Entries()
	if err := binary.Write(b, binary.LittleEndian, &entries); err != nil {
		return nil, err
	}

	return b.Bytes(), nil
}

// UnmarshalBinary decodes the layout from binary form
func (l *Layout) UnmarshalBinary(b []byte) error {
	r := bytes.NewReader(b)

	l.entries = make(map[uint64]Entry)

	var length uint16
	if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
		return errTruncated
	}

	entries := make([]Entry, length)
	if err := binary.Read(r, binary.LittleEndian, &entries); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return errTruncated
		}
		return err
	}

	if r.Len() > 0 {
		return errTooMuch
	}

	for _, e := range entries {
		if _, ok := l.entries[e.TileID]; ok {
			return fmt.Errorf("metadata: duplicate tile %d", e.TileID)
		}
		l.entries[e.TileID] = e
	}

	return nil
}
