package tile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bodgit/jigsaw/grid"
)

var (
	// ErrBadHeader is returned when a block does not start with a valid
	// "Tile <id>:" line.
	ErrBadHeader = errors.New("tile: invalid header")
	// ErrNoGrid is returned when a header is not followed by any pixel
	// rows.
	ErrNoGrid = errors.New("tile: missing pixel rows")
	// ErrTooSmall is returned when tiles are too small to trim.
	ErrTooSmall = errors.New("tile: tile too small")
)

type decoder struct {
	s    *bufio.Scanner
	line int
	side int
}

func (d *decoder) next() (string, bool) {
	if !d.s.Scan() {
		return "", false
	}
	d.line++
	return strings.TrimSuffix(d.s.Text(), "\r"), true
}

func parseHeader(line string) (uint64, error) {
	if !strings.HasPrefix(line, headerPrefix) || !strings.HasSuffix(line, headerSuffix) {
		return 0, ErrBadHeader
	}
	id, err := strconv.ParseUint(strings.TrimSpace(line[len(headerPrefix):len(line)-len(headerSuffix)]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadHeader, err)
	}
	return id, nil
}

// readTile reads the pixel rows following a header up to the next blank
// line or the end of input.
func (d *decoder) readTile(id uint64) (Tile, error) {
	header := d.line

	var rows [][]bool
	for {
		line, ok := d.next()
		if !ok || strings.TrimSpace(line) == "" {
			break
		}

		row, err := grid.ParseRow(line)
		if err != nil {
			return Tile{}, fmt.Errorf("line %d: %w", d.line, err)
		}

		// The first row of the first tile fixes the side for the set
		if d.side == 0 {
			if len(row) < MinSide {
				return Tile{}, fmt.Errorf("line %d: %w: side %d", d.line, ErrTooSmall, len(row))
			}
			d.side = len(row)
		}

		if len(row) != d.side {
			return Tile{}, fmt.Errorf("line %d: %w: row has %d pixels, expected %d", d.line, grid.ErrDimensionMismatch, len(row), d.side)
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return Tile{}, fmt.Errorf("line %d: %w", header, ErrNoGrid)
	}
	if len(rows) != d.side {
		return Tile{}, fmt.Errorf("line %d: %w: tile %d has %d rows, expected %d", header, grid.ErrDimensionMismatch, id, len(rows), d.side)
	}

	g, err := grid.New(rows)
	if err != nil {
		return Tile{}, fmt.Errorf("line %d: %w", header, err)
	}

	return Tile{ID: id, Grid: g}, nil
}

func (d *decoder) decode(r io.Reader) ([]Tile, error) {
	d.s = bufio.NewScanner(r)

	var tiles []Tile
	for {
		line, ok := d.next()
		if !ok {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		id, err := parseHeader(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", d.line, err)
		}

		t, err := d.readTile(id)
		if err != nil {
			return nil, err
		}
		tiles = append(tiles, t)
	}

	if err := d.s.Err(); err != nil {
		return nil, err
	}

	return tiles, nil
}

// Decode reads a tile set from r.
func Decode(r io.Reader) ([]Tile, error) {
	var d decoder
	return d.decode(r)
}

// DecodeString reads a tile set from s.
func DecodeString(s string) ([]Tile, error) {
	return Decode(strings.NewReader(s))
}
