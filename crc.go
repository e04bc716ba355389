package jigsaw

import (
	"fmt"
	"hash/crc32"

	"github.com/bodgit/jigsaw/tile"
)

// Checksum returns the CRC-32 of the canonical text encoding of tiles as an
// upper-case hex string. Tile sets that differ only in whitespace share a
// checksum.
func Checksum(tiles []tile.Tile) (string, error) {
	h := crc32.NewIEEE()
	if err := tile.Encode(h, tiles); err != nil {
		return "", err
	}

	return fmt.Sprintf("%.*X", crc32.Size<<1, h.Sum(nil)), nil
}
