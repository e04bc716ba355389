package tile

import (
	"bufio"
	"fmt"
	"io"
)

type encoder struct {
	w *bufio.Writer
}

func (e *encoder) encode(tiles []Tile) error {
	for i, t := range tiles {
		if i > 0 {
			if err := e.w.WriteByte('\n'); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(e.w, "%s%d%s\n%s\n", headerPrefix, t.ID, headerSuffix, t.Grid); err != nil {
			return err
		}
	}

	return e.w.Flush()
}

// Encode writes tiles to w in the same text format read by Decode.
func Encode(w io.Writer, tiles []Tile) error {
	e := encoder{w: bufio.NewWriter(w)}

	return e.encode(tiles)
}
