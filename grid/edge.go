package grid

// Side names one border of a grid.
type Side uint8

// Sides in clockwise order starting at the top.
const (
	Top Side = iota
	Right
	Bottom
	Left
)

// Sides lists every Side in clockwise order.
var Sides = [...]Side{Top, Right, Bottom, Left}

// Opposite returns the side facing s across a shared boundary.
func (s Side) Opposite() Side {
	return (s + 2) & 3
}

func (s Side) String() string {
	switch s {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	}
	return "unknown"
}

// Edge returns the border pixels on side s. Top and Bottom run left to
// right, Left and Right run top to bottom.
func (g Grid) Edge(s Side) []bool {
	if g.rows == 0 || g.cols == 0 {
		return nil
	}

	switch s {
	case Top:
		return append([]bool(nil), g.pix[:g.cols]...)
	case Bottom:
		return append([]bool(nil), g.pix[(g.rows-1)*g.cols:]...)
	case Left, Right:
		col := 0
		if s == Right {
			col = g.cols - 1
		}
		e := make([]bool, g.rows)
		for r := range e {
			e[r] = g.at(r, col)
		}
		return e
	}
	return nil
}

// EdgesEqual compares two edges pixel by pixel in order. No reversal is
// attempted.
func EdgesEqual(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
