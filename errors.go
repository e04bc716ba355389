package jigsaw

import "errors"

var (
	// ErrNoTiles is returned when there is nothing to assemble.
	ErrNoTiles = errors.New("jigsaw: no tiles")
	// ErrDuplicateTile is returned when two tiles share an id.
	ErrDuplicateTile = errors.New("jigsaw: duplicate tile id")
	// ErrNoValidArrangement is returned when tiles are left over with
	// nowhere to fit, or a stored layout no longer fits its tiles.
	ErrNoValidArrangement = errors.New("jigsaw: no valid arrangement")
	// ErrMissingTile is returned when a position that must hold a tile is
	// empty.
	ErrMissingTile = errors.New("jigsaw: missing tile")
	// ErrInvalidPattern is returned when a pattern template cannot be
	// parsed.
	ErrInvalidPattern = errors.New("jigsaw: invalid pattern")
	// ErrNoOrientationMatched is returned when no orientation of an image
	// contains the pattern.
	ErrNoOrientationMatched = errors.New("jigsaw: no orientation matched")
	// ErrOverflow is returned when the corner product does not fit in a
	// uint64.
	ErrOverflow = errors.New("jigsaw: corner product overflows")
)
