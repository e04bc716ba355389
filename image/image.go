/*
Package image converts between pixel grids and raster images.

Rendering maps off pixels to white, on pixels to black and, optionally, on
pixels belonging to a highlighted mask to sea green. Each grid pixel can be
scaled up to a square block of image pixels. Decoding reverses this for any
image the standard library can read: the image is reduced to two colours
and the darker one becomes on.
*/
package image

import "image/color"

const (
	offIndex = iota
	onIndex
	highlightIndex
)

var palette = color.Palette{
	offIndex:       color.RGBA{0xff, 0xff, 0xff, 0xff},
	onIndex:        color.RGBA{0x00, 0x00, 0x00, 0xff},
	highlightIndex: color.RGBA{0x2e, 0x8b, 0x57, 0xff},
}
