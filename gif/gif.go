/*
Package gif writes the GIF89a container: logical screen descriptor,
global color table, NETSCAPE2.0 looping extension, graphics control
blocks, image descriptors and the trailer.

Only the subset needed for palette-indexed animation is implemented.
There is no interlacing, no local color tables and no decoder; frames
are supplied already compressed by the lzw package.
*/
package gif

// Section indicators.
const (
	sExtension       = 0x21
	sImageDescriptor = 0x2C
	sTrailer         = 0x3B
)

// Extension labels and fields.
const (
	eGraphicControl = 0xF9
	eApplication    = 0xFF
	gcBlockSize     = 0x04
)

// Logical screen descriptor packed fields.
const fColorTable = 1 << 7

// Little-endian.
func putUint16(b []byte, u uint16) {
	b[0] = uint8(u)
	b[1] = uint8(u >> 8)
}

// ImageDescriptor returns the ten byte image descriptor for a frame
// placed at (left, top) covering width by height pixels, using the
// global color table.
func ImageDescriptor(left, top, width, height int) []byte {
	var b [10]byte
	b[0] = sImageDescriptor
	putUint16(b[1:3], uint16(left))
	putUint16(b[3:5], uint16(top))
	putUint16(b[5:7], uint16(width))
	putUint16(b[7:9], uint16(height))
	b[9] = 0x00
	return b[:]
}
