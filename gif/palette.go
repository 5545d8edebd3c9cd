package gif

import "errors"

var (
	// ErrNoPalette is returned when writing out a file before
	// SetPalette has been called.
	ErrNoPalette = errors.New("gif: no palette set")

	// ErrEmptyPalette is returned by SetPalette for zero colors.
	ErrEmptyPalette = errors.New("gif: palette must contain at least one color")

	// ErrPaletteTooLarge is returned by SetPalette for more than 256
	// colors.
	ErrPaletteTooLarge = errors.New("gif: palette cannot exceed 256 colors")
)

const maxColors = 256

// padPalette copies the palette, padded with black to the next power of
// two, and returns it along with the color depth of the padded size.
// The smallest table the format can express holds two colors.
func padPalette(colors [][3]uint8) ([][3]uint8, uint8) {
	depth := uint8(1)
	for 1<<depth < len(colors) {
		depth++
	}

	padded := make([][3]uint8, 1<<depth)
	copy(padded, colors)

	return padded, depth
}
