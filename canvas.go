package gifanim

import (
	"image"

	"github.com/bodgit/gifanim/gif"
	"github.com/bodgit/gifanim/lzw"
)

// Grid is the cell-marking surface handed to the algorithms that drive
// an animation. Algorithms only ever see cell reads and writes; how the
// cells become frames is the Canvas's business.
type Grid interface {
	Width() int
	Height() int
	CellAt(x, y int) uint8
	MarkCell(x, y int, value uint8)
	MarkRegion(cells []image.Point, value uint8)
}

// Canvas is a fixed-size grid of color indices that tracks the bounding
// box of every cell changed since the last encoded frame, so each frame
// covers only what moved.
type Canvas struct {
	// Scale maps one logical cell onto a Scale by Scale pixel block.
	Scale int

	// Border is a fixed pixel margin added on all four sides when
	// placing frames on the logical screen.
	Border int

	width, height int
	cells         [][]uint8
	dirty         image.Rectangle
	changes       int
}

var _ Grid = (*Canvas)(nil)

// NewCanvas returns a width by height Canvas with every cell set to the
// default value and no changes recorded.
func NewCanvas(width, height int, value uint8) *Canvas {
	c := &Canvas{
		Scale:  1,
		width:  width,
		height: height,
		cells:  make([][]uint8, height),
	}
	for y := range c.cells {
		c.cells[y] = make([]uint8, width)
	}
	c.Fill(value)
	return c
}

// Width returns the grid width in cells.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the grid height in cells.
func (c *Canvas) Height() int {
	return c.height
}

// PixelWidth returns the logical screen width needed to hold the grid
// at its scale and border.
func (c *Canvas) PixelWidth() int {
	return c.width*c.scale() + 2*c.Border
}

// PixelHeight returns the logical screen height needed to hold the grid
// at its scale and border.
func (c *Canvas) PixelHeight() int {
	return c.height*c.scale() + 2*c.Border
}

// CellAt returns the value of cell (x, y). Out of range coordinates
// panic.
func (c *Canvas) CellAt(x, y int) uint8 {
	return c.cells[y][x]
}

// MarkCell sets cell (x, y) and grows the dirty region to cover it.
// Out of range coordinates panic; silently dropping a write would hide
// a bug in the calling algorithm.
func (c *Canvas) MarkCell(x, y int, value uint8) {
	c.cells[y][x] = value

	cell := image.Rect(x, y, x+1, y+1)
	if c.changes == 0 {
		c.dirty = cell
	} else {
		c.dirty = c.dirty.Union(cell)
	}
	c.changes++
}

// MarkRegion sets every listed cell to the same value.
func (c *Canvas) MarkRegion(cells []image.Point, value uint8) {
	for _, p := range cells {
		c.MarkCell(p.X, p.Y, value)
	}
}

// Fill sets every cell without recording a change, leaving the dirty
// region untouched. It prepares the initial background state.
func (c *Canvas) Fill(value uint8) {
	for y := range c.cells {
		for x := range c.cells[y] {
			c.cells[y][x] = value
		}
	}
}

// Changes returns the number of cell writes since the last encoded
// frame.
func (c *Canvas) Changes() int {
	return c.changes
}

// Dirty returns the region covering all changes since the last encoded
// frame, and whether there is one.
func (c *Canvas) Dirty() (image.Rectangle, bool) {
	return c.dirty, c.changes > 0
}

func (c *Canvas) scale() int {
	if c.Scale < 1 {
		return 1
	}
	return c.Scale
}

// EncodeFrame serializes the dirty region as an image descriptor plus
// LZW-compressed pixel data and resets the change tracking. When no
// cell has been marked the whole canvas is encoded, which is what the
// initial background frame wants. Cell values pass through colormap on
// the way out; values absent from the map are used as-is.
func (c *Canvas) EncodeFrame(colormap map[uint8]uint8, minCodeSize uint8) []byte {
	region := image.Rect(0, 0, c.width, c.height)
	if c.changes > 0 {
		region = c.dirty
	}
	scale := c.scale()

	pixels := make([]byte, 0, region.Dx()*region.Dy()*scale*scale)
	row := make([]byte, 0, region.Dx()*scale)
	for y := region.Min.Y; y < region.Max.Y; y++ {
		row = row[:0]
		for x := region.Min.X; x < region.Max.X; x++ {
			value := c.cells[y][x]
			if mapped, ok := colormap[value]; ok {
				value = mapped
			}
			for i := 0; i < scale; i++ {
				row = append(row, value)
			}
		}
		for i := 0; i < scale; i++ {
			pixels = append(pixels, row...)
		}
	}

	frame := gif.ImageDescriptor(
		c.Border+region.Min.X*scale,
		c.Border+region.Min.Y*scale,
		region.Dx()*scale,
		region.Dy()*scale,
	)
	frame = append(frame, lzw.Compress(pixels, minCodeSize)...)

	c.dirty = image.Rectangle{}
	c.changes = 0

	return frame
}
