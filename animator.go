package gifanim

import (
	"log"

	"github.com/bodgit/gifanim/gif"
)

// Animator orchestrates a Canvas and a gif.Writer for the usual
// pattern: an algorithm mutates cells, and every Speed changes one
// frame is flushed.
type Animator struct {
	// Speed is the number of accumulated cell changes that triggers
	// RefreshFrame to flush a frame.
	Speed int

	// Delay applied to each flushed frame, in centiseconds.
	Delay uint16

	// Transparent is the transparent palette index applied to each
	// flushed frame, negative for opaque.
	Transparent int

	canvas   *Canvas
	writer   *gif.Writer
	colormap map[uint8]uint8
	logger   *log.Logger
	frames   int
}

// NewAnimator returns an Animator with the default speed and delay, an
// identity colormap and no transparency.
func NewAnimator(canvas *Canvas, writer *gif.Writer, logger *log.Logger) *Animator {
	return &Animator{
		Speed:       DefaultSpeed,
		Delay:       DefaultDelay,
		Transparent: -1,
		canvas:      canvas,
		writer:      writer,
		colormap:    make(map[uint8]uint8),
		logger:      logger,
	}
}

// Canvas returns the canvas being animated.
func (a *Animator) Canvas() *Canvas {
	return a.canvas
}

// Writer returns the container frames are flushed to.
func (a *Animator) Writer() *gif.Writer {
	return a.writer
}

// SetColors merges overrides into the active colormap used by
// subsequent flushes.
func (a *Animator) SetColors(colors map[uint8]uint8) {
	for value, index := range colors {
		a.colormap[value] = index
	}
}

// SetColor maps a named cell role to a palette index for subsequent
// flushes.
func (a *Animator) SetColor(role string, index uint8) error {
	value, err := Role(role)
	if err != nil {
		return err
	}
	a.colormap[value] = index
	return nil
}

// RefreshFrame flushes a frame once enough changes have accumulated.
func (a *Animator) RefreshFrame() {
	if a.canvas.Changes() >= a.Speed {
		a.flush()
	}
}

// FlushRemaining flushes a frame for any pending changes. Call it when
// the driving algorithm finishes so a partial batch is not lost. It
// never writes an empty frame.
func (a *Animator) FlushRemaining() {
	if a.canvas.Changes() > 0 {
		a.flush()
	}
}

func (a *Animator) flush() {
	frame := a.writer.EncodeFrame(a.canvas, a.colormap, a.Delay, a.Transparent)
	a.frames++
	a.logger.Printf("frame %d: %d bytes\n", a.frames, len(frame))
}

// PadDelay holds the viewer on the current image for the given delay
// without any visual change.
func (a *Animator) PadDelay(delay uint16) {
	a.writer.PadDelayFrame(delay, a.Transparent)
}

// PaintRectangle marks every cell in the inclusive rectangle spanned by
// the two corners.
func (a *Animator) PaintRectangle(x1, y1, x2, y2 int, value uint8) {
	if x2 < x1 {
		x1, x2 = x2, x1
	}
	if y2 < y1 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		for x := x1; x <= x2; x++ {
			a.canvas.MarkCell(x, y, value)
		}
	}
}

// PaintBackground fills the canvas and prepends it as a static
// background frame. Call it before any cells are marked; the background
// covers the full canvas only while no changes are pending.
func (a *Animator) PaintBackground(value uint8) {
	a.canvas.Fill(value)
	a.writer.WriteBackground(a.canvas, a.colormap)
}
