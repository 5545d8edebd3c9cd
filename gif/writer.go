package gif

import (
	"bytes"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/bodgit/gifanim/lzw"
)

// FrameSource produces one frame's image descriptor and compressed
// payload, covering whatever changed since it last encoded.
type FrameSource interface {
	EncodeFrame(colormap map[uint8]uint8, minCodeSize uint8) []byte
}

// GraphicControl holds the animation parameters for a single frame.
type GraphicControl struct {
	// Delay before the next frame, in centiseconds.
	Delay uint16

	// TransparentIndex is the palette slot treated as transparent.
	// A negative value means the frame is fully opaque.
	TransparentIndex int
}

func (gc *GraphicControl) bytes() []byte {
	b := [8]byte{sExtension, eGraphicControl, gcBlockSize}
	if gc.TransparentIndex >= 0 {
		b[3] = 0x01
		b[6] = uint8(gc.TransparentIndex)
	}
	putUint16(b[4:6], gc.Delay)
	return b[:]
}

// Writer assembles an animated GIF89a byte stream. The zero value is
// not usable; call NewWriter.
//
// A Writer is built up in memory: set the palette once, append frames
// in playback order, then call WriteTo or Save exactly when the
// animation is complete.
type Writer struct {
	width, height int
	loopCount     uint16
	palette       [][3]uint8
	colorDepth    uint8
	init          bytes.Buffer
	frames        bytes.Buffer
}

// NewWriter returns a Writer for a logical screen of the given pixel
// dimensions. A loopCount of zero loops forever.
func NewWriter(width, height int, loopCount uint16) *Writer {
	return &Writer{
		width:     width,
		height:    height,
		loopCount: loopCount,
	}
}

// SetPalette installs the global color table. The palette is padded
// with black up to the next power of two; its padded size fixes the
// color depth used by every frame.
func (w *Writer) SetPalette(colors [][3]uint8) error {
	switch {
	case len(colors) == 0:
		return ErrEmptyPalette
	case len(colors) > maxColors:
		return ErrPaletteTooLarge
	}

	w.palette, w.colorDepth = padPalette(colors)

	return nil
}

// ColorDepth returns the bit depth of the padded palette, zero if no
// palette has been set.
func (w *Writer) ColorDepth() uint8 {
	return w.colorDepth
}

// MinCodeSize returns the LZW minimum code size frames for this Writer
// must be compressed with.
func (w *Writer) MinCodeSize() uint8 {
	return lzw.MinCodeSize(w.colorDepth)
}

// WriteFrame appends an already encoded frame, preceded by its graphics
// control block if gc is non-nil. Frame bytes are not validated against
// the palette; color index validity is the caller's responsibility.
func (w *Writer) WriteFrame(gc *GraphicControl, frame []byte) {
	if gc != nil {
		w.frames.Write(gc.bytes())
	}
	w.frames.Write(frame)
}

// EncodeFrame encodes the source's pending changes and appends them as
// one frame with the given delay and transparency. The encoded frame
// bytes are returned.
func (w *Writer) EncodeFrame(src FrameSource, colormap map[uint8]uint8, delay uint16, transparent int) []byte {
	frame := src.EncodeFrame(colormap, w.MinCodeSize())
	w.WriteFrame(&GraphicControl{Delay: delay, TransparentIndex: transparent}, frame)
	return frame
}

// InsertFrameAtStart appends a frame to the init buffer, which is
// written after the loop extension and before every frame appended with
// WriteFrame, regardless of call order. Init frames carry no graphics
// control block; they are meant for static backgrounds.
func (w *Writer) InsertFrameAtStart(frame []byte) {
	w.init.Write(frame)
}

// WriteBackground encodes the source's current state into the init
// buffer as a static background frame.
func (w *Writer) WriteBackground(src FrameSource, colormap map[uint8]uint8) {
	w.InsertFrameAtStart(src.EncodeFrame(colormap, w.MinCodeSize()))
}

// PadDelayFrame appends a one pixel frame whose only purpose is to hold
// the viewer on the current image for the given delay.
func (w *Writer) PadDelayFrame(delay uint16, transparent int) {
	pixel := uint8(0)
	if transparent >= 0 {
		pixel = uint8(transparent)
	}

	frame := ImageDescriptor(0, 0, 1, 1)
	frame = append(frame, lzw.Compress([]byte{pixel}, w.MinCodeSize())...)

	w.WriteFrame(&GraphicControl{Delay: delay, TransparentIndex: transparent}, frame)
}

// WriteTo writes the complete GIF89a stream: signature, logical screen
// descriptor, global color table, NETSCAPE2.0 loop extension, init
// buffer, frames and trailer. It fails with ErrNoPalette if SetPalette
// has not been called.
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	if w.palette == nil {
		return 0, ErrNoPalette
	}

	b := new(bytes.Buffer)

	b.WriteString("GIF89a")

	var screen [7]byte
	putUint16(screen[0:2], uint16(w.width))
	putUint16(screen[2:4], uint16(w.height))
	screen[4] = fColorTable | (w.colorDepth-1)<<4 | (w.colorDepth - 1)
	screen[5] = 0x00 // Background Color Index.
	screen[6] = 0x00 // Pixel Aspect Ratio.
	b.Write(screen[:])

	for _, c := range w.palette {
		b.Write(c[:])
	}

	b.Write([]byte{sExtension, eApplication, 0x0b})
	b.WriteString("NETSCAPE2.0")
	var loop [5]byte
	loop[0] = 0x03 // Block Size.
	loop[1] = 0x01 // Sub-block Index.
	putUint16(loop[2:4], w.loopCount)
	loop[4] = 0x00 // Block Terminator.
	b.Write(loop[:])

	b.Write(w.init.Bytes())
	b.Write(w.frames.Bytes())

	b.WriteByte(sTrailer)

	return b.WriteTo(dst)
}

// Save writes the stream to path. The file is written to a temporary
// name in the same directory first and renamed into place, so a failed
// write never leaves a truncated GIF behind.
func (w *Writer) Save(path string) error {
	if w.palette == nil {
		return ErrNoPalette
	}

	f, err := ioutil.TempFile(filepath.Dir(path), ".gifanim")
	if err != nil {
		return err
	}

	if _, err := w.WriteTo(f); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}

	return os.Rename(f.Name(), path)
}
