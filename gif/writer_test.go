package gif

import (
	"bytes"
	stdgif "image/gif"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/gifanim/lzw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPalette(n int) [][3]uint8 {
	p := make([][3]uint8, n)
	for i := range p {
		p[i] = [3]uint8{uint8(i), uint8(i * 2), uint8(i * 3)}
	}
	return p
}

func testFrame(left, top, width, height int, value uint8, minCodeSize uint8) []byte {
	frame := ImageDescriptor(left, top, width, height)
	return append(frame, lzw.Compress(bytes.Repeat([]byte{value}, width*height), minCodeSize)...)
}

func TestPadPalette(t *testing.T) {
	tests := []struct {
		colors int
		padded int
		depth  uint8
	}{
		{1, 2, 1},
		{2, 2, 1},
		{3, 4, 2},
		{4, 4, 2},
		{5, 8, 3},
		{9, 16, 4},
		{256, 256, 8},
	}

	for _, tt := range tests {
		padded, depth := padPalette(testPalette(tt.colors))

		assert.Len(t, padded, tt.padded)
		assert.Equal(t, tt.depth, depth)

		// Padding entries are black, originals untouched.
		for i, c := range padded {
			if i < tt.colors {
				assert.Equal(t, testPalette(tt.colors)[i], c)
			} else {
				assert.Equal(t, [3]uint8{0, 0, 0}, c)
			}
		}
	}
}

func TestSetPaletteErrors(t *testing.T) {
	w := NewWriter(4, 4, 0)

	assert.Equal(t, ErrEmptyPalette, w.SetPalette(nil))
	assert.Equal(t, ErrPaletteTooLarge, w.SetPalette(testPalette(257)))

	require.NoError(t, w.SetPalette(testPalette(4)))
	assert.Equal(t, uint8(2), w.ColorDepth())
	assert.Equal(t, uint8(2), w.MinCodeSize())
}

func TestWriteBeforePalette(t *testing.T) {
	w := NewWriter(4, 4, 0)

	_, err := w.WriteTo(ioutil.Discard)
	assert.Equal(t, ErrNoPalette, err)
	assert.Equal(t, ErrNoPalette, w.Save(filepath.Join(os.TempDir(), "never-written.gif")))
}

func TestHeaderLayout(t *testing.T) {
	w := NewWriter(4, 4, 3)
	require.NoError(t, w.SetPalette(testPalette(4)))

	b := new(bytes.Buffer)
	n, err := w.WriteTo(b)
	require.NoError(t, err)
	require.Equal(t, int64(b.Len()), n)

	out := b.Bytes()

	// Signature and logical screen descriptor.
	assert.Equal(t, []byte("GIF89a"), out[:6])
	assert.Equal(t, []byte{0x04, 0x00, 0x04, 0x00}, out[6:10])
	assert.Equal(t, byte(0x91), out[10]) // GCT present, depth 2.
	assert.Equal(t, []byte{0x00, 0x00}, out[11:13])

	// Global color table, 4 colors.
	assert.Equal(t, []byte{0, 0, 0, 1, 2, 3, 2, 4, 6, 3, 6, 9}, out[13:25])

	// NETSCAPE2.0 loop extension with loop count 3.
	loop := append([]byte{0x21, 0xFF, 0x0B}, "NETSCAPE2.0"...)
	loop = append(loop, 0x03, 0x01, 0x03, 0x00, 0x00)
	assert.Equal(t, loop, out[25:44])

	// No frames, straight to the trailer.
	assert.Equal(t, []byte{0x3B}, out[44:])
}

func TestFrameOrdering(t *testing.T) {
	w := NewWriter(2, 2, 0)
	require.NoError(t, w.SetPalette(testPalette(4)))

	for _, delay := range []uint16{10, 20, 30} {
		w.WriteFrame(&GraphicControl{Delay: delay, TransparentIndex: -1}, testFrame(0, 0, 2, 2, 1, w.MinCodeSize()))
	}

	b := new(bytes.Buffer)
	_, err := w.WriteTo(b)
	require.NoError(t, err)

	// Scan for graphics control blocks and recover the delays.
	var delays []uint16
	out := b.Bytes()
	for i := 0; i+7 < len(out); i++ {
		if out[i] == 0x21 && out[i+1] == 0xF9 && out[i+2] == 0x04 {
			delays = append(delays, uint16(out[i+4])|uint16(out[i+5])<<8)
			i += 7
		}
	}
	assert.Equal(t, []uint16{10, 20, 30}, delays)

	// The reference decoder must agree.
	g, err := stdgif.DecodeAll(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20, 30}, g.Delay)
	require.Len(t, g.Image, 3)
	for _, m := range g.Image {
		assert.Equal(t, uint8(1), m.ColorIndexAt(0, 0))
	}
}

func TestInsertFrameAtStart(t *testing.T) {
	w := NewWriter(2, 2, 0)
	require.NoError(t, w.SetPalette(testPalette(4)))

	// Append a normal frame first, then the background; the
	// background must still come out ahead of it.
	w.WriteFrame(&GraphicControl{Delay: 10, TransparentIndex: -1}, testFrame(0, 0, 1, 1, 2, w.MinCodeSize()))
	w.InsertFrameAtStart(testFrame(0, 0, 2, 2, 1, w.MinCodeSize()))

	b := new(bytes.Buffer)
	_, err := w.WriteTo(b)
	require.NoError(t, err)

	g, err := stdgif.DecodeAll(bytes.NewReader(b.Bytes()))
	require.NoError(t, err)
	require.Len(t, g.Image, 2)

	assert.Equal(t, 2, g.Image[0].Bounds().Dx())
	assert.Equal(t, uint8(1), g.Image[0].ColorIndexAt(1, 1))
	assert.Equal(t, 1, g.Image[1].Bounds().Dx())
	assert.Equal(t, uint8(2), g.Image[1].ColorIndexAt(0, 0))
	assert.Equal(t, []int{0, 10}, g.Delay)
}

func TestPadDelayFrame(t *testing.T) {
	w := NewWriter(2, 2, 0)
	require.NoError(t, w.SetPalette(testPalette(4)))

	w.WriteFrame(&GraphicControl{Delay: 10, TransparentIndex: -1}, testFrame(0, 0, 2, 2, 1, w.MinCodeSize()))
	w.PadDelayFrame(50, -1)

	b := new(bytes.Buffer)
	_, err := w.WriteTo(b)
	require.NoError(t, err)

	g, err := stdgif.DecodeAll(bytes.NewReader(b.Bytes()))
	require.NoError(t, err)
	require.Len(t, g.Image, 2)

	assert.Equal(t, []int{10, 50}, g.Delay)
	assert.Equal(t, 1, g.Image[1].Bounds().Dx())
	assert.Equal(t, 1, g.Image[1].Bounds().Dy())
}

func TestGraphicControlTransparency(t *testing.T) {
	gc := &GraphicControl{Delay: 0x1234, TransparentIndex: 3}
	assert.Equal(t, []byte{0x21, 0xF9, 0x04, 0x01, 0x34, 0x12, 0x03, 0x00}, gc.bytes())

	opaque := &GraphicControl{Delay: 5, TransparentIndex: -1}
	assert.Equal(t, []byte{0x21, 0xF9, 0x04, 0x00, 0x05, 0x00, 0x00, 0x00}, opaque.bytes())
}

func TestSave(t *testing.T) {
	dir, err := ioutil.TempDir("", "gifanim")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	w := NewWriter(2, 2, 0)
	require.NoError(t, w.SetPalette(testPalette(4)))
	w.WriteFrame(&GraphicControl{Delay: 10, TransparentIndex: -1}, testFrame(0, 0, 2, 2, 1, w.MinCodeSize()))

	path := filepath.Join(dir, "out.gif")
	require.NoError(t, w.Save(path))

	out, err := ioutil.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, []byte("GIF89a"), out[:6])
	assert.Equal(t, byte(0x3B), out[len(out)-1])

	// No temporary files left behind.
	files, err := ioutil.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, files, 1)
}
