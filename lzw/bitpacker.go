package lzw

// BitPacker accumulates variable-width codes into a byte stream, least
// significant bit first, which is the bit order GIF uses. DumpBytes
// frames the accumulated stream into length-prefixed sub-blocks and
// resets the packer so it can be reused for the next stream.
type BitPacker struct {
	bytes []byte
	// bits is the number of bits already used in the last byte, 0-7.
	bits uint
}

// Put appends the low width bits of value to the stream. Values wider
// than width bleed into neighboring codes; callers are expected to mask
// first.
func (p *BitPacker) Put(value uint32, width uint) {
	for i := uint(0); i < width; i++ {
		if p.bits == 0 {
			p.bytes = append(p.bytes, 0)
		}
		bit := uint8(value>>i) & 0x01
		p.bytes[len(p.bytes)-1] |= bit << p.bits
		p.bits = (p.bits + 1) & 0x07
	}
}

// Len returns the number of whole or partial bytes accumulated so far.
func (p *BitPacker) Len() int {
	return len(p.bytes)
}

// DumpBytes returns the accumulated stream framed into sub-blocks of at
// most 255 bytes, each preceded by its length byte. The block terminator
// is not appended; the container writes it. The packer is reset.
func (p *BitPacker) DumpBytes() []byte {
	out := make([]byte, 0, len(p.bytes)+len(p.bytes)/blockSize+1)
	for off := 0; off < len(p.bytes); off += blockSize {
		end := off + blockSize
		if end > len(p.bytes) {
			end = len(p.bytes)
		}
		out = append(out, byte(end-off))
		out = append(out, p.bytes[off:end]...)
	}

	p.bytes = nil
	p.bits = 0

	return out
}
