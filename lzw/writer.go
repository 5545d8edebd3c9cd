package lzw

const maxWidth = 12

// MinCodeSize returns the minimum LZW code size for a palette of the
// given color depth. The format does not allow a code size below 2, so
// 1-bit palettes are promoted.
func MinCodeSize(colorDepth uint8) uint8 {
	if colorDepth < 2 {
		return 2
	}
	return colorDepth
}

func newTable(minCodeSize uint8) map[string]uint32 {
	table := make(map[string]uint32, 1<<minCodeSize)
	for i := 0; i < 1<<minCodeSize; i++ {
		table[string([]byte{byte(i)})] = uint32(i)
	}
	return table
}

// Compress encodes a sequence of palette indices as a complete GIF
// image data section: the minimum code size byte, the compressed codes
// framed into sub-blocks, and the block terminator. Every index must be
// below 1<<minCodeSize and minCodeSize must be between 2 and 8.
//
// Each call owns its own code table and bit packer, so independent
// streams may be compressed concurrently.
func Compress(pixels []byte, minCodeSize uint8) []byte {
	var (
		clear = uint32(1) << minCodeSize
		end   = clear + 1

		table    = newTable(minCodeSize)
		width    = uint(minCodeSize) + 1
		nextCode = end + 1

		packer  BitPacker
		pattern []byte
	)

	packer.Put(clear, width)

	for _, pixel := range pixels {
		extended := append(pattern, pixel)
		if _, ok := table[string(extended)]; ok {
			pattern = extended
			continue
		}

		packer.Put(table[string(pattern)], width)

		if nextCode >= maxCodes {
			// Table full. Tell the decoder to start over.
			packer.Put(clear, width)
			table = newTable(minCodeSize)
			width = uint(minCodeSize) + 1
			nextCode = end + 1
		} else {
			table[string(extended)] = nextCode
			nextCode++
			// The decoder grows its width one code early, as soon
			// as code 1<<width exists, so the encoder must too.
			if nextCode == 1<<width+1 && width < maxWidth {
				width++
			}
		}

		pattern = []byte{pixel}
	}

	if len(pattern) > 0 {
		packer.Put(table[string(pattern)], width)
	}
	packer.Put(end, width)

	out := make([]byte, 1, packer.Len()+4)
	out[0] = minCodeSize
	out = append(out, packer.DumpBytes()...)
	out = append(out, 0x00)

	return out
}
