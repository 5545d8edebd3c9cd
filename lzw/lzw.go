/*
Package lzw implements the GIF flavor of Lempel-Ziv-Welch compression.

It differs from compress/lzw in that the caller controls the boundaries
the format cares about: the stream starts with a clear code, the code
width grows one code early so decoders can follow along, and the code
table is reset through another clear code before it would pass 4096
entries. The output is already framed into the length-prefixed sub-blocks
GIF image data uses.
*/
package lzw

const (
	// maxCodes is the 12-bit table ceiling fixed by the GIF specification.
	maxCodes = 4096

	// blockSize is the largest sub-block payload the container allows.
	blockSize = 255
)
