/*
Package gifanim is an animated GIF encoder driven by cell updates on a
logical grid. An algorithm marks cells on a Canvas, the Canvas tracks
the bounding box of everything that changed, and each flushed frame
covers only that rectangle, so output size follows change rather than
canvas size.

The gif subpackage assembles the GIF89a container and the lzw
subpackage implements the variable code length compression the format
requires.
*/
package gifanim

const (
	// DefaultSpeed is the number of cell changes per frame an
	// Animator flushes at.
	DefaultSpeed = 10

	// DefaultDelay is the per-frame delay in centiseconds.
	DefaultDelay = 5

	// ScriptExt is the filename extension batch encoding looks for.
	ScriptExt = ".anim"
)
