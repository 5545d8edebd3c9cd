package gifanim

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Script is a parsed animation script: a sequence of cell writes and
// frame boundaries replayed against an Animator.
//
// The format is line based, one instruction per line, with # starting a
// comment:
//
//	fill V                 paint V as the static background frame
//	cell X Y V             mark one cell
//	rect X1 Y1 X2 Y2 V     mark an inclusive rectangle
//	frame [DELAY]          flush pending changes, optionally overriding
//	                       the delay for this frame only
//	pad DELAY              emit a delay-only frame
//	color ROLE INDEX       map a role (or numeric value) to a palette slot
//	speed N                changes per automatic frame
//	delay N                per-frame delay in centiseconds
//	transparent N          transparent palette index, -1 for opaque
//
// V may be a role name (wall, tree, path, fill) or a number.
type Script []instruction

type instruction struct {
	line  int
	apply func(a *Animator) error
}

func cellValue(s string) (uint8, error) {
	if value, err := Role(s); err == nil {
		return value, nil
	}
	n, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, fmt.Errorf("bad cell value %q", s)
	}
	return uint8(n), nil
}

func atoi(fields []string) ([]int, error) {
	out := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", f)
		}
		out[i] = n
	}
	return out, nil
}

func checkCell(a *Animator, x, y int) error {
	if x < 0 || x >= a.canvas.Width() || y < 0 || y >= a.canvas.Height() {
		return fmt.Errorf("cell (%d, %d) outside %dx%d grid", x, y, a.canvas.Width(), a.canvas.Height())
	}
	return nil
}

func parseInstruction(fields []string) (func(a *Animator) error, error) {
	argc := len(fields) - 1

	switch fields[0] {
	case "fill":
		if argc != 1 {
			return nil, fmt.Errorf("fill takes 1 argument, got %d", argc)
		}
		value, err := cellValue(fields[1])
		if err != nil {
			return nil, err
		}
		return func(a *Animator) error {
			a.PaintBackground(value)
			return nil
		}, nil
	case "cell":
		if argc != 3 {
			return nil, fmt.Errorf("cell takes 3 arguments, got %d", argc)
		}
		value, err := cellValue(fields[3])
		if err != nil {
			return nil, err
		}
		n, err := atoi(fields[1:3])
		if err != nil {
			return nil, err
		}
		return func(a *Animator) error {
			if err := checkCell(a, n[0], n[1]); err != nil {
				return err
			}
			a.canvas.MarkCell(n[0], n[1], value)
			a.RefreshFrame()
			return nil
		}, nil
	case "rect":
		if argc != 5 {
			return nil, fmt.Errorf("rect takes 5 arguments, got %d", argc)
		}
		value, err := cellValue(fields[5])
		if err != nil {
			return nil, err
		}
		n, err := atoi(fields[1:5])
		if err != nil {
			return nil, err
		}
		return func(a *Animator) error {
			if err := checkCell(a, n[0], n[1]); err != nil {
				return err
			}
			if err := checkCell(a, n[2], n[3]); err != nil {
				return err
			}
			a.PaintRectangle(n[0], n[1], n[2], n[3], value)
			a.RefreshFrame()
			return nil
		}, nil
	case "frame":
		if argc > 1 {
			return nil, fmt.Errorf("frame takes at most 1 argument, got %d", argc)
		}
		delay := -1
		if argc == 1 {
			n, err := atoi(fields[1:])
			if err != nil {
				return nil, err
			}
			delay = n[0]
		}
		return func(a *Animator) error {
			if delay >= 0 {
				prev := a.Delay
				a.Delay = uint16(delay)
				a.FlushRemaining()
				a.Delay = prev
				return nil
			}
			a.FlushRemaining()
			return nil
		}, nil
	case "pad":
		if argc != 1 {
			return nil, fmt.Errorf("pad takes 1 argument, got %d", argc)
		}
		n, err := atoi(fields[1:])
		if err != nil {
			return nil, err
		}
		return func(a *Animator) error {
			a.PadDelay(uint16(n[0]))
			return nil
		}, nil
	case "color":
		if argc != 2 {
			return nil, fmt.Errorf("color takes 2 arguments, got %d", argc)
		}
		value, err := cellValue(fields[1])
		if err != nil {
			return nil, err
		}
		index, err := strconv.ParseUint(fields[2], 10, 8)
		if err != nil {
			return nil, fmt.Errorf("bad palette index %q", fields[2])
		}
		return func(a *Animator) error {
			a.SetColors(map[uint8]uint8{value: uint8(index)})
			return nil
		}, nil
	case "speed":
		if argc != 1 {
			return nil, fmt.Errorf("speed takes 1 argument, got %d", argc)
		}
		n, err := atoi(fields[1:])
		if err != nil {
			return nil, err
		}
		if n[0] < 1 {
			return nil, fmt.Errorf("speed must be positive, got %d", n[0])
		}
		return func(a *Animator) error {
			a.Speed = n[0]
			return nil
		}, nil
	case "delay":
		if argc != 1 {
			return nil, fmt.Errorf("delay takes 1 argument, got %d", argc)
		}
		n, err := atoi(fields[1:])
		if err != nil {
			return nil, err
		}
		return func(a *Animator) error {
			a.Delay = uint16(n[0])
			return nil
		}, nil
	case "transparent":
		if argc != 1 {
			return nil, fmt.Errorf("transparent takes 1 argument, got %d", argc)
		}
		n, err := atoi(fields[1:])
		if err != nil {
			return nil, err
		}
		return func(a *Animator) error {
			a.Transparent = n[0]
			return nil
		}, nil
	}

	return nil, fmt.Errorf("unknown instruction %q", fields[0])
}

// ParseScript reads an animation script. Errors carry the offending
// line number.
func ParseScript(r io.Reader) (Script, error) {
	var script Script

	s := bufio.NewScanner(r)
	for line := 1; s.Scan(); line++ {
		text := s.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}

		apply, err := parseInstruction(fields)
		if err != nil {
			return nil, fmt.Errorf("gifanim: script line %d: %v", line, err)
		}
		script = append(script, instruction{line: line, apply: apply})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	return script, nil
}

// Run replays the script against an Animator and flushes whatever
// changes remain at the end.
func (s Script) Run(a *Animator) error {
	for _, in := range s {
		if err := in.apply(a); err != nil {
			return fmt.Errorf("gifanim: script line %d: %v", in.line, err)
		}
	}
	a.FlushRemaining()
	return nil
}

// ParsePalette reads a palette file: one RRGGBB or #RRGGBB hex color
// per line. Lines starting with # that are not colors are comments.
func ParsePalette(r io.Reader) ([][3]uint8, error) {
	var palette [][3]uint8

	s := bufio.NewScanner(r)
	for line := 1; s.Scan(); line++ {
		text := strings.TrimSpace(s.Text())
		if text == "" {
			continue
		}

		hex := strings.TrimPrefix(text, "#")
		n, err := strconv.ParseUint(hex, 16, 32)
		if err != nil || len(hex) != 6 {
			// Anything after # that is not a color is a comment.
			if strings.HasPrefix(text, "#") {
				continue
			}
			return nil, fmt.Errorf("gifanim: palette line %d: bad color %q", line, text)
		}

		palette = append(palette, [3]uint8{uint8(n >> 16), uint8(n >> 8), uint8(n)})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	return palette, nil
}
