package gifanim

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/gifanim/gif"
)

// Options fixes the canvas and container geometry shared by every
// animation a Studio encodes.
type Options struct {
	// Width and Height are the grid dimensions in cells.
	Width, Height int

	// Scale maps one cell onto a Scale by Scale pixel block.
	Scale int

	// Border is a fixed pixel margin around the grid.
	Border int

	// LoopCount is the NETSCAPE2.0 loop count, zero to loop forever.
	LoopCount uint16

	// Speed and Delay override the animator defaults when positive.
	Speed int
	Delay uint16

	// Transparent is the transparent palette index, negative for
	// opaque.
	Transparent int
}

// Studio encodes animation scripts into GIF files with a shared palette
// and geometry.
type Studio struct {
	palette [][3]uint8
	opts    Options
	logger  *log.Logger
}

// New returns a Studio.
func New(palette [][3]uint8, opts Options, logger *log.Logger) *Studio {
	return &Studio{
		palette: palette,
		opts:    opts,
		logger:  logger,
	}
}

func (s *Studio) newAnimator() (*Animator, error) {
	canvas := NewCanvas(s.opts.Width, s.opts.Height, 0)
	if s.opts.Scale > 1 {
		canvas.Scale = s.opts.Scale
	}
	canvas.Border = s.opts.Border

	writer := gif.NewWriter(canvas.PixelWidth(), canvas.PixelHeight(), s.opts.LoopCount)
	if err := writer.SetPalette(s.palette); err != nil {
		return nil, err
	}

	a := NewAnimator(canvas, writer, s.logger)
	if s.opts.Speed > 0 {
		a.Speed = s.opts.Speed
	}
	if s.opts.Delay > 0 {
		a.Delay = s.opts.Delay
	}
	a.Transparent = s.opts.Transparent

	return a, nil
}

// EncodeScript parses the animation script at src, replays it on a
// fresh canvas and saves the resulting GIF to dst.
func (s *Studio) EncodeScript(src, dst string) error {
	f, err := os.Open(src)
	if err != nil {
		return err
	}
	defer f.Close()

	script, err := ParseScript(f)
	if err != nil {
		return err
	}

	a, err := s.newAnimator()
	if err != nil {
		return err
	}

	if err := script.Run(a); err != nil {
		return err
	}

	s.logger.Printf("encoding \"%s\" to \"%s\"\n", src, dst)

	return a.Writer().Save(dst)
}

func (s *Studio) findScripts(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || filepath.Ext(file) != ScriptExt {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (s *Studio) scriptWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			dst := strings.TrimSuffix(file, ScriptExt) + ".gif"
			if err := s.EncodeScript(file, dst); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// EncodeAll walks a directory tree encoding every script it finds to a
// sibling .gif file. Scripts are independent, so they are encoded
// concurrently; each worker owns its canvas and writer outright.
func (s *Studio) EncodeAll(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	scripts, errc, err := s.findScripts(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < 4; i++ {
		errc, err := s.scriptWorker(ctx, scripts)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
