package main

import (
	"errors"
	"io/ioutil"
	"log"
	"os"

	"github.com/bodgit/gifanim"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version, V",
		Usage: "print the version",
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "width",
			Usage: "grid width in cells",
		},
		&cli.IntFlag{
			Name:  "height",
			Usage: "grid height in cells",
		},
		&cli.StringFlag{
			Name:    "palette",
			EnvVars: []string{"GIFANIM_PALETTE"},
			Usage:   "path to palette file, one hex color per line",
		},
		&cli.IntFlag{
			Name:  "scale",
			Value: 1,
			Usage: "pixels per cell",
		},
		&cli.IntFlag{
			Name:  "border",
			Usage: "pixel margin around the grid",
		},
		&cli.IntFlag{
			Name:  "loop",
			Usage: "loop count, 0 to loop forever",
		},
		&cli.IntFlag{
			Name:  "speed",
			Usage: "cell changes per automatic frame",
		},
		&cli.IntFlag{
			Name:  "delay",
			Usage: "per-frame delay in centiseconds",
		},
		&cli.IntFlag{
			Name:  "transparent",
			Value: -1,
			Usage: "transparent palette index, -1 for opaque",
		},
	}
}

func newStudio(c *cli.Context) (*gifanim.Studio, error) {
	if c.Int("width") < 1 || c.Int("height") < 1 {
		return nil, errors.New("width and height are required")
	}
	if c.String("palette") == "" {
		return nil, errors.New("palette is required")
	}

	f, err := os.Open(c.String("palette"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	palette, err := gifanim.ParsePalette(f)
	if err != nil {
		return nil, err
	}

	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	return gifanim.New(palette, gifanim.Options{
		Width:       c.Int("width"),
		Height:      c.Int("height"),
		Scale:       c.Int("scale"),
		Border:      c.Int("border"),
		LoopCount:   uint16(c.Int("loop")),
		Speed:       c.Int("speed"),
		Delay:       uint16(c.Int("delay")),
		Transparent: c.Int("transparent"),
	}, logger), nil
}

func main() {
	app := cli.NewApp()

	app.Name = "gifanim"
	app.Usage = "Script-driven animated GIF encoder"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "encode",
			Usage:       "Encode one animation script to a GIF file",
			Description: "",
			Flags: append(commonFlags(),
				&cli.StringFlag{
					Name:  "frames",
					Usage: "path to animation script",
				},
				&cli.StringFlag{
					Name:  "out",
					Usage: "path to output GIF",
				}),
			Action: func(c *cli.Context) error {
				if c.String("frames") == "" || c.String("out") == "" {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				s, err := newStudio(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := s.EncodeScript(c.String("frames"), c.String("out")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:        "batch",
			Usage:       "Encode every animation script under a directory",
			Description: "",
			ArgsUsage:   "DIRECTORY",
			Flags:       commonFlags(),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				s, err := newStudio(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := s.EncodeAll(c.Args().First()); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
