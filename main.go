package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/lapidary/lustre/cmd"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	gemFlags := []cli.Flag{
		cli.IntFlag{
			Name:  "facets",
			Value: 8,
			Usage: "number of girdle facets for the demo gem",
		},
		cli.Float64Flag{
			Name:  "ior",
			Value: 1.5,
			Usage: "gem index of refraction",
		},
		cli.Float64Flag{
			Name:  "dispersion",
			Value: 0.0,
			Usage: "gem dispersion coefficient (reserved)",
		},
		cli.Float64Flag{
			Name:  "absorb-r",
			Value: 1.0,
			Usage: "gem absorption tint, red component",
		},
		cli.Float64Flag{
			Name:  "absorb-g",
			Value: 0.0,
			Usage: "gem absorption tint, green component",
		},
		cli.Float64Flag{
			Name:  "absorb-b",
			Value: 1.0,
			Usage: "gem absorption tint, blue component",
		},
	}

	app := cli.NewApp()
	app.Name = "lustre"
	app.Usage = "render faceted gemstones by simulating refraction and reflection"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a still frame of the demo gem scene",
			Description: `
Build the demo gem scene, trace it with the configured sampling and
bounce budget and write the gamma-corrected frame to a PNG file.`,
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 512,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 512,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: 16,
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "num-bounces",
					Value: 16,
					Usage: "max ray bounces",
				},
				cli.IntFlag{
					Name:  "num-threads",
					Value: 4,
					Usage: "number of render workers",
				},
				cli.StringFlag{
					Name:  "lighting",
					Value: "cosine",
					Usage: "ambient lighting model (cosine or isometric)",
				},
				cli.Float64Flag{
					Name:  "light-intensity",
					Value: 1.0,
					Usage: "ambient light intensity",
				},
				cli.Float64Flag{
					Name:  "background",
					Value: 0.1,
					Usage: "background gray level",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
			}, gemFlags...),
			Action: cmd.RenderFrame,
		},
		{
			Name:   "info",
			Usage:  "display mesh and BVH statistics for the demo gem scene",
			Flags:  gemFlags,
			Action: cmd.ShowSceneInfo,
		},
	}

	app.Run(os.Args)
}
