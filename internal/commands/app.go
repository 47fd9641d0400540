// Package commands implements the pgl command line tool.
package commands

import (
	"github.com/urfave/cli"

	"github.com/phytogl/phytogl/internal/config"
)

// NewApp returns the pgl application. Flag defaults come from cfg, which
// is read from PGL_* environment variables.
func NewApp(cfg *config.Config) *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "pgl"
	app.Usage = "measure, project and draw plant scene documents"
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
		cli.IntFlag{
			Name:  "stride",
			Value: cfg.CurveStride,
			Usage: "default number of segments of discretized curves",
		},
		cli.IntFlag{
			Name:  "slices",
			Value: cfg.SurfaceSlices,
			Usage: "default number of slices of discretized solids",
		},
		cli.StringFlag{
			Name:  "cache",
			Value: cfg.CachePath,
			Usage: "measurement cache file",
		},
		cli.BoolFlag{
			Name:  "no-cache",
			Usage: "always recompute measurements",
		},
	}
	app.Before = func(ctx *cli.Context) error {
		setupLogging(ctx, cfg)
		return nil
	}
	app.Commands = []cli.Command{
		{
			Name:      "sample",
			Usage:     "write the sample plant document",
			ArgsUsage: "[out_file]",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "yaml",
					Usage: "write YAML instead of JSON",
				},
			},
			Action: Sample,
		},
		{
			Name:      "surface",
			Usage:     "compute the surface of every shape",
			ArgsUsage: "scene_file",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "json",
					Usage: "print the report as JSON",
				},
			},
			Action: Surface,
		},
		{
			Name:      "bbox",
			Usage:     "compute the bounding box of every shape",
			ArgsUsage: "scene_file",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "json",
					Usage: "print the report as JSON",
				},
			},
			Action: BoundingBox,
		},
		{
			Name:      "project",
			Usage:     "render the scene into a z-buffer and report visible areas",
			ArgsUsage: "scene_file",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Value: "projection.png",
					Usage: "image filename",
				},
				cli.IntFlag{
					Name:  "width",
					Value: cfg.ImageWidth,
					Usage: "image width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: cfg.ImageHeight,
					Usage: "image height",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: cfg.Workers,
					Usage: "number of concurrent renderers",
				},
				cli.StringFlag{
					Name:  "kind",
					Value: "color",
					Usage: "image kind: color or depth",
				},
				cli.IntFlag{
					Name:  "thumb",
					Usage: "shrink the image to fit this many pixels",
				},
				cli.StringFlag{
					Name:  "assets",
					Value: cfg.AssetDir,
					Usage: "directory of texture images",
				},
				cli.BoolFlag{
					Name:  "json",
					Usage: "print the report as JSON",
				},
			},
			Action: Project,
		},
		{
			Name:      "ctrlpoints",
			Usage:     "draw the control polygons of the scene",
			ArgsUsage: "scene_file",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Value: "ctrlpoints.svg",
					Usage: "output filename",
				},
				cli.StringFlag{
					Name:  "view",
					Value: "front",
					Usage: "drawing plane: front, side or top",
				},
				cli.BoolFlag{
					Name:  "json",
					Usage: "write the draw commands as JSON instead of SVG",
				},
			},
			Action: CtrlPoints,
		},
		{
			Name:      "watch",
			Usage:     "recompute surface and bounding box whenever the file changes",
			ArgsUsage: "scene_file",
			Action:    Watch,
		},
		{
			Name:  "token",
			Usage: "mint a bearer token for the API",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "subject",
					Value: "pgl",
					Usage: "token subject",
				},
				cli.DurationFlag{
					Name:  "ttl",
					Usage: "token lifetime (default 24h)",
				},
			},
			Action: tokenAction(cfg),
		},
	}
	return app
}
