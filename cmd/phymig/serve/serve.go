// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package serve implements a command to run
// an interactive dashboard of migration events.
package serve

import (
	"image"

	"github.com/js-arias/command"
	"github.com/js-arias/phymig/bezier"
	"github.com/js-arias/phymig/dashboard"
	"github.com/js-arias/phymig/migmap"
	"github.com/js-arias/phymig/project"
)

var Command = &command.Command{
	Usage: `serve [-m|--migration <event-file>] [-p|--points <location-file>]
	[--addr <address>] [--curvature <value>] [--scale <color-scale>]
	[--contour <image-file>] [<project-file>]`,
	Short: "run a dashboard of migration events",
	Long: `
Command serve reads a file with migration events and a file with the
geographic location of each state, and starts a web server with an
interactive dashboard. In the dashboard, the origins and destinations can be
selected from a list, and the map is redrawn with each selection.

The flag --migration, or -m, indicates the file with the migration events,
as produced by 'phymig events'. Events with an "UNKNOWN" origin or
destination are ignored.

The flag --points, or -p, indicates the file with the locations. Type
'phymig help location-files' to learn more about location files.

If a project file is given as the argument, the event and location files of
the project will be used, unless they are defined with the flags.

By default, the server listens at ":8050". Use the flag --addr to define a
different address.

The flags --curvature, --scale, and --contour define the curvature and the
color scale of the arcs, and the background image of the map, as in
'phymig map'. If a project file is given, and no image is defined with the
flag, the contour image of the project will be used.

The dashboard also provides the selected events, with their locations, as a
comma-delimited file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var migFile string
var pointsFile string
var addr string
var scaleFlag string
var curvature float64
var contourFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&migFile, "migration", "", "")
	c.Flags().StringVar(&migFile, "m", "", "")
	c.Flags().StringVar(&pointsFile, "points", "", "")
	c.Flags().StringVar(&pointsFile, "p", "", "")
	c.Flags().StringVar(&addr, "addr", ":8050", "")
	c.Flags().StringVar(&scaleFlag, "scale", "", "")
	c.Flags().Float64Var(&curvature, "curvature", bezier.DefaultCurvature, "")
	c.Flags().StringVar(&contourFile, "contour", "", "")
}

func run(c *command.Command, args []string) error {
	p := project.New()
	if len(args) > 0 {
		var err error
		p, err = project.Read(args[0])
		if err != nil {
			return err
		}
	}
	if migFile == "" {
		migFile = p.Path(project.Events)
	}
	if migFile == "" {
		return c.UsageError("expecting migration file, flag --migration")
	}
	if pointsFile == "" {
		pointsFile = p.Path(project.Locations)
	}
	if pointsFile == "" {
		return c.UsageError("expecting location file, flag --points")
	}
	gr, err := migmap.ParseScale(scaleFlag)
	if err != nil {
		return c.UsageError(err.Error())
	}

	e, err := project.ReadEvents(migFile)
	if err != nil {
		return err
	}
	tab, err := project.ReadLocations(pointsFile)
	if err != nil {
		return err
	}

	var contour image.Image
	if contourFile == "" {
		contourFile = p.Path(project.Contour)
	}
	if contourFile != "" {
		contour, err = project.ReadImage(contourFile)
		if err != nil {
			return err
		}
	}

	s := dashboard.New(tab, e, migmap.Options{
		Curvature:  curvature,
		Gradient:   gr,
		Background: contour,
	})
	return s.Run(addr)
}
