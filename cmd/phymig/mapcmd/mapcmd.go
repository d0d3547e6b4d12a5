// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package mapcmd implements a command to draw
// a map with migration events.
package mapcmd

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/phymig/bezier"
	"github.com/js-arias/phymig/migmap"
	"github.com/js-arias/phymig/project"
)

var Command = &command.Command{
	Usage: `map [-m|--migration <event-file>] [-p|--points <location-file>]
	[--origins <state>...] [--destinations <state>...]
	[--curvature <value>] [--scale <color-scale>]
	[--contour <image-file>]
	[-o|--output <file>] [--nosave] [<project-file>]`,
	Short: "draw a map of migration events",
	Long: `
Command map reads a file with migration events and a file with the geographic
location of each state, and draws each event as a curved arc from the origin
to the destination, over a longitude-latitude plane.

The flag --migration, or -m, indicates the file with the migration events,
as produced by 'phymig events'. Events with an "UNKNOWN" origin or
destination are ignored.

The flag --points, or -p, indicates the file with the locations. Type
'phymig help location-files' to learn more about location files. Events with an origin or destination without a location are
not drawn.

If a project file is given as the argument, the event and location files of
the project will be used, unless they are defined with the flags.

By default, all events are drawn. Use the flag --origins to select events
from an origin, and the flag --destinations to select events to a destination.
Both flags can be repeated to select several states, for example
'--origins France --origins Spain'. Each value is taken as a single state
name, so names with commas or spaces must be quoted, for example
'--destinations "Korea, Republic of"'.

Each arc is colored by the year of the event, relative to the range of years
of all events, and its opacity is proportional to the time of the event. By
default, a purple to red rainbow color scale is used. Use the flag --scale to
define a different color scale. Valid values are:

	rainbow       a purple to red rainbow scale (the default)
	incandescent  a dark to light scale
	iridescent    a light to dark scale

The flag --curvature sets the curvature of the arcs. The default is 0.2. A
curvature of 0 draws straight lines.

The flag --contour defines an image file (PNG or JPEG) used as the background
of the map, for example the contour of the continents. The image must be in
plate carrée (equirectangular) projection and cover the whole globe. If a
project file is given, and no image is defined with the flag, the contour
image of the project will be used.

By default, the map is saved in PDF format, with a name built from the
selected origins and destinations (for example,
"Migration_Map_From_France_To_Italy-Spain.pdf"). Use the flag --output, or
-o, to define a different file name. The format is defined by the extension of
the file (for example ".svg" or ".png"). Use the flag --nosave to only report
the number of selected events, without drawing the map.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var migFile string
var pointsFile string
var outFile string
var originFlag stateList
var destFlag stateList
var scaleFlag string
var curvature float64
var noSave bool
var contourFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&migFile, "migration", "", "")
	c.Flags().StringVar(&migFile, "m", "", "")
	c.Flags().StringVar(&pointsFile, "points", "", "")
	c.Flags().StringVar(&pointsFile, "p", "", "")
	c.Flags().StringVar(&outFile, "output", "", "")
	c.Flags().StringVar(&outFile, "o", "", "")
	c.Flags().Var(&originFlag, "origins", "")
	c.Flags().Var(&destFlag, "destinations", "")
	c.Flags().StringVar(&scaleFlag, "scale", "", "")
	c.Flags().Float64Var(&curvature, "curvature", bezier.DefaultCurvature, "")
	c.Flags().BoolVar(&noSave, "nosave", false, "")
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

	origins := []string(originFlag)
	destinations := []string(destFlag)
	known := e.Known()
	target := known.Filter(origins, destinations)
	fmt.Fprintf(c.Stdout(), "Migrations found: %d\n", target.Len())
	if noSave {
		return nil
	}

	m, err := migmap.New(tab, known, migmap.Options{
		Origins:      origins,
		Destinations: destinations,
		Curvature:    curvature,
		Gradient:     gr,
		Background:   contour,
	})
	if errors.Is(err, migmap.ErrNoEvents) {
		fmt.Fprintf(c.Stdout(), "%v\n", err)
		return nil
	}
	if err != nil {
		return err
	}
	if m.Skipped > 0 {
		fmt.Fprintf(c.Stderr(), "# %d events without a location\n", m.Skipped)
	}

	name := outFile
	if name == "" {
		name = migmap.FileName(origins, destinations)
	}
	if err := m.Save(name); err != nil {
		return err
	}
	fmt.Fprintf(c.Stdout(), "Output file path : %s\n", name)
	return nil
}

// stateList is a flag value
// that collects state names,
// one for each use of the flag.
type stateList []string

func (sl *stateList) String() string {
	if sl == nil {
		return ""
	}
	return strings.Join(*sl, ", ")
}

func (sl *stateList) Set(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return errors.New("empty state name")
	}
	*sl = append(*sl, v)
	return nil
}
