// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package locate implements a command to add
// the geographic locations
// to the origins and destinations of migration events.
package locate

import (
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phymig/migration"
	"github.com/js-arias/phymig/project"
)

var Command = &command.Command{
	Usage: `locate [-m|--migration <event-file>] [-p|--points <location-file>]
	[-o|--output <file>] [<project-file>]`,
	Short: "add locations to migration events",
	Long: `
Command locate reads a file with migration events and a file with the
geographic location of each state, and writes the events with the longitude
and latitude of their origins and destinations.

The flag --migration, or -m, indicates the file with the migration events,
as produced by 'phymig events'.

The flag --points, or -p, indicates the file with the locations. Type
'phymig help location-files' to learn more about location files.

If a project file is given as the argument, the event and location files of
the project will be used, unless they are defined with the flags.

States are matched by their exact name. If a state is not found in the
location file, its longitude and latitude will be empty. When both the origin
and the destination have a location, the great circle distance (in km) between
them is also reported.

The output is a comma-delimited file with the following columns:

	EventTime         the time of the event
	Origin            the state of the parent node
	Destination       the state of the descendant node
	Origin_long       longitude of the origin
	Origin_lat        latitude of the origin
	Destination_long  longitude of the destination
	Destination_lat   latitude of the destination
	Distance_km       distance between the origin and the destination

By default, the output will be printed in the standard output. Use the flag
--output, or -o, to define an output file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var migFile string
var pointsFile string
var outFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&migFile, "migration", "", "")
	c.Flags().StringVar(&migFile, "m", "", "")
	c.Flags().StringVar(&pointsFile, "points", "", "")
	c.Flags().StringVar(&pointsFile, "p", "", "")
	c.Flags().StringVar(&outFile, "output", "", "")
	c.Flags().StringVar(&outFile, "o", "", "")
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

	e, err := project.ReadEvents(migFile)
	if err != nil {
		return err
	}
	tab, err := project.ReadLocations(pointsFile)
	if err != nil {
		return err
	}

	ls := e.Locate(tab)
	missing := 0
	for _, l := range ls {
		if !l.Complete() {
			missing++
		}
	}
	if missing > 0 {
		fmt.Fprintf(c.Stderr(), "# %d of %d events without a location\n", missing, len(ls))
	}

	if outFile == "" {
		return migration.WriteLocated(c.Stdout(), ls)
	}
	return writeLocated(outFile, ls)
}

func writeLocated(name string, ls []migration.Located) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := migration.WriteLocated(f, ls); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}
