// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(eventFilesGuide)
	app.Add(locationFilesGuide)
	app.Add(projectsGuide)
	app.Add(treeFilesGuide)
}

var eventFilesGuide = &command.Command{
	Usage: "event-files",
	Short: "about migration event files",
	Long: `
A migration event is a change in the state of a discrete trait (usually a
geographic region, such as a country) between a node of a tree and its parent.
Migration events are produced by the command 'phymig events'.

An event file is a comma-delimited file with the following columns:

	- (no name)    the index of the event, starting at 0. This column is
	               optional.
	- EventTime    the time of the event, as a decimal year. It is the
	               calibrated time of the descendant node.
	- Origin       the state of the parent node.
	- Destination  the state of the descendant node.

Column names are case insensitive. The state "UNKNOWN" is used when the state
of a node is not known. The parent of the root node always has the "UNKNOWN"
state.

Here is an example file:

	,EventTime,Origin,Destination
	0,2017.9,UNKNOWN,France
	1,2018.4,France,Spain
	2,2019.1,France,Italy
	3,2020.7,Spain,Italy
	`,
}

var projectsGuide = &command.Command{
	Usage: "projects",
	Short: "about project files",
	Long: `
Most PhyMig commands use the same few files: an annotated tree, the migration
events extracted from the tree, and the locations of the states. To avoid
typing the file names on each command, a project file can be used to hold the
reference of these files.

A project file is a tab-delimited file with the following fields:

	- dataset  for the kind of file
	- path     for the path of the file

Here is an example file:

	# phymig project files
	dataset	path
	tree	outbreak.nwk
	events	events.csv
	locations	countries.csv
	contour	world.png

The valid file types are:

- Annotated trees. Defined by the dataset keyword "tree". Type
  'phymig help tree-files' to learn more about tree files.
- Migration events. Defined by the dataset keyword "events". Type
  'phymig help event-files' to learn more about event files.
- Locations. Defined by the dataset keyword "locations". Type
  'phymig help location-files' to learn more about location files.
- Map background. Defined by the dataset keyword "contour". A PNG or JPEG
  image, in plate carrée projection, covering the whole globe. It is used as
  the background of the maps drawn by 'phymig map' and 'phymig serve'.

The command 'phymig events' stores the tree and the event file in the project
when the events are written to a file. Other datasets can be added by editing
the file with a text editor. In all commands, the files given with a flag take
precedence over the files of the project.
	`,
}

var locationFilesGuide = &command.Command{
	Usage: "location-files",
	Short: "about location files",
	Long: `
To draw migration events in a map, each state must have a geographic
location. Locations are stored in a comma-delimited file with the following
columns:

	- location  the name of the state. It must be equal to the name used in
	            the tree annotations.
	- long      the longitude of the location, in decimal degrees.
	- lat       the latitude of the location, in decimal degrees.

Column names are case insensitive, and other columns are ignored. Each
location must be defined only once, and names can not be empty.

Here is an example file:

	location,long,lat
	France,2.2137,46.2276
	Spain,-3.7492,40.4637
	Italy,12.5674,41.8719
	`,
}

var treeFilesGuide = &command.Command{
	Usage: "tree-files",
	Short: "about annotated tree files",
	Long: `
PhyMig reads a single annotated tree in newick (parenthetical) format, as
produced by phylogeographic software such as BEAST or TreeTime. Branch lengths
are expected in years.

The states of the nodes are stored as annotations in square brackets, starting
with an ampersand, after the node label or the branch length. Annotations are
key-value pairs separated by commas. Values can be quoted, and sets of values
can be given in curly brackets. For example:

	((A[&country="France"]:1.5,B[&country="Spain"]:2)[&country="France"]:0.5)[&country="France"];

Labels can be quoted with single quotes. A "tree NAME =" prefix, as used in
nexus files, and a "[&R]" rooting comment are accepted and ignored.

The time of each node is calibrated from the time of the most recent terminal,
given as a decimal year, so the time of a node is:

	time = last-date - tree-height + node-height

where the node height is the sum of branch lengths from the root to the node,
and the tree height is the largest height of any terminal.
	`,
}
