// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// PhyMig is a tool to extract and map
// migration events from annotated phylogenetic trees.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/phymig/cmd/phymig/events"
	"github.com/js-arias/phymig/cmd/phymig/locate"
	"github.com/js-arias/phymig/cmd/phymig/mapcmd"
	"github.com/js-arias/phymig/cmd/phymig/serve"
	"github.com/js-arias/phymig/cmd/phymig/tree"
)

var app = &command.Command{
	Usage: "phymig <command> [<argument>...]",
	Short: "a tool to map migrations from annotated phylogenies",
}

func init() {
	app.Add(events.Command)
	app.Add(locate.Command)
	app.Add(mapcmd.Command)
	app.Add(serve.Command)
	app.Add(tree.Command)
}

func main() {
	app.Main()
}
