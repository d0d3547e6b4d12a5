// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package tree is a metapackage for commands
// that dealt with annotated trees.
package tree

import (
	"github.com/js-arias/command"
	"github.com/js-arias/phymig/cmd/phymig/tree/export"
	"github.com/js-arias/phymig/cmd/phymig/tree/stats"
)

var Command = &command.Command{
	Usage: "tree <command> [<argument>...]",
	Short: "commands for annotated trees",
}

func init() {
	Command.Add(export.Command)
	Command.Add(stats.Command)
}
