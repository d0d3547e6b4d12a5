// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package stats implements a command to print
// the basic statistics of an annotated tree.
package stats

import (
	"github.com/js-arias/command"
	"github.com/js-arias/phymig/project"
)

var Command = &command.Command{
	Usage: "stats [-t|--tree <tree-file>] [<project-file>]",
	Short: "print statistics of an annotated tree",
	Long: `
Command stats reads an annotated tree and prints the number of terminals, the
number of internal nodes, the height of the tree, the total branch length, and
the annotation keys found in the tree.

The flag --tree, or -t, indicates the tree file. Type 'phymig help tree-files'
to learn more about tree files. If a project file is given as the argument,
and no tree file is defined with the flag, the tree file of the project will be
used.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeFile, "tree", "", "")
	c.Flags().StringVar(&treeFile, "t", "", "")
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
	if treeFile == "" {
		treeFile = p.Path(project.Tree)
	}
	if treeFile == "" {
		return c.UsageError("expecting tree file, flag --tree")
	}

	t, err := project.ReadTree(treeFile)
	if err != nil {
		return err
	}
	return t.Stats().Write(c.Stdout())
}
