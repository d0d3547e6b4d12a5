// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package events implements a command to extract
// the migration events of an annotated tree.
package events

import (
	"fmt"
	"math"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/phymig/migration"
	"github.com/js-arias/phymig/project"
)

var Command = &command.Command{
	Usage: `events [-t|--tree <tree-file>] -d|--date <value>
	[--trait <key>] [-o|--output <file>] [<project-file>]`,
	Short: "extract migration events from a tree",
	Long: `
Command events reads an annotated tree, and writes the changes of state of a
discrete trait (for example, the country of the samples) between each node and
its parent. Each change is interpreted as a migration event.

The flag --tree, or -t, indicates the tree file. The tree must
be in newick format, with the states of the trait stored as node annotations,
as produced by BEAST or TreeTime. Type 'phymig help tree-files' to learn more
about tree files. If a project file is given as the argument, and no tree
file is defined with the flag, the tree file of the project will be used.

The flag --date, or -d, is required and indicates the time of the most recent
sampled terminal, as a decimal year (for example, 2025.3369863014 for
2025-05-03). This value is used to calibrate the absolute time of the nodes.

By default, the annotation "country" is used as the trait. Use the flag
--trait to define a different annotation.

Nodes without the trait are assigned the state "UNKNOWN". The parent of the
root also has the "UNKNOWN" state. If a parent node has annotations, but not
the trait, the command will fail.

Each event is assigned the time of the descendant node. Events are reported in
the order in which nodes are found in the tree file.

By default, the events will be printed in the standard output. Use the flag
--output, or -o, to define an output file. The output is a comma-delimited file,
type 'phymig help event-files' to learn more about event files. If a project
file is given, and the output is a file, the paths of the tree file and the
event file will be stored in the project (if the project file does not exist,
it will be created).
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeFile string
var outFile string
var traitKey string
var lastDate float64

func setFlags(c *command.Command) {
	c.Flags().Float64Var(&lastDate, "date", math.NaN(), "")
	c.Flags().Float64Var(&lastDate, "d", math.NaN(), "")
	c.Flags().StringVar(&treeFile, "tree", "", "")
	c.Flags().StringVar(&treeFile, "t", "", "")
	c.Flags().StringVar(&outFile, "output", "", "")
	c.Flags().StringVar(&outFile, "o", "", "")
	c.Flags().StringVar(&traitKey, "trait", migration.DefaultTrait, "")
}

func run(c *command.Command, args []string) error {
	if math.IsNaN(lastDate) {
		return c.UsageError("expecting time of the last sampled terminal, flag --date")
	}

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
	t.SetAbsoluteTime(lastDate)
	if err := t.Stats().Write(c.Stderr()); err != nil {
		return err
	}

	e, err := migration.Extract(t, traitKey)
	if err != nil {
		return fmt.Errorf("on tree %q: %v", treeFile, err)
	}
	fmt.Fprintf(c.Stderr(), "Total number of state changes: %d\n", e.Len())

	if outFile == "" {
		return e.CSV(c.Stdout())
	}
	if err := writeEvents(outFile, e); err != nil {
		return err
	}

	if p.Name() == "" {
		return nil
	}
	p.Add(project.Tree, treeFile)
	p.Add(project.Events, outFile)
	return p.Write()
}

func writeEvents(name string, e *migration.Events) (err error) {
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

	if err := e.CSV(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}
