// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package export implements a command to export
// an annotated tree as a time tree file.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/phymig/project"
	"github.com/js-arias/timetree"
)

var Command = &command.Command{
	Usage: `export [-t|--tree <tree-file>]
	[--name <tree-name>] [-o|--output <file>] [<project-file>]`,
	Short: "export an annotated tree as a time tree",
	Long: `
Command export reads an annotated tree, and writes its topology and branch
lengths as a tab-delimited time tree file, the format used by the timetree
package. Annotations are not exported.

The flag --tree, or -t, indicates the tree file. Type 'phymig help tree-files'
to learn more about tree files. If a project file is given as the argument,
and no tree file is defined with the flag, the tree file of the project will be
used.

As time trees store node ages in integer years, each unit of branch length
(a calendar year in outbreak trees) is exported as 365.25 units, so the ages of
the exported tree are in days.

By default, the name of the tree will be the name of the tree file, without
its extension. Use the flag --name to define a different name.

By default, the tree will be printed in the standard output. Use the flag
--output, or -o, to define an output file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeFile string
var treeName string
var outFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeFile, "tree", "", "")
	c.Flags().StringVar(&treeFile, "t", "", "")
	c.Flags().StringVar(&treeName, "name", "", "")
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

	name := treeName
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(treeFile), filepath.Ext(treeFile))
	}
	tc, err := t.TimeTree(strings.ToLower(name))
	if err != nil {
		return fmt.Errorf("on tree %q: %v", treeFile, err)
	}

	if outFile == "" {
		return tc.TSV(c.Stdout())
	}
	return writeTrees(outFile, tc)
}

func writeTrees(name string, tc *timetree.Collection) (err error) {
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

	if err := tc.TSV(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}
