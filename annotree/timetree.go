// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package annotree

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/js-arias/timetree"
)

// Newick writes the topology and branch lengths of the tree
// as a plain newick tree,
// without annotations.
// Branch lengths are multiplied by scale.
func (t *Tree) Newick(w io.Writer, scale float64) error {
	if len(t.nodes) == 0 {
		return fmt.Errorf("empty tree")
	}
	var b strings.Builder
	t.newick(&b, t.nodes[0], scale)
	b.WriteString(";\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func (t *Tree) newick(b *strings.Builder, n *node, scale float64) {
	if len(n.children) > 0 {
		b.WriteByte('(')
		for i, c := range n.children {
			if i > 0 {
				b.WriteByte(',')
			}
			t.newick(b, t.nodes[c], scale)
		}
		b.WriteByte(')')
	}
	if n.taxon != "" {
		b.WriteString(quoteLabel(n.taxon))
	}
	if n.parent >= 0 {
		b.WriteByte(':')
		b.WriteString(strconv.FormatFloat(n.brLen*scale, 'f', -1, 64))
	}
}

func quoteLabel(label string) string {
	if !strings.ContainsAny(label, "()[]:;, \t'\"") {
		return label
	}
	return "'" + strings.ReplaceAll(label, "'", "''") + "'"
}

// TimeTree returns the tree as a collection
// of time calibrated trees,
// with a single tree of the given name.
//
// Time trees store ages as integer years,
// and branch lengths in million years,
// so branch lengths are expressed as days
// (each branch length unit is taken as a calendar year)
// to keep the resolution of outbreak trees.
func (t *Tree) TimeTree(name string) (*timetree.Collection, error) {
	var b strings.Builder
	if err := t.Newick(&b, DaysPerYear/1_000_000); err != nil {
		return nil, err
	}

	c, err := timetree.Newick(strings.NewReader(b.String()), name, 0)
	if err != nil {
		return nil, fmt.Errorf("while building time tree %q: %v", name, err)
	}
	return c, nil
}

// DaysPerYear is the mean length of a calendar year.
const DaysPerYear = 365.25
