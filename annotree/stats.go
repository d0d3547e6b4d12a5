// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package annotree

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// Stats is a summary of a tree.
type Stats struct {
	Terms    int
	Internal int

	// Height is the largest distance
	// between the root and a terminal.
	Height float64

	// Length is the sum of all branch lengths.
	Length float64

	// Bifurcating is true if all internal nodes
	// have exactly two descendants.
	Bifurcating bool

	// Keys are the annotation keys
	// found in the tree.
	Keys []string
}

// Stats returns a summary of the tree.
func (t *Tree) Stats() Stats {
	s := Stats{
		Height:      t.TreeHeight(),
		Bifurcating: true,
	}
	keys := make(map[string]bool)
	for _, n := range t.nodes {
		s.Length += n.brLen
		for k := range n.traits {
			keys[k] = true
		}
		if len(n.children) == 0 {
			s.Terms++
			continue
		}
		s.Internal++
		if len(n.children) != 2 {
			s.Bifurcating = false
		}
	}

	s.Keys = make([]string, 0, len(keys))
	for k := range keys {
		s.Keys = append(s.Keys, k)
	}
	slices.Sort(s.Keys)
	return s
}

// Write writes the summary in a human readable form.
func (s Stats) Write(w io.Writer) error {
	kind := "multitype"
	if s.Bifurcating {
		kind = "strictly bifurcating"
	}
	keys := "none"
	if len(s.Keys) > 0 {
		keys = strings.Join(s.Keys, ", ")
	}

	_, err := fmt.Fprintf(w, "# tree: %d terminals, %d internal nodes\n# height: %.6f\n# length: %.6f\n# tree is %s\n# annotations: %s\n",
		s.Terms, s.Internal, s.Height, s.Length, kind, keys)
	return err
}
