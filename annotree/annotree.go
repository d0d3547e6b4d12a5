// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package annotree implements phylogenetic trees
// with per node annotations,
// as produced by ancestral state reconstruction programs.
//
// Nodes are stored in an arena
// and addressed by their ID,
// which is the order in which they were read.
package annotree

import (
	"fmt"
	"slices"
)

type node struct {
	id       int
	parent   int
	children []int

	taxon  string
	brLen  float64
	height float64
	time   float64

	traits map[string]string
}

// A Tree is a rooted phylogenetic tree
// with annotated nodes.
type Tree struct {
	nodes      []*node
	calibrated bool
}

// New returns a new empty tree.
func New() *Tree {
	return &Tree{}
}

// Add adds a new node as a descendant of the given parent
// and returns the ID of the new node.
// Use -1 as the parent to add the root.
func (t *Tree) Add(parent int, taxon string, brLen float64) (int, error) {
	if parent < 0 && len(t.nodes) > 0 {
		return -1, fmt.Errorf("tree already has a root")
	}
	if parent >= len(t.nodes) {
		return -1, fmt.Errorf("parent node %d not in tree", parent)
	}
	n := t.add(parent)
	n.taxon = taxon
	n.brLen = brLen
	t.setHeight(n)
	return n.id, nil
}

func (t *Tree) add(parent int) *node {
	n := &node{
		id:     len(t.nodes),
		parent: parent,
		traits: make(map[string]string),
	}
	t.nodes = append(t.nodes, n)
	if parent >= 0 {
		p := t.nodes[parent]
		p.children = append(p.children, n.id)
	}
	return n
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Nodes returns the IDs of the tree nodes
// in the order in which they were read
// (a pre-order traversal).
func (t *Tree) Nodes() []int {
	ids := make([]int, len(t.nodes))
	for i := range ids {
		ids[i] = i
	}
	return ids
}

// Parent returns the ID of the parent of the given node.
// It returns -1 for the root.
func (t *Tree) Parent(id int) int {
	return t.nodes[id].parent
}

// Children returns the IDs of the descendants of a node.
func (t *Tree) Children(id int) []int {
	return slices.Clone(t.nodes[id].children)
}

// IsTerm returns true if the node is a terminal.
func (t *Tree) IsTerm(id int) bool {
	return len(t.nodes[id].children) == 0
}

// Taxon returns the label of a node.
func (t *Tree) Taxon(id int) string {
	return t.nodes[id].taxon
}

// Terms returns the labels of the terminals
// in reading order.
func (t *Tree) Terms() []string {
	var terms []string
	for _, n := range t.nodes {
		if len(n.children) > 0 {
			continue
		}
		terms = append(terms, n.taxon)
	}
	return terms
}

// BrLen returns the length of the branch
// that ends at the given node.
func (t *Tree) BrLen(id int) float64 {
	return t.nodes[id].brLen
}

// Height returns the distance from the root to the node,
// including the branch of the root,
// if any.
func (t *Tree) Height(id int) float64 {
	return t.nodes[id].height
}

// TreeHeight returns the largest height
// of any terminal.
func (t *Tree) TreeHeight() float64 {
	var h float64
	for _, n := range t.nodes {
		if len(n.children) > 0 {
			continue
		}
		h = max(h, n.height)
	}
	return h
}

// SetAbsoluteTime calibrates the tree
// using the time of the most recent terminal
// (for example, 2025.3369863014 for 2025-05-03).
func (t *Tree) SetAbsoluteTime(last float64) {
	th := t.TreeHeight()
	for _, n := range t.nodes {
		n.time = last - th + n.height
	}
	t.calibrated = true
}

// Calibrated returns true if absolute times were set.
func (t *Tree) Calibrated() bool {
	return t.calibrated
}

// Time returns the absolute time of a node.
func (t *Tree) Time(id int) float64 {
	return t.nodes[id].time
}

// Trait returns the value of an annotation of a node.
func (t *Tree) Trait(id int, key string) (string, bool) {
	v, ok := t.nodes[id].traits[key]
	return v, ok
}

// HasTraits returns true if the node has
// at least one annotation.
func (t *Tree) HasTraits(id int) bool {
	return len(t.nodes[id].traits) > 0
}

// SetTrait sets the value of an annotation of a node.
func (t *Tree) SetTrait(id int, key, value string) {
	t.nodes[id].traits[key] = value
}

// TraitKeys returns the annotation keys of a node.
func (t *Tree) TraitKeys(id int) []string {
	keys := make([]string, 0, len(t.nodes[id].traits))
	for k := range t.nodes[id].traits {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// setHeights sets the height of each node.
// As nodes are stored in pre-order,
// a parent is always updated before its descendants.
func (t *Tree) setHeights() {
	for _, n := range t.nodes {
		t.setHeight(n)
	}
}

// setHeight sets the height of a node
// from the height of its parent.
func (t *Tree) setHeight(n *node) {
	n.height = n.brLen
	if n.parent >= 0 {
		n.height += t.nodes[n.parent].height
	}
}
