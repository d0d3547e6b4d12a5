// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package migration implements the extraction
// of state changes of a discrete trait
// (for example, the country of a sample)
// from an annotated phylogenetic tree.
//
// A migration event is recorded
// whenever the trait state of a node
// is different from the state of its parent.
package migration

import (
	"fmt"
	"slices"
)

// Unknown is the state assigned
// to a node without a trait state.
const Unknown = "UNKNOWN"

// DefaultTrait is the annotation key
// used by default.
const DefaultTrait = "country"

// An Event is a change in the state of a trait
// between a node and its parent.
type Event struct {
	// Time is the absolute time of the descendant node.
	Time float64

	// Origin is the state of the parent.
	Origin string

	// Destination is the state of the descendant node.
	Destination string
}

// Tree is a phylogenetic tree
// with annotated nodes.
type Tree interface {
	// Nodes returns the IDs of the nodes.
	Nodes() []int

	// Parent returns the parent of a node,
	// or -1 for the root.
	Parent(id int) int

	// Time returns the absolute time of a node.
	Time(id int) float64

	// Trait returns the value of an annotation of a node.
	Trait(id int, key string) (string, bool)

	// HasTraits returns true if the node
	// has any annotation.
	HasTraits(id int) bool

	// SetTrait sets an annotation of a node.
	SetTrait(id int, key, value string)
}

// MissingTraitError is returned when a parent node
// has annotations,
// but not the annotation of the trait.
type MissingTraitError struct {
	Trait  string
	Node   int
	Parent int
}

func (e *MissingTraitError) Error() string {
	return fmt.Sprintf("node %d: parent node %d: annotation %q not found", e.Node, e.Parent, e.Trait)
}

// Extract returns the migration events of a tree
// for the given trait,
// in the order of the tree nodes.
//
// Nodes without the trait are annotated with Unknown
// (this changes the tree).
// The parent of the root,
// as well as a parent without annotations,
// have the Unknown state.
// If a parent has annotations
// but not the indicated trait,
// it will return a *MissingTraitError.
func Extract(t Tree, trait string) (*Events, error) {
	e := &Events{}
	for _, id := range t.Nodes() {
		state, ok := t.Trait(id, trait)
		if !ok {
			state = Unknown
			t.SetTrait(id, trait, state)
		}

		pState := Unknown
		if p := t.Parent(id); p >= 0 && t.HasTraits(p) {
			v, ok := t.Trait(p, trait)
			if !ok {
				return nil, &MissingTraitError{
					Trait:  trait,
					Node:   id,
					Parent: p,
				}
			}
			pState = v
		}

		if state == pState {
			continue
		}
		e.Add(Event{
			Time:        t.Time(id),
			Origin:      pState,
			Destination: state,
		})
	}
	return e, nil
}

// Events is an ordered collection of migration events.
type Events struct {
	events []Event
}

// NewEvents returns a collection with the given events.
func NewEvents(events ...Event) *Events {
	return &Events{events: slices.Clone(events)}
}

// Add adds an event at the end of the collection.
func (e *Events) Add(ev Event) {
	e.events = append(e.events, ev)
}

// Len returns the number of events.
func (e *Events) Len() int {
	return len(e.events)
}

// At returns the i-th event.
func (e *Events) At(i int) Event {
	return e.events[i]
}

// All returns a copy of the events.
func (e *Events) All() []Event {
	return slices.Clone(e.events)
}
