// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package migration

import (
	"slices"

	"gonum.org/v1/gonum/floats"
)

// Known returns the events in which
// neither the origin nor the destination
// are Unknown.
func (e *Events) Known() *Events {
	ne := &Events{}
	for _, ev := range e.events {
		if ev.Origin == Unknown || ev.Destination == Unknown {
			continue
		}
		ne.Add(ev)
	}
	return ne
}

// Filter returns the events with an origin
// in the list of origins,
// and a destination in the list of destinations.
// An empty list matches any state.
func (e *Events) Filter(origins, destinations []string) *Events {
	orig := makeSet(origins)
	dest := makeSet(destinations)

	ne := &Events{}
	for _, ev := range e.events {
		if orig != nil && !orig[ev.Origin] {
			continue
		}
		if dest != nil && !dest[ev.Destination] {
			continue
		}
		ne.Add(ev)
	}
	return ne
}

func makeSet(ls []string) map[string]bool {
	if len(ls) == 0 {
		return nil
	}
	s := make(map[string]bool, len(ls))
	for _, v := range ls {
		s[v] = true
	}
	return s
}

// Origins returns the distinct origins
// of the events.
func (e *Events) Origins() []string {
	s := make(map[string]bool)
	for _, ev := range e.events {
		s[ev.Origin] = true
	}
	return sortedKeys(s)
}

// Destinations returns the distinct destinations
// of the events.
func (e *Events) Destinations() []string {
	s := make(map[string]bool)
	for _, ev := range e.events {
		s[ev.Destination] = true
	}
	return sortedKeys(s)
}

func sortedKeys(s map[string]bool) []string {
	ls := make([]string, 0, len(s))
	for v := range s {
		ls = append(ls, v)
	}
	slices.Sort(ls)
	return ls
}

// TimeRange returns the minimum and maximum time
// of the events.
// It returns false if there are no events.
func (e *Events) TimeRange() (first, last float64, ok bool) {
	if len(e.events) == 0 {
		return 0, 0, false
	}
	times := make([]float64, 0, len(e.events))
	for _, ev := range e.events {
		times = append(times, ev.Time)
	}
	return floats.Min(times), floats.Max(times), true
}
