// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package migration

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/js-arias/phymig/geoloc"
)

// Located is an event with the geographic location
// of its origin and destination.
type Located struct {
	Event

	From   geoloc.Point
	FromOK bool

	To   geoloc.Point
	ToOK bool
}

// Complete returns true if both the origin
// and the destination have a location.
func (l Located) Complete() bool {
	return l.FromOK && l.ToOK
}

// Distance returns the great circle distance
// (in kilometers)
// of the event.
// It returns false if the event is not complete.
func (l Located) Distance() (float64, bool) {
	if !l.Complete() {
		return 0, false
	}
	return geoloc.Distance(l.From, l.To), true
}

// Locate returns the events
// with the locations of their origins and destinations.
// States are matched by name,
// if a state is not in the table,
// the location is left undefined.
func (e *Events) Locate(tab *geoloc.Table) []Located {
	ls := make([]Located, 0, len(e.events))
	for _, ev := range e.events {
		l := Located{Event: ev}
		l.From, l.FromOK = tab.Lookup(ev.Origin)
		l.To, l.ToOK = tab.Lookup(ev.Destination)
		ls = append(ls, l)
	}
	return ls
}

var locatedHeader = []string{
	TimeCol,
	OriginCol,
	DestinationCol,
	"Origin_long",
	"Origin_lat",
	"Destination_long",
	"Destination_lat",
	"Distance_km",
}

// WriteLocated writes located events
// as a comma-delimited file.
// Undefined locations are written as empty cells.
func WriteLocated(w io.Writer, ls []Located) error {
	tab := csv.NewWriter(w)

	if err := tab.Write(locatedHeader); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}
	for _, l := range ls {
		row := []string{
			strconv.FormatFloat(l.Time, 'f', -1, 64),
			l.Origin,
			l.Destination,
			coord(l.From.Lon, l.FromOK),
			coord(l.From.Lat, l.FromOK),
			coord(l.To.Lon, l.ToOK),
			coord(l.To.Lat, l.ToOK),
			"",
		}
		if d, ok := l.Distance(); ok {
			row[len(row)-1] = strconv.FormatFloat(d, 'f', 3, 64)
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}

func coord(v float64, ok bool) string {
	if !ok {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
