// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package geoloc implements a table
// with the geographic location
// of named places.
package geoloc

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/js-arias/earth"
)

// A Point is a named geographic location.
type Point struct {
	Name string
	Lon  float64
	Lat  float64
}

// Table is a collection of named locations.
type Table struct {
	points []Point
	names  map[string]int
}

// New creates a new empty table.
func New() *Table {
	return &Table{
		names: make(map[string]int),
	}
}

// Add adds a new location to the table.
func (t *Table) Add(name string, lon, lat float64) error {
	if name == "" {
		return errors.New("empty location name")
	}
	if _, ok := t.names[name]; ok {
		return fmt.Errorf("location %q already defined", name)
	}
	if lat < -90 || lat > 90 {
		return fmt.Errorf("location %q: invalid latitude %.6f", name, lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("location %q: invalid longitude %.6f", name, lon)
	}

	t.names[name] = len(t.points)
	t.points = append(t.points, Point{
		Name: name,
		Lon:  lon,
		Lat:  lat,
	})
	return nil
}

// Len returns the number of locations in the table.
func (t *Table) Len() int {
	return len(t.points)
}

// Lookup returns the location with the given name.
// Names are matched exactly.
func (t *Table) Lookup(name string) (Point, bool) {
	i, ok := t.names[name]
	if !ok {
		return Point{}, false
	}
	return t.points[i], true
}

// Points returns the locations
// in the order in which they were added.
func (t *Table) Points() []Point {
	return slices.Clone(t.points)
}

// Distance returns the great circle distance,
// in kilometers,
// between two locations.
func Distance(a, b Point) float64 {
	pa := earth.NewPoint(a.Lat, a.Lon)
	pb := earth.NewPoint(b.Lat, b.Lon)
	return earth.Distance(pa, pb) * earth.Radius / 1000
}

var header = []string{
	"location",
	"long",
	"lat",
}

// ReadCSV reads a location table
// from a comma-delimited file.
//
// The file must contain the following fields:
//
//   - location, the name of the location
//   - long, the longitude of the location
//   - lat, the latitude of the location
//
// Field names are case insensitive,
// and any other field is ignored.
//
// Here is an example file:
//
//	location,long,lat
//	France,2.2137,46.2276
//	Spain,-3.7492,40.4637
//	Italy,12.5674,41.8719
func ReadCSV(r io.Reader) (*Table, error) {
	tab := csv.NewReader(r)
	tab.Comment = '#'
	tab.FieldsPerRecord = -1

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(strings.TrimSpace(h))
		fields[h] = i
	}
	var missing []string
	for _, h := range header {
		if _, ok := fields[h]; !ok {
			missing = append(missing, h)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}

	t := New()
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("while reading data: %v", err)
		}
		ln, _ := tab.FieldPos(0)

		f := "location"
		name := field(row, fields[f])
		if name == "" {
			return nil, fmt.Errorf("on row %d: field %q: empty value", ln, f)
		}

		f = "long"
		lon, err := strconv.ParseFloat(field(row, fields[f]), 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}

		f = "lat"
		lat, err := strconv.ParseFloat(field(row, fields[f]), 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}

		if err := t.Add(name, lon, lat); err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
	}
	return t, nil
}

func field(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// CSV writes the table as a comma-delimited file.
func (t *Table) CSV(w io.Writer) error {
	tab := csv.NewWriter(w)

	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}
	for _, p := range t.points {
		row := []string{
			p.Name,
			strconv.FormatFloat(p.Lon, 'f', -1, 64),
			strconv.FormatFloat(p.Lat, 'f', -1, 64),
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
