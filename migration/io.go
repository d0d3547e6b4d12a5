// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package migration

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Column names of an event table.
const (
	TimeCol        = "EventTime"
	OriginCol      = "Origin"
	DestinationCol = "Destination"
)

// MissingColumnsError is returned
// when a table does not have
// some required columns.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing columns: %s", strings.Join(e.Columns, ", "))
}

// CSV writes the events as a comma-delimited file.
// The first column is the row index
// (with an empty header),
// followed by the event time,
// the origin,
// and the destination.
func (e *Events) CSV(w io.Writer) error {
	tab := csv.NewWriter(w)

	header := []string{"", TimeCol, OriginCol, DestinationCol}
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for i, ev := range e.events {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(ev.Time, 'f', -1, 64),
			ev.Origin,
			ev.Destination,
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

// ReadCSV reads migration events
// from a comma-delimited file.
//
// The file must contain the following fields:
//
//   - EventTime, the time of the event
//   - Origin, the state of the parent node
//   - Destination, the state of the descendant node
//
// Field names are case insensitive,
// and any other field
// (for example, a row index)
// is ignored.
// If a required field is missing,
// it returns a *MissingColumnsError.
//
// Here is an example file:
//
//	,EventTime,Origin,Destination
//	0,2018.9,UNKNOWN,France
//	1,2019.8,France,Spain
//	2,2020,France,Italy
func ReadCSV(r io.Reader) (*Events, error) {
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
	for _, h := range []string{TimeCol, OriginCol, DestinationCol} {
		if _, ok := fields[strings.ToLower(h)]; !ok {
			missing = append(missing, h)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	e := &Events{}
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("while reading data: %v", err)
		}
		ln, _ := tab.FieldPos(0)

		f := TimeCol
		tm, err := strconv.ParseFloat(field(row, fields[strings.ToLower(f)]), 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}

		f = OriginCol
		orig := field(row, fields[strings.ToLower(f)])
		if orig == "" {
			return nil, fmt.Errorf("on row %d: field %q: empty value", ln, f)
		}

		f = DestinationCol
		dest := field(row, fields[strings.ToLower(f)])
		if dest == "" {
			return nil, fmt.Errorf("on row %d: field %q: empty value", ln, f)
		}

		e.Add(Event{
			Time:        tm,
			Origin:      orig,
			Destination: dest,
		})
	}
	return e, nil
}

func field(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
