// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package project implements reading and writing
// of PhyMig project files.
//
// A PhyMig project is a tab-delimited file (TSV)
// used to store the paths of the data files
// shared by PhyMig commands.
package project

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"
)

// Dataset is a keyword to identify
// the type of a dataset file in a project.
type Dataset string

// Valid dataset types.
const (
	// File for the annotated tree.
	Tree Dataset = "tree"

	// File for the migration events.
	Events Dataset = "events"

	// File for the locations of the states.
	Locations Dataset = "locations"

	// Image file used as the background of maps.
	Contour Dataset = "contour"
)

// A Project represents a collection of paths
// for particular datasets.
type Project struct {
	name  string
	paths map[Dataset]string
}

// New creates a new empty project.
func New() *Project {
	return &Project{
		paths: make(map[Dataset]string),
	}
}

var header = []string{
	"dataset",
	"path",
}

// Read reads a project file from a TSV file.
//
// The TSV must contain the following fields:
//
//   - dataset, for the kind of file
//   - path, for the path of the file
//
// Here is an example file:
//
//	# phymig project files
//	dataset	path
//	tree	outbreak.nwk
//	events	events.csv
//	locations	countries.csv
//	contour	world.png
//
// If the file does not exist,
// it returns an empty project with the given name.
func Read(name string) (*Project, error) {
	f, err := os.Open(name)
	if errors.Is(err, os.ErrNotExist) {
		p := New()
		p.name = name
		return p, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	p.name = name
	return p, nil
}

func read(r io.Reader) (*Project, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range header {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	p := New()
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("while reading data: %v", err)
		}
		ln, _ := tsv.FieldPos(0)

		s := Dataset(strings.ToLower(row[fields["dataset"]]))
		switch s {
		case Tree, Events, Locations, Contour:
		default:
			return nil, fmt.Errorf("on row %d: unknown dataset %q", ln, s)
		}
		p.paths[s] = row[fields["path"]]
	}
	return p, nil
}

// Add adds a filepath of a dataset to a given project.
// It returns the previous value
// for the dataset.
// If path is empty,
// the dataset is removed.
func (p *Project) Add(set Dataset, path string) string {
	prev := p.paths[set]
	if path == "" {
		delete(p.paths, set)
		return prev
	}

	p.paths[set] = path
	return prev
}

// Path returns the path of the given dataset.
func (p *Project) Path(set Dataset) string {
	return p.paths[set]
}

// Sets returns the datasets defined on a project.
func (p *Project) Sets() []Dataset {
	var sets []Dataset
	for s := range p.paths {
		sets = append(sets, s)
	}
	slices.Sort(sets)
	return sets
}

// Name returns the file name of the project.
func (p *Project) Name() string {
	return p.name
}

// SetName sets the project file name.
func (p *Project) SetName(name string) {
	p.name = name
}

// Write writes a project into its file.
func (p *Project) Write() (err error) {
	if p.name == "" {
		return errors.New("undefined project file name")
	}
	f, err := os.Create(p.name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := p.write(f); err != nil {
		return fmt.Errorf("on file %q: %v", p.name, err)
	}
	return nil
}

func (p *Project) write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# phymig project files\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}
	for _, s := range p.Sets() {
		row := []string{
			string(s),
			p.paths[s],
		}
		if err := tsv.Write(row); err != nil {
			return err
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}
