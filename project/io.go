// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/js-arias/phymig/annotree"
	"github.com/js-arias/phymig/geoloc"
	"github.com/js-arias/phymig/migration"
)

// Tree reads the annotated tree
// defined in a project.
func (p *Project) Tree() (*annotree.Tree, error) {
	name := p.Path(Tree)
	if name == "" {
		return nil, fmt.Errorf("tree not defined in project %q", p.name)
	}
	return ReadTree(name)
}

// Events reads the migration events
// defined in a project.
func (p *Project) Events() (*migration.Events, error) {
	name := p.Path(Events)
	if name == "" {
		return nil, fmt.Errorf("migration events not defined in project %q", p.name)
	}
	return ReadEvents(name)
}

// Locations reads the locations of the states
// defined in a project.
func (p *Project) Locations() (*geoloc.Table, error) {
	name := p.Path(Locations)
	if name == "" {
		return nil, fmt.Errorf("locations not defined in project %q", p.name)
	}
	return ReadLocations(name)
}

// Contour reads the background image of maps
// defined in a project.
// It returns nil if no image is defined.
func (p *Project) Contour() (image.Image, error) {
	name := p.Path(Contour)
	if name == "" {
		return nil, nil
	}
	return ReadImage(name)
}

// ReadTree reads an annotated tree file.
func ReadTree(name string) (*annotree.Tree, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := annotree.ReadNewick(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return t, nil
}

// ReadEvents reads a file with migration events.
func ReadEvents(name string) (*migration.Events, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	e, err := migration.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("on migration file %q: %v", name, err)
	}
	return e, nil
}

// ReadLocations reads a file with the locations of the states.
func ReadLocations(name string) (*geoloc.Table, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tab, err := geoloc.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("on location file %q: %v", name, err)
	}
	return tab, nil
}

// ReadImage reads an image file
// in PNG or JPEG format.
func ReadImage(name string) (image.Image, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("on image file %q: %v", name, err)
	}
	return img, nil
}
