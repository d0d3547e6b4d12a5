// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package migmap_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/js-arias/phymig/geoloc"
	"github.com/js-arias/phymig/migmap"
	"github.com/js-arias/phymig/migration"
)

func newData(t testing.TB) (*geoloc.Table, *migration.Events) {
	t.Helper()

	tab := geoloc.New()
	pts := []geoloc.Point{
		{Name: "France", Lon: 2.2137, Lat: 46.2276},
		{Name: "Spain", Lon: -3.7492, Lat: 40.4637},
		{Name: "Italy", Lon: 12.5674, Lat: 41.8719},
	}
	for _, p := range pts {
		if err := tab.Add(p.Name, p.Lon, p.Lat); err != nil {
			t.Fatalf("unable to add %q: %v", p.Name, err)
		}
	}

	e := migration.NewEvents(
		migration.Event{Time: 2018.4, Origin: "France", Destination: "Spain"},
		migration.Event{Time: 2019.1, Origin: "France", Destination: "Italy"},
		migration.Event{Time: 2020.7, Origin: "Spain", Destination: "Italy"},
		migration.Event{Time: 2021.2, Origin: "Italy", Destination: "Portugal"},
	)
	return tab, e
}

func TestNew(t *testing.T) {
	tab, e := newData(t)

	tests := []struct {
		name    string
		orig    []string
		dest    []string
		arcs    int
		skipped int
	}{
		{"all", nil, nil, 3, 1},
		{"from France", []string{"France"}, nil, 2, 0},
		{"to Italy", nil, []string{"Italy"}, 2, 0},
		{"to Portugal", nil, []string{"Portugal"}, 0, 1},
	}
	for _, tt := range tests {
		m, err := migmap.New(tab, e, migmap.Options{
			Origins:      tt.orig,
			Destinations: tt.dest,
			Curvature:    0.2,
		})
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
			continue
		}
		if m.Arcs != tt.arcs || m.Skipped != tt.skipped {
			t.Errorf("%s: got %d arcs, %d skipped, want %d, %d", tt.name, m.Arcs, m.Skipped, tt.arcs, tt.skipped)
		}
	}
}

func TestNoEvents(t *testing.T) {
	tab, e := newData(t)

	_, err := migmap.New(tab, e, migmap.Options{Origins: []string{"Germany"}})
	if !errors.Is(err, migmap.ErrNoEvents) {
		t.Errorf("filtered: got error %v, want %v", err, migmap.ErrNoEvents)
	}

	_, err = migmap.New(tab, migration.NewEvents(), migmap.Options{})
	if !errors.Is(err, migmap.ErrNoEvents) {
		t.Errorf("empty: got error %v, want %v", err, migmap.ErrNoEvents)
	}
}

func TestEncode(t *testing.T) {
	tab, e := newData(t)

	m, err := migmap.New(tab, e, migmap.Options{Gradient: migmap.Iridescent{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var w bytes.Buffer
	if err := m.Encode(&w, "svg"); err != nil {
		t.Fatalf("unable to encode map: %v", err)
	}
	if !strings.Contains(w.String(), "<svg") {
		t.Errorf("output is not a SVG image")
	}
}

func TestBackground(t *testing.T) {
	tab, e := newData(t)
	bg := color.RGBA{255, 0, 255, 255}
	img := image.NewRGBA(image.Rect(0, 0, 360, 180))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: bg}, image.Point{}, draw.Src)

	with, err := migmap.New(tab, e, migmap.Options{Background: img})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !with.Background {
		t.Errorf("background: not drawn")
	}
	if f := colorFraction(t, with, bg); f < 0.25 {
		t.Errorf("background: got %.3f of pixels with background color, want at least 0.25", f)
	}

	without, err := migmap.New(tab, e, migmap.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if without.Background {
		t.Errorf("no background: background drawn")
	}
	if f := colorFraction(t, without, bg); f > 0.01 {
		t.Errorf("no background: got %.3f of pixels with background color", f)
	}
}

// colorFraction returns the fraction of pixels
// of a map rendered as a PNG image
// that have the given color.
func colorFraction(t testing.TB, m *migmap.Map, c color.Color) float64 {
	t.Helper()

	var w bytes.Buffer
	if err := m.Encode(&w, "png"); err != nil {
		t.Fatalf("unable to encode map: %v", err)
	}
	img, err := png.Decode(&w)
	if err != nil {
		t.Fatalf("unable to decode map: %v", err)
	}

	r, g, b, a := c.RGBA()
	bounds := img.Bounds()
	n := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			pr, pg, pb, pa := img.At(x, y).RGBA()
			if pr == r && pg == g && pb == b && pa == a {
				n++
			}
		}
	}
	return float64(n) / float64(bounds.Dx()*bounds.Dy())
}

func TestSave(t *testing.T) {
	tab, e := newData(t)

	m, err := migmap.New(tab, e, migmap.Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	name := filepath.Join(t.TempDir(), migmap.FileName(nil, nil))
	if err := m.Save(name); err != nil {
		t.Fatalf("unable to save map: %v", err)
	}
	if st, err := os.Stat(name); err != nil || st.Size() == 0 {
		t.Errorf("map file %q not written: %v", name, err)
	}
}

func TestNames(t *testing.T) {
	tests := []struct {
		orig  []string
		dest  []string
		title string
		file  string
	}{
		{nil, nil, "Outbreak Introduction FROM All TO All", "Migration_Map.pdf"},
		{[]string{"South", "Center"}, nil, "Outbreak Introduction FROM South, Center TO All", "Migration_Map_From_South-Center.pdf"},
		{nil, []string{"North-West"}, "Outbreak Introduction FROM All TO North-West", "Migration_Map_To_North-West.pdf"},
		{[]string{"A"}, []string{"B", "C"}, "Outbreak Introduction FROM A TO B, C", "Migration_Map_From_A_To_B-C.pdf"},
	}
	for _, tt := range tests {
		if got := migmap.Title(tt.orig, tt.dest); got != tt.title {
			t.Errorf("title: got %q, want %q", got, tt.title)
		}
		if got := migmap.FileName(tt.orig, tt.dest); got != tt.file {
			t.Errorf("file name: got %q, want %q", got, tt.file)
		}
	}
}

func TestParseScale(t *testing.T) {
	for _, s := range []string{"", "rainbow", "Iridescent", "incandescent"} {
		if _, err := migmap.ParseScale(s); err != nil {
			t.Errorf("scale %q: unexpected error: %v", s, err)
		}
	}
	if _, err := migmap.ParseScale("viridis"); err == nil {
		t.Errorf("scale %q: expecting error", "viridis")
	}
}
