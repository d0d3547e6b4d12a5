// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package migmap draws migration events
// as curved arcs between locations,
// in a plate carrée (equirectangular) plane.
package migmap

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/js-arias/phymig/bezier"
	"github.com/js-arias/phymig/geoloc"
	"github.com/js-arias/phymig/migration"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrNoEvents is returned when there are no events
// to draw.
var ErrNoEvents = errors.New("no migrations found with these criteria")

// Default size of the map.
const (
	Width  = 12 * vg.Inch
	Height = 8 * vg.Inch
)

// Options are the options used to draw a map.
type Options struct {
	// Origins and Destinations filter the events.
	// If empty,
	// all events are used.
	Origins      []string
	Destinations []string

	// Curvature of the arcs.
	Curvature float64

	// Points is the number of points of each arc.
	// If zero,
	// bezier.DefaultPoints is used.
	Points int

	// Gradient is the color scale of the arcs.
	// By default,
	// RainbowPurpleToRed is used.
	Gradient Gradienter

	// Background is an optional image
	// in plate carrée projection
	// (for example, the contour of the continents)
	// drawn below the arcs,
	// covering the whole globe.
	Background image.Image
}

// A Map is a map of migration events.
type Map struct {
	p *plot.Plot

	// Arcs is the number of drawn events.
	Arcs int

	// Skipped is the number of events
	// without a location for the origin or the destination.
	Skipped int

	// Background is true if a background image was drawn.
	Background bool
}

var markerColor = color.RGBA{255, 0, 0, 255}

// New creates a map of the given events.
//
// The color of each arc is set by the year of the event
// scaled to the range of years of all the events,
// and its opacity by the time of the event
// relative to the most recent filtered event.
// If no event is left after filtering,
// it returns ErrNoEvents.
func New(locs *geoloc.Table, events *migration.Events, opts Options) (*Map, error) {
	minT, maxT, ok := events.TimeRange()
	if !ok {
		return nil, ErrNoEvents
	}
	target := events.Filter(opts.Origins, opts.Destinations)
	if target.Len() == 0 {
		return nil, ErrNoEvents
	}
	_, maxTarget, _ := target.TimeRange()

	if opts.Points == 0 {
		opts.Points = bezier.DefaultPoints
	}
	if opts.Gradient == nil {
		opts.Gradient = RainbowPurpleToRed{}
	}

	minYear := int(math.Floor(minT))
	maxYear := int(math.Floor(maxT))
	span := maxYear - minYear
	if span == 0 {
		span = 1
	}

	p := plot.New()
	p.Title.Text = Title(opts.Origins, opts.Destinations)
	p.X.Label.Text = "longitude"
	p.Y.Label.Text = "latitude"
	if opts.Background != nil {
		p.Add(plotter.NewImage(opts.Background, -180, -90, 180, 90))
	}
	p.Add(plotter.NewGrid())

	m := &Map{p: p, Background: opts.Background != nil}
	for _, l := range target.Locate(locs) {
		if !l.Complete() {
			m.Skipped++
			continue
		}
		x, y := bezier.Curve(l.From.Lon, l.From.Lat, l.To.Lon, l.To.Lat, opts.Curvature, opts.Points)
		xys := make(plotter.XYs, len(x))
		for i := range x {
			xys[i].X = x[i]
			xys[i].Y = y[i]
		}
		ln, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("event %s -> %s: %v", l.Origin, l.Destination, err)
		}

		year := int(math.Floor(l.Time))
		c := opts.Gradient.Gradient(float64(year-minYear) / float64(span))
		alpha := 1.0
		if maxTarget != 0 {
			alpha = l.Time / maxTarget
		}
		ln.LineStyle.Color = withAlpha(c, alpha)
		ln.LineStyle.Width = vg.Points(2)
		p.Add(ln)
		m.Arcs++
	}

	if err := addLocations(p, locs); err != nil {
		return nil, err
	}
	addYearKey(p, opts.Gradient, minYear, maxYear, span)

	p.X.Min, p.X.Max = -180, 180
	p.Y.Min, p.Y.Max = -90, 90
	return m, nil
}

func addLocations(p *plot.Plot, locs *geoloc.Table) error {
	pts := locs.Points()
	if len(pts) == 0 {
		return nil
	}

	xys := make(plotter.XYs, len(pts))
	names := make([]string, len(pts))
	for i, pt := range pts {
		xys[i].X = pt.Lon
		xys[i].Y = pt.Lat
		names[i] = pt.Name
	}

	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("while adding locations: %v", err)
	}
	sc.GlyphStyle.Color = markerColor
	sc.GlyphStyle.Radius = vg.Points(3)
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(sc)

	lb, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    xys,
		Labels: names,
	})
	if err != nil {
		return fmt.Errorf("while adding location names: %v", err)
	}
	for i := range lb.TextStyle {
		lb.TextStyle[i].Font.Size = vg.Points(7)
	}
	lb.Offset = vg.Point{X: vg.Points(4), Y: vg.Points(2)}
	p.Add(lb)
	return nil
}

// addYearKey adds a legend
// with the color of each year.
func addYearKey(p *plot.Plot, g Gradienter, minYear, maxYear, span int) {
	step := 1 + (maxYear-minYear)/10
	for y := minYear; y <= maxYear; y += step {
		ln := &plotter.Line{}
		ln.LineStyle.Color = g.Gradient(float64(y-minYear) / float64(span))
		ln.LineStyle.Width = vg.Points(4)
		p.Legend.Add(strconv.Itoa(y), ln)
	}
	p.Legend.Top = true
}

// Title returns the title of a map
// with the given filters.
func Title(origins, destinations []string) string {
	from := "All"
	if len(origins) > 0 {
		from = strings.Join(origins, ", ")
	}
	to := "All"
	if len(destinations) > 0 {
		to = strings.Join(destinations, ", ")
	}
	return fmt.Sprintf("Outbreak Introduction FROM %s TO %s", from, to)
}

// FileName returns the default file name
// of a map with the given filters.
func FileName(origins, destinations []string) string {
	parts := []string{"Migration_Map"}
	if len(origins) > 0 {
		parts = append(parts, "From_"+strings.Join(origins, "-"))
	}
	if len(destinations) > 0 {
		parts = append(parts, "To_"+strings.Join(destinations, "-"))
	}
	return strings.Join(parts, "_") + ".pdf"
}

// Save saves the map to a file.
// The format is defined by the file extension
// (for example, ".pdf", ".svg", or ".png").
func (m *Map) Save(name string) error {
	if err := m.p.Save(Width, Height, name); err != nil {
		return fmt.Errorf("while saving map %q: %v", name, err)
	}
	return nil
}

// Encode writes the map to w
// using the indicated format
// (for example, "svg", "pdf", or "png").
func (m *Map) Encode(w io.Writer, format string) error {
	wt, err := m.p.WriterTo(Width, Height, format)
	if err != nil {
		return err
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("while writing map: %v", err)
	}
	return nil
}
