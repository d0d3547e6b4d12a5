// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package bezier implements curved paths
// used to draw migrations as arcs.
package bezier

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Default values for the curve.
const (
	DefaultCurvature = 0.2
	DefaultPoints    = 30
)

// Curve returns n points of a quadratic Bezier curve
// between a start point (lon1, lat1)
// and an end point (lon2, lat2).
//
// Coordinates are taken as planar.
// The control point is placed at the midpoint of the chord
// displaced perpendicular to it,
// and upwards,
// in proportion to the curvature and the chord length.
//
// Points are evenly spaced in the curve parameter,
// the first point is the start
// and the last point is the end.
func Curve(lon1, lat1, lon2, lat2, curvature float64, n int) (x, y []float64) {
	if n <= 0 {
		return []float64{}, []float64{}
	}

	midLon := (lon1 + lon2) / 2
	midLat := (lat1 + lat2) / 2
	dist := math.Hypot(lon2-lon1, lat2-lat1)

	ctrlLon := midLon - (lat2-lat1)*curvature
	ctrlLat := midLat + (lon2-lon1)*curvature + dist*curvature

	t := make([]float64, n)
	if n > 1 {
		floats.Span(t, 0, 1)
		t[n-1] = 1
	}

	x = make([]float64, n)
	y = make([]float64, n)
	for i, v := range t {
		a := (1 - v) * (1 - v)
		b := 2 * (1 - v) * v
		c := v * v
		x[i] = a*lon1 + b*ctrlLon + c*lon2
		y[i] = a*lat1 + b*ctrlLat + c*lat2
	}
	return x, y
}
