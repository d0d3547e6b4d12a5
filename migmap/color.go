// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package migmap

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/js-arias/blind"
)

// Gradienter is an interface for types
// that return a color gradient.
type Gradienter interface {
	Gradient(v float64) color.Color
}

// Incandescent is the incandescent color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_incandescent>.
type Incandescent struct{}

func (i Incandescent) Gradient(v float64) color.Color {
	return blind.Sequential(blind.Incandescent, clamp(v))
}

// Iridescent is the iridescent color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_iridescent>.
type Iridescent struct{}

func (i Iridescent) Gradient(v float64) color.Color {
	return blind.Sequential(blind.Iridescent, clamp(v))
}

// RainbowPurpleToRed is the rainbow color scheme
// of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_rainbow_smooth>
// starting at purple and ending at red.
type RainbowPurpleToRed struct{}

func (r RainbowPurpleToRed) Gradient(v float64) color.Color {
	return blind.Sequential(blind.RainbowPurpleToRed, clamp(v))
}

// ParseScale returns the gradient
// of a color scale name.
func ParseScale(name string) (Gradienter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "rainbow":
		return RainbowPurpleToRed{}, nil
	case "incandescent":
		return Incandescent{}, nil
	case "iridescent":
		return Iridescent{}, nil
	}
	return nil, fmt.Errorf("unknown color scale %q", name)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// withAlpha returns a color
// with the given opacity.
func withAlpha(c color.Color, alpha float64) color.Color {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	nc.A = uint8(clamp(alpha)*255 + 0.5)
	return nc
}
