// Package views holds the named regions of the complex plane the tools can render.
package views

import (
	"fmt"

	mandel "github.com/marben/mandel_threads"
)

const (
	DefaultWidth  = 1600
	DefaultHeight = 1200
)

type Preset struct {
	Name string
	View mandel.View
}

// whole set, the reference view for speedup measurements
var full = mandel.ViewFromBounds(-2, 1, -1, 1, DefaultWidth, DefaultHeight)

// Presets are addressed by 1-based index on the command line.
var Presets = []Preset{
	{"full set", full},
	{"zoom", full.Scale(0.015, -0.986, 0.30)},

	// Classic regions / landmarks in the Mandelbrot set
	{"seahorse valley", mandel.ViewFromBounds(-0.8, -0.7, 0.05, 0.15, DefaultWidth, DefaultHeight)},
	{"elephant valley", mandel.ViewFromBounds(-1.85, -1.75, -0.10, -0.02, DefaultWidth, DefaultHeight)},
	{"spiral minibrot", mandel.ViewFromBounds(-0.7435, -0.7420, 0.1310, 0.1325, DefaultWidth, DefaultHeight)},
	{"triple spiral", mandel.ViewFromBounds(-0.7480, -0.7450, 0.0950, 0.0980, DefaultWidth, DefaultHeight)},
	{"valley of the dragon", mandel.ViewFromBounds(-0.7400, -0.7350, 0.1800, 0.1850, DefaultWidth, DefaultHeight)},
	{"minibrot in a mini-spiral", mandel.ViewFromBounds(-1.7390, -1.7375, -0.0235, -0.0220, DefaultWidth, DefaultHeight)},
}

// Get returns preset index (1-based) rendered at width × height.
// Non-positive dimensions keep the preset's default size.
func Get(index, width, height int) (mandel.View, error) {
	if index < 1 || index > len(Presets) {
		return mandel.View{}, fmt.Errorf("view %d does not exist, choose 1..%d", index, len(Presets))
	}
	v := Presets[index-1].View
	if width > 0 {
		v.Width = width
	}
	if height > 0 {
		v.Height = height
	}
	return v, nil
}

func Name(index int) string {
	if index < 1 || index > len(Presets) {
		return ""
	}
	return Presets[index-1].Name
}
