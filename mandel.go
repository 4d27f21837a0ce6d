package mandel

import (
	"fmt"
	"math"
)

// View is a rectangular window of the complex plane mapped onto a Width × Height pixel grid.
// Pixel (0, 0) maps to the origin; x grows along the real axis, y along the imaginary one.
type View struct {
	OriginReal, OriginImag float64
	SpanX, SpanY           float64
	Width, Height          int
}

// ViewFromBounds builds a View from the plane bounds [x0, x1] × [y0, y1].
func ViewFromBounds(x0, x1, y0, y1 float64, width, height int) View {
	return View{
		OriginReal: x0,
		OriginImag: y0,
		SpanX:      x1 - x0,
		SpanY:      y1 - y0,
		Width:      width,
		Height:     height,
	}
}

// Bounds returns the plane bounds covered by the view.
func (v View) Bounds() (x0, x1, y0, y1 float64) {
	return v.OriginReal, v.OriginReal + v.SpanX, v.OriginImag, v.OriginImag + v.SpanY
}

// Scale multiplies the view bounds by scale and then shifts them.
// It is used to define zoomed presets relative to a base view.
func (v View) Scale(scale, shiftX, shiftY float64) View {
	v.OriginReal = v.OriginReal*scale + shiftX
	v.OriginImag = v.OriginImag*scale + shiftY
	v.SpanX *= scale
	v.SpanY *= scale
	return v
}

// Resize returns the same plane window rendered at w × h pixels.
func (v View) Resize(w, h int) View {
	v.Width, v.Height = w, h
	return v
}

// Pixels is the number of pixels of the target image.
func (v View) Pixels() int {
	return v.Width * v.Height
}

// Validate rejects views that cannot be rendered.
func (v View) Validate() error {
	if v.Width <= 0 || v.Height <= 0 {
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidView, v.Width, v.Height)
	}
	if v.Width > math.MaxInt/v.Height {
		return fmt.Errorf("%w: image size %dx%d overflows", ErrInvalidView, v.Width, v.Height)
	}
	for _, f := range []float64{v.OriginReal, v.OriginImag, v.SpanX, v.SpanY} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("%w: non-finite coordinate %v", ErrInvalidView, f)
		}
	}
	return nil
}

// Point maps pixel (x, y) to the complex plane.
func (v View) Point(x, y int) complex128 {
	re := v.OriginReal + (float64(x)/float64(v.Width))*v.SpanX
	im := v.OriginImag + (float64(y)/float64(v.Height))*v.SpanY
	return complex(re, im)
}

func (v View) String() string {
	x0, x1, y0, y1 := v.Bounds()
	return fmt.Sprintf("[%g, %g]x[%g, %g] @ %dx%d", x0, x1, y0, y1, v.Width, v.Height)
}
