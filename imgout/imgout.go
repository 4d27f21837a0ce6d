// Package imgout writes iteration-count buffers as images.
package imgout

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"

	mandel "github.com/marben/mandel_threads"
)

type Format string

const (
	PPM     Format = "ppm"
	PNG     Format = "png"
	PPMZstd Format = "ppm.zst"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case PPM, PNG, PPMZstd:
		return f, nil
	case "":
		return PPM, nil
	}
	return "", fmt.Errorf("unknown image format %q (ppm, png, ppm.zst)", s)
}

// Ext is the file extension including the leading dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Write encodes b to w in format f.
func Write(w io.Writer, f Format, b *mandel.Buffer, maxIterations int) error {
	switch f {
	case PPM:
		return WritePPM(w, b, maxIterations)
	case PNG:
		return png.Encode(w, Image(b, maxIterations))
	case PPMZstd:
		return WritePPMZstd(w, b, maxIterations)
	}
	return fmt.Errorf("unknown image format %q", f)
}

// WriteFile writes b to path, creating or truncating the file.
func WriteFile(path string, f Format, b *mandel.Buffer, maxIterations int) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	if err := Write(file, f, b, maxIterations); err != nil {
		file.Close()
		return fmt.Errorf("encode %q: %w", path, err)
	}
	return file.Close()
}

// WritePPM writes a binary (P6) PPM with one grey level per pixel.
func WritePPM(w io.Writer, b *mandel.Buffer, maxIterations int) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P6\n%d %d\n255\n", b.Width, b.Height)
	for _, v := range b.Counts {
		g := Grey(v, maxIterations)
		bw.Write([]byte{g, g, g})
	}
	return bw.Flush()
}

// WritePPMZstd writes the PPM stream compressed with zstd.
func WritePPMZstd(w io.Writer, b *mandel.Buffer, maxIterations int) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return fmt.Errorf("zstd.NewWriter: %w", err)
	}
	if err := WritePPM(enc, b, maxIterations); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// Grey maps an iteration count to a grey level with a square-root ramp that
// saturates at 256 iterations.
func Grey(count, maxIterations int) uint8 {
	v := float64(min(count, maxIterations)) / 256
	return uint8(math.Min(255, 255*math.Sqrt(v)))
}

// Image renders b with an HSV palette; points inside the set are black.
func Image(b *mandel.Buffer, maxIterations int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x, n := range b.Row(y) {
			var col color.RGBA
			if n >= maxIterations {
				col = color.RGBA{A: 255}
			} else {
				col = hsv(math.Mod(float64(n)*0.02, 1.0), 1, 1)
			}
			img.SetRGBA(x, y, col)
		}
	}
	return img
}

// Simple HSV → RGB
func hsv(h, s, v float64) color.RGBA {
	h = math.Mod(h, 1)
	i := int(h * 6)
	f := h*6 - float64(i)
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	case 5:
		r, g, b = v, p, q
	}
	return color.RGBA{uint8(r * 255), uint8(g * 255), uint8(b * 255), 255}
}
