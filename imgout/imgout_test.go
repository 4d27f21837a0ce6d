package imgout

import (
	"bytes"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"

	mandel "github.com/marben/mandel_threads"
)

func testBuffer() *mandel.Buffer {
	b := mandel.NewBuffer(3, 2)
	copy(b.Counts, []int{0, 1, 64, 256, 300, 10})
	return b
}

func TestWritePPM(t *testing.T) {
	var out bytes.Buffer
	if err := WritePPM(&out, testBuffer(), 256); err != nil {
		t.Fatal(err)
	}
	hdr := "P6\n3 2\n255\n"
	if !bytes.HasPrefix(out.Bytes(), []byte(hdr)) {
		t.Fatalf("header = %q", out.Bytes()[:len(hdr)])
	}
	pix := out.Bytes()[len(hdr):]
	if len(pix) != 3*6 {
		t.Fatalf("got %d pixel bytes, want 18", len(pix))
	}
	want := []uint8{0, 15, 127, 255, 255, 50}
	for i, g := range want {
		if pix[3*i] != g || pix[3*i+1] != g || pix[3*i+2] != g {
			t.Errorf("pixel %d = %v, want grey %d", i, pix[3*i:3*i+3], g)
		}
	}
}

func TestGrey_Saturates(t *testing.T) {
	if g := Grey(5000, 5000); g != 255 {
		t.Errorf("Grey(5000, 5000) = %d, want 255", g)
	}
	if g := Grey(5000, 100); g != Grey(100, 100) {
		t.Errorf("counts above maxIterations not clamped")
	}
}

func TestWritePPMZstd_RoundTrip(t *testing.T) {
	b := testBuffer()
	var plain, compressed bytes.Buffer
	if err := WritePPM(&plain, b, 256); err != nil {
		t.Fatal(err)
	}
	if err := WritePPMZstd(&compressed, b, 256); err != nil {
		t.Fatal(err)
	}

	dec, err := zstd.NewReader(&compressed)
	if err != nil {
		t.Fatal(err)
	}
	defer dec.Close()
	got, err := io.ReadAll(dec)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, plain.Bytes()) {
		t.Error("decompressed stream differs from the PPM")
	}
}

func TestWriteFile_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := WriteFile(path, PNG, testBuffer(), 256); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("bounds = %v", b)
	}
	inside := color.RGBAModel.Convert(img.At(0, 1)).(color.RGBA)
	if inside != (color.RGBA{A: 255}) {
		t.Errorf("inside pixel = %v, want black", inside)
	}
}

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{"": PPM, "ppm": PPM, ".png": PNG, "PPM.ZST": PPMZstd}
	for in, want := range tests {
		got, err := ParseFormat(in)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseFormat("gif"); err == nil {
		t.Error("ParseFormat(gif) succeeded")
	}
	if PPMZstd.Ext() != ".ppm.zst" {
		t.Errorf("Ext() = %q", PPMZstd.Ext())
	}
}
