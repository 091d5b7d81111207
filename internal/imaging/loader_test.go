package imaging

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// filledNRGBA creates an in-memory image filled with a single color.
func filledNRGBA(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// writeTestPNG encodes img as PNG into a temp directory and returns its path.
func writeTestPNG(t *testing.T, img image.Image) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "source.png")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestLoad_RGBA(t *testing.T) {
	src := filledNRGBA(30, 20, color.NRGBA{10, 20, 30, 128})
	path := writeTestPNG(t, src)

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got.Info.Width != 30 || got.Info.Height != 20 {
		t.Errorf("dimensions: got %dx%d, want 30x20", got.Info.Width, got.Info.Height)
	}
	if got.Info.Mode != "RGBA" {
		t.Errorf("Mode: got %s, want RGBA", got.Info.Mode)
	}
	if !got.Info.HasAlpha {
		t.Error("HasAlpha should be true for an NRGBA source")
	}

	// Channels must stay unpremultiplied
	c := got.Image.NRGBAAt(5, 5)
	if c != (color.NRGBA{10, 20, 30, 128}) {
		t.Errorf("pixel: got %v, want {10 20 30 128}", c)
	}
}

func TestLoad_SynthesizesOpaqueAlpha(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
		mode string
	}{
		{
			name: "gray",
			img: func() image.Image {
				g := image.NewGray(image.Rect(0, 0, 8, 8))
				for i := range g.Pix {
					g.Pix[i] = 90
				}
				return g
			}(),
			mode: "L",
		},
		{
			name: "paletted opaque",
			img: func() image.Image {
				p := image.NewPaletted(image.Rect(0, 0, 8, 8), color.Palette{
					color.RGBA{200, 0, 0, 255},
					color.RGBA{0, 0, 200, 255},
				})
				return p
			}(),
			mode: "P",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(writeTestPNG(t, tt.img))
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if got.Info.Mode != tt.mode {
				t.Errorf("Mode: got %s, want %s", got.Info.Mode, tt.mode)
			}
			if got.Info.HasAlpha {
				t.Error("HasAlpha should be false")
			}
			for i := 3; i < len(got.Image.Pix); i += 4 {
				if got.Image.Pix[i] != 255 {
					t.Fatalf("alpha at byte %d: got %d, want 255", i, got.Image.Pix[i])
				}
			}
		})
	}
}

func TestLoad_JPEG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "source.jpg")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	if err := jpeg.Encode(f, filledNRGBA(16, 16, color.NRGBA{0, 128, 0, 255}), nil); err != nil {
		t.Fatalf("failed to encode jpeg: %v", err)
	}
	f.Close()

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Info.Mode != "RGB" {
		t.Errorf("Mode: got %s, want RGB", got.Info.Mode)
	}
	if got.Image.NRGBAAt(8, 8).A != 255 {
		t.Error("JPEG source should load fully opaque")
	}
}

func TestLoad_NonExistent(t *testing.T) {
	_, err := Load("/nonexistent/path/to/image.png")
	if err == nil {
		t.Error("Load should fail for non-existent file")
	}
}

func TestLoad_InvalidImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invalid.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, err := Load(path)
	if err == nil {
		t.Error("Load should fail for invalid image data")
	}
}
