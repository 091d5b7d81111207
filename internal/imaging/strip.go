package imaging

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// BackgroundThreshold is the brightness a pixel must exceed on all three color
// channels to be treated as background.
const BackgroundThreshold = 200

// StripStats summarizes what StripBackground removed.
type StripStats struct {
	// Removed is the number of pixels turned transparent.
	Removed int `json:"removed"`

	// Total is the number of pixels in the image.
	Total int `json:"total"`

	// Background is the mean color of the removed pixels as "#rrggbb",
	// averaged in linear RGB. Empty when nothing was removed.
	Background string `json:"background,omitempty"`
}

// IsBackground reports whether a color counts as light background.
func IsBackground(r, g, b uint8) bool {
	return r > BackgroundThreshold && g > BackgroundThreshold && b > BackgroundThreshold
}

// StripBackground replaces near-white pixels with transparent white.
//
// Every pixel whose red, green and blue channels all exceed
// BackgroundThreshold becomes (255,255,255,0). Every other pixel is copied
// unchanged, alpha included. The input is not modified; the result is a new
// buffer of the same size with its origin at (0,0).
//
// The transparent replacement is itself above the threshold, so stripping an
// already stripped image changes nothing.
func StripBackground(img image.Image) (*image.NRGBA, StripStats) {
	dst := imaging.Clone(img)
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()

	stats := StripStats{Total: w * h}
	var sumR, sumG, sumB float64

	for y := 0; y < h; y++ {
		row := dst.Pix[y*dst.Stride : y*dst.Stride+w*4]
		for i := 0; i < len(row); i += 4 {
			p := row[i : i+4 : i+4]
			if !IsBackground(p[0], p[1], p[2]) {
				continue
			}

			lr, lg, lb := colorful.Color{
				R: float64(p[0]) / 255,
				G: float64(p[1]) / 255,
				B: float64(p[2]) / 255,
			}.LinearRgb()
			sumR += lr
			sumG += lg
			sumB += lb
			stats.Removed++

			p[0], p[1], p[2], p[3] = 255, 255, 255, 0
		}
	}

	if stats.Removed > 0 {
		n := float64(stats.Removed)
		stats.Background = colorful.LinearRgb(sumR/n, sumG/n, sumB/n).Clamped().Hex()
	}

	return dst, stats
}
