package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// SourceInfo describes the image as it was decoded, before any conversion.
type SourceInfo struct {
	// Width is the source width in pixels.
	Width int `json:"width"`

	// Height is the source height in pixels.
	Height int `json:"height"`

	// Mode names the decoded pixel layout: "RGBA", "RGBA64", "RGB", "L", "I;16",
	// "P", "CMYK", "YCbCrA" or "unknown".
	Mode string `json:"mode"`

	// HasAlpha reports whether the decoded image carried its own opacity data.
	// When false, the loader synthesizes a fully opaque alpha channel.
	HasAlpha bool `json:"has_alpha"`
}

// Source is a loaded image normalized to 8-bit non-premultiplied RGBA.
type Source struct {
	Image *image.NRGBA
	Info  SourceInfo
}

// Load reads an image file and converts it to a 4-channel buffer.
//
// Parameters:
//   - path: Path to the image file. PNG, JPEG, GIF, BMP, TIFF and WebP are
//     supported.
//
// Returns:
//   - *Source: The converted buffer plus a description of the original layout.
//   - error: Non-nil if the file does not exist, cannot be read, or is not a
//     decodable image.
//
// # Alpha Handling
//
// The returned buffer is always *image.NRGBA. Sources without an alpha channel
// (JPEG, grayscale, CMYK) get A=255 for every pixel. Sources that already have
// alpha keep their channel values unpremultiplied, so the background threshold
// compares the colors as they were authored.
func Load(path string) (*Source, error) {
	img, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %q: %w", path, err)
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("failed to load image %q: image has no pixels", path)
	}

	mode, hasAlpha := describeModel(img)

	return &Source{
		Image: imaging.Clone(img),
		Info: SourceInfo{
			Width:    bounds.Dx(),
			Height:   bounds.Dy(),
			Mode:     mode,
			HasAlpha: hasAlpha,
		},
	}, nil
}

// describeModel maps the concrete Go image type to a short mode name.
func describeModel(img image.Image) (string, bool) {
	switch m := img.(type) {
	case *image.RGBA, *image.NRGBA:
		return "RGBA", true
	case *image.RGBA64, *image.NRGBA64:
		return "RGBA64", true
	case *image.NYCbCrA:
		return "YCbCrA", true
	case *image.YCbCr:
		return "RGB", false
	case *image.Gray:
		return "L", false
	case *image.Gray16:
		return "I;16", false
	case *image.CMYK:
		return "CMYK", false
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return "P", true
			}
		}
		return "P", false
	default:
		return "unknown", true
	}
}
