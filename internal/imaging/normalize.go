package imaging

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// PaddingRatio is the share of the longer content side added as a transparent
// margin on every side.
const PaddingRatio = 0.1

// NormalizeResult contains the square buffer produced by Normalize along with
// the geometry of each step, for progress reporting.
type NormalizeResult struct {
	// Image is the square output buffer.
	Image *image.NRGBA

	// HasContent is false when every input pixel was transparent. In that case
	// cropping and padding were skipped.
	HasContent bool

	// Box is the content bounding box in input coordinates. Zero when
	// HasContent is false.
	Box image.Rectangle

	// Cropped is the size after cropping (the input size if nothing was cropped).
	Cropped image.Point

	// Padding is the margin added per side by Pad. Zero when Pad was skipped.
	Padding int

	// Padded is the size after padding. Equal to Cropped when Pad was skipped.
	Padded image.Point

	// Squared reports whether the final square-ify step had to run.
	Squared bool
}

// BoundingBox finds the smallest rectangle enclosing every pixel whose alpha
// is non-zero.
//
// Returns:
//   - image.Rectangle: The box in the image's own coordinate space, with Min
//     inclusive and Max exclusive.
//   - bool: False when the image has no visible pixel at all.
func BoundingBox(img *image.NRGBA) (image.Rectangle, bool) {
	b := img.Bounds()
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1

	for y := b.Min.Y; y < b.Max.Y; y++ {
		off := img.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.Pix[off+3] != 0 {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				maxY = y
			}
			off += 4
		}
	}

	if maxX < minX {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

// CropToContent crops the image to its bounding box.
//
// When the image has no visible pixel the input is returned as is and ok is
// false. Otherwise the result is a new buffer with its origin at (0,0).
func CropToContent(img *image.NRGBA) (cropped *image.NRGBA, box image.Rectangle, ok bool) {
	box, ok = BoundingBox(img)
	if !ok {
		return img, box, false
	}
	return imaging.Crop(img, box), box, true
}

// PaddingFor returns the per-side margin and resulting canvas side for
// content of the given size.
//
//	padding  = floor(PaddingRatio * max(w, h))
//	new_size = max(w, h) + 2*padding
func PaddingFor(w, h int) (padding, size int) {
	side := max(w, h)
	padding = int(float64(side) * PaddingRatio)
	return padding, side + 2*padding
}

// Pad centers the image on a transparent square canvas with a margin of
// PaddingRatio times its longer side.
//
// The content's top-left corner lands at ((size-w)/2, (size-h)/2), using
// integer division.
func Pad(img image.Image) *image.NRGBA {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	_, size := PaddingFor(w, h)
	return centerOn(img, size)
}

// Square centers a non-square image on a transparent canvas whose side is the
// image's longer dimension. Square images are returned unchanged.
func Square(img *image.NRGBA) *image.NRGBA {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w == h {
		return img
	}
	return centerOn(img, max(w, h))
}

// Normalize runs the bounding box, crop, pad and square-ify steps in order.
//
// A fully transparent input skips crop and pad and is only squared. The
// returned image is always square.
func Normalize(img *image.NRGBA) *NormalizeResult {
	res := &NormalizeResult{}

	cur, box, ok := CropToContent(img)
	res.HasContent = ok
	res.Cropped = cur.Bounds().Size()

	if ok {
		res.Box = box
		res.Padding, _ = PaddingFor(res.Cropped.X, res.Cropped.Y)
		cur = Pad(cur)
	}
	res.Padded = cur.Bounds().Size()

	if res.Padded.X != res.Padded.Y {
		cur = Square(cur)
		res.Squared = true
	}

	res.Image = cur
	return res
}

// centerOn pastes img onto a new transparent size x size canvas at the
// floor-divided centering offset.
func centerOn(img image.Image, size int) *image.NRGBA {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	canvas := imaging.New(size, size, color.NRGBA{})
	return imaging.Paste(canvas, img, image.Pt((size-w)/2, (size-h)/2))
}
