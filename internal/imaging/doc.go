// Package imaging implements the pixel stages of icon preparation: loading a
// source image, stripping its light background, and normalizing the remaining
// content into a padded square.
//
// Every stage takes a buffer and returns a new one. Inputs are never modified,
// so each stage can be tested on its own and the stages can be chained without
// shared state.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For rectangles, Min is inclusive (top-left) and Max is exclusive
//     (bottom-right), matching image.Rectangle
//
// # Pixel Representation
//
// Buffers are *image.NRGBA: four 8-bit channels (red, green, blue, alpha),
// not premultiplied. A pixel is visible when its alpha is non-zero.
//
// # Pipeline
//
//  1. Load: decode the file and convert it to NRGBA, synthesizing opaque
//     alpha when the source has none.
//
//  2. StripBackground: pixels with R, G and B all above BackgroundThreshold
//     become transparent white (255,255,255,0).
//
//  3. Normalize: crop to the bounding box of visible pixels, center on a
//     transparent canvas with a PaddingRatio margin, and square the canvas
//     when no content was found.
//
// # Error Handling
//
// Only Load can fail, on missing files or undecodable data. The other stages
// are total: an image with no visible pixels is not an error, it simply skips
// cropping and padding.
package imaging
