// Package export writes a normalized square image out as resized PNG files
// and as a multi-resolution Windows icon.
package export

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	ico "github.com/sergeymakinen/go-ico"
)

// MaxIconSize is the largest resolution an ICO directory entry can describe.
const MaxIconSize = 256

// Target names one square PNG output and its side length in pixels.
type Target struct {
	Name string
	Size int
}

// Exporter writes output files into Dir and reports each file on Out.
type Exporter struct {
	Dir string
	Out io.Writer
}

// New creates an Exporter. A nil out discards progress text.
func New(dir string, out io.Writer) *Exporter {
	if out == nil {
		out = io.Discard
	}
	return &Exporter{Dir: dir, Out: out}
}

// EnsureDir creates the output directory and any missing parents. An existing
// directory is not an error.
func (e *Exporter) EnsureDir() error {
	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %q: %w", e.Dir, err)
	}
	return nil
}

// Resize scales img to a size x size square with the Lanczos filter.
func Resize(img image.Image, size int) *image.NRGBA {
	return imaging.Resize(img, size, size, imaging.Lanczos)
}

// WritePNGs resizes img once per target and writes each result as PNG.
//
// Targets are written in order and each file is reported as soon as it is
// on disk. The first failure stops the export; files already written stay in
// place. The returned slice holds the paths written so far.
func (e *Exporter) WritePNGs(img image.Image, targets []Target) ([]string, error) {
	written := make([]string, 0, len(targets))

	for _, t := range targets {
		if t.Size <= 0 {
			return written, fmt.Errorf("invalid size %d for %s", t.Size, t.Name)
		}

		path := filepath.Join(e.Dir, t.Name)
		if err := writePNG(path, Resize(img, t.Size)); err != nil {
			return written, err
		}
		written = append(written, path)

		fmt.Fprintf(e.Out, "[OK] Created %s (%dx%d)\n", t.Name, t.Size, t.Size)
	}

	return written, nil
}

// WriteICO resizes img to every size in sizes and packs the results into one
// ICO file named name.
//
// Sizes must lie in 1..MaxIconSize. Entries are stored in the order given.
func (e *Exporter) WriteICO(img image.Image, name string, sizes []int) (string, error) {
	if len(sizes) == 0 {
		return "", fmt.Errorf("no icon sizes for %s", name)
	}

	frames := make([]image.Image, 0, len(sizes))
	for _, s := range sizes {
		if s <= 0 || s > MaxIconSize {
			return "", fmt.Errorf("invalid icon size %d for %s: must be 1-%d", s, name, MaxIconSize)
		}
		frames = append(frames, Resize(img, s))
	}

	var buf bytes.Buffer
	if err := ico.EncodeAll(&buf, frames); err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", name, err)
	}

	path := filepath.Join(e.Dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Fprintf(e.Out, "[OK] Created %s (multi-resolution)\n", name)
	return path, nil
}

func writePNG(path string, img image.Image) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if err := imaging.Encode(f, img, imaging.PNG); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}
