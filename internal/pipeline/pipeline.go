// Package pipeline runs one icon preparation pass: load, strip background,
// normalize, export.
package pipeline

import (
	"fmt"
	"image"
	"io"
	"log"
	"path/filepath"

	"github.com/ironsheep/iconprep/internal/config"
	"github.com/ironsheep/iconprep/internal/export"
	"github.com/ironsheep/iconprep/internal/imaging"
)

// IcnsConverterURL is suggested for turning the largest PNG into a macOS icon.
const IcnsConverterURL = "https://cloudconvert.com/png-to-icns"

// Result describes a completed run.
type Result struct {
	Source    imaging.SourceInfo
	Strip     imaging.StripStats
	Normalize *imaging.NormalizeResult

	// Files lists every written path in the order it was written.
	Files []string
}

// Pipeline executes a Config once, writing progress text to out.
type Pipeline struct {
	cfg   *config.Config
	out   io.Writer
	debug bool
}

// New creates a pipeline for cfg. A nil out discards progress text.
func New(cfg *config.Config, out io.Writer) *Pipeline {
	if out == nil {
		out = io.Discard
	}
	return &Pipeline{cfg: cfg, out: out}
}

// SetDebug enables diagnostic logging through the standard logger.
func (p *Pipeline) SetDebug(debug bool) {
	p.debug = debug
}

// Run executes every stage in order and stops at the first error.
//
// The input is loaded before anything is written, so a missing or unreadable
// source leaves the output directory untouched. Files written before a later
// failure are left in place.
func (p *Pipeline) Run() (*Result, error) {
	if err := p.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	res := &Result{}

	p.printf("Loading image...\n")
	src, err := imaging.Load(p.cfg.Input)
	if err != nil {
		return nil, err
	}
	res.Source = src.Info
	p.printf("Original size: %s\n", size(image.Pt(src.Info.Width, src.Info.Height)))
	p.printf("Original mode: %s\n", src.Info.Mode)
	p.debugf("source %s: has_alpha=%v", p.cfg.Input, src.Info.HasAlpha)

	p.printf("Processing transparency...\n")
	stripped, stats := imaging.StripBackground(src.Image)
	res.Strip = stats
	p.debugf("stripped %d of %d pixels, mean background %s", stats.Removed, stats.Total, stats.Background)

	p.printf("Finding content bounds...\n")
	norm := imaging.Normalize(stripped)
	res.Normalize = norm
	if norm.HasContent {
		p.debugf("content box %v", norm.Box)
		p.printf("Cropped to: %s\n", size(norm.Cropped))
		p.printf("Padded to: %s\n", size(norm.Padded))
	} else {
		p.printf("No visible content found, skipping crop\n")
	}
	if norm.Squared {
		p.printf("Squared to: %s\n", size(norm.Image.Bounds().Size()))
	}

	exp := export.New(p.cfg.OutputDir, p.out)
	if err := exp.EnsureDir(); err != nil {
		return res, err
	}

	if len(p.cfg.PNG) > 0 {
		p.printf("\nGenerating PNG files...\n")
		files, err := exp.WritePNGs(norm.Image, targets(p.cfg.PNG))
		res.Files = append(res.Files, files...)
		if err != nil {
			return res, err
		}
	}

	if p.cfg.Icon.Name != "" {
		p.printf("\nGenerating Windows ICO file...\n")
		path, err := exp.WriteICO(norm.Image, p.cfg.Icon.Name, p.cfg.Icon.Sizes)
		if err != nil {
			return res, err
		}
		res.Files = append(res.Files, path)
	}

	p.summary()
	return res, nil
}

// summary prints the generated file list and the macOS icon reminder.
func (p *Pipeline) summary() {
	p.printf("\n[SUCCESS] Icon processing complete!\n")
	p.printf("\nGenerated files in %s:\n", p.cfg.OutputDir)
	for _, t := range p.cfg.PNG {
		p.printf("  - %s (%dx%d)\n", t.Name, t.Size, t.Size)
	}
	if p.cfg.Icon.Name != "" {
		p.printf("  - %s (Windows)\n", p.cfg.Icon.Name)
	}

	p.printf("\nNote: macOS .icns file needs to be created separately\n")
	p.printf("Recommended tool: %s\n", IcnsConverterURL)
	if largest, ok := largestPNG(p.cfg.PNG); ok {
		p.printf("Upload: %s\n", filepath.Join(p.cfg.OutputDir, largest.Name))
	}
}

func (p *Pipeline) printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *Pipeline) debugf(format string, args ...any) {
	if p.debug {
		log.Printf(format, args...)
	}
}

func targets(pngs []config.PNGTarget) []export.Target {
	out := make([]export.Target, len(pngs))
	for i, t := range pngs {
		out[i] = export.Target{Name: t.Name, Size: t.Size}
	}
	return out
}

// largestPNG picks the target with the biggest size; the first wins ties.
func largestPNG(pngs []config.PNGTarget) (config.PNGTarget, bool) {
	if len(pngs) == 0 {
		return config.PNGTarget{}, false
	}
	best := pngs[0]
	for _, t := range pngs[1:] {
		if t.Size > best.Size {
			best = t
		}
	}
	return best, true
}

// size formats dimensions as "(W, H)".
func size(pt image.Point) string {
	return fmt.Sprintf("(%d, %d)", pt.X, pt.Y)
}
