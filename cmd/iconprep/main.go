package main

import (
	"fmt"
	"log"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ironsheep/iconprep/internal/config"
	"github.com/ironsheep/iconprep/internal/pipeline"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// CLI holds command line arguments. Flags override values from --config,
// which override the built-in defaults.
type CLI struct {
	Input   string           `arg:"" optional:"" help:"Source image (PNG, JPEG, GIF, BMP, TIFF or WebP). Defaults to ${default_input}."`
	Output  string           `short:"o" help:"Output directory, created if missing. Defaults to ${default_output}."`
	Config  string           `short:"c" type:"existingfile" help:"YAML file with input, output_dir, png and icon settings."`
	Version kong.VersionFlag `short:"v" help:"Print version information."`
}

// resolve builds the run configuration from defaults, the optional config
// file and the flags, in that order.
func (c *CLI) resolve() (*config.Config, error) {
	cfg := config.Default()
	if c.Config != "" {
		var err error
		if cfg, err = config.Load(c.Config); err != nil {
			return nil, err
		}
	}

	if c.Input != "" {
		cfg.Input = c.Input
	}
	if c.Output != "" {
		cfg.OutputDir = c.Output
	}

	return cfg, cfg.Validate()
}

func main() {
	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("iconprep"),
		kong.Description("Strip a light background from an image and generate app icon PNGs and a Windows .ico."),
		kong.UsageOnError(),
		kong.Vars{
			"version":        fmt.Sprintf("iconprep %s (built %s, commit %s)", Version, BuildTime, GitCommit),
			"default_input":  config.DefaultInput,
			"default_output": config.DefaultOutputDir,
		},
	)

	// Diagnostics go to stderr; stdout carries progress text
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	debug := os.Getenv("ICONPREP_LOG_LEVEL") == "debug"
	if debug {
		log.Printf("iconprep v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	cfg, err := cli.resolve()
	kctx.FatalIfErrorf(err)

	p := pipeline.New(cfg, os.Stdout)
	p.SetDebug(debug)
	if _, err := p.Run(); err != nil {
		log.Fatalf("Icon processing failed: %v", err)
	}
}
