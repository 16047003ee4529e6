package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hidio/usagegen/internal/codegen"
	"github.com/hidio/usagegen/internal/pipeline"
	"github.com/hidio/usagegen/internal/report"
	"github.com/hidio/usagegen/internal/version"
)

// Generate runs the acquisition-and-generation pipeline once.
type Generate struct {
	Namespace    string `help:"Root namespace for the generated declarations" default:"HidIO.Usages" env:"USAGEGEN_NAMESPACE"`
	Source       string `help:"Specification document location (http(s) URL or file path)" default:"https://usb.org/sites/default/files/hut1_5.pdf" env:"USAGEGEN_SOURCE"`
	Attachment   string `help:"Name of the structured-data attachment embedded in the document" default:"HidUsageTables.json" env:"USAGEGEN_ATTACHMENT"`
	CacheDir     string `help:"Cache directory; relative paths resolve against the project root" default:".cache/usagegen" env:"USAGEGEN_CACHE_DIR"`
	ProjectRoot  string `help:"Project root directory (defaults to the working directory)" env:"USAGEGEN_PROJECT_ROOT"`
	FromSource   bool   `help:"Bypass caches and fetch the specification from its origin" env:"USAGEGEN_FROM_SOURCE"`
	MaxGenerated int    `help:"Maximum generated-range entries materialized per page" default:"16" env:"USAGEGEN_MAX_GENERATED"`
	Output       string `help:"Output directory for the generated declarations" default:"./generated" env:"USAGEGEN_OUTPUT"`
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(logger *slog.Logger) error {
	if g.MaxGenerated < 0 {
		return fmt.Errorf("max-generated must be non-negative, got %d", g.MaxGenerated)
	}
	root := g.ProjectRoot
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("resolve working directory: %w", err)
		}
		root = wd
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting usage table generation",
		"source", g.Source, "attachment", g.Attachment, "output", g.Output)

	p := pipeline.New(pipeline.Options{
		Namespace:       g.Namespace,
		SpecSource:      g.Source,
		AttachmentName:  g.Attachment,
		CacheDir:        g.CacheDir,
		ProjectRoot:     root,
		Force:           g.FromSource,
		MaxGenerated:    g.MaxGenerated,
		FallbackVersion: version.Get(),
	}, logger, report.NewLogReporter(logger), &codegen.DirEmitter{Dir: g.Output})

	err := p.Run(ctx)
	if errors.Is(err, context.Canceled) {
		// Already reported through the diagnostic channel.
		return nil
	}
	return err
}
