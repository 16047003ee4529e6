// Package codegen walks a usage-page registry and emits the generated C#
// declarations: one enum and one lookup class per page plus the global page
// registry.
package codegen

import (
	"context"
	"log/slog"
	"time"

	"github.com/hidio/usagegen/internal/codegen/common"
	"github.com/hidio/usagegen/internal/codegen/csharp"
	"github.com/hidio/usagegen/internal/usages"
)

// Config carries the run-wide generation settings.
type Config struct {
	// Namespace is the root namespace of the generated declarations.
	Namespace string
	// MaxGenerated caps materialized range-generator entries per page.
	MaxGenerated int
	// Version is the specification revision recorded in file banners.
	Version string
	// GeneratedAt is the timestamp recorded in file banners.
	GeneratedAt time.Time
}

// Generator renders a registry of usage pages through an Emitter.
type Generator struct {
	cfg    Config
	logger *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Generator {
	return &Generator{cfg: cfg, logger: logger}
}

// Generate emits every artifact for the registry and returns the total
// number of usage entries emitted. Cancellation is checked once per page;
// a cancelled run stops before starting the next artifact.
func (g *Generator) Generate(ctx context.Context, reg *usages.Registry, em Emitter) (int, error) {
	rc := csharp.Context{
		Namespace:    g.cfg.Namespace,
		MaxGenerated: g.cfg.MaxGenerated,
		Header:       common.FileHeader(g.cfg.Version, g.cfg.GeneratedAt),
	}

	total := 0
	for _, page := range reg.Pages() {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		n, err := csharp.GenerateEnum(g.logger, em, page, rc)
		if err != nil {
			return total, err
		}
		total += n
		if err := ctx.Err(); err != nil {
			return total, err
		}
		if err := csharp.GenerateLookup(g.logger, em, page, rc); err != nil {
			return total, err
		}
	}

	if err := ctx.Err(); err != nil {
		return total, err
	}
	if err := csharp.GenerateRegistry(g.logger, em, reg.Pages(), rc); err != nil {
		return total, err
	}
	return total, nil
}
