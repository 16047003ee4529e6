// Package pipeline drives one generation run: resolve the configured
// locations, pick a cache tier, acquire and parse the usage-table data, and
// render the generated declarations. Data-acquisition problems degrade the
// run to an empty table and a diagnostic; they never fail the build.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hidio/usagegen/internal/codegen"
	"github.com/hidio/usagegen/internal/fetch"
	"github.com/hidio/usagegen/internal/pdfattach"
	"github.com/hidio/usagegen/internal/report"
	"github.com/hidio/usagegen/internal/usages"
)

// State names the pipeline's current phase.
type State int

const (
	StateIdle State = iota
	StateResolvingOptions
	StateSelectingCacheTier
	StateReadingCache
	StateFetchingOrigin
	StateParsing
	StateGenerating
	StateCompleted
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateResolvingOptions:
		return "resolving-options"
	case StateSelectingCacheTier:
		return "selecting-cache-tier"
	case StateReadingCache:
		return "reading-cache"
	case StateFetchingOrigin:
		return "fetching-origin"
	case StateParsing:
		return "parsing"
	case StateGenerating:
		return "generating"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Options configures one run.
type Options struct {
	Namespace      string
	SpecSource     string
	AttachmentName string
	CacheDir       string
	ProjectRoot    string
	Force          bool
	MaxGenerated   int
	// FallbackVersion is recorded in banners when the table carries no
	// version of its own (degraded runs).
	FallbackVersion string
}

// Pipeline executes a single sequential generation pass.
type Pipeline struct {
	opts     Options
	fetchCfg fetch.Config
	logger   *slog.Logger
	reporter report.Reporter
	emitter  codegen.Emitter
	state    State
}

func New(opts Options, logger *slog.Logger, rep report.Reporter, em codegen.Emitter) *Pipeline {
	return &Pipeline{
		opts:     opts,
		logger:   logger,
		reporter: rep,
		emitter:  em,
		state:    StateIdle,
	}
}

// WithFetchConfig overrides origin-fetch behavior, mainly for tests.
func (p *Pipeline) WithFetchConfig(cfg fetch.Config) *Pipeline {
	p.fetchCfg = cfg
	return p
}

// State returns the phase the pipeline last entered.
func (p *Pipeline) State() State { return p.state }

func (p *Pipeline) setState(s State) {
	p.state = s
	p.logger.Debug("pipeline state", "state", s.String())
}

// Run executes the pipeline once. It returns an error only for cancellation
// and for output-write failures; every data-acquisition problem is reported
// as a diagnostic and degrades the table instead.
func (p *Pipeline) Run(ctx context.Context) error {
	started := time.Now()

	p.setState(StateResolvingOptions)
	resolved := fetch.Resolve(fetch.Options{
		SpecSource:     p.opts.SpecSource,
		AttachmentName: p.opts.AttachmentName,
		CacheDir:       p.opts.CacheDir,
		ProjectRoot:    p.opts.ProjectRoot,
		Force:          p.opts.Force,
	}, p.reporter)
	if err := p.checkCancelled(ctx); err != nil {
		return err
	}

	p.setState(StateSelectingCacheTier)
	tier := fetch.SelectTier(resolved)
	p.logger.Info("selected table source", "tier", tier.String())

	table, err := p.acquire(ctx, tier, resolved)
	if err != nil {
		return err
	}
	// A degraded cache tier escalates to the origin exactly once. The
	// origin tier has no further fallback.
	if table.IsEmpty() && tier.IsCache() {
		p.logger.Info("cache tier yielded no data, escalating to origin")
		table, err = p.acquire(ctx, fetch.TierOrigin, resolved)
		if err != nil {
			return err
		}
	}

	p.setState(StateGenerating)
	version := table.Version
	if table.IsEmpty() {
		version = p.opts.FallbackVersion
	}

	total := 0
	pages := 0
	if !table.IsEmpty() {
		reg := usages.NewRegistry(table)
		pages = reg.Len()
		gen := codegen.New(codegen.Config{
			Namespace:    p.opts.Namespace,
			MaxGenerated: p.opts.MaxGenerated,
			Version:      version,
			GeneratedAt:  time.Now(),
		}, p.logger)
		total, err = gen.Generate(ctx, reg, p.emitter)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return p.cancelled(ctx)
			}
			return fmt.Errorf("generate declarations: %w", err)
		}
	}
	if err := p.checkCancelled(ctx); err != nil {
		return err
	}

	p.setState(StateCompleted)
	p.reporter.Report(report.Diagnostic{
		Code:     report.CodeCompleted,
		Severity: report.SeverityInfo,
		Message: fmt.Sprintf("generated %d usages across %d pages from specification version %s in %s",
			total, pages, version, time.Since(started).Round(time.Millisecond)),
	})
	return nil
}

// acquire produces the usage table for the chosen tier. Failures inside a
// tier degrade to the Empty table for that attempt; they do not retry
// another tier here.
func (p *Pipeline) acquire(ctx context.Context, tier fetch.Tier, resolved fetch.Resolved) (usages.UsageTables, error) {
	switch tier {
	case fetch.TierExtractCache:
		p.setState(StateReadingCache)
		data, err := os.ReadFile(resolved.ExtractPath)
		if err != nil {
			p.reporter.Report(report.Diagnostic{
				Code:     report.CodeExtractionFailed,
				Severity: report.SeverityWarning,
				Message:  "failed to read cached extract",
				Location: resolved.ExtractPath,
				Err:      err,
			})
			return usages.Empty(), nil
		}
		return p.parse(ctx, data, resolved.ExtractPath)

	case fetch.TierDocumentCache:
		p.setState(StateReadingCache)
		docBytes, err := os.ReadFile(resolved.DocumentPath)
		if err != nil {
			p.reporter.Report(report.Diagnostic{
				Code:     report.CodeDocumentNotFound,
				Severity: report.SeverityWarning,
				Message:  "failed to read cached document",
				Location: resolved.DocumentPath,
				Err:      err,
			})
			return usages.Empty(), nil
		}
		return p.extractAndParse(ctx, docBytes, resolved)

	default:
		p.setState(StateFetchingOrigin)
		docBytes, err := fetch.FetchDocument(ctx, resolved.SpecSource, p.fetchCfg)
		if err != nil {
			if cerr := p.checkCancelled(ctx); cerr != nil {
				return usages.Empty(), cerr
			}
			p.reporter.Report(report.Diagnostic{
				Code:     report.CodeDocumentNotFound,
				Severity: report.SeverityError,
				Message:  "failed to fetch specification document",
				Location: resolved.SpecSource,
				Err:      err,
			})
			return usages.Empty(), nil
		}
		if resolved.CachingEnabled {
			p.writeCache(resolved.DocumentPath, docBytes)
		}
		return p.extractAndParse(ctx, docBytes, resolved)
	}
}

// extractAndParse pulls the attachment out of the document bytes,
// refreshes the extract cache and parses the result.
func (p *Pipeline) extractAndParse(ctx context.Context, docBytes []byte, resolved fetch.Resolved) (usages.UsageTables, error) {
	data, err := pdfattach.Extract(ctx, docBytes, resolved.AttachmentName)
	if err != nil {
		if cerr := p.checkCancelled(ctx); cerr != nil {
			return usages.Empty(), cerr
		}
		code := report.CodeExtractionFailed
		if errors.Is(err, pdfattach.ErrAttachmentNotFound) {
			code = report.CodeAttachmentNotFound
		}
		p.reporter.Report(report.Diagnostic{
			Code:     code,
			Severity: report.SeverityError,
			Message:  "failed to extract attachment from document",
			Location: resolved.AttachmentName,
			Err:      err,
		})
		return usages.Empty(), nil
	}
	if resolved.CachingEnabled {
		p.writeCache(resolved.ExtractPath, data)
	}
	return p.parse(ctx, data, resolved.AttachmentName)
}

// parse decodes extract bytes, downgrading failures to the Empty table.
func (p *Pipeline) parse(ctx context.Context, data []byte, location string) (usages.UsageTables, error) {
	if err := p.checkCancelled(ctx); err != nil {
		return usages.Empty(), err
	}
	p.setState(StateParsing)
	table, err := usages.Parse(data)
	if err != nil {
		p.reporter.Report(report.Diagnostic{
			Code:     report.CodeParseFailed,
			Severity: report.SeverityError,
			Message:  "failed to deserialize usage tables",
			Location: location,
			Err:      err,
		})
		return usages.Empty(), nil
	}
	return table, nil
}

// writeCache persists cache bytes best-effort; failures only log.
func (p *Pipeline) writeCache(path string, data []byte) {
	if path == "" {
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		p.logger.Warn("failed to refresh cache file", "path", path, "error", err)
	}
}

func (p *Pipeline) checkCancelled(ctx context.Context) error {
	if ctx.Err() == nil {
		return nil
	}
	return p.cancelled(ctx)
}

func (p *Pipeline) cancelled(ctx context.Context) error {
	p.setState(StateCancelled)
	p.reporter.Report(report.Diagnostic{
		Code:     report.CodeCancelled,
		Severity: report.SeverityWarning,
		Message:  "generation run cancelled",
		Err:      ctx.Err(),
	})
	return ctx.Err()
}
