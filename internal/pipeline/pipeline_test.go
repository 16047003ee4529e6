package pipeline

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hidio/usagegen/internal/codegen"
	"github.com/hidio/usagegen/internal/report"
	"github.com/hidio/usagegen/internal/usages"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validExtract(t *testing.T) []byte {
	t.Helper()
	table := usages.UsageTables{
		Version: "1.5",
		Pages: []usages.UsagePage{
			{
				ID:       0x01,
				Name:     "Generic Desktop",
				UsageIDs: []usages.UsageID{{ID: 0x01, Name: "Pointer", Kinds: []usages.UsageKind{usages.KindPhysical}}},
			},
		},
	}
	data, err := json.Marshal(table)
	require.NoError(t, err)
	return data
}

func baseOptions(root string) Options {
	return Options{
		Namespace:       "HidIO.Usages",
		SpecSource:      filepath.Join(root, "missing-spec.pdf"),
		AttachmentName:  "HidUsageTables.json",
		CacheDir:        "cache",
		ProjectRoot:     root,
		MaxGenerated:    16,
		FallbackVersion: "dev",
	}
}

// seedExtractCache resolves the cache layout the same way the pipeline will
// and plants extract bytes there.
func seedExtractCache(t *testing.T, root string, data []byte) string {
	t.Helper()
	dir := filepath.Join(root, "cache")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "HidUsageTables.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestRunFromExtractCache(t *testing.T) {
	root := t.TempDir()
	seedExtractCache(t, root, validExtract(t))

	rec := &report.Recorder{}
	em := &codegen.MapEmitter{}
	// SpecSource points at a file that does not exist: the run only
	// succeeds if the extract cache is used and the origin is never read.
	p := New(baseOptions(root), testLogger(), rec, em)
	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, StateCompleted, p.State())
	assert.True(t, rec.Has(report.CodeCompleted))
	assert.False(t, rec.Has(report.CodeDocumentNotFound))

	enum, ok := em.Artifact("GenericDesktopPage.cs")
	require.True(t, ok)
	assert.Contains(t, string(enum), "GenericDesktopPointer = 0x00010001")
	_, ok = em.Artifact("UsagePages.cs")
	assert.True(t, ok)
	_, ok = em.Artifact("GenericDesktopUsagePage.cs")
	assert.True(t, ok)
}

func TestRunCorruptExtractCacheEscalatesToOriginOnce(t *testing.T) {
	root := t.TempDir()
	seedExtractCache(t, root, []byte("{not json"))

	// The origin source exists but is not a valid document, so the
	// escalated attempt degrades too; the run still completes.
	spec := filepath.Join(root, "spec.pdf")
	require.NoError(t, os.WriteFile(spec, []byte("not a pdf"), 0o644))

	opts := baseOptions(root)
	opts.SpecSource = spec

	rec := &report.Recorder{}
	em := &codegen.MapEmitter{}
	p := New(opts, testLogger(), rec, em)
	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, StateCompleted, p.State())
	// Parse failure from the cache tier, extraction failure from the
	// escalated origin tier, then completion with zero declarations.
	assert.True(t, rec.Has(report.CodeParseFailed))
	assert.True(t, rec.Has(report.CodeExtractionFailed))
	assert.True(t, rec.Has(report.CodeCompleted))
	assert.Empty(t, em.Names())
}

func TestRunOriginFetchFailureDegrades(t *testing.T) {
	root := t.TempDir()
	opts := baseOptions(root)
	opts.Force = true // bypass caches entirely

	rec := &report.Recorder{}
	em := &codegen.MapEmitter{}
	p := New(opts, testLogger(), rec, em)
	require.NoError(t, p.Run(context.Background()))

	assert.Equal(t, StateCompleted, p.State())
	assert.True(t, rec.Has(report.CodeDocumentNotFound))
	assert.True(t, rec.Has(report.CodeCompleted))
	assert.Empty(t, em.Names())
}

func TestRunCachingDisabledStillCompletes(t *testing.T) {
	root := t.TempDir()
	opts := baseOptions(root)
	opts.CacheDir = ""

	rec := &report.Recorder{}
	em := &codegen.MapEmitter{}
	p := New(opts, testLogger(), rec, em)
	require.NoError(t, p.Run(context.Background()))

	assert.True(t, rec.Has(report.CodeCachingDisabled))
	assert.True(t, rec.Has(report.CodeCompleted))
}

func TestRunCancelled(t *testing.T) {
	root := t.TempDir()
	seedExtractCache(t, root, validExtract(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := &report.Recorder{}
	em := &codegen.MapEmitter{}
	p := New(baseOptions(root), testLogger(), rec, em)
	err := p.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StateCancelled, p.State())
	assert.True(t, rec.Has(report.CodeCancelled))
	assert.False(t, rec.Has(report.CodeCompleted))
}

func TestRunIdempotentModuloTimestamp(t *testing.T) {
	root := t.TempDir()
	seedExtractCache(t, root, validExtract(t))

	run := func() *codegen.MapEmitter {
		rec := &report.Recorder{}
		em := &codegen.MapEmitter{}
		p := New(baseOptions(root), testLogger(), rec, em)
		require.NoError(t, p.Run(context.Background()))
		return em
	}

	first := run()
	second := run()
	require.Equal(t, first.Names(), second.Names())
	for _, name := range first.Names() {
		a, _ := first.Artifact(name)
		b, _ := second.Artifact(name)
		assert.Equal(t, stripGenerated(string(a)), stripGenerated(string(b)), "artifact %s", name)
	}
}

func stripGenerated(s string) string {
	var out string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == '\n' {
			line := s[start:i]
			if len(line) < 18 || line[:18] != "//     Generated: " {
				out += line + "\n"
			}
			start = i + 1
		}
	}
	return out
}
