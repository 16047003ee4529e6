package codegen

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hidio/usagegen/internal/usages"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTable() usages.UsageTables {
	return usages.UsageTables{
		Version: "1.5",
		Pages: []usages.UsagePage{
			{
				ID:   0x01,
				Name: "Generic Desktop",
				UsageIDs: []usages.UsageID{
					{ID: 0x01, Name: "Pointer", Kinds: []usages.UsageKind{usages.KindPhysical}},
					{ID: 0x02, Name: "Mouse", Kinds: []usages.UsageKind{usages.KindApplication}},
				},
			},
			{
				ID:   0x09,
				Name: "Button",
				Generator: &usages.UsageIDGenerator{
					StartUsageID: 0x01,
					EndUsageID:   0xFF,
					NamePrefix:   "Button",
					Kinds:        []usages.UsageKind{usages.KindSelector},
				},
			},
		},
	}
}

func testConfig() Config {
	return Config{
		Namespace:    "HidIO.Usages",
		MaxGenerated: 16,
		Version:      "1.5",
		GeneratedAt:  time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC),
	}
}

func TestGenerateArtifactSet(t *testing.T) {
	em := &MapEmitter{}
	gen := New(testConfig(), testLogger())

	total, err := gen.Generate(context.Background(), usages.NewRegistry(testTable()), em)
	require.NoError(t, err)
	// 2 fixed usages plus 16 materialized generator entries.
	assert.Equal(t, 18, total)

	assert.Equal(t, []string{
		"ButtonPage.cs",
		"ButtonUsagePage.cs",
		"GenericDesktopPage.cs",
		"GenericDesktopUsagePage.cs",
		"UsagePages.cs",
	}, em.Names())
}

func TestGenerateDeterministic(t *testing.T) {
	cfg := testConfig()
	reg := usages.NewRegistry(testTable())

	first := &MapEmitter{}
	_, err := New(cfg, testLogger()).Generate(context.Background(), reg, first)
	require.NoError(t, err)

	// A later run over unchanged inputs differs only in the banner timestamp.
	cfg.GeneratedAt = cfg.GeneratedAt.Add(time.Hour)
	second := &MapEmitter{}
	_, err = New(cfg, testLogger()).Generate(context.Background(), reg, second)
	require.NoError(t, err)

	require.Equal(t, first.Names(), second.Names())
	for _, name := range first.Names() {
		a, _ := first.Artifact(name)
		b, _ := second.Artifact(name)
		assert.Equal(t, stripGeneratedLine(string(a)), stripGeneratedLine(string(b)), "artifact %s", name)
		assert.NotEqual(t, string(a), string(b), "timestamps should differ in %s", name)
	}
}

func stripGeneratedLine(s string) string {
	var out []byte
	for _, line := range splitLines(s) {
		if containsPrefix(line, "//     Generated: ") {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return string(out)
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

func containsPrefix(line, prefix string) bool {
	return len(line) >= len(prefix) && line[:len(prefix)] == prefix
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	em := &MapEmitter{}
	_, err := New(testConfig(), testLogger()).Generate(ctx, usages.NewRegistry(testTable()), em)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, em.Names())
}

func TestGenerateEmptyRegistryStillEmitsRegistry(t *testing.T) {
	table := usages.UsageTables{Version: "1.5", Pages: []usages.UsagePage{}}

	em := &MapEmitter{}
	total, err := New(testConfig(), testLogger()).Generate(context.Background(), usages.NewRegistry(table), em)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Equal(t, []string{"UsagePages.cs"}, em.Names())
}
