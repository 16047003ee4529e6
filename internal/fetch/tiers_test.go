package fetch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectTier(t *testing.T) {
	dir := t.TempDir()
	extract := filepath.Join(dir, "tables.json")
	document := filepath.Join(dir, "spec.pdf")

	writeAll := func(paths ...string) {
		for _, p := range paths {
			require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
		}
	}

	tests := []struct {
		name     string
		setup    func()
		resolved Resolved
		want     Tier
	}{
		{
			name:  "extract cache wins over document cache",
			setup: func() { writeAll(extract, document) },
			resolved: Resolved{
				CachingEnabled: true,
				ExtractPath:    extract,
				DocumentPath:   document,
			},
			want: TierExtractCache,
		},
		{
			name:  "document cache when no extract",
			setup: func() { os.Remove(extract); writeAll(document) },
			resolved: Resolved{
				CachingEnabled: true,
				ExtractPath:    extract,
				DocumentPath:   document,
			},
			want: TierDocumentCache,
		},
		{
			name:  "origin when no caches",
			setup: func() { os.Remove(extract); os.Remove(document) },
			resolved: Resolved{
				CachingEnabled: true,
				ExtractPath:    extract,
				DocumentPath:   document,
			},
			want: TierOrigin,
		},
		{
			name:  "force bypasses caches",
			setup: func() { writeAll(extract, document) },
			resolved: Resolved{
				CachingEnabled: true,
				Force:          true,
				ExtractPath:    extract,
				DocumentPath:   document,
			},
			want: TierOrigin,
		},
		{
			name:     "caching disabled goes to origin",
			setup:    func() {},
			resolved: Resolved{CachingEnabled: false},
			want:     TierOrigin,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			assert.Equal(t, tt.want, SelectTier(tt.resolved))
		})
	}
}

func TestTierIsCache(t *testing.T) {
	assert.True(t, TierExtractCache.IsCache())
	assert.True(t, TierDocumentCache.IsCache())
	assert.False(t, TierOrigin.IsCache())
}
