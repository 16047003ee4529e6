package fetch

import "os"

// Tier names one of the ordered fallback sources consulted for table data.
type Tier int

const (
	// TierExtractCache parses the cached structured-data extract directly.
	TierExtractCache Tier = iota
	// TierDocumentCache extracts and parses from the cached document.
	TierDocumentCache
	// TierOrigin fetches the document from its original location.
	TierOrigin
)

func (t Tier) String() string {
	switch t {
	case TierExtractCache:
		return "extract-cache"
	case TierDocumentCache:
		return "document-cache"
	case TierOrigin:
		return "origin"
	default:
		return "unknown"
	}
}

// IsCache reports whether the tier reads from a local cache. Only cache
// tiers may escalate to TierOrigin after a degraded attempt.
func (t Tier) IsCache() bool { return t != TierOrigin }

// SelectTier picks the table source in strict priority order: structured
// extract cache, then document cache, then origin. A forced run always
// selects the origin.
func SelectTier(r Resolved) Tier {
	if r.Force || !r.CachingEnabled {
		return TierOrigin
	}
	if fileExists(r.ExtractPath) {
		return TierExtractCache
	}
	if fileExists(r.DocumentPath) {
		return TierDocumentCache
	}
	return TierOrigin
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
