// Package fetch decides where authoritative usage-table data comes from:
// it normalizes the configured locations, picks a cache tier and performs
// the origin fetch when the caches cannot serve.
package fetch

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/hidio/usagegen/internal/report"
)

// Options are the raw configuration strings the resolver normalizes.
type Options struct {
	// SpecSource is the specification document location: an http(s) URL or
	// a local file path.
	SpecSource string
	// AttachmentName is the name of the embedded structured-data attachment.
	AttachmentName string
	// CacheDir is absolute, or relative to ProjectRoot.
	CacheDir    string
	ProjectRoot string
	// Force bypasses both caches and fetches from the origin.
	Force bool
}

// Resolved carries the normalized locations for one run. When
// CachingEnabled is false both cache paths are empty and Force is true.
type Resolved struct {
	SpecSource     string
	AttachmentName string
	CacheDir       string
	// DocumentPath caches the raw specification document.
	DocumentPath string
	// ExtractPath caches the extracted structured-data attachment.
	ExtractPath    string
	CachingEnabled bool
	Force          bool
}

// Resolve normalizes opts into absolute cache locations. Unusable cache
// configuration disables caching and forces an origin fetch; it never fails
// the run. Creates the cache directory when it does not exist.
func Resolve(opts Options, rep report.Reporter) Resolved {
	r := Resolved{
		SpecSource:     opts.SpecSource,
		AttachmentName: opts.AttachmentName,
		Force:          opts.Force,
	}

	dir, ok := cacheDir(opts, rep)
	if !ok {
		return disableCaching(r, rep)
	}
	if opts.AttachmentName == "" || opts.SpecSource == "" {
		// Nothing meaningful to key cache entries under.
		return disableCaching(r, rep)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		rep.Report(report.Diagnostic{
			Code:     report.CodeCacheDirFailed,
			Severity: report.SeverityWarning,
			Message:  "failed to create cache directory",
			Location: dir,
			Err:      err,
		})
		return disableCaching(r, rep)
	}

	r.CacheDir = dir
	r.DocumentPath = filepath.Join(dir, sourceBaseName(opts.SpecSource))
	r.ExtractPath = filepath.Join(dir, filepath.Base(filepath.FromSlash(opts.AttachmentName)))
	r.CachingEnabled = true
	return r
}

func cacheDir(opts Options, rep report.Reporter) (string, bool) {
	dir := opts.CacheDir
	if dir == "" {
		return "", false
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir), true
	}
	if opts.ProjectRoot == "" {
		return "", false
	}
	abs, err := filepath.Abs(filepath.Join(opts.ProjectRoot, dir))
	if err != nil {
		rep.Report(report.Diagnostic{
			Code:     report.CodeCacheDirFailed,
			Severity: report.SeverityWarning,
			Message:  "failed to resolve cache directory",
			Location: dir,
			Err:      err,
		})
		return "", false
	}
	return abs, true
}

func disableCaching(r Resolved, rep report.Reporter) Resolved {
	rep.Report(report.Diagnostic{
		Code:     report.CodeCachingDisabled,
		Severity: report.SeverityWarning,
		Message:  "caching disabled, forcing fetch from origin",
		Location: r.SpecSource,
	})
	r.CacheDir = ""
	r.DocumentPath = ""
	r.ExtractPath = ""
	r.CachingEnabled = false
	r.Force = true
	return r
}

// sourceBaseName derives the document cache file name from the source
// location: the base name of the URL path for network sources, the base
// name of the file otherwise.
func sourceBaseName(source string) string {
	if u, err := url.Parse(source); err == nil && isNetworkScheme(u.Scheme) {
		if base := path.Base(u.Path); base != "." && base != "/" && base != "" {
			return base
		}
		return fmt.Sprintf("%s.document", u.Host)
	}
	return filepath.Base(filepath.FromSlash(source))
}

func isNetworkScheme(scheme string) bool {
	switch strings.ToLower(scheme) {
	case "http", "https":
		return true
	default:
		return false
	}
}
