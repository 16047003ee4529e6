package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"
)

// Config controls origin-fetch behavior.
type Config struct {
	// Timeout bounds the whole HTTP exchange. Zero means DefaultTimeout.
	Timeout time.Duration
	// Client overrides the HTTP client, mainly for tests.
	Client *http.Client
}

// DefaultTimeout bounds a single synchronous document download.
const DefaultTimeout = 2 * time.Minute

// FetchDocument retrieves the raw specification document bytes. The source
// scheme selects the transport: http/https perform a synchronous GET, a
// plain path or file URL reads from disk, anything else is a configuration
// error for this attempt. No retries are performed.
func FetchDocument(ctx context.Context, source string, cfg Config) ([]byte, error) {
	u, err := url.Parse(source)
	if err != nil {
		return nil, fmt.Errorf("parse source %q: %w", source, err)
	}
	switch {
	case isNetworkScheme(u.Scheme):
		return fetchHTTP(ctx, source, cfg)
	case u.Scheme == "file":
		return os.ReadFile(u.Path)
	case u.Scheme == "":
		return os.ReadFile(source)
	default:
		return nil, fmt.Errorf("unsupported source scheme %q in %q", u.Scheme, source)
	}
}

func fetchHTTP(ctx context.Context, source string, cfg Config) ([]byte, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %q: %w", source, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %q: unexpected status %s", source, resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response for %q: %w", source, err)
	}
	return data, nil
}
