// Package keggclient fetches raw text responses from the KEGG REST service
// and memoizes them in a TTL-bounded cache keyed by request URL. The client
// returns text blobs only; interpreting them is the parser's job.
package keggclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/giygas/kegg-api/interfaces"
	"github.com/giygas/kegg-api/logging"
	"github.com/giygas/kegg-api/metrics"
	"golang.org/x/text/encoding/charmap"
)

// DefaultBaseURL is the public KEGG REST endpoint.
const DefaultBaseURL = "https://rest.kegg.jp"

// Compile-time check to ensure Client implements the Fetcher interface
var _ interfaces.Fetcher = (*Client)(nil)

// FetchError reports a non-2xx response from the KEGG service. It is
// distinct from parse errors so callers can tell a transport failure from
// unusable entry text.
type FetchError struct {
	URL        string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

// Client talks to a KEGG REST service.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *ResponseCache
}

// New creates a client for the given base URL. cache may be nil to disable
// response memoization.
func New(baseURL string, timeout time.Duration, cache *ResponseCache) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout: timeout,
		},
		cache: cache,
	}
}

// GetEntry fetches the flat-file record for an arbitrary entry identifier.
func (c *Client) GetEntry(ctx context.Context, entryID string) (string, error) {
	return c.get(ctx, "get", "/get/"+entryID)
}

// GetPathway fetches the flat-file record for a pathway id (e.g. "eco00190").
func (c *Client) GetPathway(ctx context.Context, pathid string) (string, error) {
	return c.get(ctx, "get", "/get/"+pathid)
}

// GetModule fetches the flat-file record for a module id, adding the "md:"
// namespace prefix the service expects.
func (c *Client) GetModule(ctx context.Context, mdid string) (string, error) {
	return c.get(ctx, "get", "/get/md:"+mdid)
}

// ListPathways fetches the tab-delimited pathway listing for an organism.
func (c *Client) ListPathways(ctx context.Context, org string) (string, error) {
	return c.get(ctx, "list", "/list/pathway/"+org)
}

// LinkPathways fetches the tab-delimited pathway to gene mapping for an
// organism.
func (c *Client) LinkPathways(ctx context.Context, org string) (string, error) {
	return c.get(ctx, "link", "/link/"+org+"/pathway")
}

// ListOrganism fetches the tab-delimited gene listing for an organism.
func (c *Client) ListOrganism(ctx context.Context, org string) (string, error) {
	return c.get(ctx, "list", "/list/"+org)
}

// get performs one GET against the service, consulting the cache first.
func (c *Client) get(ctx context.Context, endpoint string, path string) (string, error) {
	url := c.baseURL + path

	if c.cache != nil {
		if text, ok := c.cache.Get(url); ok {
			metrics.CacheHits.Inc()
			return text, nil
		}
		metrics.CacheMisses.Inc()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	response, err := c.http.Do(req)
	if err != nil {
		metrics.FetchTotal.WithLabelValues(endpoint, "error").Inc()
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() {
		if err := response.Body.Close(); err != nil {
			logging.Warn("Failed to close response body", "error", err)
		}
	}()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		metrics.FetchTotal.WithLabelValues(endpoint, "error").Inc()
		return "", &FetchError{URL: url, StatusCode: response.StatusCode}
	}

	bodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		metrics.FetchTotal.WithLabelValues(endpoint, "error").Inc()
		return "", fmt.Errorf("failed to read response body from %s: %w", url, err)
	}

	// KEGG responses are usually UTF-8, but reference sections occasionally
	// carry ISO-8859-1 bytes
	if !utf8.Valid(bodyBytes) {
		decoded, err := io.ReadAll(charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(bodyBytes)))
		if err != nil {
			return "", fmt.Errorf("failed to decode response from %s: %w", url, err)
		}
		bodyBytes = decoded
	}

	text := string(bodyBytes)

	if c.cache != nil {
		c.cache.Put(url, text)
	}

	metrics.FetchTotal.WithLabelValues(endpoint, "ok").Inc()
	logging.Debug("Fetched KEGG response", "url", url, "bytes", len(text))

	return text, nil
}
