// Package remote fetches dataset inputs over HTTP: the one-shot raw text
// form, and the pre-partitioned variant (a dimensions manifest plus
// per-selection point arrays, memoized per selection).
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/scendash/scendash/pkg/config"
)

// FetchError reports an unreachable data source or a non-success status.
// Fatal to the load attempt; the caller may retry by re-invoking from
// scratch.
type FetchError struct {
	URL        string
	StatusCode int // 0 when the transport itself failed
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("remote: fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("remote: fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client talks to one remote data source.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.Mutex
	cache map[SelectionKey][]Point
}

// NewClient creates a client for the given base URL. httpClient may be nil.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.FetchTimeout}
	}
	return &Client{
		baseURL: baseURL,
		http:    httpClient,
		cache:   make(map[SelectionKey][]Point),
	}
}

// FetchText performs the single blocking read of the raw delimited dataset.
func (c *Client) FetchText(ctx context.Context, rawURL string) (string, error) {
	body, err := c.get(ctx, rawURL)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// Manifest is the pre-partitioned variant's dimension listing: two label
// axes, each mapping to its option strings.
type Manifest struct {
	Axes map[string][]string
}

// FetchManifest retrieves the dimensions manifest from the base URL.
func (c *Client) FetchManifest(ctx context.Context) (*Manifest, error) {
	body, err := c.get(ctx, c.baseURL+"/dimensions.json")
	if err != nil {
		return nil, err
	}
	var axes map[string][]string
	if err := json.Unmarshal(body, &axes); err != nil {
		return nil, fmt.Errorf("remote: decode manifest: %w", err)
	}
	return &Manifest{Axes: axes}, nil
}

// SelectionKey identifies one fetched partition by its two selected option
// values. A struct key, not a joined string, so option values containing any
// separator character cannot collide.
type SelectionKey struct {
	Primary   string
	Secondary string
}

// FetchSelection returns the points for one selection, consulting the memo
// cache first. The cache has no eviction and no expiry; it lives as long as
// the process, like the dataset session itself.
func (c *Client) FetchSelection(ctx context.Context, key SelectionKey) ([]Point, error) {
	c.mu.Lock()
	cached, ok := c.cache[key]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	q := url.Values{}
	q.Set("primary", key.Primary)
	q.Set("secondary", key.Secondary)
	body, err := c.get(ctx, c.baseURL+"/data?"+q.Encode())
	if err != nil {
		return nil, err
	}

	var points []Point
	if err := json.Unmarshal(body, &points); err != nil {
		return nil, fmt.Errorf("remote: decode selection %v: %w", key, err)
	}

	c.mu.Lock()
	c.cache[key] = points
	c.mu.Unlock()
	return points, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: rawURL, StatusCode: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	return body, nil
}
