// Package cms reads marketing content from a Sanity-style query API, falling back to the last
// good snapshot and then to local YAML content when the remote store is unavailable.
package cms

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"vostra.ai/vostracode-web/internal/observability"
)

var (
	// ErrNotFound is returned when a document does not exist in any source.
	ErrNotFound = errors.New("cms: not found")
	// ErrUnavailable is returned when the remote store failed and no fallback could serve the query.
	ErrUnavailable = errors.New("cms: unavailable")
)

const (
	defaultAPIVersion = "2024-01-01"
	defaultDataset    = "production"
	defaultTimeout    = 5 * time.Second
	defaultCacheTTL   = 30 * time.Second
	defaultContentDir = "content"
)

// SnapshotStore keeps the last successful response per query.
type SnapshotStore interface {
	Put(ctx context.Context, query string, body []byte) error
	Get(ctx context.Context, query string) ([]byte, time.Time, error)
}

// Client provides read-only access to CMS documents.
type Client struct {
	baseURL    string
	dataset    string
	apiVersion string
	token      string
	timeout    time.Duration
	contentDir string

	http      *http.Client
	cache     *queryCache
	group     singleflight.Group
	snapshots SnapshotStore
	fetches   *observability.FetchCounter
	logger    *zap.Logger
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithDataset selects the dataset queried.
func WithDataset(name string) Option {
	return func(c *Client) {
		if name = strings.TrimSpace(name); name != "" {
			c.dataset = name
		}
	}
}

// WithAPIVersion sets the dated API version, with or without a leading "v".
func WithAPIVersion(v string) Option {
	return func(c *Client) {
		if v = strings.TrimPrefix(strings.TrimSpace(v), "v"); v != "" {
			c.apiVersion = v
		}
	}
}

// WithToken authenticates requests with a bearer token.
func WithToken(token string) Option {
	return func(c *Client) { c.token = strings.TrimSpace(token) }
}

// WithTimeout bounds each remote request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithCacheTTL sets how long query results are reused. Zero disables caching.
func WithCacheTTL(d time.Duration) Option {
	return func(c *Client) { c.cache = newQueryCache(d) }
}

// WithContentDir sets the directory holding local YAML content.
func WithContentDir(dir string) Option {
	return func(c *Client) {
		if dir = strings.TrimSpace(dir); dir != "" {
			c.contentDir = dir
		}
	}
}

// WithSnapshots enables the last-good snapshot fallback.
func WithSnapshots(s SnapshotStore) Option {
	return func(c *Client) { c.snapshots = s }
}

// WithFetchCounter records which source served each query.
func WithFetchCounter(f *observability.FetchCounter) Option {
	return func(c *Client) { c.fetches = f }
}

// WithLogger sets the logger for fallback warnings.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient constructs a Client. An empty baseURL serves local content only.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		dataset:    defaultDataset,
		apiVersion: defaultAPIVersion,
		timeout:    defaultTimeout,
		contentDir: defaultContentDir,
		http:       &http.Client{},
		cache:      newQueryCache(defaultCacheTTL),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProjectURL returns the API host for a Sanity project id.
func ProjectURL(projectID string, useCDN bool) string {
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return ""
	}
	host := "api"
	if useCDN {
		host = "apicdn"
	}
	return fmt.Sprintf("https://%s.%s.sanity.io", projectID, host)
}

// Remote reports whether a remote CMS is configured.
func (c *Client) Remote() bool { return c != nil && c.baseURL != "" }

// ContentDir returns the local content directory.
func (c *Client) ContentDir() string {
	if c == nil || c.contentDir == "" {
		return defaultContentDir
	}
	return c.contentDir
}

// Purge drops every cached result.
func (c *Client) Purge() {
	if c != nil {
		c.cache.purge()
	}
}
