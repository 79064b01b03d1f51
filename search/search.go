// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package search

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/danielhkuo/rate-anything/rating"
)

// Defaults for the Wikipedia API.
const (
	DefaultEndpoint  = "https://en.wikipedia.org/w/api.php"
	DefaultUserAgent = "rate-anything/1.0 (https://github.com/danielhkuo/rate-anything)"
	DefaultTimeout   = 3 * time.Second
	DefaultLimit     = 6
	MaxLimit         = 50

	thumbnailSize = 120
	largeThumb    = "/480px-"
)

// Thumbnail is an image reference returned with a result.
type Thumbnail struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Result is one candidate item from the search index.
type Result struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Thumbnail   *Thumbnail `json:"thumbnail,omitempty"`
	Index       int        `json:"-"`
}

// Cache stores serialized search responses.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Recorder receives cache hit/miss notifications.
type Recorder interface {
	RecordSearchCache(hit bool)
}

// Client queries the Wikipedia prefix search API.
type Client struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
	cache      Cache
	cacheTTL   time.Duration
	recorder   Recorder
}

// NewClient creates a client with defaults and applies opts.
func NewClient(opts ...Option) *Client {
	c := &Client{
		endpoint:  DefaultEndpoint,
		userAgent: DefaultUserAgent,
		httpClient: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		cacheTTL: 10 * time.Minute,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// apiResponse mirrors the parts of the action=query response we read.
type apiResponse struct {
	Query *struct {
		Pages map[string]apiPage `json:"pages"`
	} `json:"query"`
}

type apiPage struct {
	Title       string     `json:"title"`
	Index       int        `json:"index"`
	Description string     `json:"description"`
	Thumbnail   *Thumbnail `json:"thumbnail"`
}

// Search returns up to limit results for a prefix query, ordered by the
// index's own ranking. An empty result set is not an error.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", rating.ErrInvalidInput)
	}
	limit = ClampLimit(limit)

	key := cacheKey(query, limit)
	if c.cache != nil {
		if cached, ok := c.fromCache(ctx, key); ok {
			return cached, nil
		}
	}

	results, err := c.fetch(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	if c.cache != nil {
		c.toCache(ctx, key, results)
	}
	return results, nil
}

// Lookup resolves a single title. It returns nil, nil when the index has
// no match. The first result is returned even if its title differs; its
// thumbnail is only enlarged when the title matches exactly.
func (c *Client) Lookup(ctx context.Context, title string) (*Result, error) {
	results, err := c.fetch(ctx, title, 1)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	page := results[0]
	if page.Title == title && page.Thumbnail != nil && page.Thumbnail.Source != "" {
		page.Thumbnail.Source = pxSegment.ReplaceAllString(page.Thumbnail.Source, largeThumb)
	}
	return &page, nil
}

var pxSegment = regexp.MustCompile(`/\d+px-`)

func (c *Client) fetch(ctx context.Context, query string, limit int) ([]Result, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: bad endpoint: %w", rating.ErrUpstream, err)
	}
	n := strconv.Itoa(limit)
	u.RawQuery = url.Values{
		"action":       {"query"},
		"format":       {"json"},
		"generator":    {"prefixsearch"},
		"prop":         {"pageprops|pageimages|description"},
		"redirects":    {""},
		"ppprop":       {"displaytitle"},
		"piprop":       {"thumbnail"},
		"pithumbsize":  {strconv.Itoa(thumbnailSize)},
		"pilimit":      {n},
		"gpssearch":    {query},
		"gpsnamespace": {"0"},
		"gpslimit":     {n},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", rating.ErrUpstream, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", rating.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: search returned status %d", rating.ErrUpstream, resp.StatusCode)
	}

	var body apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", rating.ErrUpstream, err)
	}
	if body.Query == nil {
		return []Result{}, nil
	}

	results := make([]Result, 0, len(body.Query.Pages))
	for _, p := range body.Query.Pages {
		results = append(results, Result{
			Title:       p.Title,
			Description: p.Description,
			Thumbnail:   p.Thumbnail,
			Index:       p.Index,
		})
	}
	slices.SortFunc(results, func(a, b Result) int {
		if order := cmp.Compare(a.Index, b.Index); order != 0 {
			return order
		}
		return cmp.Compare(a.Title, b.Title)
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

func (c *Client) fromCache(ctx context.Context, key string) ([]Result, bool) {
	data, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("search cache read failed", "error", err)
		return nil, false
	}
	if c.recorder != nil {
		c.recorder.RecordSearchCache(ok)
	}
	if !ok {
		return nil, false
	}

	var results []Result
	if err := json.Unmarshal(data, &results); err != nil {
		slog.Warn("search cache entry corrupt", "key", key, "error", err)
		return nil, false
	}
	return results, true
}

func (c *Client) toCache(ctx context.Context, key string, results []Result) {
	data, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, data, c.cacheTTL); err != nil {
		slog.Warn("search cache write failed", "error", err)
	}
}

func cacheKey(query string, limit int) string {
	return fmt.Sprintf("search:%d:%s", limit, strings.ToLower(query))
}

// ClampLimit maps a requested result count into [1, MaxLimit], using
// DefaultLimit for non-positive values.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultLimit
	case limit > MaxLimit:
		return MaxLimit
	default:
		return limit
	}
}
