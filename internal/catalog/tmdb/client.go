// Package tmdb is a rate-limited client for The Movie Database API.
//
// Every call is independently fallible: network failures and non-2xx
// responses propagate as errors, never as empty result sets, so callers can
// tell "nothing found" apart from "could not ask". A missing API credential
// is rejected before any request is built.
package tmdb

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainerrors "github.com/cinelogapp/cinelog-server/internal/errors"
	"github.com/cinelogapp/cinelog-server/internal/ratelimit"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"

	// Rate limit: TMDB allows ~50 rps; stay well under it, keyed by endpoint
	// family so discovery bursts cannot starve search.
	defaultRPS   = 4.0
	defaultBurst = 8

	// HTTP client settings
	defaultTimeout = 30 * time.Second

	// DefaultProviderRegion is used for watch-provider lookups when the
	// caller does not supply a region.
	DefaultProviderRegion = "IN"
)

// Client is a rate-limited TMDB API client.
type Client struct {
	http    *http.Client
	limiter *ratelimit.KeyedRateLimiter
	logger  *slog.Logger

	apiKey  string
	baseURL string
	region  string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Used in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithProviderRegion sets the default watch-provider region.
func WithProviderRegion(region string) Option {
	return func(c *Client) {
		if region != "" {
			c.region = region
		}
	}
}

// New creates a new TMDB client. An empty apiKey is allowed at construction
// time; calls will fail with ErrMissingAPIKey before touching the network.
func New(apiKey string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: ratelimit.New(defaultRPS, defaultBurst),
		logger:  logger,
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		region:  DefaultProviderRegion,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Close releases resources held by the client.
func (c *Client) Close() {
	c.limiter.Stop()
}

// Configured reports whether an API credential is present.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// doRequest executes a GET against the API with rate limiting.
// The endpoint's first path segment is the rate-limit key.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	if err := c.limiter.Wait(ctx, limiterKey(path)); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	if query == nil {
		query = url.Values{}
	}
	query.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "CineLog/1.0")

	c.logger.Debug("tmdb request", "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, domainerrors.Wrapf(err, domainerrors.CodeRemoteCall, "tmdb: execute request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domainerrors.Wrapf(err, domainerrors.CodeRemoteCall, "tmdb: read response")
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusUnauthorized:
		return nil, remoteErr(ErrUnauthorized)
	case http.StatusNotFound:
		return nil, notFoundErr()
	case http.StatusTooManyRequests:
		return nil, remoteErr(ErrRateLimited)
	default:
		if resp.StatusCode >= 500 {
			return nil, remoteErr(ErrServer)
		}
		return nil, domainerrors.RemoteCallf("tmdb: unexpected status %d", resp.StatusCode)
	}
}

// limiterKey buckets a request path by its first segment
// ("/search/multi" → "search").
func limiterKey(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(trimmed, '/'); i > 0 {
		return trimmed[:i]
	}
	return trimmed
}
