// Package tmdb is the catalog client for The Movie Database v3 API.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sandevgo/cinebot/internal/config"
	"github.com/sandevgo/cinebot/internal/core"
	"github.com/sandevgo/cinebot/internal/metrics"
	"github.com/sandevgo/cinebot/internal/storage/cache"
	"github.com/sandevgo/cinebot/pkg/log"
	"github.com/sandevgo/cinebot/pkg/retry"
)

const maxResponseSize = 4 << 20

type Client struct {
	client   *http.Client
	baseURL  string
	apiKey   string
	timeout  time.Duration
	retrier  *retry.Retrier
	cache    cache.Cache
	cacheTTL time.Duration
	defaults QueryDefaults
}

type Option func(*Client)

// WithHTTPClient replaces the underlying client, mostly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

func WithRetryConfig(rc *retry.Config) Option {
	return func(c *Client) {
		c.retrier = retry.NewRetrier(rc)
	}
}

func WithCache(ch cache.Cache, ttl time.Duration) Option {
	return func(c *Client) {
		c.cache = ch
		c.cacheTTL = ttl
	}
}

func NewClient(cfg *config.TMDBConfig, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	retryCfg := retry.NewCatalogConfig()
	if cfg.Retries >= 0 {
		retryCfg.MaxRetries = cfg.Retries
	}

	defaults := Defaults
	if cfg.Language != "" {
		defaults.Language = cfg.Language
	}
	if cfg.Region != "" {
		defaults.Region = cfg.Region
	}

	c := &Client{
		client:   &http.Client{Timeout: timeout},
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:   cfg.APIKey,
		timeout:  timeout,
		retrier:  retry.NewRetrier(retryCfg),
		cache:    cache.NewNop(),
		defaults: defaults,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type statusError struct {
	code       int
	body       string
	retryAfter time.Duration
}

func (e *statusError) RetryAfter() time.Duration { return e.retryAfter }

func (e *statusError) Error() string {
	return fmt.Sprintf("http %d: %s", e.code, e.body)
}

// get performs one logical GET with per-attempt timeout and bounded retries.
// Only transport errors, 429 and 5xx are retried.
func (c *Client) get(ctx context.Context, endpoint, path string, query url.Values, out any) error {
	start := time.Now()

	q := url.Values{}
	for k, v := range query {
		q[k] = v
	}
	q.Set("api_key", c.apiKey)
	target := c.baseURL + path + "?" + q.Encode()

	err := c.retrier.Do(ctx, func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, target, nil)
		if err != nil {
			return retry.Permanent(fmt.Errorf("create request: %w", err))
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", core.CineUserAgent)

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("request: %w", c.redact(err, path))
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		if err != nil {
			return fmt.Errorf("read body: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			serr := &statusError{
				code:       resp.StatusCode,
				body:       truncateBody(data),
				retryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			}
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				return serr
			}
			return retry.Permanent(serr)
		}

		if err := json.Unmarshal(data, out); err != nil {
			return retry.Permanent(fmt.Errorf("decode: %w", err))
		}
		return nil
	})

	metrics.ObserveCatalog(endpoint, start, err)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("endpoint", endpoint).Msg("catalog call failed")
		return core.Upstream(endpoint, err)
	}
	return nil
}

// redact drops the query string, and with it api_key, from the URL that
// net/http puts in transport errors.
func (c *Client) redact(err error, path string) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		uerr.URL = c.baseURL + path
	}
	return err
}

// parseRetryAfter reads the delay-seconds form; HTTP dates fall back to backoff.
func parseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// getCached wraps get with the enrichment cache.
func (c *Client) getCached(ctx context.Context, key, endpoint, path string, out any) error {
	if data, ok := c.cache.Get(ctx, key); ok {
		if err := json.Unmarshal(data, out); err == nil {
			metrics.CacheLookup(true)
			return nil
		}
	}
	metrics.CacheLookup(false)

	if err := c.get(ctx, endpoint, path, nil, out); err != nil {
		return err
	}

	if data, err := json.Marshal(out); err == nil {
		c.cache.Set(ctx, key, data, c.cacheTTL)
	}
	return nil
}

func truncateBody(data []byte) string {
	const limit = 256
	s := strings.TrimSpace(string(data))
	if len(s) > limit {
		return s[:limit] + "..."
	}
	return s
}
