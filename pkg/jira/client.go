// Package jira talks to the Jira REST API (v2).
package jira

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/gojira/gojira/pkg/auth"
	"github.com/gojira/gojira/pkg/cache"
)

// APIPath is the prefix of every REST resource.
const APIPath = "rest/api/2/"

const (
	DefaultTimeout = 30 * time.Second
	userAgent      = "gojira"
)

// Caller issues a single REST call. *Client implements it.
type Caller interface {
	Call(ctx context.Context, endpoint string, params map[string]string, body []byte, method string) (*Result, error)
}

// Client sends authenticated requests. The underlying transport is set up
// once, on the first call or an explicit Init.
type Client struct {
	baseURL   string
	auth      auth.Provider
	timeout   time.Duration
	transport http.RoundTripper
	limiter   *rate.Limiter
	cache     cache.Cache
	logger    *log.Logger

	httpClient *http.Client
	lastStatus int
}

type Option func(*Client)

// WithTransport injects an http.RoundTripper, mostly for tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.transport = rt }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRateLimit caps outgoing requests per second. Zero disables the limit.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// WithCache serves repeated GET calls from c.
func WithCache(rc cache.Cache) Option {
	return func(c *Client) {
		if rc != nil {
			c.cache = rc
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a client for the Jira instance at baseURL.
func NewClient(baseURL string, provider auth.Provider, opts ...Option) *Client {
	if provider == nil {
		provider = auth.Anonymous{}
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/",
		auth:    provider,
		timeout: DefaultTimeout,
		limiter: rate.NewLimiter(rate.Inf, 0),
		cache:   cache.Nop{},
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Init prepares the HTTP transport. It fails when called twice.
func (c *Client) Init() error {
	if c.httpClient != nil {
		return ErrAlreadyInitialized
	}
	c.httpClient = &http.Client{
		Timeout:   c.timeout,
		Transport: c.transport,
	}
	return nil
}

// LastStatusCode returns the HTTP status of the most recent response,
// including failed ones. It is 0 before any response was received.
func (c *Client) LastStatusCode() int {
	return c.lastStatus
}

// Call performs one request against endpoint, relative to the API path.
// Empty params are dropped; any query already present in endpoint is kept.
func (c *Client) Call(ctx context.Context, endpoint string, params map[string]string, body []byte, method string) (*Result, error) {
	if c.httpClient == nil {
		if err := c.Init(); err != nil {
			return nil, err
		}
	}

	fullURL, err := c.buildURL(endpoint, params)
	if err != nil {
		return nil, &APIError{Err: err}
	}

	token, err := c.auth.CredentialToken()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve credentials: %w", err)
	}

	cacheKey := method + " " + fullURL
	if method == http.MethodGet {
		if e, ok := c.cache.Get(cacheKey); ok {
			c.logger.Debug("cache hit", "url", fullURL)
			c.lastStatus = e.StatusCode
			return newResult(e.StatusCode, e.ContentType, e.Body), nil
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, &APIError{URL: fullURL, Err: fmt.Errorf("rate limiter: %w", err)}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, &APIError{URL: fullURL, Err: fmt.Errorf("create request: %w", err)}
	}

	req.Header.Set("User-Agent", userAgent)
	if token != "" {
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", "application/json;charset=UTF-8")
		req.Header.Set("Authorization", "Basic "+token)
	}

	start := time.Now()
	c.logger.Debug("request", "method", method, "url", fullURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{URL: fullURL, Err: err}
	}
	defer resp.Body.Close()
	c.lastStatus = resp.StatusCode

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Status: resp.StatusCode, URL: fullURL, Err: fmt.Errorf("read response: %w", err)}
	}
	c.logger.Debug("response", "status", resp.StatusCode, "bytes", len(raw), "duration", time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &NotFoundError{URL: fullURL, Messages: errorMessages(raw)}
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, &UnauthorizedError{URL: fullURL}
	case resp.StatusCode >= 400:
		return nil, &APIError{Status: resp.StatusCode, URL: fullURL, Messages: errorMessages(raw)}
	}

	contentType := resp.Header.Get("Content-Type")
	if method == http.MethodGet {
		entry := &cache.Entry{StatusCode: resp.StatusCode, ContentType: contentType, Body: raw}
		if err := c.cache.Set(cacheKey, entry); err != nil {
			c.logger.Warn("cache write failed", "err", err)
		}
	} else {
		// A write may change any listing, search results included.
		if err := c.cache.DeletePrefix(http.MethodGet + " " + c.baseURL + APIPath); err != nil {
			c.logger.Warn("cache invalidation failed", "err", err)
		}
	}

	return newResult(resp.StatusCode, contentType, raw), nil
}

func (c *Client) buildURL(endpoint string, params map[string]string) (string, error) {
	u, err := url.Parse(c.baseURL + APIPath + strings.TrimPrefix(endpoint, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}

	extra := url.Values{}
	for k, v := range params {
		if v != "" {
			extra.Set(k, v)
		}
	}

	if encoded := extra.Encode(); encoded != "" {
		if u.RawQuery != "" {
			u.RawQuery += "&" + encoded
		} else {
			u.RawQuery = encoded
		}
	}
	return u.String(), nil
}
