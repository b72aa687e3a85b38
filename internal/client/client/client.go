package client

import (
	"context"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/alphastock/internal/client/tokens"
	"github.com/dmitrijs2005/alphastock/internal/logging"
)

// Client is the API contract used by the services.
type Client interface {
	Do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error
	Ping(ctx context.Context) error
}

// Doer sends a single HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

const (
	DefaultTimeout  = 30 * time.Second
	DefaultRetryMax = 2
)

type HTTPClient struct {
	baseURL string
	doer    Doer
	store   tokens.Store
	log     logging.Logger

	timeout  time.Duration
	retryMax int

	refreshing       atomic.Bool
	onSessionExpired func()
}

type Option func(*HTTPClient)

// WithDoer replaces the default retrying transport.
func WithDoer(d Doer) Option {
	return func(c *HTTPClient) { c.doer = d }
}

func WithLogger(l logging.Logger) Option {
	return func(c *HTTPClient) { c.log = l }
}

// WithTimeout sets the per-request timeout of the default transport.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRetryMax sets how many times the default transport repeats a request
// after a transient failure. Zero disables transport retries.
func WithRetryMax(n int) Option {
	return func(c *HTTPClient) {
		if n >= 0 {
			c.retryMax = n
		}
	}
}

// WithSessionInvalidatedHandler registers fn to be called after a failed
// token refresh has cleared the stored tokens.
func WithSessionInvalidatedHandler(fn func()) Option {
	return func(c *HTTPClient) { c.onSessionExpired = fn }
}

// New creates a client for the API rooted at baseURL
// (e.g. http://localhost:8080/api/v1).
func New(baseURL string, store tokens.Store, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		store:    store,
		log:      logging.Discard(),
		timeout:  DefaultTimeout,
		retryMax: DefaultRetryMax,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.doer == nil {
		c.doer = NewTransport(c.retryMax, c.timeout, c.log)
	}
	return c
}

func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// Ping reports whether the server answers at all. Any HTTP response counts.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.doer.Do(req)
	if err != nil {
		return unavailable(err)
	}
	_ = resp.Body.Close()
	return nil
}

func (c *HTTPClient) url(path string) string {
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}
