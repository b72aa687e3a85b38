package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/alphastock/internal/client/tokens"
	"github.com/dmitrijs2005/alphastock/internal/common"
	"github.com/google/uuid"
)

type requestOptions struct {
	skipAuth bool
	noRetry  bool
	headers  http.Header
}

type RequestOption func(*requestOptions)

// WithoutAuth sends the request without an Authorization header and
// disables the refresh-and-retry on 401. Used by the auth endpoints.
func WithoutAuth() RequestOption {
	return func(o *requestOptions) { o.skipAuth = true }
}

// withoutRetry keeps the transport from repeating the request.
func withoutRetry() RequestOption {
	return func(o *requestOptions) { o.noRetry = true }
}

func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) { o.headers.Set(key, value) }
}

func WithHeaders(h map[string]string) RequestOption {
	return func(o *requestOptions) {
		for k, v := range h {
			o.headers.Set(k, v)
		}
	}
}

// Do sends method to path (relative to the base URL) and decodes a JSON
// answer into out. body, when non-nil, is sent as JSON. A nil out discards
// the answer. A 204 or empty answer leaves out untouched.
func (c *HTTPClient) Do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	switch method {
	case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete:
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedMethod, method)
	}

	o := requestOptions{headers: http.Header{}}
	for _, opt := range opts {
		opt(&o)
	}

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
	}

	return c.send(ctx, method, path, payload, out, o, false)
}

func (c *HTTPClient) send(ctx context.Context, method, path string, payload []byte, out any, o requestOptions, retried bool) error {
	req, err := c.newRequest(ctx, method, path, payload, o)
	if err != nil {
		return err
	}

	requestID := req.Header.Get(common.RequestIDHeader)
	start := time.Now()

	resp, err := c.doer.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return unavailable(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return unavailable(err)
	}

	c.log.Debug(ctx, "request done",
		"method", method, "path", path, "status", resp.StatusCode,
		"request_id", requestID, "duration", time.Since(start), "retry", retried)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if resp.StatusCode == http.StatusUnauthorized && !o.skipAuth && !retried {
			if token := c.refresh(ctx); token != "" {
				return c.send(ctx, method, path, payload, out, o, true)
			}
		}
		return newAPIError(resp.StatusCode, errorMessage(resp.StatusCode, data))
	}

	if resp.StatusCode == http.StatusNoContent || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	if !json.Valid(data) {
		return invalidResponse(resp.StatusCode, fmt.Errorf("body is not JSON"))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return invalidResponse(resp.StatusCode, err)
	}
	return nil
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, payload []byte, o requestOptions) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	policy := methodPolicy(method)
	if o.noRetry {
		policy = retryNever
	}
	req, err := http.NewRequestWithContext(withRetryPolicy(ctx, policy), method, c.url(path), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	for k, values := range o.headers {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}

	req.Header.Set(common.AcceptHeader, common.JSONContentType)
	req.Header.Set(common.RequestIDHeader, uuid.NewString())
	if payload != nil {
		req.Header.Set(common.ContentTypeHeader, common.JSONContentType)
	}

	if o.skipAuth {
		req.Header.Del(common.AuthorizationHeader)
		return req, nil
	}

	access, err := c.store.AccessToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("read access token: %w", err)
	}
	if token := tokens.NormalizeBearer(access); token != "" {
		req.Header.Set(common.AuthorizationHeader, common.BearerScheme+" "+token)
	}
	return req, nil
}

// errorMessage picks the text shown to the user for a failed request.
func errorMessage(status int, data []byte) string {
	var fields map[string]any
	if json.Unmarshal(data, &fields) == nil {
		for _, key := range []string{"message", "error"} {
			if s, ok := fields[key].(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	if text := strings.TrimSpace(string(data)); text != "" {
		return text
	}
	return fmt.Sprintf("Request failed: %d", status)
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}
