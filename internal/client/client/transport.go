package client

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/alphastock/internal/logging"
	"github.com/hashicorp/go-retryablehttp"
)

// retryPolicy tells checkRetry how far a request may be repeated. It travels
// in the request context.
type retryPolicy int

const (
	// retryTransient repeats on connection errors, 429, 502, 503, 504 and 500.
	retryTransient retryPolicy = iota
	// retryUnsent repeats only on 429 and when the connection was never made.
	retryUnsent
	// retryNever sends the request once.
	retryNever
)

type retryPolicyKey struct{}

func withRetryPolicy(ctx context.Context, p retryPolicy) context.Context {
	return context.WithValue(ctx, retryPolicyKey{}, p)
}

// policyFor returns the policy stored in ctx, or derives it from the method.
func policyFor(ctx context.Context, resp *http.Response) retryPolicy {
	if p, ok := ctx.Value(retryPolicyKey{}).(retryPolicy); ok {
		return p
	}
	if resp != nil && resp.Request != nil {
		return methodPolicy(resp.Request.Method)
	}
	return retryUnsent
}

func methodPolicy(method string) retryPolicy {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodDelete:
		return retryTransient
	}
	return retryUnsent
}

// NewTransport returns an *http.Client that repeats requests on transient
// failures. GET and DELETE are repeated on connection errors, 429, 502, 503,
// 504 and 500. Other methods are repeated only on 429 or when the
// connection could not be established, so the server never sees them twice.
// Other statuses are handed back unchanged so that Do can interpret them.
func NewTransport(retryMax int, timeout time.Duration, log logging.Logger) *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = retryMax
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	rc.CheckRetry = checkRetry
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = logging.Leveled(log)
	rc.HTTPClient.Timeout = timeout

	return rc.StandardClient()
}

func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	policy := policyFor(ctx, resp)
	if policy == retryNever {
		return false, nil
	}

	if err != nil {
		if policy == retryUnsent && !notConnected(err) {
			return false, nil
		}
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return true, nil
	case http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return policy == retryTransient, nil
	}
	return false, nil
}

// notConnected reports whether err happened while dialing, before any byte
// of the request reached the server.
func notConnected(err error) bool {
	var opErr *net.OpError
	return errors.As(err, &opErr) && opErr.Op == "dial"
}
