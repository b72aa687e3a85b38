// Package client talks to the Alpha inventory REST API.
//
// # Overview
//
// HTTPClient is the single entry point for backend calls. Every request goes
// through Do, which:
//  1. attaches the stored access token as a bearer Authorization header
//     (unless WithoutAuth is given),
//  2. JSON-encodes the body and decodes the answer into the caller's value,
//  3. turns non-2xx answers into an *APIError carrying the server's message,
//  4. on a 401 performs one token refresh (POST /auth/refresh) and repeats
//     the original request once.
//
// Only one refresh runs at a time per client. A caller that hits a 401 while
// another refresh is in flight does not wait for it: it gets the 401 error.
// When a refresh fails both stored tokens are cleared and the handler set with
// WithSessionInvalidatedHandler is called.
//
// # Error Handling
//
// Server answers surface as *APIError. Use errors.Is with ErrUnauthorized,
// ErrNotFound or ErrInvalidResponse to classify them. Transport failures are
// wrapped with ErrUnavailable.
//
// The package also bootstraps the local SQLite database (InitDatabase,
// RunMigrations) that backs persistent token storage.
package client
