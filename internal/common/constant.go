// Package common contains shared constants, sentinel errors and small helpers
// used across the Alpha inventory client.
package common

// Header names and values used on outbound API requests.
const (
	AuthorizationHeader = "Authorization"
	RequestIDHeader     = "X-Request-ID"
	ContentTypeHeader   = "Content-Type"
	AcceptHeader        = "Accept"

	JSONContentType = "application/json"

	// BearerScheme is the authorization scheme, without the trailing space.
	BearerScheme = "Bearer"
)
