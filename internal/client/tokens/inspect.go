package tokens

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotJWT is returned by Inspect for opaque (non-JWT) tokens.
var ErrNotJWT = errors.New("access token is not a JWT")

// Session is what can be read from an access token without verifying it.
// Zero times mean the claim is absent.
type Session struct {
	Subject   string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that is before now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Inspect decodes access without checking its signature. The result is for
// display only: the server stays the authority and expiry is still detected
// from a 401 response.
func Inspect(access string) (*Session, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(NormalizeBearer(access), claims); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotJWT, err)
	}

	s := &Session{}
	s.Subject, _ = claims.GetSubject()
	if email, ok := claims["email"].(string); ok {
		s.Email = email
	}
	if exp, _ := claims.GetExpirationTime(); exp != nil {
		s.ExpiresAt = exp.Time
	}
	if iat, _ := claims.GetIssuedAt(); iat != nil {
		s.IssuedAt = iat.Time
	}
	return s, nil
}
