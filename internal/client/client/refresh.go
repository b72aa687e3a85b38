package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/alphastock/internal/client/models"
)

// RefreshPath is the endpoint that exchanges a refresh token for a new pair.
const RefreshPath = "/auth/refresh"

// refresh obtains a new access token. It returns "" when no refresh is
// possible: another refresh is in flight, no refresh token is stored, or the
// server rejected it. In the last case the stored tokens are cleared and the
// session-invalidated handler runs.
func (c *HTTPClient) refresh(ctx context.Context) string {
	if !c.refreshing.CompareAndSwap(false, true) {
		c.log.Debug(ctx, "token refresh already in flight")
		return ""
	}
	defer c.refreshing.Store(false)

	refreshToken, err := c.store.RefreshToken(ctx)
	if err != nil {
		c.log.Warn(ctx, "cannot read refresh token", "error", err)
		return ""
	}
	if refreshToken == "" {
		return ""
	}

	var resp models.AuthTokenResponse
	err = c.Do(ctx, http.MethodPost, RefreshPath,
		models.RefreshTokenRequest{RefreshToken: refreshToken}, &resp, WithoutAuth(), withoutRetry())
	if err == nil && (resp.AccessToken == "" || resp.RefreshToken == "") {
		err = invalidResponse(http.StatusOK, errMissingTokens)
	}
	if err == nil {
		err = c.store.SetTokens(ctx, resp.AccessToken, resp.RefreshToken)
	}

	if err != nil {
		c.log.Warn(ctx, "token refresh failed, session cleared", "error", err)
		c.invalidateSession(ctx)
		return ""
	}

	c.log.Info(ctx, "access token refreshed")
	return resp.AccessToken
}

func (c *HTTPClient) invalidateSession(ctx context.Context) {
	if err := c.store.Clear(ctx); err != nil {
		c.log.Error(ctx, "cannot clear stored tokens", "error", err)
	}
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}
