// Package services contains application services for the Alpha client.
// This file defines the authentication service: login and registration,
// password management, and the locally stored session.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/alphastock/internal/client/client"
	"github.com/dmitrijs2005/alphastock/internal/client/models"
	"github.com/dmitrijs2005/alphastock/internal/client/tokens"
	"github.com/dmitrijs2005/alphastock/internal/common"
)

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: authenticate and persist the returned token pair.
//   - Register: create an account, then log in with the same credentials.
//   - ForgotPassword / ResetPassword: the e-mailed reset flow.
//   - ChangePassword: change the password of the logged-in user.
//   - Me: profile of the logged-in user.
//   - Logout: forget the stored tokens.
//   - IsLoggedIn / Session: inspect the stored access token locally.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) error
	Register(ctx context.Context, name, email string, password []byte) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token string, newPassword []byte) error
	ChangePassword(ctx context.Context, current, next []byte) error
	Me(ctx context.Context) (*models.User, error)
	Logout(ctx context.Context) error
	IsLoggedIn(ctx context.Context) (bool, error)
	Session(ctx context.Context) (*tokens.Session, error)
}

var ErrSamePassword = errors.New("new password must differ from the current one")

type authService struct {
	client client.Client
	store  tokens.Store
}

// NewAuthService binds the service to an API client and the store the
// client reads its tokens from.
func NewAuthService(c client.Client, store tokens.Store) AuthService {
	return &authService{client: c, store: store}
}

func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	email = models.NormalizeEmail(email)
	if err := models.ValidateEmail(email); err != nil {
		return err
	}
	if len(password) == 0 {
		return fmt.Errorf("%w: password is required", models.ErrValidation)
	}

	var resp models.AuthTokenResponse
	req := models.LoginRequest{Email: email, Password: string(password)}
	if err := a.client.Do(ctx, http.MethodPost, "/auth/login", req, &resp, client.WithoutAuth()); err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	if resp.AccessToken == "" {
		return fmt.Errorf("login error: %w", client.ErrInvalidResponse)
	}

	if err := a.store.SetTokens(ctx, resp.AccessToken, resp.RefreshToken); err != nil {
		return fmt.Errorf("token saving error: %w", err)
	}
	return nil
}

// Register creates the account and logs in right away.
func (a *authService) Register(ctx context.Context, name, email string, password []byte) error {
	if err := models.ValidateName(name); err != nil {
		return err
	}
	email = models.NormalizeEmail(email)
	if err := models.ValidateEmail(email); err != nil {
		return err
	}
	if err := models.CheckPassword(string(password)); err != nil {
		return err
	}

	req := models.RegisterRequest{Email: email, Password: string(password), Name: name}
	if err := a.client.Do(ctx, http.MethodPost, "/auth/register", req, nil, client.WithoutAuth()); err != nil {
		return fmt.Errorf("register error: %w", err)
	}
	return a.Login(ctx, email, password)
}

func (a *authService) ForgotPassword(ctx context.Context, email string) error {
	email = models.NormalizeEmail(email)
	if err := models.ValidateEmail(email); err != nil {
		return err
	}
	req := models.ForgotPasswordRequest{Email: email}
	return a.client.Do(ctx, http.MethodPost, "/auth/forgot-password", req, nil, client.WithoutAuth())
}

func (a *authService) ResetPassword(ctx context.Context, token string, newPassword []byte) error {
	if token == "" {
		return fmt.Errorf("%w: reset token is required", models.ErrValidation)
	}
	if err := models.CheckPassword(string(newPassword)); err != nil {
		return err
	}
	req := models.ResetPasswordRequest{Token: token, NewPassword: string(newPassword)}
	return a.client.Do(ctx, http.MethodPost, "/auth/reset-password", req, nil, client.WithoutAuth())
}

func (a *authService) ChangePassword(ctx context.Context, current, next []byte) error {
	if len(current) == 0 {
		return fmt.Errorf("%w: current password is required", models.ErrValidation)
	}
	if err := models.CheckPassword(string(next)); err != nil {
		return err
	}
	if string(current) == string(next) {
		return fmt.Errorf("%w: %w", models.ErrValidation, ErrSamePassword)
	}
	req := models.ChangePasswordRequest{CurrentPassword: string(current), NewPassword: string(next)}
	return a.client.Do(ctx, http.MethodPut, "/me/password", req, nil)
}

func (a *authService) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := a.client.Do(ctx, http.MethodGet, "/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.store.Clear(ctx)
}

func (a *authService) IsLoggedIn(ctx context.Context) (bool, error) {
	access, err := a.store.AccessToken(ctx)
	if err != nil {
		return false, err
	}
	return tokens.NormalizeBearer(access) != "", nil
}

// Session decodes the stored access token. It returns common.ErrNotLoggedIn
// when there is none.
func (a *authService) Session(ctx context.Context) (*tokens.Session, error) {
	access, err := a.store.AccessToken(ctx)
	if err != nil {
		return nil, err
	}
	if tokens.NormalizeBearer(access) == "" {
		return nil, common.ErrNotLoggedIn
	}
	return tokens.Inspect(access)
}
