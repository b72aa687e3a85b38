package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/alphastock/internal/client/apitest"
	"github.com/dmitrijs2005/alphastock/internal/client/client"
	"github.com/dmitrijs2005/alphastock/internal/client/tokens"
	"github.com/stretchr/testify/require"
)

const (
	testEmail    = "ana@alpha.test"
	testPassword = "Str0ng!pass"
)

type env struct {
	srv    *apitest.Server
	store  *tokens.MemoryStore
	client *client.HTTPClient
	auth   AuthService

	invalidated int
}

func newEnv(t *testing.T) *env {
	t.Helper()
	srv := apitest.New()
	t.Cleanup(srv.Close)

	e := &env{srv: srv, store: tokens.NewMemoryStore()}
	e.client = client.New(srv.BaseURL(), e.store,
		client.WithDoer(srv.Client()),
		client.WithSessionInvalidatedHandler(func() { e.invalidated++ }),
	)
	e.auth = NewAuthService(e.client, e.store)
	return e
}

// loggedIn returns an env with an account created and a session stored.
func loggedIn(t *testing.T) *env {
	t.Helper()
	e := newEnv(t)
	e.srv.AddUser("Ana", testEmail, testPassword)
	require.NoError(t, e.auth.Login(context.Background(), testEmail, []byte(testPassword)))
	return e
}
