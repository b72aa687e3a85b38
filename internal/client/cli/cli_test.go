package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/alphastock/internal/client/apitest"
	"github.com/dmitrijs2005/alphastock/internal/client/config"
	"github.com/dmitrijs2005/alphastock/internal/client/tokens"
	"github.com/dmitrijs2005/alphastock/internal/logging"
	"github.com/stretchr/testify/require"
)

const (
	testEmail    = "ana@alpha.test"
	testPassword = "Str0ng!pass"
)

// stubPasswords makes getPassword return pws in order, then io.EOF.
func stubPasswords(t *testing.T, pws ...string) {
	t.Helper()
	orig := getPassword
	i := 0
	getPassword = func(io.Writer, string) ([]byte, error) {
		if i >= len(pws) {
			return nil, io.EOF
		}
		pw := []byte(pws[i])
		i++
		return pw, nil
	}
	t.Cleanup(func() { getPassword = orig })
}

// captureOutput collects what printlnFn prints.
func captureOutput(t *testing.T) *[]string {
	t.Helper()
	orig := printlnFn
	lines := &[]string{}
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = toString(v)
		}
		*lines = append(*lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return lines
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case error:
		return x.Error()
	default:
		return ""
	}
}

type testEnv struct {
	srv   *apitest.Server
	store *tokens.MemoryStore
	app   *App
	out   *bytes.Buffer
}

func newTestEnv(t *testing.T, input string) *testEnv {
	t.Helper()
	srv := apitest.New()
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.APIBaseURL = srv.BaseURL()
	cfg.RetryMax = 0

	e := &testEnv{srv: srv, store: tokens.NewMemoryStore(), out: &bytes.Buffer{}}
	e.app = newApp(cfg, logging.Discard(), e.store)
	e.app.out = e.out
	e.app.reader = bufio.NewReader(strings.NewReader(input))
	return e
}

func (e *testEnv) run(args ...string) error {
	return e.app.execLine(context.Background(), args)
}

// login creates the test account and logs in, leaving the output empty.
func (e *testEnv) login(t *testing.T) {
	t.Helper()
	e.srv.AddUser("Ana", testEmail, testPassword)
	stubPasswords(t, testPassword)
	require.NoError(t, e.run("login", "--email", testEmail))
	e.out.Reset()
}
