package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/alphastock/internal/client/client"
	"github.com/dmitrijs2005/alphastock/internal/client/config"
	"github.com/dmitrijs2005/alphastock/internal/client/services"
	"github.com/dmitrijs2005/alphastock/internal/client/tokens"
	"github.com/dmitrijs2005/alphastock/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB
	api    *client.HTTPClient

	authService        services.AuthService
	productService     services.ProductService
	rawMaterialService services.RawMaterialService
	unitService        services.UnitService
	productionService  services.ProductionService

	mu       sync.Mutex
	mode     Mode
	userName string

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local database and builds the API client and services.
// The caller must Close the app.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	store := tokens.NewLocalStore(db, tokens.WithPassphrase(c.StorePassphrase))
	a := newApp(c, log, store)
	a.db = db
	return a, nil
}

func newApp(c *config.Config, log logging.Logger, store tokens.Store) *App {
	a := &App{
		config: c,
		log:    log,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	a.api = client.New(c.APIBaseURL, store,
		client.WithLogger(log),
		client.WithTimeout(c.RequestTimeout),
		client.WithRetryMax(c.RetryMax),
		client.WithSessionInvalidatedHandler(a.sessionExpired),
	)

	a.authService = services.NewAuthService(a.api, store)
	a.productService = services.NewProductService(a.api)
	a.rawMaterialService = services.NewRawMaterialService(a.api)
	a.unitService = services.NewUnitService(a.api)
	a.productionService = services.NewProductionService(a.api)
	return a
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// sessionExpired runs when a token refresh fails and the tokens were cleared.
func (a *App) sessionExpired() {
	a.setUserName("")
	fmt.Fprintln(a.out, "Session expired, please log in again.")
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(context.Background(), "connectivity changed", "mode", mode)
	}
}

func (a *App) Mode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) setUserName(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.userName = name
}

// refreshUserName reads the logged-in user's e-mail from the stored token.
func (a *App) refreshUserName(ctx context.Context) {
	s, err := a.authService.Session(ctx)
	if err != nil {
		a.setUserName("")
		return
	}
	a.setUserName(s.Email)
}

func (a *App) isLoggedIn(ctx context.Context) bool {
	ok, err := a.authService.IsLoggedIn(ctx)
	return err == nil && ok
}

// checkOnline probes the server once and records the result.
func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := a.api.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher probes the server every interval until ctx ends.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) getStatus() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if a.mode != "" {
		s = s + string(a.mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}
