// Package adminclient wires the el-cafe admin client together: token store,
// session controller, background session monitor, and the bearer-aware API
// client. Construct one App at application start and inject it into the
// components that need it.
package adminclient

import (
	"context"
	"net/http"

	"github.com/elcafe/go-admin-client/api"
	"github.com/elcafe/go-admin-client/internal/config"
	"github.com/elcafe/go-admin-client/monitor"
	"github.com/elcafe/go-admin-client/session"
	"github.com/elcafe/go-admin-client/tokenstore"
	"github.com/pkg/errors"
)

// App holds one fully wired client session.
type App struct {
	Store   *tokenstore.Store
	Session *session.Controller
	Monitor *monitor.Monitor
	API     *api.Client
}

// Options configures New.
type Options struct {
	// BaseURL overrides the configured API base URL.
	BaseURL string

	// Repo overrides the token repository (default: file-backed at the
	// configured token file path). Pass tokenstore.NewRedisRepo(...) to
	// share a session across processes.
	Repo tokenstore.Repo

	// OnSessionExpired is invoked when the session can no longer be renewed
	// (the login-redirect hook). May be nil.
	OnSessionExpired func()
}

// New builds a wired App from the environment configuration and the given
// options.
func New(opts Options) (*App, error) {
	cfg := config.Load()

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = cfg.GetAPIBaseURL()
	}

	repo := opts.Repo
	if repo == nil {
		fileRepo, err := tokenstore.NewFileRepo(cfg.GetTokenFilePath())
		if err != nil {
			return nil, errors.Wrap(err, "[adminclient.New] file repo")
		}
		repo = fileRepo
	}

	store, err := tokenstore.New(repo,
		tokenstore.WithFallbackTTLs(
			cfg.GetDefaultAccessTokenExpiry(),
			cfg.GetDefaultRefreshTokenExpiry(),
		),
		tokenstore.WithProactiveWindow(cfg.GetProactiveRefreshWindow()),
	)
	if err != nil {
		return nil, errors.Wrap(err, "[adminclient.New] token store")
	}

	authService, err := api.NewAuthService(baseURL)
	if err != nil {
		return nil, errors.Wrap(err, "[adminclient.New] auth service")
	}

	controller, err := session.NewController(store, authService)
	if err != nil {
		return nil, errors.Wrap(err, "[adminclient.New] session controller")
	}

	transport, err := api.NewTransport(store, controller,
		api.WithSessionExpiredHook(opts.OnSessionExpired))
	if err != nil {
		return nil, errors.Wrap(err, "[adminclient.New] transport")
	}

	client, err := api.NewClient(baseURL, &http.Client{
		Transport: transport,
		Timeout:   cfg.GetRequestTimeout(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "[adminclient.New] api client")
	}

	sessionMonitor, err := monitor.New(store, controller, opts.OnSessionExpired,
		monitor.WithInterval(cfg.GetMonitorInterval()))
	if err != nil {
		return nil, errors.Wrap(err, "[adminclient.New] monitor")
	}

	return &App{
		Store:   store,
		Session: controller,
		Monitor: sessionMonitor,
		API:     client,
	}, nil
}

// Start validates any persisted session and, if one is usable, runs the
// background monitor until the context is cancelled or the session expires.
// Returns whether a usable session was found.
func (a *App) Start(ctx context.Context) bool {
	if !a.Session.Bootstrap(ctx) {
		return false
	}
	go a.Monitor.Run(ctx)
	return true
}
