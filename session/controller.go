// Package session owns the in-memory authentication state of the admin
// client and is the only component permitted to change it.
package session

import (
	"context"
	stderrors "errors"
	"sync"

	apperrors "github.com/elcafe/go-admin-client/internal/errors"
	"github.com/elcafe/go-admin-client/tokenstore"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const sessionExpiredMessage = "Session expired"

// State is a snapshot of the observable authentication state.
type State struct {
	User            *User
	Token           string
	IsAuthenticated bool
}

// Controller exposes the session verbs the rest of the application uses:
// login, register, refresh, logout. Persistence is delegated to the token
// store; the controller owns only the in-memory state.
type Controller struct {
	store      *tokenstore.Store
	authClient AuthClient

	mu          sync.RWMutex
	user        *User
	token       string
	authed      bool
	subscribers []func(State)

	// All refresh entry points (proactive monitor, reactive transport,
	// explicit callers) funnel through this group, so concurrent triggers
	// collapse into a single network call sharing one Result.
	refreshGroup singleflight.Group
}

// NewController initializes a Controller with required dependencies.
func NewController(store *tokenstore.Store, authClient AuthClient) (*Controller, error) {
	if store == nil {
		return nil, errors.New("[NewController] store is required")
	}
	if authClient == nil {
		return nil, errors.New("[NewController] authClient is required")
	}

	return &Controller{
		store:      store,
		authClient: authClient,
	}, nil
}

// Bootstrap validates any persisted session once at process start and seeds
// the in-memory state from it. Returns whether a usable session was found.
func (c *Controller) Bootstrap(ctx context.Context) bool {
	authed := c.store.ValidateOnLoad(ctx)
	token := ""
	if authed {
		token = c.store.AccessToken(ctx)
	}
	c.setState(nil, token, authed)
	return authed
}

// Login authenticates against the backend. On success the token pair is
// persisted and the state becomes authenticated; on failure the state is
// untouched and the Result carries the backend's message.
func (c *Controller) Login(ctx context.Context, creds Credentials) Result {
	grant, err := c.authClient.Login(ctx, creds)
	if err != nil {
		return failure(messageFromError(err, "Login failed"))
	}
	if err := c.store.Persist(ctx, grant.AccessToken, grant.RefreshToken); err != nil {
		log.Error().Err(err).Msg("persisting token pair after login")
		return failure("Login failed")
	}
	c.setState(grant.User, grant.AccessToken, true)
	return ok()
}

// Register creates an account. Identical contract to Login.
func (c *Controller) Register(ctx context.Context, reg Registration) Result {
	grant, err := c.authClient.Register(ctx, reg)
	if err != nil {
		return failure(messageFromError(err, "Registration failed"))
	}
	if err := c.store.Persist(ctx, grant.AccessToken, grant.RefreshToken); err != nil {
		log.Error().Err(err).Msg("persisting token pair after registration")
		return failure("Registration failed")
	}
	c.setState(grant.User, grant.AccessToken, true)
	return ok()
}

// RefreshToken renews the access token using the stored refresh token.
// It fails fast, without a network call, when the refresh token is absent or
// expired. Any failure is a hard logout: the store is cleared and the state
// becomes unauthenticated.
func (c *Controller) RefreshToken(ctx context.Context) Result {
	result, _, _ := c.refreshGroup.Do("refresh", func() (interface{}, error) {
		// The call is shared by every concurrent trigger, so it must not die
		// with the first caller's context.
		return c.refresh(context.WithoutCancel(ctx)), nil
	})
	return result.(Result)
}

func (c *Controller) refresh(ctx context.Context) Result {
	refreshToken := c.store.RefreshToken(ctx)
	if err := refreshEligibility(ctx, refreshToken, c.store); err != nil {
		log.Info().Err(err).Msg("refresh not possible")
		c.expire(ctx)
		return failure(sessionExpiredMessage)
	}

	grant, err := c.authClient.Refresh(ctx, refreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("token refresh rejected")
		c.expire(ctx)
		return failure(sessionExpiredMessage)
	}

	if err := c.store.Rotate(ctx, grant.AccessToken, grant.RefreshToken); err != nil {
		log.Error().Err(err).Msg("persisting rotated tokens")
		c.expire(ctx)
		return failure(sessionExpiredMessage)
	}

	c.setState(c.User(), grant.AccessToken, true)
	return ok()
}

// Logout clears the token store and resets the in-memory state. Idempotent.
func (c *Controller) Logout() {
	c.expire(context.Background())
}

// UpdateTokens persists tokens obtained outside the controller (the
// transport's reactive refresh) so the in-memory state stays consistent with
// storage. An empty refreshToken keeps the existing one.
func (c *Controller) UpdateTokens(ctx context.Context, accessToken, refreshToken string) error {
	if err := c.store.Rotate(ctx, accessToken, refreshToken); err != nil {
		return errors.Wrap(err, "[Controller.UpdateTokens] rotate")
	}
	c.setState(c.User(), accessToken, true)
	return nil
}

// User returns the last-known authenticated user, or nil.
func (c *Controller) User() *User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user
}

// Token returns the current access token mirrored in memory.
func (c *Controller) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// IsAuthenticated reports whether a usable session is active.
func (c *Controller) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.authed
}

// Subscribe registers a callback invoked after every state change. The UI
// layer uses this to re-render on login/logout.
func (c *Controller) Subscribe(fn func(State)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, fn)
}

func (c *Controller) expire(ctx context.Context) {
	if err := c.store.Clear(ctx); err != nil {
		log.Error().Err(err).Msg("clearing token store")
	}
	c.setState(nil, "", false)
}

func (c *Controller) setState(user *User, token string, authed bool) {
	c.mu.Lock()
	c.user = user
	c.token = token
	c.authed = authed
	subscribers := make([]func(State), len(c.subscribers))
	copy(subscribers, c.subscribers)
	state := State{User: user, Token: token, IsAuthenticated: authed}
	c.mu.Unlock()

	for _, fn := range subscribers {
		fn(state)
	}
}

// refreshEligibility reports why a refresh cannot even be attempted, or nil.
// Both conditions bypass the network entirely.
func refreshEligibility(ctx context.Context, refreshToken string, store *tokenstore.Store) error {
	if refreshToken == "" {
		return apperrors.ErrNoRefreshToken
	}
	if store.IsRefreshExpired(ctx) {
		return apperrors.ErrRefreshTokenExpired
	}
	return nil
}

// messager is implemented by backend errors that carry a user-presentable
// message (api.Error).
type messager interface {
	BackendMessage() string
}

func messageFromError(err error, fallback string) string {
	var m messager
	if stderrors.As(err, &m) && m.BackendMessage() != "" {
		return m.BackendMessage()
	}
	return fallback
}
