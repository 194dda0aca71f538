package api

import (
	"context"
	"io"
	"net/http"

	apperrors "github.com/elcafe/go-admin-client/internal/errors"
	"github.com/elcafe/go-admin-client/session"
	"github.com/elcafe/go-admin-client/tokenstore"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Refresher performs one token refresh, collapsing concurrent triggers into
// a single network call. Implemented by session.Controller; the transport's
// reactive path and the monitor's proactive path share the same guard.
type Refresher interface {
	RefreshToken(ctx context.Context) session.Result
}

// Transport is an http.RoundTripper that attaches the current bearer token
// to every outgoing request and transparently recovers from a single 401
// rejection with one refresh-and-retry. The retry budget is scoped to each
// request, so a request that fails again after its retry is reported to the
// caller rather than retried forever.
type Transport struct {
	base             http.RoundTripper
	store            *tokenstore.Store
	refresher        Refresher
	onSessionExpired func()
}

// TransportOption defines a function type to modify the Transport instance.
type TransportOption func(*Transport)

// WithBase sets the underlying round tripper (defaults to
// http.DefaultTransport).
func WithBase(base http.RoundTripper) TransportOption {
	return func(t *Transport) {
		t.base = base
	}
}

// WithSessionExpiredHook registers a callback fired when a 401 cannot be
// recovered, so the host application can navigate to its login entry point.
func WithSessionExpiredHook(fn func()) TransportOption {
	return func(t *Transport) {
		t.onSessionExpired = fn
	}
}

// NewTransport initializes a Transport with required dependencies.
func NewTransport(store *tokenstore.Store, refresher Refresher, options ...TransportOption) (*Transport, error) {
	if store == nil {
		return nil, errors.New("[NewTransport] store is required")
	}
	if refresher == nil {
		return nil, errors.New("[NewTransport] refresher is required")
	}

	transport := &Transport{
		base:      http.DefaultTransport,
		store:     store,
		refresher: refresher,
	}

	for _, opt := range options {
		opt(transport)
	}

	return transport, nil
}

var _ http.RoundTripper = (*Transport)(nil)

// RoundTrip dispatches the request with the current bearer token. On a 401
// it runs exactly one refresh through the shared coordinator and re-sends
// the request once with the new token; if recovery fails the original 401
// is returned and the session-expired hook fires.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	resp, err := t.base.RoundTrip(t.authorize(ctx, req))
	if err != nil || resp.StatusCode != http.StatusUnauthorized {
		return resp, err
	}

	// A body without GetBody cannot be replayed; give up without retrying.
	if req.Body != nil && req.GetBody == nil {
		log.Warn().Err(apperrors.ErrBodyNotReplayable).Str("url", req.URL.Path).Msg("skipping retry")
		return resp, nil
	}

	// The controller fast-fails without a network call when the refresh
	// token is already expired, and clears the store on any failure.
	if result := t.refresher.RefreshToken(ctx); !result.Success {
		log.Info().Err(apperrors.ErrSessionExpired).Str("url", req.URL.Path).Msg("request recovery failed")
		if t.onSessionExpired != nil {
			t.onSessionExpired()
		}
		return resp, nil
	}

	retry := req.Clone(ctx)
	if req.GetBody != nil {
		body, bodyErr := req.GetBody()
		if bodyErr != nil {
			return resp, nil
		}
		retry.Body = body
	}

	// The first response is abandoned; drain it so the connection is reused.
	io.Copy(io.Discard, resp.Body) //nolint:errcheck
	resp.Body.Close()

	return t.base.RoundTrip(t.authorize(ctx, retry))
}

// authorize clones the request with the current bearer token and a fresh
// request ID. The inbound request is never mutated (RoundTrip contract).
func (t *Transport) authorize(ctx context.Context, req *http.Request) *http.Request {
	authed := req.Clone(ctx)
	authed.Header.Set("X-Request-ID", uuid.NewString())
	if token := t.store.AccessToken(ctx); token != "" {
		authed.Header.Set("Authorization", "Bearer "+token)
	}
	return authed
}
