// Package monitor keeps an authenticated session alive across idle periods
// by polling token freshness, and forces logout promptly once the session
// can no longer be renewed.
package monitor

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/elcafe/go-admin-client/session"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// DefaultInterval is the polling cadence. Fixed-interval polling is a
// deliberate trade-off over exact-deadline timers: it tolerates clock drift
// and system sleep/wake.
const DefaultInterval = 30 * time.Second

// TokenChecker judges persisted token freshness. Implemented by
// tokenstore.Store.
type TokenChecker interface {
	IsAccessExpired(ctx context.Context) bool
	IsRefreshExpired(ctx context.Context) bool
	ShouldRefreshSoon(ctx context.Context) bool
}

// Session is the slice of the session controller the monitor drives.
type Session interface {
	IsAuthenticated() bool
	RefreshToken(ctx context.Context) session.Result
	Logout()
}

// Monitor polls token freshness while a session is authenticated and
// triggers proactive refresh or forced logout.
type Monitor struct {
	tokens    TokenChecker
	session   Session
	onExpired func()
	interval  time.Duration

	wake     chan struct{}
	checking atomic.Bool
}

// Option defines a function type to modify the Monitor instance.
type Option func(*Monitor)

// WithInterval overrides the polling interval (primarily for testing).
func WithInterval(interval time.Duration) Option {
	return func(m *Monitor) {
		m.interval = interval
	}
}

// New initializes a Monitor. onExpired is invoked after a forced logout so
// the host application can navigate to its login entry point; it may be nil.
func New(tokens TokenChecker, sess Session, onExpired func(), options ...Option) (*Monitor, error) {
	if tokens == nil {
		return nil, errors.New("[monitor.New] tokens is required")
	}
	if sess == nil {
		return nil, errors.New("[monitor.New] session is required")
	}

	monitor := &Monitor{
		tokens:    tokens,
		session:   sess,
		onExpired: onExpired,
		interval:  DefaultInterval,
		wake:      make(chan struct{}, 1),
	}

	for _, opt := range options {
		opt(monitor)
	}

	return monitor, nil
}

// Run watches the session until the context is cancelled, the session
// becomes unauthenticated, or the refresh token can no longer renew it.
// It checks once immediately on entry and then on every tick or Wake.
func (m *Monitor) Run(ctx context.Context) {
	if !m.session.IsAuthenticated() {
		return
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	if m.check(ctx) {
		m.expire()
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-m.wake:
		}

		if !m.session.IsAuthenticated() {
			// Logged out elsewhere; stop watching.
			return
		}
		if m.check(ctx) {
			m.expire()
			return
		}
	}
}

// Wake requests an immediate check, e.g. when the host application regains
// foreground visibility. Never blocks; a wake arriving while a check is
// pending is coalesced.
func (m *Monitor) Wake() {
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

// check evaluates token freshness and reports whether the session has
// expired beyond renewal. A check arriving while another is in flight is a
// no-op.
func (m *Monitor) check(ctx context.Context) (expired bool) {
	if !m.checking.CompareAndSwap(false, true) {
		return false
	}
	defer m.checking.Store(false)

	switch {
	case m.tokens.IsRefreshExpired(ctx):
		log.Info().Msg("refresh token expired, logging out")
		return true

	case m.tokens.IsAccessExpired(ctx), m.tokens.ShouldRefreshSoon(ctx):
		result := m.session.RefreshToken(ctx)
		if !result.Success {
			log.Info().Msg("token refresh failed, logging out")
			return true
		}
		log.Debug().Msg("token refreshed")
	}

	return false
}

// expire is the terminal transition: the session is logged out and the host
// application is signalled to show its login entry point. A fresh login
// restarts the monitor via a new Run call.
func (m *Monitor) expire() {
	m.session.Logout()
	if m.onExpired != nil {
		m.onExpired()
	}
}
