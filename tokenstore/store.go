// Package tokenstore is the single authority for reading, writing, and
// judging the freshness of the persisted session fields. It makes no network
// calls; every other session component delegates token-state decisions here.
package tokenstore

import (
	"context"
	"strconv"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// Fallback lifetimes used when a token carries no readable exp claim.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// DefaultProactiveWindow is the lookahead used by ShouldRefreshSoon. A token
// inside this window is still valid but close enough to expiry that renewing
// it now avoids a user-visible failed request.
const DefaultProactiveWindow = 2 * time.Minute

// Store judges token freshness against a Repo.
type Store struct {
	repo       Repo
	accessTTL  time.Duration
	refreshTTL time.Duration
	window     time.Duration
	nowTime    func() time.Time // nowTime function (injectable for testing)
}

// StoreOption defines a function type to modify the Store instance.
type StoreOption func(*Store)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) StoreOption {
	return func(s *Store) {
		s.nowTime = nowFunc
	}
}

// WithFallbackTTLs overrides the default lifetimes assigned to tokens whose
// expiry claim cannot be read.
func WithFallbackTTLs(access, refresh time.Duration) StoreOption {
	return func(s *Store) {
		s.accessTTL = access
		s.refreshTTL = refresh
	}
}

// WithProactiveWindow overrides the lookahead used by ShouldRefreshSoon.
func WithProactiveWindow(window time.Duration) StoreOption {
	return func(s *Store) {
		s.window = window
	}
}

// New initializes a Store over the given repository.
func New(repo Repo, options ...StoreOption) (*Store, error) {
	if repo == nil {
		return nil, errors.New("[tokenstore.New] repo is required")
	}

	store := &Store{
		repo:       repo,
		accessTTL:  DefaultAccessTokenTTL,
		refreshTTL: DefaultRefreshTokenTTL,
		window:     DefaultProactiveWindow,
		nowTime:    time.Now,
	}

	for _, opt := range options {
		opt(store)
	}

	return store, nil
}

// DecodeExpiry extracts the exp claim from a JWT-like token without
// verifying its signature. It reports false for any token that is malformed,
// opaque, or missing the claim; it never panics.
func DecodeExpiry(rawToken string) (time.Time, bool) {
	token, _, err := jwtlib.NewParser().ParseUnverified(rawToken, jwtlib.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	exp, err := token.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// IsPlaceholder reports whether a stored token value should be treated as
// absent. Literal "null"/"undefined" strings are drift left behind by older
// clients that serialized missing values.
func IsPlaceholder(token string) bool {
	return token == "" || token == "null" || token == "undefined"
}

// Persist installs a freshly issued token pair, deriving each expiry from
// the token's own exp claim or the fallback lifetime. All five session
// fields are written as a set.
func (s *Store) Persist(ctx context.Context, accessToken, refreshToken string) error {
	now := s.nowTime()

	return s.repo.SetAll(ctx, map[string]string{
		KeyAccessToken:        accessToken,
		KeyRefreshToken:       refreshToken,
		KeyAccessTokenExpiry:  formatMillis(s.expiryFor(accessToken, now, s.accessTTL)),
		KeyRefreshTokenExpiry: formatMillis(s.expiryFor(refreshToken, now, s.refreshTTL)),
		KeyTokenSetTime:       formatMillis(now),
	})
}

// Rotate installs a refreshed access token. When the backend also reissued
// the refresh token it is persisted alongside; otherwise the stored refresh
// token and its expiry are left untouched — the expiry of a token that was
// not reissued is never re-derived.
func (s *Store) Rotate(ctx context.Context, accessToken, refreshToken string) error {
	now := s.nowTime()

	entries := map[string]string{
		KeyAccessToken:       accessToken,
		KeyAccessTokenExpiry: formatMillis(s.expiryFor(accessToken, now, s.accessTTL)),
		KeyTokenSetTime:      formatMillis(now),
	}
	if refreshToken != "" {
		entries[KeyRefreshToken] = refreshToken
		entries[KeyRefreshTokenExpiry] = formatMillis(s.expiryFor(refreshToken, now, s.refreshTTL))
	}
	return s.repo.SetAll(ctx, entries)
}

// IsAccessExpired reports whether the access token must no longer be used.
// A missing or unreadable expiry counts as expired.
func (s *Store) IsAccessExpired(ctx context.Context) bool {
	return s.isExpired(ctx, KeyAccessTokenExpiry)
}

// IsRefreshExpired reports whether the refresh token must no longer be used.
func (s *Store) IsRefreshExpired(ctx context.Context) bool {
	return s.isExpired(ctx, KeyRefreshTokenExpiry)
}

// ShouldRefreshSoon reports whether the access token is still valid but has
// strictly less than the proactive window remaining. An already-expired
// token is not in the window; that case is reactive, not proactive.
func (s *Store) ShouldRefreshSoon(ctx context.Context) bool {
	expiry, ok := s.expiryAt(ctx, KeyAccessTokenExpiry)
	if !ok {
		return false
	}
	remaining := expiry.Sub(s.nowTime())
	return remaining > 0 && remaining < s.window
}

// Clear removes all five session fields as a set. Safe to call when nothing
// is stored.
func (s *Store) Clear(ctx context.Context) error {
	return s.repo.DeleteAll(ctx, SessionKeys...)
}

// ValidateOnLoad sweeps the persisted state once at process start and
// reports whether a usable session exists. Partial or corrupt state is
// cleared rather than reported as an error: an access token without a usable
// refresh token is not a valid session, since it cannot be renewed.
func (s *Store) ValidateOnLoad(ctx context.Context) bool {
	accessToken, _ := s.repo.Get(ctx, KeyAccessToken)
	refreshToken, _ := s.repo.Get(ctx, KeyRefreshToken)

	if IsPlaceholder(accessToken) {
		_ = s.repo.DeleteAll(ctx, KeyAccessToken, KeyAccessTokenExpiry)
		accessToken = ""
	}

	if IsPlaceholder(refreshToken) {
		_ = s.Clear(ctx)
		return false
	}

	if s.IsAccessExpired(ctx) && s.IsRefreshExpired(ctx) {
		_ = s.Clear(ctx)
		return false
	}

	return accessToken != "" && !s.IsAccessExpired(ctx)
}

// AccessToken returns the stored access token, or an empty string when none
// is stored or the repository is unreachable.
func (s *Store) AccessToken(ctx context.Context) string {
	token, _ := s.repo.Get(ctx, KeyAccessToken)
	if IsPlaceholder(token) {
		return ""
	}
	return token
}

// RefreshToken returns the stored refresh token, or an empty string.
func (s *Store) RefreshToken(ctx context.Context) string {
	token, _ := s.repo.Get(ctx, KeyRefreshToken)
	if IsPlaceholder(token) {
		return ""
	}
	return token
}

// TokenSetTime returns when the current pair was installed. Diagnostic only.
func (s *Store) TokenSetTime(ctx context.Context) (time.Time, bool) {
	return s.expiryAt(ctx, KeyTokenSetTime)
}

func (s *Store) expiryFor(token string, now time.Time, fallback time.Duration) time.Time {
	if expiry, ok := DecodeExpiry(token); ok {
		return expiry
	}
	return now.Add(fallback)
}

func (s *Store) isExpired(ctx context.Context, key string) bool {
	expiry, ok := s.expiryAt(ctx, key)
	if !ok {
		return true
	}
	return !s.nowTime().Before(expiry) // now >= expiry counts as expired
}

func (s *Store) expiryAt(ctx context.Context, key string) (time.Time, bool) {
	value, err := s.repo.Get(ctx, key)
	if err != nil || value == "" {
		return time.Time{}, false
	}
	millis, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(millis), true
}

func formatMillis(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}
