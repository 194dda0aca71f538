package session_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/elcafe/go-admin-client/api"
	"github.com/elcafe/go-admin-client/session"
	"github.com/elcafe/go-admin-client/tokenstore"
	"github.com/stretchr/testify/require"
)

// fakeAuthClient is an in-memory session.AuthClient in the spirit of the
// repository fakes used across the codebase's tests.
type fakeAuthClient struct {
	mu sync.Mutex

	loginGrant *session.TokenGrant
	loginErr   error

	registerGrant *session.TokenGrant
	registerErr   error

	refreshGrant *session.TokenGrant
	refreshErr   error
	refreshDelay time.Duration

	loginCalls   int
	refreshCalls int32
	lastRefresh  string
}

func (f *fakeAuthClient) Login(_ context.Context, _ session.Credentials) (*session.TokenGrant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loginCalls++
	return f.loginGrant, f.loginErr
}

func (f *fakeAuthClient) Register(_ context.Context, _ session.Registration) (*session.TokenGrant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.registerGrant, f.registerErr
}

func (f *fakeAuthClient) Refresh(ctx context.Context, refreshToken string) (*session.TokenGrant, error) {
	atomic.AddInt32(&f.refreshCalls, 1)
	if f.refreshDelay > 0 {
		select {
		case <-time.After(f.refreshDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastRefresh = refreshToken
	return f.refreshGrant, f.refreshErr
}

func (f *fakeAuthClient) refreshCallCount() int {
	return int(atomic.LoadInt32(&f.refreshCalls))
}

type controllerFixture struct {
	controller *session.Controller
	store      *tokenstore.Store
	repo       *tokenstore.InMemoryRepo
	auth       *fakeAuthClient
}

func newControllerFixture(t *testing.T) *controllerFixture {
	t.Helper()

	repo := tokenstore.NewInMemoryRepo()
	store, err := tokenstore.New(repo)
	require.NoError(t, err)

	auth := &fakeAuthClient{}
	controller, err := session.NewController(store, auth)
	require.NoError(t, err)

	return &controllerFixture{controller: controller, store: store, repo: repo, auth: auth}
}

func testUser() *session.User {
	return &session.User{ID: 1, Email: "admin@elcafe.com", FirstName: "Ada", Role: "ADMIN"}
}

func TestNewControllerValidatesDependencies(t *testing.T) {
	repo := tokenstore.NewInMemoryRepo()
	store, err := tokenstore.New(repo)
	require.NoError(t, err)

	_, err = session.NewController(nil, &fakeAuthClient{})
	require.Error(t, err)

	_, err = session.NewController(store, nil)
	require.Error(t, err)
}

func TestLoginSuccess(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()
	f.auth.loginGrant = &session.TokenGrant{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		User:         testUser(),
	}

	var notified []session.State
	f.controller.Subscribe(func(s session.State) { notified = append(notified, s) })

	result := f.controller.Login(ctx, session.Credentials{Email: "admin@elcafe.com", Password: "pw"})

	require.True(t, result.Success)
	require.True(t, f.controller.IsAuthenticated())
	require.Equal(t, "access-token", f.controller.Token())
	require.Equal(t, "admin@elcafe.com", f.controller.User().Email)

	require.Equal(t, "access-token", f.store.AccessToken(ctx))
	require.Equal(t, "refresh-token", f.store.RefreshToken(ctx))

	require.Len(t, notified, 1)
	require.True(t, notified[0].IsAuthenticated)
}

func TestLoginFailureSurfacesBackendMessage(t *testing.T) {
	f := newControllerFixture(t)
	f.auth.loginErr = &api.Error{StatusCode: 401, Message: "Invalid email or password"}

	result := f.controller.Login(context.Background(), session.Credentials{})

	require.False(t, result.Success)
	require.Equal(t, "Invalid email or password", result.Error)
	require.False(t, f.controller.IsAuthenticated())
	require.Empty(t, f.store.AccessToken(context.Background()))
}

func TestLoginFailureGenericMessage(t *testing.T) {
	f := newControllerFixture(t)
	f.auth.loginErr = errors.New("connection refused")

	result := f.controller.Login(context.Background(), session.Credentials{})

	require.False(t, result.Success)
	require.Equal(t, "Login failed", result.Error)
}

func TestRegisterSuccess(t *testing.T) {
	f := newControllerFixture(t)
	f.auth.registerGrant = &session.TokenGrant{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		User:         testUser(),
	}

	result := f.controller.Register(context.Background(), session.Registration{Email: "admin@elcafe.com"})

	require.True(t, result.Success)
	require.True(t, f.controller.IsAuthenticated())
}

func TestRegisterFailure(t *testing.T) {
	f := newControllerFixture(t)
	f.auth.registerErr = &api.Error{StatusCode: 409, Message: "Email already registered"}

	result := f.controller.Register(context.Background(), session.Registration{})

	require.False(t, result.Success)
	require.Equal(t, "Email already registered", result.Error)
}

func TestRefreshFastFailsWithoutStoredToken(t *testing.T) {
	f := newControllerFixture(t)

	result := f.controller.RefreshToken(context.Background())

	require.False(t, result.Success)
	require.Equal(t, "Session expired", result.Error)
	// No network call was made.
	require.Zero(t, f.auth.refreshCallCount())
	require.False(t, f.controller.IsAuthenticated())
}

func TestRefreshFastFailsWhenRefreshTokenExpired(t *testing.T) {
	repo := tokenstore.NewInMemoryRepo()
	past := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store, err := tokenstore.New(repo, tokenstore.WithNowTime(func() time.Time { return past }))
	require.NoError(t, err)

	require.NoError(t, store.Persist(context.Background(), "access", "refresh"))

	// Re-read the same repo with a clock far past the refresh expiry.
	future := past.Add(30 * 24 * time.Hour)
	expiredStore, err := tokenstore.New(repo, tokenstore.WithNowTime(func() time.Time { return future }))
	require.NoError(t, err)

	auth := &fakeAuthClient{}
	controller, err := session.NewController(expiredStore, auth)
	require.NoError(t, err)

	result := controller.RefreshToken(context.Background())

	require.False(t, result.Success)
	require.Zero(t, auth.refreshCallCount())
	// The hard-logout side effect cleared the store.
	require.Empty(t, expiredStore.RefreshToken(context.Background()))
}

func TestRefreshSuccessKeepsUnrotatedRefreshToken(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Persist(ctx, "old-access", "stored-refresh"))
	f.auth.refreshGrant = &session.TokenGrant{AccessToken: "new-access"}

	result := f.controller.RefreshToken(ctx)

	require.True(t, result.Success)
	require.Equal(t, "stored-refresh", f.auth.lastRefresh)
	require.Equal(t, "new-access", f.store.AccessToken(ctx))
	require.Equal(t, "stored-refresh", f.store.RefreshToken(ctx))
	require.True(t, f.controller.IsAuthenticated())
	require.Equal(t, "new-access", f.controller.Token())
}

func TestRefreshFailureForcesLogout(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Persist(ctx, "old-access", "stored-refresh"))
	f.auth.refreshErr = &api.Error{StatusCode: 401, Message: "refresh token revoked"}

	result := f.controller.RefreshToken(ctx)

	require.False(t, result.Success)
	require.Equal(t, "Session expired", result.Error)
	require.False(t, f.controller.IsAuthenticated())
	require.Empty(t, f.store.AccessToken(ctx))
	require.Empty(t, f.store.RefreshToken(ctx))
}

func TestConcurrentRefreshesCollapseIntoOneCall(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Persist(ctx, "old-access", "stored-refresh"))
	f.auth.refreshGrant = &session.TokenGrant{AccessToken: "new-access"}
	f.auth.refreshDelay = 50 * time.Millisecond

	const callers = 10
	results := make([]session.Result, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = f.controller.RefreshToken(ctx)
		}(i)
	}
	wg.Wait()

	require.Equal(t, 1, f.auth.refreshCallCount())
	for _, result := range results {
		require.True(t, result.Success)
	}
}

func TestRefreshSurvivesFirstCallerCancellation(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Persist(ctx, "old-access", "stored-refresh"))
	f.auth.refreshGrant = &session.TokenGrant{AccessToken: "new-access"}
	f.auth.refreshDelay = 200 * time.Millisecond

	cancellable, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup
	var first, second session.Result

	wg.Add(1)
	go func() {
		defer wg.Done()
		first = f.controller.RefreshToken(cancellable)
	}()

	time.Sleep(20 * time.Millisecond)
	wg.Add(1)
	go func() {
		defer wg.Done()
		second = f.controller.RefreshToken(ctx)
	}()

	// Cancel the initiating caller while the shared refresh is in flight;
	// the joined caller must still get a renewed token.
	time.Sleep(20 * time.Millisecond)
	cancel()
	wg.Wait()

	require.Equal(t, 1, f.auth.refreshCallCount())
	require.True(t, first.Success)
	require.True(t, second.Success)
	require.Equal(t, "new-access", f.store.AccessToken(ctx))
	require.True(t, f.controller.IsAuthenticated())
}

func TestLogoutIsIdempotent(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()
	f.auth.loginGrant = &session.TokenGrant{AccessToken: "a", RefreshToken: "r", User: testUser()}
	require.True(t, f.controller.Login(ctx, session.Credentials{}).Success)

	f.controller.Logout()
	require.False(t, f.controller.IsAuthenticated())
	require.Empty(t, f.store.AccessToken(ctx))
	require.Nil(t, f.controller.User())

	// Logging out again is safe.
	f.controller.Logout()
	require.False(t, f.controller.IsAuthenticated())
}

func TestUpdateTokens(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Persist(ctx, "old-access", "stored-refresh"))

	require.NoError(t, f.controller.UpdateTokens(ctx, "interceptor-access", ""))

	require.Equal(t, "interceptor-access", f.controller.Token())
	require.True(t, f.controller.IsAuthenticated())
	require.Equal(t, "stored-refresh", f.store.RefreshToken(ctx))
}

func TestBootstrap(t *testing.T) {
	f := newControllerFixture(t)
	ctx := context.Background()

	require.False(t, f.controller.Bootstrap(ctx))

	require.NoError(t, f.store.Persist(ctx, "access", "refresh"))
	require.True(t, f.controller.Bootstrap(ctx))
	require.Equal(t, "access", f.controller.Token())
	require.True(t, f.controller.IsAuthenticated())
}
