package e2e

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfront/internal/domain"
	"shopfront/internal/session"
	"shopfront/internal/testutil"
)

func TestLoginLifecycle(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	result, err := e.session.Login(ctx, testutil.DefaultEmail, testutil.DefaultPassword)
	require.NoError(t, err)
	require.NotNil(t, result.User)
	assert.Equal(t, testutil.DefaultEmail, result.User.Email)

	assert.True(t, e.session.IsAuthenticated())

	access, ok := e.store.AccessToken()
	require.True(t, ok, "access token should be persisted after login")
	assert.Equal(t, e.shop.CurrentAccessToken(), access)

	_, ok = e.store.RefreshToken()
	assert.True(t, ok, "refresh token cookie should be captured from the login response")

	assert.Equal(t, session.RouteProducts, e.nav.last())

	// The session is immediately usable for protected calls.
	page, err := e.products.List(ctx, domain.ProductQuery{})
	require.NoError(t, err)
	assert.Equal(t, 0, page.Meta.Total)
	assert.Equal(t, int64(0), e.shop.RefreshCalls.Load())
}

func TestLoginDeclined(t *testing.T) {
	e := newEnv(t)

	_, err := e.session.Login(context.Background(), testutil.DefaultEmail, "wrong-password")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidCredentials))

	assert.False(t, e.session.IsAuthenticated())
	_, ok := e.store.AccessToken()
	assert.False(t, ok, "declined login must not persist tokens")

	// A declined login is terminal; it must never trigger a refresh attempt.
	assert.Equal(t, int64(0), e.shop.RefreshCalls.Load())
	assert.Empty(t, e.nav.routes)
}

func TestExpiredTokenIsRefreshedAndReplayed(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.session.Login(ctx, testutil.DefaultEmail, testutil.DefaultPassword)
	require.NoError(t, err)

	e.shop.SeedProduct(testutil.NewTestProduct(testutil.WithProductName("Widget")))
	e.shop.ExpireAccessToken()

	page, err := e.products.List(ctx, domain.ProductQuery{})
	require.NoError(t, err, "an expired token should be refreshed transparently")
	assert.Len(t, page.Products, 1)

	assert.Equal(t, int64(1), e.shop.RefreshCalls.Load())

	access, ok := e.store.AccessToken()
	require.True(t, ok)
	assert.Equal(t, e.shop.CurrentAccessToken(), access, "the rotated access token should be persisted")
	assert.True(t, e.session.IsAuthenticated())
}

func TestRefreshExhaustionForcesLogout(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.session.Login(ctx, testutil.DefaultEmail, testutil.DefaultPassword)
	require.NoError(t, err)

	e.shop.ExpireAccessToken()
	e.shop.RejectRefresh()

	_, err = e.products.List(ctx, domain.ProductQuery{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrSessionExpired))

	assert.Equal(t, int64(1), e.shop.RefreshCalls.Load(), "refresh is attempted exactly once")

	assert.False(t, e.session.IsAuthenticated())
	_, ok := e.store.AccessToken()
	assert.False(t, ok, "tokens must be cleared after a failed refresh")
	_, ok = e.store.RefreshToken()
	assert.False(t, ok)

	assert.Equal(t, session.RouteLogin, e.nav.last())
	assert.Contains(t, e.notify.all(), "error: Session expired. Please login again.")

	// Later calls fail fast without another refresh round-trip.
	_, err = e.products.List(ctx, domain.ProductQuery{})
	require.Error(t, err)
	assert.Equal(t, int64(1), e.shop.RefreshCalls.Load())
}

func TestLogoutIsIdempotent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	_, err := e.session.Login(ctx, testutil.DefaultEmail, testutil.DefaultPassword)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		e.session.Logout(ctx)

		assert.False(t, e.session.IsAuthenticated())
		_, ok := e.store.AccessToken()
		assert.False(t, ok)
		cached, ok := e.store.CachedUser()
		assert.False(t, ok)
		assert.Nil(t, cached)
		assert.Equal(t, session.RouteLogin, e.nav.last())
	}
}
