package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"shopfront/internal/credential"
	"shopfront/internal/domain"
	"shopfront/internal/observability"
)

// refreshState tracks the coordinator lifecycle
type refreshState int32

const (
	refreshIdle refreshState = iota
	refreshInFlight
	refreshFailed
)

// refreshCoordinator exchanges the persisted refresh token for a new access
// token. Concurrent 401s share a single in-flight refresh through the
// singleflight group instead of issuing duplicate calls, so the last-writer
// race on the token store never happens on this path.
type refreshCoordinator struct {
	baseURL string
	http    *http.Client
	creds   credential.Store
	group   singleflight.Group
	state   atomic.Int32
}

func newRefreshCoordinator(baseURL string, httpClient *http.Client, creds credential.Store) *refreshCoordinator {
	return &refreshCoordinator{
		baseURL: baseURL,
		http:    httpClient,
		creds:   creds,
	}
}

// State returns the current coordinator state
func (r *refreshCoordinator) State() refreshState {
	return refreshState(r.state.Load())
}

// Refresh mints a new access token, persisting it (and a rotated refresh
// token when the backend returns one). On any failure the coordinator
// clears every credential, so no half-authenticated state survives.
func (r *refreshCoordinator) Refresh(ctx context.Context) (*domain.RefreshResult, error) {
	v, err, _ := r.group.Do("refresh", func() (any, error) {
		return r.refresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.RefreshResult), nil
}

func (r *refreshCoordinator) refresh(ctx context.Context) (*domain.RefreshResult, error) {
	token, ok := r.creds.RefreshToken()
	if !ok {
		// Full session loss; do not bother the backend
		return nil, r.fail(domain.ErrNoRefreshToken)
	}

	r.state.Store(int32(refreshInFlight))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/auth/refresh", nil)
	if err != nil {
		return nil, r.fail(err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	// The refresh token travels on the credential channel, never the
	// Authorization header
	req.AddCookie(&http.Cookie{Name: credential.RefreshTokenName, Value: token})

	resp, err := r.http.Do(req)
	if err != nil {
		return nil, r.fail(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, r.fail(err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, r.fail(&APIError{Status: resp.StatusCode, Message: normalizeMessage(body, nil)})
	}

	var result domain.RefreshResult
	if err := json.Unmarshal(Unwrap(body), &result); err != nil || result.AccessToken == "" {
		return nil, r.fail(errors.New("refresh response missing access token"))
	}

	r.creds.SetAccessToken(result.AccessToken)
	if result.RefreshToken != "" {
		// Rotation is optional; persist only when a new token came back
		r.creds.SetRefreshToken(result.RefreshToken)
	}
	captureSetCookies(resp, r.creds)

	r.state.Store(int32(refreshIdle))
	observability.TokenRefreshTotal.WithLabelValues("success").Inc()
	observability.FromContext(ctx).Debug("access token refreshed")
	return &result, nil
}

// fail clears all credentials, records the FAILED state, and returns the
// session-expired error the caller propagates
func (r *refreshCoordinator) fail(cause error) error {
	r.creds.ClearTokens()
	r.creds.ClearCachedUser()
	r.state.Store(int32(refreshFailed))
	observability.TokenRefreshTotal.WithLabelValues("failure").Inc()
	observability.SessionResetsTotal.Inc()
	observability.Warn("token refresh failed", "error", cause.Error())
	return sessionExpiredError(cause)
}
