// Package api implements the single choke point for every call to the shop
// backend: bearer credential injection, envelope unwrapping, error
// normalization, and transparent recovery from access-token expiry via the
// refresh coordinator.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"shopfront/internal/credential"
	"shopfront/internal/domain"
	"shopfront/internal/observability"
)

// Options tunes the client; zero values get sensible defaults
type Options struct {
	Timeout      time.Duration
	RateLimitRPS float64
}

// Client issues requests against the shop backend. It is safe for
// concurrent use.
type Client struct {
	baseURL   string
	http      *http.Client
	creds     credential.Store
	limiter   *rate.Limiter
	refresher *refreshCoordinator

	onSessionExpired func()
}

// New creates a Client rooted at baseURL, persisting credentials to creds
func New(baseURL string, creds credential.Store, opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	httpClient := &http.Client{Timeout: timeout}

	var limiter *rate.Limiter
	if opts.RateLimitRPS > 0 {
		burst := int(opts.RateLimitRPS)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimitRPS), burst)
	}

	return &Client{
		baseURL:   baseURL,
		http:      httpClient,
		creds:     creds,
		limiter:   limiter,
		refresher: newRefreshCoordinator(baseURL, httpClient, creds),
	}
}

// BaseURL returns the backend root this client talks to
func (c *Client) BaseURL() string { return c.baseURL }

// OnSessionExpired registers the callback invoked exactly when a fatal auth
// failure forces a local logout. The session manager uses it to clear the
// in-memory user and redirect; by the time it runs the credential store has
// already been cleared.
func (c *Client) OnSessionExpired(fn func()) {
	c.onSessionExpired = fn
}

func (c *Client) sessionExpired() {
	if c.onSessionExpired != nil {
		c.onSessionExpired()
	}
}

// Refresh proactively exchanges the refresh token for a new access token,
// outside the 401-triggered path. Persistence and failure semantics match
// the automatic refresh.
func (c *Client) Refresh(ctx context.Context) (*domain.RefreshResult, error) {
	res, err := c.refresher.Refresh(ctx)
	if err != nil {
		c.sessionExpired()
		return nil, err
	}
	return res, nil
}

// Do issues an authenticated request and returns the unwrapped payload.
// A 401 triggers one token refresh and one replay of the original request;
// a second 401 is a fatal auth error.
func (c *Client) Do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	_, raw, err := c.call(ctx, method, path, body, true)
	if err != nil {
		return nil, err
	}
	return Unwrap(raw), nil
}

// DoEnvelope is Do without the unwrap step, for callers that need the
// envelope's statusCode or message alongside the payload
func (c *Client) DoEnvelope(ctx context.Context, method, path string, body any) (*Envelope, error) {
	status, raw, err := c.call(ctx, method, path, body, true)
	if err != nil {
		return nil, err
	}
	return parseEnvelope(status, raw), nil
}

// DoPublic issues a request on the unauthenticated path: no bearer header
// and, critically, no refresh-and-replay on 401. Login, register, and
// logout go through here so a declined login can never trigger a refresh
// loop. Session cookies still ride along.
func (c *Client) DoPublic(ctx context.Context, method, path string, body any) (*Envelope, error) {
	status, raw, err := c.call(ctx, method, path, body, false)
	if err != nil {
		return nil, err
	}
	return parseEnvelope(status, raw), nil
}

// Get issues an authenticated GET and decodes the unwrapped payload into out
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.exchange(ctx, http.MethodGet, path, nil, out)
}

// Post issues an authenticated POST and decodes the unwrapped payload into out
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.exchange(ctx, http.MethodPost, path, body, out)
}

// Patch issues an authenticated PATCH and decodes the unwrapped payload into out
func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.exchange(ctx, http.MethodPatch, path, body, out)
}

// Delete issues an authenticated DELETE and decodes the unwrapped payload into out
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.exchange(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) exchange(ctx context.Context, method, path string, body, out any) error {
	raw, err := c.Do(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// call runs the request/refresh/replay cycle. The retried marker is the
// control flow itself: the refresh branch executes at most once per call.
func (c *Client) call(ctx context.Context, method, path string, body any, protected bool) (int, []byte, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("encode %s %s request body: %w", method, path, err)
		}
	}

	status, raw, err := c.send(ctx, method, path, payload, protected)
	if err != nil {
		return 0, nil, &APIError{Message: normalizeMessage(nil, err)}
	}

	if protected && status == http.StatusUnauthorized {
		if _, rerr := c.refresher.Refresh(ctx); rerr != nil {
			c.sessionExpired()
			return status, raw, rerr
		}

		observability.RequestReplaysTotal.Inc()
		observability.FromContext(ctx).Debug("replaying request after refresh",
			"method", method, "path", path)

		status, raw, err = c.send(ctx, method, path, payload, true)
		if err != nil {
			return 0, nil, &APIError{Message: normalizeMessage(nil, err)}
		}
		if status == http.StatusUnauthorized {
			// The freshly minted token was rejected too; give up on the
			// session rather than loop
			c.creds.ClearTokens()
			c.creds.ClearCachedUser()
			observability.SessionResetsTotal.Inc()
			c.sessionExpired()
			return status, raw, sessionExpiredError(&APIError{Status: status, Message: normalizeMessage(raw, nil)})
		}
	}

	if status < 200 || status >= 300 {
		return status, raw, &APIError{Status: status, Message: normalizeMessage(raw, nil)}
	}
	return status, raw, nil
}

// send performs one HTTP round trip, attaching credentials and capturing
// any rotated token cookies from the response
func (c *Client) send(ctx context.Context, method, path string, payload []byte, withAuth bool) (int, []byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return 0, nil, err
		}
	}

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return 0, nil, err
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	reqID, ok := observability.RequestIDFromContext(ctx)
	if !ok {
		reqID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", reqID)

	if withAuth {
		if token, ok := c.creds.AccessToken(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	// Session credentials always ride along; the refresh token lives here
	if token, ok := c.creds.AccessToken(); ok {
		req.AddCookie(&http.Cookie{Name: credential.AccessTokenName, Value: token})
	}
	if token, ok := c.creds.RefreshToken(); ok {
		req.AddCookie(&http.Cookie{Name: credential.RefreshTokenName, Value: token})
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observability.APIRequestsTotal.WithLabelValues(method, path, "error").Inc()
		return 0, nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}

	captureSetCookies(resp, c.creds)

	statusLabel := strconv.Itoa(resp.StatusCode)
	observability.APIRequestsTotal.WithLabelValues(method, path, statusLabel).Inc()
	observability.APIRequestDuration.WithLabelValues(method, path, statusLabel).Observe(time.Since(start).Seconds())

	observability.FromContext(ctx).Debug("api request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	return resp.StatusCode, raw, nil
}

// captureSetCookies persists token cookies rotated by the backend
func captureSetCookies(resp *http.Response, creds credential.Store) {
	for _, ck := range resp.Cookies() {
		if ck.Value == "" {
			continue
		}
		switch ck.Name {
		case credential.AccessTokenName:
			creds.SetAccessToken(ck.Value)
		case credential.RefreshTokenName:
			creds.SetRefreshToken(ck.Value)
		}
	}
}
