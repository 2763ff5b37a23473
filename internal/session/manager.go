// Package session owns the in-memory authentication state. The Manager is
// the only component that mutates the current user, and the only one that
// triggers navigation side effects.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"shopfront/internal/api"
	"shopfront/internal/credential"
	"shopfront/internal/domain"
	"shopfront/internal/observability"
)

// Client routes
const (
	RouteLogin    = "/"
	RouteProducts = "/products"
)

// Navigator receives redirect signals. The CLI prints them; a UI would
// change screens.
type Navigator interface {
	Navigate(route string)
}

// Notifier surfaces user-visible notices, the toast equivalent
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Info(msg string)
}

// Manager is the user-facing session state machine
type Manager struct {
	mu   sync.RWMutex
	user *domain.User

	client *api.Client
	creds  credential.Store
	nav    Navigator
	notify Notifier
	reset  func() // flushes client-side caches after logout
}

// NewManager wires the manager to the transport and credential store. The
// cached user snapshot is loaded best-effort so the UI does not flash a
// logged-out state; it does not imply the access token is still valid.
func NewManager(client *api.Client, creds credential.Store, nav Navigator, notify Notifier, reset func()) *Manager {
	m := &Manager{
		client: client,
		creds:  creds,
		nav:    nav,
		notify: notify,
		reset:  reset,
	}

	if user, ok := creds.CachedUser(); ok {
		m.user = user
	}

	client.OnSessionExpired(m.forceLogout)
	return m
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a session. On any outcome other than a
// recognized success the session state is left untouched; network and parse
// errors are treated the same as a declined login.
func (m *Manager) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	env, err := m.client.DoPublic(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password})
	if err != nil {
		m.notifyError("Login failed. Please try again.")
		return nil, err
	}

	if env.StatusCode != http.StatusOK && env.StatusCode != http.StatusCreated {
		msg := env.Message
		if msg == "" {
			msg = "Login failed"
		}
		m.notifyError(msg)
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidCredentials, msg)
	}

	var result domain.AuthResult
	if err := json.Unmarshal(env.Data, &result); err != nil || result.User == nil {
		m.notifyError("Login failed. Please try again.")
		return nil, fmt.Errorf("%w: malformed login response", domain.ErrInvalidCredentials)
	}

	m.setUser(result.User)
	m.creds.SetAccessToken(result.AccessToken)
	m.creds.SetCachedUser(result.User)

	observability.FromContext(ctx).Info("logged in", "user_id", result.User.ID)

	if env.Message != "" {
		m.notifySuccess(env.Message)
	} else {
		m.notifySuccess("Login successful!")
	}
	m.navigate(RouteProducts)

	return &result, nil
}

// Register creates an account. It never touches session state.
func (m *Manager) Register(ctx context.Context, name, email, password string) error {
	env, err := m.client.DoPublic(ctx, http.MethodPost, "/auth/register", registerRequest{Name: name, Email: email, Password: password})
	if err != nil {
		m.notifyError("Registration failed. Please try again.")
		return err
	}

	if env.StatusCode >= 400 {
		msg := env.Message
		if msg == "" {
			msg = "Registration failed"
		}
		m.notifyError(msg)
		return &api.APIError{Status: env.StatusCode, Message: msg}
	}

	m.notifySuccess("Account created. Please login.")
	return nil
}

// Logout ends the session. The server call is best-effort; local state is
// cleared unconditionally, so logout always succeeds and is idempotent.
func (m *Manager) Logout(ctx context.Context) {
	if _, err := m.client.DoPublic(ctx, http.MethodPost, "/auth/logout", struct{}{}); err != nil {
		observability.FromContext(ctx).Debug("server logout failed, ignoring", "error", err.Error())
	}

	m.setUser(nil)
	m.creds.ClearCachedUser()
	m.creds.ClearTokens()

	m.notifyInfo("Logged out")
	m.navigate(RouteLogin)

	// Drop any stale client-side caches along with the session
	if m.reset != nil {
		m.reset()
	}
}

// Refresh proactively renews the access token. Failure is fatal to the
// session: the transport has already cleared credentials and signalled the
// forced logout by the time the error surfaces here.
func (m *Manager) Refresh(ctx context.Context) (*domain.RefreshResult, error) {
	result, err := m.client.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	m.notifySuccess("Token refreshed successfully!")
	return result, nil
}

// IsAuthenticated reports whether a user is set in memory. It is a UI
// routing hint, not a guarantee the access token is still valid server-side.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil
}

// CurrentUser returns the in-memory user, or nil
func (m *Manager) CurrentUser() *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// forceLogout handles refresh exhaustion signalled by the transport. The
// credential store is already cleared; nothing may remain observable as
// authenticated.
func (m *Manager) forceLogout() {
	m.setUser(nil)
	m.notifyError("Session expired. Please login again.")
	m.navigate(RouteLogin)
}

func (m *Manager) setUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = user
}

func (m *Manager) navigate(route string) {
	if m.nav != nil {
		m.nav.Navigate(route)
	}
}

func (m *Manager) notifySuccess(msg string) {
	if m.notify != nil {
		m.notify.Success(msg)
	}
}

func (m *Manager) notifyError(msg string) {
	if m.notify != nil {
		m.notify.Error(msg)
	}
}

func (m *Manager) notifyInfo(msg string) {
	if m.notify != nil {
		m.notify.Info(msg)
	}
}
