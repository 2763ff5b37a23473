// Package credential persists the session credentials: the access and
// refresh tokens as cookie-style entries, and a cached profile snapshot
// used to avoid a flash of logged-out state on startup. The snapshot is
// never an authority for access control.
package credential

import (
	"sync"
	"time"

	"shopfront/internal/domain"
)

const (
	AccessTokenName  = "accessToken"
	RefreshTokenName = "refreshToken"
)

// Store defines the interface for credential persistence. Absence is
// reported as (value, false), never as an error.
type Store interface {
	AccessToken() (string, bool)
	RefreshToken() (string, bool)
	SetAccessToken(token string)
	SetRefreshToken(token string)
	// ClearTokens expires both token entries; safe to call when absent.
	ClearTokens()

	CachedUser() (*domain.User, bool)
	SetCachedUser(user *domain.User)
	ClearCachedUser()
}

// entry is a cookie-equivalent persisted value, scoped to the whole site
// path so every part of the client observes the same tokens
type entry struct {
	Value   string     `json:"value"`
	Path    string     `json:"path"`
	Expires *time.Time `json:"expires,omitempty"`
}

func (e entry) expired(now time.Time) bool {
	return e.Expires != nil && !e.Expires.After(now)
}

// tombstone returns an already-expired entry, the cookie idiom for deletion
func tombstone() entry {
	past := time.Unix(0, 0).UTC()
	return entry{Path: "/", Expires: &past}
}

// MemStore is an in-memory Store for tests and ephemeral sessions
type MemStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	user    *domain.User
}

// NewMemStore creates an empty in-memory store
func NewMemStore() *MemStore {
	return &MemStore{entries: make(map[string]entry)}
}

func (s *MemStore) AccessToken() (string, bool)  { return s.get(AccessTokenName) }
func (s *MemStore) RefreshToken() (string, bool) { return s.get(RefreshTokenName) }

func (s *MemStore) SetAccessToken(token string)  { s.set(AccessTokenName, token) }
func (s *MemStore) SetRefreshToken(token string) { s.set(RefreshTokenName, token) }

func (s *MemStore) ClearTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[AccessTokenName] = tombstone()
	s.entries[RefreshTokenName] = tombstone()
}

func (s *MemStore) CachedUser() (*domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil, false
	}
	u := *s.user
	return &u, true
}

func (s *MemStore) SetCachedUser(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user == nil {
		s.user = nil
		return
	}
	u := *user
	s.user = &u
}

func (s *MemStore) ClearCachedUser() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
}

func (s *MemStore) get(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[name]
	if !ok || e.Value == "" || e.expired(time.Now()) {
		return "", false
	}
	return e.Value, true
}

func (s *MemStore) set(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[name] = entry{Value: value, Path: "/"}
}
