package credential

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"shopfront/internal/domain"
)

// fileState is the on-disk shape of the credential file
type fileState struct {
	Entries map[string]entry `json:"entries"`
	User    *domain.User     `json:"user,omitempty"`
}

// FileStore persists credentials to a JSON file so they survive across
// process runs, the way browser cookies survive full-page navigations.
// Writes are last-writer-wins; token replacement is idempotent.
type FileStore struct {
	mu    sync.Mutex
	path  string
	state fileState
}

// NewFileStore loads any existing credential file at path. A missing or
// unreadable file is not an error; the store just starts empty.
func NewFileStore(path string) *FileStore {
	s := &FileStore{
		path:  path,
		state: fileState{Entries: make(map[string]entry)},
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	if err := json.Unmarshal(data, &s.state); err != nil {
		slog.Warn("ignoring corrupt credential file", slog.String("path", path), slog.String("error", err.Error()))
		s.state = fileState{Entries: make(map[string]entry)}
	}
	if s.state.Entries == nil {
		s.state.Entries = make(map[string]entry)
	}
	return s
}

// Path returns the backing file location
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) AccessToken() (string, bool)  { return s.get(AccessTokenName) }
func (s *FileStore) RefreshToken() (string, bool) { return s.get(RefreshTokenName) }

func (s *FileStore) SetAccessToken(token string)  { s.set(AccessTokenName, token) }
func (s *FileStore) SetRefreshToken(token string) { s.set(RefreshTokenName, token) }

func (s *FileStore) ClearTokens() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Entries[AccessTokenName] = tombstone()
	s.state.Entries[RefreshTokenName] = tombstone()
	s.save()
}

func (s *FileStore) CachedUser() (*domain.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.User == nil {
		return nil, false
	}
	u := *s.state.User
	return &u, true
}

func (s *FileStore) SetCachedUser(user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user == nil {
		s.state.User = nil
	} else {
		u := *user
		s.state.User = &u
	}
	s.save()
}

func (s *FileStore) ClearCachedUser() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.User = nil
	s.save()
}

func (s *FileStore) get(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.state.Entries[name]
	if !ok || e.Value == "" || e.expired(time.Now()) {
		return "", false
	}
	return e.Value, true
}

func (s *FileStore) set(name, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Entries[name] = entry{Value: value, Path: "/"}
	s.save()
}

// save writes the state atomically via a temp file. Persistence is
// best-effort: a failed write leaves the in-memory state authoritative.
// Callers hold s.mu.
func (s *FileStore) save() {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		slog.Warn("failed to create credential directory", slog.String("dir", dir), slog.String("error", err.Error()))
		return
	}

	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		slog.Warn("failed to encode credentials", slog.String("error", err.Error()))
		return
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		slog.Warn("failed to write credential file", slog.String("path", tmp), slog.String("error", err.Error()))
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		slog.Warn("failed to replace credential file", slog.String("path", s.path), slog.String("error", err.Error()))
	}
}
