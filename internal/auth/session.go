// Package auth holds the mock authentication session: who is logged in,
// persisted to a kv.Store so it survives restarts.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store/kv"
)

// UserKey is the storage key holding the JSON-encoded session user.
const UserKey = "user"

// Mock credentials; the only pair Login accepts.
const (
	mockEmail    = "admin@example.com"
	mockPassword = "password"
	mockUserID   = "1"
	mockUserName = "Admin User"
)

// Session is the single source of truth for "who is logged in".
// Construct one per process with New and pass it to whatever needs it.
type Session struct {
	store  kv.Store
	logger *log.Logger

	mu      sync.RWMutex
	user    *model.User
	loading bool

	ready     chan struct{}
	readyOnce sync.Once
}

type Option func(*Session)

func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a session that reports IsLoading until Initialize completes.
func New(store kv.Store, opts ...Option) *Session {
	s := &Session{
		store:   store,
		logger:  log.Default(),
		loading: true,
		ready:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize loads the persisted user, if any. A malformed record is logged
// and removed; nothing is returned to the caller. It always finishes by
// clearing the loading flag and releasing Ready.
//
// Safe to call more than once; each call reloads from storage. It does not
// serialize against Login, so the last writer wins.
func (s *Session) Initialize(ctx context.Context) {
	defer s.markReady()

	raw, ok, err := s.store.Get(ctx, UserKey)
	if err != nil {
		s.logger.Error("failed to read saved user", "err", err)
		return
	}
	if !ok {
		return
	}

	u, err := decodeUser(raw)
	if err != nil {
		s.logger.Error("failed to parse saved user", "err", err)
		if err := s.store.Remove(ctx, UserKey); err != nil {
			s.logger.Error("failed to discard saved user", "err", err)
		}
		return
	}

	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()
	s.logger.Debug("restored session", "email", u.Email)
}

func decodeUser(raw string) (model.User, error) {
	var u model.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return model.User{}, fmt.Errorf("json unmarshal: %w", err)
	}
	if !u.Valid() {
		return model.User{}, fmt.Errorf("record has no id or email")
	}
	return u, nil
}

func (s *Session) markReady() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
	s.readyOnce.Do(func() { close(s.ready) })
}

// Login checks the credentials against the mock account. On a match the user
// is stored in memory and persisted, and Login reports true. A mismatch
// reports false and changes nothing. The error is non-nil only when
// persisting fails, in which case the previous user is kept.
func (s *Session) Login(ctx context.Context, email, password string) (bool, error) {
	if email != mockEmail || password != mockPassword {
		s.logger.Info("login failed: invalid credentials", "email", email)
		return false, nil
	}

	u := model.User{ID: mockUserID, Email: email, Name: mockUserName}
	b, err := json.Marshal(u)
	if err != nil {
		return false, fmt.Errorf("json marshal: %w", err)
	}
	if err := s.store.Set(ctx, UserKey, string(b)); err != nil {
		return false, fmt.Errorf("persist user: %w", err)
	}

	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()
	s.logger.Info("login successful", "email", u.Email)
	return true, nil
}

// Logout clears the in-memory user and removes the persisted record.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	if err := s.store.Remove(ctx, UserKey); err != nil {
		return fmt.Errorf("remove user: %w", err)
	}
	s.logger.Info("logged out")
	return nil
}

// User returns the current user and whether one is logged in.
func (s *Session) User() (model.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return model.User{}, false
	}
	return *s.user, true
}

func (s *Session) IsAuthenticated() bool {
	_, ok := s.User()
	return ok
}

// IsLoading is true until the first Initialize has finished.
func (s *Session) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Ready is closed once the first Initialize has finished.
func (s *Session) Ready() <-chan struct{} {
	return s.ready
}

// Wait blocks until the session is ready or ctx is done.
func (s *Session) Wait(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
