// Package session holds the one piece of cross-view mutable state:
// the authenticated session. Every role- or token-gated decision in
// the console goes through this store; nothing else derives roles.
package session

import (
	"sync"

	"github.com/rs/zerolog"

	"console/internal/domain"
)

// StorageKey is the fixed namespace the session persists under.
const StorageKey = "auth-storage"

// Session is a snapshot of the authentication state. The zero value is
// Anonymous.
type Session struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Authenticated reports whether a token is present.
func (s Session) Authenticated() bool {
	return s.Token != ""
}

// Role derives the acting role from the user record. Anonymous
// sessions act as plain users.
func (s Session) Role() domain.Role {
	if !s.Authenticated() {
		return domain.RoleUser
	}
	return domain.NormalizeRole(s.User.Role)
}

// Admin reports whether the session's derived role is admin.
func (s Session) Admin() bool {
	return s.Role() == domain.RoleAdmin
}

// Storage is the durable backing for the session blob.
type Storage interface {
	Get(namespace string, v any) (bool, error)
	Put(namespace string, v any) error
	Delete(namespace string) error
}

// Store is the process-wide session holder with subscribe/notify
// semantics. It restores persisted state on construction and writes
// through on every transition.
type Store struct {
	mu      sync.RWMutex
	current Session
	storage Storage
	logger  zerolog.Logger

	nextSub int
	subs    map[int]func(Session)
}

// NewStore builds a store, restoring any persisted session. A corrupt
// or missing blob yields Anonymous.
func NewStore(storage Storage, logger zerolog.Logger) *Store {
	s := &Store{
		storage: storage,
		logger:  logger,
		subs:    make(map[int]func(Session)),
	}
	var restored Session
	ok, err := storage.Get(StorageKey, &restored)
	if err != nil {
		logger.Warn().Err(err).Msg("failed to restore session, starting anonymous")
		return s
	}
	if ok {
		s.current = restored
	}
	return s
}

// Current returns a snapshot of the session.
func (s *Store) Current() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Token returns the bearer token, empty when Anonymous.
func (s *Store) Token() string {
	return s.Current().Token
}

// Role returns the acting role.
func (s *Store) Role() domain.Role {
	return s.Current().Role()
}

// Admin reports whether the acting role is admin.
func (s *Store) Admin() bool {
	return s.Current().Admin()
}

// Authenticated reports whether a session token is present.
func (s *Store) Authenticated() bool {
	return s.Current().Authenticated()
}

// Login transitions to Authenticated. Re-entrant logins (profile
// refresh with the same or a rotated token) are allowed.
func (s *Store) Login(token string, user domain.User) {
	s.set(Session{Token: token, User: user})
}

// UpdateUser refreshes the user record without touching the token.
// It is a no-op on an Anonymous session.
func (s *Store) UpdateUser(user domain.User) {
	s.mu.Lock()
	if s.current.Token == "" {
		s.mu.Unlock()
		return
	}
	next := Session{Token: s.current.Token, User: user}
	s.mu.Unlock()
	s.set(next)
}

// Logout transitions to Anonymous and clears the persisted blob.
func (s *Store) Logout() {
	s.mu.Lock()
	s.current = Session{}
	subs := s.snapshotSubs()
	s.mu.Unlock()

	if err := s.storage.Delete(StorageKey); err != nil {
		s.logger.Warn().Err(err).Msg("failed to clear persisted session")
	}
	for _, fn := range subs {
		fn(Session{})
	}
}

// Invalidate is the system-wide teardown triggered by a 401 from any
// backend call. It is identical to Logout but logged distinctly so an
// expired token is diagnosable.
func (s *Store) Invalidate() {
	if !s.Authenticated() {
		return
	}
	s.logger.Info().Msg("session invalidated by backend (401), logging out")
	s.Logout()
}

// Subscribe registers fn to run on every transition. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(Session)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) set(next Session) {
	s.mu.Lock()
	s.current = next
	subs := s.snapshotSubs()
	s.mu.Unlock()

	if err := s.storage.Put(StorageKey, next); err != nil {
		s.logger.Warn().Err(err).Msg("failed to persist session")
	}
	for _, fn := range subs {
		fn(next)
	}
}

// snapshotSubs copies subscriber callbacks so they run outside the
// lock. Callers must hold mu.
func (s *Store) snapshotSubs() []func(Session) {
	out := make([]func(Session), 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}
