// Package session holds the authenticated state of the client: the current
// user profile and the session id. There is a single store per client,
// constructed once and passed down explicitly; the profile is always
// replaced as a whole value.
package session

import (
	"context"
	"sync"

	"github.com/hospitalapp/client-go/internal/logging"
	"github.com/hospitalapp/client-go/internal/models"
	"github.com/hospitalapp/client-go/internal/repositories/credentials"
)

// Subscriber receives the new value after every whole-value replace.
// A nil user means logged out.
type Subscriber func(*models.User)

// Store is the observable session slot. Writes are expected from one
// goroutine at a time; reads may come from any number of observers, so all
// access goes through an RWMutex.
type Store struct {
	mu        sync.RWMutex
	user      *models.User
	sessionID string
	subs      map[int]Subscriber
	nextSub   int

	// creds is optional durable storage; when present it is the source of
	// truth for the session id.
	creds credentials.Repository
	log   logging.Logger

	// remoteLogout is the best-effort server-side logout hook, bound at
	// wiring time by the user service.
	remoteLogout func(ctx context.Context) error
}

// New builds a Store. creds may be nil when no durable storage is
// configured.
func New(creds credentials.Repository, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop{}
	}
	return &Store{
		subs:  make(map[int]Subscriber),
		creds: creds,
		log:   log,
	}
}

// BindRemoteLogout installs the server-side logout call used by Logout.
func (s *Store) BindRemoteLogout(fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.remoteLogout = fn
}

// Current returns a copy of the current user, or nil when logged out.
func (s *Store) Current() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// IsLoggedIn reports whether a user profile is present.
func (s *Store) IsLoggedIn() bool {
	return s.Current() != nil
}

// SetCurrentUser replaces the whole profile and notifies subscribers
// synchronously.
func (s *Store) SetCurrentUser(user models.User) {
	s.mu.Lock()
	u := user
	s.user = &u
	subs := s.snapshotSubs()
	s.mu.Unlock()

	for _, fn := range subs {
		fn(&user)
	}
}

// Subscribe registers a state-change observer and returns a cancel func.
func (s *Store) Subscribe(fn Subscriber) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// SetSessionID stores the session id in memory and, when configured, in
// durable storage.
func (s *Store) SetSessionID(ctx context.Context, id string) {
	s.mu.Lock()
	s.sessionID = id
	s.mu.Unlock()

	if s.creds != nil {
		if err := s.creds.Set(ctx, credentials.KeySessionID, id); err != nil {
			s.log.Warn(ctx, "failed to persist session id", "error", err.Error())
		}
	}
}

// SessionID returns the current session id, preferring durable storage over
// the in-memory value. Empty means no active session.
func (s *Store) SessionID() string {
	if s.creds != nil {
		if saved, err := s.creds.Get(context.Background(), credentials.KeySessionID); err == nil && saved != "" {
			return saved
		}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

// Logout fires the best-effort remote logout, then unconditionally clears
// the in-memory user, the session id and the durable remember-me state.
// Failures of the remote call or of durable storage never leave the user
// "looking logged in"; Logout is safe to call repeatedly.
func (s *Store) Logout(ctx context.Context) {
	s.mu.RLock()
	remote := s.remoteLogout
	s.mu.RUnlock()

	if remote != nil {
		if err := remote(ctx); err != nil {
			s.log.Warn(ctx, "remote logout failed, clearing local session anyway", "error", err.Error())
		}
	}

	s.mu.Lock()
	s.user = nil
	s.sessionID = ""
	subs := s.snapshotSubs()
	s.mu.Unlock()

	if s.creds != nil {
		if err := s.creds.Clear(ctx); err != nil {
			s.log.Warn(ctx, "failed to clear saved credentials", "error", err.Error())
		}
	}

	for _, fn := range subs {
		fn(nil)
	}
}

// snapshotSubs must be called with the lock held.
func (s *Store) snapshotSubs() []Subscriber {
	out := make([]Subscriber, 0, len(s.subs))
	for _, fn := range s.subs {
		out = append(out, fn)
	}
	return out
}
