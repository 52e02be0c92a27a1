package impersonation

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-tenant-authz/internal/errors"
)

// tokenByteLength gives 256 bits of entropy per token.
const tokenByteLength = 32

var _ Store = (*InMemoryStore)(nil)

// InMemoryStore is the process-local implementation of Store. Sessions
// are intentionally lost on restart; impersonation grants are short-lived
// by design.
//
// Mutation (Start, End, sweep eviction) holds the write lock; Validate
// reads under the read lock and only upgrades when it finds an expired
// session to evict.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Session
	ttl      time.Duration
	nowTime  func() time.Time
}

// InMemoryStoreOption defines a function type to modify the InMemoryStore instance.
type InMemoryStoreOption func(*InMemoryStore)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) InMemoryStoreOption {
	return func(s *InMemoryStore) {
		s.nowTime = nowFunc
	}
}

// NewInMemoryStore creates a session store whose sessions expire ttl
// after creation.
func NewInMemoryStore(ttl time.Duration, options ...InMemoryStoreOption) *InMemoryStore {
	s := &InMemoryStore{
		sessions: make(map[string]Session),
		ttl:      ttl,
		nowTime:  time.Now,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// Start issues a new impersonation session and returns it. The token is
// generated from a cryptographically secure source and is the caller's
// only handle on the session. Expired sessions are opportunistically
// swept on every call.
func (s *InMemoryStore) Start(operatorID, tenantID string) (Session, error) {
	if tenantID == "" {
		return Session{}, errors.ErrMissingTenant
	}

	token, err := generateToken()
	if err != nil {
		return Session{}, errors.Wrapf(err, "[InMemoryStore Start] token generation")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowTime()
	s.evictExpiredLocked(now)

	session := Session{
		ID:         uuid.New().String(),
		Token:      token,
		OperatorID: operatorID,
		TenantID:   tenantID,
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.ttl),
	}
	s.sessions[token] = session
	return session, nil
}

// Validate returns the session for the token if it is still active. A
// session found expired is evicted before returning none.
func (s *InMemoryStore) Validate(token string) (Session, bool) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return Session{}, false
	}
	if !session.Expired(s.nowTime()) {
		return session, true
	}

	// Lazy eviction. Re-check under the write lock: a racing End or sweep
	// may have removed the token already, and tokens are never reused, so
	// presence means it is still the same expired session.
	s.mu.Lock()
	if current, still := s.sessions[token]; still && current.Expired(s.nowTime()) {
		delete(s.sessions, token)
	}
	s.mu.Unlock()
	return Session{}, false
}

// End removes the session and reports whether it existed.
func (s *InMemoryStore) End(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[token]
	delete(s.sessions, token)
	return ok
}

// SweepExpired removes all sessions past their expiry and returns how
// many were evicted.
func (s *InMemoryStore) SweepExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evictExpiredLocked(s.nowTime())
}

// Count returns the number of sessions currently held, including any that
// have expired but not yet been evicted.
func (s *InMemoryStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// evictExpiredLocked removes expired sessions. Callers must hold the
// write lock.
func (s *InMemoryStore) evictExpiredLocked(now time.Time) int {
	evicted := 0
	for token, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, token)
			evicted++
		}
	}
	return evicted
}

func generateToken() (string, error) {
	bytes := make([]byte, tokenByteLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
