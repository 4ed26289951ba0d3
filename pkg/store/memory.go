package store

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryStore is the single-instance fallback used when no Redis URL is
// configured. Same contract as RedisStore, including per-key TTL refresh
// on write. State is lost on restart.
type MemoryStore struct {
	cache *gocache.Cache
	ttl   time.Duration
}

var _ SessionStore = &MemoryStore{}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		cache: gocache.New(ttl, 10*time.Minute),
		ttl:   ttl,
	}
}

func (s *MemoryStore) GetSession(_ context.Context, sessionID string) (*Session, bool) {
	v, found := s.cache.Get(sessionKey(sessionID))
	if !found {
		return nil, false
	}
	session, ok := v.(*Session)
	if !ok {
		return nil, false
	}
	return session.Clone(), true
}

func (s *MemoryStore) SetSession(_ context.Context, sessionID string, session *Session) error {
	s.cache.Set(sessionKey(sessionID), session.Clone(), s.ttl)
	return nil
}

func (s *MemoryStore) DeleteSession(_ context.Context, sessionID string) error {
	s.cache.Delete(sessionKey(sessionID))
	return nil
}

func (s *MemoryStore) GetCSRFToken(_ context.Context, sessionID string) (string, bool) {
	v, found := s.cache.Get(csrfKey(sessionID))
	if !found {
		return "", false
	}
	token, ok := v.(string)
	return token, ok
}

func (s *MemoryStore) SetCSRFToken(_ context.Context, sessionID string, token string) error {
	s.cache.Set(csrfKey(sessionID), token, s.ttl)
	return nil
}

func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}
