package session

import (
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// Store keeps sessions in memory. A session that is not accessed for ttl
// is dropped, which is how a closed page or an abandoned chat goes away.
type Store struct {
	cache  *cache.Cache
	logger *zap.Logger
}

func NewStore(ttl, cleanupInterval time.Duration, logger *zap.Logger) *Store {
	c := cache.New(ttl, cleanupInterval)
	c.OnEvicted(func(id string, _ any) {
		logger.Debug("session expired", zap.String("session_id", id))
	})

	return &Store{
		cache:  c,
		logger: logger,
	}
}

// GetOrCreate returns the session for id, creating it in the initial state
// if it does not exist. Every call extends the session's lifetime.
func (s *Store) GetOrCreate(id string) *Session {
	for {
		if sess, ok := s.Get(id); ok {
			return sess
		}

		sess := New(id)
		if err := s.cache.Add(id, sess, cache.DefaultExpiration); err == nil {
			s.logger.Debug("session created", zap.String("session_id", id))
			return sess
		}
		// lost the race against a concurrent create, read the winner
	}
}

// Get returns an existing session and extends its lifetime
func (s *Store) Get(id string) (*Session, bool) {
	v, ok := s.cache.Get(id)
	if !ok {
		return nil, false
	}

	sess := v.(*Session)
	s.cache.Set(id, sess, cache.DefaultExpiration)
	return sess, true
}

// Delete drops a session immediately
func (s *Store) Delete(id string) {
	s.cache.Delete(id)
}

// Count returns the number of live sessions, expired ones included until
// the next cleanup.
func (s *Store) Count() int {
	return s.cache.ItemCount()
}
