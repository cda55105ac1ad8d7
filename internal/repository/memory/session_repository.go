package memory

import (
	"time"

	"doc-chat-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

// NewSessionRepository creates the in-memory session registry. Sessions
// idle past the TTL are evicted, which is the session teardown of this
// system: documents and transcript go with them.
func NewSessionRepository(ttl, sweepInterval time.Duration) *SessionRepository {
	c := cache.New(ttl, sweepInterval)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *store.Session) {
	r.cache.Set(session.ID, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.Session, bool) {
	if x, found := r.cache.Get(sessionID); found {
		// Touch to keep active sessions alive
		r.cache.Set(sessionID, x, cache.DefaultExpiration)
		return x.(*store.Session), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
