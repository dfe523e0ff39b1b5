package memory

import (
	"time"

	"teen-coach-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Create a cache with a default expiration time of 1 hour, and which
	// purges expired items every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(conv *store.Conversation) {
	r.cache.Set(conv.ID, conv, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (*store.Conversation, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(*store.Conversation), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
