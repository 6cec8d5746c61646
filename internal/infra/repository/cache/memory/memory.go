package memory

import (
	"container/list"
	"errors"
	"slices"
	"sync"

	"github.com/angristan/music-download-bot/internal/domain/track"
	"github.com/google/uuid"
)

const DefaultCapacity = 50

var (
	ErrEmptyResults = errors.New("cache: refusing to store an empty result list")
)

type session struct {
	results []track.Track
	element *list.Element
}

// SessionCache keeps at most capacity sessions and evicts the one inserted
// first. Reads do not change eviction order.
type SessionCache struct {
	mu       sync.Mutex
	capacity int
	sessions map[string]*session
	order    *list.List
}

func NewCache(capacity int) *SessionCache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &SessionCache{
		capacity: capacity,
		sessions: make(map[string]*session, capacity),
		order:    list.New(),
	}
}

// Put stores results under key, generating a key when none is given, and
// returns the key used.
func (c *SessionCache) Put(key string, results []track.Track) (string, error) {
	if len(results) == 0 {
		return "", ErrEmptyResults
	}
	if key == "" {
		key = uuid.NewString()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Storing under a live key counts as a fresh insertion.
	if existing, ok := c.sessions[key]; ok {
		c.order.Remove(existing.element)
		delete(c.sessions, key)
	}

	if len(c.sessions) >= c.capacity {
		c.evictOldest()
	}

	c.sessions[key] = &session{
		results: slices.Clone(results),
		element: c.order.PushBack(key),
	}

	return key, nil
}

func (c *SessionCache) Get(key string) ([]track.Track, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[key]
	if !ok {
		return nil, false
	}

	return slices.Clone(s.results), true
}

func (c *SessionCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.sessions)
}

func (c *SessionCache) evictOldest() {
	oldest := c.order.Front()
	if oldest == nil {
		return
	}

	c.order.Remove(oldest)
	delete(c.sessions, oldest.Value.(string))
}
