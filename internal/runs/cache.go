package runs

import (
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL applies when RUN_CACHE_TTL is unset or invalid.
const DefaultTTL = 1 * time.Hour

// Entry is one stored run.
type Entry struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
	Result    any       `json:"result"`
}

// Cache keeps recent run results in memory so they can be fetched by ID.
// A nil *Cache is valid and stores nothing.
type Cache struct {
	mu    sync.RWMutex
	store map[string]*Entry
	ttl   time.Duration
	now   func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// New returns a cache with the given TTL. A non-positive TTL disables caching.
func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		return nil
	}
	c := &Cache{
		store: make(map[string]*Entry),
		ttl:   ttl,
		now:   time.Now,
		stop:  make(chan struct{}),
	}
	go c.cleanup(cleanupInterval(ttl))
	return c
}

// FromEnv reads RUN_CACHE_TTL (a Go duration, "0" disables).
func FromEnv() *Cache {
	ttl := DefaultTTL
	if s := os.Getenv("RUN_CACHE_TTL"); s != "" {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			log.Printf("RunCache: invalid RUN_CACHE_TTL %q, using %s", s, DefaultTTL)
		} else {
			ttl = parsed
		}
	}
	if ttl <= 0 {
		log.Printf("RunCache: disabled")
		return nil
	}
	log.Printf("RunCache: keeping runs for %s", ttl)
	return New(ttl)
}

func cleanupInterval(ttl time.Duration) time.Duration {
	if ttl < 5*time.Minute {
		return ttl
	}
	return 5 * time.Minute
}

// Put stores a result and returns its new ID. With a nil cache the ID is
// still generated but nothing is kept.
func (c *Cache) Put(kind string, result any) string {
	id := uuid.NewString()
	if c == nil {
		return id
	}
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[id] = &Entry{
		ID:        id,
		Kind:      kind,
		CreatedAt: now,
		ExpiresAt: now.Add(c.ttl),
		Result:    result,
	}
	return id
}

// Get returns a stored run if present and not expired.
func (c *Cache) Get(id string) (*Entry, bool) {
	if c == nil {
		return nil, false
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.store[id]
	if !ok || c.now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry, true
}

// Len counts stored entries, expired ones included until the next sweep.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Clear removes all entries.
func (c *Cache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]*Entry)
}

// Close stops the background sweep.
func (c *Cache) Close() {
	if c == nil {
		return
	}
	c.stopOnce.Do(func() { close(c.stop) })
}

func (c *Cache) sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	n := 0
	for id, entry := range c.store {
		if now.After(entry.ExpiresAt) {
			delete(c.store, id)
			n++
		}
	}
	return n
}

// cleanup periodically removes expired entries.
func (c *Cache) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := c.sweep(); n > 0 {
				log.Printf("RunCache: evicted %d expired runs", n)
			}
		case <-c.stop:
			return
		}
	}
}
