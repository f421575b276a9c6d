package memory

import (
	"context"
	"sync"

	"github.com/michal-shasha/bayesnet/pkg/domain"
)

// Cache implements ports.ResultCache in memory.
// Safe for concurrent use.
type Cache struct {
	data map[string]*domain.Answer
	mu   sync.RWMutex
}

// NewCache creates a new in-memory result cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*domain.Answer),
	}
}

// Save stores a copy of the answer.
func (c *Cache) Save(ctx context.Context, key string, answer *domain.Answer) error {
	copied := clone(answer)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = copied
	return nil
}

// Load retrieves a copy of the stored answer.
func (c *Cache) Load(ctx context.Context, key string) (*domain.Answer, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	answer, ok := c.data[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return clone(answer), nil
}

// Delete removes the answer.
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// Len returns the number of stored answers.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// clone copies the answer so callers can't mutate cache state through the pointer.
func clone(a *domain.Answer) *domain.Answer {
	out := *a
	if a.Result != nil {
		r := *a.Result
		out.Result = &r
	}
	if a.Independent != nil {
		v := *a.Independent
		out.Independent = &v
	}
	return &out
}
