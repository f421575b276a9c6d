// Package keylock serialises work on the same key while letting different keys run in parallel.
//
// The engine uses it so that concurrent identical queries are computed once: the first
// caller fills the cache while the others wait, then find the answer there.
package keylock

import (
	"context"
	"sync"
)

// entry holds the mutex and the reference count.
type entry struct {
	mu   sync.Mutex
	refs int
}

// Locks is a set of per-key mutexes. Entries are dropped once nobody holds or waits on them.
// The zero value is not usable; call New.
type Locks struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// New creates an empty lock set.
func New() *Locks {
	return &Locks{entries: make(map[string]*entry)}
}

// acquire gets or creates the entry for key and increments its reference count.
// The caller must lock entry.mu and call release(key) after unlocking.
func (l *Locks) acquire(key string) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		e = &entry{}
		l.entries[key] = e
	}
	e.refs++
	return e
}

// release decrements the reference count and deletes the entry when it reaches zero.
func (l *Locks) release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[key]
	if !ok {
		return
	}
	e.refs--
	if e.refs <= 0 {
		delete(l.entries, key)
	}
}

// WithLock runs fn while holding the lock for key.
// If ctx is done by the time the lock is obtained, fn is not run and ctx.Err() is returned.
func (l *Locks) WithLock(ctx context.Context, key string, fn func(context.Context) error) error {
	e := l.acquire(key)
	e.mu.Lock()
	defer func() {
		e.mu.Unlock()
		l.release(key)
	}()

	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(ctx)
}

// Len returns the number of keys currently held or waited on.
func (l *Locks) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
