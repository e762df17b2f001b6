package ratelimit

import (
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
)

// localBucket is the in-process token bucket used when no redis address is
// configured. Single-node only; counters are not shared across replicas.
type localBucket struct {
	mu      sync.Mutex
	entries map[string]*localEntry
}

type localEntry struct {
	tokens float64
	last   time.Time
}

func newLocalBucket() *localBucket {
	return &localBucket{entries: make(map[string]*localEntry)}
}

func (b *localBucket) Allow(key string, rate float64, burst int) bool {
	now := time.Now()

	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.entries[key]
	if !ok {
		if len(b.entries) >= 10000 {
			b.sweep(rate, burst, now)
		}
		e = &localEntry{tokens: float64(burst), last: now}
		b.entries[key] = e
	}

	e.tokens = math.Min(float64(burst), e.tokens+now.Sub(e.last).Seconds()*rate)
	e.last = now
	if e.tokens < 1 {
		return false
	}
	e.tokens--
	return true
}

// sweep drops entries that have fully refilled; callers hold the lock.
func (b *localBucket) sweep(rate float64, burst int, now time.Time) {
	for key, e := range b.entries {
		if e.tokens+now.Sub(e.last).Seconds()*rate >= float64(burst) {
			delete(b.entries, key)
		}
	}
}

// localLockTable mirrors the redis Locker for single-node deployments.
type localLockTable struct {
	mu   sync.Mutex
	held map[string]localLock
}

type localLock struct {
	token   string
	expires time.Time
}

func newLocalLockTable() *localLockTable {
	return &localLockTable{held: make(map[string]localLock)}
}

func (t *localLockTable) Acquire(key string, ttl time.Duration) (string, bool) {
	now := time.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	if cur, ok := t.held[key]; ok && now.Before(cur.expires) {
		return "", false
	}

	token := uuid.NewString()
	t.held[key] = localLock{token: token, expires: now.Add(ttl)}
	return token, true
}

func (t *localLockTable) Release(key, token string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if cur, ok := t.held[key]; ok && cur.token == token {
		delete(t.held, key)
	}
}
