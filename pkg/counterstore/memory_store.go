package counterstore

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"
)

// memEntry holds either a plain string value or a sorted set, together with
// an optional expiry deadline. A zero deadline means no expiry.
type memEntry struct {
	value    string
	scores   map[string]float64
	expireAt time.Time
}

func (e *memEntry) expired(now time.Time) bool {
	return !e.expireAt.IsZero() && now.After(e.expireAt)
}

// MemoryStore implements Store with an in-process map. Expired entries are
// dropped lazily on access and swept periodically by a background goroutine.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*memEntry

	sweepInterval time.Duration
	stopSweep     chan struct{}
	stopOnce      sync.Once
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithSweepInterval sets how often expired entries are swept.
// Set to 0 to disable the background sweep.
func WithSweepInterval(interval time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		ms.sweepInterval = interval
	}
}

// NewMemoryStore creates an in-memory store with an optional background sweep.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	ms := &MemoryStore{
		entries:       make(map[string]*memEntry),
		sweepInterval: 5 * time.Minute,
		stopSweep:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(ms)
	}

	if ms.sweepInterval > 0 {
		go ms.sweep()
	}

	return ms
}

// Close stops the background sweep goroutine. Safe to call multiple times.
func (ms *MemoryStore) Close() error {
	ms.stopOnce.Do(func() { close(ms.stopSweep) })
	return nil
}

func (ms *MemoryStore) sweep() {
	ticker := time.NewTicker(ms.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			ms.mu.Lock()
			for key, e := range ms.entries {
				if e.expired(now) {
					delete(ms.entries, key)
				}
			}
			ms.mu.Unlock()
		case <-ms.stopSweep:
			return
		}
	}
}

// live returns the entry at key, dropping it first if it has expired.
// Callers must hold ms.mu.
func (ms *MemoryStore) live(key string, now time.Time) *memEntry {
	e, ok := ms.entries[key]
	if !ok {
		return nil
	}
	if e.expired(now) {
		delete(ms.entries, key)
		return nil
	}
	return e
}

func (ms *MemoryStore) IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := time.Now()
	e := ms.live(key, now)
	if e == nil {
		ms.entries[key] = &memEntry{value: "1", expireAt: now.Add(ttl)}
		return 1, nil
	}

	val, err := strconv.ParseInt(e.value, 10, 64)
	if err != nil {
		return 0, err
	}
	val++
	e.value = strconv.FormatInt(val, 10)
	return val, nil
}

func (ms *MemoryStore) SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.entries[key] = &memEntry{value: value, expireAt: time.Now().Add(ttl)}
	return nil
}

func (ms *MemoryStore) GetInt(ctx context.Context, key string) (int64, bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	e := ms.live(key, time.Now())
	if e == nil {
		return 0, false, nil
	}
	val, err := strconv.ParseInt(e.value, 10, 64)
	if err != nil {
		return 0, false, nil
	}
	return val, true, nil
}

func (ms *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	return ms.live(key, time.Now()) != nil, nil
}

func (ms *MemoryStore) TTLRemaining(ctx context.Context, key string) (time.Duration, bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := time.Now()
	e := ms.live(key, now)
	if e == nil || e.expireAt.IsZero() {
		return 0, false, nil
	}
	return e.expireAt.Sub(now), true, nil
}

func (ms *MemoryStore) Delete(ctx context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.entries, key)
	return nil
}

func (ms *MemoryStore) IncrScore(ctx context.Context, key, member string, delta float64) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	e := ms.live(key, time.Now())
	if e == nil {
		e = &memEntry{scores: make(map[string]float64)}
		ms.entries[key] = e
	}
	if e.scores == nil {
		e.scores = make(map[string]float64)
	}
	e.scores[member] += delta
	return nil
}

func (ms *MemoryStore) TopScores(ctx context.Context, key string, n int64) ([]ScoredMember, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	e := ms.live(key, time.Now())
	if e == nil || len(e.scores) == 0 || n <= 0 {
		return nil, nil
	}

	out := make([]ScoredMember, 0, len(e.scores))
	for member, score := range e.scores {
		out = append(out, ScoredMember{Member: member, Score: score})
	}
	// Descending score; ties broken by member for deterministic reads.
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Member < out[j].Member
	})
	if int64(len(out)) > n {
		out = out[:n]
	}
	return out, nil
}

func (ms *MemoryStore) EnsureTTL(ctx context.Context, key string, ttl time.Duration) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := time.Now()
	e := ms.live(key, now)
	if e != nil && e.expireAt.IsZero() {
		e.expireAt = now.Add(ttl)
	}
	return nil
}
