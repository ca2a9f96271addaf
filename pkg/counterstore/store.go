package counterstore

import (
	"context"
	"time"
)

// ScoredMember is a single sorted-set entry: a member identifier and its
// cumulative score.
type ScoredMember struct {
	Member string
	Score  float64
}

// Store defines the storage contract shared by the login guard and the
// trending engine: auto-expiring integer counters plus scored sorted sets.
//
// Implementations must make IncrementWithTTL atomic under concurrent
// callers. Two racing increments on a fresh key must converge on a final
// count of 2 with a single effective TTL assignment; double-counting is not
// acceptable.
type Store interface {
	// IncrementWithTTL atomically increments the integer at key by one,
	// creating it at 1 if absent. The TTL is assigned only when this call
	// created the key; subsequent increments leave the remaining window
	// untouched. Returns the value after the increment.
	IncrementWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)

	// SetWithTTL unconditionally overwrites key with value and expiry.
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error

	// GetInt reads the integer counter at key. ok is false when the key is
	// absent or does not hold an integer.
	GetInt(ctx context.Context, key string) (value int64, ok bool, err error)

	// Exists reports whether key is present.
	Exists(ctx context.Context, key string) (bool, error)

	// TTLRemaining returns the remaining lifetime of key. ok is false when
	// the key is absent or has no expiry; callers distinguish the two via
	// Exists if they care.
	TTLRemaining(ctx context.Context, key string) (ttl time.Duration, ok bool, err error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// IncrScore adds delta to member's score in the sorted set at key,
	// creating the set and the member (at score delta) as needed.
	IncrScore(ctx context.Context, key, member string, delta float64) error

	// TopScores returns up to n members of the sorted set at key in
	// descending score order. A missing key yields an empty slice.
	TopScores(ctx context.Context, key string, n int64) ([]ScoredMember, error)

	// EnsureTTL assigns ttl to key only when the key exists and currently
	// has no expiry. A previously assigned (possibly shorter) TTL is
	// preserved, so continuous activity cannot extend retention forever.
	EnsureTTL(ctx context.Context, key string, ttl time.Duration) error
}
