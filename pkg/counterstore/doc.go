// Package counterstore provides the expiring counter and sorted-set storage
// shared by the login attempt guard and the trending leaderboard engine.
//
// The Store interface covers atomic integer counters with
// set-TTL-on-first-increment semantics, plain keys with expiry, and scored
// sorted sets with bounded descending reads. All coordination is delegated to
// the backing store's native atomic primitives; implementations hold no state
// that requires cross-key locking.
//
// Two implementations ship with the package:
//
//   - RedisStore wraps a go-redis client. Every failed operation is logged at
//     this boundary before the error is returned, so consumers can map errors
//     to degraded defaults (fail-open) without losing visibility.
//   - MemoryStore is a mutex-guarded in-process twin with lazy expiry and an
//     optional background sweep. It backs unit tests and cache-less setups.
//
// # Usage
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    // handle error
//	}
//	store := counterstore.NewRedisStore(client)
//
//	n, err := store.IncrementWithTTL(ctx, "auth:ratelimit:u@x.com", 5*time.Minute)
//
// The TTL passed to IncrementWithTTL is assigned only by the call that
// creates the key; the window is fixed-length from first increment, not
// refreshed by later ones.
package counterstore
