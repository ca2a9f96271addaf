// Package trending maintains per-period leaderboards of entity scores.
//
// Every score bump is mirrored into exactly one daily and one weekly bucket,
// keyed off "now" in the engine's configured zone via pkg/periodkey. Buckets
// are sorted sets in the backing store; individual entries never expire, the
// whole bucket key does, atomically, once its retention TTL elapses. The TTL
// is applied only when the key has none yet, so continuous activity cannot
// extend retention indefinitely.
//
// Queries return bounded, descending top-K slices. Non-positive limits fall
// back to the configured default and every limit is capped at the configured
// maximum. The engine is fail-open: store errors during a query yield an
// empty result, failed increments are logged and dropped.
package trending
