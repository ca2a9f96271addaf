package loginguard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/digitodael/registrykit/pkg/counterstore"
)

// Key prefixes match the auth service's redis namespace.
const (
	attemptKeyPrefix = "auth:ratelimit:"
	blockKeyPrefix   = "auth:blocked:"
)

// Config defines the guard's thresholds and windows.
type Config struct {
	// Threshold is the failed-attempt count at which an identity is blocked.
	Threshold int `env:"LOGIN_GUARD_THRESHOLD" envDefault:"5"`
	// AttemptWindow is the fixed window counted from the first failed
	// attempt; it is not refreshed by later attempts.
	AttemptWindow time.Duration `env:"LOGIN_GUARD_ATTEMPT_WINDOW" envDefault:"300s"`
	// BlockDuration is how long a newly created block lasts.
	BlockDuration time.Duration `env:"LOGIN_GUARD_BLOCK_DURATION" envDefault:"300s"`
}

func (c Config) validate() error {
	if c.Threshold <= 0 {
		return fmt.Errorf("%w: must be positive, got %d", ErrInvalidThreshold, c.Threshold)
	}
	if c.AttemptWindow <= 0 {
		return fmt.Errorf("%w: must be positive, got %v", ErrInvalidWindow, c.AttemptWindow)
	}
	if c.BlockDuration <= 0 {
		return fmt.Errorf("%w: must be positive, got %v", ErrInvalidBlockDuration, c.BlockDuration)
	}
	return nil
}

// Guard tracks failed login attempts and block state per identity.
// It is stateless apart from its read-only configuration and safe for
// concurrent use; all coordination is delegated to the store's atomics.
type Guard struct {
	store counterstore.Store
	cfg   Config
	log   *slog.Logger
}

// Option configures a Guard.
type Option func(*Guard)

// WithLogger sets the logger for attempt and block state transitions.
// Nil loggers are ignored.
func WithLogger(log *slog.Logger) Option {
	return func(g *Guard) {
		if log != nil {
			g.log = log
		}
	}
}

// New creates a login attempt guard backed by the given store.
func New(store counterstore.Store, cfg Config, opts ...Option) (*Guard, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	g := &Guard{
		store: store,
		cfg:   cfg,
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// IsBlocked reports whether identity is currently blocked. The block
// marker's existence is the blocked state; after natural expiry this
// returns false without any explicit transition.
func (g *Guard) IsBlocked(ctx context.Context, identity string) bool {
	blocked, err := g.store.Exists(ctx, blockKeyPrefix+identity)
	if err != nil {
		return false
	}
	if blocked {
		remaining := g.BlockTimeRemaining(ctx, identity)
		g.log.WarnContext(ctx, "login rejected for blocked identity",
			slog.String("identity", identity),
			slog.Duration("remaining", remaining),
		)
	}
	return blocked
}

// RecordFailedAttempt increments the identity's attempt counter and returns
// the new count. The window TTL starts with the first failure in a fresh
// window. Returns 0 when the store is unreachable.
func (g *Guard) RecordFailedAttempt(ctx context.Context, identity string) int {
	count, err := g.store.IncrementWithTTL(ctx, attemptKeyPrefix+identity, g.cfg.AttemptWindow)
	if err != nil {
		return 0
	}
	g.log.DebugContext(ctx, "failed login attempt recorded",
		slog.String("identity", identity),
		slog.Int64("attempts", count),
	)
	return int(count)
}

// CheckAndBlock records a failed attempt and blocks the identity once the
// count reaches the threshold. It returns true only when this call created
// the block. It does not short-circuit for already-blocked identities, so
// callers should check IsBlocked first.
func (g *Guard) CheckAndBlock(ctx context.Context, identity string) bool {
	attempts := g.RecordFailedAttempt(ctx, identity)
	if attempts < g.cfg.Threshold {
		return false
	}

	// The attempt counter is left to expire on its own schedule.
	if err := g.store.SetWithTTL(ctx, blockKeyPrefix+identity, "1", g.cfg.BlockDuration); err != nil {
		return false
	}
	g.log.WarnContext(ctx, "identity blocked after repeated login failures",
		slog.String("identity", identity),
		slog.Int("attempts", attempts),
		slog.Duration("duration", g.cfg.BlockDuration),
	)
	return true
}

// RemainingAttempts returns how many failed attempts are left before the
// identity gets blocked: max(0, threshold - current count). Without an
// attempt counter (or with the store unreachable) the full threshold is
// reported.
func (g *Guard) RemainingAttempts(ctx context.Context, identity string) int {
	count, ok, err := g.store.GetInt(ctx, attemptKeyPrefix+identity)
	if err != nil || !ok {
		return g.cfg.Threshold
	}
	return max(0, g.cfg.Threshold-int(count))
}

// BlockTimeRemaining returns how long the identity stays blocked, or 0 when
// it is not blocked.
func (g *Guard) BlockTimeRemaining(ctx context.Context, identity string) time.Duration {
	ttl, ok, err := g.store.TTLRemaining(ctx, blockKeyPrefix+identity)
	if err != nil || !ok {
		return 0
	}
	return ttl
}

// ResetAttempts clears the identity's attempt counter, called on successful
// login. An already-active block is deliberately left in place until its TTL
// expires.
func (g *Guard) ResetAttempts(ctx context.Context, identity string) {
	if err := g.store.Delete(ctx, attemptKeyPrefix+identity); err != nil {
		return
	}
	g.log.DebugContext(ctx, "attempt counter reset", slog.String("identity", identity))
}

// Unblock removes both the block marker and the attempt counter. Unblocking
// an identity that is not blocked is a no-op.
func (g *Guard) Unblock(ctx context.Context, identity string) {
	blockErr := g.store.Delete(ctx, blockKeyPrefix+identity)
	attemptErr := g.store.Delete(ctx, attemptKeyPrefix+identity)
	if blockErr != nil || attemptErr != nil {
		return
	}
	g.log.InfoContext(ctx, "identity unblocked", slog.String("identity", identity))
}
