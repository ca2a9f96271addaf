package trending

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/digitodael/registrykit/pkg/counterstore"
	"github.com/digitodael/registrykit/pkg/periodkey"
)

// Config defines bucket retention, result bounds and the reference zone.
type Config struct {
	// DailyTTL is the retention of a daily bucket from its first write.
	DailyTTL time.Duration `env:"TRENDING_DAILY_TTL" envDefault:"48h"`
	// WeeklyTTL is the retention of a weekly bucket from its first write.
	WeeklyTTL time.Duration `env:"TRENDING_WEEKLY_TTL" envDefault:"504h"`
	// DefaultLimit replaces non-positive top-K limits.
	DefaultLimit int `env:"TRENDING_DEFAULT_LIMIT" envDefault:"10"`
	// MaxLimit caps every top-K limit to bound response size and query cost.
	MaxLimit int `env:"TRENDING_MAX_LIMIT" envDefault:"100"`
	// Timezone is the IANA zone used for all "current date" computations so
	// bucket boundaries stay consistent. Empty means the system zone.
	Timezone string `env:"TRENDING_TIMEZONE"`
}

func (c Config) validate() error {
	if c.DailyTTL <= 0 || c.WeeklyTTL <= 0 {
		return fmt.Errorf("%w: daily=%v weekly=%v", ErrInvalidTTL, c.DailyTTL, c.WeeklyTTL)
	}
	if c.DefaultLimit <= 0 || c.MaxLimit <= 0 || c.DefaultLimit > c.MaxLimit {
		return fmt.Errorf("%w: default=%d max=%d", ErrInvalidLimit, c.DefaultLimit, c.MaxLimit)
	}
	return nil
}

// Item is one leaderboard entry: an entity and its cumulative score for the
// queried period.
type Item struct {
	ID    int64   `json:"id"`
	Score float64 `json:"score"`
}

// Engine maintains the daily and weekly leaderboards. It holds no mutable
// state beyond its read-only configuration and is safe for concurrent use.
type Engine struct {
	store counterstore.Store
	cfg   Config
	zone  *time.Location
	log   *slog.Logger
	now   func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for dropped increments and decode warnings.
// Nil loggers are ignored.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithTimeFunc overrides the clock, fixing which buckets "now" resolves to.
func WithTimeFunc(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// New creates a leaderboard engine backed by the given store.
func New(store counterstore.Store, cfg Config, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	e := &Engine{
		store: store,
		cfg:   cfg,
		zone:  periodkey.Zone(cfg.Timezone),
		log:   slog.Default(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// BumpLike adds a single like to the entity's daily and weekly scores.
func (e *Engine) BumpLike(ctx context.Context, entityID int64) {
	e.BumpScore(ctx, entityID, 1.0)
}

// BumpScore adds delta to the entity's score in the daily and weekly buckets
// covering the current date. Failed increments are logged and dropped; a
// transient store outage may under-count scores.
func (e *Engine) BumpScore(ctx context.Context, entityID int64, delta float64) {
	today := e.now().In(e.zone)
	member := strconv.FormatInt(entityID, 10)

	e.bump(ctx, periodkey.Daily(today), member, delta, e.cfg.DailyTTL)
	e.bump(ctx, periodkey.Weekly(today), member, delta, e.cfg.WeeklyTTL)
}

func (e *Engine) bump(ctx context.Context, key, member string, delta float64, ttl time.Duration) {
	if err := e.store.IncrScore(ctx, key, member, delta); err != nil {
		e.log.WarnContext(ctx, "score increment dropped",
			slog.String("bucket", key),
			slog.String("member", member),
			slog.Float64("delta", delta),
		)
		return
	}
	// Retention starts with the bucket's first write; a TTL that is already
	// ticking is never extended.
	if err := e.store.EnsureTTL(ctx, key, ttl); err != nil {
		e.log.WarnContext(ctx, "bucket ttl not applied", slog.String("bucket", key))
	}
}

// TopDaily returns up to limit entities for date's daily bucket in
// descending score order.
func (e *Engine) TopDaily(ctx context.Context, date time.Time, limit int) []Item {
	return e.top(ctx, periodkey.Daily(date), limit)
}

// TopWeekly returns up to limit entities for the ISO week covering date in
// descending score order.
func (e *Engine) TopWeekly(ctx context.Context, date time.Time, limit int) []Item {
	return e.top(ctx, periodkey.Weekly(date), limit)
}

func (e *Engine) top(ctx context.Context, key string, limit int) []Item {
	n := e.normalizeLimit(limit)

	raw, err := e.store.TopScores(ctx, key, int64(n))
	if err != nil {
		return []Item{}
	}

	out := make([]Item, 0, len(raw))
	for _, m := range raw {
		id, err := strconv.ParseInt(m.Member, 10, 64)
		if err != nil {
			// One corrupt member must not blank out the leaderboard.
			e.log.WarnContext(ctx, "skipping malformed leaderboard member",
				slog.String("bucket", key),
				slog.String("member", m.Member),
			)
			continue
		}
		out = append(out, Item{ID: id, Score: m.Score})
	}
	return out
}

func (e *Engine) normalizeLimit(limit int) int {
	if limit <= 0 {
		return e.cfg.DefaultLimit
	}
	return min(limit, e.cfg.MaxLimit)
}
