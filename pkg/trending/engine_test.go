package trending_test

import (
	"context"
	"testing"
	"time"

	"github.com/digitodael/registrykit/pkg/counterstore"
	"github.com/digitodael/registrykit/pkg/periodkey"
	"github.com/digitodael/registrykit/pkg/trending"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.January, 15, 14, 30, 0, 0, time.UTC)

func testConfig() trending.Config {
	return trending.Config{
		DailyTTL:     48 * time.Hour,
		WeeklyTTL:    504 * time.Hour,
		DefaultLimit: 10,
		MaxLimit:     100,
		Timezone:     "UTC",
	}
}

func newEngine(t *testing.T, cfg trending.Config) (*trending.Engine, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	engine, err := trending.New(counterstore.NewRedisStore(client), cfg,
		trending.WithTimeFunc(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	return engine, mr
}

func TestNew(t *testing.T) {
	t.Parallel()

	store := counterstore.NewMemoryStore(counterstore.WithSweepInterval(0))
	t.Cleanup(func() { _ = store.Close() })

	tests := []struct {
		name        string
		store       counterstore.Store
		cfg         trending.Config
		expectError error
	}{
		{"nil store", nil, testConfig(), trending.ErrStoreRequired},
		{
			"zero daily ttl",
			store,
			trending.Config{WeeklyTTL: time.Hour, DefaultLimit: 10, MaxLimit: 100},
			trending.ErrInvalidTTL,
		},
		{
			"zero weekly ttl",
			store,
			trending.Config{DailyTTL: time.Hour, DefaultLimit: 10, MaxLimit: 100},
			trending.ErrInvalidTTL,
		},
		{
			"default limit above max",
			store,
			trending.Config{DailyTTL: time.Hour, WeeklyTTL: time.Hour, DefaultLimit: 200, MaxLimit: 100},
			trending.ErrInvalidLimit,
		},
		{"valid", store, testConfig(), nil},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			engine, err := trending.New(tt.store, tt.cfg)
			if tt.expectError != nil {
				assert.ErrorIs(t, err, tt.expectError)
				assert.Nil(t, engine)
			} else {
				assert.NoError(t, err)
				assert.NotNil(t, engine)
			}
		})
	}
}

func TestEngine_ScoresAccumulate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine, _ := newEngine(t, testConfig())

	engine.BumpLike(ctx, 42)
	engine.BumpLike(ctx, 42)
	engine.BumpLike(ctx, 42)
	engine.BumpScore(ctx, 42, -1.0)

	daily := engine.TopDaily(ctx, fixedNow, 10)
	require.Len(t, daily, 1)
	assert.Equal(t, trending.Item{ID: 42, Score: 2.0}, daily[0])

	// Every bump lands in the weekly bucket too.
	weekly := engine.TopWeekly(ctx, fixedNow, 10)
	require.Len(t, weekly, 1)
	assert.Equal(t, trending.Item{ID: 42, Score: 2.0}, weekly[0])
}

func TestEngine_TopOrderingAndBounds(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine, _ := newEngine(t, testConfig())

	engine.BumpScore(ctx, 1, 3.0)
	engine.BumpScore(ctx, 2, 7.0)
	engine.BumpScore(ctx, 3, 5.0)
	engine.BumpScore(ctx, 4, 1.0)

	top := engine.TopDaily(ctx, fixedNow, 3)
	require.Len(t, top, 3)
	assert.Equal(t, int64(2), top[0].ID)
	assert.Equal(t, int64(3), top[1].ID)
	assert.Equal(t, int64(1), top[2].ID)
	for i := 1; i < len(top); i++ {
		assert.GreaterOrEqual(t, top[i-1].Score, top[i].Score)
	}
}

func TestEngine_LimitNormalization(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	cfg := testConfig()
	cfg.DefaultLimit = 2
	cfg.MaxLimit = 3
	engine, _ := newEngine(t, cfg)

	for id := int64(1); id <= 5; id++ {
		engine.BumpScore(ctx, id, float64(id))
	}

	// Non-positive limits fall back to the default.
	assert.Len(t, engine.TopDaily(ctx, fixedNow, 0), 2)
	assert.Len(t, engine.TopDaily(ctx, fixedNow, -7), 2)

	// Oversized limits are capped at the maximum.
	assert.Len(t, engine.TopDaily(ctx, fixedNow, 50), 3)
	assert.Len(t, engine.TopWeekly(ctx, fixedNow, 50), 3)
}

func TestEngine_BucketRetention(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine, mr := newEngine(t, testConfig())

	engine.BumpLike(ctx, 42)

	dayKey := periodkey.Daily(fixedNow)
	weekKey := periodkey.Weekly(fixedNow)
	assert.Equal(t, 48*time.Hour, mr.TTL(dayKey))
	assert.Equal(t, 504*time.Hour, mr.TTL(weekKey))

	// Continued activity must not extend a ticking TTL.
	mr.FastForward(24 * time.Hour)
	engine.BumpLike(ctx, 42)
	assert.Equal(t, 24*time.Hour, mr.TTL(dayKey))

	// The whole daily bucket vanishes at once when retention elapses.
	mr.FastForward(25 * time.Hour)
	assert.Empty(t, engine.TopDaily(ctx, fixedNow, 10))
	assert.NotEmpty(t, engine.TopWeekly(ctx, fixedNow, 10))
}

func TestEngine_BucketsArePerPeriod(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine, _ := newEngine(t, testConfig())

	engine.BumpLike(ctx, 42)

	otherDay := fixedNow.AddDate(0, 0, -1)
	assert.Empty(t, engine.TopDaily(ctx, otherDay, 10))

	otherWeek := fixedNow.AddDate(0, 0, -7)
	assert.Empty(t, engine.TopWeekly(ctx, otherWeek, 10))

	// Same ISO week, different day: weekly bucket is shared.
	sameWeek := fixedNow.AddDate(0, 0, -2)
	assert.NotEmpty(t, engine.TopWeekly(ctx, sameWeek, 10))
}

func TestEngine_SkipsMalformedMembers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := counterstore.NewRedisStore(client)

	engine, err := trending.New(store, testConfig(),
		trending.WithTimeFunc(func() time.Time { return fixedNow }))
	require.NoError(t, err)

	engine.BumpScore(ctx, 42, 2.0)
	require.NoError(t, store.IncrScore(ctx, periodkey.Daily(fixedNow), "not-a-number", 99))

	top := engine.TopDaily(ctx, fixedNow, 10)
	require.Len(t, top, 1)
	assert.Equal(t, trending.Item{ID: 42, Score: 2.0}, top[0])
}

func TestEngine_FailsOpenOnStoreOutage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	engine, err := trending.New(counterstore.NewRedisStore(client), testConfig())
	require.NoError(t, err)
	mr.Close()

	// Increments are dropped, queries come back empty, nothing panics.
	engine.BumpLike(ctx, 42)
	assert.Empty(t, engine.TopDaily(ctx, time.Now(), 10))
	assert.Empty(t, engine.TopWeekly(ctx, time.Now(), 10))
}
