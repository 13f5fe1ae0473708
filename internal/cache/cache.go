// Package cache memoizes analytic results for a fixed TTL.
//
// Concurrent misses on the same key share a single computation. Only successful
// results are stored, and a failing store never fails a request: the value is
// computed directly instead.
package cache

import (
	"context"
	"time"

	"github.com/guttosm/orderpulse/internal/logger"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a computed result stays fresh.
const DefaultTTL = 60 * time.Second

// Observer receives cache events; the metrics package provides the Prometheus one.
type Observer interface {
	Hit(op string)
	Miss(op string)
	Computed(op string, took time.Duration)
	StoreError(op string)
}

type nopObserver struct{}

func (nopObserver) Hit(string)                     {}
func (nopObserver) Miss(string)                    {}
func (nopObserver) Computed(string, time.Duration) {}
func (nopObserver) StoreError(string)              {}

// Cache couples a Store with expiry checks and per-key single-flight.
type Cache struct {
	store    Store
	clock    clockwork.Clock
	ttl      time.Duration
	group    singleflight.Group
	observer Observer
	log      zerolog.Logger
}

// Option customizes a Cache.
type Option func(*Cache)

// WithClock sets the clock used to stamp and check expiry.
func WithClock(c clockwork.Clock) Option {
	return func(cc *Cache) { cc.clock = c }
}

// WithObserver registers an event observer.
func WithObserver(o Observer) Option {
	return func(cc *Cache) { cc.observer = o }
}

// New builds a cache over store. A non-positive ttl falls back to DefaultTTL.
func New(store Store, ttl time.Duration, opts ...Option) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		store:    store,
		clock:    clockwork.NewRealClock(),
		ttl:      ttl,
		observer: nopObserver{},
		log:      logger.WithComponent("cache"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// TTL returns the configured freshness window.
func (c *Cache) TTL() time.Duration { return c.ttl }

type flight struct {
	value  any
	cached bool
}

// Remember returns the fresh cached value for key, or computes it with fn.
// The boolean reports whether the value came from the store.
//
// While a computation for key is in flight, other callers wait for it instead
// of starting their own; each waiter still honours its own ctx. The computation
// itself is detached from the caller that started it and bounded by the TTL, so
// one abandoned request does not fail the others.
func Remember[T any](ctx context.Context, c *Cache, key Key, fn func(context.Context) (T, error)) (T, bool, error) {
	var zero T
	op := string(key.Op)

	if v, ok := c.lookup(ctx, key); ok {
		if typed, ok := v.(T); ok {
			c.observer.Hit(op)
			return typed, true, nil
		}
	}
	c.observer.Miss(op)

	ch := c.group.DoChan(key.String(), func() (any, error) {
		// The flight is shared, so it must outlive the caller that happened to start it.
		fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.ttl)
		defer cancel()

		// A flight that finished just before this one started may already have stored the value.
		if v, ok := c.lookup(fctx, key); ok {
			if _, ok := v.(T); ok {
				return flight{value: v, cached: true}, nil
			}
		}

		start := c.clock.Now()
		v, err := fn(fctx)
		if err != nil {
			return nil, err
		}
		if err := fctx.Err(); err != nil {
			return nil, err
		}
		done := c.clock.Now()
		c.observer.Computed(op, done.Sub(start))
		c.save(fctx, key, Entry{Value: v, ExpiresAt: done.Add(c.ttl)})
		return flight{value: v}, nil
	})

	select {
	case <-ctx.Done():
		return zero, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, false, res.Err
		}
		f := res.Val.(flight)
		return f.value.(T), f.cached, nil
	}
}

func (c *Cache) lookup(ctx context.Context, key Key) (any, bool) {
	e, ok, err := c.store.Get(ctx, key.String())
	if err != nil {
		c.observer.StoreError(string(key.Op))
		c.log.Warn().Err(err).Str("key", key.String()).Msg("cache read failed; computing directly")
		return nil, false
	}
	if !ok || !c.clock.Now().Before(e.ExpiresAt) {
		return nil, false
	}
	return e.Value, true
}

func (c *Cache) save(ctx context.Context, key Key, e Entry) {
	if err := c.store.Set(ctx, key.String(), e); err != nil {
		c.observer.StoreError(string(key.Op))
		c.log.Warn().Err(err).Str("key", key.String()).Msg("cache write failed; result not cached")
	}
}
