package service

import (
	"context"
	"fmt"

	"github.com/guttosm/orderpulse/internal/analytics"
	"github.com/guttosm/orderpulse/internal/cache"
	"github.com/guttosm/orderpulse/internal/domain/models"
	"github.com/guttosm/orderpulse/internal/logger"
	"github.com/guttosm/orderpulse/internal/query"
	"github.com/guttosm/orderpulse/internal/storage"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// AnalyticsService computes the cached order analytics.
// Each method also reports whether the result was served from cache.
type AnalyticsService interface {
	RestaurantTrends(ctx context.Context, scope query.Scope, p query.Params) ([]models.RestaurantTrends, bool, error)
	TopRestaurants(ctx context.Context, scope query.Scope, p query.Params) ([]models.RestaurantSummary, bool, error)
}

type analyticsService struct {
	repo    storage.Repository
	cache   *cache.Cache
	filters query.Builder
	log     zerolog.Logger
}

func NewAnalyticsService(repo storage.Repository, c *cache.Cache) AnalyticsService {
	return &analyticsService{
		repo:    repo,
		cache:   c,
		filters: query.NewBuilder("o"),
		log:     logger.WithComponent("analytics"),
	}
}

// RestaurantTrends returns daily and hourly order trends for every restaurant in
// scope, ordered by restaurant id.
func (s *analyticsService) RestaurantTrends(ctx context.Context, scope query.Scope, p query.Params) ([]models.RestaurantTrends, bool, error) {
	key := cache.NewKey(cache.OpRestaurantTrends, scope, p)
	return cache.Remember(ctx, s.cache, key, func(ctx context.Context) ([]models.RestaurantTrends, error) {
		s.log.Debug().Str("key", key.String()).Msg("computing restaurant trends")

		restaurants, err := s.repo.FindRestaurants(ctx, scope)
		if err != nil {
			return nil, err
		}
		pred := s.filters.Build(p).With(s.filters.RestaurantScope(scope))

		var daily, hourly []models.BucketRow
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			rows, err := s.repo.OrderBuckets(gctx, pred, storage.Daily)
			daily = rows
			return err
		})
		g.Go(func() error {
			rows, err := s.repo.OrderBuckets(gctx, pred, storage.Hourly)
			hourly = rows
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("restaurant trends: %w", err)
		}

		return analytics.BuildTrends(restaurants, daily, hourly), nil
	})
}

// TopRestaurants ranks the restaurants in scope by the sum of their matching
// orders and returns the top three. Hour bounds are not applied.
func (s *analyticsService) TopRestaurants(ctx context.Context, scope query.Scope, p query.Params) ([]models.RestaurantSummary, bool, error) {
	p = p.WithoutHours()
	key := cache.NewKey(cache.OpTopRestaurants, scope, p)
	return cache.Remember(ctx, s.cache, key, func(ctx context.Context) ([]models.RestaurantSummary, error) {
		s.log.Debug().Str("key", key.String()).Msg("computing top restaurants")

		totals, err := s.repo.RestaurantTotals(ctx, scope, s.filters.Build(p))
		if err != nil {
			return nil, fmt.Errorf("top restaurants: %w", err)
		}
		return analytics.RankTop(totals, analytics.TopN), nil
	})
}
