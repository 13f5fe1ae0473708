package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/guttosm/orderpulse/internal/cache"
	"github.com/guttosm/orderpulse/internal/domain/models"
	"github.com/guttosm/orderpulse/internal/query"
	"github.com/guttosm/orderpulse/internal/storage"
	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
)

func newCache() (*cache.Cache, *clockwork.FakeClock) {
	clock := clockwork.NewFakeClock()
	return cache.New(cache.NewMemoryStore(64, time.Hour), cache.DefaultTTL, cache.WithClock(clock)), clock
}

func TestRestaurantTrends_ShapesAndCaches(t *testing.T) {
	repo := sampleRepo()
	c, clock := newCache()
	svc := NewAnalyticsService(repo, c)
	ctx := context.Background()
	scope := query.NewScope([]int64{2, 1})

	got, cached, err := svc.RestaurantTrends(ctx, scope, query.Params{})
	if err != nil || cached {
		t.Fatalf("first call: cached=%v err=%v", cached, err)
	}
	if len(got) != 2 || got[0].RestaurantID != 1 || got[1].RestaurantID != 2 {
		t.Fatalf("unexpected trends %+v", got)
	}
	if d := got[0].Trends.Daily; len(d) != 2 || d[0].Date != "2024-01-01" || d[0].Average.String() != "15.00" {
		t.Fatalf("unexpected daily %+v", d)
	}
	if len(got[1].Trends.Daily) != 0 || got[1].Trends.Hourly == nil {
		t.Fatalf("restaurant without orders should have empty series: %+v", got[1].Trends)
	}
	if n := repo.bucketCalls.Load(); n != 2 {
		t.Fatalf("expected daily+hourly queries, got %d", n)
	}

	// same request with ids in another order hits the cache
	_, cached, err = svc.RestaurantTrends(ctx, query.NewScope([]int64{1, 2, 2}), query.Params{})
	if err != nil || !cached || repo.bucketCalls.Load() != 2 {
		t.Fatalf("second call: cached=%v err=%v calls=%d", cached, err, repo.bucketCalls.Load())
	}

	clock.Advance(61 * time.Second)
	_, cached, _ = svc.RestaurantTrends(ctx, scope, query.Params{})
	if cached || repo.bucketCalls.Load() != 4 {
		t.Fatalf("expected recomputation after expiry: cached=%v calls=%d", cached, repo.bucketCalls.Load())
	}
}

func TestRestaurantTrends_ScopeAppliedToPredicate(t *testing.T) {
	repo := sampleRepo()
	c, _ := newCache()
	minA := decimal.NewFromInt(5)
	_, _, err := NewAnalyticsService(repo, c).RestaurantTrends(context.Background(), query.NewScope([]int64{1}), query.Params{MinAmount: &minA, HourFrom: "09:00"})
	if err != nil {
		t.Fatalf("RestaurantTrends: %v", err)
	}
	sql, _, _ := repo.lastPred.ToSql()
	for _, frag := range []string{"o.order_amount >= ?", "CAST(o.order_time AS time) >= CAST(? AS time)", "o.restaurant_id = ?"} {
		if !strings.Contains(sql, frag) {
			t.Fatalf("predicate %q missing %q", sql, frag)
		}
	}
}

func TestRestaurantTrends_ConcurrentCallersShareOneComputation(t *testing.T) {
	repo := sampleRepo()
	repo.delay = 50 * time.Millisecond
	c, _ := newCache()
	svc := NewAnalyticsService(repo, c)

	const n = 10
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, _, err := svc.RestaurantTrends(context.Background(), query.AllRestaurants(), query.Params{}); err != nil {
				t.Errorf("RestaurantTrends: %v", err)
			}
		}()
	}
	wg.Wait()
	if got := repo.bucketCalls.Load(); got != 2 {
		t.Fatalf("expected one computation (2 bucket queries), got %d queries", got)
	}
}

func TestRestaurantTrends_ErrorNotCached(t *testing.T) {
	repo := sampleRepo()
	repo.err = errors.New("db down")
	c, _ := newCache()
	svc := NewAnalyticsService(repo, c)

	if _, _, err := svc.RestaurantTrends(context.Background(), query.AllRestaurants(), query.Params{}); err == nil {
		t.Fatalf("expected error")
	}
	repo.err = nil
	_, cached, err := svc.RestaurantTrends(context.Background(), query.AllRestaurants(), query.Params{})
	if err != nil || cached {
		t.Fatalf("expected fresh computation after failure: cached=%v err=%v", cached, err)
	}
}

func TestTopRestaurants_RankingAndHoursIgnored(t *testing.T) {
	repo := sampleRepo()
	c, _ := newCache()
	svc := NewAnalyticsService(repo, c)
	ctx := context.Background()

	got, cached, err := svc.TopRestaurants(ctx, query.AllRestaurants(), query.Params{HourFrom: "09:00"})
	if err != nil || cached {
		t.Fatalf("TopRestaurants: cached=%v err=%v", cached, err)
	}
	var ids []int64
	for _, s := range got {
		ids = append(ids, s.ID)
	}
	if !reflect.DeepEqual(ids, []int64{1, 2, 3}) {
		t.Fatalf("ranking=%v, want [1 2 3]", ids)
	}
	if sql, _, _ := repo.lastPred.ToSql(); strings.Contains(sql, "CAST") {
		t.Fatalf("hour bounds must not apply to top restaurants: %q", sql)
	}

	// hour bounds do not split the cache either
	_, cached, _ = svc.TopRestaurants(ctx, query.AllRestaurants(), query.Params{})
	if !cached || repo.totalCalls.Load() != 1 {
		t.Fatalf("expected cache hit: cached=%v calls=%d", cached, repo.totalCalls.Load())
	}
}

func TestListOrders_NotCachedAndScoped(t *testing.T) {
	repo := sampleRepo()
	repo.orders = models.Page[models.Order]{Items: []models.Order{{ID: 1}}, Pagination: models.NewPagination(1, 10, 1, 1)}
	svc := NewOrderService(repo)

	for i := 0; i < 2; i++ {
		page, err := svc.ListOrders(context.Background(), 7, query.Params{HourTo: "10:00"}, query.NewPage(1, 10))
		if err != nil || len(page.Items) != 1 {
			t.Fatalf("ListOrders: %+v %v", page, err)
		}
	}
	sql, args, _ := repo.lastPred.ToSql()
	if !strings.Contains(sql, "o.restaurant_id = ?") || args[len(args)-1] != int64(7) {
		t.Fatalf("unexpected predicate %q %v", sql, args)
	}
}

func TestRestaurantService(t *testing.T) {
	repo := sampleRepo()
	svc := NewRestaurantService(repo)
	ctx := context.Background()

	t.Run("defaults sort and dir", func(t *testing.T) {
		if _, err := svc.ListRestaurants(ctx, RestaurantListing{Page: query.NewPage(1, 10)}); err != nil {
			t.Fatalf("ListRestaurants: %v", err)
		}
		if repo.lastSearch.Sort != "name" || repo.lastSearch.Dir != "asc" || !repo.lastSearch.Orders.Empty() {
			t.Fatalf("unexpected search %+v", repo.lastSearch)
		}
	})

	t.Run("date range scopes orders", func(t *testing.T) {
		from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 0, 30)
		_, _ = svc.ListRestaurants(ctx, RestaurantListing{From: &from, To: &to, Page: query.NewPage(1, 10)})
		if len(repo.lastSearch.Orders.Clauses()) != 1 {
			t.Fatalf("expected date clause, got %+v", repo.lastSearch.Orders.Clauses())
		}
	})

	t.Run("get", func(t *testing.T) {
		if r, err := svc.GetRestaurant(ctx, 2); err != nil || r.Name != "B" {
			t.Fatalf("GetRestaurant: %+v %v", r, err)
		}
		if _, err := svc.GetRestaurant(ctx, 99); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("missing", func(t *testing.T) {
		missing, err := svc.MissingRestaurants(ctx, []int64{9, 1, 9, 8})
		if err != nil || !reflect.DeepEqual(missing, []int64{8, 9}) {
			t.Fatalf("MissingRestaurants=%v err=%v", missing, err)
		}
		if missing, _ := svc.MissingRestaurants(ctx, nil); missing != nil {
			t.Fatalf("expected nil for empty input, got %v", missing)
		}
	})
}
