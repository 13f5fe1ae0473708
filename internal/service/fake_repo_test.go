package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/orderpulse/internal/domain/models"
	"github.com/guttosm/orderpulse/internal/query"
	"github.com/guttosm/orderpulse/internal/storage"
	"github.com/shopspring/decimal"
)

// fakeRepo is an in-memory storage.Repository that counts aggregate queries.
type fakeRepo struct {
	mu          sync.Mutex
	restaurants []models.Restaurant
	daily       []models.BucketRow
	hourly      []models.BucketRow
	totals      []models.RestaurantTotal
	orders      models.Page[models.Order]
	err         error

	bucketCalls atomic.Int64
	totalCalls  atomic.Int64
	lastPred    query.Predicate
	lastSearch  storage.RestaurantSearch
	delay       time.Duration
}

func (f *fakeRepo) FindRestaurants(_ context.Context, scope query.Scope) ([]models.Restaurant, error) {
	if f.err != nil {
		return nil, f.err
	}
	if scope.All() {
		return f.restaurants, nil
	}
	want := map[int64]bool{}
	for _, id := range scope.IDs() {
		want[id] = true
	}
	var out []models.Restaurant
	for _, r := range f.restaurants {
		if want[r.ID] {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetRestaurant(_ context.Context, id int64) (models.Restaurant, error) {
	for _, r := range f.restaurants {
		if r.ID == id {
			return r, nil
		}
	}
	return models.Restaurant{}, storage.ErrNotFound
}

func (f *fakeRepo) ExistingRestaurantIDs(_ context.Context, ids []int64) ([]int64, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []int64
	for _, id := range ids {
		if _, err := f.GetRestaurant(context.Background(), id); err == nil {
			out = append(out, id)
		}
	}
	return out, nil
}

func (f *fakeRepo) SearchRestaurants(_ context.Context, s storage.RestaurantSearch) (models.Page[models.RestaurantSummary], error) {
	f.mu.Lock()
	f.lastSearch = s
	f.mu.Unlock()
	return models.Page[models.RestaurantSummary]{Items: []models.RestaurantSummary{}}, f.err
}

func (f *fakeRepo) OrderBuckets(ctx context.Context, pred query.Predicate, g storage.Granularity) ([]models.BucketRow, error) {
	f.bucketCalls.Add(1)
	f.mu.Lock()
	f.lastPred = pred
	f.mu.Unlock()
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	if g == storage.Hourly {
		return f.hourly, nil
	}
	return f.daily, nil
}

func (f *fakeRepo) RestaurantTotals(_ context.Context, _ query.Scope, pred query.Predicate) ([]models.RestaurantTotal, error) {
	f.totalCalls.Add(1)
	f.mu.Lock()
	f.lastPred = pred
	f.mu.Unlock()
	return f.totals, f.err
}

func (f *fakeRepo) ListOrders(_ context.Context, pred query.Predicate, _ query.Page) (models.Page[models.Order], error) {
	f.mu.Lock()
	f.lastPred = pred
	f.mu.Unlock()
	return f.orders, f.err
}

func (f *fakeRepo) InsertRestaurantsBatch(context.Context, []models.Restaurant) error { return nil }
func (f *fakeRepo) InsertOrdersBatch(context.Context, []models.Order) error           { return nil }
func (f *fakeRepo) InsertOrder(context.Context, models.Order) (int64, error)          { return 1, nil }

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleRepo() *fakeRepo {
	return &fakeRepo{
		restaurants: []models.Restaurant{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}, {ID: 3, Name: "C"}, {ID: 4, Name: "D"}},
		daily: []models.BucketRow{
			{RestaurantID: 1, Bucket: "2024-01-01", Count: 2, Sum: d("30")},
			{RestaurantID: 1, Bucket: "2024-01-02", Count: 1, Sum: d("5")},
		},
		hourly: []models.BucketRow{
			{RestaurantID: 1, Bucket: "2024-01-01 09:00", Count: 2, Sum: d("30")},
			{RestaurantID: 1, Bucket: "2024-01-02 18:00", Count: 1, Sum: d("5")},
		},
		totals: []models.RestaurantTotal{
			{Restaurant: models.Restaurant{ID: 1, Name: "A"}, Count: 3, Sum: d("300")},
			{Restaurant: models.Restaurant{ID: 2, Name: "B"}, Count: 2, Sum: d("300")},
			{Restaurant: models.Restaurant{ID: 3, Name: "C"}, Count: 2, Sum: d("200")},
			{Restaurant: models.Restaurant{ID: 4, Name: "D"}, Count: 1, Sum: d("100")},
		},
	}
}
