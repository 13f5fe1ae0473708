package service

import (
	"context"
	"time"

	"github.com/guttosm/orderpulse/internal/domain/models"
	"github.com/guttosm/orderpulse/internal/query"
	"github.com/guttosm/orderpulse/internal/storage"
)

// RestaurantListing parameterizes ListRestaurants. From/To scope the order
// counts and sums, not the restaurants themselves.
type RestaurantListing struct {
	Search string
	Sort   string
	Dir    string
	From   *time.Time
	To     *time.Time
	Page   query.Page
}

// RestaurantService serves restaurant lookups and listings.
type RestaurantService interface {
	ListRestaurants(ctx context.Context, l RestaurantListing) (models.Page[models.RestaurantSummary], error)
	GetRestaurant(ctx context.Context, id int64) (models.Restaurant, error)
	MissingRestaurants(ctx context.Context, ids []int64) ([]int64, error)
}

type restaurantService struct {
	repo    storage.Repository
	filters query.Builder
}

func NewRestaurantService(repo storage.Repository) RestaurantService {
	return &restaurantService{repo: repo, filters: query.NewBuilder("o")}
}

func (s *restaurantService) ListRestaurants(ctx context.Context, l RestaurantListing) (models.Page[models.RestaurantSummary], error) {
	if l.Sort == "" {
		l.Sort = "name"
	}
	if l.Dir == "" {
		l.Dir = "asc"
	}
	return s.repo.SearchRestaurants(ctx, storage.RestaurantSearch{
		Search: l.Search,
		Sort:   l.Sort,
		Dir:    l.Dir,
		Orders: s.filters.Build(query.Params{From: l.From, To: l.To}),
		Page:   l.Page,
	})
}

// GetRestaurant returns storage.ErrNotFound for unknown ids.
func (s *restaurantService) GetRestaurant(ctx context.Context, id int64) (models.Restaurant, error) {
	return s.repo.GetRestaurant(ctx, id)
}

// MissingRestaurants returns the distinct ids that do not exist, in ascending order.
func (s *restaurantService) MissingRestaurants(ctx context.Context, ids []int64) ([]int64, error) {
	wanted := query.NewScope(ids).IDs()
	if len(wanted) == 0 {
		return nil, nil
	}
	existing, err := s.repo.ExistingRestaurantIDs(ctx, wanted)
	if err != nil {
		return nil, err
	}
	found := make(map[int64]struct{}, len(existing))
	for _, id := range existing {
		found[id] = struct{}{}
	}
	var missing []int64
	for _, id := range wanted {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
