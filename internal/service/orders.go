package service

import (
	"context"

	"github.com/guttosm/orderpulse/internal/domain/models"
	"github.com/guttosm/orderpulse/internal/query"
	"github.com/guttosm/orderpulse/internal/storage"
)

// OrderService lists raw orders. Listings are never cached.
type OrderService interface {
	ListOrders(ctx context.Context, restaurantID int64, p query.Params, page query.Page) (models.Page[models.Order], error)
}

type orderService struct {
	repo    storage.Repository
	filters query.Builder
}

func NewOrderService(repo storage.Repository) OrderService {
	return &orderService{repo: repo, filters: query.NewBuilder("o")}
}

// ListOrders returns one page of a restaurant's filtered orders, newest first.
func (s *orderService) ListOrders(ctx context.Context, restaurantID int64, p query.Params, page query.Page) (models.Page[models.Order], error) {
	pred := s.filters.Build(p).With(s.filters.RestaurantIs(restaurantID))
	return s.repo.ListOrders(ctx, pred, page)
}
