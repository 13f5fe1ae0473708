package storage

import (
	"context"
	"database/sql"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/guttosm/orderpulse/internal/domain/models"
	"github.com/guttosm/orderpulse/internal/query"
)

// ErrNotFound is returned when a single-row lookup matches nothing.
var ErrNotFound = errors.New("not found")

// Granularity selects the time bucket of grouped order aggregates.
type Granularity int

const (
	Daily Granularity = iota
	Hourly
)

// bucketExpr renders order_time as the public bucket label.
func (g Granularity) bucketExpr() string {
	if g == Hourly {
		return "TO_CHAR(o.order_time, 'YYYY-MM-DD HH24:00')"
	}
	return "TO_CHAR(o.order_time, 'YYYY-MM-DD')"
}

func (g Granularity) String() string {
	if g == Hourly {
		return "hourly"
	}
	return "daily"
}

// RestaurantSearch parameterizes the restaurant listing.
type RestaurantSearch struct {
	Search string
	Sort   string // name|location|orders|order_amount|created_at
	Dir    string // asc|desc
	Orders query.Predicate
	Page   query.Page
}

// Repository defines the contract for DB operations.
//
// Every read takes the caller's context; orders and restaurants are never updated.
type Repository interface {
	FindRestaurants(ctx context.Context, scope query.Scope) ([]models.Restaurant, error)
	GetRestaurant(ctx context.Context, id int64) (models.Restaurant, error)
	ExistingRestaurantIDs(ctx context.Context, ids []int64) ([]int64, error)
	SearchRestaurants(ctx context.Context, s RestaurantSearch) (models.Page[models.RestaurantSummary], error)

	OrderBuckets(ctx context.Context, pred query.Predicate, g Granularity) ([]models.BucketRow, error)
	RestaurantTotals(ctx context.Context, scope query.Scope, orders query.Predicate) ([]models.RestaurantTotal, error)
	ListOrders(ctx context.Context, pred query.Predicate, page query.Page) (models.Page[models.Order], error)

	InsertRestaurantsBatch(ctx context.Context, restaurants []models.Restaurant) error
	InsertOrdersBatch(ctx context.Context, orders []models.Order) error
	InsertOrder(ctx context.Context, o models.Order) (int64, error)
}

type repository struct {
	db  *sql.DB
	sql sq.StatementBuilderType
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db, sql: sq.StatementBuilder.PlaceholderFormat(sq.Dollar)}
}

var restaurantColumns = []string{"r.id", "r.name", "r.location", "r.cuisine", "r.created_at"}

func scanRestaurant(row sq.RowScanner, extra ...any) (models.Restaurant, error) {
	var r models.Restaurant
	dest := append([]any{&r.ID, &r.Name, &r.Location, &r.Cuisine, &r.CreatedAt}, extra...)
	err := row.Scan(dest...)
	return r, err
}
