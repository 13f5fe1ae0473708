package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/guttosm/orderpulse/internal/domain/models"
	"github.com/guttosm/orderpulse/internal/query"
)

// FindRestaurants returns the restaurants in scope ordered by id.
func (r *repository) FindRestaurants(ctx context.Context, scope query.Scope) ([]models.Restaurant, error) {
	q := r.sql.Select(restaurantColumns...).From("restaurants r").OrderBy("r.id")
	if !scope.All() {
		q = q.Where(sq.Eq{"r.id": scope.IDs()})
	}
	stmt, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build restaurants query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query restaurants: %w", err)
	}
	defer rows.Close()

	out := []models.Restaurant{}
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan restaurant: %w", err)
		}
		out = append(out, rest)
	}
	return out, rows.Err()
}

// GetRestaurant returns one restaurant or ErrNotFound.
func (r *repository) GetRestaurant(ctx context.Context, id int64) (models.Restaurant, error) {
	stmt, args, err := r.sql.Select(restaurantColumns...).From("restaurants r").Where(sq.Eq{"r.id": id}).ToSql()
	if err != nil {
		return models.Restaurant{}, fmt.Errorf("build restaurant query: %w", err)
	}
	rest, err := scanRestaurant(r.db.QueryRowContext(ctx, stmt, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Restaurant{}, ErrNotFound
	}
	if err != nil {
		return models.Restaurant{}, fmt.Errorf("get restaurant %d: %w", id, err)
	}
	return rest, nil
}

// ExistingRestaurantIDs returns the subset of ids present in the restaurants table.
func (r *repository) ExistingRestaurantIDs(ctx context.Context, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	stmt, args, err := r.sql.Select("id").From("restaurants").Where(sq.Eq{"id": ids}).OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build restaurant ids query: %w", err)
	}
	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query restaurant ids: %w", err)
	}
	defer rows.Close()

	var out []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan restaurant id: %w", err)
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

var restaurantSortColumns = map[string]string{
	"name":         "r.name",
	"location":     "r.location",
	"orders":       "orders_count",
	"order_amount": "orders_sum",
	"created_at":   "r.created_at",
}

// SearchRestaurants lists restaurants annotated with the count and sum of their
// orders matching s.Orders. Restaurants without matching orders report 0/0.
func (r *repository) SearchRestaurants(ctx context.Context, s RestaurantSearch) (models.Page[models.RestaurantSummary], error) {
	countQ := r.sql.Select("COUNT(*)").From("restaurants r")
	listQ := r.sql.Select()
	if term := strings.TrimSpace(s.Search); term != "" {
		like := "%" + escapeLike(term) + "%"
		where := sq.Or{sq.ILike{"r.name": like}, sq.ILike{"r.location": like}}
		countQ = countQ.Where(where)
		listQ = listQ.Where(where)
	}

	var total int64
	countStmt, countArgs, err := countQ.ToSql()
	if err != nil {
		return models.Page[models.RestaurantSummary]{}, fmt.Errorf("build restaurant count: %w", err)
	}
	if err := r.db.QueryRowContext(ctx, countStmt, countArgs...).Scan(&total); err != nil {
		return models.Page[models.RestaurantSummary]{}, fmt.Errorf("count restaurants: %w", err)
	}

	sortCol, ok := restaurantSortColumns[s.Sort]
	if !ok {
		sortCol = restaurantSortColumns["name"]
	}
	dir := "ASC"
	if strings.EqualFold(s.Dir, "desc") {
		dir = "DESC"
	}

	onSQL, onArgs, err := s.Orders.ToSql()
	if err != nil {
		return models.Page[models.RestaurantSummary]{}, fmt.Errorf("build order filter: %w", err)
	}
	cols := append(append([]string{}, restaurantColumns...),
		"COUNT(o.id) AS orders_count",
		"COALESCE(SUM(o.order_amount), 0) AS orders_sum",
	)
	stmt, args, err := listQ.Columns(cols...).
		From("restaurants r").
		LeftJoin("orders o ON o.restaurant_id = r.id AND "+onSQL, onArgs...).
		GroupBy("r.id").
		OrderBy(sortCol+" "+dir, "r.id ASC").
		Limit(s.Page.Limit()).
		Offset(s.Page.Offset()).
		ToSql()
	if err != nil {
		return models.Page[models.RestaurantSummary]{}, fmt.Errorf("build restaurant listing: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return models.Page[models.RestaurantSummary]{}, fmt.Errorf("query restaurant listing: %w", err)
	}
	defer rows.Close()

	items := []models.RestaurantSummary{}
	for rows.Next() {
		var sum models.Money
		var count int64
		rest, err := scanRestaurant(rows, &count, &sum)
		if err != nil {
			return models.Page[models.RestaurantSummary]{}, fmt.Errorf("scan restaurant listing: %w", err)
		}
		items = append(items, models.RestaurantSummary{Restaurant: rest, OrdersCount: count, OrdersSum: models.NewMoney(sum.Decimal)})
	}
	if err := rows.Err(); err != nil {
		return models.Page[models.RestaurantSummary]{}, fmt.Errorf("iterate restaurant listing: %w", err)
	}

	return models.Page[models.RestaurantSummary]{
		Items:      items,
		Pagination: models.NewPagination(s.Page.Number, s.Page.PerPage, total, len(items)),
	}, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
