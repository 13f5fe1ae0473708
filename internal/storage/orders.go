package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/guttosm/orderpulse/internal/domain/models"
	"github.com/guttosm/orderpulse/internal/query"
	"github.com/shopspring/decimal"
)

// OrderBuckets groups the orders matching pred by restaurant and time bucket,
// returning count and unrounded sum per bucket, ordered by restaurant then bucket.
func (r *repository) OrderBuckets(ctx context.Context, pred query.Predicate, g Granularity) ([]models.BucketRow, error) {
	stmt, args, err := r.sql.Select(
		"o.restaurant_id",
		g.bucketExpr()+" AS bucket",
		"COUNT(*)",
		"SUM(o.order_amount)",
	).
		From("orders o").
		Where(pred).
		GroupBy("1", "2").
		OrderBy("1", "2").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s buckets: %w", g, err)
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s buckets: %w", g, err)
	}
	defer rows.Close()

	out := []models.BucketRow{}
	for rows.Next() {
		var b models.BucketRow
		if err := rows.Scan(&b.RestaurantID, &b.Bucket, &b.Count, &b.Sum); err != nil {
			return nil, fmt.Errorf("scan %s bucket: %w", g, err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// RestaurantTotals returns every restaurant in scope with the count and sum of
// its orders matching the predicate; restaurants without matches report 0/0.
func (r *repository) RestaurantTotals(ctx context.Context, scope query.Scope, orders query.Predicate) ([]models.RestaurantTotal, error) {
	onSQL, onArgs, err := orders.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build order filter: %w", err)
	}
	cols := append(append([]string{}, restaurantColumns...), "COUNT(o.id)", "COALESCE(SUM(o.order_amount), 0)")
	q := r.sql.Select(cols...).
		From("restaurants r").
		LeftJoin("orders o ON o.restaurant_id = r.id AND "+onSQL, onArgs...).
		GroupBy("r.id").
		OrderBy("r.id")
	if !scope.All() {
		q = q.Where(sq.Eq{"r.id": scope.IDs()})
	}
	stmt, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build restaurant totals: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query restaurant totals: %w", err)
	}
	defer rows.Close()

	out := []models.RestaurantTotal{}
	for rows.Next() {
		var t models.RestaurantTotal
		var sum decimal.Decimal
		rest, err := scanRestaurant(rows, &t.Count, &sum)
		if err != nil {
			return nil, fmt.Errorf("scan restaurant total: %w", err)
		}
		t.Restaurant, t.Sum = rest, sum
		out = append(out, t)
	}
	return out, rows.Err()
}

// ListOrders returns one page of the orders matching pred, newest first.
func (r *repository) ListOrders(ctx context.Context, pred query.Predicate, page query.Page) (models.Page[models.Order], error) {
	var total int64
	countStmt, countArgs, err := r.sql.Select("COUNT(*)").From("orders o").Where(pred).ToSql()
	if err != nil {
		return models.Page[models.Order]{}, fmt.Errorf("build order count: %w", err)
	}
	if err := r.db.QueryRowContext(ctx, countStmt, countArgs...).Scan(&total); err != nil {
		return models.Page[models.Order]{}, fmt.Errorf("count orders: %w", err)
	}

	stmt, args, err := r.sql.Select("o.id", "o.restaurant_id", "o.order_amount", "o.order_time").
		From("orders o").
		Where(pred).
		OrderBy("o.order_time DESC", "o.id DESC").
		Limit(page.Limit()).
		Offset(page.Offset()).
		ToSql()
	if err != nil {
		return models.Page[models.Order]{}, fmt.Errorf("build order listing: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return models.Page[models.Order]{}, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	items := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.RestaurantID, &o.OrderAmount, &o.OrderTime); err != nil {
			return models.Page[models.Order]{}, fmt.Errorf("scan order: %w", err)
		}
		items = append(items, o)
	}
	if err := rows.Err(); err != nil {
		return models.Page[models.Order]{}, fmt.Errorf("iterate orders: %w", err)
	}

	return models.Page[models.Order]{
		Items:      items,
		Pagination: models.NewPagination(page.Number, page.PerPage, total, len(items)),
	}, nil
}
