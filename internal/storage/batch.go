package storage

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/guttosm/orderpulse/internal/domain/models"
	pq "github.com/lib/pq"
)

// InsertRestaurantsBatch bulk-loads restaurants with their ids in a single transaction
// and moves the id sequence past the highest loaded id.
func (r *repository) InsertRestaurantsBatch(ctx context.Context, restaurants []models.Restaurant) error {
	return r.copyIn(ctx, pq.CopyIn("restaurants", "id", "name", "location", "cuisine", "created_at", "updated_at"),
		len(restaurants),
		func(i int) []any {
			rest := restaurants[i]
			created := rest.CreatedAt
			if created.IsZero() {
				created = time.Now().UTC()
			}
			return []any{rest.ID, rest.Name, rest.Location, rest.Cuisine, created, created}
		},
		`SELECT setval(pg_get_serial_sequence('restaurants', 'id'), (SELECT COALESCE(MAX(id), 1) FROM restaurants))`,
	)
}

// InsertOrdersBatch bulk-loads orders in a single transaction; ids are assigned by the database.
func (r *repository) InsertOrdersBatch(ctx context.Context, orders []models.Order) error {
	return r.copyIn(ctx, pq.CopyIn("orders", "restaurant_id", "order_amount", "order_time", "created_at", "updated_at"),
		len(orders),
		func(i int) []any {
			o := orders[i]
			return []any{o.RestaurantID, o.OrderAmount.String(), o.OrderTime, o.OrderTime, o.OrderTime}
		},
		"",
	)
}

// copyIn streams n rows through a COPY statement inside one transaction, then runs
// the optional after statement before committing.
func (r *repository) copyIn(ctx context.Context, copyStmt string, n int, row func(int) []any, after string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	// Small optimization for bulk load
	if _, err := tx.ExecContext(ctx, `SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.PrepareContext(ctx, copyStmt)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, row(i)...); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return fmt.Errorf("copy row %d: %w", i, err)
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	if after != "" {
		if _, err := tx.ExecContext(ctx, after); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// InsertOrder stores a single order and returns its id.
func (r *repository) InsertOrder(ctx context.Context, o models.Order) (int64, error) {
	stmt, args, err := r.sql.Insert("orders").
		Columns("restaurant_id", "order_amount", "order_time", "created_at", "updated_at").
		Values(o.RestaurantID, o.OrderAmount.String(), o.OrderTime, sq.Expr("NOW()"), sq.Expr("NOW()")).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build order insert: %w", err)
	}
	var id int64
	if err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert order: %w", err)
	}
	return id, nil
}
