package query

import (
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
)

// OrderTimeBetween keeps orders placed from the start of From up to the end of To.
type OrderTimeBetween struct {
	Column   string
	From, To time.Time
}

func (OrderTimeBetween) Kind() string { return "date_range" }

func (c OrderTimeBetween) ToSql() (string, []interface{}, error) {
	// Dates are sent as text so the comparison happens in the column's own
	// (timezone-less) type.
	return sq.And{
		sq.GtOrEq{c.Column: c.From.Format(DateLayout)},
		sq.Lt{c.Column: c.To.AddDate(0, 0, 1).Format(DateLayout)},
	}.ToSql()
}

// AmountAtLeast keeps orders whose amount is >= Value.
type AmountAtLeast struct {
	Column string
	Value  decimal.Decimal
}

func (AmountAtLeast) Kind() string { return "min_amount" }

func (c AmountAtLeast) ToSql() (string, []interface{}, error) {
	return sq.GtOrEq{c.Column: c.Value.String()}.ToSql()
}

// AmountAtMost keeps orders whose amount is <= Value.
type AmountAtMost struct {
	Column string
	Value  decimal.Decimal
}

func (AmountAtMost) Kind() string { return "max_amount" }

func (c AmountAtMost) ToSql() (string, []interface{}, error) {
	return sq.LtOrEq{c.Column: c.Value.String()}.ToSql()
}

// TimeOfDayFrom keeps orders placed at or after Hour on any day.
type TimeOfDayFrom struct {
	Column string
	Hour   string
}

func (TimeOfDayFrom) Kind() string { return "hour_from" }

func (c TimeOfDayFrom) ToSql() (string, []interface{}, error) {
	return sq.Expr("CAST("+c.Column+" AS time) >= CAST(? AS time)", c.Hour).ToSql()
}

// TimeOfDayTo keeps orders placed at or before Hour on any day.
type TimeOfDayTo struct {
	Column string
	Hour   string
}

func (TimeOfDayTo) Kind() string { return "hour_to" }

func (c TimeOfDayTo) ToSql() (string, []interface{}, error) {
	return sq.Expr("CAST("+c.Column+" AS time) <= CAST(? AS time)", c.Hour).ToSql()
}

// RestaurantIn keeps orders of the listed restaurants.
type RestaurantIn struct {
	Column string
	IDs    []int64
}

func (RestaurantIn) Kind() string { return "restaurant_scope" }

func (c RestaurantIn) ToSql() (string, []interface{}, error) {
	if len(c.IDs) == 1 {
		return sq.Eq{c.Column: c.IDs[0]}.ToSql()
	}
	return sq.Eq{c.Column: c.IDs}.ToSql()
}
