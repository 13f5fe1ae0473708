// Package query turns validated filter parameters into composable SQL predicates
// over the orders table.
//
// Filters are an explicit list of typed clauses. Each clause renders itself with
// squirrel, so a Predicate can be inspected in unit tests without a database and
// embedded in any squirrel statement (WHERE or JOIN ... ON).
package query

import (
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire and cache-key format of calendar dates.
const DateLayout = "2006-01-02"

// Params is the normalized filter tuple shared by every order query.
//
// Semantics:
//   - From/To filter order_time by whole calendar days and apply only when both are set.
//   - MinAmount/MaxAmount apply only when set and greater than zero.
//   - HourFrom/HourTo ("HH:MM") compare the time-of-day of order_time, each independently.
type Params struct {
	From      *time.Time
	To        *time.Time
	MinAmount *decimal.Decimal
	MaxAmount *decimal.Decimal
	HourFrom  string
	HourTo    string
}

// WithoutHours returns a copy of p with the hour-of-day bounds cleared.
func (p Params) WithoutHours() Params {
	p.HourFrom, p.HourTo = "", ""
	return p
}

// HasDateRange reports whether the date filter is active.
func (p Params) HasDateRange() bool {
	return p.From != nil && p.To != nil
}

// ActiveAmount returns the bound when it takes part in filtering, nil otherwise.
// Zero is indistinguishable from "unset".
func ActiveAmount(d *decimal.Decimal) *decimal.Decimal {
	if d == nil || !d.IsPositive() {
		return nil
	}
	return d
}

// Clause is one typed filter condition.
type Clause interface {
	sq.Sqlizer
	// Kind names the clause type; used in logs and tests.
	Kind() string
}

// Predicate is an ordered set of clauses joined with AND.
// The zero value matches every row.
type Predicate struct {
	clauses []Clause
}

// Clauses returns the accumulated clauses.
func (p Predicate) Clauses() []Clause {
	out := make([]Clause, len(p.clauses))
	copy(out, p.clauses)
	return out
}

// Empty reports whether the predicate has no clauses.
func (p Predicate) Empty() bool { return len(p.clauses) == 0 }

// With returns a new predicate with extra clauses appended; p is left untouched.
func (p Predicate) With(extra ...Clause) Predicate {
	out := make([]Clause, 0, len(p.clauses)+len(extra))
	out = append(out, p.clauses...)
	for _, c := range extra {
		if c != nil {
			out = append(out, c)
		}
	}
	return Predicate{clauses: out}
}

// ToSql renders the predicate; an empty predicate renders as (1=1).
func (p Predicate) ToSql() (string, []interface{}, error) {
	and := make(sq.And, 0, len(p.clauses))
	for _, c := range p.clauses {
		and = append(and, c)
	}
	return and.ToSql()
}

// Builder renders clauses against a table alias (e.g. "o" for "orders o").
type Builder struct {
	alias string
}

// NewBuilder returns a builder qualifying columns with alias. An empty alias leaves
// columns unqualified.
func NewBuilder(alias string) Builder {
	return Builder{alias: alias}
}

func (b Builder) col(name string) string {
	if b.alias == "" {
		return name
	}
	return b.alias + "." + name
}

// Build converts params into a predicate. It is a pure function of its input.
func (b Builder) Build(p Params) Predicate {
	var pred Predicate
	if p.HasDateRange() {
		pred = pred.With(OrderTimeBetween{Column: b.col("order_time"), From: *p.From, To: *p.To})
	}
	if minA := ActiveAmount(p.MinAmount); minA != nil {
		pred = pred.With(AmountAtLeast{Column: b.col("order_amount"), Value: *minA})
	}
	if maxA := ActiveAmount(p.MaxAmount); maxA != nil {
		pred = pred.With(AmountAtMost{Column: b.col("order_amount"), Value: *maxA})
	}
	if p.HourFrom != "" {
		pred = pred.With(TimeOfDayFrom{Column: b.col("order_time"), Hour: p.HourFrom})
	}
	if p.HourTo != "" {
		pred = pred.With(TimeOfDayTo{Column: b.col("order_time"), Hour: p.HourTo})
	}
	return pred
}

// RestaurantIs scopes orders to one restaurant.
func (b Builder) RestaurantIs(id int64) Clause {
	return RestaurantIn{Column: b.col("restaurant_id"), IDs: []int64{id}}
}

// RestaurantScope scopes orders to the restaurants in s; nil for "all".
func (b Builder) RestaurantScope(s Scope) Clause {
	if s.All() {
		return nil
	}
	return RestaurantIn{Column: b.col("restaurant_id"), IDs: s.IDs()}
}
