package cache

import (
	"strings"

	"github.com/guttosm/orderpulse/internal/query"
	"github.com/shopspring/decimal"
)

// Operation names the cached analytic.
type Operation string

const (
	OpRestaurantTrends Operation = "restaurant_trends"
	OpTopRestaurants   Operation = "top_restaurants"
)

const unset = "all"

// Key identifies one cached result. Two requests with the same effective filters map
// to the same key regardless of id order, duplicates, or ignored inputs.
type Key struct {
	Op  Operation
	raw string
}

// String returns the canonical key text.
func (k Key) String() string { return k.raw }

// NewKey derives the canonical key of op over scope and params.
//
// Only filters that actually apply are encoded: a one-sided date range and zero
// amounts render as "all", and top-restaurant keys never carry hour bounds.
func NewKey(op Operation, scope query.Scope, p query.Params) Key {
	if op == OpTopRestaurants {
		p = p.WithoutHours()
	}

	from, to := unset, unset
	if p.HasDateRange() {
		from, to = p.From.Format(query.DateLayout), p.To.Format(query.DateLayout)
	}

	var b strings.Builder
	b.WriteString(string(op))
	field(&b, "ids", scope.String())
	field(&b, "from", from)
	field(&b, "to", to)
	field(&b, "minA", amount(p.MinAmount))
	field(&b, "maxA", amount(p.MaxAmount))
	field(&b, "hFrom", orAll(p.HourFrom))
	field(&b, "hTo", orAll(p.HourTo))
	return Key{Op: op, raw: b.String()}
}

func field(b *strings.Builder, name, value string) {
	b.WriteByte('|')
	b.WriteString(name)
	b.WriteByte('=')
	b.WriteString(value)
}

func amount(d *decimal.Decimal) string {
	if a := query.ActiveAmount(d); a != nil {
		return a.String()
	}
	return unset
}

func orAll(s string) string {
	if s == "" {
		return unset
	}
	return s
}
