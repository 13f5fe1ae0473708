package query

import (
	"slices"
	"strconv"
	"strings"
)

// Scope is the set of restaurants a query covers: all of them, or an explicit id list.
// Explicit lists are kept sorted and free of duplicates so equal scopes compare
// (and cache) equal regardless of input order.
type Scope struct {
	ids []int64
}

// AllRestaurants is the scope covering every restaurant.
func AllRestaurants() Scope { return Scope{} }

// NewScope canonicalizes ids; an empty list means all restaurants.
func NewScope(ids []int64) Scope {
	if len(ids) == 0 {
		return Scope{}
	}
	out := slices.Clone(ids)
	slices.Sort(out)
	return Scope{ids: slices.Compact(out)}
}

// All reports whether the scope covers every restaurant.
func (s Scope) All() bool { return len(s.ids) == 0 }

// IDs returns the canonical id list (nil for all).
func (s Scope) IDs() []int64 { return slices.Clone(s.ids) }

// String renders the scope as "all" or "1,2,3".
func (s Scope) String() string {
	if s.All() {
		return "all"
	}
	parts := make([]string, len(s.ids))
	for i, id := range s.ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
