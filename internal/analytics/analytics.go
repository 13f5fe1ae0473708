// Package analytics shapes grouped order aggregates into the public trend and
// ranking payloads. It performs no I/O; storage hands it raw per-bucket counts and
// unrounded sums, and every rounding decision happens here.
package analytics

import (
	"sort"

	"github.com/guttosm/orderpulse/internal/domain/models"
	"github.com/shopspring/decimal"
)

// TopN is the size of the top-restaurants ranking.
const TopN = 3

// Average returns sum/count rounded to cents; zero when count is zero.
func Average(sum decimal.Decimal, count int64) models.Money {
	if count <= 0 {
		return models.NewMoney(decimal.Zero)
	}
	return models.NewMoney(sum.Div(decimal.NewFromInt(count)))
}

// Daily converts one restaurant's day buckets into trend points sorted by date.
func Daily(rows []models.BucketRow) []models.DailyTrend {
	out := make([]models.DailyTrend, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.DailyTrend{
			Date:      r.Bucket,
			Count:     r.Count,
			AmountSum: models.NewMoney(r.Sum),
			Average:   Average(r.Sum, r.Count),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Hourly converts one restaurant's hour buckets into trend points sorted by hour.
func Hourly(rows []models.BucketRow) []models.HourlyTrend {
	out := make([]models.HourlyTrend, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.HourlyTrend{
			Hour:      r.Bucket,
			Count:     r.Count,
			AmountSum: models.NewMoney(r.Sum),
			Average:   Average(r.Sum, r.Count),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Hour < out[j].Hour })
	return out
}

// GroupByRestaurant splits bucket rows per restaurant id, preserving row order.
func GroupByRestaurant(rows []models.BucketRow) map[int64][]models.BucketRow {
	out := make(map[int64][]models.BucketRow)
	for _, r := range rows {
		out[r.RestaurantID] = append(out[r.RestaurantID], r)
	}
	return out
}

// BuildTrends assembles the trends payload: one entry per restaurant in the given
// order, with empty (never nil) series for restaurants without matching orders.
func BuildTrends(restaurants []models.Restaurant, daily, hourly []models.BucketRow) []models.RestaurantTrends {
	byDay := GroupByRestaurant(daily)
	byHour := GroupByRestaurant(hourly)

	out := make([]models.RestaurantTrends, 0, len(restaurants))
	for _, r := range restaurants {
		out = append(out, models.RestaurantTrends{
			RestaurantID:   r.ID,
			RestaurantName: r.Name,
			Trends: models.Trends{
				Daily:  Daily(byDay[r.ID]),
				Hourly: Hourly(byHour[r.ID]),
			},
		})
	}
	return out
}

// RankTop orders totals by sum descending (ties by id ascending) and returns at
// most n summaries. Restaurants without orders take part with a zero sum.
func RankTop(totals []models.RestaurantTotal, n int) []models.RestaurantSummary {
	ranked := make([]models.RestaurantTotal, len(totals))
	copy(ranked, totals)
	sort.SliceStable(ranked, func(i, j int) bool {
		if c := ranked[i].Sum.Cmp(ranked[j].Sum); c != 0 {
			return c > 0
		}
		return ranked[i].ID < ranked[j].ID
	})
	if n >= 0 && len(ranked) > n {
		ranked = ranked[:n]
	}

	out := make([]models.RestaurantSummary, 0, len(ranked))
	for _, t := range ranked {
		out = append(out, models.RestaurantSummary{
			Restaurant:  t.Restaurant,
			OrdersCount: t.Count,
			OrdersSum:   models.NewMoney(t.Sum),
		})
	}
	return out
}
