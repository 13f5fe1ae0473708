package models

import "github.com/shopspring/decimal"

// DailyTrend aggregates one restaurant's orders placed on one calendar day.
type DailyTrend struct {
	Date      string `json:"date" example:"2024-01-01"`
	Count     int64  `json:"count" example:"2"`
	AmountSum Money  `json:"amount_sum" swaggertype:"number" example:"30.00"`
	Average   Money  `json:"average" swaggertype:"number" example:"15.00"`
}

// HourlyTrend aggregates one restaurant's orders placed within one clock hour of one day.
type HourlyTrend struct {
	Hour      string `json:"hour" example:"2024-01-01 09:00"`
	Count     int64  `json:"count" example:"2"`
	AmountSum Money  `json:"amount_sum" swaggertype:"number" example:"30.00"`
	Average   Money  `json:"average" swaggertype:"number" example:"15.00"`
}

// Trends groups the daily and hourly series of a restaurant.
type Trends struct {
	Daily  []DailyTrend  `json:"daily"`
	Hourly []HourlyTrend `json:"hourly"`
}

// RestaurantTrends is one entry of the restaurant-trends payload.
//
// swagger:model RestaurantTrends
type RestaurantTrends struct {
	RestaurantID   int64  `json:"restaurant_id" example:"1"`
	RestaurantName string `json:"restaurant_name" example:"Sushi Place"`
	Trends         Trends `json:"trends"`
}

// BucketRow is a raw grouped aggregate as returned by storage: the bucket key
// (day or hour) of one restaurant with its order count and unrounded amount sum.
type BucketRow struct {
	RestaurantID int64
	Bucket       string
	Count        int64
	Sum          decimal.Decimal
}

// RestaurantTotal is a restaurant with its unrounded order count and amount sum.
type RestaurantTotal struct {
	Restaurant
	Count int64
	Sum   decimal.Decimal
}
