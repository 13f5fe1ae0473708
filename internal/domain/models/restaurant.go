package models

import "time"

// Restaurant is a seeded, read-only venue that owns orders.
//
// swagger:model Restaurant
type Restaurant struct {
	ID        int64     `json:"id" example:"1"`
	Name      string    `json:"name" example:"Sushi Place"`
	Location  string    `json:"location" example:"Osaka"`
	Cuisine   *string   `json:"cuisine" example:"Japanese"`
	CreatedAt time.Time `json:"created_at"`
}

// RestaurantSummary is a restaurant annotated with order count and order amount sum
// over some filtered order set (listing and top-N ranking).
//
// swagger:model RestaurantSummary
type RestaurantSummary struct {
	Restaurant
	OrdersCount int64 `json:"orders_count" example:"42"`
	OrdersSum   Money `json:"orders_sum_order_amount" swaggertype:"number" example:"1234.50"`
}
