package models

import "time"

// Order is a single immutable purchase placed at a restaurant.
//
// swagger:model Order
type Order struct {
	ID           int64     `json:"id" example:"1001"`
	RestaurantID int64     `json:"restaurant_id" example:"1"`
	OrderAmount  Money     `json:"order_amount" swaggertype:"number" example:"25.90"`
	OrderTime    time.Time `json:"order_time"`
}
