package dto

// Request bodies and query strings accepted by the API. Field names match the
// public contract (minA, hFrom, ...); validation tags are evaluated by gin's
// validator engine with the custom rules registered in the api package.

// FilterFields are the order filters shared by the order listing and analytics requests.
type FilterFields struct {
	From      *string `json:"from" form:"from" binding:"omitempty,datetime=2006-01-02" example:"2024-01-01"`
	To        *string `json:"to" form:"to" binding:"omitempty,datetime=2006-01-02" example:"2024-01-31"`
	MinAmount *Amount `json:"minA" swaggertype:"number" example:"10"`
	MaxAmount *Amount `json:"maxA" swaggertype:"number" example:"100"`
	HourFrom  *string `json:"hFrom" binding:"omitempty,hhmm" example:"09:00"`
	HourTo    *string `json:"hTo" binding:"omitempty,hhmm" example:"17:00"`
}

// TrendsRequest is the body of POST /api/analytics/restaurant-trends.
type TrendsRequest struct {
	RestaurantIDs []int64 `json:"restaurant_ids" binding:"omitempty,dive,gt=0" example:"1,2"`
	FilterFields
}

// TopRestaurantsRequest is the body of POST /api/analytics/top-restaurants.
type TopRestaurantsRequest struct {
	RestaurantIDs []int64 `json:"restaurant_ids" binding:"omitempty,dive,gt=0" example:"1,2"`
	From          *string `json:"from" binding:"omitempty,datetime=2006-01-02" example:"2024-01-01"`
	To            *string `json:"to" binding:"omitempty,datetime=2006-01-02" example:"2024-01-31"`
	MinAmount     *Amount `json:"minA" swaggertype:"number" example:"10"`
	MaxAmount     *Amount `json:"maxA" swaggertype:"number" example:"100"`
}

// OrdersRequest is the body of POST /api/orders.
type OrdersRequest struct {
	RestaurantID int64 `json:"restaurant_id" binding:"required,gt=0" example:"1"`
	FilterFields
	PerPage *int `json:"per_page" binding:"omitempty,min=1,max=100" example:"10"`
	Page    *int `json:"page" binding:"omitempty,min=1" example:"1"`
}

// RestaurantsQuery is the query string of GET /api/restaurants.
type RestaurantsQuery struct {
	Search  string  `form:"search" binding:"omitempty,max=255"`
	Sort    string  `form:"sort" binding:"omitempty,oneof=name location orders order_amount created_at"`
	Dir     string  `form:"dir" binding:"omitempty,oneof=asc desc"`
	From    *string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To      *string `form:"to" binding:"omitempty,datetime=2006-01-02"`
	PerPage int     `form:"per_page" binding:"omitempty,min=1,max=100"`
	Page    int     `form:"page" binding:"omitempty,min=1"`
}
