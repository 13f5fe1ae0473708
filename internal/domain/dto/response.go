package dto

import "github.com/guttosm/orderpulse/internal/domain/models"

// Response is the success envelope shared by all endpoints.
type Response[T any] struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Restaurants fetched successfully"`
	Data    T      `json:"data"`
}

// PaginatedResponse is the success envelope for paginated listings.
type PaginatedResponse[T any] struct {
	Success    bool              `json:"success" example:"true"`
	Message    string            `json:"message" example:"Orders retrieved successfully"`
	Data       []T               `json:"data"`
	Pagination models.Pagination `json:"pagination"`
}

// NewResponse wraps data in a success envelope.
func NewResponse[T any](message string, data T) Response[T] {
	return Response[T]{Success: true, Message: message, Data: data}
}

// NewPaginatedResponse wraps a page in a success envelope. A nil item slice is
// rendered as [] so clients never see null lists.
func NewPaginatedResponse[T any](message string, page models.Page[T]) PaginatedResponse[T] {
	items := page.Items
	if items == nil {
		items = []T{}
	}
	return PaginatedResponse[T]{Success: true, Message: message, Data: items, Pagination: page.Pagination}
}
