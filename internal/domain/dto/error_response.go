package dto

import "time"

// ErrorResponse is the failure envelope returned by every endpoint.
//
// Fields:
//   - Success: always false.
//   - Message: human readable summary.
//   - Errors: per-field validation messages keyed by JSON field name (validation failures only).
//   - ErrorDetails: underlying error text, when one is available.
//   - Timestamp: time the error was produced (UTC).
//
// swagger:model ErrorResponse
type ErrorResponse struct {
	Success      bool                `json:"success" example:"false"`
	Message      string              `json:"message" example:"The given data was invalid."`
	Errors       map[string][]string `json:"errors,omitempty"`
	ErrorDetails string              `json:"error_details,omitempty"`
	Timestamp    time.Time           `json:"timestamp"`
}

// Error makes ErrorResponse usable as an error value.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse from a message and an optional cause.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}

// NewValidationErrorResponse builds the envelope for rejected input.
func NewValidationErrorResponse(fields map[string][]string) ErrorResponse {
	resp := NewErrorResponse("The given data was invalid.", nil)
	resp.Errors = fields
	return resp
}
